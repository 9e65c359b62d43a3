package websocket

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
)

const maxPlayerNameLength = 32

func (that *Dispatcher) handleCreateRoom(_ context.Context, msg *Message, conn entity.Connection) error {
	log := that.logger.With("method", "handleCreateRoom", "connID", conn.ID())

	if msg.MaxPlayers == nil {
		return that.sendErrorResponse(conn, missingField("maxPlayers"))
	}

	name, errMsg := playerName(msg)
	if errMsg != "" {
		return that.sendErrorResponse(conn, errMsg)
	}

	if *msg.MaxPlayers < entity.MinPlayers || *msg.MaxPlayers > entity.MaxPlayers {
		return that.sendErrorResponse(conn, errMsgInvalidRoomSize)
	}

	that.leaveCurrentRoom(conn)

	created, err := that.rooms.CreateRoom(*msg.MaxPlayers)
	if errors.Is(err, apperror.ErrInvalidRoomSize) {
		return that.sendErrorResponse(conn, errMsgInvalidRoomSize)
	}

	if err != nil {
		log.Error("failed to create room", "error", err)
		return that.sendErrorResponse(conn, errMsgCreateFailed)
	}

	playerID, room, err := that.rooms.JoinRoom(created.ID, name, conn)
	if err != nil {
		log.Error("failed to join created room", "roomID", created.ID, "error", err)
		return that.sendErrorResponse(conn, errMsgCreateFailed)
	}

	that.bind(conn.ID(), playerID)

	if err = that.sendMessage(conn, RoomCreated{
		Type:     typeRoomCreated,
		RoomID:   room.ID,
		PlayerID: playerID,
		Room:     room,
	}); err != nil {
		return fmt.Errorf("failed to send room created: %w", err)
	}

	log.Info("room created", "roomID", room.ID, "playerID", playerID)

	return nil
}

func (that *Dispatcher) handleJoinRoom(_ context.Context, msg *Message, conn entity.Connection) error {
	log := that.logger.With("method", "handleJoinRoom", "connID", conn.ID())

	if msg.RoomID == nil {
		return that.sendErrorResponse(conn, missingField("roomId"))
	}

	name, errMsg := playerName(msg)
	if errMsg != "" {
		return that.sendErrorResponse(conn, errMsg)
	}

	playerID, room, err := that.rooms.JoinRoom(*msg.RoomID, name, conn)
	if err != nil {
		log.Info("failed to join room", "roomID", *msg.RoomID, "error", err)
		return that.sendErrorResponse(conn, errMsgJoinFailed)
	}

	// the old seat is given up only once the new one is secured
	that.leaveCurrentRoom(conn)
	that.bind(conn.ID(), playerID)

	if err = that.sendMessage(conn, RoomJoined{
		Type:     typeRoomJoined,
		PlayerID: playerID,
		Room:     room,
	}); err != nil {
		return fmt.Errorf("failed to send room joined: %w", err)
	}

	log.Info("player joined room", "roomID", room.ID, "playerID", playerID)

	return nil
}

func (that *Dispatcher) handleMakeMove(_ context.Context, msg *Message, conn entity.Connection) error {
	log := that.logger.With("method", "handleMakeMove", "connID", conn.ID())

	switch {
	case msg.PlayerID == nil:
		return that.sendErrorResponse(conn, missingField("playerId"))
	case msg.Row == nil:
		return that.sendErrorResponse(conn, missingField("row"))
	case msg.Col == nil:
		return that.sendErrorResponse(conn, missingField("col"))
	}

	if err := that.rooms.MakeMove(*msg.PlayerID, *msg.Row, *msg.Col); err != nil {
		log.Debug("move rejected", "playerID", *msg.PlayerID, "row", *msg.Row, "col", *msg.Col, "error", err)
		return that.sendErrorResponse(conn, errMsgInvalidMove)
	}

	return nil
}

func (that *Dispatcher) handleLeaveRoom(_ context.Context, msg *Message, conn entity.Connection) error {
	log := that.logger.With("method", "handleLeaveRoom", "connID", conn.ID())

	if msg.PlayerID == nil {
		return that.sendErrorResponse(conn, missingField("playerId"))
	}

	that.unbindPlayer(*msg.PlayerID)

	if err := that.rooms.LeaveRoom(*msg.PlayerID); err != nil {
		log.Debug("leave ignored", "playerID", *msg.PlayerID, "error", err)
		return nil
	}

	log.Info("player left room", "playerID", *msg.PlayerID)

	return nil
}

// playerName returns the trimmed name, or the error reply to send instead.
func playerName(msg *Message) (string, string) {
	if msg.PlayerName == nil {
		return "", missingField("playerName")
	}

	name := strings.TrimSpace(*msg.PlayerName)
	if name == "" || utf8.RuneCountInString(name) > maxPlayerNameLength {
		return "", errMsgInvalidName
	}

	return name, ""
}
