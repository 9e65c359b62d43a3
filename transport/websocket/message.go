package websocket

import (
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
)

const (
	typeCreateRoom = "create-room"
	typeJoinRoom   = "join-room"
	typeMakeMove   = "make-move"
	typeLeaveRoom  = "leave-room"

	typeRoomCreated = "room-created"
	typeRoomJoined  = "room-joined"
	typeError       = "error"
)

const (
	errMsgInvalidFormat   = "Invalid message format"
	errMsgJoinFailed      = "Failed to join room"
	errMsgCreateFailed    = "Failed to create room"
	errMsgInvalidRoomSize = "Invalid room size"
	errMsgInvalidMove     = "Invalid move"
	errMsgInvalidName     = "Invalid player name"
)

// Message is an inbound document. Pointer fields tell a missing field apart from a zero value.
type Message struct {
	Type       string  `json:"type"`
	MaxPlayers *int    `json:"maxPlayers,omitempty"`
	PlayerName *string `json:"playerName,omitempty"`
	RoomID     *string `json:"roomId,omitempty"`
	PlayerID   *string `json:"playerId,omitempty"`
	Row        *int    `json:"row,omitempty"`
	Col        *int    `json:"col,omitempty"`
}

type RoomCreated struct {
	Type     string          `json:"type"`
	RoomID   string          `json:"roomId"`
	PlayerID string          `json:"playerId"`
	Room     entity.RoomInfo `json:"room"`
}

type RoomJoined struct {
	Type     string          `json:"type"`
	PlayerID string          `json:"playerId"`
	Room     entity.RoomInfo `json:"room"`
}

type ErrorReply struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func missingField(name string) string {
	return "Missing required field: " + name
}

func unknownType(kind string) string {
	return "Unknown message type: " + kind
}

func (that *Dispatcher) sendMessage(conn entity.Connection, message any) error {
	data, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal response: %w", err)
	}

	if err = conn.Send(data); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	return nil
}

func (that *Dispatcher) sendErrorResponse(conn entity.Connection, errorMsg string) error {
	if err := that.sendMessage(conn, ErrorReply{Type: typeError, Message: errorMsg}); err != nil {
		return fmt.Errorf("failed to send error response: %w", err)
	}

	return nil
}
