package websocket

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
)

type roomManager interface {
	CreateRoom(maxPlayers int) (entity.RoomInfo, error)
	JoinRoom(roomID, name string, conn entity.Connection) (string, entity.RoomInfo, error)
	LeaveRoom(playerID string) error
	MakeMove(playerID string, row, col int) error
}

type handlerFunc func(ctx context.Context, msg *Message, conn entity.Connection) error

// Dispatcher routes decoded messages to the room manager and keeps track of which
// player each connection currently plays as, so a closed connection can leave its room.
type Dispatcher struct {
	logger *slog.Logger
	rooms  roomManager

	handlers map[string]handlerFunc

	sessionsMutex sync.Mutex
	connPlayers   map[string]string
	playerConns   map[string]string
}

func NewDispatcher(logger *slog.Logger, rooms roomManager) *Dispatcher {
	dispatcher := &Dispatcher{
		logger: logger.With("component", "dispatcher"),
		rooms:  rooms,

		handlers: make(map[string]handlerFunc),

		connPlayers: make(map[string]string),
		playerConns: make(map[string]string),
	}

	dispatcher.handlers[typeCreateRoom] = dispatcher.handleCreateRoom
	dispatcher.handlers[typeJoinRoom] = dispatcher.handleJoinRoom
	dispatcher.handlers[typeMakeMove] = dispatcher.handleMakeMove
	dispatcher.handlers[typeLeaveRoom] = dispatcher.handleLeaveRoom

	return dispatcher
}

// Dispatch - decodes one inbound message and runs its handler. Bad input is answered
// with an error reply and never reaches the room manager.
func (that *Dispatcher) Dispatch(ctx context.Context, conn entity.Connection, data []byte) {
	log := that.logger.With("method", "Dispatch", "connID", conn.ID())

	defer func() {
		if r := recover(); r != nil {
			log.Error("recovered from panic while handling message", "panic", r)

			if err := that.sendErrorResponse(conn, errMsgInvalidFormat); err != nil {
				log.Error("failed to send error response", "error", err)
			}
		}
	}()

	var message Message
	if err := json.Unmarshal(data, &message); err != nil {
		log.Warn("failed to unmarshal message", "error", err)

		if err = that.sendErrorResponse(conn, errMsgInvalidFormat); err != nil {
			log.Error("failed to send error response", "error", err)
		}

		return
	}

	if message.Type == "" {
		if err := that.sendErrorResponse(conn, missingField("type")); err != nil {
			log.Error("failed to send error response", "error", err)
		}

		return
	}

	handler, ok := that.handlers[message.Type]
	if !ok {
		log.Warn("unknown message type", "type", message.Type)

		if err := that.sendErrorResponse(conn, unknownType(message.Type)); err != nil {
			log.Error("failed to send error response", "error", err)
		}

		return
	}

	if err := handler(ctx, &message, conn); err != nil {
		log.Error("error processing message", "type", message.Type, "error", err)
	}
}

// Disconnect - runs the leave path for whatever player the connection was bound to.
func (that *Dispatcher) Disconnect(conn entity.Connection) {
	log := that.logger.With("method", "Disconnect", "connID", conn.ID())

	playerID, ok := that.unbindConn(conn.ID())
	if !ok {
		log.Debug("connection closed without a player")
		return
	}

	if err := that.rooms.LeaveRoom(playerID); err != nil {
		log.Warn("failed to leave room on disconnect", "playerID", playerID, "error", err)
		return
	}

	log.Info("player disconnected", "playerID", playerID)
}

// PlayerFor - returns the player the connection is bound to.
func (that *Dispatcher) PlayerFor(connID string) (string, bool) {
	that.sessionsMutex.Lock()
	defer that.sessionsMutex.Unlock()

	playerID, ok := that.connPlayers[connID]

	return playerID, ok
}

func (that *Dispatcher) bind(connID, playerID string) {
	that.sessionsMutex.Lock()
	defer that.sessionsMutex.Unlock()

	that.connPlayers[connID] = playerID
	that.playerConns[playerID] = connID
}

func (that *Dispatcher) unbindConn(connID string) (string, bool) {
	that.sessionsMutex.Lock()
	defer that.sessionsMutex.Unlock()

	playerID, ok := that.connPlayers[connID]
	if !ok {
		return "", false
	}

	delete(that.connPlayers, connID)
	delete(that.playerConns, playerID)

	return playerID, true
}

func (that *Dispatcher) unbindPlayer(playerID string) {
	that.sessionsMutex.Lock()
	defer that.sessionsMutex.Unlock()

	connID, ok := that.playerConns[playerID]
	if !ok {
		return
	}

	delete(that.playerConns, playerID)
	delete(that.connPlayers, connID)
}

// leaveCurrentRoom makes a connection that creates or joins again give up its old seat.
func (that *Dispatcher) leaveCurrentRoom(conn entity.Connection) {
	playerID, ok := that.unbindConn(conn.ID())
	if !ok {
		return
	}

	if err := that.rooms.LeaveRoom(playerID); err != nil {
		that.logger.Warn("failed to leave previous room", "connID", conn.ID(), "playerID", playerID, "error", err)
	}
}
