package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
	"github.com/rocketscienceinc/gomoku-backend/internal/gomoku"
	"github.com/rocketscienceinc/gomoku-backend/internal/pkg"
)

const (
	maxRoomIDAttempts = 16
	recordTimeout     = 5 * time.Second
)

var ErrRoomIDExhausted = errors.New("could not allocate a free room id")

type broadcaster interface {
	Broadcast(roomID string, players []*entity.Player, message any) (int, error)
}

type matchRepo interface {
	Save(ctx context.Context, result *entity.MatchResult) error
}

// RoomManager owns every live room and the player -> room back-references.
//
// Locking: the registry lock guards the two maps only. A room lock may be held
// while taking the registry lock, never the other way round.
type RoomManager struct {
	logger      *slog.Logger
	broadcaster broadcaster
	matchRepo   matchRepo

	roomIDLength int
	now          func() time.Time

	mu          sync.RWMutex
	rooms       map[string]*entity.Room
	playerRooms map[string]string

	pending sync.WaitGroup
}

func NewRoomManager(logger *slog.Logger, broadcaster broadcaster, matchRepo matchRepo, roomIDLength int) *RoomManager {
	return &RoomManager{
		logger:      logger.With("component", "room_manager"),
		broadcaster: broadcaster,
		matchRepo:   matchRepo,

		roomIDLength: roomIDLength,
		now:          time.Now,

		rooms:       make(map[string]*entity.Room),
		playerRooms: make(map[string]string),
	}
}

// CreateRoom - allocates an empty waiting room under a fresh id.
func (that *RoomManager) CreateRoom(maxPlayers int) (entity.RoomInfo, error) {
	log := that.logger.With("method", "CreateRoom")

	that.mu.Lock()
	defer that.mu.Unlock()

	roomID, err := that.newRoomID()
	if err != nil {
		return entity.RoomInfo{}, err
	}

	room, err := gomoku.NewRoom(roomID, maxPlayers, that.now())
	if err != nil {
		return entity.RoomInfo{}, fmt.Errorf("failed to create room: %w", err)
	}

	that.rooms[room.ID] = room

	log.Info("room created", "roomID", room.ID, "maxPlayers", maxPlayers)

	return room.Info(), nil
}

// newRoomID must be called with the registry lock held.
func (that *RoomManager) newRoomID() (string, error) {
	for range maxRoomIDAttempts {
		roomID, err := pkg.GenerateRoomID(that.roomIDLength)
		if err != nil {
			return "", fmt.Errorf("failed to generate room id: %w", err)
		}

		if _, taken := that.rooms[roomID]; !taken {
			return roomID, nil
		}
	}

	return "", ErrRoomIDExhausted
}

// JoinRoom - seats a new player in the room and tells everyone in it.
func (that *RoomManager) JoinRoom(roomID, name string, conn entity.Connection) (string, entity.RoomInfo, error) {
	log := that.logger.With("method", "JoinRoom")

	room, err := that.getRoom(pkg.NormalizeRoomID(roomID))
	if err != nil {
		return "", entity.RoomInfo{}, err
	}

	room.Lock()
	defer room.Unlock()

	player := &entity.Player{
		ID:   pkg.GenerateNewSessionID(),
		Name: name,
		Conn: conn,
	}

	if err = gomoku.Join(room, player, that.now()); err != nil {
		return "", entity.RoomInfo{}, fmt.Errorf("failed to join room: %w", err)
	}

	that.mu.Lock()
	that.playerRooms[player.ID] = room.ID
	that.mu.Unlock()

	log.Info("player joined room", "roomID", room.ID, "playerID", player.ID, "name", name, "mark", player.Mark)

	that.broadcastLocked(room, entity.RoomUpdate{Type: entity.EventRoomUpdate, Room: room.Info()})

	return player.ID, room.Info(), nil
}

// LeaveRoom - removes the player. The room is dropped once empty, otherwise the rest are told.
func (that *RoomManager) LeaveRoom(playerID string) error {
	log := that.logger.With("method", "LeaveRoom", "playerID", playerID)

	room, err := that.getRoomByPlayerID(playerID)
	if err != nil {
		return err
	}

	room.Lock()
	defer room.Unlock()

	emptied, err := gomoku.Leave(room, playerID)
	if err != nil {
		return fmt.Errorf("failed to leave room: %w", err)
	}

	that.mu.Lock()
	delete(that.playerRooms, playerID)
	if emptied && that.rooms[room.ID] == room {
		delete(that.rooms, room.ID)
	}
	that.mu.Unlock()

	if emptied {
		log.Info("room deleted", "roomID", room.ID)
		return nil
	}

	log.Info("player left room", "roomID", room.ID, "status", room.Status)

	that.broadcastLocked(room, entity.RoomUpdate{Type: entity.EventRoomUpdate, Room: room.Info()})

	return nil
}

// MakeMove - plays the player's stone and sends the new state to the room.
func (that *RoomManager) MakeMove(playerID string, row, col int) error {
	log := that.logger.With("method", "MakeMove", "playerID", playerID)

	room, err := that.getRoomByPlayerID(playerID)
	if err != nil {
		return err
	}

	room.Lock()
	defer room.Unlock()

	move, err := gomoku.MakeTurn(room, playerID, row, col)
	if err != nil {
		return fmt.Errorf("failed to make turn: %w", err)
	}

	that.broadcastLocked(room, entity.GameUpdate{
		Type:      entity.EventGameUpdate,
		GameState: room.State(),
		Move:      move,
	})

	if room.IsFinished() {
		log.Info("game finished", "roomID", room.ID, "status", room.Status, "winner", room.Winner, "moves", room.MoveCount)
		that.recordMatch(room)
	}

	return nil
}

// Broadcast - sends the message to everyone in the room. Unknown rooms are ignored.
func (that *RoomManager) Broadcast(roomID string, message any) {
	room, err := that.getRoom(roomID)
	if err != nil {
		return
	}

	room.Lock()
	defer room.Unlock()

	that.broadcastLocked(room, message)
}

func (that *RoomManager) broadcastLocked(room *entity.Room, message any) {
	if _, err := that.broadcaster.Broadcast(room.ID, room.Players, message); err != nil {
		that.logger.Error("failed to broadcast", "roomID", room.ID, "error", err)
	}
}

// recordMatch hands the finished match to the repository without holding up the room.
func (that *RoomManager) recordMatch(room *entity.Room) {
	players := make([]entity.PlayerInfo, 0, len(room.Players))
	for _, player := range room.Players {
		players = append(players, player.Info())
	}

	result := &entity.MatchResult{
		ID:         pkg.GenerateNewSessionID(),
		RoomID:     room.ID,
		Status:     room.Status,
		Winner:     room.Winner,
		MoveCount:  room.MoveCount,
		Players:    players,
		StartedAt:  room.StartedAt,
		FinishedAt: that.now(),
	}

	that.pending.Add(1)
	go func() {
		defer that.pending.Done()

		ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
		defer cancel()

		if err := that.matchRepo.Save(ctx, result); err != nil {
			that.logger.Error("failed to save match result", "roomID", result.RoomID, "matchID", result.ID, "error", err)
		}
	}()
}

// Wait - blocks until every pending match record is written.
func (that *RoomManager) Wait() {
	that.pending.Wait()
}

// GetRoom - returns a snapshot of the room.
func (that *RoomManager) GetRoom(roomID string) (entity.RoomInfo, error) {
	room, err := that.getRoom(pkg.NormalizeRoomID(roomID))
	if err != nil {
		return entity.RoomInfo{}, err
	}

	room.Lock()
	defer room.Unlock()

	return room.Info(), nil
}

// Stats - counts live rooms and seated players.
func (that *RoomManager) Stats() entity.Stats {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return entity.Stats{
		Rooms:   len(that.rooms),
		Players: len(that.playerRooms),
	}
}

func (that *RoomManager) getRoom(roomID string) (*entity.Room, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	room, ok := that.rooms[roomID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperror.ErrRoomNotFound, roomID)
	}

	return room, nil
}

func (that *RoomManager) getRoomByPlayerID(playerID string) (*entity.Room, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	roomID, ok := that.playerRooms[playerID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperror.ErrPlayerNotFound, playerID)
	}

	room, ok := that.rooms[roomID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperror.ErrRoomNotFound, roomID)
	}

	return room, nil
}
