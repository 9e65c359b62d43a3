package gomoku

import (
	"fmt"
	"time"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
)

// NewRoom - allocates an empty room in the waiting state. Seats follow entity.Marks.
func NewRoom(id string, maxPlayers int, now time.Time) (*entity.Room, error) {
	if maxPlayers < entity.MinPlayers || maxPlayers > entity.MaxPlayers {
		return nil, fmt.Errorf("%w: got %d", apperror.ErrInvalidRoomSize, maxPlayers)
	}

	turnOrder := make([]entity.Mark, maxPlayers)
	copy(turnOrder, entity.Marks[:maxPlayers])

	return &entity.Room{
		ID:          id,
		MaxPlayers:  maxPlayers,
		Players:     make([]*entity.Player, 0, maxPlayers),
		TurnOrder:   turnOrder,
		Status:      entity.StatusWaiting,
		CurrentMark: turnOrder[0],
		CreatedAt:   now,
	}, nil
}

// Join - seats the player with the next mark in turn order and starts the game once the room is full.
func Join(room *entity.Room, player *entity.Player, now time.Time) error {
	if room.Closed {
		return apperror.ErrRoomNotFound
	}

	if room.IsFull() {
		return fmt.Errorf("%w: room %s", apperror.ErrRoomFull, room.ID)
	}

	player.Mark = freeMark(room)
	room.Players = append(room.Players, player)

	if room.IsFull() {
		if room.IsFinished() {
			Reset(room)
		}

		room.Status = entity.StatusPlaying
		room.CurrentMark = room.TurnOrder[0]
		room.StartedAt = now
	}

	return nil
}

// freeMark returns the first mark in turn order no seated player holds.
// Seats vacated mid-game are refilled before later ones.
func freeMark(room *entity.Room) entity.Mark {
	taken := make(map[entity.Mark]bool, len(room.Players))
	for _, player := range room.Players {
		taken[player.Mark] = true
	}

	for _, mark := range room.TurnOrder {
		if !taken[mark] {
			return mark
		}
	}

	return entity.EmptyCell
}

// MakeTurn - places the player's mark and advances the game. A rejected move leaves the room untouched.
func MakeTurn(room *entity.Room, playerID string, row, col int) (entity.Move, error) {
	player, _ := room.FindPlayer(playerID)
	if player == nil {
		return entity.Move{}, apperror.ErrPlayerNotInRoom
	}

	if err := validateMove(room, player.Mark, row, col); err != nil {
		return entity.Move{}, fmt.Errorf("invalid turn: %w", err)
	}

	room.Board[row][col] = player.Mark
	room.MoveCount++
	updateGameStatus(room, row, col, player.Mark)

	return entity.Move{Row: row, Col: col, Player: player.Mark}, nil
}

// validateMove - checks if the move is valid.
func validateMove(room *entity.Room, mark entity.Mark, row, col int) error {
	switch {
	case room.IsWaiting():
		return apperror.ErrGameIsNotStarted
	case room.IsFinished():
		return apperror.ErrGameFinished
	}

	if room.CurrentMark != mark {
		return apperror.ErrNotYourTurn
	}

	if !InBounds(row, col) {
		return fmt.Errorf("%w: (%d, %d)", apperror.ErrInvalidCell, row, col)
	}

	if room.Board[row][col] != entity.EmptyCell {
		return apperror.ErrCellOccupied
	}

	return nil
}

// updateGameStatus - checks the game status after a move.
func updateGameStatus(room *entity.Room, row, col int, mark entity.Mark) {
	switch {
	case CheckWin(&room.Board, row, col, mark, WinLength(room.MaxPlayers)):
		room.Status = entity.StatusWon
		room.Winner = mark
	case IsBoardFull(&room.Board):
		room.Status = entity.StatusDraw
	default:
		room.CurrentMark = nextMark(room.TurnOrder, mark)
	}
}

func nextMark(turnOrder []entity.Mark, current entity.Mark) entity.Mark {
	for i, mark := range turnOrder {
		if mark == current {
			return turnOrder[(i+1)%len(turnOrder)]
		}
	}

	return turnOrder[0]
}

// Leave - removes the player. It reports whether the room is now empty and closed.
// Leaving a game in progress voids it: the room goes back to waiting for a full roster.
func Leave(room *entity.Room, playerID string) (bool, error) {
	_, idx := room.FindPlayer(playerID)
	if idx < 0 {
		return false, apperror.ErrPlayerNotInRoom
	}

	room.Players = append(room.Players[:idx], room.Players[idx+1:]...)

	if len(room.Players) == 0 {
		room.Closed = true
		return true, nil
	}

	if room.IsPlaying() {
		Reset(room)
	}

	return false, nil
}

// Reset - clears the board and returns the room to waiting. Seated players keep their marks.
func Reset(room *entity.Room) {
	room.Status = entity.StatusWaiting
	room.Board.Clear()
	room.CurrentMark = room.TurnOrder[0]
	room.MoveCount = 0
	room.Winner = entity.EmptyCell
	room.StartedAt = time.Time{}
}
