package apperror

import "errors"

var (
	ErrGameFinished     = errors.New("game is already finished")
	ErrGameIsNotStarted = errors.New("game is not started")
	ErrNotYourTurn      = errors.New("it's not your turn")
	ErrCellOccupied     = errors.New("cell is already occupied")
	ErrInvalidCell      = errors.New("cell is out of the board")

	ErrRoomNotFound    = errors.New("room not found")
	ErrRoomFull        = errors.New("room is full")
	ErrInvalidRoomSize = errors.New("room size must be between 2 and 4 players")
	ErrPlayerNotFound  = errors.New("player not found")
	ErrPlayerNotInRoom = errors.New("player is not in the room")

	ErrMatchNotFound = errors.New("match not found")
)
