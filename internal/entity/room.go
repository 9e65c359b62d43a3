package entity

import (
	"sync"
	"time"
)

type Status string

const (
	StatusWaiting Status = "waiting"
	StatusPlaying Status = "playing"
	StatusWon     Status = "won"
	StatusDraw    Status = "draw"
)

const (
	MinPlayers = 2
	MaxPlayers = len(Marks)
)

type Room struct {
	ID         string
	MaxPlayers int
	Players    []*Player
	TurnOrder  []Mark

	Board       Board
	Status      Status
	CurrentMark Mark
	Winner      Mark
	MoveCount   int

	CreatedAt time.Time
	StartedAt time.Time

	// Closed is set once the last player leaves; the room must not be joined afterwards.
	Closed bool

	mu sync.Mutex
}

func (that *Room) Lock() {
	that.mu.Lock()
}

func (that *Room) Unlock() {
	that.mu.Unlock()
}

func (that *Room) IsWaiting() bool {
	return that.Status == StatusWaiting
}

func (that *Room) IsPlaying() bool {
	return that.Status == StatusPlaying
}

func (that *Room) IsFinished() bool {
	return that.Status == StatusWon || that.Status == StatusDraw
}

func (that *Room) IsFull() bool {
	return len(that.Players) >= that.MaxPlayers
}

// FindPlayer returns the player and its seat index, or nil and -1.
func (that *Room) FindPlayer(playerID string) (*Player, int) {
	for i, player := range that.Players {
		if player.ID == playerID {
			return player, i
		}
	}

	return nil, -1
}

// Info builds the public snapshot. The result shares no memory with the room.
func (that *Room) Info() RoomInfo {
	players := make([]PlayerInfo, 0, len(that.Players))
	for _, player := range that.Players {
		players = append(players, player.Info())
	}

	return RoomInfo{
		ID:             that.ID,
		MaxPlayers:     that.MaxPlayers,
		CurrentPlayers: len(that.Players),
		Players:        players,
		GameState:      that.State(),
	}
}

func (that *Room) State() GameState {
	var winner *Mark
	if that.Winner != EmptyCell {
		mark := that.Winner
		winner = &mark
	}

	return GameState{
		Board:         that.Board,
		CurrentPlayer: that.CurrentMark,
		TurnOrder:     append([]Mark(nil), that.TurnOrder...),
		Status:        that.Status,
		Winner:        winner,
		MoveCount:     that.MoveCount,
		PlayerCount:   that.MaxPlayers,
	}
}
