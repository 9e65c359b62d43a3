package entity

import "time"

const (
	EventRoomUpdate = "room-update"
	EventGameUpdate = "game-update"
)

type PlayerInfo struct {
	Name   string `json:"name"`
	Symbol Mark   `json:"symbol"`
}

type GameState struct {
	Board         Board  `json:"board"`
	CurrentPlayer Mark   `json:"currentPlayer"`
	TurnOrder     []Mark `json:"turnOrder"`
	Status        Status `json:"status"`
	Winner        *Mark  `json:"winner"`
	MoveCount     int    `json:"moveCount"`
	PlayerCount   int    `json:"playerCount"`
}

type RoomInfo struct {
	ID             string       `json:"id"`
	MaxPlayers     int          `json:"maxPlayers"`
	CurrentPlayers int          `json:"currentPlayers"`
	Players        []PlayerInfo `json:"players"`
	GameState      GameState    `json:"gameState"`
}

type Move struct {
	Row    int  `json:"row"`
	Col    int  `json:"col"`
	Player Mark `json:"player"`
}

// RoomUpdate is sent to the whole room after a join or a leave.
type RoomUpdate struct {
	Type string   `json:"type"`
	Room RoomInfo `json:"room"`
}

// GameUpdate is sent to the whole room after every accepted move.
type GameUpdate struct {
	Type      string    `json:"type"`
	GameState GameState `json:"gameState"`
	Move      Move      `json:"move"`
}

// MatchResult is the record kept for a match that ended in a win or a draw.
type MatchResult struct {
	ID         string       `json:"id"`
	RoomID     string       `json:"roomId"`
	Status     Status       `json:"status"`
	Winner     Mark         `json:"winner,omitempty"`
	MoveCount  int          `json:"moveCount"`
	Players    []PlayerInfo `json:"players"`
	StartedAt  time.Time    `json:"startedAt"`
	FinishedAt time.Time    `json:"finishedAt"`
}

type Stats struct {
	Rooms   int `json:"rooms"`
	Players int `json:"players"`
}
