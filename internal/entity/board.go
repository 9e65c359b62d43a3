package entity

import (
	"encoding/json"
	"fmt"
)

type Mark string

const (
	MarkX        Mark = "X"
	MarkO        Mark = "O"
	MarkTriangle Mark = "triangle"
	MarkSquare   Mark = "square"

	EmptyCell Mark = ""
)

// Marks is the fixed seating sequence; a room for N players uses the first N of them.
var Marks = [...]Mark{MarkX, MarkO, MarkTriangle, MarkSquare}

const BoardSize = 15

// Board is a BoardSize x BoardSize grid indexed as [row][col].
type Board [BoardSize][BoardSize]Mark

// MarshalJSON encodes empty cells as null so clients get the same shape they render.
func (that Board) MarshalJSON() ([]byte, error) {
	var rows [BoardSize][BoardSize]*Mark

	for row := range that {
		for col := range that[row] {
			if that[row][col] == EmptyCell {
				continue
			}

			mark := that[row][col]
			rows[row][col] = &mark
		}
	}

	return json.Marshal(rows)
}

func (that *Board) UnmarshalJSON(data []byte) error {
	var rows [][]*Mark
	if err := json.Unmarshal(data, &rows); err != nil {
		return fmt.Errorf("failed to unmarshal board: %w", err)
	}

	var board Board
	for row := 0; row < len(rows) && row < BoardSize; row++ {
		for col := 0; col < len(rows[row]) && col < BoardSize; col++ {
			if rows[row][col] != nil {
				board[row][col] = *rows[row][col]
			}
		}
	}

	*that = board

	return nil
}

// Clear empties every cell.
func (that *Board) Clear() {
	*that = Board{}
}
