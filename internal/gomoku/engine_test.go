package gomoku

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
)

// placeLine puts length marks starting at (row, col) and stepping by (dRow, dCol).
func placeLine(board *entity.Board, row, col, dRow, dCol, length int, mark entity.Mark) {
	for i := 0; i < length; i++ {
		board[row+i*dRow][col+i*dCol] = mark
	}
}

// drawPattern fills the board so that no mark has a run longer than two on any axis.
func drawPattern(row, col int) entity.Mark {
	if (row/2+col)%2 == 0 {
		return entity.MarkX
	}

	return entity.MarkO
}

func TestWinLength(t *testing.T) {
	assert.Equal(t, 5, WinLength(2))
	assert.Equal(t, 4, WinLength(3))
	assert.Equal(t, 4, WinLength(4))
}

func TestCheckWin(t *testing.T) {
	axesCases := []struct {
		name       string
		row, col   int
		dRow, dCol int
	}{
		{name: "horizontal", row: 7, col: 3, dRow: 0, dCol: 1},
		{name: "vertical", row: 2, col: 9, dRow: 1, dCol: 0},
		{name: "main diagonal", row: 4, col: 4, dRow: 1, dCol: 1},
		{name: "anti diagonal", row: 3, col: 12, dRow: 1, dCol: -1},
	}

	for _, winLength := range []int{4, 5} {
		for _, tc := range axesCases {
			t.Run(tc.name, func(t *testing.T) {
				// Given: a run of exactly winLength marks along the axis
				var board entity.Board
				placeLine(&board, tc.row, tc.col, tc.dRow, tc.dCol, winLength, entity.MarkX)

				// Then: every stone in the run is reported as winning
				for i := 0; i < winLength; i++ {
					r, c := tc.row+i*tc.dRow, tc.col+i*tc.dCol
					assert.True(t, CheckWin(&board, r, c, entity.MarkX, winLength), "stone %d at (%d, %d)", i, r, c)
				}
			})

			t.Run(tc.name+" one short", func(t *testing.T) {
				// Given: a run of winLength-1 marks along the axis
				var board entity.Board
				placeLine(&board, tc.row, tc.col, tc.dRow, tc.dCol, winLength-1, entity.MarkX)

				// Then: no stone of the run wins
				for i := 0; i < winLength-1; i++ {
					r, c := tc.row+i*tc.dRow, tc.col+i*tc.dCol
					assert.False(t, CheckWin(&board, r, c, entity.MarkX, winLength))
				}
			})
		}
	}

	t.Run("Run broken by another mark does not win", func(t *testing.T) {
		// Given: X X O X X on one row
		var board entity.Board
		placeLine(&board, 0, 0, 0, 1, 5, entity.MarkX)
		board[0][2] = entity.MarkO

		// Then: the gap stops the count
		assert.False(t, CheckWin(&board, 0, 4, entity.MarkX, 5))
	})

	t.Run("Run along the board edge wins", func(t *testing.T) {
		// Given: the last five cells of the bottom row
		var board entity.Board
		placeLine(&board, entity.BoardSize-1, entity.BoardSize-5, 0, 1, 5, entity.MarkSquare)

		// Then: the corner stone completes the run
		assert.True(t, CheckWin(&board, entity.BoardSize-1, entity.BoardSize-1, entity.MarkSquare, 5))
	})

	t.Run("Longer run still wins", func(t *testing.T) {
		var board entity.Board
		placeLine(&board, 5, 0, 0, 1, 7, entity.MarkO)

		assert.True(t, CheckWin(&board, 5, 3, entity.MarkO, 5))
	})

	t.Run("Other marks are ignored", func(t *testing.T) {
		var board entity.Board
		placeLine(&board, 5, 0, 0, 1, 5, entity.MarkO)

		assert.False(t, CheckWin(&board, 5, 2, entity.MarkX, 5))
	})

	t.Run("Out of bounds position never wins", func(t *testing.T) {
		var board entity.Board

		assert.False(t, CheckWin(&board, -1, 0, entity.MarkX, 1))
		assert.False(t, CheckWin(&board, 0, entity.BoardSize, entity.MarkX, 1))
	})
}

func TestIsBoardFull(t *testing.T) {
	t.Run("Empty board is not full", func(t *testing.T) {
		var board entity.Board

		assert.False(t, IsBoardFull(&board))
	})

	t.Run("Board with one gap is not full", func(t *testing.T) {
		// Given: every cell filled except the center
		var board entity.Board
		for row := range board {
			for col := range board[row] {
				board[row][col] = drawPattern(row, col)
			}
		}
		board[7][7] = entity.EmptyCell

		assert.False(t, IsBoardFull(&board))
	})

	t.Run("Filled board is full", func(t *testing.T) {
		var board entity.Board
		for row := range board {
			for col := range board[row] {
				board[row][col] = drawPattern(row, col)
			}
		}

		assert.True(t, IsBoardFull(&board))
	})
}
