package gomoku

import "github.com/rocketscienceinc/gomoku-backend/internal/entity"

const (
	duelWinLength  = 5
	crowdWinLength = 4
)

// axes are the four line directions through a cell: horizontal, vertical and both diagonals.
var axes = [4][2]int{
	{0, 1},
	{1, 0},
	{1, 1},
	{1, -1},
}

// WinLength - returns the run length needed to win: five for a duel, four otherwise.
func WinLength(maxPlayers int) int {
	if maxPlayers > entity.MinPlayers {
		return crowdWinLength
	}

	return duelWinLength
}

func InBounds(row, col int) bool {
	return row >= 0 && row < entity.BoardSize && col >= 0 && col < entity.BoardSize
}

// CheckWin - reports whether the stone at (row, col) completes a run of at least winLength marks.
func CheckWin(board *entity.Board, row, col int, mark entity.Mark, winLength int) bool {
	if mark == entity.EmptyCell || !InBounds(row, col) {
		return false
	}

	for _, axis := range axes {
		count := 1 + countRun(board, row, col, axis[0], axis[1], mark) + countRun(board, row, col, -axis[0], -axis[1], mark)
		if count >= winLength {
			return true
		}
	}

	return false
}

// countRun counts matching cells from (row, col) exclusive in one direction.
func countRun(board *entity.Board, row, col, dRow, dCol int, mark entity.Mark) int {
	count := 0

	for r, c := row+dRow, col+dCol; InBounds(r, c); r, c = r+dRow, c+dCol {
		if board[r][c] != mark {
			break
		}
		count++
	}

	return count
}

func IsBoardFull(board *entity.Board) bool {
	for row := range board {
		for col := range board[row] {
			if board[row][col] == entity.EmptyCell {
				return false
			}
		}
	}

	return true
}
