package gomoku

import (
	"github.com/omok-labs/gomoku-backend/internal/apperror"
	"github.com/omok-labs/gomoku-backend/internal/entity"
)

// WinLength - a run of five or more stones wins; overlines count too.
const WinLength = 5

// The four line axes: horizontal, vertical, diagonal, anti-diagonal.
// Each is walked in both directions from the placed stone.
var directions = [4][2]int{
	{0, 1},
	{1, 0},
	{1, 1},
	{1, -1},
}

// MakeTurn - places the mark at (row, col) and adjudicates the game.
// An invalid move leaves the game untouched and returns one of the
// apperror sentinels.
func MakeTurn(gameInstance *entity.Game, mark string, row, col int) error {
	if err := gameInstance.ConfirmOngoingState(); err != nil {
		return err
	}

	if err := validateMove(gameInstance, mark, row, col); err != nil {
		return err
	}

	gameInstance.Board[entity.CellIndex(row, col)] = mark
	updateGameStatus(gameInstance, mark, row, col)

	return nil
}

// InBounds - reports whether (row, col) lies on the board.
func InBounds(row, col int) bool {
	return row >= 0 && row < entity.BoardSize && col >= 0 && col < entity.BoardSize
}

// CheckWin - reports whether the stone at (row, col) completes a run of
// WinLength or more for the mark. Pure: the board is not modified. Only
// lines through (row, col) are scanned, which is sufficient because a
// new win must pass through the stone that created it.
func CheckWin(board [entity.BoardCells]string, row, col int, mark string) bool {
	for _, dir := range directions {
		count := 1
		count += countRun(board, row, col, dir[0], dir[1], mark)
		count += countRun(board, row, col, -dir[0], -dir[1], mark)

		if count >= WinLength {
			return true
		}
	}

	return false
}

// countRun - counts consecutive stones of the mark starting one step
// away from (row, col) in the given direction.
func countRun(board [entity.BoardCells]string, row, col, dRow, dCol int, mark string) int {
	run := 0

	for r, c := row+dRow, col+dCol; InBounds(r, c) && board[entity.CellIndex(r, c)] == mark; r, c = r+dRow, c+dCol {
		run++
	}

	return run
}

// validateMove - checks if the move is valid.
func validateMove(gameInstance *entity.Game, mark string, row, col int) error {
	if !InBounds(row, col) {
		return apperror.ErrOutOfBounds
	}

	if gameInstance.Turn != mark {
		return apperror.ErrNotYourTurn
	}

	if gameInstance.Board[entity.CellIndex(row, col)] != entity.EmptyCell {
		return apperror.ErrCellOccupied
	}

	return nil
}

// updateGameStatus - adjudicates the game after a stone was placed.
func updateGameStatus(gameInstance *entity.Game, mark string, row, col int) {
	if CheckWin(gameInstance.Board, row, col, mark) {
		gameInstance.Winner = mark
		gameInstance.Status = entity.StatusFinished
		gameInstance.Turn = ""
		return
	}

	if boardFull(gameInstance.Board) {
		gameInstance.Winner = entity.PlayerTie
		gameInstance.Status = entity.StatusFinished
		gameInstance.Turn = ""
		return
	}

	gameInstance.Turn = ToggleMark(mark)
}

func ToggleMark(currentMark string) string {
	if currentMark == entity.PlayerBlack {
		return entity.PlayerWhite
	}
	return entity.PlayerBlack
}

func boardFull(board [entity.BoardCells]string) bool {
	for _, cell := range board {
		if cell == entity.EmptyCell {
			return false
		}
	}

	return true
}
