package service

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/omok-labs/gomoku-backend/internal/entity"
	"github.com/omok-labs/gomoku-backend/internal/gomoku"
)

var (
	ErrBotNotFound      = errors.New("bot player not found")
	ErrNoAvailableMoves = errors.New("no available moves")
)

type BotService interface {
	MakeTurn(game *entity.Game) error
}

type botService struct{}

func NewBotService() BotService {
	return &botService{}
}

// MakeTurn - plays one stone for the bot: an immediately winning cell
// if one exists, otherwise a cell that blocks the opponent's immediate
// win, otherwise a random empty cell.
func (that *botService) MakeTurn(game *entity.Game) error {
	availableCells := make([]int, 0, len(game.Board))
	for i, cell := range game.Board {
		if cell == entity.EmptyCell {
			availableCells = append(availableCells, i)
		}
	}

	if len(availableCells) == 0 {
		return ErrNoAvailableMoves
	}

	var botPlayer *entity.Player
	for _, player := range game.Players {
		if player.IsBot() {
			botPlayer = player
			break
		}
	}

	if botPlayer == nil {
		return ErrBotNotFound
	}

	chosenCell := chooseCell(game, botPlayer.Mark, availableCells)

	row := chosenCell / entity.BoardSize
	col := chosenCell % entity.BoardSize

	if err := gomoku.MakeTurn(game, botPlayer.Mark, row, col); err != nil {
		return fmt.Errorf("bot failed to make turn: %w", err)
	}

	return nil
}

func chooseCell(game *entity.Game, botMark string, availableCells []int) int {
	if cell, ok := findWinningCell(game.Board, botMark, availableCells); ok {
		return cell
	}

	// block the opponent's five before it lands
	if cell, ok := findWinningCell(game.Board, gomoku.ToggleMark(botMark), availableCells); ok {
		return cell
	}

	return availableCells[rand.Intn(len(availableCells))] //nolint: gosec // not used for crypto
}

// findWinningCell - probes every empty cell on a scratch copy of the
// board and reports the first one that completes a five for the mark.
func findWinningCell(board [entity.BoardCells]string, mark string, availableCells []int) (int, bool) {
	for _, cell := range availableCells {
		board[cell] = mark
		won := gomoku.CheckWin(board, cell/entity.BoardSize, cell%entity.BoardSize, mark)
		board[cell] = entity.EmptyCell

		if won {
			return cell, true
		}
	}

	return 0, false
}
