package entity

import (
	"fmt"

	"github.com/omok-labs/gomoku-backend/internal/apperror"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"
	StatusWaiting  = "waiting"

	PlayerBlack = "B"
	PlayerWhite = "W"
	PlayerTie   = "-"

	EmptyCell = ""
)

const (
	PrivateType = "private"
	WithBotType = "bot"
)

const (
	// BoardSize - the board is a fixed 15x15 grid.
	BoardSize  = 15
	BoardCells = BoardSize * BoardSize
)

var ErrUnknownGameStatus = fmt.Errorf("unknown game status")

// Game holds a single gomoku session: the board, whose turn it is and
// the lifecycle status. The board is stored flat, row-major.
type Game struct {
	ID      string             `json:"id"`
	Board   [BoardCells]string `json:"board"`
	Winner  string             `json:"winner,omitempty"`
	Status  string             `json:"status"`
	Turn    string             `json:"player_turn"`
	Players []*Player          `json:"players,omitempty"`
	Type    string             `json:"type,omitempty"`
}

func NewGame(id, gameType string) *Game {
	return &Game{
		ID:     id,
		Turn:   PlayerBlack,
		Status: StatusWaiting,
		Type:   gameType,
	}
}

// CellIndex - maps (row, col) to the flat board index.
func CellIndex(row, col int) int {
	return row*BoardSize + col
}

// Cell - returns the mark at (row, col), or EmptyCell when the
// coordinates are off the board.
func (that *Game) Cell(row, col int) string {
	if row < 0 || row >= BoardSize || col < 0 || col >= BoardSize {
		return EmptyCell
	}

	return that.Board[CellIndex(row, col)]
}

// Reset - wipes the board for a rematch on the same game ID. Black
// always opens.
func (that *Game) Reset() {
	that.Board = [BoardCells]string{}
	that.Winner = ""
	that.Turn = PlayerBlack

	if len(that.Players) >= 2 {
		that.Status = StatusOngoing
	} else {
		that.Status = StatusWaiting
	}
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) IsWaiting() bool {
	return that.Status == StatusWaiting
}

func (that *Game) ConfirmOngoingState() error {
	switch {
	case that.IsWaiting():
		return apperror.ErrGameIsNotStarted
	case that.IsFinished():
		return apperror.ErrGameFinished
	case that.IsOngoing():
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownGameStatus, that.Status)
	}
}

func (that *Game) IsWithBot() bool {
	return that.Type == WithBotType
}

// PlayerByMark - finds the player holding the given mark, nil when no
// such player joined.
func (that *Game) PlayerByMark(mark string) *Player {
	for _, player := range that.Players {
		if player.Mark == mark {
			return player
		}
	}

	return nil
}
