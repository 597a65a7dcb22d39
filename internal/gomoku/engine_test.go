package gomoku

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omok-labs/gomoku-backend/internal/apperror"
	"github.com/omok-labs/gomoku-backend/internal/entity"
)

func newOngoingGame() *entity.Game {
	game := entity.NewGame("123", entity.PrivateType)
	game.Status = entity.StatusOngoing

	return game
}

func TestInBounds(t *testing.T) {
	t.Run("Accepts corners of the board", func(t *testing.T) {
		assert.True(t, InBounds(0, 0))
		assert.True(t, InBounds(0, entity.BoardSize-1))
		assert.True(t, InBounds(entity.BoardSize-1, 0))
		assert.True(t, InBounds(entity.BoardSize-1, entity.BoardSize-1))
	})

	t.Run("Rejects coordinates off the board", func(t *testing.T) {
		assert.False(t, InBounds(-1, 7))
		assert.False(t, InBounds(7, -1))
		assert.False(t, InBounds(entity.BoardSize, 7))
		assert.False(t, InBounds(7, entity.BoardSize))
	})
}

func TestMakeTurn_Validation(t *testing.T) {
	t.Run("Rejects move on a waiting game", func(t *testing.T) {
		// Given: a game nobody joined yet
		game := entity.NewGame("123", entity.PrivateType)

		// When: Black tries to place a stone
		err := MakeTurn(game, entity.PlayerBlack, 7, 7)

		// Then: the move is rejected and the board is unchanged
		require.ErrorIs(t, err, apperror.ErrGameIsNotStarted)
		assert.Equal(t, entity.NewGame("123", entity.PrivateType), game)
	})

	t.Run("Rejects out-of-bounds coordinates", func(t *testing.T) {
		// Given: an ongoing game
		game := newOngoingGame()

		// When: Black plays outside the grid
		err := MakeTurn(game, entity.PlayerBlack, entity.BoardSize, 0)

		// Then: the move is rejected and nothing changed
		require.ErrorIs(t, err, apperror.ErrOutOfBounds)
		assert.Equal(t, newOngoingGame(), game)
	})

	t.Run("Rejects move out of turn", func(t *testing.T) {
		// Given: an ongoing game where Black is to move
		game := newOngoingGame()

		// When: White plays instead
		err := MakeTurn(game, entity.PlayerWhite, 7, 7)

		// Then: the move is rejected and the turn did not change
		require.ErrorIs(t, err, apperror.ErrNotYourTurn)
		assert.Equal(t, entity.PlayerBlack, game.Turn)
		assert.Equal(t, newOngoingGame(), game)
	})

	t.Run("Rejects move on an occupied cell", func(t *testing.T) {
		// Given: an ongoing game with a stone at (7,7)
		game := newOngoingGame()
		require.NoError(t, MakeTurn(game, entity.PlayerBlack, 7, 7))

		// When: White plays on the same cell
		before := *game
		err := MakeTurn(game, entity.PlayerWhite, 7, 7)

		// Then: the move is rejected and the game is byte-for-byte unchanged
		require.ErrorIs(t, err, apperror.ErrCellOccupied)
		assert.Equal(t, &before, game)
	})

	t.Run("Rejects any move after the game finished", func(t *testing.T) {
		// Given: a finished game
		game := newOngoingGame()
		game.Status = entity.StatusFinished
		game.Winner = entity.PlayerBlack
		game.Turn = ""

		// When: either player tries to move anywhere
		err := MakeTurn(game, entity.PlayerWhite, 0, 0)

		// Then: the move is rejected
		require.ErrorIs(t, err, apperror.ErrGameFinished)
	})
}

func TestMakeTurn_Alternation(t *testing.T) {
	t.Run("Accepted move places exactly one stone and toggles the turn", func(t *testing.T) {
		// Given: an ongoing game
		game := newOngoingGame()

		// When: Black plays (7,7)
		err := MakeTurn(game, entity.PlayerBlack, 7, 7)

		// Then: only that cell holds a stone and White is to move
		require.NoError(t, err)
		assert.Equal(t, entity.PlayerWhite, game.Turn)

		for i, cell := range game.Board {
			if i == entity.CellIndex(7, 7) {
				assert.Equal(t, entity.PlayerBlack, cell)
				continue
			}
			assert.Equal(t, entity.EmptyCell, cell)
		}
	})

	t.Run("Rejected move does not toggle the turn", func(t *testing.T) {
		// Given: an ongoing game with a stone at (7,7)
		game := newOngoingGame()
		require.NoError(t, MakeTurn(game, entity.PlayerBlack, 7, 7))

		// When: White plays the occupied cell
		err := MakeTurn(game, entity.PlayerWhite, 7, 7)

		// Then: it is still White's move
		require.Error(t, err)
		assert.Equal(t, entity.PlayerWhite, game.Turn)
	})
}

func TestMakeTurn_WinDetection(t *testing.T) {
	t.Run("Horizontal five wins exactly on the fifth stone", func(t *testing.T) {
		// Given: an ongoing game; Black builds (7,3)..(7,7) while White
		// answers elsewhere
		game := newOngoingGame()

		for i := 0; i < 4; i++ {
			require.NoError(t, MakeTurn(game, entity.PlayerBlack, 7, 3+i))
			assert.False(t, game.IsFinished(), "no win before the fifth stone")
			require.NoError(t, MakeTurn(game, entity.PlayerWhite, 0, i))
		}

		// When: the fifth stone lands
		require.NoError(t, MakeTurn(game, entity.PlayerBlack, 7, 7))

		// Then: Black wins and the game is finished
		assert.True(t, game.IsFinished())
		assert.Equal(t, entity.PlayerBlack, game.Winner)
		assert.Equal(t, entity.EmptyCell, game.Turn)
	})

	t.Run("Vertical five wins", func(t *testing.T) {
		game := newOngoingGame()

		for i := 0; i < 4; i++ {
			require.NoError(t, MakeTurn(game, entity.PlayerBlack, 3+i, 7))
			require.NoError(t, MakeTurn(game, entity.PlayerWhite, i, 0))
		}

		require.NoError(t, MakeTurn(game, entity.PlayerBlack, 7, 7))

		assert.True(t, game.IsFinished())
		assert.Equal(t, entity.PlayerBlack, game.Winner)
	})

	t.Run("Diagonal five wins on the fifth stone", func(t *testing.T) {
		// Given: Black builds (0,0),(1,1),(2,2),(3,3); White answers on row 14
		game := newOngoingGame()

		for i := 0; i < 4; i++ {
			require.NoError(t, MakeTurn(game, entity.PlayerBlack, i, i))
			require.NoError(t, MakeTurn(game, entity.PlayerWhite, 14, i))
		}

		// When: (4,4) completes the diagonal
		require.NoError(t, MakeTurn(game, entity.PlayerBlack, 4, 4))

		// Then: Black wins
		assert.True(t, game.IsFinished())
		assert.Equal(t, entity.PlayerBlack, game.Winner)
	})

	t.Run("Anti-diagonal five completed from the middle wins", func(t *testing.T) {
		// Given: Black holds (2,10),(3,9),(5,7),(6,6); the gap at (4,8)
		// joins two runs of two
		game := newOngoingGame()

		blackStones := [][2]int{{2, 10}, {3, 9}, {5, 7}, {6, 6}}
		for i, stone := range blackStones {
			require.NoError(t, MakeTurn(game, entity.PlayerBlack, stone[0], stone[1]))
			require.NoError(t, MakeTurn(game, entity.PlayerWhite, 14, i))
		}

		// When: Black fills the gap
		require.NoError(t, MakeTurn(game, entity.PlayerBlack, 4, 8))

		// Then: the both-direction scan finds the five
		assert.True(t, game.IsFinished())
		assert.Equal(t, entity.PlayerBlack, game.Winner)
	})

	t.Run("Overline of six still wins", func(t *testing.T) {
		// Given: Black holds (7,3),(7,4),(7,5) and (7,7),(7,8); the stone
		// at (7,6) makes a run of six
		game := newOngoingGame()

		blackStones := [][2]int{{7, 3}, {7, 4}, {7, 5}, {7, 7}, {7, 8}}
		for i, stone := range blackStones {
			require.NoError(t, MakeTurn(game, entity.PlayerBlack, stone[0], stone[1]))
			require.NoError(t, MakeTurn(game, entity.PlayerWhite, 0, 2*i))
		}

		// When: Black bridges the runs
		require.NoError(t, MakeTurn(game, entity.PlayerBlack, 7, 6))

		// Then: six in a row wins, the count test is >= 5 not == 5
		assert.True(t, game.IsFinished())
		assert.Equal(t, entity.PlayerBlack, game.Winner)
	})

	t.Run("Four in a row does not win", func(t *testing.T) {
		game := newOngoingGame()

		for i := 0; i < 4; i++ {
			require.NoError(t, MakeTurn(game, entity.PlayerBlack, 7, 3+i))
			require.NoError(t, MakeTurn(game, entity.PlayerWhite, 0, i))
		}

		assert.False(t, game.IsFinished())
		assert.Empty(t, game.Winner)
	})
}

func TestCheckWin(t *testing.T) {
	t.Run("Pure query does not mutate the board", func(t *testing.T) {
		// Given: a board with a black four
		game := newOngoingGame()
		for i := 0; i < 4; i++ {
			game.Board[entity.CellIndex(7, 3+i)] = entity.PlayerBlack
		}
		before := game.Board

		// When: probing a completing cell
		won := CheckWin(game.Board, 7, 7, entity.PlayerBlack)

		// Then: the probed cell counts as the placed stone, the board
		// itself is untouched
		assert.True(t, won)
		assert.Equal(t, before, game.Board)
	})

	t.Run("Win must pass through the probed stone", func(t *testing.T) {
		// Given: a black five on row 7
		var board [entity.BoardCells]string
		for i := 0; i < 5; i++ {
			board[entity.CellIndex(7, 3+i)] = entity.PlayerBlack
		}

		// Then: probing a cell on a different line sees no win
		assert.False(t, CheckWin(board, 0, 0, entity.PlayerBlack))
		// probing inside the run sees it
		assert.True(t, CheckWin(board, 7, 5, entity.PlayerBlack))
	})

	t.Run("Opponent stones break the run", func(t *testing.T) {
		var board [entity.BoardCells]string
		board[entity.CellIndex(7, 3)] = entity.PlayerBlack
		board[entity.CellIndex(7, 4)] = entity.PlayerBlack
		board[entity.CellIndex(7, 5)] = entity.PlayerWhite
		board[entity.CellIndex(7, 6)] = entity.PlayerBlack
		board[entity.CellIndex(7, 7)] = entity.PlayerBlack
		board[entity.CellIndex(7, 8)] = entity.PlayerBlack

		assert.False(t, CheckWin(board, 7, 4, entity.PlayerBlack))
	})
}

func TestToggleMark(t *testing.T) {
	assert.Equal(t, entity.PlayerWhite, ToggleMark(entity.PlayerBlack))
	assert.Equal(t, entity.PlayerBlack, ToggleMark(entity.PlayerWhite))
}
