package tictactoe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-session/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-session/internal/entity"
)

func TestValidateGame_ReachableGames(t *testing.T) {
	// Given: every game reachable from a new game by legal moves
	var visit func(game entity.Game) int
	visit = func(game entity.Game) int {
		// Then: each of them is accepted
		require.NoError(t, ValidateGame(&game), "board %v", game.Board.Strings())

		visited := 1
		for cell := range game.Board {
			next := game
			if ApplyMove(&next, cell) == nil {
				visited += visit(next)
			}
		}

		return visited
	}

	// 549946 nodes in the full game tree including the empty board
	assert.Equal(t, 549946, visit(*entity.NewGame()))
}

func TestValidateGame_Rejects(t *testing.T) {
	topRow := entity.Line{0, 1, 2}

	// won builds X's top row win: X:0, O:3, X:1, O:4, X:2
	won := func() *entity.Game {
		game := entity.NewGame()
		playMoves(t, game, 0, 3, 1, 4, 2)
		return game
	}

	tests := []struct {
		name    string
		corrupt func(game *entity.Game)
		base    func() *entity.Game
	}{
		{
			name:    "Turn outside X and O",
			base:    entity.NewGame,
			corrupt: func(game *entity.Game) { game.Turn = "Z" },
		},
		{
			name:    "Empty turn",
			base:    entity.NewGame,
			corrupt: func(game *entity.Game) { game.Turn = entity.EmptyCell },
		},
		{
			name:    "O to move on an empty board",
			base:    entity.NewGame,
			corrupt: func(game *entity.Game) { game.Turn = entity.PlayerO },
		},
		{
			name: "X to move after X moved",
			base: entity.NewGame,
			corrupt: func(game *entity.Game) {
				game.Board[4] = entity.PlayerX
			},
		},
		{
			name:    "Won board stored as in progress",
			base:    won,
			corrupt: func(game *entity.Game) { game.Status, game.Winner, game.WinningLine = entity.StatusInProgress, "", nil },
		},
		{
			name:    "Unknown status",
			base:    entity.NewGame,
			corrupt: func(game *entity.Game) { game.Status = "paused" },
		},
		{
			name:    "Empty board stored as a draw",
			base:    entity.NewGame,
			corrupt: func(game *entity.Game) { game.Status = entity.StatusDraw },
		},
		{
			name:    "Wrong winner",
			base:    won,
			corrupt: func(game *entity.Game) { game.Winner = entity.PlayerO },
		},
		{
			name: "Wrong winning line",
			base: won,
			corrupt: func(game *entity.Game) {
				line := entity.Line{3, 4, 5}
				game.WinningLine = &line
			},
		},
		{
			name:    "Missing winning line",
			base:    won,
			corrupt: func(game *entity.Game) { game.WinningLine = nil },
		},
		{
			name:    "Turn moved on after the win",
			base:    won,
			corrupt: func(game *entity.Game) { game.Turn = entity.PlayerO },
		},
		{
			name: "Winner is not the last mover",
			base: entity.NewGame,
			corrupt: func(game *entity.Game) {
				// X completed the top row but O has moved since
				game.Board = entity.Board{
					entity.PlayerX, entity.PlayerX, entity.PlayerX,
					entity.PlayerO, entity.PlayerO, entity.EmptyCell,
					entity.PlayerO, entity.EmptyCell, entity.EmptyCell,
				}
				game.Status, game.Winner, game.WinningLine = entity.StatusWon, entity.PlayerX, &topRow
				game.Turn = entity.PlayerO
			},
		},
		{
			name:    "Round before the first game",
			base:    entity.NewGame,
			corrupt: func(game *entity.Game) { game.Round = 0 },
		},
		{
			name:    "Malformed board",
			base:    entity.NewGame,
			corrupt: func(game *entity.Game) { game.Board[0] = "Z" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Given: a legal game with one field corrupted
			game := tt.base()
			require.NoError(t, ValidateGame(game))
			tt.corrupt(game)

			// When: validating it
			err := ValidateGame(game)

			// Then: it is rejected as invalid input
			require.ErrorIs(t, err, apperror.ErrInvalidInput)
		})
	}

	t.Run("Frozen turn on a won game is accepted", func(t *testing.T) {
		game := won()

		require.NoError(t, ValidateGame(game))
		assert.Equal(t, entity.PlayerX, game.Turn)
		assert.Equal(t, &topRow, game.WinningLine)
	})
}
