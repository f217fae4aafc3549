package tictactoe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-session/internal/entity"
)

func TestRecordIfTerminal(t *testing.T) {
	t.Run("Win is recorded once", func(t *testing.T) {
		// Given: a game X won on the top row
		game := entity.NewGame()
		history := &entity.History{}
		playMoves(t, game, 0, 3, 1, 4, 2)

		// When: the tracker observes the finished game twice
		first := RecordIfTerminal(history, game)
		second := RecordIfTerminal(history, game)

		// Then: exactly one X entry was appended
		assert.True(t, first)
		assert.False(t, second)
		assert.Equal(t, []entity.Outcome{entity.OutcomeX}, history.Outcomes)
	})

	t.Run("Draw is recorded once", func(t *testing.T) {
		// Given: a drawn game
		game := entity.NewGame()
		history := &entity.History{}
		playMoves(t, game, 0, 1, 2, 4, 3, 5, 7, 6, 8)

		// When: the tracker observes it repeatedly
		for range 3 {
			RecordIfTerminal(history, game)
		}

		// Then: one Draw entry exists
		assert.Equal(t, []entity.Outcome{entity.OutcomeDraw}, history.Outcomes)
	})

	t.Run("Game in progress is not recorded", func(t *testing.T) {
		game := entity.NewGame()
		history := &entity.History{}
		playMoves(t, game, 0, 4)

		assert.False(t, RecordIfTerminal(history, game))
		assert.Empty(t, history.Outcomes)
	})

	t.Run("Reset keeps history and allows the next game to be recorded", func(t *testing.T) {
		// Given: a recorded X win
		game := entity.NewGame()
		history := &entity.History{}
		playMoves(t, game, 0, 3, 1, 4, 2)
		require.True(t, RecordIfTerminal(history, game))

		// When: the game is reset
		Reset(game)

		// Then: the board is empty, X moves and history is untouched
		assert.Equal(t, entity.Board{}, game.Board)
		assert.Equal(t, entity.PlayerX, game.Turn)
		assert.Equal(t, []entity.Outcome{entity.OutcomeX}, history.Outcomes)

		// When: O wins the next game
		playMoves(t, game, 0, 3, 1, 4, 8, 5)
		require.True(t, RecordIfTerminal(history, game))

		// Then: both outcomes are logged in order
		assert.Equal(t, []entity.Outcome{entity.OutcomeX, entity.OutcomeO}, history.Outcomes)
	})
}

func TestClearHistory(t *testing.T) {
	t.Run("Clear during a game keeps the board", func(t *testing.T) {
		// Given: a history with entries and a game in progress
		game := entity.NewGame()
		history := &entity.History{Outcomes: []entity.Outcome{entity.OutcomeX, entity.OutcomeDraw}}
		playMoves(t, game, 4)
		before := *game

		// When: history is cleared
		ClearHistory(history)

		// Then: history is empty and the game is unchanged
		assert.Empty(t, history.Outcomes)
		assert.Equal(t, before, *game)
	})

	t.Run("Clear after a recorded game does not record it again", func(t *testing.T) {
		// Given: a recorded X win
		game := entity.NewGame()
		history := &entity.History{}
		playMoves(t, game, 0, 3, 1, 4, 2)
		require.True(t, RecordIfTerminal(history, game))

		// When: history is cleared and the tracker runs again
		ClearHistory(history)
		recorded := RecordIfTerminal(history, game)

		// Then: nothing is appended
		assert.False(t, recorded)
		assert.Empty(t, history.Outcomes)
	})
}

func TestTally(t *testing.T) {
	history := &entity.History{Outcomes: []entity.Outcome{
		entity.OutcomeX, entity.OutcomeO, entity.OutcomeX, entity.OutcomeDraw,
	}}

	assert.Equal(t, entity.Tally{X: 2, O: 1, Draw: 1}, Tally(history))
}
