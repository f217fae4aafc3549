package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-session/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-session/internal/entity"
)

// ApplyMove places the current mark on the cell. A rejected move wraps apperror.ErrInvalidMove
// and leaves the game untouched.
func ApplyMove(gameInstance *entity.Game, cell int) error {
	if err := validateMove(gameInstance, cell); err != nil {
		return err
	}

	gameInstance.Board[cell] = gameInstance.Turn
	updateGameStatus(gameInstance)

	return nil
}

// Reset starts the next round with an empty board and X to move. History is not touched.
func Reset(gameInstance *entity.Game) {
	round := gameInstance.Round

	*gameInstance = *entity.NewGame()
	gameInstance.Round = round + 1
}

// validateMove - checks if the move is valid.
func validateMove(gameInstance *entity.Game, cell int) error {
	if gameInstance.IsTerminal() {
		return apperror.ErrGameFinished
	}

	if cell < 0 || cell >= len(gameInstance.Board) {
		return fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	if gameInstance.Board[cell] != entity.EmptyCell {
		return fmt.Errorf("%w: cell %d", apperror.ErrCellOccupied, cell)
	}

	return nil
}

// updateGameStatus - re-evaluates the board after a move. The turn is frozen once the game ends.
func updateGameStatus(gameInstance *entity.Game) {
	status, winner, line := Evaluate(gameInstance.Board)

	gameInstance.Status = status
	gameInstance.Winner = winner
	gameInstance.WinningLine = line

	if status == entity.StatusInProgress {
		gameInstance.Turn = gameInstance.Turn.Opponent()
	}
}
