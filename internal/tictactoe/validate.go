package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-session/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-session/internal/entity"
)

// ValidateGame checks that a game read from outside could have been reached by legal play:
// the board is well formed, the status, winner and line match the board, and the turn
// belongs to the player to move, or to the last mover once the game is over.
func ValidateGame(gameInstance *entity.Game) error {
	board, err := ParseBoard(gameInstance.Board.Strings())
	if err != nil {
		return err
	}

	if gameInstance.Turn != entity.PlayerX && gameInstance.Turn != entity.PlayerO {
		return fmt.Errorf("%w: turn %q", apperror.ErrInvalidInput, gameInstance.Turn)
	}

	if gameInstance.Round < 1 {
		return fmt.Errorf("%w: round %d", apperror.ErrInvalidInput, gameInstance.Round)
	}

	status, winner, line := Evaluate(board)
	if gameInstance.Status != status {
		return fmt.Errorf("%w: status %q, board is %q", apperror.ErrInvalidInput, gameInstance.Status, status)
	}

	if gameInstance.Winner != winner || !sameLine(gameInstance.WinningLine, line) {
		return fmt.Errorf("%w: winner does not match the board", apperror.ErrInvalidInput)
	}

	if turn := expectedTurn(board, status); gameInstance.Turn != turn {
		return fmt.Errorf("%w: turn %q, expected %q", apperror.ErrInvalidInput, gameInstance.Turn, turn)
	}

	if status == entity.StatusWon && winner != gameInstance.Turn {
		return fmt.Errorf("%w: %s won but %s moved last", apperror.ErrInvalidInput, winner, gameInstance.Turn)
	}

	return nil
}

// expectedTurn - X moves when the counts are equal. On a finished board the turn stays with the last mover.
func expectedTurn(board entity.Board, status string) entity.Mark {
	x, o := board.Count()

	if status == entity.StatusInProgress {
		if x == o {
			return entity.PlayerX
		}

		return entity.PlayerO
	}

	if x > o {
		return entity.PlayerX
	}

	return entity.PlayerO
}

func sameLine(a, b *entity.Line) bool {
	if a == nil || b == nil {
		return a == b
	}

	return *a == *b
}
