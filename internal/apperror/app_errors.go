package apperror

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput marks a caller contract violation: malformed board, unknown mark or mode.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidMove marks an illegal move that is rejected without changing state.
	ErrInvalidMove = errors.New("invalid move")

	ErrCellOccupied      = fmt.Errorf("%w: cell is already occupied", ErrInvalidMove)
	ErrInvalidCell       = fmt.Errorf("%w: invalid cell index", ErrInvalidMove)
	ErrGameFinished      = fmt.Errorf("%w: game is already finished", ErrInvalidMove)
	ErrUnknownRenderMode = fmt.Errorf("%w: unknown render mode", ErrInvalidInput)
)
