package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-session/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-session/internal/entity"
)

// WinLines is the catalog of winning lines in priority order: rows, columns, diagonals.
var WinLines = [8]entity.Line{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// WinningLine returns the first catalog line whose cells hold the same non-empty mark.
func WinningLine(board entity.Board) (entity.Line, bool) {
	for _, line := range WinLines {
		a, b, c := board[line[0]], board[line[1]], board[line[2]]
		if a != entity.EmptyCell && a == b && b == c {
			return line, true
		}
	}

	return entity.Line{}, false
}

// WinningLineOf is WinningLine for cells of unchecked shape.
func WinningLineOf(cells []entity.Mark) (entity.Line, bool, error) {
	if len(cells) != entity.BoardSize {
		return entity.Line{}, false, fmt.Errorf("%w: board has %d cells", apperror.ErrInvalidInput, len(cells))
	}

	var board entity.Board
	for i, cell := range cells {
		if !cell.IsValid() {
			return entity.Line{}, false, fmt.Errorf("%w: cell %d holds %q", apperror.ErrInvalidInput, i, cell)
		}
		board[i] = cell
	}

	line, ok := WinningLine(board)

	return line, ok, nil
}

// ParseBoard builds a board from untrusted cells and checks that X moved first.
func ParseBoard(cells []string) (entity.Board, error) {
	marks := make([]entity.Mark, len(cells))
	for i, cell := range cells {
		marks[i] = entity.Mark(cell)
	}

	if _, _, err := WinningLineOf(marks); err != nil {
		return entity.Board{}, err
	}

	var board entity.Board
	copy(board[:], marks)

	if x, o := board.Count(); x != o && x != o+1 {
		return entity.Board{}, fmt.Errorf("%w: %d X against %d O", apperror.ErrInvalidInput, x, o)
	}

	return board, nil
}

// IsFull reports whether every cell is marked.
func IsFull(board entity.Board) bool {
	for _, cell := range board {
		if cell == entity.EmptyCell {
			return false
		}
	}

	return true
}

// Evaluate derives the status of a board. The winner and line are set only for StatusWon.
func Evaluate(board entity.Board) (string, entity.Mark, *entity.Line) {
	if line, ok := WinningLine(board); ok {
		return entity.StatusWon, board[line[0]], &line
	}

	// the game will continue until all the squares are full
	if IsFull(board) {
		return entity.StatusDraw, entity.EmptyCell, nil
	}

	return entity.StatusInProgress, entity.EmptyCell, nil
}
