package entity

const (
	PlayerX Mark = "X"
	PlayerO Mark = "O"

	EmptyCell Mark = ""
)

const BoardSize = 9

// Mark is the content of a single cell.
type Mark string

func (that Mark) IsValid() bool {
	return that == EmptyCell || that == PlayerX || that == PlayerO
}

// Opponent returns the mark that plays after this one.
func (that Mark) Opponent() Mark {
	if that == PlayerX {
		return PlayerO
	}
	return PlayerX
}

// Board holds 9 cells in row-major order.
type Board [BoardSize]Mark

// Line is a triple of board indices.
type Line [3]int

// Contains reports whether the cell index belongs to the line.
func (that Line) Contains(cell int) bool {
	return that[0] == cell || that[1] == cell || that[2] == cell
}

// Count returns the number of X and O marks on the board.
func (that Board) Count() (int, int) {
	var x, o int
	for _, cell := range that {
		switch cell {
		case PlayerX:
			x++
		case PlayerO:
			o++
		}
	}
	return x, o
}

// Strings returns the board as plain strings for transports.
func (that Board) Strings() []string {
	cells := make([]string, len(that))
	for i, cell := range that {
		cells[i] = string(cell)
	}
	return cells
}
