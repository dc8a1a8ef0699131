package game

const (
	Size    = 15          // Board width and height
	Cells   = Size * Size // Number of cells on the board
	InARow  = 5           // Minimum number in a row for a win
	Players = 2
)

// Player identifies a side. The first player moves at ply 0.
type Player int

const (
	FirstPlayer Player = iota
	SecondPlayer
)

func (p Player) Opponent() Player {
	return 1 - p
}

func (p Player) String() string {
	if p == FirstPlayer {
		return "X"
	}
	return "O"
}

// Cell is the content of one board intersection.
type Cell int8

const (
	Empty Cell = iota
	First
	Second
)

// Stone returns the cell value a player leaves on the board
func (p Player) Stone() Cell {
	return Cell(p + 1)
}

func (c Cell) String() string {
	switch c {
	case First:
		return "X"
	case Second:
		return "O"
	default:
		return "."
	}
}

// axes are the four line directions through a cell: - | / \
var axes = [4][2]int{{1, 0}, {0, 1}, {1, 1}, {1, -1}}

func inGrid(x, y int) bool {
	return x >= 0 && x < Size && y >= 0 && y < Size
}
