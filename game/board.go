package game

import (
	"fmt"
	"strings"
)

// IllegalMoveError reports a move into an occupied or off-board cell. It is
// raised with panic: the board, pool and hash cannot be trusted after it.
type IllegalMoveError struct {
	Action Action
	Board  string
}

func (e *IllegalMoveError) Error() string {
	return fmt.Sprintf("illegal move %s (%d, %d): cell is not an empty board cell\n%s",
		e.Action, e.Action.X, e.Action.Y, e.Board)
}

// Board is the raw game: grid, move history, player to move and the pool of
// legal moves.
type Board struct {
	grid      [Size][Size]Cell
	toMove    Player
	history   []Action
	pool      *ActionSet
	poolIndex []int // Pool index each fully played move was removed from
}

// NewBoard returns an empty board with all cells in the legal move pool.
func NewBoard() *Board {
	b := &Board{
		history:   make([]Action, 0, Cells),
		pool:      NewActionSet(Cells),
		poolIndex: make([]int, 0, Cells),
	}
	for x := 0; x < Size; x++ {
		for y := 0; y < Size; y++ {
			b.pool.Add(Action{X: x, Y: y})
		}
	}
	return b
}

func (b *Board) Copy() *Board {
	c := &Board{
		grid:      b.grid,
		toMove:    b.toMove,
		history:   make([]Action, len(b.history), Cells),
		pool:      b.pool.Clone(),
		poolIndex: make([]int, len(b.poolIndex), Cells),
	}
	copy(c.history, b.history)
	copy(c.poolIndex, b.poolIndex)
	return c
}

// MakeMove plays a for the player to move.
func (b *Board) MakeMove(a Action) {
	b.place(a)

	i := b.pool.IndexOf(a)
	b.pool.Remove(i)
	b.poolIndex = append(b.poolIndex, i)
}

func (b *Board) place(a Action) {
	if !inGrid(a.X, a.Y) || b.grid[a.X][a.Y] != Empty {
		panic(&IllegalMoveError{Action: a, Board: b.String()})
	}
	b.grid[a.X][a.Y] = b.toMove.Stone()
	b.toMove = b.toMove.Opponent()
	b.history = append(b.history, a)
}

// Undo reverts the last move and puts it back at its previous pool index.
func (b *Board) Undo() Action {
	a := b.unplace()

	last := len(b.poolIndex) - 1
	b.pool.Insert(b.poolIndex[last], a)
	b.poolIndex = b.poolIndex[:last]
	return a
}

func (b *Board) unplace() Action {
	if len(b.history) == 0 {
		panic("board: undo with no moves played")
	}
	last := len(b.history) - 1
	a := b.history[last]
	b.history = b.history[:last]
	b.grid[a.X][a.Y] = Empty
	b.toMove = b.toMove.Opponent()
	return a
}

// IsWon reports whether the last move completed a line of InARow or more.
// Only the four lines through the last move are scanned, since no other move
// can have completed a win.
func (b *Board) IsWon() bool {
	if len(b.history) == 0 {
		return false
	}
	last := b.history[len(b.history)-1]
	stone := b.grid[last.X][last.Y]
	for _, d := range axes {
		count := 1 + b.run(last, d[0], d[1], stone) + b.run(last, -d[0], -d[1], stone)
		if count >= InARow {
			return true
		}
	}
	return false
}

// run counts contiguous stones outward from a, excluding a itself
func (b *Board) run(a Action, dx, dy int, stone Cell) int {
	n := 0
	for x, y := a.X+dx, a.Y+dy; inGrid(x, y) && b.grid[x][y] == stone; x, y = x+dx, y+dy {
		n++
	}
	return n
}

func (b *Board) IsDrawn() bool {
	return len(b.history) == Cells && !b.IsWon()
}

func (b *Board) IsTerminal() bool {
	return b.IsWon() || len(b.history) == Cells
}

// Score assumes a terminal position and returns 1 if the first player won,
// -1 if the second player won and 0 otherwise.
func (b *Board) Score() int {
	if !b.IsWon() {
		return 0
	}
	// The last mover won
	if b.toMove == FirstPlayer {
		return -1
	}
	return 1
}

func (b *Board) IsFirstPlayer() bool {
	return b.toMove == FirstPlayer
}

func (b *Board) ToMove() Player {
	return b.toMove
}

// PossibleActions returns the pool of empty cells. Callers must not modify it.
func (b *Board) PossibleActions() *ActionSet {
	return b.pool
}

func (b *Board) At(x, y int) Cell {
	return b.grid[x][y]
}

func (b *Board) IsEmpty(a Action) bool {
	return b.grid[a.X][a.Y] == Empty
}

func (b *Board) Ply() int {
	return len(b.history)
}

func (b *Board) LastMove() (Action, bool) {
	if len(b.history) == 0 {
		return Action{}, false
	}
	return b.history[len(b.history)-1], true
}

// History returns the moves played so far. Callers must not modify it.
func (b *Board) History() []Action {
	return b.history
}

// String renders the grid with the first row at the top, as Go boards are
// usually drawn.
func (b *Board) String() string {
	var sb strings.Builder
	header := "   "
	for x := 0; x < Size; x++ {
		header += fmt.Sprintf(" %c", 'A'+x)
	}
	sb.WriteString(header + "\n")
	for y := Size - 1; y >= 0; y-- {
		fmt.Fprintf(&sb, "%2d ", y+1)
		for x := 0; x < Size; x++ {
			sb.WriteString(" " + b.grid[x][y].String())
		}
		fmt.Fprintf(&sb, " %2d\n", y+1)
	}
	sb.WriteString(header)
	return sb.String()
}
