package game

import "fmt"

// Action places a stone for the player to move at (X, Y). (0, 0) is the
// bottom left corner.
type Action struct {
	X int
	Y int
}

// Index maps the action onto [0, Cells)
func (a Action) Index() int {
	return a.X*Size + a.Y
}

func (a Action) String() string {
	return fmt.Sprintf("%c%d", 'A'+a.X, a.Y+1)
}

func actionAt(index int) Action {
	return Action{X: index / Size, Y: index % Size}
}
