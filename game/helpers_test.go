package game

import (
	"testing"

	"golang.org/x/exp/rand"
)

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func newTestState(seed uint64) *State {
	return NewState(NewZobrist(newRand(seed)))
}

// randomMove picks a uniformly random empty cell
func randomMove(r *rand.Rand, b *Board) Action {
	pool := b.PossibleActions()
	return pool.At(r.Intn(pool.Len()))
}

// playRandom plays random moves on s until the game ends or limit plies have
// been played, calling check after every move.
func playRandom(t *testing.T, r *rand.Rand, s *State, limit int, check func(t *testing.T, s *State)) {
	t.Helper()
	for i := 0; i < limit && !s.IsTerminal(); i++ {
		s.MakeMove(randomMove(r, s.Board))
		check(t, s)
	}
}

// fiveThrough scans the full board for a run of InARow stones of the same
// owner that contains a.
func fiveThrough(b *Board, a Action) bool {
	stone := b.grid[a.X][a.Y]
	if stone == Empty {
		return false
	}
	for _, d := range axes {
		for k := 0; k < InARow; k++ {
			x0, y0 := a.X-k*d[0], a.Y-k*d[1]
			ok := true
			for i := 0; i < InARow; i++ {
				x, y := x0+i*d[0], y0+i*d[1]
				if !inGrid(x, y) || b.grid[x][y] != stone {
					ok = false
					break
				}
			}
			if ok {
				return true
			}
		}
	}
	return false
}

// winsAt reports by brute force whether p completes a line by playing a
func winsAt(b *Board, p Player, a Action) bool {
	if b.grid[a.X][a.Y] != Empty {
		return false
	}
	b.grid[a.X][a.Y] = p.Stone()
	won := fiveThrough(b, a)
	b.grid[a.X][a.Y] = Empty
	return won
}

func winningCells(b *Board, p Player) []Action {
	var cells []Action
	for x := 0; x < Size; x++ {
		for y := 0; y < Size; y++ {
			if a := (Action{X: x, Y: y}); winsAt(b, p, a) {
				cells = append(cells, a)
			}
		}
	}
	return cells
}

// play alternates the given moves with far away replies from the opponent
func play(s *State, moves []Action, replies []Action) {
	for i, a := range moves {
		s.MakeMove(a)
		if i < len(replies) {
			s.MakeMove(replies[i])
		}
	}
}
