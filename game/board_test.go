package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewBoardPool(t *testing.T) {
	b := NewBoard()
	pool := b.PossibleActions()

	require.Equal(t, Cells, pool.Len())
	seen := make(map[Action]bool, Cells)
	for _, a := range pool.Actions() {
		require.False(t, seen[a], "Pool should not contain duplicates")
		seen[a] = true
	}

	b.MakeMove(Action{X: 7, Y: 7})

	require.Equal(t, Cells-1, pool.Len())
	require.False(t, pool.Contains(Action{X: 7, Y: 7}))
	for a := range seen {
		if a == (Action{X: 7, Y: 7}) {
			continue
		}
		i := pool.IndexOf(a)
		require.NotEqual(t, -1, i, "Cell %s should still be in the pool", a)
		require.Equal(t, a, pool.At(i))
	}
}

func TestMakeMove(t *testing.T) {
	b := NewBoard()

	b.MakeMove(Action{X: 3, Y: 4})

	require.Equal(t, First, b.At(3, 4))
	require.Equal(t, 1, b.Ply())
	require.Equal(t, SecondPlayer, b.ToMove())
	require.False(t, b.IsFirstPlayer())
	last, ok := b.LastMove()
	require.True(t, ok)
	require.Equal(t, Action{X: 3, Y: 4}, last)
}

func TestIllegalMovePanics(t *testing.T) {
	t.Run("occupied cell", func(t *testing.T) {
		b := NewBoard()
		b.MakeMove(Action{X: 0, Y: 0})

		defer func() {
			err, ok := recover().(*IllegalMoveError)
			require.True(t, ok, "Should panic with an IllegalMoveError")
			require.Equal(t, Action{X: 0, Y: 0}, err.Action)
			require.Contains(t, err.Error(), b.String(), "Should dump the board")
		}()
		b.MakeMove(Action{X: 0, Y: 0})
	})

	t.Run("off the board", func(t *testing.T) {
		b := NewBoard()

		require.Panics(t, func() { b.MakeMove(Action{X: Size, Y: 0}) })
	})
}

func TestIsWonMatchesFullScan(t *testing.T) {
	for seed := uint64(1); seed <= 20; seed++ {
		r := newRand(seed)
		b := NewBoard()
		for !b.IsTerminal() {
			a := randomMove(r, b)
			b.MakeMove(a)
			require.Equal(t, fiveThrough(b, a), b.IsWon(),
				"Seed %d: win detection disagrees with full scan after %s\n%s", seed, a, b)
		}
	}
}

func TestUndoRestoresBoard(t *testing.T) {
	r := newRand(7)
	b := NewBoard()
	snapshots := make([]*Board, 0, Cells)
	// Keep playing past wins to cover full-length sequences
	for b.Ply() < Cells {
		snapshots = append(snapshots, b.Copy())
		b.MakeMove(randomMove(r, b))
	}

	for i := len(snapshots) - 1; i >= 0; i-- {
		b.Undo()
		require.Equal(t, snapshots[i], b, "Undo should restore the board at ply %d", i)
	}
}

func TestScore(t *testing.T) {
	t.Run("first player wins", func(t *testing.T) {
		b := NewBoard()
		for y := 0; y < 4; y++ {
			b.MakeMove(Action{X: 0, Y: y})
			b.MakeMove(Action{X: 5, Y: y})
		}
		b.MakeMove(Action{X: 0, Y: 4})

		require.True(t, b.IsWon())
		require.True(t, b.IsTerminal())
		require.Equal(t, 1, b.Score())
	})

	t.Run("second player wins", func(t *testing.T) {
		b := NewBoard()
		b.MakeMove(Action{X: 14, Y: 14})
		for x := 0; x < 4; x++ {
			b.MakeMove(Action{X: x, Y: x})
			b.MakeMove(Action{X: x, Y: 10})
		}
		b.MakeMove(Action{X: 4, Y: 4})

		require.True(t, b.IsWon())
		require.Equal(t, -1, b.Score())
	})

	t.Run("ongoing game", func(t *testing.T) {
		b := NewBoard()
		b.MakeMove(Action{X: 7, Y: 7})

		require.False(t, b.IsTerminal())
		require.Equal(t, 0, b.Score())
	})
}

func TestDraw(t *testing.T) {
	// Colouring by (x/2 + y) parity never puts five in a row on any axis and
	// gives the first player exactly 113 cells.
	var first, second []Action
	for x := 0; x < Size; x++ {
		for y := 0; y < Size; y++ {
			if (x/2+y)%2 == 0 {
				first = append(first, Action{X: x, Y: y})
			} else {
				second = append(second, Action{X: x, Y: y})
			}
		}
	}
	require.Len(t, first, 113)

	b := NewBoard()
	for i := range first {
		b.MakeMove(first[i])
		require.False(t, b.IsWon())
		if i < len(second) {
			b.MakeMove(second[i])
			require.False(t, b.IsWon())
		}
	}

	require.True(t, b.IsDrawn())
	require.True(t, b.IsTerminal())
	require.Equal(t, 0, b.Score())
	require.Zero(t, b.PossibleActions().Len())
}

func TestActionString(t *testing.T) {
	require.Equal(t, "A1", Action{X: 0, Y: 0}.String())
	require.Equal(t, "H8", Action{X: 7, Y: 7}.String())
	require.Equal(t, "O15", Action{X: 14, Y: 14}.String())
}
