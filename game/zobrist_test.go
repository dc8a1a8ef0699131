package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestZobristSeeded(t *testing.T) {
	a := NewZobrist(newRand(42))
	b := NewZobrist(newRand(42))
	c := NewZobrist(newRand(43))

	require.Equal(t, a, b, "Same seed should give the same keys")
	require.NotEqual(t, a, c, "Different seeds should give different keys")
}

func TestIncrementalHashMatchesRecompute(t *testing.T) {
	r := newRand(3)
	s := newTestState(3)
	require.Zero(t, s.Hash())

	for i := 0; i < 80 && !s.IsTerminal(); i++ {
		s.MakeMove(randomMove(r, s.Board))
		require.Equal(t, s.Keys().Hash(s.Board), s.Hash())

		// Undo and redo the last move on the way
		if i%3 == 0 {
			a := s.Undo()
			require.Equal(t, s.Keys().Hash(s.Board), s.Hash())
			s.MakeMove(a)
			require.Equal(t, s.Keys().Hash(s.Board), s.Hash())
		}
	}
}

func TestUndoRestoresHash(t *testing.T) {
	s := newTestState(5)
	s.MakeMove(Action{X: 7, Y: 7})
	before := s.Hash()

	s.MakeMove(Action{X: 8, Y: 8})
	require.NotEqual(t, before, s.Hash())
	s.Undo()

	require.Equal(t, before, s.Hash())
}

func TestHashDependsOnOwner(t *testing.T) {
	s1 := newTestState(9)
	s1.MakeMove(Action{X: 0, Y: 0})
	s1.MakeMove(Action{X: 1, Y: 1})

	s2 := newTestState(9)
	s2.MakeMove(Action{X: 1, Y: 1})
	s2.MakeMove(Action{X: 0, Y: 0})

	require.NotEqual(t, s1.Hash(), s2.Hash(), "Swapping owners should change the hash")
}
