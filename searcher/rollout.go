package searcher

import (
	"gomoku/game"

	"golang.org/x/exp/rand"
)

// defaultPolicy picks the next rollout move: complete a line, block one,
// make a double threat, break one of the opponent's, otherwise play next to
// a stone or anywhere at random.
func defaultPolicy(state *game.State, r *rand.Rand) game.Action {
	if threats := state.PlayerThreats(); threats.Len() > 0 {
		return threats.At(0)
	}
	if threats := state.EnemyThreats(); threats.Len() > 0 {
		return threats.At(0)
	}
	if doubles := state.PlayerDoubleThreats(); doubles.Len() > 0 {
		return doubles.At(0)
	}
	if doubles := state.EnemyDoubleThreats(); doubles.Len() > 0 {
		return doubles.At(r.Intn(doubles.Len()))
	}
	if union := state.NeighboursUnion(); union.Len() > 0 {
		return union.At(r.Intn(union.Len()))
	}
	pool := state.PossibleActions()
	return pool.At(r.Intn(pool.Len()))
}

// rollout plays the default policy until the game ends and returns the
// number of moves played along with the final score.
func rollout(state *game.State, r *rand.Rand) (int, int) {
	depth := 0
	for !state.IsTerminal() {
		state.MakeMove(defaultPolicy(state, r))
		depth++
	}
	return depth, state.Score()
}
