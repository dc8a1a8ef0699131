package searcher

import (
	"context"
	"fmt"
	"math"

	"gomoku/game"

	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
)

type rootStat struct {
	move   game.Action
	visits int
	score  float64
}

// searchParallel searches the persistent tree alongside independent trees
// grown from copies of the root position, then picks a move from their
// combined root statistics.
func (m *MCTS) searchParallel() game.Action {
	workers := make([]*worker, m.goroutines)
	workers[0] = newWorker(m, m.tree, m.state, m.rng)
	for i := 1; i < len(workers); i++ {
		r := rand.New(rand.NewSource(m.rng.Uint64()))
		workers[i] = newWorker(m, newTree(), m.state.Fork(), r)
	}

	g, ctx := errgroup.WithContext(context.Background())
	for i, w := range workers {
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("worker %d: %v", i, r)
				}
			}()
			w.search(ctx)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		panic(err)
	}

	stats := mergeRoots(workers)
	best, bestScore := -1, math.Inf(-1)
	for i, s := range stats {
		if s.visits == 0 {
			continue
		}
		score := s.score/float64(s.visits) + m.rng.Float64()*TieBreak
		if score > bestScore {
			best, bestScore = i, score
		}
	}
	if best < 0 {
		return m.choose()
	}
	return stats[best].move
}

// mergeRoots sums the root children of every worker's tree by move, in the
// order the moves are first met.
func mergeRoots(workers []*worker) []rootStat {
	var stats []rootStat
	index := make(map[game.Action]int)
	for _, w := range workers {
		t := w.tree
		root := t.nodes[t.root]
		for i := root.first; i < root.first+root.children; i++ {
			child := t.nodes[i]
			j, ok := index[child.move]
			if !ok {
				j = len(stats)
				index[child.move] = j
				stats = append(stats, rootStat{move: child.move})
			}
			stats[j].visits += child.visits
			stats[j].score += child.totalScore
		}
	}
	return stats
}
