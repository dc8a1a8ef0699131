package searcher

import (
	"context"
	"time"

	"gomoku/game"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

type Option func(mcts *MCTS)

type MCTS struct {
	iterations  int
	duration    time.Duration
	exploration float64
	goroutines  int
	seed        uint64
	prior       Prior
	metrics     MetricsCollector
	last        MoveMetrics

	// Search context, rebuilt by Reset
	rng   *rand.Rand
	keys  *game.Zobrist
	state *game.State // Position at the root of the tree
	tree  *tree
}

// WithIterations sets the number of episodes run per move. Zero episodes
// is allowed and falls back to a random candidate move.
func WithIterations(iterations int) Option {
	return func(m *MCTS) {
		m.iterations = iterations
	}
}

// WithDuration searches for a fixed wall-clock time per move instead of a
// fixed number of episodes.
func WithDuration(duration time.Duration) Option {
	return func(m *MCTS) {
		if duration > 0 {
			m.duration = duration
		}
	}
}

func WithExploration(c float64) Option {
	return func(m *MCTS) {
		if c >= 0 {
			m.exploration = c
		}
	}
}

func WithSeed(seed uint64) Option {
	return func(m *MCTS) {
		m.seed = seed
	}
}

// WithGoroutines runs that many independent searches from the root and
// merges their root statistics.
func WithGoroutines(goroutines int) Option {
	return func(m *MCTS) {
		if goroutines > 0 {
			m.goroutines = goroutines
		}
	}
}

func WithPrior(prior Prior) Option {
	return func(m *MCTS) {
		m.prior = prior
	}
}

func WithMetrics() Option {
	return func(m *MCTS) {
		m.metrics = NewMetricsCollector()
	}
}

func NewMCTS(options ...Option) *MCTS {
	m := &MCTS{ // Default values
		iterations:  DefaultIterations,
		exploration: Exploration,
		goroutines:  1,
		seed:        uint64(time.Now().UnixNano()),
		metrics:     NewNoMetricsCollector(),
	}
	for _, option := range options {
		option(m)
	}
	if m.iterations < 0 && m.duration <= 0 {
		panic("Must specify search episodes or duration")
	}
	m.Reset()
	return m
}

// Reset discards the search tree and starts over from the empty board with
// the configured seed.
func (m *MCTS) Reset() {
	m.rng = rand.New(rand.NewSource(m.seed))
	m.keys = game.NewZobrist(m.rng)
	m.state = game.NewState(m.keys)
	m.tree = newTree()
}

// MakeMove returns the engine's move in current after the opponent played
// last, which is nil when the engine moves first.
func (m *MCTS) MakeMove(current *game.Board, last *game.Action) game.Action {
	m.metrics.Start()
	m.advance(current, last)
	if m.state.IsTerminal() {
		panic("no move to make in a finished game")
	}

	var move game.Action
	if m.goroutines > 1 {
		move = m.searchParallel()
	} else {
		newWorker(m, m.tree, m.state, m.rng).search(context.Background())
		move = m.choose()
	}
	rootVisits := m.tree.nodes[m.tree.root].visits

	m.state.MakeMove(move)
	m.tree.reroot(move)
	m.tree.compact()

	m.last = m.metrics.Complete()
	m.last.TreeSize = m.tree.size()
	m.last.RootVisits = rootVisits
	log.Debug().
		Str("move", move.String()).
		Int64("episodes", m.last.Episodes).
		Int64("terminal", m.last.TerminalLeaves).
		Bool("reused", m.last.TreeReused).
		Int("tree", m.last.TreeSize).
		Dur("duration", m.last.Duration).
		Msg("Search complete")
	return move
}

// Metrics describes the search behind the last move
func (m *MCTS) Metrics() MoveMetrics {
	return m.last
}

// advance brings the root up to date with the opponent's move, rebuilding
// the search context when the game has diverged from it.
func (m *MCTS) advance(current *game.Board, last *game.Action) {
	if current != nil && !m.follows(current, last) {
		log.Warn().Msgf("game at ply %d does not follow the search tree at ply %d, rebuilding", current.Ply(), m.state.Ply())
		m.state = game.Replay(m.keys, current.History())
		m.tree = newTree()
		return
	}
	if last == nil {
		return
	}
	m.state.MakeMove(*last)
	if m.tree.reroot(*last) {
		m.metrics.ReusedTree()
	}
}

// follows reports whether current is the root position with last played
func (m *MCTS) follows(current *game.Board, last *game.Action) bool {
	hash, ply := m.state.Hash(), m.state.Ply()
	if last != nil {
		played, ok := current.LastMove()
		if !ok || played != *last || !m.state.IsEmpty(*last) {
			return false
		}
		hash ^= m.keys.Key(m.state.ToMove(), *last)
		ply++
	}
	return current.Ply() == ply && m.keys.Hash(current) == hash
}

func (m *MCTS) choose() game.Action {
	t := m.tree
	if !t.expanded(t.root) {
		t.expand(t.root, m.state, m.prior)
	}
	return t.nodes[t.bestMove(t.root, m.rng)].move
}

// worker runs episodes on one tree with exclusive use of its state and RNG
type worker struct {
	tree        *tree
	state       *game.State
	rng         *rand.Rand
	iterations  int
	duration    time.Duration
	exploration float64
	prior       Prior
	metrics     MetricsCollector
}

func newWorker(m *MCTS, t *tree, state *game.State, r *rand.Rand) *worker {
	return &worker{
		tree:        t,
		state:       state,
		rng:         r,
		iterations:  m.iterations,
		duration:    m.duration,
		exploration: m.exploration,
		prior:       m.prior,
		metrics:     m.metrics,
	}
}

func (w *worker) search(ctx context.Context) {
	if w.duration > 0 {
		w.countdown(ctx)
	} else {
		w.iterate(ctx)
	}
}

func (w *worker) iterate(ctx context.Context) {
	for i := 0; i < w.iterations && ctx.Err() == nil; i++ {
		w.simulate()
	}
}

func (w *worker) countdown(ctx context.Context) {
	deadline := time.Now().Add(w.duration)
	for time.Now().Before(deadline) && ctx.Err() == nil {
		w.simulate()
	}
}

// simulate runs one episode and rewinds the state to the root
func (w *worker) simulate() {
	leaf, depth := w.selectThenExpand()
	if w.state.IsTerminal() {
		w.metrics.AddTerminalLeaf()
	}
	mover := w.state.ToMove().Opponent()
	played, score := rollout(w.state, w.rng)
	w.tree.backup(leaf, reward(score, mover))

	for range depth + played {
		w.state.Undo()
	}
	w.metrics.AddEpisode()
}

// selectThenExpand descends by UCT to the first unvisited node, expanding
// the first visited leaf on the way. It returns the node reached and the
// number of moves played on the state.
func (w *worker) selectThenExpand() (int, int) {
	t := w.tree
	id, depth := t.root, 0
	for !w.state.IsTerminal() && t.nodes[id].visits > 0 {
		expanded := t.expanded(id)
		if !expanded {
			t.expand(id, w.state, w.prior)
		}
		id = t.bestChild(id, w.exploration, w.rng)
		w.state.MakeMove(t.nodes[id].move)
		depth++
		if !expanded {
			break
		}
	}
	return id, depth
}

// reward converts a final score to the perspective of mover
func reward(score int, mover game.Player) float64 {
	if mover == game.FirstPlayer {
		return float64(score)
	}
	return -float64(score)
}
