package searcher

import (
	"math"

	"gomoku/game"

	"golang.org/x/exp/rand"
)

const none = -1

// Nodes below this many are never compacted
const minCompaction = 1 << 12

// Prior scores a candidate move when its node is created. The score is
// added to the node's UCT value divided by its visits.
type Prior func(state *game.State, move game.Action) float64

type node struct {
	parent     int
	move       game.Action // Edge from the parent
	first      int         // Index of the first child, none until expanded
	children   int
	visits     int
	totalScore float64 // Sum of scores from the perspective of the player who made move
	heuristic  float64
}

// tree is an arena of nodes addressed by index. The children of a node
// occupy a contiguous range of the arena.
type tree struct {
	nodes     []node
	root      int
	compactAt int
}

func newTree() *tree {
	t := &tree{nodes: make([]node, 0, 1024), compactAt: minCompaction}
	t.root = t.alloc(none, game.Action{})
	return t
}

func (t *tree) alloc(parent int, move game.Action) int {
	t.nodes = append(t.nodes, node{parent: parent, move: move, first: none})
	return len(t.nodes) - 1
}

func (t *tree) expanded(id int) bool {
	return t.nodes[id].first != none
}

// candidates returns the moves worth searching from state, the most urgent
// group first: winning moves, then blocks, then blocks of double threats,
// then cells next to any stone, then the whole board.
func candidates(state *game.State) *game.ActionSet {
	switch {
	case state.PlayerThreats().Len() > 0:
		return state.PlayerThreats()
	case state.EnemyThreats().Len() > 0:
		return state.EnemyThreats()
	case state.EnemyDoubleThreats().Len() > 0:
		return state.EnemyDoubleThreats()
	case state.NeighboursUnion().Len() > 0:
		return state.NeighboursUnion()
	default:
		return state.PossibleActions()
	}
}

// expand creates one unvisited child per candidate move of state, which
// must be the position at id.
func (t *tree) expand(id int, state *game.State, prior Prior) {
	if t.expanded(id) {
		panic("node already expanded")
	}
	moves := candidates(state)
	first := len(t.nodes)
	for _, a := range moves.Actions() {
		child := t.alloc(id, a)
		if prior != nil {
			t.nodes[child].heuristic = prior(state, a)
		}
	}
	t.nodes[id].first = first
	t.nodes[id].children = moves.Len()
}

// bestChild picks a random unvisited child if there is one, otherwise the
// child with the highest UCT value.
func (t *tree) bestChild(id int, c float64, r *rand.Rand) int {
	n := t.nodes[id]
	if n.children == 0 {
		panic("no children to select from")
	}
	if child := t.randomUnvisited(id, r); child != none {
		return child
	}

	policy := newUCT(c, n.visits)
	best, bestScore := none, math.Inf(-1)
	for i := n.first; i < n.first+n.children; i++ {
		child := &t.nodes[i]
		score := policy.evaluate(child.totalScore, child.visits, child.heuristic) + r.Float64()*TieBreak
		if score > bestScore {
			best, bestScore = i, score
		}
	}
	return best
}

// bestMove picks the visited child with the highest mean score, or a random
// child when none has been visited. It returns none for a leaf.
func (t *tree) bestMove(id int, r *rand.Rand) int {
	n := t.nodes[id]
	best, bestScore := none, math.Inf(-1)
	for i := n.first; i < n.first+n.children; i++ {
		child := &t.nodes[i]
		if child.visits == 0 {
			continue
		}
		score := child.totalScore/float64(child.visits) + r.Float64()*TieBreak
		if score > bestScore {
			best, bestScore = i, score
		}
	}
	if best == none && n.children > 0 {
		return t.randomUnvisited(id, r)
	}
	return best
}

func (t *tree) randomUnvisited(id int, r *rand.Rand) int {
	n := t.nodes[id]
	unvisited := 0
	for i := n.first; i < n.first+n.children; i++ {
		if t.nodes[i].visits == 0 {
			unvisited++
		}
	}
	if unvisited == 0 {
		return none
	}
	k := r.Intn(unvisited)
	for i := n.first; i < n.first+n.children; i++ {
		if t.nodes[i].visits == 0 {
			if k == 0 {
				return i
			}
			k--
		}
	}
	panic("unreachable")
}

// backup adds score to id and the negated score to each ancestor in turn,
// up to the root.
func (t *tree) backup(id int, score float64) {
	for id != none {
		t.nodes[id].totalScore += score
		t.nodes[id].visits++
		id = t.nodes[id].parent
		score = -score
	}
}

func (t *tree) child(id int, move game.Action) int {
	n := t.nodes[id]
	for i := n.first; i < n.first+n.children; i++ {
		if t.nodes[i].move == move {
			return i
		}
	}
	return none
}

// reroot makes the child reached by move the new root, or a fresh node if
// the move was never expanded. It reports whether any search statistics
// were kept.
func (t *tree) reroot(move game.Action) bool {
	next := t.child(t.root, move)
	if next == none {
		next = t.alloc(none, move)
	}
	t.nodes[next].parent = none
	t.root = next
	return t.nodes[next].visits > 0
}

// size counts the nodes reachable from the root
func (t *tree) size() int {
	count := 0
	stack := []int{t.root}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		count++
		n := t.nodes[id]
		for i := n.first; i < n.first+n.children; i++ {
			stack = append(stack, i)
		}
	}
	return count
}

// compact drops unreachable nodes once the arena has grown past twice the
// size of the tree it held after the previous compaction.
func (t *tree) compact() {
	if len(t.nodes) < t.compactAt {
		return
	}

	nodes := make([]node, 0, t.size())
	origin := make([]int, 0, cap(nodes)) // Arena index each kept node came from
	root := t.nodes[t.root]
	root.parent = none
	nodes = append(nodes, root)
	origin = append(origin, t.root)

	// Breadth first keeps every child range contiguous
	for i := 0; i < len(nodes); i++ {
		n := t.nodes[origin[i]]
		if n.first == none {
			continue
		}
		nodes[i].first = len(nodes)
		for j := n.first; j < n.first+n.children; j++ {
			child := t.nodes[j]
			child.parent = i
			nodes = append(nodes, child)
			origin = append(origin, j)
		}
	}

	t.nodes = nodes
	t.root = 0
	t.compactAt = max(minCompaction, 2*len(nodes))
}
