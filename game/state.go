package game

// State is a Board that also keeps, move by move, the zobrist hash, the
// empty cells next to each player's stones and each player's threats and
// double threats. Only the lines through the last move are examined, never
// the full board.
type State struct {
	*Board
	keys    *Zobrist
	hash    uint64
	sets    [numSets]*ActionSet
	journal []edit
	marks   []int // Journal length before each full move
	pending int   // Fast moves not yet undone
}

type setID uint8

const (
	neighboursFirst setID = iota
	neighboursSecond
	neighboursUnion
	neighboursIntersection
	threatsFirst
	threatsSecond
	doubleThreatsFirst
	doubleThreatsSecond
	numSets
)

func neighboursOf(p Player) setID    { return neighboursFirst + setID(p) }
func threatsOf(p Player) setID       { return threatsFirst + setID(p) }
func doubleThreatsOf(p Player) setID { return doubleThreatsFirst + setID(p) }

const added = -1

// edit records one set mutation so Undo can replay it backwards
type edit struct {
	set    setID
	action Action
	index  int // Index the action was removed from, or added
}

func NewState(keys *Zobrist) *State {
	s := &State{
		Board:   NewBoard(),
		keys:    keys,
		journal: make([]edit, 0, 4*Cells),
		marks:   make([]int, 0, Cells),
	}
	for i := range s.sets {
		capacity := Cells
		if setID(i) >= threatsFirst {
			capacity = 8
		}
		s.sets[i] = NewActionSet(capacity)
	}
	return s
}

// Replay builds a state by playing history from the empty board.
func Replay(keys *Zobrist, history []Action) *State {
	s := NewState(keys)
	for _, a := range history {
		s.MakeMove(a)
	}
	return s
}

// Copy returns an independent deep clone, undo history included.
func (s *State) Copy() *State {
	c := s.Fork()
	c.journal = append(make([]edit, 0, cap(s.journal)), s.journal...)
	c.marks = append(make([]int, 0, Cells), s.marks...)
	return c
}

// Fork returns an independent clone without undo history: moves played
// before the fork cannot be undone on the clone.
func (s *State) Fork() *State {
	c := &State{
		Board:   s.Board.Copy(),
		keys:    s.keys,
		hash:    s.hash,
		journal: make([]edit, 0, 4*Cells),
		marks:   make([]int, 0, Cells),
		pending: s.pending,
	}
	for i, set := range s.sets {
		c.sets[i] = set.Clone()
	}
	return c
}

// MakeMove plays a for the player to move and updates every tracked set.
func (s *State) MakeMove(a Action) {
	if s.pending > 0 {
		panic("state: full move played over pending fast moves")
	}
	mover := s.toMove
	s.Board.MakeMove(a)
	s.hash ^= s.keys.Key(mover, a)

	s.marks = append(s.marks, len(s.journal))
	s.updateNeighbours(mover, a)
	s.updateThreats(mover, a)
}

// Undo reverts the last full move, restoring grid, pool, hash and every
// tracked set exactly.
func (s *State) Undo() Action {
	if s.pending > 0 {
		panic("state: undo over pending fast moves")
	}
	if len(s.marks) == 0 {
		panic("state: undo past the start of the undo history")
	}
	mark := s.marks[len(s.marks)-1]
	s.marks = s.marks[:len(s.marks)-1]
	for i := len(s.journal) - 1; i >= mark; i-- {
		e := s.journal[i]
		set := s.sets[e.set]
		if e.index == added {
			set.Remove(set.IndexOf(e.action))
		} else {
			set.Insert(e.index, e.action)
		}
	}
	s.journal = s.journal[:mark]

	a := s.Board.Undo()
	s.hash ^= s.keys.Key(s.toMove, a)
	return a
}

// FastMakeMove only updates grid, history and player to move. Nothing but
// the win and draw checks may be queried until the matching FastUndo.
func (s *State) FastMakeMove(a Action) {
	s.place(a)
	s.pending++
}

func (s *State) FastUndo() {
	if s.pending == 0 {
		panic("state: fast undo without a fast move")
	}
	s.unplace()
	s.pending--
}

// WinsImmediately probes whether the player to move wins by playing a
func (s *State) WinsImmediately(a Action) bool {
	if !s.IsEmpty(a) {
		return false
	}
	s.FastMakeMove(a)
	won := s.IsWon()
	s.FastUndo()
	return won
}

func (s *State) Hash() uint64 {
	return s.hash
}

func (s *State) Keys() *Zobrist {
	return s.keys
}

func (s *State) Neighbours(p Player) *ActionSet {
	return s.sets[neighboursOf(p)]
}

// NeighboursUnion returns the empty cells next to any stone
func (s *State) NeighboursUnion() *ActionSet {
	return s.sets[neighboursUnion]
}

// NeighboursIntersection returns the empty cells next to stones of both players
func (s *State) NeighboursIntersection() *ActionSet {
	return s.sets[neighboursIntersection]
}

// Threats returns the cells where p wins by playing
func (s *State) Threats(p Player) *ActionSet {
	return s.sets[threatsOf(p)]
}

func (s *State) DoubleThreats(p Player) *ActionSet {
	return s.sets[doubleThreatsOf(p)]
}

func (s *State) PlayerThreats() *ActionSet {
	return s.Threats(s.toMove)
}

func (s *State) EnemyThreats() *ActionSet {
	return s.Threats(s.toMove.Opponent())
}

func (s *State) PlayerDoubleThreats() *ActionSet {
	return s.DoubleThreats(s.toMove)
}

func (s *State) EnemyDoubleThreats() *ActionSet {
	return s.DoubleThreats(s.toMove.Opponent())
}

// IsEffectivelyOver reports a decided game: the player to move can win now,
// or the opponent has more winning cells than can be blocked.
func (s *State) IsEffectivelyOver() bool {
	return s.PlayerThreats().Len() > 0 || s.EnemyThreats().Len() >= 2
}

func (s *State) add(id setID, a Action) bool {
	if !s.sets[id].Add(a) {
		return false
	}
	s.journal = append(s.journal, edit{set: id, action: a, index: added})
	return true
}

func (s *State) remove(id setID, a Action) {
	i := s.sets[id].IndexOf(a)
	if i == absent {
		return
	}
	s.sets[id].Remove(i)
	s.journal = append(s.journal, edit{set: id, action: a, index: i})
}

func (s *State) updateNeighbours(p Player, a Action) {
	for x := a.X - 1; x <= a.X+1; x++ {
		for y := a.Y - 1; y <= a.Y+1; y++ {
			if !inGrid(x, y) || s.grid[x][y] != Empty {
				continue
			}
			cell := Action{X: x, Y: y}
			if !s.add(neighboursOf(p), cell) {
				continue
			}
			if s.sets[neighboursOf(p.Opponent())].Contains(cell) {
				s.add(neighboursIntersection, cell)
			} else {
				s.add(neighboursUnion, cell)
			}
		}
	}

	s.remove(neighboursOf(p), a)
	s.remove(neighboursOf(p.Opponent()), a)
	s.remove(neighboursUnion, a)
	s.remove(neighboursIntersection, a)
}

func (s *State) updateThreats(p Player, a Action) {
	for _, q := range [Players]Player{FirstPlayer, SecondPlayer} {
		s.remove(threatsOf(q), a)
		s.remove(doubleThreatsOf(q), a)
	}
	// Stones only accumulate, so a threat holds until its cell is taken.
	// Double threats can be defused by a block and are checked again.
	s.revalidate(p.Opponent())
	s.revalidate(p)

	for _, d := range axes {
		ahead := s.scan(p, a, d[0], d[1])
		behind := s.scan(p, a, -d[0], -d[1])
		run := 1 + ahead.run + behind.run
		for _, side := range [2]lineScan{ahead, behind} {
			if side.probeFound && s.IsDoubleThreat(p, side.probe) {
				s.add(doubleThreatsOf(p), side.probe)
			}
			if !side.gapFound {
				continue
			}
			if run+1+side.beyond >= InARow {
				s.add(threatsOf(p), side.gap)
			} else if s.IsDoubleThreat(p, side.gap) {
				s.add(doubleThreatsOf(p), side.gap)
			}
		}
	}
}

func (s *State) revalidate(p Player) {
	set := s.sets[doubleThreatsOf(p)]
	for i := set.Len() - 1; i >= 0; i-- {
		if a := set.At(i); !s.IsDoubleThreat(p, a) {
			s.remove(doubleThreatsOf(p), a)
		}
	}
}

// IsDoubleThreat reports whether p playing the empty cell a would leave p
// with at least two cells that each complete a winning line.
func (s *State) IsDoubleThreat(p Player, a Action) bool {
	if !s.IsEmpty(a) {
		return false
	}
	threats := 0
	for _, d := range axes {
		ahead := s.scan(p, a, d[0], d[1])
		behind := s.scan(p, a, -d[0], -d[1])
		run := 1 + ahead.run + behind.run
		if ahead.gapFound && run+1+ahead.beyond >= InARow {
			threats++
		}
		if behind.gapFound && run+1+behind.beyond >= InARow {
			threats++
		}
		if threats >= 2 {
			return true
		}
	}
	return false
}

// lineScan describes one direction outward from a cell: the contiguous run
// of p's stones, the first empty cell past it, p's stones right after that
// gap, and the empty cell that ended the scan, if any.
type lineScan struct {
	run        int
	gap        Action
	gapFound   bool
	beyond     int
	probe      Action
	probeFound bool
}

func (s *State) scan(p Player, a Action, dx, dy int) lineScan {
	stone := p.Stone()
	var l lineScan
	for x, y := a.X+dx, a.Y+dy; inGrid(x, y); x, y = x+dx, y+dy {
		switch cell := s.grid[x][y]; {
		case cell == stone && !l.gapFound:
			l.run++
		case cell == stone:
			l.beyond++
		case cell == Empty && !l.gapFound:
			l.gap = Action{X: x, Y: y}
			l.gapFound = true
		default:
			if cell == Empty {
				l.probe = Action{X: x, Y: y}
				l.probeFound = true
			}
			return l
		}
	}
	return l
}
