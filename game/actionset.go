package game

const absent = -1

// ActionSet stores unique actions with O(1) add, lookup and removal.
// Removal swaps the last element into the freed slot, so order is not
// preserved.
type ActionSet struct {
	actions []Action
	index   [Cells]int
}

func NewActionSet(capacity int) *ActionSet {
	s := &ActionSet{actions: make([]Action, 0, capacity)}
	for i := range s.index {
		s.index[i] = absent
	}
	return s
}

// Add appends a if it is not already present
func (s *ActionSet) Add(a Action) bool {
	if s.index[a.Index()] != absent {
		return false
	}
	s.index[a.Index()] = len(s.actions)
	s.actions = append(s.actions, a)
	return true
}

// Insert places a at position i, moving the element there to the back.
// It undoes Remove(i) exactly, including the layout.
func (s *ActionSet) Insert(i int, a Action) {
	if s.index[a.Index()] != absent {
		panic("action set: inserting a duplicate action " + a.String())
	}
	if i >= len(s.actions) {
		s.Add(a)
		return
	}
	moved := s.actions[i]
	s.index[moved.Index()] = len(s.actions)
	s.actions = append(s.actions, moved)

	s.actions[i] = a
	s.index[a.Index()] = i
}

// Remove deletes the element at position i and returns it
func (s *ActionSet) Remove(i int) Action {
	last := len(s.actions) - 1
	removed := s.actions[i]
	s.index[removed.Index()] = absent

	if i != last {
		moved := s.actions[last]
		s.actions[i] = moved
		s.index[moved.Index()] = i
	}
	s.actions = s.actions[:last]
	return removed
}

// RemoveAction deletes a if present and reports whether it was
func (s *ActionSet) RemoveAction(a Action) bool {
	i := s.index[a.Index()]
	if i == absent {
		return false
	}
	s.Remove(i)
	return true
}

func (s *ActionSet) IndexOf(a Action) int {
	return s.index[a.Index()]
}

func (s *ActionSet) Contains(a Action) bool {
	return s.index[a.Index()] != absent
}

func (s *ActionSet) Len() int {
	return len(s.actions)
}

func (s *ActionSet) At(i int) Action {
	return s.actions[i]
}

// Actions exposes the backing slice. Callers must not modify it.
func (s *ActionSet) Actions() []Action {
	return s.actions
}

func (s *ActionSet) Clear() {
	for _, a := range s.actions {
		s.index[a.Index()] = absent
	}
	s.actions = s.actions[:0]
}

func (s *ActionSet) Clone() *ActionSet {
	c := &ActionSet{
		actions: make([]Action, len(s.actions), cap(s.actions)),
		index:   s.index,
	}
	copy(c.actions, s.actions)
	return c
}
