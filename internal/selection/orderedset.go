package selection

// compactFactor controls when tombstoned slots in the order log are dropped.
const compactFactor = 2

type orderEntry struct {
	id  int
	seq uint64
}

// orderedSet is a set of ids that remembers insertion order. Adding an id that
// is already present keeps its original position; removing and re-adding moves
// it to the end. Add, Remove and Has are O(1) amortized.
type orderedSet struct {
	index map[int]uint64
	order []orderEntry
	next  uint64
}

func newOrderedSet() *orderedSet {
	return &orderedSet{index: make(map[int]uint64)}
}

func (s *orderedSet) Has(id int) bool {
	_, ok := s.index[id]
	return ok
}

func (s *orderedSet) Add(id int) {
	if s.Has(id) {
		return
	}
	s.next++
	s.index[id] = s.next
	s.order = append(s.order, orderEntry{id: id, seq: s.next})
}

func (s *orderedSet) Remove(id int) {
	if !s.Has(id) {
		return
	}
	delete(s.index, id)
	if len(s.order) > compactFactor*len(s.index)+compactFactor {
		s.compact()
	}
}

func (s *orderedSet) Len() int {
	return len(s.index)
}

// IDs returns the live ids in insertion order.
func (s *orderedSet) IDs() []int {
	ids := make([]int, 0, len(s.index))
	for _, e := range s.order {
		if seq, ok := s.index[e.id]; ok && seq == e.seq {
			ids = append(ids, e.id)
		}
	}
	return ids
}

func (s *orderedSet) Clear() {
	s.index = make(map[int]uint64)
	s.order = nil
}

// compact drops entries for removed or re-added ids from the order log.
func (s *orderedSet) compact() {
	live := s.order[:0]
	for _, e := range s.order {
		if seq, ok := s.index[e.id]; ok && seq == e.seq {
			live = append(live, e)
		}
	}
	s.order = live
}
