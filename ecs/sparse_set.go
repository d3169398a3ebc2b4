package ecs

// SparseSet stores one component kind keyed by entity slot. Slots are 1-based;
// slot 0 never holds a value.
type SparseSet struct {
	slots  []int
	values []any
	index  []int
}

func (s *SparseSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.slots)
}

// Has reports whether slot holds a value.
func (s *SparseSet) Has(slot int) bool {
	if s == nil || slot <= 0 || slot > len(s.index) {
		return false
	}
	i := s.index[slot-1]
	return i >= 0 && i < len(s.slots) && s.slots[i] == slot
}

// Get returns the value at slot, or nil.
func (s *SparseSet) Get(slot int) any {
	if !s.Has(slot) {
		return nil
	}
	return s.values[s.index[slot-1]]
}

// Set stores v at slot, replacing any previous value.
func (s *SparseSet) Set(slot int, v any) {
	if s == nil || slot <= 0 {
		return
	}
	for len(s.index) < slot {
		s.index = append(s.index, -1)
	}
	if s.Has(slot) {
		s.values[s.index[slot-1]] = v
		return
	}
	s.slots = append(s.slots, slot)
	s.values = append(s.values, v)
	s.index[slot-1] = len(s.slots) - 1
}

// Remove drops the value at slot. The last dense entry takes its place.
func (s *SparseSet) Remove(slot int) {
	if !s.Has(slot) {
		return
	}
	i := s.index[slot-1]
	last := len(s.slots) - 1
	moved := s.slots[last]

	s.slots[i] = moved
	s.values[i] = s.values[last]
	s.index[moved-1] = i

	s.values[last] = nil
	s.slots = s.slots[:last]
	s.values = s.values[:last]
	s.index[slot-1] = -1
}

// Entities returns the dense slot list. Order follows insertion and removal,
// not slot number.
func (s *SparseSet) Entities() []int {
	if s == nil {
		return nil
	}
	return s.slots
}

func (s *SparseSet) Values() []any {
	if s == nil {
		return nil
	}
	return s.values
}
