package dualselect

import "strings"

// IDSet is an insertion-ordered set of IDs keyed by ID.Key. The first
// representation inserted for a key is the one that is kept.
// The zero value is ready to use.
type IDSet struct {
	index map[string]int
	ids   []ID
}

// NewIDSet returns a set populated with ids, dropping duplicate keys.
func NewIDSet(ids ...ID) *IDSet {
	s := &IDSet{}
	for _, id := range ids {
		s.Insert(id)
	}
	return s
}

// Has returns true iff an ID with the same key is in the set.
func (s *IDSet) Has(id ID) bool {
	return s.HasKey(id.Key())
}

// HasKey returns true iff key is in the set.
func (s *IDSet) HasKey(key string) bool {
	if s == nil || s.index == nil {
		return false
	}
	_, ok := s.index[key]
	return ok
}

// Get returns the stored representation for key.
func (s *IDSet) Get(key string) (ID, bool) {
	if s == nil || s.index == nil {
		return ID{}, false
	}
	i, ok := s.index[key]
	if !ok {
		return ID{}, false
	}
	return s.ids[i], true
}

// Insert adds id and reports whether it was not already present.
func (s *IDSet) Insert(id ID) bool {
	if s.index == nil {
		s.index = make(map[string]int)
	}
	if _, ok := s.index[id.Key()]; ok {
		return false
	}
	s.index[id.Key()] = len(s.ids)
	s.ids = append(s.ids, id)
	return true
}

// Delete removes id and reports whether it was present.
func (s *IDSet) Delete(id ID) bool {
	if s == nil || s.index == nil {
		return false
	}
	i, ok := s.index[id.Key()]
	if !ok {
		return false
	}
	s.ids = append(s.ids[:i], s.ids[i+1:]...)
	delete(s.index, id.Key())
	for j := i; j < len(s.ids); j++ {
		s.index[s.ids[j].Key()] = j
	}
	return true
}

// Toggle inserts id if absent and removes it otherwise. It returns true when
// id is in the set afterwards.
func (s *IDSet) Toggle(id ID) bool {
	if s.Delete(id) {
		return false
	}
	s.Insert(id)
	return true
}

// Len returns the number of IDs in the set.
func (s *IDSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.ids)
}

// List returns the IDs in insertion order.
func (s *IDSet) List() []ID {
	if s == nil {
		return nil
	}
	out := make([]ID, len(s.ids))
	copy(out, s.ids)
	return out
}

// Keys returns the normalized keys in insertion order.
func (s *IDSet) Keys() []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s.ids))
	for i, id := range s.ids {
		out[i] = id.Key()
	}
	return out
}

// Clone returns an independent copy.
func (s *IDSet) Clone() *IDSet {
	return NewIDSet(s.List()...)
}

// Clear empties the set.
func (s *IDSet) Clear() {
	s.index = nil
	s.ids = nil
}

// Retain keeps only the IDs for which keep returns true.
func (s *IDSet) Retain(keep func(ID) bool) {
	if s.Len() == 0 {
		return
	}
	kept := s.ids[:0]
	for _, id := range s.ids {
		if keep(id) {
			kept = append(kept, id)
		}
	}
	s.ids = kept
	s.index = make(map[string]int, len(kept))
	for i, id := range kept {
		s.index[id.Key()] = i
	}
}

func (s *IDSet) String() string {
	if s.Len() == 0 {
		return "{}"
	}
	return "{" + strings.Join(s.Keys(), " ") + "}"
}
