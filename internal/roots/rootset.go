package roots

// RootSet accumulates root identifiers in order of first occurrence.
// The zero value is not usable; call NewRootSet.
type RootSet struct {
	seen  map[string]struct{}
	order []string
}

// NewRootSet returns an empty set.
func NewRootSet() *RootSet {
	return &RootSet{
		seen:  make(map[string]struct{}),
		order: []string{},
	}
}

// Add records root and reports whether it was seen for the first time.
func (s *RootSet) Add(root string) bool {
	if _, ok := s.seen[root]; ok {
		return false
	}
	s.seen[root] = struct{}{}
	s.order = append(s.order, root)
	return true
}

// Has reports whether root was already added.
func (s *RootSet) Has(root string) bool {
	_, ok := s.seen[root]
	return ok
}

// Len is the number of distinct roots.
func (s *RootSet) Len() int { return len(s.order) }

// Roots returns a copy of the roots in discovery order.
func (s *RootSet) Roots() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}
