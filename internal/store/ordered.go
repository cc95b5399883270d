package store

// orderedSet is a key to record map that iterates in insertion order.
type orderedSet[T any] struct {
	index map[string]int
	items []T
}

func newOrderedSet[T any]() *orderedSet[T] {
	return &orderedSet[T]{index: make(map[string]int)}
}

func (s *orderedSet[T]) get(key string) (T, bool) {
	if i, ok := s.index[key]; ok {
		return s.items[i], true
	}
	var zero T
	return zero, false
}

// put replaces the record in place or appends it.
func (s *orderedSet[T]) put(key string, item T) {
	if i, ok := s.index[key]; ok {
		s.items[i] = item
		return
	}
	s.index[key] = len(s.items)
	s.items = append(s.items, item)
}

func (s *orderedSet[T]) len() int {
	return len(s.items)
}

func (s *orderedSet[T]) values() []T {
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}
