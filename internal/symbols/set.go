package symbols

// orderedSet keeps insertion order so reports and crunch ordering stay stable
// between runs.
type orderedSet[T comparable] struct {
	index map[T]struct{}
	items []T
}

func (s *orderedSet[T]) add(v T) bool {
	if s.index == nil {
		s.index = make(map[T]struct{})
	}
	if _, ok := s.index[v]; ok {
		return false
	}
	s.index[v] = struct{}{}
	s.items = append(s.items, v)
	return true
}

func (s *orderedSet[T]) remove(v T) bool {
	if _, ok := s.index[v]; !ok {
		return false
	}
	delete(s.index, v)
	for i, item := range s.items {
		if item == v {
			s.items = append(s.items[:i], s.items[i+1:]...)
			break
		}
	}
	return true
}

func (s *orderedSet[T]) has(v T) bool {
	_, ok := s.index[v]
	return ok
}

func (s *orderedSet[T]) len() int { return len(s.items) }

// only returns the single element, or the zero value when the set does not
// hold exactly one.
func (s *orderedSet[T]) only() T {
	var zero T
	if len(s.items) != 1 {
		return zero
	}
	return s.items[0]
}
