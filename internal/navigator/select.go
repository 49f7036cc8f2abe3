package navigator

// SelectNext chooses the item to play on this loop iteration and applies
// the matching state transition. Rules are tried in priority order:
// back, loop, shuffle, then sequential advance.
func (s *State) SelectNext() Selection {
	s.mu.Lock()
	defer s.mu.Unlock()

	// A pending skip only authorizes the previous item to end early; by
	// the time a new item is chosen it has been honored.
	s.skipPending = false

	switch {
	case s.backPending:
		return s.selectBack()
	case s.loop && s.current >= 0:
		return Selection{Index: s.current, Item: s.index.Resolve(s.current), Mode: ModeLoop}
	case s.shuffle:
		return s.selectShuffle()
	default:
		return s.selectSequential()
	}
}

func (s *State) selectSequential() Selection {
	s.backAmount = 0
	if s.songIndex >= s.index.Len() {
		s.songIndex = 0
	}
	sel := s.take(s.songIndex, ModeSequential)
	s.songIndex++
	return sel
}

func (s *State) selectBack() Selection {
	s.backPending = false
	s.backAmount--
	offset := -s.backAmount

	if s.history.Len() > offset {
		value, err := s.history.PopAtOffsetFromEnd(offset)
		if err == nil {
			s.songIndex = value
			return s.take(value, ModeBack)
		}
	}

	// Nothing that far back: undo this press and replay the current item.
	s.backAmount++
	cur := s.current
	if cur < 0 {
		cur = 0
	}
	return Selection{Index: cur, Item: s.index.Resolve(cur), Mode: ModeBack, Exhausted: true}
}

func (s *State) selectShuffle() Selection {
	s.backAmount = 0
	n := s.index.Len()
	if n == 1 {
		s.songIndex = 0
		return s.take(0, ModeShuffle)
	}

	for {
		candidate := s.intn(n)
		if !s.history.Contains(candidate) {
			s.songIndex = candidate
			return s.take(candidate, ModeShuffle)
		}
		if s.songCounter == n || s.coversAll() {
			s.history.ResetToLast()
		}
	}
}

// take makes index the current item and records it in history.
func (s *State) take(index int, mode Mode) Selection {
	item := s.index.Resolve(index)
	s.history.Append(index)
	s.current = index
	return Selection{Index: index, Item: item, Mode: mode}
}

// coversAll reports whether every playlist index is present in history.
func (s *State) coversAll() bool {
	n := s.index.Len()
	if s.history.Len() < n {
		return false
	}
	for i := 0; i < n; i++ {
		if !s.history.Contains(i) {
			return false
		}
	}
	return true
}
