package state

// Status maps the machine's current state onto configuring, active or over.
// Every state other than the two rest states belongs to an active round.
func (s *State) Status() Status {
	switch s.FSM.Current() {
	case "configuring":
		return Configuring
	case "over":
		return Over
	default:
		return Active
	}
}

func (s *State) IsActive() bool {
	return s.Status() == Active
}

// AllMatched reports whether the round has items and every one is matched.
func (s *State) AllMatched() bool {
	if len(s.Items) == 0 {
		return false
	}
	for _, it := range s.Items {
		if !it.Matched {
			return false
		}
	}
	return true
}

func (s *State) MatchedCount() int {
	n := 0
	for _, it := range s.Items {
		if it.Matched {
			n++
		}
	}
	return n
}

// FindItem returns the item with the given id.
func (s *State) FindItem(id string) (Item, bool) {
	if i := s.itemIndex(id); i >= 0 {
		return s.Items[i], true
	}
	return Item{}, false
}

// FindTarget returns the target with the given id.
func (s *State) FindTarget(id string) (Target, bool) {
	if i := s.targetIndex(id); i >= 0 {
		return s.Targets[i], true
	}
	return Target{}, false
}

func (s *State) itemIndex(id string) int {
	for i, it := range s.Items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

func (s *State) targetIndex(id string) int {
	for i, t := range s.Targets {
		if t.ID == id {
			return i
		}
	}
	return -1
}
