package engine

// Rank is a player's position in the current step's night order.
func (s *State) Rank(p PlayerIndex) (int, bool) {
	role, err := s.ActingRole(p)
	if err != nil {
		return 0, false
	}
	order := s.script.Order
	switch s.step {
	case StepSetup:
		return role.SetupOrder(order)
	case StepNightOne:
		return role.NightOneOrder(order)
	case StepNight:
		return role.NightOrder(order)
	}
	return 0, false
}

// NextActive returns the player who acts after prev in the current step,
// or false once the step is exhausted. Pass nil to start the step.
//
// Players act in ascending rank; players sharing a rank act in ascending
// seat order. Ranks are recomputed on every call so deaths and role changes
// between calls are taken into account.
func (s *State) NextActive(prev *PlayerIndex) (PlayerIndex, bool) {
	if prev == nil {
		return s.nextActive(NoPlayer, 0, false)
	}
	rank, ok := s.Rank(*prev)
	return s.nextActive(*prev, rank, ok)
}

func (s *State) nextActive(prevSeat PlayerIndex, prevRank int, hasPrev bool) (PlayerIndex, bool) {
	next, nextRank := NoPlayer, 0
	for p := range s.players {
		rank, ok := s.Rank(p)
		if !ok {
			continue
		}
		qualifies := !hasPrev || rank > prevRank || (rank == prevRank && p > prevSeat)
		if !qualifies {
			continue
		}
		// seats are scanned in ascending order, so a strict comparison keeps the lowest seat on ties
		if next == NoPlayer || rank < nextRank {
			next, nextRank = p, rank
		}
	}
	return next, next != NoPlayer
}
