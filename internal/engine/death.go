package engine

import (
	"fmt"
	"slices"

	"go.uber.org/zap"
)

// Kill attempts to kill target on behalf of attacker and reports whether
// the target died. Status protections are checked first, then the target's
// own role may save them unless they are impaired.
func (s *State) Kill(attacker, target PlayerIndex) (bool, error) {
	if err := s.checkPlayer(attacker); err != nil {
		return false, err
	}
	if err := s.checkPlayer(target); err != nil {
		return false, err
	}
	if s.players[target].Dead {
		return false, nil
	}

	s.record(Event{Type: EventAttemptedKill, Player: target, Source: attacker})

	if s.protected(attacker, target) {
		s.logger.Debug("kill prevented by protection",
			zap.Int("attacker", attacker),
			zap.Int("target", target),
		)
		return false, nil
	}

	if !s.IsImpaired(target) {
		if dies, ok := s.players[target].Role.Kill(attacker, target, s); ok && !dies {
			return false, nil
		}
	}

	s.die(target, attacker)
	return true, nil
}

func (s *State) protected(attacker, target PlayerIndex) bool {
	for _, e := range s.statuses {
		if e.Target != target {
			continue
		}
		switch e.Kind.Type {
		case StatusDeathProtected:
			return true
		case StatusNightProtected:
			if s.step.IsNight() {
				return true
			}
		case StatusDemonProtected:
			if s.players[attacker].Role.Type() == Demon {
				return true
			}
		}
	}
	return false
}

// Execute executes target and reports whether they died. Only
// DeathProtected and the target's own role can prevent it.
func (s *State) Execute(target PlayerIndex) (bool, error) {
	if err := s.checkPlayer(target); err != nil {
		return false, err
	}

	s.executed = true
	s.record(Event{Type: EventExecution, Player: target, Source: NoPlayer, Role: s.players[target].Role.Name()})

	if s.players[target].Dead {
		return false, nil
	}
	if s.HasStatusOn(DeathProtected, target) {
		return false, nil
	}
	if !s.IsImpaired(target) {
		if dies, ok := s.players[target].Role.Execute(target, s); ok && !dies {
			return false, nil
		}
	}

	s.die(target, NoPlayer)
	return true, nil
}

func (s *State) die(target, cause PlayerIndex) {
	s.players[target].Dead = true
	s.record(Event{Type: EventDeath, Player: target, Source: cause, Role: s.players[target].Role.Name()})
	s.releaseSource(target)
	s.logger.Info("player died",
		zap.Int("player", target),
		zap.String("name", s.players[target].Name),
		zap.String("role", string(s.players[target].Role.Name())),
	)
}

// ExecutedToday reports whether an execution happened during the current day.
func (s *State) ExecutedToday() bool {
	return s.executed
}

// nominate records a nomination after checking the day's rules.
func (s *State) nominate(nominator, nominee PlayerIndex) error {
	if err := s.checkPlayer(nominator); err != nil {
		return InvalidPlayer(fmt.Sprintf("there is no seat %d", nominator))
	}
	if err := s.checkPlayer(nominee); err != nil {
		return InvalidPlayer(fmt.Sprintf("there is no seat %d", nominee))
	}
	switch {
	case s.players[nominator].Dead:
		return InvalidPlayer(s.players[nominator].Name + " is dead and cannot nominate")
	case slices.Contains(s.nominators, nominator):
		return InvalidPlayer(s.players[nominator].Name + " has already nominated today")
	case slices.Contains(s.nominees, nominee):
		return InvalidPlayer(s.players[nominee].Name + " has already been nominated today")
	}

	s.nominators = append(s.nominators, nominator)
	s.nominees = append(s.nominees, nominee)
	s.record(Event{Type: EventNomination, Player: nominee, Source: nominator})
	return nil
}

// eligibleVoters counts living players plus dead players holding a ghost vote.
func (s *State) eligibleVoters() int {
	n := 0
	for _, p := range s.players {
		if !p.Dead || p.GhostVote {
			n++
		}
	}
	return n
}

// spendGhostVote marks a dead player's single remaining vote as used.
func (s *State) spendGhostVote(p PlayerIndex) error {
	if err := s.checkPlayer(p); err != nil {
		return InvalidPlayer(fmt.Sprintf("there is no seat %d", p))
	}
	pl := &s.players[p]
	switch {
	case !pl.Dead:
		return InvalidPlayer(pl.Name + " is alive and keeps their vote")
	case !pl.GhostVote:
		return InvalidPlayer(pl.Name + " has already used their ghost vote")
	}
	pl.GhostVote = false
	s.logger.Info("ghost vote spent", zap.Int("player", p), zap.String("name", pl.Name))
	return nil
}

func (s *State) recordVotes(nominee PlayerIndex, votes int) {
	s.votes[nominee] = votes
	s.record(Event{Type: EventVote, Player: nominee, Source: NoPlayer, Count: votes})
}

// onTheBlock returns the player who would be executed if the day ended now:
// the unique highest vote count reaching half the living players.
func (s *State) onTheBlock() (PlayerIndex, bool) {
	threshold := (s.LivingCount() + 1) / 2
	best, top, tied := NoPlayer, 0, false
	for _, nominee := range s.nominees {
		votes := s.votes[nominee]
		switch {
		case votes > top:
			best, top, tied = nominee, votes, false
		case votes == top:
			tied = true
		}
	}
	if best == NoPlayer || tied || top < threshold {
		return NoPlayer, false
	}
	return best, true
}
