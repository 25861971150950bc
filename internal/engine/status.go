package engine

import (
	"fmt"
	"slices"
)

// StatusType is the tag of a status effect.
type StatusType int

const (
	StatusDrunk StatusType = iota
	StatusMad
	StatusPoisoned
	StatusDemonProtected
	StatusNightProtected
	StatusDeathProtected
	StatusNoAbility
	StatusAbilityUsed
	StatusButlerMaster
	StatusAppearsGood
	StatusAppearsEvil
	StatusRegistersAs
	StatusMayorBounceKill
	StatusActsAs
	StatusFortuneTellerRedHerring
	StatusWasherwomanTownsfolk
	StatusWasherwomanWrong
	StatusLibrarianOutsider
	StatusLibrarianWrong
	StatusInvestigatorMinion
	StatusInvestigatorWrong
)

var statusTypeNames = map[StatusType]string{
	StatusDrunk:                   "Drunk",
	StatusMad:                     "Mad",
	StatusPoisoned:                "Poisoned",
	StatusDemonProtected:          "Demon Protected",
	StatusNightProtected:          "Night Protected",
	StatusDeathProtected:          "Death Protected",
	StatusNoAbility:               "No Ability",
	StatusAbilityUsed:             "Ability Used",
	StatusButlerMaster:            "Butler Master",
	StatusAppearsGood:             "Appears Good",
	StatusAppearsEvil:             "Appears Evil",
	StatusRegistersAs:             "Registers As",
	StatusMayorBounceKill:         "Mayor Bounce Kill",
	StatusActsAs:                  "Acts As",
	StatusFortuneTellerRedHerring: "Fortune Teller Red Herring",
	StatusWasherwomanTownsfolk:    "Washerwoman Townsfolk",
	StatusWasherwomanWrong:        "Washerwoman Wrong",
	StatusLibrarianOutsider:       "Librarian Outsider",
	StatusLibrarianWrong:          "Librarian Wrong",
	StatusInvestigatorMinion:      "Investigator Minion",
	StatusInvestigatorWrong:       "Investigator Wrong",
}

func (t StatusType) String() string {
	if name, ok := statusTypeNames[t]; ok {
		return name
	}
	return "Unknown"
}

// StatusKind is a status tag plus its payload. Role is set only for
// StatusActsAs and As only for StatusRegistersAs, so kinds compare with ==.
type StatusKind struct {
	Type StatusType    `json:"type"`
	Role RoleName      `json:"role,omitempty"`
	As   CharacterType `json:"as,omitempty"`
}

var (
	Drunk                   = StatusKind{Type: StatusDrunk}
	Mad                     = StatusKind{Type: StatusMad}
	Poisoned                = StatusKind{Type: StatusPoisoned}
	DemonProtected          = StatusKind{Type: StatusDemonProtected}
	NightProtected          = StatusKind{Type: StatusNightProtected}
	DeathProtected          = StatusKind{Type: StatusDeathProtected}
	NoAbility               = StatusKind{Type: StatusNoAbility}
	AbilityUsed             = StatusKind{Type: StatusAbilityUsed}
	ButlerMaster            = StatusKind{Type: StatusButlerMaster}
	AppearsGood             = StatusKind{Type: StatusAppearsGood}
	AppearsEvil             = StatusKind{Type: StatusAppearsEvil}
	MayorBounceKill         = StatusKind{Type: StatusMayorBounceKill}
	FortuneTellerRedHerring = StatusKind{Type: StatusFortuneTellerRedHerring}
	WasherwomanTownsfolk    = StatusKind{Type: StatusWasherwomanTownsfolk}
	WasherwomanWrong        = StatusKind{Type: StatusWasherwomanWrong}
	LibrarianOutsider       = StatusKind{Type: StatusLibrarianOutsider}
	LibrarianWrong          = StatusKind{Type: StatusLibrarianWrong}
	InvestigatorMinion      = StatusKind{Type: StatusInvestigatorMinion}
	InvestigatorWrong       = StatusKind{Type: StatusInvestigatorWrong}
)

// ActsAs makes the affected player resolve abilities as another role.
func ActsAs(role RoleName) StatusKind {
	return StatusKind{Type: StatusActsAs, Role: role}
}

// RegistersAs makes the affected player register as another character type.
func RegistersAs(t CharacterType) StatusKind {
	return StatusKind{Type: StatusRegistersAs, As: t}
}

func (k StatusKind) String() string {
	switch k.Type {
	case StatusActsAs:
		return fmt.Sprintf("%s's Ability", k.Role)
	case StatusRegistersAs:
		return fmt.Sprintf("Registers As %s", k.As)
	default:
		return k.Type.String()
	}
}

// endsWithSource reports whether the effect lapses when its source dies.
func (k StatusKind) endsWithSource() bool {
	switch k.Type {
	case StatusPoisoned, StatusDrunk, StatusDemonProtected, StatusNightProtected,
		StatusButlerMaster, StatusMayorBounceKill:
		return true
	}
	return false
}

// Expiry is when a status effect is cleared by the step machine.
type Expiry int

const (
	ExpiresNever Expiry = iota
	// ExpiresAtDawn clears the effect when a day begins.
	ExpiresAtDawn
	// ExpiresAtDusk clears the effect when a night begins.
	ExpiresAtDusk
)

// StatusEffect is one (kind, source, target) record of the overlay.
type StatusEffect struct {
	Kind       StatusKind  `json:"kind"`
	Source     PlayerIndex `json:"source"`
	SourceRole RoleName    `json:"sourceRole"`
	Target     PlayerIndex `json:"target"`
	Expires    Expiry      `json:"expires,omitempty"`
}

func (e StatusEffect) matches(kind StatusKind, source, target PlayerIndex) bool {
	return e.Kind == kind && e.Source == source && e.Target == target
}

// AddStatus applies a status effect that lasts until removed.
func (s *State) AddStatus(kind StatusKind, source, target PlayerIndex) error {
	return s.AddExpiringStatus(kind, source, target, ExpiresNever)
}

// AddExpiringStatus applies a status effect that the step machine clears.
func (s *State) AddExpiringStatus(kind StatusKind, source, target PlayerIndex, expires Expiry) error {
	if err := s.checkPlayer(source); err != nil {
		return err
	}
	if err := s.checkPlayer(target); err != nil {
		return err
	}

	effect := StatusEffect{
		Kind:       kind,
		Source:     source,
		SourceRole: s.players[source].Role.Name(),
		Target:     target,
		Expires:    expires,
	}
	s.statuses = append(s.statuses, effect)
	s.record(Event{Type: EventStatusApplied, Player: target, Source: source, Status: &effect})
	s.logger.Debug("status applied",
		zapStatus(effect)...,
	)
	return nil
}

// RemoveStatus removes exactly one effect matching kind, source and target.
// Removing an effect that is not present is an integration error.
func (s *State) RemoveStatus(kind StatusKind, source, target PlayerIndex) error {
	i := slices.IndexFunc(s.statuses, func(e StatusEffect) bool {
		return e.matches(kind, source, target)
	})
	if i < 0 {
		return fmt.Errorf("%w: %s from %d on %d", ErrStatusNotFound, kind, source, target)
	}

	effect := s.statuses[i]
	s.statuses = slices.Delete(s.statuses, i, i+1)
	s.record(Event{Type: EventStatusRemoved, Player: target, Source: source, Status: &effect})
	return nil
}

// StatusesBy returns the effects a player is the source of.
func (s *State) StatusesBy(source PlayerIndex) []StatusEffect {
	var out []StatusEffect
	for _, e := range s.statuses {
		if e.Source == source {
			out = append(out, e)
		}
	}
	return out
}

// StatusesOn returns the effects affecting a player.
func (s *State) StatusesOn(target PlayerIndex) []StatusEffect {
	var out []StatusEffect
	for _, e := range s.statuses {
		if e.Target == target {
			out = append(out, e)
		}
	}
	return out
}

// Statuses returns every effect in play.
func (s *State) Statuses() []StatusEffect {
	return slices.Clone(s.statuses)
}

// HasStatus reports whether an exact (kind, source, target) effect exists.
func (s *State) HasStatus(kind StatusKind, source, target PlayerIndex) bool {
	return slices.ContainsFunc(s.statuses, func(e StatusEffect) bool {
		return e.matches(kind, source, target)
	})
}

// HasStatusOn reports whether a player carries an effect of the kind from any source.
func (s *State) HasStatusOn(kind StatusKind, target PlayerIndex) bool {
	return slices.ContainsFunc(s.statuses, func(e StatusEffect) bool {
		return e.Kind == kind && e.Target == target
	})
}

// ActingRole is the role that resolves abilities for a player. An ActsAs
// effect substitutes the named role for the player's own.
func (s *State) ActingRole(p PlayerIndex) (Role, error) {
	if err := s.checkPlayer(p); err != nil {
		return nil, err
	}
	for _, e := range s.statuses {
		if e.Target != p || e.Kind.Type != StatusActsAs {
			continue
		}
		return s.registry.New(e.Kind.Role)
	}
	return s.players[p].Role, nil
}

// expire drops effects with the given expiry.
func (s *State) expire(when Expiry) {
	s.statuses = slices.DeleteFunc(s.statuses, func(e StatusEffect) bool {
		return e.Expires == when
	})
}

// releaseSource drops effects whose power ended with their source's death.
func (s *State) releaseSource(source PlayerIndex) {
	s.statuses = slices.DeleteFunc(s.statuses, func(e StatusEffect) bool {
		return e.Source == source && e.Kind.endsWithSource()
	})
}
