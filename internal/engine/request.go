package engine

import (
	"fmt"
	"slices"
)

// RequestKind is the interaction a change request needs from the moderator.
type RequestKind int

const (
	KindChoosePlayers RequestKind = iota
	KindChooseRoles
	KindVoting
	KindDisplay
	// KindNoModerator requests are applied by the engine without input.
	KindNoModerator
)

var requestKindNames = map[RequestKind]string{
	KindChoosePlayers: "choose_players",
	KindChooseRoles:   "choose_roles",
	KindVoting:        "voting",
	KindDisplay:       "display",
	KindNoModerator:   "no_moderator",
}

func (k RequestKind) String() string {
	if name, ok := requestKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Answer is the moderator's candidate answer to a change request.
type Answer interface {
	Kind() RequestKind
}

// PlayersAnswer selects players by seat.
type PlayersAnswer []PlayerIndex

// RolesAnswer selects roles.
type RolesAnswer []RoleName

// VoteAnswer is the number of votes cast.
type VoteAnswer int

func (PlayersAnswer) Kind() RequestKind { return KindChoosePlayers }
func (RolesAnswer) Kind() RequestKind { return KindChooseRoles }
func (VoteAnswer) Kind() RequestKind { return KindVoting }

// Players extracts selected players from an answer.
func Players(a Answer) ([]PlayerIndex, error) {
	ps, ok := a.(PlayersAnswer)
	if !ok {
		return nil, fmt.Errorf("%w: wanted players, got %T", ErrWrongAnswerKind, a)
	}
	return ps, nil
}

// Roles extracts selected roles from an answer.
func Roles(a Answer) ([]RoleName, error) {
	rs, ok := a.(RolesAnswer)
	if !ok {
		return nil, fmt.Errorf("%w: wanted roles, got %T", ErrWrongAnswerKind, a)
	}
	return rs, nil
}

// Votes extracts a vote count from an answer.
func Votes(a Answer) (int, error) {
	n, ok := a.(VoteAnswer)
	if !ok {
		return 0, fmt.Errorf("%w: wanted votes, got %T", ErrWrongAnswerKind, a)
	}
	return int(n), nil
}

// Validator checks a candidate answer against a read-only view of the game.
type Validator interface {
	Validate(v View, a Answer) error
}

// Mutator applies an accepted answer and may chain a follow-up request.
type Mutator interface {
	Apply(s *State, a Answer) (*ChangeRequest, error)
}

// ValidatorFunc adapts a function to Validator.
type ValidatorFunc func(v View, a Answer) error

func (f ValidatorFunc) Validate(v View, a Answer) error { return f(v, a) }

// MutatorFunc adapts a function to Mutator.
type MutatorFunc func(s *State, a Answer) (*ChangeRequest, error)

func (f MutatorFunc) Apply(s *State, a Answer) (*ChangeRequest, error) { return f(s, a) }

// ChangeRequest is a unit of moderator interaction produced by ability
// resolution. Build one with ChoosePlayers, ChooseRoles, Vote, Display or
// Automatic and attach behaviour with WithValidator and WithMutator.
type ChangeRequest struct {
	ID           string
	Kind         RequestKind
	Count        int
	Description  string
	Player       PlayerIndex
	Candidates   []RoleName
	ClearDisplay bool

	validator Validator
	mutator   Mutator
	spends    bool
	impaired  string
}

func newRequest(kind RequestKind, count int, description string) *ChangeRequest {
	return &ChangeRequest{
		Kind:        kind,
		Count:       count,
		Description: description,
		Player:      NoPlayer,
	}
}

// ChoosePlayers asks the moderator to select count distinct players.
func ChoosePlayers(count int, description string) *ChangeRequest {
	return newRequest(KindChoosePlayers, count, description)
}

// ChooseRoles asks the moderator to select count roles from candidates.
func ChooseRoles(count int, candidates []RoleName, description string) *ChangeRequest {
	cr := newRequest(KindChooseRoles, count, description)
	cr.Candidates = slices.Clone(candidates)
	return cr
}

// Vote asks the moderator for a vote count.
func Vote(description string) *ChangeRequest {
	return newRequest(KindVoting, 0, description)
}

// Display asks the moderator to show information and acknowledge it.
func Display(description string) *ChangeRequest {
	return newRequest(KindDisplay, 0, description)
}

// Automatic is applied by the engine as soon as it is issued.
func Automatic(description string) *ChangeRequest {
	return newRequest(KindNoModerator, 0, description)
}

// By records the acting player.
func (cr *ChangeRequest) By(p PlayerIndex) *ChangeRequest {
	cr.Player = p
	return cr
}

// ClearingDisplay asks the moderator to clear what was shown before.
func (cr *ChangeRequest) ClearingDisplay() *ChangeRequest {
	cr.ClearDisplay = true
	return cr
}

// WithValidator attaches a validator.
func (cr *ChangeRequest) WithValidator(fn ValidatorFunc) *ChangeRequest {
	cr.validator = fn
	return cr
}

// WithMutator attaches a mutator.
func (cr *ChangeRequest) WithMutator(fn MutatorFunc) *ChangeRequest {
	cr.mutator = fn
	return cr
}

// SpendsAbility marks the acting player's one-shot ability as used once
// the request is applied, whether or not the player is impaired.
func (cr *ChangeRequest) SpendsAbility() *ChangeRequest {
	cr.spends = true
	return cr
}

// WhenImpaired is what the moderator shows an impaired player after their
// choice, in place of the information the mutator would have produced.
func (cr *ChangeRequest) WhenImpaired(description string) *ChangeRequest {
	cr.impaired = description
	return cr
}

// HasMutator reports whether accepting the request changes state.
func (cr *ChangeRequest) HasMutator() bool {
	return cr.mutator != nil
}

// Check validates a candidate answer without touching state. Shape errors
// (answer kind, selection count, seat range, duplicates, role candidates)
// are checked before the request's own validator.
func (cr *ChangeRequest) Check(v View, a Answer) error {
	switch cr.Kind {
	case KindChoosePlayers:
		ps, err := Players(a)
		if err != nil {
			return err
		}
		if len(ps) != cr.Count {
			return WrongPlayerCount(cr.Count, len(ps))
		}
		for i, p := range ps {
			if p < 0 || p >= v.PlayerCount() {
				return InvalidPlayer(fmt.Sprintf("there is no seat %d", p))
			}
			if slices.Contains(ps[:i], p) {
				return InvalidPlayer("the same player was selected twice")
			}
		}
	case KindChooseRoles:
		rs, err := Roles(a)
		if err != nil {
			return err
		}
		if len(rs) != cr.Count {
			return WrongRoleCount(cr.Count, len(rs))
		}
		for _, r := range rs {
			if len(cr.Candidates) > 0 && !slices.Contains(cr.Candidates, r) {
				return InvalidRole(fmt.Sprintf("%s is not one of the offered roles", r))
			}
		}
	case KindVoting:
		n, err := Votes(a)
		if err != nil {
			return err
		}
		if n < 0 {
			return InvalidPlayer("vote count cannot be negative")
		}
	case KindDisplay, KindNoModerator:
		return nil
	}

	if cr.validator == nil {
		return nil
	}
	return cr.validator.Validate(v, a)
}

// Apply runs the mutator. Callers must Check first.
func (cr *ChangeRequest) Apply(s *State, a Answer) (*ChangeRequest, error) {
	var follow *ChangeRequest
	if cr.mutator != nil {
		var err error
		if follow, err = cr.mutator.Apply(s, a); err != nil {
			return nil, err
		}
	}
	if cr.spends && cr.Player != NoPlayer && !s.HasStatus(AbilityUsed, cr.Player, cr.Player) {
		if err := s.AddStatus(AbilityUsed, cr.Player, cr.Player); err != nil {
			return nil, err
		}
	}
	return follow, nil
}

// Impair returns copies of reqs that keep their validators but lose their
// mutators, labelled for the moderator. Impaired players still make their
// choices; nothing they choose takes effect. A request built WhenImpaired
// chains a labelled display instead.
func Impair(reqs []*ChangeRequest, label string) []*ChangeRequest {
	out := make([]*ChangeRequest, 0, len(reqs))
	for _, cr := range reqs {
		if cr == nil {
			continue
		}
		cp := *cr
		cp.Candidates = slices.Clone(cr.Candidates)
		cp.Description = fmt.Sprintf("(%s) %s", label, cr.Description)
		cp.mutator = nil
		if cr.impaired != "" {
			shown := fmt.Sprintf("(%s) %s", label, cr.impaired)
			cp.mutator = MutatorFunc(func(*State, Answer) (*ChangeRequest, error) {
				return Display(shown), nil
			})
			cp.impaired = shown
		}
		out = append(out, &cp)
	}
	return out
}
