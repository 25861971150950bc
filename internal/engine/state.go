package engine

import (
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/KirkDiggler/grimoire/internal/common/clock"
	"github.com/KirkDiggler/grimoire/internal/common/uuid"
)

// Player is one seat at the table.
type Player struct {
	Name      string
	Role      Role
	Dead      bool
	GhostVote bool
	// Alignment is the team the player currently wins with.
	Alignment Alignment
}

// Shuffler randomises the role pool before seating.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// Config holds what is needed to seat a game
type Config struct {
	// Names in seating order
	Names []string

	// Roles to hand out; shuffled when Shuffler is set, otherwise seat i gets Roles[i]
	Roles []RoleName

	Script   Script
	Registry *Registry

	// Optional dependencies
	Shuffler Shuffler
	Clock    clock.Clock
	UUID     uuid.UUID
	Logger   *zap.Logger
}

// View is the read-only face of the game state handed to validators and
// ability resolvers.
type View interface {
	PlayerCount() int
	Player(p PlayerIndex) (Player, error)
	Players() []Player
	LivingCount() int
	LeftNeighbor(p PlayerIndex) (PlayerIndex, error)
	RightNeighbor(p PlayerIndex) (PlayerIndex, error)

	StatusesBy(source PlayerIndex) []StatusEffect
	StatusesOn(target PlayerIndex) []StatusEffect
	HasStatus(kind StatusKind, source, target PlayerIndex) bool
	HasStatusOn(kind StatusKind, target PlayerIndex) bool
	ActingRole(p PlayerIndex) (Role, error)
	IsImpaired(p PlayerIndex) bool
	RegisteredAlignment(p PlayerIndex) Alignment
	RegisteredType(p PlayerIndex) CharacterType

	Step() Step
	Day() int
	Log() *Log
	Script() Script
	RolesInPlay() []RoleName
	ScriptRoles(t CharacterType) []RoleName
	WinCondition() (PlayerIndex, bool)
}

// State is the full game state. It is owned by one Game; View is the only
// access abilities get outside of a mutator.
type State struct {
	players  []Player
	statuses []StatusEffect
	step     Step
	day      int
	log      *Log

	winCondition PlayerIndex
	winner       *Alignment

	script   Script
	registry *Registry
	pending  []*ChangeRequest

	// day bookkeeping, reset at each dawn
	nominators []PlayerIndex
	nominees   []PlayerIndex
	votes      map[PlayerIndex]int
	executed   bool

	clock  clock.Clock
	logger *zap.Logger
}

var _ View = (*State)(nil)

// New seats players and hands out roles.
func New(cfg *Config) (*State, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.Registry == nil {
		return nil, ErrNilRegistry
	}
	if len(cfg.Names) != len(cfg.Roles) {
		return nil, fmt.Errorf("%w: %d players, %d roles", ErrRoleCountMismatch, len(cfg.Names), len(cfg.Roles))
	}

	pool := slices.Clone(cfg.Roles)
	if cfg.Shuffler != nil {
		cfg.Shuffler.Shuffle(len(pool), func(i, j int) {
			pool[i], pool[j] = pool[j], pool[i]
		})
	}

	s := &State{
		players:      make([]Player, len(cfg.Names)),
		log:          newLog(),
		winCondition: NoPlayer,
		script:       cfg.Script,
		registry:     cfg.Registry,
		votes:        make(map[PlayerIndex]int),
		clock:        cfg.Clock,
		logger:       cfg.Logger,
	}
	if s.clock == nil {
		s.clock = &clock.DefaultClock{}
	}
	if s.logger == nil {
		s.logger = zap.L()
	}

	for i, name := range cfg.Names {
		role, err := cfg.Registry.New(pool[i])
		if err != nil {
			return nil, err
		}
		s.players[i] = Player{
			Name:      name,
			Role:      role,
			GhostVote: true,
			Alignment: role.DefaultAlignment(),
		}
		if !role.IsWinCondition() {
			continue
		}
		if s.winCondition != NoPlayer {
			return nil, ErrMultipleWinConditions
		}
		s.winCondition = i
	}

	return s, nil
}

func (s *State) checkPlayer(p PlayerIndex) error {
	if p < 0 || p >= len(s.players) {
		return fmt.Errorf("%w: %d", ErrInvalidPlayer, p)
	}
	return nil
}

// PlayerCount is the number of seats, living or dead.
func (s *State) PlayerCount() int {
	return len(s.players)
}

// Player returns a copy of one seat.
func (s *State) Player(p PlayerIndex) (Player, error) {
	if err := s.checkPlayer(p); err != nil {
		return Player{}, err
	}
	return s.players[p], nil
}

// Players returns a copy of every seat in order.
func (s *State) Players() []Player {
	return slices.Clone(s.players)
}

// LivingCount is the number of players still alive.
func (s *State) LivingCount() int {
	n := 0
	for _, p := range s.players {
		if !p.Dead {
			n++
		}
	}
	return n
}

// LeftNeighbor is the closest living player counter-clockwise. A player with
// no other living player beside them is their own neighbour.
func (s *State) LeftNeighbor(p PlayerIndex) (PlayerIndex, error) {
	return s.neighbor(p, -1)
}

// RightNeighbor is the closest living player clockwise.
func (s *State) RightNeighbor(p PlayerIndex) (PlayerIndex, error) {
	return s.neighbor(p, 1)
}

func (s *State) neighbor(p PlayerIndex, dir int) (PlayerIndex, error) {
	if err := s.checkPlayer(p); err != nil {
		return NoPlayer, err
	}
	n := len(s.players)
	for step := 1; step < n; step++ {
		i := ((p+dir*step)%n + n) % n
		if !s.players[i].Dead {
			return i, nil
		}
	}
	return p, nil
}

// IsImpaired reports whether a player's ability is currently without effect:
// they are poisoned or drunk, or their role only believes it is another role.
func (s *State) IsImpaired(p PlayerIndex) bool {
	if label := s.impairment(p); label != "" {
		return true
	}
	if p < 0 || p >= len(s.players) {
		return false
	}
	if w, ok := s.players[p].Role.(Wrapper); ok {
		_, linked := w.Wrapped()
		return linked
	}
	return false
}

// impairment names the status that impairs a player, if any.
func (s *State) impairment(p PlayerIndex) string {
	switch {
	case s.HasStatusOn(Poisoned, p):
		return "Poisoned"
	case s.HasStatusOn(Drunk, p):
		return "Drunk"
	}
	return ""
}

// RegisteredAlignment is the alignment a player shows to abilities.
// AppearsGood and AppearsEvil effects win over the role's own disguise.
func (s *State) RegisteredAlignment(p PlayerIndex) Alignment {
	if s.checkPlayer(p) != nil {
		return AlignmentAny
	}
	switch {
	case s.HasStatusOn(AppearsEvil, p):
		return AlignmentEvil
	case s.HasStatusOn(AppearsGood, p):
		return AlignmentGood
	}
	return s.players[p].Role.ApparentAlignment()
}

// RegisteredType is the character type a player shows to abilities.
func (s *State) RegisteredType(p PlayerIndex) CharacterType {
	if s.checkPlayer(p) != nil {
		return AnyType
	}
	for _, e := range s.statuses {
		if e.Target == p && e.Kind.Type == StatusRegistersAs {
			return e.Kind.As
		}
	}
	return s.players[p].Role.ApparentType()
}

func (s *State) Step() Step { return s.step }
func (s *State) Day() int { return s.day }
func (s *State) Log() *Log { return s.log }
func (s *State) Script() Script { return s.script }
func (s *State) Registry() *Registry { return s.registry }

// RolesInPlay lists the role of every seat.
func (s *State) RolesInPlay() []RoleName {
	out := make([]RoleName, len(s.players))
	for i, p := range s.players {
		out[i] = p.Role.Name()
	}
	return out
}

// ScriptRoles lists the constructible script roles of one character type.
func (s *State) ScriptRoles(t CharacterType) []RoleName {
	var out []RoleName
	for _, r := range s.script.Roles {
		kind, err := s.registry.TypeOf(r)
		if err != nil || kind != t {
			continue
		}
		out = append(out, r)
	}
	return out
}

// WinCondition is the tracked player whose death ends the game.
func (s *State) WinCondition() (PlayerIndex, bool) {
	return s.winCondition, s.winCondition != NoPlayer
}

// SetRole replaces a player's role, updating their alignment and the
// tracked win condition.
func (s *State) SetRole(p PlayerIndex, role Role) error {
	if err := s.checkPlayer(p); err != nil {
		return err
	}
	s.players[p].Role = role
	s.players[p].Alignment = role.DefaultAlignment()
	if role.IsWinCondition() {
		s.winCondition = p
	}
	s.record(Event{Type: EventRoleChanged, Player: p, Source: NoPlayer, Role: role.Name()})
	s.logger.Info("role changed",
		zap.Int("player", p),
		zap.String("role", string(role.Name())),
	)
	return nil
}

// Enqueue issues an extra request from inside a mutator or kill hook.
func (s *State) Enqueue(cr *ChangeRequest) {
	if cr != nil {
		s.pending = append(s.pending, cr)
	}
}

func (s *State) drainPending() []*ChangeRequest {
	out := s.pending
	s.pending = nil
	return out
}

// Learn logs information a player was shown.
func (s *State) Learn(p PlayerIndex, detail string) {
	s.record(Event{Type: EventInfoLearned, Player: p, Source: NoPlayer, Detail: detail})
}

// DeclareWinner ends the game in favour of a team. The first declaration stands.
func (s *State) DeclareWinner(a Alignment, reason string) {
	if s.winner != nil {
		return
	}
	s.winner = &a
	s.record(Event{Type: EventWinnerDeclared, Player: NoPlayer, Source: NoPlayer, Detail: reason})
	s.logger.Info("winner declared",
		zap.Stringer("alignment", a),
		zap.String("reason", reason),
	)
}

// GameOver is true once the tracked win-condition player is dead or a
// winner has been declared. Without a tracked win condition the outcome is
// undefined and reported as ErrNoWinCondition.
func (s *State) GameOver() (bool, error) {
	_, over, err := s.Winner()
	return over, err
}

// Winner returns the winning team once the game is over.
func (s *State) Winner() (Alignment, bool, error) {
	if s.winner != nil {
		return *s.winner, true, nil
	}
	if s.winCondition == NoPlayer {
		return AlignmentAny, false, ErrNoWinCondition
	}
	if s.players[s.winCondition].Dead {
		return AlignmentGood, true, nil
	}
	if s.LivingCount() <= 2 {
		return AlignmentEvil, true, nil
	}
	return AlignmentAny, false, nil
}

func (s *State) record(e Event) {
	e.Time = s.clock.Now()
	s.log.record(e)
}

// advance moves the state machine to step, opening a new log phase and
// clearing effects that expire at the boundary.
func (s *State) advance(step Step) {
	switch {
	case step == StepNightOne:
		s.day = 1
	case step == StepNight:
		s.day++
		s.expire(ExpiresAtDusk)
	case step == StepDayDiscussion:
		s.expire(ExpiresAtDawn)
		s.nominators = nil
		s.nominees = nil
		s.votes = make(map[PlayerIndex]int)
		s.executed = false
	}
	s.step = step
	s.log.open(step, s.day)
}

func zapStatus(e StatusEffect) []zap.Field {
	return []zap.Field{
		zap.Stringer("kind", e.Kind),
		zap.Int("source", e.Source),
		zap.Int("target", e.Target),
	}
}
