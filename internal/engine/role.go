package engine

import "fmt"

// RoleName identifies a role. The value is the lowercase id used by script files.
type RoleName string

const (
	RoleWasherwoman   RoleName = "washerwoman"
	RoleLibrarian     RoleName = "librarian"
	RoleInvestigator  RoleName = "investigator"
	RoleChef          RoleName = "chef"
	RoleEmpath        RoleName = "empath"
	RoleFortuneTeller RoleName = "fortuneteller"
	RoleUndertaker    RoleName = "undertaker"
	RoleMonk          RoleName = "monk"
	RoleRavenkeeper   RoleName = "ravenkeeper"
	RoleVirgin        RoleName = "virgin"
	RoleSlayer        RoleName = "slayer"
	RoleSoldier       RoleName = "soldier"
	RoleMayor         RoleName = "mayor"
	RoleGossip        RoleName = "gossip"
	RoleInnkeeper     RoleName = "innkeeper"

	RoleButler  RoleName = "butler"
	RoleDrunk   RoleName = "drunk"
	RoleRecluse RoleName = "recluse"
	RoleSaint   RoleName = "saint"

	RolePoisoner     RoleName = "poisoner"
	RoleSpy          RoleName = "spy"
	RoleScarletWoman RoleName = "scarletwoman"
	RoleBaron        RoleName = "baron"

	RoleImp RoleName = "imp"
)

var roleDisplayNames = map[RoleName]string{
	RoleWasherwoman:   "Washerwoman",
	RoleLibrarian:     "Librarian",
	RoleInvestigator:  "Investigator",
	RoleChef:          "Chef",
	RoleEmpath:        "Empath",
	RoleFortuneTeller: "Fortune Teller",
	RoleUndertaker:    "Undertaker",
	RoleMonk:          "Monk",
	RoleRavenkeeper:   "Ravenkeeper",
	RoleVirgin:        "Virgin",
	RoleSlayer:        "Slayer",
	RoleSoldier:       "Soldier",
	RoleMayor:         "Mayor",
	RoleGossip:        "Gossip",
	RoleInnkeeper:     "Innkeeper",
	RoleButler:        "Butler",
	RoleDrunk:         "Drunk",
	RoleRecluse:       "Recluse",
	RoleSaint:         "Saint",
	RolePoisoner:      "Poisoner",
	RoleSpy:           "Spy",
	RoleScarletWoman:  "Scarlet Woman",
	RoleBaron:         "Baron",
	RoleImp:           "Imp",
}

func (r RoleName) String() string {
	if name, ok := roleDisplayNames[r]; ok {
		return name
	}
	return string(r)
}

// Role is the capability set every role exposes. Each hook has a "no
// opinion" answer (a false ok, a nil slice) and most roles only override a
// few of them by embedding Base.
//
// Hooks that receive a View must not mutate state. Hooks that receive a
// *State (Kill, Execute) run inside a mutator and may.
type Role interface {
	Name() RoleName

	DefaultAlignment() Alignment
	ApparentAlignment() Alignment
	Type() CharacterType
	ApparentType() CharacterType

	// IsWinCondition marks the role whose death ends the game.
	IsWinCondition() bool
	// InitializationEffect is the delta the role applies to the character-type quota.
	InitializationEffect() (TypeCounts, bool)

	// Kill and Execute report ok=false to defer to the default outcome
	// (the player dies). ok=true with dies=false means the role saves itself.
	Kill(attacker, self PlayerIndex, s *State) (dies bool, ok bool)
	Execute(self PlayerIndex, s *State) (dies bool, ok bool)

	SetupOrder(o NightOrder) (int, bool)
	SetupAbility(self PlayerIndex, v View) []*ChangeRequest
	NightOneOrder(o NightOrder) (int, bool)
	NightOneAbility(self PlayerIndex, v View) []*ChangeRequest
	NightOrder(o NightOrder) (int, bool)
	NightAbility(self PlayerIndex, v View) []*ChangeRequest

	HasDayAbility(step Step, self PlayerIndex, v View) bool
	DayAbility(step Step, self PlayerIndex, v View) []*ChangeRequest
}

// Wrapper is implemented by roles that stand in for another role without
// holding its power.
type Wrapper interface {
	Wrapped() (Role, bool)
}

// DayCloser is implemented by roles that react to a day ending.
type DayCloser interface {
	CloseDay(self PlayerIndex, executed bool, s *State)
}

// Base answers "no opinion" for every hook.
type Base struct {
	name RoleName
	kind CharacterType
}

// NewBase returns the default hook set for a role of the given type.
func NewBase(name RoleName, kind CharacterType) Base {
	return Base{name: name, kind: kind}
}

func (b Base) Name() RoleName { return b.name }
func (b Base) DefaultAlignment() Alignment { return b.kind.DefaultAlignment() }
func (b Base) ApparentAlignment() Alignment { return b.kind.DefaultAlignment() }
func (b Base) Type() CharacterType { return b.kind }
func (b Base) ApparentType() CharacterType { return b.kind }
func (Base) IsWinCondition() bool { return false }
func (Base) InitializationEffect() (TypeCounts, bool) { return TypeCounts{}, false }
func (Base) Kill(PlayerIndex, PlayerIndex, *State) (bool, bool) { return true, false }
func (Base) Execute(PlayerIndex, *State) (bool, bool) { return true, false }
func (Base) SetupOrder(NightOrder) (int, bool) { return 0, false }
func (Base) SetupAbility(PlayerIndex, View) []*ChangeRequest { return nil }
func (Base) NightOneOrder(NightOrder) (int, bool) { return 0, false }
func (Base) NightOneAbility(PlayerIndex, View) []*ChangeRequest { return nil }
func (Base) NightOrder(NightOrder) (int, bool) { return 0, false }
func (Base) NightAbility(PlayerIndex, View) []*ChangeRequest { return nil }
func (Base) HasDayAbility(Step, PlayerIndex, View) bool { return false }
func (Base) DayAbility(Step, PlayerIndex, View) []*ChangeRequest { return nil }

// Constructor builds a fresh role value.
type Constructor func() Role

// Registry maps role names to constructors. Names without a constructor are
// placeholders: they may appear in scripts but cannot be put in play.
type Registry struct {
	constructors map[RoleName]Constructor
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{constructors: make(map[RoleName]Constructor)}
}

// Register adds or replaces the constructor for a role.
func (r *Registry) Register(name RoleName, c Constructor) {
	r.constructors[name] = c
}

// Has reports whether the role can be constructed.
func (r *Registry) Has(name RoleName) bool {
	_, ok := r.constructors[name]
	return ok
}

// New constructs a role by name.
func (r *Registry) New(name RoleName) (Role, error) {
	c, ok := r.constructors[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrRoleNotImplemented, name)
	}
	return c(), nil
}

// TypeOf returns the true character type of a registered role.
func (r *Registry) TypeOf(name RoleName) (CharacterType, error) {
	role, err := r.New(name)
	if err != nil {
		return AnyType, err
	}
	return role.Type(), nil
}
