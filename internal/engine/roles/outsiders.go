package roles

import (
	"slices"

	"github.com/KirkDiggler/grimoire/internal/engine"
)

// Butler chooses a master each night and may only vote when they do.
type Butler struct{ engine.Base }

func NewButler() engine.Role {
	return Butler{engine.NewBase(engine.RoleButler, engine.Outsider)}
}

func (r Butler) NightOneOrder(o engine.NightOrder) (int, bool) { return o.NightOneRank(r.Name()) }
func (r Butler) NightOrder(o engine.NightOrder) (int, bool) { return o.NightRank(r.Name()) }

func (r Butler) NightOneAbility(self engine.PlayerIndex, v engine.View) []*engine.ChangeRequest {
	return r.NightAbility(self, v)
}

func (r Butler) NightAbility(self engine.PlayerIndex, v engine.View) []*engine.ChangeRequest {
	if dead(v, self) {
		return nil
	}
	return []*engine.ChangeRequest{
		engine.ChoosePlayers(1, "The Butler chooses their master for tomorrow").
			WithValidator(notSelf(self, "Butler")).
			WithMutator(func(s *engine.State, a engine.Answer) (*engine.ChangeRequest, error) {
				t, err := single(a)
				if err != nil {
					return nil, err
				}
				return nil, s.AddExpiringStatus(engine.ButlerMaster, self, t, engine.ExpiresAtDusk)
			}),
	}
}

// Drunk believes they are a Townsfolk. During setup the moderator picks
// which one; from then on the Drunk wakes as that role with no effect.
type Drunk struct {
	engine.Base
	role engine.Role
}

func NewDrunk() engine.Role {
	return &Drunk{Base: engine.NewBase(engine.RoleDrunk, engine.Outsider)}
}

// NewDrunkAs returns a Drunk who believes they are role.
func NewDrunkAs(role engine.Role) engine.Role {
	return &Drunk{Base: engine.NewBase(engine.RoleDrunk, engine.Outsider), role: role}
}

// Wrapped returns the role the Drunk believes they are.
func (r *Drunk) Wrapped() (engine.Role, bool) { return r.role, r.role != nil }

func (r *Drunk) SetupOrder(o engine.NightOrder) (int, bool) { return o.SetupRank(r.Name()) }

func (r *Drunk) SetupAbility(self engine.PlayerIndex, v engine.View) []*engine.ChangeRequest {
	if r.role != nil {
		return nil
	}
	inPlay := v.RolesInPlay()
	var candidates []engine.RoleName
	for _, name := range v.ScriptRoles(engine.Townsfolk) {
		if !slices.Contains(inPlay, name) {
			candidates = append(candidates, name)
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	return []*engine.ChangeRequest{
		engine.ChooseRoles(1, candidates, "Choose the Townsfolk the Drunk believes they are").
			WithMutator(func(s *engine.State, a engine.Answer) (*engine.ChangeRequest, error) {
				rs, err := engine.Roles(a)
				if err != nil {
					return nil, err
				}
				role, err := s.Registry().New(rs[0])
				if err != nil {
					return nil, err
				}
				if err := s.SetRole(self, NewDrunkAs(role)); err != nil {
					return nil, err
				}
				for _, cr := range r.impair(role.SetupAbility(self, s)) {
					s.Enqueue(cr)
				}
				return nil, nil
			}),
	}
}

func (r *Drunk) impair(reqs []*engine.ChangeRequest) []*engine.ChangeRequest {
	return engine.Impair(reqs, "Drunk")
}

func (r *Drunk) NightOneOrder(o engine.NightOrder) (int, bool) {
	if r.role == nil {
		return 0, false
	}
	return r.role.NightOneOrder(o)
}

func (r *Drunk) NightOneAbility(self engine.PlayerIndex, v engine.View) []*engine.ChangeRequest {
	if r.role == nil {
		return nil
	}
	return r.impair(r.role.NightOneAbility(self, v))
}

func (r *Drunk) NightOrder(o engine.NightOrder) (int, bool) {
	if r.role == nil {
		return 0, false
	}
	return r.role.NightOrder(o)
}

func (r *Drunk) NightAbility(self engine.PlayerIndex, v engine.View) []*engine.ChangeRequest {
	if r.role == nil {
		return nil
	}
	return r.impair(r.role.NightAbility(self, v))
}

func (r *Drunk) HasDayAbility(step engine.Step, self engine.PlayerIndex, v engine.View) bool {
	return r.role != nil && r.role.HasDayAbility(step, self, v)
}

func (r *Drunk) DayAbility(step engine.Step, self engine.PlayerIndex, v engine.View) []*engine.ChangeRequest {
	if r.role == nil {
		return nil
	}
	return r.impair(r.role.DayAbility(step, self, v))
}

// Recluse may register as evil and as a Minion or Demon.
type Recluse struct{ engine.Base }

func NewRecluse() engine.Role {
	return Recluse{engine.NewBase(engine.RoleRecluse, engine.Outsider)}
}

func (Recluse) ApparentAlignment() engine.Alignment { return engine.AlignmentAny }
func (Recluse) ApparentType() engine.CharacterType { return engine.AnyType }

// Saint loses the game for good if executed.
type Saint struct{ engine.Base }

func NewSaint() engine.Role {
	return Saint{engine.NewBase(engine.RoleSaint, engine.Outsider)}
}

func (r Saint) Execute(self engine.PlayerIndex, s *engine.State) (bool, bool) {
	s.DeclareWinner(engine.AlignmentEvil, "the Saint was executed")
	return true, true
}
