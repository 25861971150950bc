package roles

import (
	"fmt"
	"strings"

	"github.com/KirkDiggler/grimoire/internal/engine"
)

// Poisoner poisons a player each night until the following dusk.
type Poisoner struct{ engine.Base }

func NewPoisoner() engine.Role {
	return Poisoner{engine.NewBase(engine.RolePoisoner, engine.Minion)}
}

func (r Poisoner) NightOneOrder(o engine.NightOrder) (int, bool) { return o.NightOneRank(r.Name()) }
func (r Poisoner) NightOrder(o engine.NightOrder) (int, bool) { return o.NightRank(r.Name()) }

func (r Poisoner) NightOneAbility(self engine.PlayerIndex, v engine.View) []*engine.ChangeRequest {
	return r.NightAbility(self, v)
}

func (r Poisoner) NightAbility(self engine.PlayerIndex, v engine.View) []*engine.ChangeRequest {
	if dead(v, self) {
		return nil
	}
	return []*engine.ChangeRequest{
		engine.ChoosePlayers(1, "The Poisoner chooses a player to poison").
			WithMutator(func(s *engine.State, a engine.Answer) (*engine.ChangeRequest, error) {
				t, err := single(a)
				if err != nil {
					return nil, err
				}
				return nil, s.AddExpiringStatus(engine.Poisoned, self, t, engine.ExpiresAtDusk)
			}),
	}
}

// Spy sees the grimoire every night and may register as good or as a
// Townsfolk or Outsider.
type Spy struct{ engine.Base }

func NewSpy() engine.Role {
	return Spy{engine.NewBase(engine.RoleSpy, engine.Minion)}
}

func (Spy) ApparentAlignment() engine.Alignment { return engine.AlignmentAny }
func (Spy) ApparentType() engine.CharacterType { return engine.AnyType }

func (r Spy) NightOneOrder(o engine.NightOrder) (int, bool) { return o.NightOneRank(r.Name()) }
func (r Spy) NightOrder(o engine.NightOrder) (int, bool) { return o.NightRank(r.Name()) }

func (r Spy) NightOneAbility(self engine.PlayerIndex, v engine.View) []*engine.ChangeRequest {
	return r.NightAbility(self, v)
}

func (r Spy) NightAbility(self engine.PlayerIndex, v engine.View) []*engine.ChangeRequest {
	if dead(v, self) {
		return nil
	}
	return []*engine.ChangeRequest{
		engine.Display("Show the Spy the Grimoire: " + Grimoire(v)),
	}
}

// Grimoire summarises every seat with its role and statuses.
func Grimoire(v engine.View) string {
	seats := make([]string, 0, v.PlayerCount())
	for p, pl := range v.Players() {
		var marks []string
		if pl.Dead {
			marks = append(marks, "dead")
		}
		for _, e := range v.StatusesOn(p) {
			marks = append(marks, e.Kind.String())
		}
		seat := fmt.Sprintf("%s (%s)", pl.Name, pl.Role.Name())
		if len(marks) > 0 {
			seat += " [" + strings.Join(marks, ", ") + "]"
		}
		seats = append(seats, seat)
	}
	return strings.Join(seats, "; ")
}

// ScarletWoman becomes the demon if the demon dies with five or more
// players alive.
type ScarletWoman struct{ engine.Base }

func NewScarletWoman() engine.Role {
	return ScarletWoman{engine.NewBase(engine.RoleScarletWoman, engine.Minion)}
}

func (r ScarletWoman) HasDayAbility(step engine.Step, self engine.PlayerIndex, v engine.View) bool {
	if dead(v, self) {
		return false
	}
	demon, ok := v.WinCondition()
	// four left alive means five were alive when the demon died
	return ok && demon != self && dead(v, demon) && v.LivingCount() >= 4
}

func (r ScarletWoman) DayAbility(step engine.Step, self engine.PlayerIndex, v engine.View) []*engine.ChangeRequest {
	demon, ok := v.WinCondition()
	if !ok {
		return nil
	}
	pl, err := v.Player(demon)
	if err != nil {
		return nil
	}
	next := pl.Role.Name()
	return []*engine.ChangeRequest{
		engine.Automatic(fmt.Sprintf("The Scarlet Woman becomes the %s", next)).
			WithMutator(func(s *engine.State, a engine.Answer) (*engine.ChangeRequest, error) {
				role, err := s.Registry().New(next)
				if err != nil {
					return nil, err
				}
				return nil, s.SetRole(self, role)
			}),
	}
}

// Baron adds two Outsiders to the game in place of two Townsfolk.
type Baron struct{ engine.Base }

func NewBaron() engine.Role {
	return Baron{engine.NewBase(engine.RoleBaron, engine.Minion)}
}

func (Baron) InitializationEffect() (engine.TypeCounts, bool) {
	return engine.TypeCounts{Townsfolk: -2, Outsiders: 2}, true
}

// Imp kills a player each night after the first. An Imp who kills
// themselves passes the demon to a living Minion.
type Imp struct{ engine.Base }

func NewImp() engine.Role {
	return Imp{engine.NewBase(engine.RoleImp, engine.Demon)}
}

func (Imp) IsWinCondition() bool { return true }

func (r Imp) NightOrder(o engine.NightOrder) (int, bool) { return o.NightRank(r.Name()) }

func (r Imp) NightAbility(self engine.PlayerIndex, v engine.View) []*engine.ChangeRequest {
	// a freshly made Imp does not wake the night it was made
	if dead(v, self) || changedThisPhase(v, self) {
		return nil
	}
	return []*engine.ChangeRequest{
		engine.ChoosePlayers(1, "The Imp chooses a player to kill").
			WithMutator(func(s *engine.State, a engine.Answer) (*engine.ChangeRequest, error) {
				t, err := single(a)
				if err != nil {
					return nil, err
				}
				died, err := s.Kill(self, t)
				if err != nil {
					return nil, err
				}
				if t != self || !died || len(livingOfType(s, engine.Minion)) == 0 {
					return nil, nil
				}
				return starPass(self), nil
			}),
	}
}

func starPass(self engine.PlayerIndex) *engine.ChangeRequest {
	return engine.ChoosePlayers(1, "The Imp killed themselves. Choose a living Minion to become the Imp").
		By(self).
		WithValidator(func(v engine.View, a engine.Answer) error {
			t, err := single(a)
			if err != nil {
				return err
			}
			pl, err := v.Player(t)
			if err != nil {
				return err
			}
			if pl.Dead || pl.Role.Type() != engine.Minion {
				return engine.InvalidPlayer(pl.Name + " is not a living Minion")
			}
			return nil
		}).
		WithMutator(func(s *engine.State, a engine.Answer) (*engine.ChangeRequest, error) {
			t, err := single(a)
			if err != nil {
				return nil, err
			}
			return nil, s.SetRole(t, NewImp())
		})
}
