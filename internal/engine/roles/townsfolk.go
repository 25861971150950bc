package roles

import (
	"fmt"
	"slices"

	"github.com/KirkDiggler/grimoire/internal/engine"
)

// Chef learns how many pairs of evil players sit next to each other.
type Chef struct{ engine.Base }

func NewChef() engine.Role {
	return Chef{engine.NewBase(engine.RoleChef, engine.Townsfolk)}
}

func (r Chef) NightOneOrder(o engine.NightOrder) (int, bool) { return o.NightOneRank(r.Name()) }

func (r Chef) NightOneAbility(self engine.PlayerIndex, v engine.View) []*engine.ChangeRequest {
	if dead(v, self) {
		return nil
	}
	return []*engine.ChangeRequest{
		engine.Display(fmt.Sprintf("Show the Chef the number %d", EvilPairs(v))),
	}
}

// EvilPairs counts adjacent pairs of living players who both register evil.
func EvilPairs(v engine.View) int {
	pairs := 0
	for p := range v.PlayerCount() {
		if dead(v, p) {
			continue
		}
		right, err := v.RightNeighbor(p)
		if err != nil || right == p {
			continue
		}
		// two living players neighbour each other on both sides
		if back, err := v.RightNeighbor(right); err == nil && back == p && right < p {
			continue
		}
		if registersEvil(v, p) && registersEvil(v, right) {
			pairs++
		}
	}
	return pairs
}

// Empath learns how many of their living neighbours are evil.
type Empath struct{ engine.Base }

func NewEmpath() engine.Role {
	return Empath{engine.NewBase(engine.RoleEmpath, engine.Townsfolk)}
}

func (r Empath) NightOneOrder(o engine.NightOrder) (int, bool) { return o.NightOneRank(r.Name()) }
func (r Empath) NightOrder(o engine.NightOrder) (int, bool) { return o.NightRank(r.Name()) }

func (r Empath) NightOneAbility(self engine.PlayerIndex, v engine.View) []*engine.ChangeRequest {
	return r.NightAbility(self, v)
}

func (r Empath) NightAbility(self engine.PlayerIndex, v engine.View) []*engine.ChangeRequest {
	if dead(v, self) {
		return nil
	}
	return []*engine.ChangeRequest{
		engine.Display(fmt.Sprintf("Show the Empath the number %d", EvilNeighbours(v, self))),
	}
}

// EvilNeighbours counts the living neighbours of p who register evil.
func EvilNeighbours(v engine.View, p engine.PlayerIndex) int {
	left, err := v.LeftNeighbor(p)
	if err != nil {
		return 0
	}
	right, err := v.RightNeighbor(p)
	if err != nil {
		return 0
	}
	n := 0
	if left != p && registersEvil(v, left) {
		n++
	}
	if right != p && right != left && registersEvil(v, right) {
		n++
	}
	return n
}

// FortuneTeller chooses two players each night and learns whether either is
// the demon. One good player, chosen at setup, always reads as the demon.
type FortuneTeller struct{ engine.Base }

func NewFortuneTeller() engine.Role {
	return FortuneTeller{engine.NewBase(engine.RoleFortuneTeller, engine.Townsfolk)}
}

func (r FortuneTeller) SetupOrder(o engine.NightOrder) (int, bool) { return o.SetupRank(r.Name()) }
func (r FortuneTeller) NightOneOrder(o engine.NightOrder) (int, bool) { return o.NightOneRank(r.Name()) }
func (r FortuneTeller) NightOrder(o engine.NightOrder) (int, bool) { return o.NightRank(r.Name()) }

func (r FortuneTeller) SetupAbility(self engine.PlayerIndex, v engine.View) []*engine.ChangeRequest {
	return []*engine.ChangeRequest{
		engine.ChoosePlayers(1, "Choose the Fortune Teller's red herring").
			WithValidator(func(v engine.View, a engine.Answer) error {
				t, err := single(a)
				if err != nil {
					return err
				}
				pl, err := v.Player(t)
				if err != nil {
					return err
				}
				if pl.Alignment != engine.AlignmentGood {
					return engine.InvalidPlayer("the red herring must be a good player")
				}
				return nil
			}).
			WithMutator(func(s *engine.State, a engine.Answer) (*engine.ChangeRequest, error) {
				t, err := single(a)
				if err != nil {
					return nil, err
				}
				return nil, s.AddStatus(engine.FortuneTellerRedHerring, self, t)
			}),
	}
}

func (r FortuneTeller) NightOneAbility(self engine.PlayerIndex, v engine.View) []*engine.ChangeRequest {
	return r.NightAbility(self, v)
}

func (r FortuneTeller) NightAbility(self engine.PlayerIndex, v engine.View) []*engine.ChangeRequest {
	if dead(v, self) {
		return nil
	}
	return []*engine.ChangeRequest{
		engine.ChoosePlayers(2, "The Fortune Teller chooses two players").
			WhenImpaired("Show the Fortune Teller a nod or head shake of your choosing").
			WithMutator(func(s *engine.State, a engine.Answer) (*engine.ChangeRequest, error) {
				ps, err := engine.Players(a)
				if err != nil {
					return nil, err
				}
				yes := slices.ContainsFunc(ps, func(p engine.PlayerIndex) bool {
					return registersAs(s, p, engine.Demon) || s.HasStatus(engine.FortuneTellerRedHerring, self, p)
				})
				answer := "no"
				if yes {
					answer = "yes"
				}
				s.Learn(self, fmt.Sprintf("%s or %s is the demon: %s", name(s, ps[0]), name(s, ps[1]), answer))
				return engine.Display(fmt.Sprintf("Show the Fortune Teller a %s", nod(yes))), nil
			}),
	}
}

func nod(yes bool) string {
	if yes {
		return "nod (yes)"
	}
	return "head shake (no)"
}

// Undertaker learns the role of the player executed the previous day.
type Undertaker struct{ engine.Base }

func NewUndertaker() engine.Role {
	return Undertaker{engine.NewBase(engine.RoleUndertaker, engine.Townsfolk)}
}

func (r Undertaker) NightOrder(o engine.NightOrder) (int, bool) { return o.NightRank(r.Name()) }

func (r Undertaker) NightAbility(self engine.PlayerIndex, v engine.View) []*engine.ChangeRequest {
	if dead(v, self) {
		return nil
	}
	ev, ok := v.Log().SearchPreviousPhase(engine.OfType(engine.EventExecution))
	if !ok || !dead(v, ev.Player) {
		return nil
	}
	return []*engine.ChangeRequest{
		engine.Display(fmt.Sprintf("Show the Undertaker that %s was the %s", name(v, ev.Player), ev.Role)),
	}
}

// Monk protects another player from the demon each night.
type Monk struct{ engine.Base }

func NewMonk() engine.Role {
	return Monk{engine.NewBase(engine.RoleMonk, engine.Townsfolk)}
}

func (r Monk) NightOrder(o engine.NightOrder) (int, bool) { return o.NightRank(r.Name()) }

func (r Monk) NightAbility(self engine.PlayerIndex, v engine.View) []*engine.ChangeRequest {
	if dead(v, self) {
		return nil
	}
	return []*engine.ChangeRequest{
		engine.ChoosePlayers(1, "The Monk chooses a player to protect from the demon tonight").
			WithValidator(notSelf(self, "Monk")).
			WithMutator(func(s *engine.State, a engine.Answer) (*engine.ChangeRequest, error) {
				t, err := single(a)
				if err != nil {
					return nil, err
				}
				return nil, s.AddExpiringStatus(engine.DemonProtected, self, t, engine.ExpiresAtDawn)
			}),
	}
}

// Ravenkeeper learns a player's role if they die at night.
type Ravenkeeper struct{ engine.Base }

func NewRavenkeeper() engine.Role {
	return Ravenkeeper{engine.NewBase(engine.RoleRavenkeeper, engine.Townsfolk)}
}

func (r Ravenkeeper) NightOrder(o engine.NightOrder) (int, bool) { return o.NightRank(r.Name()) }

func (r Ravenkeeper) NightAbility(self engine.PlayerIndex, v engine.View) []*engine.ChangeRequest {
	if used(v, self) {
		return nil
	}
	_, died := v.Log().SearchCurrentPhase(func(e engine.Event) bool {
		return e.Type == engine.EventDeath && e.Player == self
	})
	if !died {
		return nil
	}
	return []*engine.ChangeRequest{
		engine.ChoosePlayers(1, "The Ravenkeeper died tonight and chooses a player to learn their role").
			SpendsAbility().
			WhenImpaired("Show the Ravenkeeper any role of your choosing").
			WithMutator(func(s *engine.State, a engine.Answer) (*engine.ChangeRequest, error) {
				t, err := single(a)
				if err != nil {
					return nil, err
				}
				pl, err := s.Player(t)
				if err != nil {
					return nil, err
				}
				s.Learn(self, fmt.Sprintf("%s is the %s", pl.Name, pl.Role.Name()))
				return engine.Display(fmt.Sprintf("Show the Ravenkeeper the %s", pl.Role.Name())), nil
			}),
	}
}

// Virgin executes the first Townsfolk to nominate them.
type Virgin struct{ engine.Base }

func NewVirgin() engine.Role {
	return Virgin{engine.NewBase(engine.RoleVirgin, engine.Townsfolk)}
}

func (r Virgin) nominator(self engine.PlayerIndex, v engine.View) (engine.PlayerIndex, bool) {
	ev, ok := v.Log().SearchCurrentPhase(engine.OfType(engine.EventNomination))
	if !ok || ev.Player != self {
		return engine.NoPlayer, false
	}
	return ev.Source, true
}

func (r Virgin) HasDayAbility(step engine.Step, self engine.PlayerIndex, v engine.View) bool {
	if step != engine.StepDayExecution || dead(v, self) || used(v, self) {
		return false
	}
	_, ok := r.nominator(self, v)
	return ok
}

func (r Virgin) DayAbility(step engine.Step, self engine.PlayerIndex, v engine.View) []*engine.ChangeRequest {
	nominator, ok := r.nominator(self, v)
	if !ok {
		return nil
	}
	return []*engine.ChangeRequest{
		engine.Automatic(fmt.Sprintf("The Virgin was nominated by %s", name(v, nominator))).
			SpendsAbility().
			WithMutator(func(s *engine.State, a engine.Answer) (*engine.ChangeRequest, error) {
				if !registersAs(s, nominator, engine.Townsfolk) {
					return nil, nil
				}
				_, err := s.Execute(nominator)
				return nil, err
			}),
	}
}

// Slayer publicly chooses a player once per game; a demon dies.
type Slayer struct{ engine.Base }

func NewSlayer() engine.Role {
	return Slayer{engine.NewBase(engine.RoleSlayer, engine.Townsfolk)}
}

func (r Slayer) HasDayAbility(step engine.Step, self engine.PlayerIndex, v engine.View) bool {
	return step.IsDay() && !dead(v, self) && !used(v, self)
}

func (r Slayer) DayAbility(step engine.Step, self engine.PlayerIndex, v engine.View) []*engine.ChangeRequest {
	return []*engine.ChangeRequest{
		engine.ChoosePlayers(1, "The Slayer publicly chooses a player").
			SpendsAbility().
			WithMutator(func(s *engine.State, a engine.Answer) (*engine.ChangeRequest, error) {
				t, err := single(a)
				if err != nil {
					return nil, err
				}
				if !registersAs(s, t, engine.Demon) {
					return nil, nil
				}
				_, err = s.Kill(self, t)
				return nil, err
			}),
	}
}

// Soldier cannot be killed by the demon.
type Soldier struct{ engine.Base }

func NewSoldier() engine.Role {
	return Soldier{engine.NewBase(engine.RoleSoldier, engine.Townsfolk)}
}

func (r Soldier) Kill(attacker, self engine.PlayerIndex, s *engine.State) (bool, bool) {
	pl, err := s.Player(attacker)
	if err != nil || pl.Role.Type() != engine.Demon {
		return true, false
	}
	return false, true
}

// Mayor wins the game for good if the day ends with three players alive and
// no execution. A demon kill at night may land on someone else.
type Mayor struct{ engine.Base }

func NewMayor() engine.Role {
	return Mayor{engine.NewBase(engine.RoleMayor, engine.Townsfolk)}
}

func (r Mayor) Kill(attacker, self engine.PlayerIndex, s *engine.State) (bool, bool) {
	pl, err := s.Player(attacker)
	if err != nil || pl.Role.Type() != engine.Demon || !s.Step().IsNight() {
		return true, false
	}
	if s.HasStatus(engine.MayorBounceKill, self, self) {
		if err := s.RemoveStatus(engine.MayorBounceKill, self, self); err != nil {
			return true, false
		}
		return true, true
	}

	s.Enqueue(engine.ChoosePlayers(1, "The Mayor was attacked. Choose who dies instead, or the Mayor to let them die").
		By(self).
		WithValidator(alive).
		WithMutator(func(s *engine.State, a engine.Answer) (*engine.ChangeRequest, error) {
			t, err := single(a)
			if err != nil {
				return nil, err
			}
			if t == self {
				if err := s.AddStatus(engine.MayorBounceKill, self, self); err != nil {
					return nil, err
				}
			}
			_, err = s.Kill(attacker, t)
			return nil, err
		}))
	return false, true
}

func (r Mayor) CloseDay(self engine.PlayerIndex, executed bool, s *engine.State) {
	if executed || s.LivingCount() != 3 {
		return
	}
	s.DeclareWinner(engine.AlignmentGood, "the Mayor survived to the final three without an execution")
}

// Innkeeper protects two players from dying tonight; one of them is drunk
// until dusk.
type Innkeeper struct{ engine.Base }

func NewInnkeeper() engine.Role {
	return Innkeeper{engine.NewBase(engine.RoleInnkeeper, engine.Townsfolk)}
}

func (r Innkeeper) NightOrder(o engine.NightOrder) (int, bool) { return o.NightRank(r.Name()) }

func (r Innkeeper) NightAbility(self engine.PlayerIndex, v engine.View) []*engine.ChangeRequest {
	if dead(v, self) {
		return nil
	}
	return []*engine.ChangeRequest{
		engine.ChoosePlayers(2, "The Innkeeper chooses two players who cannot die tonight").
			WithMutator(func(s *engine.State, a engine.Answer) (*engine.ChangeRequest, error) {
				ps, err := engine.Players(a)
				if err != nil {
					return nil, err
				}
				guests := slices.Clone(ps)
				for _, t := range guests {
					if err := s.AddExpiringStatus(engine.NightProtected, self, t, engine.ExpiresAtDawn); err != nil {
						return nil, err
					}
				}
				return engine.ChoosePlayers(1, "Choose which of the Innkeeper's guests is drunk until dusk").
					WithValidator(func(v engine.View, a engine.Answer) error {
						t, err := single(a)
						if err != nil {
							return err
						}
						if !slices.Contains(guests, t) {
							return engine.InvalidPlayer(name(v, t) + " is not one of the Innkeeper's guests")
						}
						return nil
					}).
					WithMutator(func(s *engine.State, a engine.Answer) (*engine.ChangeRequest, error) {
						t, err := single(a)
						if err != nil {
							return nil, err
						}
						return nil, s.AddExpiringStatus(engine.Drunk, self, t, engine.ExpiresAtDusk)
					}), nil
			}),
	}
}
