package roles

import (
	"fmt"

	"github.com/KirkDiggler/grimoire/internal/engine"
)

// pointer is the first-night information shared by the Washerwoman,
// Librarian and Investigator. During setup the moderator marks the player
// of the wanted type and a decoy; on the first night the role is shown both
// players and the true player's role.
type pointer struct {
	engine.Base
	want  engine.CharacterType
	right engine.StatusKind
	wrong engine.StatusKind
}

func (r pointer) SetupOrder(o engine.NightOrder) (int, bool) { return o.SetupRank(r.Name()) }
func (r pointer) NightOneOrder(o engine.NightOrder) (int, bool) { return o.NightOneRank(r.Name()) }

func (r pointer) SetupAbility(self engine.PlayerIndex, v engine.View) []*engine.ChangeRequest {
	if !r.anyCandidate(self, v) {
		return nil
	}
	return []*engine.ChangeRequest{r.rightRequest(self), r.wrongRequest(self)}
}

func (r pointer) anyCandidate(self engine.PlayerIndex, v engine.View) bool {
	for p := range v.PlayerCount() {
		if p != self && mayRegisterAs(v, p, r.want) {
			return true
		}
	}
	return false
}

func (r pointer) rightRequest(self engine.PlayerIndex) *engine.ChangeRequest {
	return engine.ChoosePlayers(1, fmt.Sprintf("Choose the %s the %s will learn about", r.want, r.Name())).
		WithValidator(func(v engine.View, a engine.Answer) error {
			t, err := single(a)
			if err != nil {
				return err
			}
			if t == self {
				return engine.InvalidPlayer(fmt.Sprintf("the %s cannot learn about themselves", r.Name()))
			}
			if !mayRegisterAs(v, t, r.want) {
				return engine.InvalidPlayer(fmt.Sprintf("%s does not register as a %s", name(v, t), r.want))
			}
			if v.HasStatus(r.wrong, self, t) {
				return engine.InvalidPlayer(name(v, t) + " is already the other player")
			}
			return nil
		}).
		WithMutator(func(s *engine.State, a engine.Answer) (*engine.ChangeRequest, error) {
			t, err := single(a)
			if err != nil {
				return nil, err
			}
			return nil, s.AddStatus(r.right, self, t)
		})
}

func (r pointer) wrongRequest(self engine.PlayerIndex) *engine.ChangeRequest {
	return engine.ChoosePlayers(1, fmt.Sprintf("Choose the other player shown to the %s", r.Name())).
		WithValidator(func(v engine.View, a engine.Answer) error {
			t, err := single(a)
			if err != nil {
				return err
			}
			if t == self {
				return engine.InvalidPlayer(fmt.Sprintf("the %s cannot be shown themselves", r.Name()))
			}
			if v.HasStatus(r.right, self, t) {
				return engine.InvalidPlayer(name(v, t) + " is already the correct player")
			}
			return nil
		}).
		WithMutator(func(s *engine.State, a engine.Answer) (*engine.ChangeRequest, error) {
			t, err := single(a)
			if err != nil {
				return nil, err
			}
			return nil, s.AddStatus(r.wrong, self, t)
		})
}

func (r pointer) NightOneAbility(self engine.PlayerIndex, v engine.View) []*engine.ChangeRequest {
	if dead(v, self) {
		return nil
	}
	if !r.anyCandidate(self, v) {
		return []*engine.ChangeRequest{
			engine.Display(fmt.Sprintf("Show the %s a zero: there are no %s players in play", r.Name(), r.want)),
		}
	}

	right, wrong := engine.NoPlayer, engine.NoPlayer
	for _, e := range v.StatusesBy(self) {
		switch e.Kind {
		case r.right:
			right = e.Target
		case r.wrong:
			wrong = e.Target
		}
	}
	if right == engine.NoPlayer || wrong == engine.NoPlayer {
		return []*engine.ChangeRequest{
			engine.Display(fmt.Sprintf("Show the %s any two players and any %s role", r.Name(), r.want)),
		}
	}

	pl, err := v.Player(right)
	if err != nil {
		return nil
	}
	first, second := min(right, wrong), max(right, wrong)
	if pl.Role.Type() != r.want {
		return []*engine.ChangeRequest{
			engine.Display(fmt.Sprintf("Show the %s that one of %s and %s is a %s of your choosing",
				r.Name(), name(v, first), name(v, second), r.want)),
		}
	}
	return []*engine.ChangeRequest{
		engine.Display(fmt.Sprintf("Show the %s that one of %s and %s is the %s",
			r.Name(), name(v, first), name(v, second), pl.Role.Name())),
	}
}

// Washerwoman learns that one of two players is a particular Townsfolk.
type Washerwoman struct{ pointer }

func NewWasherwoman() engine.Role {
	return Washerwoman{pointer{
		Base:  engine.NewBase(engine.RoleWasherwoman, engine.Townsfolk),
		want:  engine.Townsfolk,
		right: engine.WasherwomanTownsfolk,
		wrong: engine.WasherwomanWrong,
	}}
}

// Librarian learns that one of two players is a particular Outsider.
type Librarian struct{ pointer }

func NewLibrarian() engine.Role {
	return Librarian{pointer{
		Base:  engine.NewBase(engine.RoleLibrarian, engine.Townsfolk),
		want:  engine.Outsider,
		right: engine.LibrarianOutsider,
		wrong: engine.LibrarianWrong,
	}}
}

// Investigator learns that one of two players is a particular Minion.
type Investigator struct{ pointer }

func NewInvestigator() engine.Role {
	return Investigator{pointer{
		Base:  engine.NewBase(engine.RoleInvestigator, engine.Townsfolk),
		want:  engine.Minion,
		right: engine.InvestigatorMinion,
		wrong: engine.InvestigatorWrong,
	}}
}
