package roles_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"github.com/KirkDiggler/grimoire/internal/common/uuid"
	"github.com/KirkDiggler/grimoire/internal/engine"
	"github.com/KirkDiggler/grimoire/internal/engine/roles"
	"github.com/KirkDiggler/grimoire/internal/script"
)

var names = []string{"Alice", "Bob", "Carol", "Dave", "Eve", "Frank", "Grace"}

type RolesTestSuite struct {
	suite.Suite
	answers map[string]engine.Answer
	shown   []string
}

func (s *RolesTestSuite) SetupTest() {
	s.answers = make(map[string]engine.Answer)
	s.shown = nil
}

func TestRolesTestSuite(t *testing.T) {
	suite.Run(t, new(RolesTestSuite))
}

func (s *RolesTestSuite) newGame(rs ...engine.RoleName) *engine.Game {
	g, err := engine.NewGame(&engine.Config{
		Names:    names[:len(rs)],
		Roles:    rs,
		Script:   script.TroubleBrewing(),
		Registry: roles.NewRegistry(),
		UUID:     uuid.NewSequence("req"),
		Logger:   zap.NewNop(),
	})
	s.Require().NoError(err)
	return g
}

func (s *RolesTestSuite) drain(g *engine.Game) {
	for len(g.Pending()) > 0 {
		cr := g.Pending()[0]
		if cr.Kind == engine.KindDisplay {
			s.shown = append(s.shown, cr.Description)
			s.Require().NoError(g.Acknowledge(cr.ID))
			continue
		}
		var answer engine.Answer
		for key, a := range s.answers {
			if strings.Contains(cr.Description, key) {
				answer = a
			}
		}
		s.Require().NotNil(answer, "no answer for %q", cr.Description)
		s.Require().NoError(g.Submit(cr.ID, answer), cr.Description)
	}
}

// playTo runs the game, answering from s.answers, until it reaches step.
func (s *RolesTestSuite) playTo(g *engine.Game, step engine.Step) {
	for g.Step() != step {
		for g.Step().Resolves() {
			_, ok, err := g.Advance()
			s.Require().NoError(err)
			if !ok {
				break
			}
			s.drain(g)
		}
		s.Require().NoError(g.NextStep())
	}
}

// playNight resolves the current night.
func (s *RolesTestSuite) playNight(g *engine.Game) {
	s.Require().True(g.Step().IsNight())
	for {
		_, ok, err := g.Advance()
		s.Require().NoError(err)
		if !ok {
			return
		}
		s.drain(g)
	}
}

func (s *RolesTestSuite) player(g *engine.Game, p engine.PlayerIndex) engine.Player {
	pl, err := g.State().Player(p)
	s.Require().NoError(err)
	return pl
}

func (s *RolesTestSuite) TestDrunkBelievesTheyAreATownsfolk() {
	g := s.newGame(engine.RoleDrunk, engine.RoleImp, engine.RoleChef, engine.RoleEmpath, engine.RolePoisoner)
	s.answers["the Drunk believes"] = engine.RolesAnswer{engine.RoleWasherwoman}
	s.answers["the Washerwoman will learn"] = engine.PlayersAnswer{2}
	s.answers["shown to the Washerwoman"] = engine.PlayersAnswer{3}
	s.answers["Poisoner chooses"] = engine.PlayersAnswer{4}

	s.Require().NoError(g.NextStep())
	p, ok, err := g.Advance()
	s.Require().NoError(err)
	s.Require().True(ok)
	s.Equal(0, p)

	pick := g.Pending()[0]
	s.Equal(engine.KindChooseRoles, pick.Kind)
	s.NotContains(pick.Candidates, engine.RoleChef, "roles in play are not offered")
	s.NotContains(pick.Candidates, engine.RoleSaint)
	s.Contains(pick.Candidates, engine.RoleWasherwoman)
	s.True(engine.IsRecoverable(g.Submit(pick.ID, engine.RolesAnswer{engine.RoleEmpath})))

	s.Require().NoError(g.Submit(pick.ID, engine.RolesAnswer{engine.RoleWasherwoman}))
	pending := g.Pending()
	s.Require().Len(pending, 2)
	s.True(strings.HasPrefix(pending[0].Description, "(Drunk) "))
	s.False(pending[0].HasMutator())
	s.drain(g)

	drunk := s.player(g, 0)
	s.Equal(engine.RoleDrunk, drunk.Role.Name())
	wrapper, ok := drunk.Role.(engine.Wrapper)
	s.Require().True(ok)
	believed, linked := wrapper.Wrapped()
	s.Require().True(linked)
	s.Equal(engine.RoleWasherwoman, believed.Name())
	s.True(g.State().IsImpaired(0))
	s.Empty(g.State().StatusesBy(0))

	s.playTo(g, engine.StepDayDiscussion)
	s.Contains(s.shown, "(Drunk) Show the Washerwoman any two players and any Townsfolk role")
}

func (s *RolesTestSuite) TestLibrarianWithoutOutsiders() {
	g := s.newGame(engine.RoleLibrarian, engine.RoleImp, engine.RoleChef, engine.RoleEmpath, engine.RoleSoldier)

	s.playTo(g, engine.StepDayDiscussion)
	s.Contains(s.shown, "Show the Librarian a zero: there are no Outsider players in play")
}

func (s *RolesTestSuite) TestWasherwomanValidatesTownsfolk() {
	g := s.newGame(engine.RoleWasherwoman, engine.RoleImp, engine.RoleChef, engine.RoleEmpath, engine.RoleSoldier)
	s.Require().NoError(g.NextStep())
	_, _, err := g.Advance()
	s.Require().NoError(err)

	right := g.Pending()[0]
	s.True(engine.IsRecoverable(g.Submit(right.ID, engine.PlayersAnswer{0})), "not themselves")
	s.True(engine.IsRecoverable(g.Submit(right.ID, engine.PlayersAnswer{1})), "the Imp is no Townsfolk")
	s.Require().NoError(g.Submit(right.ID, engine.PlayersAnswer{4}))

	wrong := g.Pending()[0]
	s.True(engine.IsRecoverable(g.Submit(wrong.ID, engine.PlayersAnswer{4})), "already the correct player")
	s.Require().NoError(g.Submit(wrong.ID, engine.PlayersAnswer{1}))

	s.playTo(g, engine.StepDayDiscussion)
	s.Contains(s.shown, "Show the Washerwoman that one of Bob and Eve is the Soldier")
}

func (s *RolesTestSuite) TestWasherwomanAnswersInEitherOrder() {
	g := s.newGame(engine.RoleWasherwoman, engine.RoleImp, engine.RoleChef, engine.RoleEmpath, engine.RoleSoldier)
	s.Require().NoError(g.NextStep())
	_, _, err := g.Advance()
	s.Require().NoError(err)

	pending := g.Pending()
	s.Require().Len(pending, 2)
	right, wrong := pending[0], pending[1]
	s.Require().NoError(g.Submit(wrong.ID, engine.PlayersAnswer{4}))

	s.True(engine.IsRecoverable(g.Submit(right.ID, engine.PlayersAnswer{4})), "already the other player")
	s.Require().NoError(g.Submit(right.ID, engine.PlayersAnswer{2}))

	s.playTo(g, engine.StepDayDiscussion)
	s.Contains(s.shown, "Show the Washerwoman that one of Carol and Eve is the Chef")
}

func (s *RolesTestSuite) TestPoisonedFortuneTellerIsStillShownAnAnswer() {
	g := s.newGame(engine.RoleFortuneTeller, engine.RoleImp, engine.RoleChef, engine.RoleEmpath, engine.RolePoisoner)
	s.answers["red herring"] = engine.PlayersAnswer{2}
	s.answers["Poisoner chooses"] = engine.PlayersAnswer{0}
	s.answers["Fortune Teller chooses"] = engine.PlayersAnswer{2, 3}

	s.playTo(g, engine.StepDayDiscussion)
	s.Contains(s.shown, "(Poisoned) Show the Fortune Teller a nod or head shake of your choosing")
	for _, shown := range s.shown {
		s.NotContains(shown, "nod (yes)")
	}
	_, learned := g.State().Log().SearchPreviousPhase(func(e engine.Event) bool {
		return e.Type == engine.EventInfoLearned && e.Player == 0
	})
	s.False(learned)
}

func (s *RolesTestSuite) TestFortuneTeller() {
	g := s.newGame(engine.RoleFortuneTeller, engine.RoleImp, engine.RoleChef, engine.RoleEmpath, engine.RolePoisoner)
	s.answers["Poisoner chooses"] = engine.PlayersAnswer{3}
	s.Require().NoError(g.NextStep())
	_, _, err := g.Advance()
	s.Require().NoError(err)

	herring := g.Pending()[0]
	s.True(engine.IsRecoverable(g.Submit(herring.ID, engine.PlayersAnswer{4})), "the red herring is good")
	s.Require().NoError(g.Submit(herring.ID, engine.PlayersAnswer{2}))
	s.True(g.State().HasStatus(engine.FortuneTellerRedHerring, 0, 2))

	s.answers["Fortune Teller chooses"] = engine.PlayersAnswer{2, 3}
	s.playTo(g, engine.StepDayDiscussion)
	s.Contains(s.shown, "Show the Fortune Teller a nod (yes)")

	learned, ok := g.State().Log().SearchPreviousPhase(engine.OfType(engine.EventInfoLearned))
	s.Require().True(ok)
	s.Equal(0, learned.Player)
	s.Equal("Carol or Dave is the demon: yes", learned.Detail)

	s.playTo(g, engine.StepNight)
	s.answers["Fortune Teller chooses"] = engine.PlayersAnswer{3, 4}
	s.answers["Imp chooses"] = engine.PlayersAnswer{4}
	s.playNight(g)
	s.Contains(s.shown, "Show the Fortune Teller a head shake (no)")
}

func (s *RolesTestSuite) TestUndertakerLearnsExecutedRole() {
	g := s.newGame(engine.RoleUndertaker, engine.RoleImp, engine.RoleChef, engine.RoleEmpath, engine.RoleSoldier)
	s.answers["Imp chooses"] = engine.PlayersAnswer{4}

	s.playTo(g, engine.StepDayExecution)
	s.Require().NoError(g.Execute(2))
	s.playNight(g)
	s.Contains(s.shown, "Show the Undertaker that Carol was the Chef")
}

func (s *RolesTestSuite) TestUndertakerSleepsWithoutExecution() {
	g := s.newGame(engine.RoleUndertaker, engine.RoleImp, engine.RoleChef, engine.RoleEmpath, engine.RoleSoldier)
	s.answers["Imp chooses"] = engine.PlayersAnswer{4}

	s.playTo(g, engine.StepNight)
	s.playNight(g)
	for _, shown := range s.shown {
		s.NotContains(shown, "Undertaker")
	}
}

func (s *RolesTestSuite) TestRavenkeeperLearnsOnDeath() {
	g := s.newGame(engine.RoleRavenkeeper, engine.RoleImp, engine.RoleChef, engine.RoleEmpath, engine.RoleSoldier)
	s.answers["Imp chooses"] = engine.PlayersAnswer{0}
	s.answers["Ravenkeeper died"] = engine.PlayersAnswer{1}

	s.playTo(g, engine.StepNight)
	s.playNight(g)
	s.True(s.player(g, 0).Dead)
	s.Contains(s.shown, "Show the Ravenkeeper the Imp")
	s.True(g.State().HasStatus(engine.AbilityUsed, 0, 0))
}

func (s *RolesTestSuite) TestInnkeeperProtectsAndIntoxicates() {
	g := s.newGame(engine.RoleInnkeeper, engine.RoleImp, engine.RoleChef, engine.RoleEmpath, engine.RoleSoldier)
	s.answers["Imp chooses"] = engine.PlayersAnswer{2}

	s.playTo(g, engine.StepNight)
	_, ok, err := g.Advance()
	s.Require().NoError(err)
	s.Require().True(ok)
	s.Require().NoError(g.Submit(g.Pending()[0].ID, engine.PlayersAnswer{2, 3}))

	drunk := g.Pending()[0]
	s.True(engine.IsRecoverable(g.Submit(drunk.ID, engine.PlayersAnswer{4})), "only a guest can be drunk")
	s.Require().NoError(g.Submit(drunk.ID, engine.PlayersAnswer{3}))
	s.True(g.State().HasStatusOn(engine.Drunk, 3))

	s.playNight(g)
	s.False(s.player(g, 2).Dead)
	s.Contains(s.shown, "(Drunk) Show the Empath the number 0")

	s.Require().NoError(g.NextStep())
	s.False(g.State().HasStatusOn(engine.NightProtected, 2))
	s.True(g.State().HasStatusOn(engine.Drunk, 3), "drunk until dusk")
}

func (s *RolesTestSuite) TestButlerChoosesMaster() {
	g := s.newGame(engine.RoleButler, engine.RoleImp, engine.RoleChef, engine.RoleEmpath, engine.RoleSoldier)
	s.playTo(g, engine.StepNightOne)

	_, _, err := g.Advance()
	s.Require().NoError(err)
	for len(g.Pending()) > 0 && g.Pending()[0].Kind == engine.KindDisplay {
		s.Require().NoError(g.Acknowledge(g.Pending()[0].ID))
		_, _, err = g.Advance()
		s.Require().NoError(err)
	}

	choice := g.Pending()[0]
	s.Contains(choice.Description, "Butler")
	s.True(engine.IsRecoverable(g.Submit(choice.ID, engine.PlayersAnswer{0})))
	s.Require().NoError(g.Submit(choice.ID, engine.PlayersAnswer{2}))
	s.True(g.State().HasStatus(engine.ButlerMaster, 0, 2))
}

func (s *RolesTestSuite) TestBaronInitializationEffect() {
	delta, ok := roles.NewBaron().InitializationEffect()
	s.True(ok)
	s.Equal(engine.TypeCounts{Townsfolk: -2, Outsiders: 2}, delta)
	s.Equal(0, delta.Total())

	_, ok = roles.NewImp().InitializationEffect()
	s.False(ok)
}

func (s *RolesTestSuite) TestGossipIsNotImplemented() {
	reg := roles.NewRegistry()
	s.False(reg.Has(engine.RoleGossip))
	_, err := reg.New(engine.RoleGossip)
	s.ErrorIs(err, engine.ErrRoleNotImplemented)

	for _, name := range script.TroubleBrewing().Roles {
		s.True(reg.Has(name), name)
	}
}
