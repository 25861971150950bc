package engine_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/KirkDiggler/grimoire/internal/engine"
	"github.com/KirkDiggler/grimoire/internal/engine/roles"
)

func newView(t *testing.T) *engine.State {
	t.Helper()
	state, err := engine.New(&engine.Config{
		Names:    names[:4],
		Roles:    []engine.RoleName{engine.RoleChef, engine.RoleImp, engine.RoleEmpath, engine.RoleMonk},
		Registry: roles.NewRegistry(),
		Logger:   zap.NewNop(),
	})
	require.NoError(t, err)
	return state
}

func TestCheckChoosePlayers(t *testing.T) {
	v := newView(t)
	cr := engine.ChoosePlayers(2, "Choose two players")

	tests := []struct {
		name   string
		answer engine.Answer
		code   engine.ChangeErrorCode
	}{
		{name: "too few", answer: engine.PlayersAnswer{1}, code: engine.WrongNumberOfSelectedPlayers},
		{name: "too many", answer: engine.PlayersAnswer{0, 1, 2}, code: engine.WrongNumberOfSelectedPlayers},
		{name: "out of range", answer: engine.PlayersAnswer{1, 4}, code: engine.InvalidSelectedPlayer},
		{name: "negative", answer: engine.PlayersAnswer{-1, 2}, code: engine.InvalidSelectedPlayer},
		{name: "duplicate", answer: engine.PlayersAnswer{2, 2}, code: engine.InvalidSelectedPlayer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := cr.Check(v, tt.answer)
			var changeErr *engine.ChangeError
			require.ErrorAs(t, err, &changeErr)
			assert.Equal(t, tt.code, changeErr.Code)
		})
	}

	assert.NoError(t, cr.Check(v, engine.PlayersAnswer{3, 0}))
}

func TestCheckRejectsWrongAnswerKind(t *testing.T) {
	v := newView(t)

	err := engine.ChoosePlayers(1, "Choose").Check(v, engine.VoteAnswer(2))
	assert.ErrorIs(t, err, engine.ErrWrongAnswerKind)
	assert.False(t, engine.IsRecoverable(err))

	err = engine.Vote("How many?").Check(v, engine.PlayersAnswer{1})
	assert.ErrorIs(t, err, engine.ErrWrongAnswerKind)
}

func TestCheckChooseRoles(t *testing.T) {
	v := newView(t)
	cr := engine.ChooseRoles(1, []engine.RoleName{engine.RoleMonk, engine.RoleSlayer}, "Choose a role")

	err := cr.Check(v, engine.RolesAnswer{engine.RoleImp})
	var changeErr *engine.ChangeError
	require.ErrorAs(t, err, &changeErr)
	assert.Equal(t, engine.InvalidSelectedRole, changeErr.Code)

	err = cr.Check(v, engine.RolesAnswer{engine.RoleMonk, engine.RoleSlayer})
	require.ErrorAs(t, err, &changeErr)
	assert.Equal(t, engine.WrongNumberOfSelectedRoles, changeErr.Code)
	assert.Equal(t, 1, changeErr.Wanted)
	assert.Equal(t, 2, changeErr.Got)

	assert.NoError(t, cr.Check(v, engine.RolesAnswer{engine.RoleSlayer}))
}

func TestCheckRunsValidatorAfterShape(t *testing.T) {
	v := newView(t)
	called := false
	cr := engine.ChoosePlayers(1, "Choose").WithValidator(func(v engine.View, a engine.Answer) error {
		called = true
		return engine.InvalidPlayer("nobody is good enough")
	})

	assert.True(t, engine.IsRecoverable(cr.Check(v, engine.PlayersAnswer{0, 1})))
	assert.False(t, called)

	assert.True(t, engine.IsRecoverable(cr.Check(v, engine.PlayersAnswer{0})))
	assert.True(t, called)
}

func TestCheckVotes(t *testing.T) {
	v := newView(t)
	cr := engine.Vote("How many?")

	assert.True(t, engine.IsRecoverable(cr.Check(v, engine.VoteAnswer(-1))))
	assert.NoError(t, cr.Check(v, engine.VoteAnswer(0)))
}

func TestImpairKeepsValidatorDropsMutator(t *testing.T) {
	v := newView(t)
	applied := false
	cr := engine.ChoosePlayers(1, "The Monk chooses").
		By(3).
		WithValidator(func(v engine.View, a engine.Answer) error {
			return engine.InvalidPlayer("always rejected")
		}).
		WithMutator(func(s *engine.State, a engine.Answer) (*engine.ChangeRequest, error) {
			applied = true
			return nil, nil
		})

	impaired := engine.Impair([]*engine.ChangeRequest{cr, nil}, "Poisoned")
	require.Len(t, impaired, 1)
	assert.Equal(t, "(Poisoned) The Monk chooses", impaired[0].Description)
	assert.False(t, impaired[0].HasMutator())
	assert.True(t, cr.HasMutator())
	assert.Equal(t, 3, impaired[0].Player)
	assert.True(t, engine.IsRecoverable(impaired[0].Check(v, engine.PlayersAnswer{0})))

	_, err := impaired[0].Apply(v, engine.PlayersAnswer{0})
	require.NoError(t, err)
	assert.False(t, applied)
}

func TestImpairedRequestChainsLabelledDisplay(t *testing.T) {
	state := newView(t)
	cr := engine.ChoosePlayers(2, "The Fortune Teller chooses two players").
		By(0).
		WhenImpaired("Show the Fortune Teller a nod or head shake of your choosing").
		WithMutator(func(s *engine.State, a engine.Answer) (*engine.ChangeRequest, error) {
			return nil, errors.New("unreachable")
		})

	impaired := engine.Impair([]*engine.ChangeRequest{cr}, "Poisoned")
	follow, err := impaired[0].Apply(state, engine.PlayersAnswer{1, 2})
	require.NoError(t, err)
	require.NotNil(t, follow)
	assert.Equal(t, engine.KindDisplay, follow.Kind)
	assert.Equal(t, "(Poisoned) Show the Fortune Teller a nod or head shake of your choosing", follow.Description)

	again := engine.Impair(impaired, "Drunk")
	follow, err = again[0].Apply(state, engine.PlayersAnswer{1, 2})
	require.NoError(t, err)
	require.NotNil(t, follow)
	assert.Equal(t, "(Drunk) (Poisoned) Show the Fortune Teller a nod or head shake of your choosing", follow.Description)
}

func TestSpentAbilityIsMarkedEvenWhenImpaired(t *testing.T) {
	state := newView(t)
	cr := engine.ChoosePlayers(1, "The Slayer chooses").By(0).SpendsAbility().
		WithMutator(func(s *engine.State, a engine.Answer) (*engine.ChangeRequest, error) {
			return nil, errors.New("unreachable")
		})

	impaired := engine.Impair([]*engine.ChangeRequest{cr}, "Drunk")
	_, err := impaired[0].Apply(state, engine.PlayersAnswer{1})
	require.NoError(t, err)
	assert.True(t, state.HasStatus(engine.AbilityUsed, 0, 0))
}
