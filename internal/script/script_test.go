package script

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/grimoire/internal/dice"
	"github.com/KirkDiggler/grimoire/internal/engine"
	"github.com/KirkDiggler/grimoire/internal/engine/roles"
)

func TestLoad(t *testing.T) {
	raw := `[
		{"id": "_meta", "author": "Steven", "name": "Brewing Trouble"},
		"washerwoman",
		"Fortune_Teller",
		"scarlet woman",
		"imp"
	]`

	s, err := Load(strings.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, "Brewing Trouble", s.Name)
	assert.Equal(t, "Steven", s.Author)
	assert.Equal(t, []engine.RoleName{
		engine.RoleWasherwoman,
		engine.RoleFortuneTeller,
		engine.RoleScarletWoman,
		engine.RoleImp,
	}, s.Roles)

	rank, ok := s.Order.NightRank(engine.RoleImp)
	assert.True(t, ok)
	assert.Equal(t, 34, rank)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(strings.NewReader(`["imp", 7]`))
	assert.ErrorIs(t, err, ErrInvalidEntry)

	_, err = Load(strings.NewReader(`[{"id": "empty"}]`))
	assert.ErrorIs(t, err, ErrNoRoles)

	_, err = Load(strings.NewReader(`{"roles": []}`))
	assert.Error(t, err)
}

func TestQuotas(t *testing.T) {
	for n := 5; n <= 15; n++ {
		q, err := Quotas(n)
		require.NoError(t, err)
		assert.Equal(t, n, q.Total(), "quota for %d players", n)
		assert.Equal(t, 1, q.Demons)
	}

	q, err := Quotas(9)
	require.NoError(t, err)
	assert.Equal(t, engine.TypeCounts{Townsfolk: 5, Outsiders: 2, Minions: 1, Demons: 1}, q)

	_, err = Quotas(4)
	assert.ErrorIs(t, err, ErrUnsupportedPlayerCount)
	_, err = Quotas(16)
	assert.ErrorIs(t, err, ErrUnsupportedPlayerCount)
}

func TestAdjustedQuotas(t *testing.T) {
	reg := roles.NewRegistry()

	q, err := AdjustedQuotas(7, []engine.RoleName{engine.RoleImp, engine.RoleBaron}, reg)
	require.NoError(t, err)
	assert.Equal(t, engine.TypeCounts{Townsfolk: 3, Outsiders: 2, Minions: 1, Demons: 1}, q)

	_, err = AdjustedQuotas(7, []engine.RoleName{engine.RoleGossip}, reg)
	assert.ErrorIs(t, err, engine.ErrRoleNotImplemented)
}

func TestDraw(t *testing.T) {
	reg := roles.NewRegistry()
	tb := TroubleBrewing()

	for seed := int64(1); seed <= 20; seed++ {
		drawn, err := Draw(8, tb, reg, dice.New(&dice.Config{Seed: seed}))
		require.NoError(t, err)
		require.Len(t, drawn, 8)

		var counts engine.TypeCounts
		seen := make(map[engine.RoleName]bool)
		for _, name := range drawn {
			assert.False(t, seen[name], "%s drawn twice", name)
			seen[name] = true
			kind, err := reg.TypeOf(name)
			require.NoError(t, err)
			counts = counts.Add(countOf(kind))
		}

		want, err := AdjustedQuotas(8, drawn, reg)
		require.NoError(t, err)
		assert.Equal(t, want, counts)
	}
}

func TestDrawNeedsEnoughRoles(t *testing.T) {
	small := engine.Script{Roles: []engine.RoleName{engine.RoleImp, engine.RolePoisoner, engine.RoleChef}}
	_, err := Draw(5, small, roles.NewRegistry(), dice.New(&dice.Config{Seed: 1}))
	assert.ErrorIs(t, err, ErrNotEnoughRoles)
}

func countOf(kind engine.CharacterType) engine.TypeCounts {
	switch kind {
	case engine.Townsfolk:
		return engine.TypeCounts{Townsfolk: 1}
	case engine.Outsider:
		return engine.TypeCounts{Outsiders: 1}
	case engine.Minion:
		return engine.TypeCounts{Minions: 1}
	default:
		return engine.TypeCounts{Demons: 1}
	}
}
