package moderator

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/grimoire/internal/engine"
	"github.com/KirkDiggler/grimoire/internal/engine/roles"
)

func grimoire(t *testing.T) []engine.Player {
	t.Helper()
	registry := roles.NewRegistry()
	var players []engine.Player
	for i, name := range []engine.RoleName{engine.RoleChef, engine.RoleImp, engine.RoleMonk} {
		role, err := registry.New(name)
		require.NoError(t, err)
		players = append(players, engine.Player{
			Name:      []string{"Alice", "Bob", "Carol"}[i],
			Role:      role,
			Alignment: role.DefaultAlignment(),
		})
	}
	return players
}

func TestConsoleChoosePlayers(t *testing.T) {
	var out bytes.Buffer
	c := NewConsole(strings.NewReader("one\n0, 2\n"), &out)

	chosen, err := c.ChoosePlayers(context.Background(), &Prompt{
		RequestID:   "req-1",
		Description: "The Monk chooses a player to protect",
		Player:      2,
		Count:       2,
		Players:     grimoire(t),
	})
	require.NoError(t, err)
	assert.Equal(t, []engine.PlayerIndex{0, 2}, chosen)
	assert.Contains(t, out.String(), "[req-1] The Monk chooses a player to protect")
	assert.Contains(t, out.String(), "for Carol (Monk)")
	assert.Contains(t, out.String(), `"one" is not a seat number`)
}

func TestConsoleChooseRoles(t *testing.T) {
	var out bytes.Buffer
	c := NewConsole(strings.NewReader("7\n2 Fortune_Teller\n"), &out)

	chosen, err := c.ChooseRoles(context.Background(), &Prompt{
		RequestID:   "req-2",
		Description: "Choose the role the Drunk thinks they are",
		Player:      engine.NoPlayer,
		Count:       2,
		Candidates:  []engine.RoleName{engine.RoleChef, engine.RoleEmpath},
	})
	require.NoError(t, err)
	assert.Equal(t, []engine.RoleName{engine.RoleEmpath, engine.RoleFortuneTeller}, chosen)
	assert.Contains(t, out.String(), "no role numbered 7")
}

func TestConsoleInputNumber(t *testing.T) {
	var out bytes.Buffer
	c := NewConsole(strings.NewReader("three\n3\n"), &out)

	n, err := c.InputNumber(context.Background(), &Prompt{Player: engine.NoPlayer, Description: "How many players voted to execute Bob?"})
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestConsoleDisplayAndAnnounce(t *testing.T) {
	var out bytes.Buffer
	c := NewConsole(strings.NewReader("\n"), &out)
	ctx := context.Background()

	require.NoError(t, c.Display(ctx, &Prompt{RequestID: "req-3", Player: engine.NoPlayer, Description: "Show the Chef the number 0"}))
	require.NoError(t, c.Reject(ctx, &Prompt{}, "wrong number of selected players: wanted 1, got 2"))
	require.NoError(t, c.Announce(ctx, "Night 1", []string{"Nothing happened"}))

	text := out.String()
	assert.Contains(t, text, "[req-3] Show the Chef the number 0")
	assert.Contains(t, text, "rejected: wrong number of selected players")
	assert.Contains(t, text, "== Night 1 ==\n  Nothing happened\n")
}

func TestConsoleDayAction(t *testing.T) {
	testCases := []struct {
		input  string
		action *DayAction
	}{
		{"n 0 1\n", &DayAction{Kind: DayActionNominate, Player: 0, Target: 1}},
		{"x 2\n", &DayAction{Kind: DayActionExecute, Player: engine.NoPlayer, Target: 2}},
		{"a 0\n", &DayAction{Kind: DayActionAbility, Player: 0, Target: engine.NoPlayer}},
		{"g 3\n", &DayAction{Kind: DayActionGhostVote, Player: 3, Target: engine.NoPlayer}},
		{"q\nn 1\ne\n", &DayAction{Kind: DayActionEndDay, Player: engine.NoPlayer, Target: engine.NoPlayer}},
	}

	for _, tc := range testCases {
		t.Run(strings.TrimSpace(tc.input), func(t *testing.T) {
			var out bytes.Buffer
			c := NewConsole(strings.NewReader(tc.input), &out)

			action, err := c.DayAction(context.Background(), &DayPrompt{
				Day:          1,
				Players:      grimoire(t),
				DayAbilities: []engine.PlayerIndex{0},
			})
			require.NoError(t, err)
			assert.Equal(t, tc.action, action)
			assert.Contains(t, out.String(), "use a day ability (0)")
		})
	}
}

func TestConsoleRunsOutOfInput(t *testing.T) {
	c := NewConsole(strings.NewReader(""), &bytes.Buffer{})

	_, err := c.InputNumber(context.Background(), &Prompt{Player: engine.NoPlayer})
	assert.ErrorIs(t, err, ErrNoInput)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = c.DayAction(ctx, &DayPrompt{})
	assert.ErrorIs(t, err, context.Canceled)
}
