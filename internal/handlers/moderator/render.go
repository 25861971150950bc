package moderator

import (
	"fmt"
	"strings"

	"github.com/KirkDiggler/grimoire/internal/engine"
)

// renderGrimoire lists every seat with its role, team and whether it lives
func renderGrimoire(players []engine.Player) string {
	var b strings.Builder
	for i, p := range players {
		state := "alive"
		if p.Dead {
			state = "dead"
			if p.GhostVote {
				state = "dead, ghost vote"
			}
		}
		fmt.Fprintf(&b, "  %2d. %-10s %-15s %-5s %s\n", i, p.Name, p.Role.Name(), p.Alignment, state)
	}
	return b.String()
}

// renderPrompt is the header shown above every question
func renderPrompt(prompt *Prompt) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s\n", prompt.RequestID, prompt.Description)
	if prompt.Player != engine.NoPlayer && prompt.Player < len(prompt.Players) {
		fmt.Fprintf(&b, "  for %s (%s)\n", prompt.Players[prompt.Player].Name, prompt.Players[prompt.Player].Role.Name())
	}
	return b.String()
}

// renderCandidates numbers the roles on offer from 1
func renderCandidates(candidates []engine.RoleName) string {
	var b strings.Builder
	for i, r := range candidates {
		fmt.Fprintf(&b, "  %2d. %s\n", i+1, r)
	}
	return b.String()
}

// renderDayMenu lists the day commands
func renderDayMenu(day *DayPrompt) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Day %d\n", day.Day)
	b.WriteString(renderGrimoire(day.Players))
	b.WriteString("  n <nominator> <nominee>   nominate\n")
	b.WriteString("  x <seat>                  execute now\n")
	if len(day.DayAbilities) > 0 {
		seats := make([]string, len(day.DayAbilities))
		for i, p := range day.DayAbilities {
			seats[i] = fmt.Sprint(p)
		}
		fmt.Fprintf(&b, "  a <seat>                  use a day ability (%s)\n", strings.Join(seats, ", "))
	}
	b.WriteString("  g <seat>                  spend a dead player's ghost vote\n")
	b.WriteString("  e                         end the day\n")
	return b.String()
}
