package moderator

import (
	"context"

	"github.com/KirkDiggler/grimoire/internal/engine"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_moderator.go github.com/KirkDiggler/grimoire/internal/handlers/moderator Moderator

// Moderator is the storyteller at the table. The Driver asks it to answer
// change requests and to decide what happens during the day.
type Moderator interface {
	// ChoosePlayers answers a request to select prompt.Count players
	ChoosePlayers(ctx context.Context, prompt *Prompt) ([]engine.PlayerIndex, error)

	// ChooseRoles answers a request to select prompt.Count roles from prompt.Candidates
	ChooseRoles(ctx context.Context, prompt *Prompt) ([]engine.RoleName, error)

	// InputNumber answers a vote request with the number of hands raised
	InputNumber(ctx context.Context, prompt *Prompt) (int, error)

	// Display shows information to a player. Returning acknowledges it.
	Display(ctx context.Context, prompt *Prompt) error

	// Reject reports why an answer was refused; the request is asked again
	Reject(ctx context.Context, prompt *Prompt, reason string) error

	// Announce tells the table what happened
	Announce(ctx context.Context, title string, lines []string) error

	// DayAction picks the next thing to happen during the execution step
	DayAction(ctx context.Context, day *DayPrompt) (*DayAction, error)
}

// Prompt is one change request as the moderator sees it
type Prompt struct {
	RequestID   string
	Kind        engine.RequestKind
	Description string

	// Player is the seat the request is about, or engine.NoPlayer
	Player engine.PlayerIndex

	// Count is how many players or roles to choose
	Count int

	// Candidates are the roles on offer for a role choice
	Candidates []engine.RoleName

	// Players is the grimoire in seating order
	Players []engine.Player
}

// DayPrompt is the state of the table when a day decision is needed
type DayPrompt struct {
	Day     int
	Players []engine.Player

	// DayAbilities lists the seats that may use an ability now
	DayAbilities []engine.PlayerIndex
}

// DayActionKind is what the moderator wants to do next during the day
type DayActionKind string

const (
	// DayActionNominate has Player nominate Target
	DayActionNominate DayActionKind = "nominate"

	// DayActionExecute executes Target at once and ends the day
	DayActionExecute DayActionKind = "execute"

	// DayActionAbility triggers Player's day ability
	DayActionAbility DayActionKind = "ability"

	// DayActionGhostVote spends dead Player's ghost vote
	DayActionGhostVote DayActionKind = "ghost_vote"

	// DayActionEndDay executes whoever is on the block and moves to night
	DayActionEndDay DayActionKind = "end_day"
)

// DayAction is one day decision
type DayAction struct {
	Kind   DayActionKind
	Player engine.PlayerIndex
	Target engine.PlayerIndex
}
