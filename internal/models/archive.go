package models

import (
	"time"

	"github.com/KirkDiggler/grimoire/internal/engine"
)

// GameOutcome is how an archived game ended
type GameOutcome string

const (
	// GameOutcomeGood means the good team won
	GameOutcomeGood GameOutcome = "good"

	// GameOutcomeEvil means the evil team won
	GameOutcomeEvil GameOutcome = "evil"

	// GameOutcomeAbandoned means the game was ended before a winner was decided
	GameOutcomeAbandoned GameOutcome = "abandoned"
)

// ArchivedGame is the record kept once a game ends
type ArchivedGame struct {
	// ID is the game's identifier while it was played
	ID string

	// ScriptID and ScriptName identify the script the game used
	ScriptID   string
	ScriptName string

	// Outcome is the winning team, or abandoned
	Outcome GameOutcome

	// Day is the day the game ended on
	Day int

	// Players is the final grimoire in seating order
	Players []*ArchivedPlayer

	// Log is the full event history, one entry per phase
	Log []engine.PhaseLog

	// StartedAt is when the game was created
	StartedAt time.Time

	// FinishedAt is when the game was archived
	FinishedAt time.Time
}

// ArchivedPlayer is one seat of the final grimoire
type ArchivedPlayer struct {
	Seat      int
	Name      string
	Role      engine.RoleName
	Alignment string
	Dead      bool
}
