package game

import (
	"go.uber.org/zap"

	"github.com/KirkDiggler/grimoire/internal/common/clock"
	"github.com/KirkDiggler/grimoire/internal/common/uuid"
	"github.com/KirkDiggler/grimoire/internal/dice"
	"github.com/KirkDiggler/grimoire/internal/engine"
	"github.com/KirkDiggler/grimoire/internal/models"
	"github.com/KirkDiggler/grimoire/internal/repositories/archive"
)

// Config holds configuration for the game service
type Config struct {
	// Registry constructs roles by name
	Registry *engine.Registry

	// Script is used when CreateGame names none
	Script engine.Script

	// Maximum number of games held at once; zero means no limit
	MaxGames int

	// Repository dependencies
	ArchiveRepo archive.Repository

	// Service dependencies
	DiceRoller    *dice.Roller
	Clock         clock.Clock
	UUIDGenerator uuid.UUID

	// Logger defaults to the global zap logger
	Logger *zap.Logger
}

// CreateGameInput defines the input for creating a game
type CreateGameInput struct {
	// Names of the players in seating order
	Names []string

	// Roles to hand out. When empty a role set is drawn from the script.
	Roles []engine.RoleName

	// KeepSeating hands Roles[i] to seat i instead of shuffling them
	KeepSeating bool

	// Script overrides the service's default script
	Script *engine.Script
}

// CreateGameOutput defines the output of creating a game
type CreateGameOutput struct {
	GameID string

	// Roles is the role set in play, before shuffling
	Roles []engine.RoleName
}

// GetGameInput defines the input for getting a game
type GetGameInput struct {
	GameID string
}

// GetGameOutput is the moderator's view of a game
type GetGameOutput struct {
	GameID string
	Script engine.Script
	Step   engine.Step
	Day    int

	// Players in seating order
	Players []engine.Player

	// Pending change requests, oldest first
	Pending []*engine.ChangeRequest

	// Exhausted is true once every active player has resolved this step
	Exhausted bool

	// Over is true once a winner is settled
	Over   bool
	Winner engine.Alignment
}

// GetLogInput defines the input for reading a game's history
type GetLogInput struct {
	GameID string
}

// GetLogOutput holds the history one phase at a time
type GetLogOutput struct {
	Phases  []engine.PhaseLog
	Players []engine.Player
}

// AdvanceInput defines the input for resolving the next player
type AdvanceInput struct {
	GameID string
}

// AdvanceOutput defines the output of resolving the next player
type AdvanceOutput struct {
	// Player is the seat that was resolved, or engine.NoPlayer
	Player engine.PlayerIndex

	// Resolved is false once the step is exhausted
	Resolved bool

	Pending []*engine.ChangeRequest
}

// SubmitAnswerInput defines the input for answering a change request
type SubmitAnswerInput struct {
	GameID    string
	RequestID string
	Answer    engine.Answer
}

// SubmitAnswerOutput defines the output of answering a change request
type SubmitAnswerOutput struct {
	// Accepted is false when the answer was rejected; the request stays pending
	Accepted bool

	// Reason explains a rejected answer
	Reason string

	Pending []*engine.ChangeRequest
}

// AcknowledgeInput defines the input for acknowledging a display request
type AcknowledgeInput struct {
	GameID    string
	RequestID string
}

// AcknowledgeOutput defines the output of acknowledging a display request
type AcknowledgeOutput struct {
	Pending []*engine.ChangeRequest
}

// NextStepInput defines the input for moving to the next step
type NextStepInput struct {
	GameID string
}

// NextStepOutput defines the output of moving to the next step
type NextStepOutput struct {
	Step    engine.Step
	Day     int
	Pending []*engine.ChangeRequest
}

// NominateInput defines the input for a nomination
type NominateInput struct {
	GameID    string
	Nominator engine.PlayerIndex
	Nominee   engine.PlayerIndex
}

// NominateOutput holds the vote request issued for the nomination
type NominateOutput struct {
	Pending []*engine.ChangeRequest
}

// SpendGhostVoteInput defines the input for spending a ghost vote
type SpendGhostVoteInput struct {
	GameID string
	Player engine.PlayerIndex
}

// SpendGhostVoteOutput defines the output of spending a ghost vote
type SpendGhostVoteOutput struct {
	Player engine.Player
}

// ExecuteInput defines the input for executing a player
type ExecuteInput struct {
	GameID string
	Target engine.PlayerIndex
}

// ExecuteOutput defines the output of executing a player
type ExecuteOutput struct {
	Step    engine.Step
	Pending []*engine.ChangeRequest
}

// EndDayInput defines the input for ending the day
type EndDayInput struct {
	GameID string
}

// EndDayOutput defines the output of ending the day
type EndDayOutput struct {
	Step    engine.Step
	Pending []*engine.ChangeRequest
}

// ListDayAbilitiesInput defines the input for listing day abilities
type ListDayAbilitiesInput struct {
	GameID string
}

// ListDayAbilitiesOutput defines the output of listing day abilities
type ListDayAbilitiesOutput struct {
	Players []engine.PlayerIndex
}

// TriggerDayAbilityInput defines the input for using a day ability
type TriggerDayAbilityInput struct {
	GameID string
	Player engine.PlayerIndex
}

// TriggerDayAbilityOutput defines the output of using a day ability
type TriggerDayAbilityOutput struct {
	Pending []*engine.ChangeRequest
}

// EndGameInput defines the input for ending a game
type EndGameInput struct {
	GameID string

	// Abandon ends a game that has no winner yet
	Abandon bool
}

// EndGameOutput defines the output of ending a game
type EndGameOutput struct {
	Archived *models.ArchivedGame
}

// ListArchivedGamesInput defines the input for listing finished games
type ListArchivedGamesInput struct {
	// Limit caps the number of games returned; zero returns all of them
	Limit int
}

// ListArchivedGamesOutput defines the output of listing finished games
type ListArchivedGamesOutput struct {
	Games []*models.ArchivedGame
}
