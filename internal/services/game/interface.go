package game

import "context"

// Service defines the interface for running games
type Service interface {
	// CreateGame seats players, hands out roles and holds the game before setup
	CreateGame(ctx context.Context, input *CreateGameInput) (*CreateGameOutput, error)

	// GetGame returns the moderator's view of a game in progress
	GetGame(ctx context.Context, input *GetGameInput) (*GetGameOutput, error)

	// GetLog returns the event history of a game in progress
	GetLog(ctx context.Context, input *GetLogInput) (*GetLogOutput, error)

	// Advance resolves the next player of a setup or night step
	Advance(ctx context.Context, input *AdvanceInput) (*AdvanceOutput, error)

	// SubmitAnswer answers a pending change request
	SubmitAnswer(ctx context.Context, input *SubmitAnswerInput) (*SubmitAnswerOutput, error)

	// Acknowledge resolves a pending display request
	Acknowledge(ctx context.Context, input *AcknowledgeInput) (*AcknowledgeOutput, error)

	// NextStep moves the game on to the following step
	NextStep(ctx context.Context, input *NextStepInput) (*NextStepOutput, error)

	// Nominate records a nomination and issues the vote on it
	Nominate(ctx context.Context, input *NominateInput) (*NominateOutput, error)

	// SpendGhostVote records that a dead player used their ghost vote
	SpendGhostVote(ctx context.Context, input *SpendGhostVoteInput) (*SpendGhostVoteOutput, error)

	// Execute executes a player immediately and ends the day
	Execute(ctx context.Context, input *ExecuteInput) (*ExecuteOutput, error)

	// EndDay executes whoever is on the block and moves to night
	EndDay(ctx context.Context, input *EndDayInput) (*EndDayOutput, error)

	// ListDayAbilities lists the players who may use a day ability now
	ListDayAbilities(ctx context.Context, input *ListDayAbilitiesInput) (*ListDayAbilitiesOutput, error)

	// TriggerDayAbility issues a player's day ability
	TriggerDayAbility(ctx context.Context, input *TriggerDayAbilityInput) (*TriggerDayAbilityOutput, error)

	// EndGame archives a game and forgets it
	EndGame(ctx context.Context, input *EndGameInput) (*EndGameOutput, error)

	// ListArchivedGames returns finished games, most recent first
	ListArchivedGames(ctx context.Context, input *ListArchivedGamesInput) (*ListArchivedGamesOutput, error)
}
