package game

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/KirkDiggler/grimoire/internal/common/clock"
	"github.com/KirkDiggler/grimoire/internal/common/uuid"
	"github.com/KirkDiggler/grimoire/internal/dice"
	"github.com/KirkDiggler/grimoire/internal/engine"
	"github.com/KirkDiggler/grimoire/internal/models"
	"github.com/KirkDiggler/grimoire/internal/repositories/archive"
	"github.com/KirkDiggler/grimoire/internal/script"
)

// service implements the Service interface
type service struct {
	registry    *engine.Registry
	script      engine.Script
	maxGames    int
	archiveRepo archive.Repository
	diceRoller  *dice.Roller
	clock       clock.Clock
	uuid        uuid.UUID
	logger      *zap.Logger

	mu    sync.RWMutex
	games map[string]*session
}

// New creates a new game service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.Registry == nil {
		return nil, ErrNilRegistry
	}
	if cfg.ArchiveRepo == nil {
		return nil, ErrNilArchiveRepo
	}
	if cfg.DiceRoller == nil {
		return nil, ErrNilDiceRoller
	}
	if cfg.Clock == nil {
		return nil, ErrNilClock
	}
	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.L()
	}

	return &service{
		registry:    cfg.Registry,
		script:      cfg.Script,
		maxGames:    cfg.MaxGames,
		archiveRepo: cfg.ArchiveRepo,
		diceRoller:  cfg.DiceRoller,
		clock:       cfg.Clock,
		uuid:        cfg.UUIDGenerator,
		logger:      logger,
		games:       make(map[string]*session),
	}, nil
}

// CreateGame seats players and hands out roles
func (s *service) CreateGame(ctx context.Context, input *CreateGameInput) (*CreateGameOutput, error) {
	if input == nil || len(input.Names) == 0 {
		return nil, ErrNoPlayers
	}

	sc := s.script
	if input.Script != nil {
		sc = *input.Script
	}

	roles := input.Roles
	if len(roles) == 0 {
		drawn, err := script.Draw(len(input.Names), sc, s.registry, s.diceRoller)
		if err != nil {
			return nil, fmt.Errorf("drawing roles: %w", err)
		}
		roles = drawn
	}

	gameID := s.uuid.NewUUID()
	logger := s.logger.With(zap.String("game_id", gameID))

	var shuffler engine.Shuffler
	if !input.KeepSeating {
		shuffler = s.diceRoller
	}
	g, err := engine.NewGame(&engine.Config{
		Names:    input.Names,
		Roles:    roles,
		Script:   sc,
		Registry: s.registry,
		Shuffler: shuffler,
		Clock:    s.clock,
		UUID:     uuid.NewSequence("req"),
		Logger:   logger,
	})
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.maxGames > 0 && len(s.games) >= s.maxGames {
		return nil, ErrTooManyGames
	}
	s.games[gameID] = &session{
		id:        gameID,
		game:      g,
		script:    sc,
		startedAt: s.clock.Now(),
	}

	logger.Info("game created",
		zap.Int("players", len(input.Names)),
		zap.String("script", sc.ID),
	)

	return &CreateGameOutput{
		GameID: gameID,
		Roles:  roles,
	}, nil
}

// GetGame returns the moderator's view of a game
func (s *service) GetGame(ctx context.Context, input *GetGameInput) (*GetGameOutput, error) {
	var out *GetGameOutput
	err := s.withSession(ctx, input.GameID, func(sess *session) error {
		g := sess.game
		winner, over, err := g.Winner()
		if err != nil && !errors.Is(err, engine.ErrNoWinCondition) {
			return err
		}
		out = &GetGameOutput{
			GameID:    sess.id,
			Script:    sess.script,
			Step:      g.Step(),
			Day:       g.State().Day(),
			Players:   g.State().Players(),
			Pending:   g.Pending(),
			Exhausted: g.Exhausted(),
			Over:      over,
			Winner:    winner,
		}
		return nil
	})
	return out, err
}

// GetLog returns the event history of a game
func (s *service) GetLog(ctx context.Context, input *GetLogInput) (*GetLogOutput, error) {
	var out *GetLogOutput
	err := s.withSession(ctx, input.GameID, func(sess *session) error {
		v := sess.game.State()
		out = &GetLogOutput{
			Phases:  v.Log().Phases(),
			Players: v.Players(),
		}
		return nil
	})
	return out, err
}

// Advance resolves the next player of a setup or night step
func (s *service) Advance(ctx context.Context, input *AdvanceInput) (*AdvanceOutput, error) {
	var out *AdvanceOutput
	err := s.withSession(ctx, input.GameID, func(sess *session) error {
		p, resolved, err := sess.game.Advance()
		if err != nil {
			return err
		}
		out = &AdvanceOutput{
			Player:   p,
			Resolved: resolved,
			Pending:  sess.game.Pending(),
		}
		return nil
	})
	return out, err
}

// SubmitAnswer answers a pending change request. A rejected answer is not
// an error: the output carries the reason and the request stays pending.
func (s *service) SubmitAnswer(ctx context.Context, input *SubmitAnswerInput) (*SubmitAnswerOutput, error) {
	var out *SubmitAnswerOutput
	err := s.withSession(ctx, input.GameID, func(sess *session) error {
		out = &SubmitAnswerOutput{Accepted: true}
		if err := sess.game.Submit(input.RequestID, input.Answer); err != nil {
			if !engine.IsRecoverable(err) {
				return err
			}
			s.logger.Warn("answer rejected",
				zap.String("game_id", sess.id),
				zap.String("request_id", input.RequestID),
				zap.Error(err),
			)
			out.Accepted = false
			out.Reason = err.Error()
		}
		out.Pending = sess.game.Pending()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Acknowledge resolves a pending display request
func (s *service) Acknowledge(ctx context.Context, input *AcknowledgeInput) (*AcknowledgeOutput, error) {
	var out *AcknowledgeOutput
	err := s.withSession(ctx, input.GameID, func(sess *session) error {
		if err := sess.game.Acknowledge(input.RequestID); err != nil {
			return err
		}
		out = &AcknowledgeOutput{Pending: sess.game.Pending()}
		return nil
	})
	return out, err
}

// NextStep moves the game on to the following step
func (s *service) NextStep(ctx context.Context, input *NextStepInput) (*NextStepOutput, error) {
	var out *NextStepOutput
	err := s.withSession(ctx, input.GameID, func(sess *session) error {
		if err := sess.game.NextStep(); err != nil {
			return err
		}
		out = &NextStepOutput{
			Step:    sess.game.Step(),
			Day:     sess.game.State().Day(),
			Pending: sess.game.Pending(),
		}
		return nil
	})
	return out, err
}

// Nominate records a nomination and issues the vote on it
func (s *service) Nominate(ctx context.Context, input *NominateInput) (*NominateOutput, error) {
	var out *NominateOutput
	err := s.withSession(ctx, input.GameID, func(sess *session) error {
		if err := sess.game.Nominate(input.Nominator, input.Nominee); err != nil {
			return err
		}
		out = &NominateOutput{Pending: sess.game.Pending()}
		return nil
	})
	return out, err
}

// SpendGhostVote records that a dead player used their ghost vote
func (s *service) SpendGhostVote(ctx context.Context, input *SpendGhostVoteInput) (*SpendGhostVoteOutput, error) {
	var out *SpendGhostVoteOutput
	err := s.withSession(ctx, input.GameID, func(sess *session) error {
		if err := sess.game.SpendGhostVote(input.Player); err != nil {
			return err
		}
		pl, err := sess.game.State().Player(input.Player)
		if err != nil {
			return err
		}
		out = &SpendGhostVoteOutput{Player: pl}
		return nil
	})
	return out, err
}

// Execute executes a player immediately and ends the day
func (s *service) Execute(ctx context.Context, input *ExecuteInput) (*ExecuteOutput, error) {
	var out *ExecuteOutput
	err := s.withSession(ctx, input.GameID, func(sess *session) error {
		if err := sess.game.Execute(input.Target); err != nil {
			return err
		}
		out = &ExecuteOutput{
			Step:    sess.game.Step(),
			Pending: sess.game.Pending(),
		}
		return nil
	})
	return out, err
}

// EndDay executes whoever is on the block and moves to night
func (s *service) EndDay(ctx context.Context, input *EndDayInput) (*EndDayOutput, error) {
	var out *EndDayOutput
	err := s.withSession(ctx, input.GameID, func(sess *session) error {
		if err := sess.game.EndDay(); err != nil {
			return err
		}
		out = &EndDayOutput{
			Step:    sess.game.Step(),
			Pending: sess.game.Pending(),
		}
		return nil
	})
	return out, err
}

// ListDayAbilities lists the players who may use a day ability now
func (s *service) ListDayAbilities(ctx context.Context, input *ListDayAbilitiesInput) (*ListDayAbilitiesOutput, error) {
	var out *ListDayAbilitiesOutput
	err := s.withSession(ctx, input.GameID, func(sess *session) error {
		out = &ListDayAbilitiesOutput{Players: sess.game.DayAbilities()}
		return nil
	})
	return out, err
}

// TriggerDayAbility issues a player's day ability
func (s *service) TriggerDayAbility(ctx context.Context, input *TriggerDayAbilityInput) (*TriggerDayAbilityOutput, error) {
	var out *TriggerDayAbilityOutput
	err := s.withSession(ctx, input.GameID, func(sess *session) error {
		if err := sess.game.TriggerDayAbility(input.Player); err != nil {
			return err
		}
		out = &TriggerDayAbilityOutput{Pending: sess.game.Pending()}
		return nil
	})
	return out, err
}

// EndGame archives a game and forgets it. A game without a winner is only
// archived when abandoned.
func (s *service) EndGame(ctx context.Context, input *EndGameInput) (*EndGameOutput, error) {
	var archived *models.ArchivedGame
	err := s.withSession(ctx, input.GameID, func(sess *session) error {
		winner, over, err := sess.game.Winner()
		if err != nil && !errors.Is(err, engine.ErrNoWinCondition) {
			return err
		}
		if !over && !input.Abandon {
			return ErrGameNotOver
		}

		archived = s.archive(sess, winner, over)
		if err := s.archiveRepo.SaveGame(ctx, &archive.SaveGameInput{Game: archived}); err != nil {
			return fmt.Errorf("archiving game: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.forget(input.GameID)
	s.logger.Info("game ended",
		zap.String("game_id", input.GameID),
		zap.String("outcome", string(archived.Outcome)),
		zap.Int("day", archived.Day),
	)

	return &EndGameOutput{Archived: archived}, nil
}

// ListArchivedGames returns finished games, most recent first
func (s *service) ListArchivedGames(ctx context.Context, input *ListArchivedGamesInput) (*ListArchivedGamesOutput, error) {
	var limit int
	if input != nil {
		limit = input.Limit
	}
	out, err := s.archiveRepo.ListGames(ctx, &archive.ListGamesInput{Limit: limit})
	if err != nil {
		return nil, err
	}
	return &ListArchivedGamesOutput{Games: out.Games}, nil
}

// archive builds the record kept for a finished game
func (s *service) archive(sess *session, winner engine.Alignment, over bool) *models.ArchivedGame {
	v := sess.game.State()

	outcome := models.GameOutcomeAbandoned
	if over {
		switch winner {
		case engine.AlignmentGood:
			outcome = models.GameOutcomeGood
		case engine.AlignmentEvil:
			outcome = models.GameOutcomeEvil
		}
	}

	players := make([]*models.ArchivedPlayer, 0, v.PlayerCount())
	for i, p := range v.Players() {
		players = append(players, &models.ArchivedPlayer{
			Seat:      i,
			Name:      p.Name,
			Role:      p.Role.Name(),
			Alignment: p.Alignment.String(),
			Dead:      p.Dead,
		})
	}

	return &models.ArchivedGame{
		ID:         sess.id,
		ScriptID:   sess.script.ID,
		ScriptName: sess.script.Name,
		Outcome:    outcome,
		Day:        v.Day(),
		Players:    players,
		Log:        v.Log().Phases(),
		StartedAt:  sess.startedAt,
		FinishedAt: s.clock.Now(),
	}
}
