package moderator

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/KirkDiggler/grimoire/internal/engine"
	"github.com/KirkDiggler/grimoire/internal/services/game"
	"github.com/KirkDiggler/grimoire/internal/services/messaging"
)

// Config holds what a Driver needs
type Config struct {
	GameService game.Service
	Messaging   messaging.Service
	Moderator   Moderator

	// Private includes statuses and learned information in phase summaries
	Private bool

	// Tone for announcements (optional)
	Tone messaging.MessageTone

	Logger *zap.Logger
}

// Driver plays a game through the game service, asking a Moderator
// whenever the engine needs a decision.
type Driver struct {
	games     game.Service
	messaging messaging.Service
	moderator Moderator
	private   bool
	tone      messaging.MessageTone
	logger    *zap.Logger
}

// New creates a new Driver
func New(cfg *Config) (*Driver, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.GameService == nil {
		return nil, ErrNilGameService
	}
	if cfg.Messaging == nil {
		return nil, ErrNilMessaging
	}
	if cfg.Moderator == nil {
		return nil, ErrNilModerator
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.L()
	}

	return &Driver{
		games:     cfg.GameService,
		messaging: cfg.Messaging,
		moderator: cfg.Moderator,
		private:   cfg.Private,
		tone:      cfg.Tone,
		logger:    logger,
	}, nil
}

// Run drives the game until it is over and returns the winning team.
func (d *Driver) Run(ctx context.Context, gameID string) (engine.Alignment, error) {
	logger := d.logger.With(zap.String("game_id", gameID))
	summarized := 0

	for {
		if err := ctx.Err(); err != nil {
			return engine.AlignmentAny, err
		}

		g, err := d.games.GetGame(ctx, &game.GetGameInput{GameID: gameID})
		if err != nil {
			return engine.AlignmentAny, err
		}

		summarized, err = d.summarize(ctx, gameID, summarized, g.Over)
		if err != nil {
			return engine.AlignmentAny, err
		}

		if g.Over {
			logger.Info("game over", zap.Stringer("winner", g.Winner))
			if err := d.announceWinner(ctx, g.Winner); err != nil {
				return engine.AlignmentAny, err
			}
			return g.Winner, nil
		}

		switch {
		case len(g.Pending) > 0:
			err = d.answer(ctx, gameID, g.Pending[0], g.Players)
		case g.Step.Resolves() && !g.Exhausted:
			_, err = d.games.Advance(ctx, &game.AdvanceInput{GameID: gameID})
		case g.Step == engine.StepDayExecution:
			err = d.day(ctx, gameID, g)
		default:
			_, err = d.games.NextStep(ctx, &game.NextStepInput{GameID: gameID})
		}
		if err != nil {
			return engine.AlignmentAny, err
		}
	}
}

// summarize announces every phase that finished since the last call and
// the step that has begun. When final is set the current phase is closed too.
func (d *Driver) summarize(ctx context.Context, gameID string, done int, final bool) (int, error) {
	history, err := d.games.GetLog(ctx, &game.GetLogInput{GameID: gameID})
	if err != nil {
		return done, err
	}

	closed := len(history.Phases) - 1
	if final {
		closed = len(history.Phases)
	}
	if done >= closed {
		return done, nil
	}

	for _, phase := range history.Phases[done:closed] {
		if phase.Step == engine.StepStart {
			continue
		}
		summary, err := d.messaging.GetPhaseSummary(ctx, &messaging.GetPhaseSummaryInput{
			Phase:          phase,
			Players:        history.Players,
			IncludePrivate: d.private,
			Tone:           d.tone,
		})
		if err != nil {
			return done, err
		}
		if err := d.moderator.Announce(ctx, summary.Title, summary.Lines); err != nil {
			return done, err
		}
	}

	if !final {
		current := history.Phases[len(history.Phases)-1]
		msg, err := d.messaging.GetStepMessage(ctx, &messaging.GetStepMessageInput{
			Step: current.Step,
			Day:  current.Day,
			Tone: d.tone,
		})
		if err != nil {
			return done, err
		}
		if err := d.moderator.Announce(ctx, msg.Message, nil); err != nil {
			return done, err
		}
	}

	return closed, nil
}

func (d *Driver) announceWinner(ctx context.Context, winner engine.Alignment) error {
	msg, err := d.messaging.GetGameOverMessage(ctx, &messaging.GetGameOverMessageInput{
		Winner: winner,
		Tone:   d.tone,
	})
	if err != nil {
		return err
	}
	return d.moderator.Announce(ctx, msg.Title, []string{msg.Message})
}

// answer puts one change request to the moderator. A rejected answer is
// reported and left pending, so the next pass asks again.
func (d *Driver) answer(ctx context.Context, gameID string, cr *engine.ChangeRequest, players []engine.Player) error {
	prompt := &Prompt{
		RequestID:   cr.ID,
		Kind:        cr.Kind,
		Description: cr.Description,
		Player:      cr.Player,
		Count:       cr.Count,
		Candidates:  cr.Candidates,
		Players:     players,
	}

	var answer engine.Answer
	switch cr.Kind {
	case engine.KindDisplay:
		if err := d.moderator.Display(ctx, prompt); err != nil {
			return err
		}
		_, err := d.games.Acknowledge(ctx, &game.AcknowledgeInput{GameID: gameID, RequestID: cr.ID})
		return err
	case engine.KindChoosePlayers:
		chosen, err := d.moderator.ChoosePlayers(ctx, prompt)
		if err != nil {
			return err
		}
		answer = engine.PlayersAnswer(chosen)
	case engine.KindChooseRoles:
		chosen, err := d.moderator.ChooseRoles(ctx, prompt)
		if err != nil {
			return err
		}
		answer = engine.RolesAnswer(chosen)
	case engine.KindVoting:
		n, err := d.moderator.InputNumber(ctx, prompt)
		if err != nil {
			return err
		}
		answer = engine.VoteAnswer(n)
	default:
		return fmt.Errorf("%w: %s", ErrUnhandledRequest, cr.Kind)
	}

	out, err := d.games.SubmitAnswer(ctx, &game.SubmitAnswerInput{
		GameID:    gameID,
		RequestID: cr.ID,
		Answer:    answer,
	})
	if err != nil {
		return err
	}
	if !out.Accepted {
		return d.moderator.Reject(ctx, prompt, out.Reason)
	}
	return nil
}

// day asks the moderator for the next day decision and carries it out.
func (d *Driver) day(ctx context.Context, gameID string, g *game.GetGameOutput) error {
	abilities, err := d.games.ListDayAbilities(ctx, &game.ListDayAbilitiesInput{GameID: gameID})
	if err != nil {
		return err
	}

	action, err := d.moderator.DayAction(ctx, &DayPrompt{
		Day:          g.Day,
		Players:      g.Players,
		DayAbilities: abilities.Players,
	})
	if err != nil {
		return err
	}

	switch action.Kind {
	case DayActionNominate:
		_, err = d.games.Nominate(ctx, &game.NominateInput{GameID: gameID, Nominator: action.Player, Nominee: action.Target})
	case DayActionExecute:
		_, err = d.games.Execute(ctx, &game.ExecuteInput{GameID: gameID, Target: action.Target})
	case DayActionAbility:
		_, err = d.games.TriggerDayAbility(ctx, &game.TriggerDayAbilityInput{GameID: gameID, Player: action.Player})
	case DayActionGhostVote:
		_, err = d.games.SpendGhostVote(ctx, &game.SpendGhostVoteInput{GameID: gameID, Player: action.Player})
	case DayActionEndDay:
		_, err = d.games.EndDay(ctx, &game.EndDayInput{GameID: gameID})
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDayAction, action.Kind)
	}

	if err != nil && (engine.IsRecoverable(err) || errors.Is(err, engine.ErrInvalidPlayer)) {
		return d.moderator.Reject(ctx, &Prompt{
			Description: string(action.Kind),
			Player:      action.Player,
			Players:     g.Players,
		}, err.Error())
	}
	return err
}
