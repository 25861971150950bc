package messaging

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/KirkDiggler/grimoire/internal/engine"
)

// service implements the Service interface
type service struct {
	tone MessageTone

	// Random number generator for selecting dramatic messages
	rand *rand.Rand
}

// NewService creates a new messaging service
func NewService(config *ServiceConfig) (Service, error) {
	if config == nil {
		config = &ServiceConfig{}
	}

	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	tone := config.Tone
	if tone == "" {
		tone = ToneNeutral
	}

	return &service{
		tone: tone,
		rand: rand.New(rand.NewSource(seed)),
	}, nil
}

// pick returns the plain wording for a neutral tone and a random variant otherwise
func (s *service) pick(tone MessageTone, messages []string) string {
	if tone == "" {
		tone = s.tone
	}
	if tone == ToneNeutral || len(messages) == 1 {
		return messages[0]
	}
	return messages[s.rand.Intn(len(messages))]
}

// DescribeEvent renders one log entry
func (s *service) DescribeEvent(ctx context.Context, input *DescribeEventInput) (*DescribeEventOutput, error) {
	message, public := s.describe(input.Event, input.Players, input.Tone)
	return &DescribeEventOutput{
		Message: message,
		Public:  public,
	}, nil
}

func (s *service) describe(e engine.Event, players []engine.Player, tone MessageTone) (string, bool) {
	who := seatName(players, e.Player)
	by := seatName(players, e.Source)

	switch e.Type {
	case engine.EventNomination:
		return fmt.Sprintf("%s nominated %s", by, who), true
	case engine.EventVote:
		if e.Count == 1 {
			return fmt.Sprintf("%s received 1 vote", who), true
		}
		return fmt.Sprintf("%s received %d votes", who, e.Count), true
	case engine.EventExecution:
		return s.pick(tone, []string{
			fmt.Sprintf("%s (%s) was executed", who, e.Role),
			fmt.Sprintf("The town sends %s (%s) to the gallows", who, e.Role),
			fmt.Sprintf("%s (%s) swings from the rope", who, e.Role),
		}), true
	case engine.EventDeath:
		return s.pick(tone, []string{
			fmt.Sprintf("%s (%s) died", who, e.Role),
			fmt.Sprintf("%s (%s) will not see another dawn", who, e.Role),
			fmt.Sprintf("The town mourns %s (%s)", who, e.Role),
		}), true
	case engine.EventAttemptedKill:
		if e.Source == engine.NoPlayer {
			return fmt.Sprintf("%s was attacked", who), false
		}
		return fmt.Sprintf("%s attacked %s", by, who), false
	case engine.EventStatusApplied:
		if e.Source == engine.NoPlayer || e.Source == e.Player {
			return fmt.Sprintf("%s is %s", who, statusName(e.Status)), false
		}
		return fmt.Sprintf("%s is %s (by %s)", who, statusName(e.Status), by), false
	case engine.EventStatusRemoved:
		return fmt.Sprintf("%s is no longer %s", who, statusName(e.Status)), false
	case engine.EventRoleChanged:
		return fmt.Sprintf("%s became the %s", who, e.Role), false
	case engine.EventInfoLearned:
		return fmt.Sprintf("%s learned: %s", who, e.Detail), false
	case engine.EventWinnerDeclared:
		return "Winner declared: " + e.Detail, true
	default:
		return string(e.Type), false
	}
}

// GetPhaseSummary renders every public event of one phase
func (s *service) GetPhaseSummary(ctx context.Context, input *GetPhaseSummaryInput) (*GetPhaseSummaryOutput, error) {
	var lines []string
	for _, e := range input.Phase.Events {
		message, public := s.describe(e, input.Players, input.Tone)
		if !public && !input.IncludePrivate {
			continue
		}
		lines = append(lines, message)
	}
	if len(lines) == 0 {
		lines = []string{"Nothing happened"}
	}

	return &GetPhaseSummaryOutput{
		Title: phaseTitle(input.Phase.Step, input.Phase.Day),
		Lines: lines,
	}, nil
}

// GetStepMessage announces the start of a step
func (s *service) GetStepMessage(ctx context.Context, input *GetStepMessageInput) (*GetStepMessageOutput, error) {
	var messages []string

	switch input.Step {
	case engine.StepStart:
		messages = []string{"The game is ready"}
	case engine.StepSetup:
		messages = []string{"Setting up the grimoire"}
	case engine.StepNightOne, engine.StepNight:
		messages = []string{
			fmt.Sprintf("Night %d falls. Everybody close your eyes", input.Day),
			fmt.Sprintf("Night %d. Something stirs in the dark", input.Day),
			fmt.Sprintf("Night %d. Lock your doors", input.Day),
		}
	case engine.StepDayDiscussion:
		messages = []string{
			fmt.Sprintf("Day %d dawns. Everybody open your eyes", input.Day),
			fmt.Sprintf("Day %d. The sun rises over Ravenswood Bluff", input.Day),
		}
	case engine.StepDayExecution:
		messages = []string{
			"Nominations are open",
			"Point your fingers. Nominations are open",
		}
	default:
		messages = []string{input.Step.String()}
	}

	return &GetStepMessageOutput{
		Message: s.pick(input.Tone, messages),
	}, nil
}

// GetGameOverMessage announces the winning team
func (s *service) GetGameOverMessage(ctx context.Context, input *GetGameOverMessageInput) (*GetGameOverMessageOutput, error) {
	var messages []string

	switch input.Winner {
	case engine.AlignmentGood:
		messages = []string{
			"Good wins!",
			"The Demon is vanquished. Good wins!",
			"Ravenswood Bluff is saved. Good wins!",
		}
	case engine.AlignmentEvil:
		messages = []string{
			"Evil wins!",
			"Darkness falls for good. Evil wins!",
			"The town is lost. Evil wins!",
		}
	default:
		return nil, fmt.Errorf("no winner: %s", input.Winner)
	}

	return &GetGameOverMessageOutput{
		Title:   "Game Over",
		Message: s.pick(input.Tone, messages),
	}, nil
}

func seatName(players []engine.Player, p engine.PlayerIndex) string {
	if p < 0 || p >= len(players) {
		return "the storyteller"
	}
	return players[p].Name
}

func statusName(e *engine.StatusEffect) string {
	if e == nil {
		return "affected"
	}
	return e.Kind.String()
}

func phaseTitle(step engine.Step, day int) string {
	switch step {
	case engine.StepStart:
		return "Before the game"
	case engine.StepSetup:
		return "Setup"
	case engine.StepNightOne, engine.StepNight:
		return fmt.Sprintf("Night %d", day)
	case engine.StepDayDiscussion:
		return fmt.Sprintf("Day %d", day)
	case engine.StepDayExecution:
		return fmt.Sprintf("Day %d executions", day)
	default:
		return step.String()
	}
}
