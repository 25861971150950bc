package messaging

import (
	"github.com/KirkDiggler/grimoire/internal/engine"
)

// MessageTone represents the tone of a message
type MessageTone string

const (
	// ToneNeutral always uses the plain wording
	ToneNeutral MessageTone = "neutral"

	// ToneDramatic picks a random storyteller flourish
	ToneDramatic MessageTone = "dramatic"
)

// DescribeEventInput contains parameters for describing one event
type DescribeEventInput struct {
	Event engine.Event

	// Players is the grimoire used to name seats
	Players []engine.Player

	// Tone overrides the service's default tone (optional)
	Tone MessageTone
}

// DescribeEventOutput contains the rendered event
type DescribeEventOutput struct {
	Message string

	// Public is false for events only the storyteller should see
	Public bool
}

// GetPhaseSummaryInput contains parameters for summarising a phase
type GetPhaseSummaryInput struct {
	Phase   engine.PhaseLog
	Players []engine.Player

	// IncludePrivate adds statuses and learned information
	IncludePrivate bool

	Tone MessageTone
}

// GetPhaseSummaryOutput contains the summary of a phase
type GetPhaseSummaryOutput struct {
	Title string
	Lines []string
}

// GetStepMessageInput contains parameters for announcing a step
type GetStepMessageInput struct {
	Step engine.Step
	Day  int
	Tone MessageTone
}

// GetStepMessageOutput contains the step announcement
type GetStepMessageOutput struct {
	Message string
}

// GetGameOverMessageInput contains parameters for announcing the winner
type GetGameOverMessageInput struct {
	Winner engine.Alignment
	Tone   MessageTone
}

// GetGameOverMessageOutput contains the winner announcement
type GetGameOverMessageOutput struct {
	Title   string
	Message string
}

// ServiceConfig contains configuration for the messaging service
type ServiceConfig struct {
	// Tone used when an input names none; defaults to neutral
	Tone MessageTone

	// Seed for the flourish picker; zero seeds from the clock
	Seed int64
}
