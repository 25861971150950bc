package messaging

import "context"

// Service turns game events into text for the table
type Service interface {
	// DescribeEvent renders one log entry, for example "Alice (Imp) died"
	DescribeEvent(ctx context.Context, input *DescribeEventInput) (*DescribeEventOutput, error)

	// GetPhaseSummary renders every public event of one phase
	GetPhaseSummary(ctx context.Context, input *GetPhaseSummaryInput) (*GetPhaseSummaryOutput, error)

	// GetStepMessage announces the start of a step
	GetStepMessage(ctx context.Context, input *GetStepMessageInput) (*GetStepMessageOutput, error)

	// GetGameOverMessage announces the winning team
	GetGameOverMessage(ctx context.Context, input *GetGameOverMessageInput) (*GetGameOverMessageOutput, error)
}
