package engine

import "fmt"

// Step is a position in the phase state machine.
type Step int

const (
	StepStart Step = iota
	StepSetup
	StepNightOne
	StepDayDiscussion
	StepDayExecution
	StepNight
)

var stepNames = map[Step]string{
	StepStart:         "start",
	StepSetup:         "setup",
	StepNightOne:      "night_one",
	StepDayDiscussion: "day_discussion",
	StepDayExecution:  "day_execution",
	StepNight:         "night",
}

func (s Step) String() string {
	if name, ok := stepNames[s]; ok {
		return name
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler.
func (s Step) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Step) UnmarshalText(text []byte) error {
	for step, name := range stepNames {
		if name == string(text) {
			*s = step
			return nil
		}
	}
	return fmt.Errorf("unknown step %q", text)
}

// IsNight reports whether the step is a night.
func (s Step) IsNight() bool {
	return s == StepNightOne || s == StepNight
}

// IsDay reports whether the step is part of a day.
func (s Step) IsDay() bool {
	return s == StepDayDiscussion || s == StepDayExecution
}

// Resolves reports whether players act in night order during the step.
func (s Step) Resolves() bool {
	return s == StepSetup || s.IsNight()
}

// Next is the step that normally follows.
func (s Step) Next() Step {
	switch s {
	case StepStart:
		return StepSetup
	case StepSetup:
		return StepNightOne
	case StepNightOne, StepNight:
		return StepDayDiscussion
	case StepDayDiscussion:
		return StepDayExecution
	default:
		return StepNight
	}
}
