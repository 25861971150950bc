package engine

import (
	"slices"
	"time"
)

// EventType tags a log entry.
type EventType string

const (
	EventNomination     EventType = "nomination"
	EventVote           EventType = "vote"
	EventExecution      EventType = "execution"
	EventAttemptedKill  EventType = "attempted_kill"
	EventDeath          EventType = "death"
	EventStatusApplied  EventType = "status_applied"
	EventStatusRemoved  EventType = "status_removed"
	EventRoleChanged    EventType = "role_changed"
	EventInfoLearned    EventType = "info_learned"
	EventWinnerDeclared EventType = "winner_declared"
)

// Event is one entry in the game log. Player is the subject of the event
// (the one who died, was nominated, received a status); Source is whoever
// caused it, or NoPlayer.
type Event struct {
	Type   EventType     `json:"type"`
	Time   time.Time     `json:"time"`
	Player PlayerIndex   `json:"player"`
	Source PlayerIndex   `json:"source"`
	Role   RoleName      `json:"role,omitempty"`
	Status *StatusEffect `json:"status,omitempty"`
	Count  int           `json:"count,omitempty"`
	Detail string        `json:"detail,omitempty"`
}

// PhaseLog holds the events of one step of one day.
type PhaseLog struct {
	Step   Step    `json:"step"`
	Day    int     `json:"day"`
	Events []Event `json:"events"`
}

// Log is the per-phase history of a game. Roles read it through View;
// only State writes to it.
type Log struct {
	phases []PhaseLog
}

func newLog() *Log {
	return &Log{phases: []PhaseLog{{Step: StepStart}}}
}

func (l *Log) open(step Step, day int) {
	l.phases = append(l.phases, PhaseLog{Step: step, Day: day})
}

func (l *Log) record(e Event) {
	last := &l.phases[len(l.phases)-1]
	last.Events = append(last.Events, e)
}

// Phases returns a copy of every phase logged so far.
func (l *Log) Phases() []PhaseLog {
	out := make([]PhaseLog, len(l.phases))
	for i, p := range l.phases {
		out[i] = PhaseLog{Step: p.Step, Day: p.Day, Events: slices.Clone(p.Events)}
	}
	return out
}

// Current returns the phase being played.
func (l *Log) Current() PhaseLog {
	return l.phases[len(l.phases)-1]
}

// SearchCurrentPhase returns the latest event in the current phase that matches.
func (l *Log) SearchCurrentPhase(match func(Event) bool) (Event, bool) {
	return search(l.phases[len(l.phases)-1], match)
}

// SearchPreviousPhase returns the latest event in the phase before the
// current one that matches.
func (l *Log) SearchPreviousPhase(match func(Event) bool) (Event, bool) {
	if len(l.phases) < 2 {
		return Event{}, false
	}
	return search(l.phases[len(l.phases)-2], match)
}

func search(phase PhaseLog, match func(Event) bool) (Event, bool) {
	for i := len(phase.Events) - 1; i >= 0; i-- {
		if match(phase.Events[i]) {
			return phase.Events[i], true
		}
	}
	return Event{}, false
}

// OfType matches events of any of the given types.
func OfType(types ...EventType) func(Event) bool {
	return func(e Event) bool {
		return slices.Contains(types, e.Type)
	}
}
