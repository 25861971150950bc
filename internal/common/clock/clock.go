package clock

import "time"

//go:generate mockgen -package=mocks -destination=mocks/mock_clock.go github.com/KirkDiggler/grimoire/internal/common/clock Clock

// Clock stamps log events and archive records.
type Clock interface {
	Now() time.Time
}

// DefaultClock implements the Clock interface using the system clock
type DefaultClock struct{}

// Now returns the current time
func (c *DefaultClock) Now() time.Time {
	return time.Now()
}

// Fixed always reports the same instant. Replays and tests use it so logs
// compare equal.
type Fixed struct {
	At time.Time
}

// Now returns the fixed instant
func (f Fixed) Now() time.Time {
	return f.At
}
