package uuid

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_uuid.go github.com/KirkDiggler/grimoire/internal/common/uuid UUID

// UUID hands out ids for games and change requests.
type UUID interface {
	NewUUID() string
}

// DefaultUUID implements the UUID interface using the uuid package
type DefaultUUID struct{}

func New() *DefaultUUID {
	return &DefaultUUID{}
}

// NewUUID returns a new UUID
func (d *DefaultUUID) NewUUID() string {
	return uuid.New().String()
}

// Sequence hands out readable ids with a fixed prefix: "req-1", "req-2", ...
type Sequence struct {
	Prefix string
	next   atomic.Int64
}

// NewSequence returns a sequence starting at 1.
func NewSequence(prefix string) *Sequence {
	return &Sequence{Prefix: prefix}
}

// NewUUID returns the next id in the sequence
func (s *Sequence) NewUUID() string {
	return fmt.Sprintf("%s-%d", s.Prefix, s.next.Add(1))
}
