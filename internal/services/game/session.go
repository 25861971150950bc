package game

import (
	"context"
	"sync"
	"time"

	"github.com/KirkDiggler/grimoire/internal/engine"
)

// session is one game in progress. Every operation on it holds mu.
type session struct {
	mu        sync.Mutex
	id        string
	game      *engine.Game
	script    engine.Script
	startedAt time.Time
}

// getSession looks up a game in progress
func (s *service) getSession(gameID string) (*session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.games[gameID]
	if !ok {
		return nil, ErrGameNotFound
	}
	return sess, nil
}

// withSession runs fn on a game while holding its lock
func (s *service) withSession(ctx context.Context, gameID string, fn func(sess *session) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	sess, err := s.getSession(gameID)
	if err != nil {
		return err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return fn(sess)
}

// forget drops a game from memory
func (s *service) forget(gameID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.games, gameID)
}
