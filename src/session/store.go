package session

import (
	"context"
	"sync"
	"time"

	"github.com/BielosX/wombat/pokedex/src/pokedex"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Factory func() *pokedex.Pokedex

type session struct {
	dex      *pokedex.Pokedex
	lastSeen time.Time
}

// Store keeps one Pokédex per browser session in memory. Nothing outlives
// the process.
type Store struct {
	factory Factory
	ttl     time.Duration
	now     func() time.Time
	sugar   *zap.SugaredLogger

	mu       sync.Mutex
	sessions map[string]*session
}

func NewStore(factory Factory, ttl time.Duration, sugar *zap.SugaredLogger) *Store {
	return &Store{
		factory:  factory,
		ttl:      ttl,
		now:      time.Now,
		sugar:    sugar,
		sessions: make(map[string]*session),
	}
}

func (s *Store) Create() (string, *pokedex.Pokedex) {
	id := uuid.NewString()
	dex := s.factory()
	s.mu.Lock()
	s.sessions[id] = &session{dex: dex, lastSeen: s.now()}
	s.mu.Unlock()
	s.sugar.Debugf("Created session %s", id)
	return id, dex
}

// Get returns the session's Pokédex and marks it as seen.
func (s *Store) Get(id string) (*pokedex.Pokedex, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	sess.lastSeen = s.now()
	return sess.dex, true
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep drops sessions idle for longer than the TTL and returns how many
// were removed. A zero TTL keeps sessions forever.
func (s *Store) Sweep(now time.Time) int {
	if s.ttl <= 0 {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, sess := range s.sessions {
		if now.Sub(sess.lastSeen) > s.ttl {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

func (s *Store) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case t := <-ticker.C:
			if removed := s.Sweep(t); removed > 0 {
				s.sugar.Infof("Expired %d idle sessions", removed)
			}
		}
	}
}
