package fingerprint

import (
	"context"
	"errors"
	"sync"
)

// ErrSuperseded is returned by Session.Update when a newer input was
// submitted while this one's digest was still in flight. The stale result
// is discarded, never committed.
var ErrSuperseded = errors.New("fingerprint computation superseded by newer input")

// Session serializes fingerprint updates for a single input stream and
// enforces last-input-wins ordering: when digest calls overlap, only the
// configuration for the most recently submitted input is ever committed,
// regardless of completion order. A failed or stale update preserves the
// previous valid configuration, so consumers never flicker to empty while
// the user is typing.
//
// Sessions for different input streams are independent and need no shared
// state; use one Session per consumer.
type Session struct {
	digester Digester

	mu      sync.Mutex
	gen     uint64
	current *Config
}

// NewSession creates a session backed by the given digest provider.
func NewSession(d Digester) *Session {
	return &Session{digester: d}
}

// Update computes the fingerprint for input and commits it if no newer
// update started in the meantime. Empty or whitespace-only input commits
// the absent state (nil). Returns ErrSuperseded for stale results and
// keeps the previous configuration on digest failure.
func (s *Session) Update(ctx context.Context, input string) (*Config, error) {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.mu.Unlock()

	cfg, err := Generate(ctx, s.digester, input)

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen {
		return nil, ErrSuperseded
	}
	if err != nil {
		// Previous valid configuration stays committed.
		return nil, err
	}
	s.current = cfg
	return cfg, nil
}

// Current returns the latest committed configuration, or nil when absent.
func (s *Session) Current() *Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}
