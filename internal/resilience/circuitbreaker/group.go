package circuitbreaker

import (
	"log/slog"
	"sync"

	"github.com/sony/gobreaker"
)

// DefaultMaxKeys bounds how many per-key breakers a Group retains.
const DefaultMaxKeys = 1024

// Group hands out one CircuitBreaker per key, all built from the same Config.
// A failing key trips only its own breaker. Group is safe for concurrent use.
type Group struct {
	cfg     Config
	logger  *slog.Logger
	maxKeys int

	mu       sync.Mutex
	breakers map[string]*CircuitBreaker
}

// NewGroup creates a Group. cfg.Name becomes the group name and the prefix of
// every member's name.
func NewGroup(cfg Config, logger *slog.Logger) *Group {
	if logger == nil {
		logger = slog.Default()
	}
	return &Group{
		cfg:      cfg,
		logger:   logger,
		maxKeys:  DefaultMaxKeys,
		breakers: make(map[string]*CircuitBreaker),
	}
}

// For returns the breaker for key, creating it on first use.
// When the group is full, breakers that are not open are dropped first.
func (g *Group) For(key string) *CircuitBreaker {
	g.mu.Lock()
	defer g.mu.Unlock()

	if cb, ok := g.breakers[key]; ok {
		return cb
	}
	if len(g.breakers) >= g.maxKeys {
		for k, cb := range g.breakers {
			if cb.State() != gobreaker.StateOpen {
				delete(g.breakers, k)
			}
		}
	}

	cfg := g.cfg
	cfg.Name = g.cfg.Name + "/" + key
	cb := New(cfg, g.logger)
	g.breakers[key] = cb
	return cb
}

// Name returns the group name.
func (g *Group) Name() string {
	return g.cfg.Name
}

// IsOpen reports whether any member breaker is open.
func (g *Group) IsOpen() bool {
	return len(g.OpenKeys()) > 0
}

// OpenKeys lists the keys whose breaker is currently open.
func (g *Group) OpenKeys() []string {
	g.mu.Lock()
	defer g.mu.Unlock()

	var open []string
	for k, cb := range g.breakers {
		if cb.IsOpen() {
			open = append(open, k)
		}
	}
	return open
}

// Len returns the number of retained breakers.
func (g *Group) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.breakers)
}
