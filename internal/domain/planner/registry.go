package planner

import (
	"log/slog"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/FACorreiaa/travelvibe-api/pkg/observability"
)

// Factory builds the planner for a new session.
type Factory func(sessionID string) *Planner

// Registry keeps one Planner per session and drops sessions that have been
// idle for longer than the TTL.
type Registry struct {
	mu      sync.Mutex
	cache   *cache.Cache
	factory Factory
	logger  *slog.Logger
}

func NewRegistry(ttl time.Duration, factory Factory, logger *slog.Logger) *Registry {
	r := &Registry{
		cache:   cache.New(ttl, ttl/2),
		factory: factory,
		logger:  logger.With(slog.String("service", "planner_registry")),
	}
	r.cache.OnEvicted(func(sessionID string, _ interface{}) {
		r.logger.Debug("planner session expired", slog.String("session_id", sessionID))
		observability.SetActiveSessions(r.cache.ItemCount())
	})
	return r
}

// Get returns the session's planner, creating it on first use. Every call
// extends the session's lifetime.
func (r *Registry) Get(sessionID string) *Planner {
	r.mu.Lock()
	defer r.mu.Unlock()

	if v, ok := r.cache.Get(sessionID); ok {
		p := v.(*Planner)
		r.cache.SetDefault(sessionID, p)
		return p
	}

	p := r.factory(sessionID)
	r.cache.SetDefault(sessionID, p)
	r.logger.Debug("planner session created", slog.String("session_id", sessionID))
	observability.SetActiveSessions(r.cache.ItemCount())
	return p
}

// Len reports how many sessions are held, expired ones included until the
// next cleanup.
func (r *Registry) Len() int {
	return r.cache.ItemCount()
}

// Forget drops a session immediately.
func (r *Registry) Forget(sessionID string) {
	r.cache.Delete(sessionID)
}
