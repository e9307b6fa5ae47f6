package editor

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"inkpost/internal/content/render"
	"inkpost/internal/domain"
)

// Registry keeps open sessions by id and expires idle ones.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	renderer    *render.Renderer
	idleTimeout time.Duration
	logger      *slog.Logger
}

// NewRegistry creates an empty registry. Sessions untouched for longer
// than idleTimeout are removed by Sweep.
func NewRegistry(renderer *render.Renderer, idleTimeout time.Duration, logger *slog.Logger) *Registry {
	return &Registry{
		sessions:    make(map[string]*Session),
		renderer:    renderer,
		idleTimeout: idleTimeout,
		logger:      logger,
	}
}

// Create starts a session for a new post.
func (r *Registry) Create(authorID string) *Session {
	s := NewSession(uuid.NewString(), authorID, r.renderer)
	r.add(s)
	return s
}

// Open loads an existing blog through store and starts a session on it.
func (r *Registry) Open(ctx context.Context, store Store, authorID, blogID string) (*Session, error) {
	snap, err := store.LoadDraft(ctx, authorID, blogID)
	if err != nil {
		return nil, err
	}
	snap.BlogID = blogID
	s := Open(uuid.NewString(), authorID, r.renderer, snap)
	r.add(s)
	return s, nil
}

func (r *Registry) add(s *Session) {
	r.mu.Lock()
	r.sessions[s.id] = s
	r.mu.Unlock()
	r.logger.Debug("draft session opened", "session_id", s.id, "author_id", s.authorID, "blog_id", s.blogID)
}

// Get returns the session with id if it belongs to authorID. Sessions of
// other authors are reported as not found.
func (r *Registry) Get(id, authorID string) (*Session, error) {
	r.mu.RLock()
	s, ok := r.sessions[id]
	r.mu.RUnlock()

	if !ok || s.authorID != authorID {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("draft session not found: %s", id)}
	}
	return s, nil
}

// Close removes a session.
func (r *Registry) Close(id, authorID string) error {
	if _, err := r.Get(id, authorID); err != nil {
		return err
	}
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
	return nil
}

// Len returns the number of open sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Sweep removes sessions idle since before now minus the idle timeout and
// returns how many were removed.
func (r *Registry) Sweep(now time.Time) int {
	cutoff := now.Add(-r.idleTimeout)

	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, s := range r.sessions {
		if s.UpdatedAt().Before(cutoff) {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed
}

// Run sweeps every interval until ctx is done.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := r.Sweep(now); n > 0 {
				r.logger.Info("expired idle draft sessions", "count", n, "remaining", r.Len())
			}
		}
	}
}
