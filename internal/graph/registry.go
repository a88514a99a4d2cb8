package graph

import (
	"sync"
	"time"

	"graphview-service/internal/model"
)

// Registry keeps one View per (session, entity) pair and expires views
// that sit untouched past the TTL. Expiry runs lazily on access, no
// background goroutine.
type Registry struct {
	mu    sync.Mutex
	ttl   time.Duration
	now   func() time.Time
	views map[string]*registryEntry
}

type registryEntry struct {
	view    *View
	touched time.Time
}

func NewRegistry(ttl time.Duration) *Registry {
	return &Registry{
		ttl:   ttl,
		now:   time.Now,
		views: make(map[string]*registryEntry),
	}
}

func viewKey(session string, entity model.EntityType) string {
	return session + "|" + string(entity)
}

// Obtain returns the view for the session and entity, creating it when
// absent or expired.
func (r *Registry) Obtain(session string, entity model.EntityType) *View {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sweep()
	key := viewKey(session, entity)
	e, ok := r.views[key]
	if !ok {
		e = &registryEntry{view: NewView(entity)}
		r.views[key] = e
	}
	e.touched = r.now()
	return e.view
}

// Lookup returns the live view for the session and entity without
// creating one.
func (r *Registry) Lookup(session string, entity model.EntityType) (*View, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sweep()
	e, ok := r.views[viewKey(session, entity)]
	if !ok {
		return nil, false
	}
	e.touched = r.now()
	return e.view, true
}

func (r *Registry) sweep() {
	cutoff := r.now().Add(-r.ttl)
	for key, e := range r.views {
		if e.touched.Before(cutoff) {
			delete(r.views, key)
		}
	}
}
