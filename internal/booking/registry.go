package booking

import (
	"context"
	"sync"
	"time"

	"github.com/metinatakli/cinema-booking/internal/domain"
)

const minSweepInterval = time.Second

type entry struct {
	mu      sync.Mutex
	dialog  *domain.Dialog
	touched time.Time
	removed bool
}

// Registry holds the open dialogs keyed by session token. Each dialog has its own
// lock so one slow confirm never blocks other sessions.
type Registry struct {
	mu      sync.Mutex
	entries map[string]*entry
	ttl     time.Duration
	now     func() time.Time
}

func NewRegistry(ttl time.Duration) *Registry {
	return &Registry{
		entries: make(map[string]*entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// acquire returns the locked entry for id, creating it when create is set. It
// returns nil when there is no entry and create is false.
func (r *Registry) acquire(id string, create bool) *entry {
	for {
		r.mu.Lock()
		e, ok := r.entries[id]
		if !ok {
			if !create {
				r.mu.Unlock()
				return nil
			}

			e = &entry{}
			r.entries[id] = e
		}
		r.mu.Unlock()

		e.mu.Lock()
		if !e.removed {
			e.touched = r.now()
			return e
		}
		// lost a race with remove or Sweep
		e.mu.Unlock()
	}
}

// remove drops id from the registry. The caller must hold e.mu.
func (r *Registry) remove(id string, e *entry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e.removed = true
	if r.entries[id] == e {
		delete(r.entries, id)
	}
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.entries)
}

// Sweep evicts dialogs idle for longer than the TTL. Dialogs that are submitting
// or currently locked are left alone.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-r.ttl)
	evicted := 0

	for id, e := range r.entries {
		if !e.mu.TryLock() {
			continue
		}

		if e.touched.Before(cutoff) && (e.dialog == nil || e.dialog.State != domain.DialogSubmitting) {
			e.removed = true
			delete(r.entries, id)
			evicted++
		}

		e.mu.Unlock()
	}

	return evicted
}

// Run sweeps periodically until ctx is done. A non-positive interval falls back
// to minSweepInterval.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = minSweepInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Sweep()
		}
	}
}
