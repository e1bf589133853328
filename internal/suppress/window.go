package suppress

import (
	"sync"
	"time"
)

const DefaultTTL = 5 * time.Second

// Window remembers entity ids this client just mutated so that the echo of
// its own write, arriving back through the push channel, can be recognized
// and discarded. Entries expire passively; there is no background goroutine.
type Window struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]time.Time
	now     func() time.Time
}

func NewWindow(ttl time.Duration) *Window {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Window{
		ttl:     ttl,
		entries: make(map[string]time.Time),
		now:     time.Now,
	}
}

// Record marks entityID as locally mutated. Recording an id that is already
// present refreshes its expiry.
func (w *Window) Record(entityID string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.sweepLocked()
	w.entries[entityID] = w.now().Add(w.ttl)
}

// ShouldSuppress reports whether an unexpired entry exists for entityID. The
// entry is not consumed: one local action can produce more than one echo, and
// all of them inside the window must be ignored.
func (w *Window) ShouldSuppress(entityID string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.sweepLocked()
	expiry, ok := w.entries[entityID]
	return ok && w.now().Before(expiry)
}

func (w *Window) sweepLocked() {
	now := w.now()
	for id, expiry := range w.entries {
		if !now.Before(expiry) {
			delete(w.entries, id)
		}
	}
}
