package fetch

import (
	"sync"
	"time"
)

// idlePollInterval is how often WaitNetworkIdle samples the tracker.
const idlePollInterval = 100 * time.Millisecond

// idleTracker counts in-flight network requests for one tab.
// It is fed from chromedp event callbacks, which run on another goroutine.
type idleTracker struct {
	mu           sync.Mutex
	inflight     map[string]struct{}
	lastActivity time.Time
	now          func() time.Time
}

func newIdleTracker() *idleTracker {
	return &idleTracker{
		inflight:     make(map[string]struct{}),
		lastActivity: time.Now(),
		now:          time.Now,
	}
}

// reset forgets requests from a previous document.
func (t *idleTracker) reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.inflight = make(map[string]struct{})
	t.lastActivity = t.now()
}

func (t *idleTracker) started(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.inflight[id] = struct{}{}
	t.lastActivity = t.now()
}

func (t *idleTracker) finished(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.inflight[id]; !ok {
		return
	}
	delete(t.inflight, id)
	t.lastActivity = t.now()
}

// pending returns the number of requests still in flight.
func (t *idleTracker) pending() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.inflight)
}

// idleFor reports whether nothing has been in flight for at least quiet.
func (t *idleTracker) idleFor(quiet time.Duration) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.inflight) > 0 {
		return false
	}
	return t.now().Sub(t.lastActivity) >= quiet
}
