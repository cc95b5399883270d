package fetch

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestTracker() (*idleTracker, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	tracker := newIdleTracker()
	tracker.now = clock.now
	tracker.reset()
	return tracker, clock
}

func TestIdleTracker_IdleAfterQuietWindow(t *testing.T) {
	tracker, clock := newTestTracker()

	assert.False(t, tracker.idleFor(500*time.Millisecond))
	clock.advance(500 * time.Millisecond)
	assert.True(t, tracker.idleFor(500*time.Millisecond))
}

func TestIdleTracker_InflightBlocksIdle(t *testing.T) {
	tracker, clock := newTestTracker()

	tracker.started("r1")
	clock.advance(time.Second)
	assert.False(t, tracker.idleFor(500*time.Millisecond))
	assert.Equal(t, 1, tracker.pending())

	tracker.finished("r1")
	assert.False(t, tracker.idleFor(500*time.Millisecond), "quiet window restarts on completion")

	clock.advance(500 * time.Millisecond)
	assert.True(t, tracker.idleFor(500*time.Millisecond))
}

func TestIdleTracker_UnknownFinishIgnored(t *testing.T) {
	tracker, clock := newTestTracker()
	clock.advance(time.Second)

	tracker.finished("never-started")
	assert.True(t, tracker.idleFor(500*time.Millisecond))
}

func TestIdleTracker_ResetDropsInflight(t *testing.T) {
	tracker, clock := newTestTracker()
	tracker.started("stuck")
	tracker.reset()
	assert.Equal(t, 0, tracker.pending())

	clock.advance(time.Second)
	assert.True(t, tracker.idleFor(500*time.Millisecond))
}
