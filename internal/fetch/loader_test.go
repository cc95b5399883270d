package fetch

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLoader(cfg *LoaderConfig) (*Loader, *[]time.Duration) {
	loader := NewLoader(cfg)
	var slept []time.Duration
	loader.sleep = func(_ context.Context, d time.Duration) error {
		slept = append(slept, d)
		return nil
	}
	return loader, &slept
}

func TestLoader_Load_ScrollsToComputedHeight(t *testing.T) {
	loader, slept := newTestLoader(&LoaderConfig{ScrollStep: 300, ScrollDelayMin: 800 * time.Millisecond, ScrollDelayMax: 800 * time.Millisecond})
	page := &fakePage{height: 1000}

	err := loader.Load(context.Background(), page, "https://www.linkedin.com/in/a")
	require.NoError(t, err)

	assert.Equal(t, []string{"https://www.linkedin.com/in/a"}, page.navigated)
	assert.Equal(t, []int{0, 300, 600, 900}, page.scrolls)
	// Four scroll pauses plus the settle delay
	require.Len(t, *slept, 5)
	assert.Equal(t, 800*time.Millisecond, (*slept)[0])
}

func TestLoader_Reveal_FallsBackToAssumedHeight(t *testing.T) {
	loader, _ := newTestLoader(nil)

	for _, page := range []*fakePage{
		{heightErr: errors.New("evaluate failed")},
		{height: 0},
	} {
		require.NoError(t, loader.Reveal(context.Background(), page, "u"))
		assert.Equal(t, []int{0, 500, 1000, 1500, 2000, 2500, 3000, 3500}, page.scrolls)
	}
}

func TestLoader_Reveal_JitterWithinBounds(t *testing.T) {
	loader, slept := newTestLoader(&LoaderConfig{
		ScrollDelayMin: 300 * time.Millisecond,
		ScrollDelayMax: 600 * time.Millisecond,
	})
	require.NoError(t, loader.Reveal(context.Background(), &fakePage{height: 5000}, "u"))

	pauses := (*slept)[:len(*slept)-1]
	require.Len(t, pauses, 10)
	for _, d := range pauses {
		assert.GreaterOrEqual(t, d, 300*time.Millisecond)
		assert.LessOrEqual(t, d, 600*time.Millisecond)
	}
}

func TestLoader_Load_NavigationTimeout(t *testing.T) {
	loader, _ := newTestLoader(&LoaderConfig{NavigationTimeout: 20 * time.Millisecond})
	page := &fakePage{blockIdle: true}

	err := loader.Load(context.Background(), page, "https://www.linkedin.com/in/slow")
	require.Error(t, err)

	var timeoutErr *TimeoutError
	require.ErrorAs(t, err, &timeoutErr)
	assert.Equal(t, "network idle wait", timeoutErr.Stage)
	assert.Equal(t, "https://www.linkedin.com/in/slow", timeoutErr.URL)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Empty(t, page.scrolls, "reveal must not run after a timeout")
}

func TestLoader_Load_NavigateDeadlineIsTimeout(t *testing.T) {
	loader, _ := newTestLoader(nil)
	page := &fakePage{navigateErr: context.DeadlineExceeded}

	err := loader.Load(context.Background(), page, "u")
	var timeoutErr *TimeoutError
	require.ErrorAs(t, err, &timeoutErr)
	assert.Equal(t, "navigation", timeoutErr.Stage)
}

func TestLoader_Load_OtherFailureIsNavigationError(t *testing.T) {
	loader, _ := newTestLoader(nil)
	page := &fakePage{navigateErr: errors.New("net::ERR_NAME_NOT_RESOLVED")}

	err := loader.Load(context.Background(), page, "u")
	require.Error(t, err)

	var timeoutErr *TimeoutError
	assert.False(t, errors.As(err, &timeoutErr))
	var navErr *NavigationError
	require.ErrorAs(t, err, &navErr)
	assert.Contains(t, err.Error(), "ERR_NAME_NOT_RESOLVED")
}

func TestLoader_Reveal_ScrollFailure(t *testing.T) {
	loader, _ := newTestLoader(nil)
	page := &fakePage{height: 1000, scrollErr: errors.New("target closed")}

	err := loader.Reveal(context.Background(), page, "u")
	var navErr *NavigationError
	require.ErrorAs(t, err, &navErr)
	assert.Equal(t, "scroll failed", navErr.Message)
}

func TestNewLoader_FillsDefaults(t *testing.T) {
	cfg := NewLoader(&LoaderConfig{}).Config()
	assert.Equal(t, DefaultNavigationTimeout, cfg.NavigationTimeout)
	assert.Equal(t, 500, cfg.ScrollStep)
	assert.Equal(t, 4000, cfg.AssumedHeight)
	assert.Equal(t, 500*time.Millisecond, cfg.IdleQuiet)
}

func TestJitter(t *testing.T) {
	assert.Equal(t, time.Second, jitter(time.Second, time.Second))
	assert.Equal(t, time.Second, jitter(time.Second, 0))
	for range 50 {
		d := jitter(10*time.Millisecond, 20*time.Millisecond)
		assert.GreaterOrEqual(t, d, 10*time.Millisecond)
		assert.LessOrEqual(t, d, 20*time.Millisecond)
	}
}

func TestSleepContext_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, sleepContext(ctx, time.Hour), context.Canceled)
}
