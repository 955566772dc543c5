package guard

import (
	"paywall/internal/structures"
	"paywall/internal/testutil"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func guardConfig(lock, global time.Duration) *structures.Config {
	return &structures.Config{
		Guard: structures.GuardConfig{
			LockWindow:   lock,
			GlobalWindow: global,
		},
	}
}

func newGuard(lock, global time.Duration) (*ActionGuard, *testutil.MockMetrics) {
	metrics := testutil.NewMockMetrics()
	g := NewActionGuard(guardConfig(lock, global), &testutil.MockLogger{}, metrics).(*ActionGuard)
	return g, metrics
}

func TestTryEnter_BlocksDuplicate(t *testing.T) {
	g, metrics := newGuard(100*time.Millisecond, 10*time.Millisecond)
	defer g.ResetAll()

	assert.True(t, g.TryEnter("premium"))
	assert.False(t, g.TryEnter("premium"))
	assert.Equal(t, 1, metrics.GuardRejections["premium"])
}

func TestTryEnter_AutoReleaseAfterWindow(t *testing.T) {
	g, _ := newGuard(50*time.Millisecond, 10*time.Millisecond)
	defer g.ResetAll()

	assert.True(t, g.TryEnter("premium"))
	assert.False(t, g.TryEnter("premium"))

	time.Sleep(70 * time.Millisecond)
	assert.True(t, g.TryEnter("premium"))
}

func TestTryEnter_GlobalThrottleAcrossKeys(t *testing.T) {
	g, _ := newGuard(200*time.Millisecond, 50*time.Millisecond)
	defer g.ResetAll()

	assert.True(t, g.TryEnter("offer"))
	// A different key is throttled while the global window is open.
	assert.False(t, g.TryEnter("settings"))

	time.Sleep(70 * time.Millisecond)
	assert.True(t, g.TryEnter("settings"))
}

func TestRelease_UnlocksImmediately(t *testing.T) {
	g, _ := newGuard(10*time.Second, 10*time.Millisecond)
	defer g.ResetAll()

	assert.True(t, g.TryEnter("premium"))
	g.Release("premium")

	// Wait out the short global window; the long lock window would
	// still be open if Release had not cleared it.
	time.Sleep(20 * time.Millisecond)
	assert.True(t, g.TryEnter("premium"))
}

func TestRelease_Idempotent(t *testing.T) {
	g, _ := newGuard(100*time.Millisecond, 10*time.Millisecond)
	defer g.ResetAll()

	g.Release("never_locked")
	assert.True(t, g.TryEnter("premium"))
	g.Release("premium")
	g.Release("premium")
}

func TestRelease_CancelsAutoReleaseTimer(t *testing.T) {
	g, _ := newGuard(100*time.Millisecond, 5*time.Millisecond)
	defer g.ResetAll()

	// Lock, release, relock: the first lock's timer must not fire and
	// strip the second lock.
	assert.True(t, g.TryEnter("premium"))
	g.Release("premium")
	time.Sleep(50 * time.Millisecond)
	assert.True(t, g.TryEnter("premium"))

	// Past the first timer's deadline but well within the second window.
	time.Sleep(70 * time.Millisecond)
	assert.False(t, g.TryEnter("premium"))
}

func TestExpire_StaleTimerLeavesRelockedKeyAlone(t *testing.T) {
	g, _ := newGuard(10*time.Second, 5*time.Millisecond)
	defer g.ResetAll()

	assert.True(t, g.TryEnter("premium"))
	g.mu.Lock()
	stale := g.locked["premium"]
	g.mu.Unlock()

	// Release and relock, then run the first acquisition's callback as
	// if its timer had fired late. The second lock must survive.
	g.Release("premium")
	time.Sleep(10 * time.Millisecond)
	assert.True(t, g.TryEnter("premium"))

	g.expire("premium", stale)
	time.Sleep(10 * time.Millisecond)
	assert.False(t, g.TryEnter("premium"))
}

func TestResetAll(t *testing.T) {
	g, _ := newGuard(10*time.Second, 10*time.Second)

	assert.True(t, g.TryEnter("a"))
	g.ResetAll()

	// Both the key lock and the global flag are gone.
	assert.True(t, g.TryEnter("a"))
	g.ResetAll()
}

func TestTryEnter_NoSideEffectsOnRejection(t *testing.T) {
	g, _ := newGuard(40*time.Millisecond, 5*time.Millisecond)
	defer g.ResetAll()

	assert.True(t, g.TryEnter("premium"))
	// The rejected call must not refresh the auto-release timer.
	time.Sleep(20 * time.Millisecond)
	assert.False(t, g.TryEnter("premium"))
	time.Sleep(30 * time.Millisecond)
	assert.True(t, g.TryEnter("premium"))
}
