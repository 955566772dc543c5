package guard

import (
	"paywall/internal/providers"
	"paywall/internal/structures"
	"sync"
	"time"

	"go.uber.org/atomic"
)

type ActionGuardInterface interface {
	TryEnter(key string) bool
	Release(key string)
	ResetAll()
}

// ActionGuard gives one-shot UI transitions a bounded mutual-exclusion
// window. A key stays locked until released or until its auto-release
// timer fires, so a caller that forgets Release cannot wedge the
// action permanently. A short global flag additionally throttles rapid
// triggers across distinct keys.
type ActionGuard struct {
	mu      sync.Mutex
	locked  map[string]*time.Timer
	global  atomic.Bool
	gTimer  *time.Timer
	lockWin time.Duration
	gWin    time.Duration
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
}

func NewActionGuard(conf *structures.Config, logger providers.Logger, metrics providers.MetricsProviderInterface) ActionGuardInterface {
	return &ActionGuard{
		locked:  make(map[string]*time.Timer),
		lockWin: conf.Guard.LockWindow,
		gWin:    conf.Guard.GlobalWindow,
		logger:  logger,
		metrics: metrics,
	}
}

// TryEnter locks the key and arms its auto-release timer. Returns
// false without side effects when the key is already locked or the
// global throttle window is open. Contention is a normal outcome, not
// an error.
func (g *ActionGuard) TryEnter(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.global.Load() {
		g.metrics.IncGuardRejections(key)
		return false
	}
	if _, ok := g.locked[key]; ok {
		g.metrics.IncGuardRejections(key)
		g.logger.Debugf(providers.TypeGuard, "Duplicate trigger suppressed: %s", key)
		return false
	}

	var t *time.Timer
	t = time.AfterFunc(g.lockWin, func() {
		g.expire(key, t)
	})
	g.locked[key] = t

	g.global.Store(true)
	if g.gTimer != nil {
		g.gTimer.Stop()
	}
	g.gTimer = time.AfterFunc(g.gWin, func() {
		g.global.Store(false)
	})

	return true
}

// expire only releases the acquisition that armed it. The key may have
// been released and re-taken while this callback waited on the mutex;
// in that case the current lock belongs to someone else and stays.
func (g *ActionGuard) expire(key string, owner *time.Timer) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.locked[key] == owner {
		delete(g.locked, key)
		g.logger.Debugf(providers.TypeGuard, "Lock auto-released: %s", key)
	}
}

// Release clears the lock and cancels its timer. Idempotent.
func (g *ActionGuard) Release(key string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if t, ok := g.locked[key]; ok {
		t.Stop()
		delete(g.locked, key)
	}
}

// ResetAll clears every lock and timer. Called at teardown so no timer
// outlives the owning lifecycle.
func (g *ActionGuard) ResetAll() {
	g.mu.Lock()
	defer g.mu.Unlock()
	for key, t := range g.locked {
		t.Stop()
		delete(g.locked, key)
	}
	if g.gTimer != nil {
		g.gTimer.Stop()
		g.gTimer = nil
	}
	g.global.Store(false)
}
