package services

import (
	"paywall/internal/models"
	"paywall/internal/providers"
	"paywall/internal/storage"
	"sync"
	"time"

	json "github.com/goccy/go-json"
)

type EngagementServiceInterface interface {
	GetMetrics() *models.EngagementMetrics
	TrackAction(action string)
	TrackSession(durationMs int64)
}

// EngagementService persists the engagement counters. Tracking is
// fire-and-forget: a lost event must never block or break the caller,
// so persistence failures are logged and swallowed.
type EngagementService struct {
	store   storage.StoreInterface
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
	mu      sync.Mutex
	now     func() time.Time
}

func NewEngagementService(store storage.StoreInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) EngagementServiceInterface {
	return &EngagementService{
		store:   store,
		logger:  logger,
		metrics: metrics,
		now:     time.Now,
	}
}

// load reads the metrics record. existed reports whether a usable
// record was decoded; readFailed marks a store read error, where the
// durable record may still be intact and must not be overwritten. An
// absent or corrupt record degrades to a fresh one with readFailed
// false.
func (es *EngagementService) load() (m *models.EngagementMetrics, existed, readFailed bool) {
	data, ok, err := es.store.Get(KeyEngagementMetrics)
	if err != nil {
		es.logger.Errorf(providers.TypeStore, "Failed to read engagement metrics: %s", err)
		return models.NewEngagementMetrics(es.now()), false, true
	}
	if !ok {
		return models.NewEngagementMetrics(es.now()), false, false
	}

	var rec models.EngagementMetrics
	if err := json.Unmarshal(data, &rec); err != nil {
		es.logger.Warnf(providers.TypeStore, "Corrupt engagement metrics record, starting fresh: %s", err)
		return models.NewEngagementMetrics(es.now()), false, false
	}
	return &rec, true, false
}

func (es *EngagementService) persist(m *models.EngagementMetrics) {
	data, err := json.Marshal(m)
	if err != nil {
		es.logger.Errorf(providers.TypeStore, "Failed to encode engagement metrics: %s", err)
		return
	}
	if err := es.store.Set(KeyEngagementMetrics, data); err != nil {
		es.logger.Errorf(providers.TypeStore, "Failed to persist engagement metrics: %s", err)
	}
}

func (es *EngagementService) GetMetrics() *models.EngagementMetrics {
	es.mu.Lock()
	defer es.mu.Unlock()

	m, existed, readFailed := es.load()
	if !existed && !readFailed {
		// First access creates the record with FirstUseDate pinned. A
		// failed read keeps the fresh record in memory only, so a
		// transient error cannot clobber real counters on disk.
		es.persist(m)
	}
	return m
}

func (es *EngagementService) TrackAction(action string) {
	es.mu.Lock()
	defer es.mu.Unlock()

	m, _, readFailed := es.load()
	if readFailed {
		// Dropping one event beats overwriting the durable counters.
		return
	}
	if !m.IncAction(action, es.now()) {
		es.logger.Warnf(providers.TypeApp, "Unknown engagement action: %s", action)
		return
	}
	es.persist(m)
	es.metrics.IncActionsTracked(action)
}

func (es *EngagementService) TrackSession(durationMs int64) {
	es.mu.Lock()
	defer es.mu.Unlock()

	m, _, readFailed := es.load()
	if readFailed {
		return
	}
	m.IncSession(durationMs, es.now())
	es.persist(m)
	es.metrics.IncActionsTracked("session")
}
