package testutil

import (
	"paywall/internal/providers"
	"sync"
	"time"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// Entries returns a copy of the recorded log entries.
func (m *MockLogger) Entries() []LogEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]LogEntry, len(m.Logs))
	copy(out, m.Logs)
	return out
}

// MockStore implements storage.StoreInterface in memory, counting
// reads per key so tests can assert on I/O behavior. GetHook, when
// set, runs inside Get before the data lookup; tests use it to block
// a read in flight.
type MockStore struct {
	mu      sync.Mutex
	Data    map[string][]byte
	Reads   map[string]int
	GetErr  error
	SetErr  error
	GetHook func(key string)
}

func NewMockStore() *MockStore {
	return &MockStore{
		Data:  make(map[string][]byte),
		Reads: make(map[string]int),
	}
}

func (m *MockStore) Get(key string) ([]byte, bool, error) {
	m.mu.Lock()
	m.Reads[key]++
	hook := m.GetHook
	m.mu.Unlock()

	if hook != nil {
		hook(key)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetErr != nil {
		return nil, false, m.GetErr
	}
	val, ok := m.Data[key]
	return val, ok, nil
}

func (m *MockStore) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SetErr != nil {
		return m.SetErr
	}
	m.Data[key] = append([]byte(nil), value...)
	return nil
}

func (m *MockStore) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Data, key)
	return nil
}

func (m *MockStore) ReadCount(key string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Reads[key]
}

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

func (m *MockCache) Del(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Data, key)
}

// MockMetrics implements providers.MetricsProviderInterface and counts
// calls by label.
type MockMetrics struct {
	mu                sync.Mutex
	Requests          int
	CacheHits         int
	CacheMisses       int
	ActionsTracked    map[string]int
	OffersGenerated   map[string]int
	OffersSuppressed  map[string]int
	PurchasesRecorded int
	GuardRejections   map[string]int
	StoreWrites       int
}

func NewMockMetrics() *MockMetrics {
	return &MockMetrics{
		ActionsTracked:   make(map[string]int),
		OffersGenerated:  make(map[string]int),
		OffersSuppressed: make(map[string]int),
		GuardRejections:  make(map[string]int),
	}
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Requests++
}

func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}

func (m *MockMetrics) IncCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits++
}

func (m *MockMetrics) IncCacheMisses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMisses++
}

func (m *MockMetrics) IncActionsTracked(action string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ActionsTracked[action]++
}

func (m *MockMetrics) IncOffersGenerated(trigger string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.OffersGenerated[trigger]++
}

func (m *MockMetrics) IncOffersSuppressed(reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.OffersSuppressed[reason]++
}

func (m *MockMetrics) IncPurchasesRecorded() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PurchasesRecorded++
}

func (m *MockMetrics) IncGuardRejections(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GuardRejections[key]++
}

func (m *MockMetrics) ObserveStoreWriteDuration(_ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StoreWrites++
}
