package providers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type mockMetrics struct {
	requestEndpoint string
	requestStatus   int
	requestCalls    int
	durationCalls   int
}

func (m *mockMetrics) IncRequestsTotal(endpoint string, status int) {
	m.requestEndpoint = endpoint
	m.requestStatus = status
	m.requestCalls++
}
func (m *mockMetrics) ObserveRequestDuration(_ string, _ time.Duration) { m.durationCalls++ }
func (m *mockMetrics) IncCacheHits()                                    {}
func (m *mockMetrics) IncCacheMisses()                                  {}
func (m *mockMetrics) IncActionsTracked(_ string)                       {}
func (m *mockMetrics) IncOffersGenerated(_ string)                      {}
func (m *mockMetrics) IncOffersSuppressed(_ string)                     {}
func (m *mockMetrics) IncPurchasesRecorded()                            {}
func (m *mockMetrics) IncGuardRejections(_ string)                      {}
func (m *mockMetrics) ObserveStoreWriteDuration(_ time.Duration)        {}

type mwTestLogger struct {
	errors []string
	debugs []string
}

func (l *mwTestLogger) Errorf(_ TypeEnum, format string, args ...interface{}) {
	l.errors = append(l.errors, fmt.Sprintf(format, args...))
}
func (l *mwTestLogger) Warnf(_ TypeEnum, _ string, _ ...interface{}) {}
func (l *mwTestLogger) Infof(_ TypeEnum, _ string, _ ...interface{}) {}
func (l *mwTestLogger) Debugf(_ TypeEnum, format string, args ...interface{}) {
	l.debugs = append(l.debugs, fmt.Sprintf(format, args...))
}
func (l *mwTestLogger) Fatalf(_ TypeEnum, _ string, _ ...interface{}) {}
func (l *mwTestLogger) Close()                                        {}

func TestMetricsMiddleware_CapturesStatusAndEndpoint(t *testing.T) {
	metrics := &mockMetrics{}
	logger := &mwTestLogger{}

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})

	mw := MetricsMiddleware(logger, metrics, handler)

	req := httptest.NewRequest(http.MethodGet, "/offer", nil)
	rr := httptest.NewRecorder()
	mw.ServeHTTP(rr, req)

	assert.Equal(t, 1, metrics.requestCalls)
	assert.Equal(t, "/offer", metrics.requestEndpoint)
	assert.Equal(t, http.StatusCreated, metrics.requestStatus)
	assert.Equal(t, 1, metrics.durationCalls)
}

func TestMetricsMiddleware_DefaultStatus200(t *testing.T) {
	metrics := &mockMetrics{}

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	mw := MetricsMiddleware(&mwTestLogger{}, metrics, handler)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rr := httptest.NewRecorder()
	mw.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, metrics.requestStatus)
}

func TestMetricsMiddleware_LogsRequests(t *testing.T) {
	logger := &mwTestLogger{}

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	mw := MetricsMiddleware(logger, &mockMetrics{}, handler)

	req := httptest.NewRequest(http.MethodPost, "/track", nil)
	mw.ServeHTTP(httptest.NewRecorder(), req)

	assert.Empty(t, logger.errors)
	assert.Len(t, logger.debugs, 1)
	assert.Contains(t, logger.debugs[0], "POST /track -> 204")
}

func TestMetricsMiddleware_LogsServerErrors(t *testing.T) {
	logger := &mwTestLogger{}

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	mw := MetricsMiddleware(logger, &mockMetrics{}, handler)

	req := httptest.NewRequest(http.MethodGet, "/offer", nil)
	mw.ServeHTTP(httptest.NewRecorder(), req)

	assert.Empty(t, logger.debugs)
	assert.Len(t, logger.errors, 1)
	assert.Contains(t, logger.errors[0], "GET /offer -> 500")
}

func TestStatusWriter_WriteHeader(t *testing.T) {
	rr := httptest.NewRecorder()
	sw := &statusWriter{ResponseWriter: rr, status: http.StatusOK}

	sw.WriteHeader(http.StatusNotFound)
	assert.Equal(t, http.StatusNotFound, sw.status)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
