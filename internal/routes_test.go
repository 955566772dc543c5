package internal

import (
	"net/http"
	"net/http/httptest"
	"paywall/internal/controllers"
	"paywall/internal/models"
	"paywall/internal/providers"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- minimal mocks for routes test ---

type routeTestLogger struct{}

func (m *routeTestLogger) Errorf(_ providers.TypeEnum, _ string, _ ...interface{}) {}
func (m *routeTestLogger) Warnf(_ providers.TypeEnum, _ string, _ ...interface{})  {}
func (m *routeTestLogger) Debugf(_ providers.TypeEnum, _ string, _ ...interface{}) {}
func (m *routeTestLogger) Infof(_ providers.TypeEnum, _ string, _ ...interface{})  {}
func (m *routeTestLogger) Fatalf(_ providers.TypeEnum, _ string, _ ...interface{}) {}
func (m *routeTestLogger) Close()                                                  {}

type routeTestOffers struct{}

func (m *routeTestOffers) Determine() *models.Offer { return nil }
func (m *routeTestOffers) Score() int               { return 0 }
func (m *routeTestOffers) ReconcilePremium() error  { return nil }

type routeTestEngagement struct{}

func (m *routeTestEngagement) GetMetrics() *models.EngagementMetrics {
	return models.NewEngagementMetrics(time.Now())
}
func (m *routeTestEngagement) TrackAction(_ string) {}
func (m *routeTestEngagement) TrackSession(_ int64) {}

type routeTestLedger struct{}

func (m *routeTestLedger) GetHistory() *models.OfferHistory { return &models.OfferHistory{} }
func (m *routeTestLedger) RecordOfferShown(_ *models.Offer) {}
func (m *routeTestLedger) RecordPurchase(_ float64) error { return nil }

type routeTestPrefs struct{}

func (m *routeTestPrefs) LoadOnce() *models.UserPreferences { return models.DefaultPreferences() }
func (m *routeTestPrefs) Snapshot() (*models.UserPreferences, bool) {
	return models.DefaultPreferences(), true
}
func (m *routeTestPrefs) SavePartial(_ *models.PreferencesDelta) (*models.UserPreferences, error) {
	return models.DefaultPreferences(), nil
}
func (m *routeTestPrefs) Subscribe(_ func(*models.UserPreferences)) func() { return func() {} }
func (m *routeTestPrefs) Premium() bool                                    { return false }
func (m *routeTestPrefs) SetPremium(_ bool) error                          { return nil }

type routeTestGuard struct{}

func (m *routeTestGuard) TryEnter(_ string) bool { return true }
func (m *routeTestGuard) Release(_ string)       {}
func (m *routeTestGuard) ResetAll()              {}

func newRouteTestController() *controllers.ApiController {
	return controllers.NewApiController(
		&routeTestLogger{},
		&routeTestOffers{},
		&routeTestEngagement{},
		&routeTestLedger{},
		&routeTestPrefs{},
		&routeTestGuard{},
	)
}

func TestInitRoutes_RegistersAllEndpoints(t *testing.T) {
	router := InitRoutes(newRouteTestController())
	routes := router.GetRoutes()

	// /preferences serves GET and PATCH through a single route.
	require.Len(t, routes, 10)

	urls := make([]string, len(routes))
	for i, r := range routes {
		urls[i] = r.Url
	}

	assert.Contains(t, urls, "/offer")
	assert.Contains(t, urls, "/offer/shown")
	assert.Contains(t, urls, "/purchase")
	assert.Contains(t, urls, "/track")
	assert.Contains(t, urls, "/session")
	assert.Contains(t, urls, "/insight")
	assert.Contains(t, urls, "/preferences")
	assert.Contains(t, urls, "/premium")
	assert.Contains(t, urls, "/guard/enter")
	assert.Contains(t, urls, "/guard/release")
}

func TestInitRoutes_MethodEnforcement(t *testing.T) {
	router := InitRoutes(newRouteTestController())

	mux := http.NewServeMux()
	for _, r := range router.GetRoutes() {
		mux.Handle(r.Url, r.Handler)
	}

	// GET /offer with POST should fail
	req := httptest.NewRequest(http.MethodPost, "/offer", nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)

	// POST /purchase with GET should fail
	req = httptest.NewRequest(http.MethodGet, "/purchase", nil)
	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestInitRoutes_PreferencesServesGetAndPatch(t *testing.T) {
	router := InitRoutes(newRouteTestController())

	mux := http.NewServeMux()
	for _, r := range router.GetRoutes() {
		mux.Handle(r.Url, r.Handler)
	}

	req := httptest.NewRequest(http.MethodGet, "/preferences", nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)

	req = httptest.NewRequest(http.MethodPost, "/preferences", nil)
	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}
