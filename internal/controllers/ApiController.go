package controllers

import (
	"net/http"
	"paywall/internal/guard"
	"paywall/internal/models"
	"paywall/internal/providers"
	"paywall/internal/services"

	json "github.com/goccy/go-json"
	"github.com/spf13/cast"
)

const maxRequestBodySize = 1 << 20 // 1 MB

// GuardKeyPurchase serializes the purchase flow against duplicate taps.
const GuardKeyPurchase = "purchase"

type ApiController struct {
	logger     providers.Logger
	offers     services.OfferServiceInterface
	engagement services.EngagementServiceInterface
	ledger     services.LedgerServiceInterface
	prefs      services.PreferencesServiceInterface
	guard      guard.ActionGuardInterface
}

func NewApiController(logger providers.Logger, offers services.OfferServiceInterface, engagement services.EngagementServiceInterface, ledger services.LedgerServiceInterface, prefs services.PreferencesServiceInterface, actionGuard guard.ActionGuardInterface) *ApiController {
	return &ApiController{
		logger:     logger,
		offers:     offers,
		engagement: engagement,
		ledger:     ledger,
		prefs:      prefs,
		guard:      actionGuard,
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	gson, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(gson)
}

// decodeLoose decodes a JSON object without committing to field types;
// mobile clients send numbers both as strings and as numbers.
func decodeLoose(w http.ResponseWriter, r *http.Request) (map[string]interface{}, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var payload map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return nil, false
	}
	return payload, true
}

// GetOffer evaluates the offer ladder. The body is {"offer": null}
// when no offer applies; evaluation itself never fails.
func (ac *ApiController) GetOffer(w http.ResponseWriter, r *http.Request) {
	offer := ac.offers.Determine()
	writeJSON(w, http.StatusOK, map[string]any{"offer": offer})
}

func (ac *ApiController) OfferShown(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var offer models.Offer
	if err := json.NewDecoder(r.Body).Decode(&offer); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	if offer.Trigger == "" {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	ac.ledger.RecordOfferShown(&offer)
	w.WriteHeader(http.StatusCreated)
}

// Purchase is the callback after a successful platform transaction: it
// records the terminal purchase state and flips the premium flag. The
// flow is guarded so duplicate rapid taps cannot double-record.
func (ac *ApiController) Purchase(w http.ResponseWriter, r *http.Request) {
	if !ac.guard.TryEnter(GuardKeyPurchase) {
		http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
		return
	}
	defer ac.guard.Release(GuardKeyPurchase)

	payload, ok := decodeLoose(w, r)
	if !ok {
		return
	}
	price := cast.ToFloat64(payload["price"])
	if price <= 0 {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	if err := ac.ledger.RecordPurchase(price); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if err := ac.prefs.SetPremium(true); err != nil {
		ac.logger.Errorf(providers.TypeStore, "Purchase recorded but premium flag write failed: %s", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (ac *ApiController) Track(w http.ResponseWriter, r *http.Request) {
	payload, ok := decodeLoose(w, r)
	if !ok {
		return
	}
	action := cast.ToString(payload["action"])
	if action == "" {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	ac.engagement.TrackAction(action)
	w.WriteHeader(http.StatusAccepted)
}

func (ac *ApiController) Session(w http.ResponseWriter, r *http.Request) {
	payload, ok := decodeLoose(w, r)
	if !ok {
		return
	}
	ac.engagement.TrackSession(cast.ToInt64(payload["durationMs"]))
	w.WriteHeader(http.StatusAccepted)
}

// Insight exposes the score and raw counters for the UI's engagement
// display.
func (ac *ApiController) Insight(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"score":   ac.offers.Score(),
		"metrics": ac.engagement.GetMetrics(),
	})
}

func (ac *ApiController) GetPreferences(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ac.prefs.LoadOnce())
}

func (ac *ApiController) PatchPreferences(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var delta models.PreferencesDelta
	if err := json.NewDecoder(r.Body).Decode(&delta); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	merged, err := ac.prefs.SavePartial(&delta)
	if err != nil {
		ac.logger.Errorf(providers.TypeStore, "Preference write failed: %s", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, merged)
}

func (ac *ApiController) Premium(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"premium": ac.prefs.Premium()})
}

// GuardEnter lets the host app claim a one-shot transition key, e.g.
// before opening the offer screen. Contention is a normal false, not
// an error status.
func (ac *ApiController) GuardEnter(w http.ResponseWriter, r *http.Request) {
	payload, ok := decodeLoose(w, r)
	if !ok {
		return
	}
	key := cast.ToString(payload["key"])
	if key == "" {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"granted": ac.guard.TryEnter(key)})
}

func (ac *ApiController) GuardRelease(w http.ResponseWriter, r *http.Request) {
	payload, ok := decodeLoose(w, r)
	if !ok {
		return
	}
	key := cast.ToString(payload["key"])
	if key == "" {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	ac.guard.Release(key)
	w.WriteHeader(http.StatusNoContent)
}
