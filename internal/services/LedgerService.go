package services

import (
	"paywall/internal/models"
	"paywall/internal/providers"
	"paywall/internal/storage"
	"sync"
	"time"

	json "github.com/goccy/go-json"
)

type LedgerServiceInterface interface {
	GetHistory() *models.OfferHistory
	RecordOfferShown(offer *models.Offer)
	RecordPurchase(price float64) error
}

// LedgerService persists the offer history. Offer-shown writes are
// swallowed like engagement tracking; RecordPurchase surfaces its
// write error because the caller must know the terminal state did not
// stick.
type LedgerService struct {
	store   storage.StoreInterface
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
	mu      sync.Mutex
	now     func() time.Time
}

func NewLedgerService(store storage.StoreInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) LedgerServiceInterface {
	return &LedgerService{
		store:   store,
		logger:  logger,
		metrics: metrics,
		now:     time.Now,
	}
}

func (ls *LedgerService) load() *models.OfferHistory {
	data, ok, err := ls.store.Get(KeyOfferHistory)
	if err != nil {
		ls.logger.Errorf(providers.TypeStore, "Failed to read offer history: %s", err)
		return &models.OfferHistory{}
	}
	if !ok {
		return &models.OfferHistory{}
	}

	var h models.OfferHistory
	if err := json.Unmarshal(data, &h); err != nil {
		ls.logger.Warnf(providers.TypeStore, "Corrupt offer history record, starting fresh: %s", err)
		return &models.OfferHistory{}
	}
	return &h
}

func (ls *LedgerService) persist(h *models.OfferHistory) error {
	data, err := json.Marshal(h)
	if err != nil {
		return err
	}
	return ls.store.Set(KeyOfferHistory, data)
}

func (ls *LedgerService) GetHistory() *models.OfferHistory {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	return ls.load()
}

func (ls *LedgerService) RecordOfferShown(offer *models.Offer) {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	h := ls.load()
	h.Append(offer, ls.now())
	if err := ls.persist(h); err != nil {
		ls.logger.Errorf(providers.TypeStore, "Failed to persist offer history: %s", err)
	}
}

func (ls *LedgerService) RecordPurchase(price float64) error {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	h := ls.load()
	h.MarkPurchased(price, ls.now())
	if err := ls.persist(h); err != nil {
		ls.logger.Errorf(providers.TypeStore, "Failed to persist purchase: %s", err)
		return err
	}
	ls.metrics.IncPurchasesRecorded()
	return nil
}
