package services

import (
	"paywall/internal/models"
	"paywall/internal/providers"
	"paywall/internal/structures"
	"time"
)

type OfferServiceInterface interface {
	Determine() *models.Offer
	Score() int
	ReconcilePremium() error
}

// OfferService evaluates the offer ladder against the current metrics
// and history. Determine never fails outward: it is called from
// UI-facing paths that must not crash on a storage hiccup, so reads
// degrade to defaults inside the stores.
type OfferService struct {
	engagement EngagementServiceInterface
	ledger     LedgerServiceInterface
	prefs      PreferencesServiceInterface
	logger     providers.Logger
	metrics    providers.MetricsProviderInterface

	launchCutoff time.Time
	cooldown     time.Duration
	now          func() time.Time
}

func NewOfferService(conf *structures.Config, logger providers.Logger, metrics providers.MetricsProviderInterface, engagement EngagementServiceInterface, ledger LedgerServiceInterface, prefs PreferencesServiceInterface) OfferServiceInterface {
	var cutoff time.Time
	if conf.Offer.LaunchCutoff != "" {
		parsed, err := time.Parse(time.RFC3339, conf.Offer.LaunchCutoff)
		if err != nil {
			logger.Errorf(providers.TypeOffer, "Invalid launch cutoff %q, launch window disabled: %s", conf.Offer.LaunchCutoff, err)
		} else {
			cutoff = parsed
		}
	}

	return &OfferService{
		engagement:   engagement,
		ledger:       ledger,
		prefs:        prefs,
		logger:       logger,
		metrics:      metrics,
		launchCutoff: cutoff,
		cooldown:     conf.Offer.Cooldown,
		now:          time.Now,
	}
}

func (s *OfferService) Determine() *models.Offer {
	m := s.engagement.GetMetrics()
	h := s.ledger.GetHistory()

	offer, reason := models.DetermineOffer(m, h, s.now(), s.launchCutoff, s.cooldown)
	if offer == nil {
		s.metrics.IncOffersSuppressed(reason)
		s.logger.Debugf(providers.TypeOffer, "No offer: %s", reason)
		return nil
	}

	s.metrics.IncOffersGenerated(offer.Trigger)
	s.logger.Infof(providers.TypeOffer, "Offer generated: trigger=%s price=%.2f", offer.Trigger, offer.Price)
	return offer
}

func (s *OfferService) Score() int {
	return models.EngagementScore(s.engagement.GetMetrics())
}

// ReconcilePremium repairs a recorded purchase whose premium flag was
// lost, e.g. a crash between the two non-atomic writes. Called once at
// startup.
func (s *OfferService) ReconcilePremium() error {
	h := s.ledger.GetHistory()
	if h.PurchaseDate == nil || s.prefs.Premium() {
		return nil
	}
	s.logger.Warnf(providers.TypeOffer, "Purchase recorded but premium flag unset, repairing")
	return s.prefs.SetPremium(true)
}
