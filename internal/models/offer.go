package models

import "time"

// Offer triggers. Used both for UI messaging and for "already shown"
// de-duplication in the history.
const (
	TriggerLaunchDiscount  = "launch_discount"
	TriggerSecondarySlot   = "secondary_slot"
	TriggerHighEngagement  = "high_engagement"
	TriggerExportWallpaper = "export_wallpaper"
	TriggerLoyalUser       = "loyal_user"
)

// Reasons why an evaluation produced no offer.
const (
	ReasonPurchased = "purchased"
	ReasonCooldown  = "cooldown"
	ReasonNoTrigger = "no_trigger"
)

type Offer struct {
	Price        float64 `json:"price"`
	ProductID    string  `json:"productId"`
	DisplayPrice string  `json:"displayPrice"`
	Trigger      string  `json:"trigger"`
	Message      string  `json:"message"`
}

type OfferRecord struct {
	Date     time.Time `json:"date"`
	Price    float64   `json:"price"`
	Trigger  string    `json:"trigger"`
	Accepted bool      `json:"accepted"`
}

// OfferHistory is the append-only ledger of offers shown. Once
// PurchaseDate is set the history is terminal: no further offers are
// ever produced.
type OfferHistory struct {
	OffersShown   []OfferRecord `json:"offersShown"`
	LastOfferDate *time.Time    `json:"lastOfferDate,omitempty"`
	PurchaseDate  *time.Time    `json:"purchaseDate,omitempty"`
	PurchasePrice *float64      `json:"purchasePrice,omitempty"`
}

// HasTrigger reports whether an offer with the given trigger was ever shown.
func (h *OfferHistory) HasTrigger(trigger string) bool {
	for _, rec := range h.OffersShown {
		if rec.Trigger == trigger {
			return true
		}
	}
	return false
}

// RejectedCount counts offers shown and not accepted.
func (h *OfferHistory) RejectedCount() int {
	n := 0
	for _, rec := range h.OffersShown {
		if !rec.Accepted {
			n++
		}
	}
	return n
}

// Append records an offer as shown (not yet accepted).
func (h *OfferHistory) Append(offer *Offer, now time.Time) {
	h.OffersShown = append(h.OffersShown, OfferRecord{
		Date:    now,
		Price:   offer.Price,
		Trigger: offer.Trigger,
	})
	t := now
	h.LastOfferDate = &t
}

// MarkPurchased flips the most recent record to accepted and sets the
// terminal purchase state. A second call is a no-op.
func (h *OfferHistory) MarkPurchased(price float64, now time.Time) {
	if h.PurchaseDate != nil {
		return
	}
	if n := len(h.OffersShown); n > 0 {
		h.OffersShown[n-1].Accepted = true
	}
	t := now
	h.PurchaseDate = &t
	h.PurchasePrice = &price
}

func tierOffer(tier PricingTier, trigger, message string) *Offer {
	return &Offer{
		Price:        tier.Price,
		ProductID:    tier.ProductID,
		DisplayPrice: tier.Display,
		Trigger:      trigger,
		Message:      message,
	}
}

// PriceForScore resolves the dynamic price: higher engagement starts
// at a more expensive tier, and each rejection escalates to a cheaper
// one.
func PriceForScore(score, rejected int) PricingTier {
	switch {
	case score >= 80:
		switch {
		case rejected == 0:
			return TopTier()
		case rejected == 1:
			return MidTier()
		default:
			return BottomTier()
		}
	case score >= 50:
		if rejected == 0 {
			return MidTier()
		}
		return BottomTier()
	default:
		return BottomTier()
	}
}

// DetermineOffer evaluates the offer ladder in strict priority order,
// first match wins. Returns the offer, or nil and the reason none was
// produced.
func DetermineOffer(m *EngagementMetrics, h *OfferHistory, now, launchCutoff time.Time, cooldown time.Duration) (*Offer, string) {
	// The launch window bypasses every other check, including the
	// terminal purchase state.
	if !launchCutoff.IsZero() && now.Before(launchCutoff) {
		return tierOffer(BottomTier(), TriggerLaunchDiscount, "Launch special: unlock everything"), ""
	}

	if h.PurchaseDate != nil {
		return nil, ReasonPurchased
	}

	if h.LastOfferDate != nil && now.Sub(*h.LastOfferDate) < cooldown {
		return nil, ReasonCooldown
	}

	score := EngagementScore(m)

	if m.SecondarySlotAttempts >= 2 && !h.HasTrigger(TriggerSecondarySlot) {
		return tierOffer(MidTier(), TriggerSecondarySlot, "Unlock the second wallpaper slot"), ""
	}

	if m.QRCodesCreated >= 3 && score >= 50 {
		tier := PriceForScore(score, h.RejectedCount())
		return tierOffer(tier, TriggerHighEngagement, "You're a power user, go premium"), ""
	}

	if m.WallpapersExported >= 2 && !h.HasTrigger(TriggerExportWallpaper) {
		return tierOffer(TopTier(), TriggerExportWallpaper, "Export without limits"), ""
	}

	if now.Sub(m.FirstUseDate) >= 7*24*time.Hour && m.SessionCount >= 5 && score >= 30 {
		tier := PriceForScore(score, h.RejectedCount())
		return tierOffer(tier, TriggerLoyalUser, "Thanks for sticking around: premium, on us"), ""
	}

	return nil, ReasonNoTrigger
}
