package services

// Logical keys in the durable store. Each is persisted independently;
// the store is not transactional across them.
const (
	KeyEngagementMetrics = "engagement_metrics"
	KeyOfferHistory      = "offer_history"
	KeyUserPreferences   = "user_preferences"
	KeyPremiumStatus     = "premium_status"
)
