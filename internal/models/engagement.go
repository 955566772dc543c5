package models

import "time"

// Tracked engagement actions. Each maps to one counter on EngagementMetrics.
const (
	ActionQRCreated         = "qr_created"
	ActionQREdited          = "qr_edited"
	ActionHistoryVisit      = "history_visit"
	ActionSettingsOpened    = "settings_opened"
	ActionWallpaperExported = "wallpaper_exported"
	ActionSecondarySlot     = "secondary_slot_attempt"
)

// EngagementMetrics is one record per installation. Counters only grow;
// FirstUseDate is set once when the record is first created.
type EngagementMetrics struct {
	QRCodesCreated        int       `json:"qrCodesCreated"`
	QRCodesEdited         int       `json:"qrCodesEdited"`
	HistoryVisits         int       `json:"historyVisits"`
	SettingsOpened        int       `json:"settingsOpened"`
	WallpapersExported    int       `json:"wallpapersExported"`
	SessionCount          int       `json:"sessionCount"`
	SecondarySlotAttempts int       `json:"secondarySlotAttempts"`
	TotalTimeSpent        int64     `json:"totalTimeSpent"`
	FirstUseDate          time.Time `json:"firstUseDate"`
	LastActiveDate        time.Time `json:"lastActiveDate"`
}

func NewEngagementMetrics(now time.Time) *EngagementMetrics {
	return &EngagementMetrics{
		FirstUseDate:   now,
		LastActiveDate: now,
	}
}

// IncAction increments the counter for a named action and refreshes
// LastActiveDate. Returns false for unknown action names.
func (m *EngagementMetrics) IncAction(action string, now time.Time) bool {
	switch action {
	case ActionQRCreated:
		m.QRCodesCreated++
	case ActionQREdited:
		m.QRCodesEdited++
	case ActionHistoryVisit:
		m.HistoryVisits++
	case ActionSettingsOpened:
		m.SettingsOpened++
	case ActionWallpaperExported:
		m.WallpapersExported++
	case ActionSecondarySlot:
		m.SecondarySlotAttempts++
	default:
		return false
	}
	m.LastActiveDate = now
	return true
}

// IncSession adds one session of the given duration and refreshes
// LastActiveDate.
func (m *EngagementMetrics) IncSession(durationMs int64, now time.Time) {
	m.SessionCount++
	if durationMs > 0 {
		m.TotalTimeSpent += durationMs
	}
	m.LastActiveDate = now
}

// longSessionMs is the average session duration above which the score
// gets a flat engagement bonus.
const longSessionMs = 300_000

// EngagementScore computes the 0..100 engagement score: a weighted sum
// of counters, each contribution individually capped, plus a bonus for
// long average sessions.
func EngagementScore(m *EngagementMetrics) int {
	score := 0
	score += min(m.QRCodesCreated*20, 100)
	score += min(m.QRCodesEdited*10, 50)
	score += min(m.HistoryVisits*5, 25)
	score += min(m.SettingsOpened*3, 15)
	score += min(m.WallpapersExported*15, 45)
	score += min(m.SessionCount*2, 20)
	score += min(m.SecondarySlotAttempts*25, 50)

	avgSession := m.TotalTimeSpent / max(int64(m.SessionCount), 1)
	if avgSession > longSessionMs {
		score += 20
	}

	return min(max(score, 0), 100)
}
