package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEngagementScore_AllZero(t *testing.T) {
	m := NewEngagementMetrics(time.Now())
	assert.Equal(t, 0, EngagementScore(m))
}

func TestEngagementScore_SingleCounter(t *testing.T) {
	m := &EngagementMetrics{QRCodesCreated: 2}
	assert.Equal(t, 40, EngagementScore(m))
}

func TestEngagementScore_CapsPerCounter(t *testing.T) {
	// 1000 creations still contribute at most 100 before other terms.
	m := &EngagementMetrics{QRCodesCreated: 1000}
	assert.Equal(t, 100, EngagementScore(m))

	m = &EngagementMetrics{QRCodesEdited: 1000}
	assert.Equal(t, 50, EngagementScore(m))

	m = &EngagementMetrics{HistoryVisits: 1000}
	assert.Equal(t, 25, EngagementScore(m))

	m = &EngagementMetrics{SettingsOpened: 1000}
	assert.Equal(t, 15, EngagementScore(m))

	m = &EngagementMetrics{WallpapersExported: 1000}
	assert.Equal(t, 45, EngagementScore(m))

	m = &EngagementMetrics{SessionCount: 1000}
	assert.Equal(t, 20, EngagementScore(m))

	m = &EngagementMetrics{SecondarySlotAttempts: 1000}
	assert.Equal(t, 50, EngagementScore(m))
}

func TestEngagementScore_ClampedTo100(t *testing.T) {
	m := &EngagementMetrics{
		QRCodesCreated:        1000,
		QRCodesEdited:         1000,
		HistoryVisits:         1000,
		SettingsOpened:        1000,
		WallpapersExported:    1000,
		SessionCount:          1000,
		SecondarySlotAttempts: 1000,
		TotalTimeSpent:        1 << 40,
	}
	assert.Equal(t, 100, EngagementScore(m))
}

func TestEngagementScore_MonotonicInEachCounter(t *testing.T) {
	base := &EngagementMetrics{QRCodesCreated: 1, SessionCount: 2}
	baseScore := EngagementScore(base)

	inc := *base
	inc.QRCodesCreated++
	assert.GreaterOrEqual(t, EngagementScore(&inc), baseScore)

	inc = *base
	inc.HistoryVisits++
	assert.GreaterOrEqual(t, EngagementScore(&inc), baseScore)
}

func TestEngagementScore_LongSessionBonus(t *testing.T) {
	m := &EngagementMetrics{
		SessionCount:   1,
		TotalTimeSpent: 300_001,
	}
	// 1 session = 2 points, plus the 20 point bonus.
	assert.Equal(t, 22, EngagementScore(m))
}

func TestEngagementScore_NoBonusAtThreshold(t *testing.T) {
	m := &EngagementMetrics{
		SessionCount:   1,
		TotalTimeSpent: 300_000,
	}
	assert.Equal(t, 2, EngagementScore(m))
}

func TestEngagementScore_BonusWithZeroSessions(t *testing.T) {
	// No sessions recorded yet: average is the total itself.
	m := &EngagementMetrics{TotalTimeSpent: 500_000}
	assert.Equal(t, 20, EngagementScore(m))
}

func TestIncAction_KnownActions(t *testing.T) {
	now := time.Now()
	m := NewEngagementMetrics(now.Add(-time.Hour))

	assert.True(t, m.IncAction(ActionQRCreated, now))
	assert.True(t, m.IncAction(ActionQREdited, now))
	assert.True(t, m.IncAction(ActionHistoryVisit, now))
	assert.True(t, m.IncAction(ActionSettingsOpened, now))
	assert.True(t, m.IncAction(ActionWallpaperExported, now))
	assert.True(t, m.IncAction(ActionSecondarySlot, now))

	assert.Equal(t, 1, m.QRCodesCreated)
	assert.Equal(t, 1, m.QRCodesEdited)
	assert.Equal(t, 1, m.HistoryVisits)
	assert.Equal(t, 1, m.SettingsOpened)
	assert.Equal(t, 1, m.WallpapersExported)
	assert.Equal(t, 1, m.SecondarySlotAttempts)
	assert.Equal(t, now, m.LastActiveDate)
}

func TestIncAction_Unknown(t *testing.T) {
	now := time.Now()
	last := now.Add(-time.Hour)
	m := NewEngagementMetrics(last)

	assert.False(t, m.IncAction("not_a_counter", now))
	assert.Equal(t, last, m.LastActiveDate)
}

func TestIncSession(t *testing.T) {
	now := time.Now()
	m := NewEngagementMetrics(now.Add(-time.Hour))

	m.IncSession(120_000, now)
	assert.Equal(t, 1, m.SessionCount)
	assert.Equal(t, int64(120_000), m.TotalTimeSpent)
	assert.Equal(t, now, m.LastActiveDate)
}

func TestIncSession_NegativeDurationIgnored(t *testing.T) {
	m := NewEngagementMetrics(time.Now())
	m.IncSession(-500, time.Now())
	assert.Equal(t, 1, m.SessionCount)
	assert.Equal(t, int64(0), m.TotalTimeSpent)
}
