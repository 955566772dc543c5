package models

// Slot layout modes. Double-slot layouts shrink both images, so their
// minimum scale floor is higher.
const (
	SlotModeSingle = "single"
	SlotModeDouble = "double"
)

const (
	MinScaleSingle = 0.5
	MinScaleDouble = 0.7
	MaxScale       = 2.0
)

// Background types selectable in the editor.
const (
	BackgroundGradient = "gradient"
	BackgroundSolid    = "solid"
	BackgroundImage    = "image"
)

// UserPreferences is the aggregate preferences record. Positions are
// percentages in [0,100]; Scale is bounded below by the slot-mode
// floor. The legacy offset fields are migrated to positions once on
// read and never re-persisted.
type UserPreferences struct {
	ThemeID        string  `json:"themeId"`
	BackgroundType string  `json:"backgroundType"`
	SlotMode       string  `json:"slotMode"`
	PrimaryImage   string  `json:"primaryImage,omitempty"`
	SecondaryImage string  `json:"secondaryImage,omitempty"`
	PositionX      float64 `json:"positionX"`
	PositionY      float64 `json:"positionY"`
	Scale          float64 `json:"scale"`
	ShowBranding   bool    `json:"showBranding"`
	ShowDate       bool    `json:"showDate"`

	// Legacy center-relative offsets from the old record layout.
	LegacyOffsetX *float64 `json:"offsetX,omitempty"`
	LegacyOffsetY *float64 `json:"offsetY,omitempty"`
}

func DefaultPreferences() *UserPreferences {
	return &UserPreferences{
		ThemeID:        "classic",
		BackgroundType: BackgroundGradient,
		SlotMode:       SlotModeSingle,
		PositionX:      50,
		PositionY:      50,
		Scale:          1.0,
		ShowDate:       true,
	}
}

func (p *UserPreferences) Clone() *UserPreferences {
	cp := *p
	return &cp
}

// MinScale returns the scale floor for a slot mode.
func MinScale(slotMode string) float64 {
	if slotMode == SlotModeDouble {
		return MinScaleDouble
	}
	return MinScaleSingle
}

func clampPosition(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// Migrate converts the legacy offset representation to positions.
// Returns true if a conversion happened, so the caller can re-persist
// the record once with the legacy fields dropped.
func (p *UserPreferences) Migrate() bool {
	if p.LegacyOffsetX == nil && p.LegacyOffsetY == nil {
		return false
	}
	if p.LegacyOffsetX != nil {
		p.PositionX = clampPosition(50 + *p.LegacyOffsetX)
		p.LegacyOffsetX = nil
	}
	if p.LegacyOffsetY != nil {
		p.PositionY = clampPosition(50 + *p.LegacyOffsetY)
		p.LegacyOffsetY = nil
	}
	return true
}

// Normalize corrects out-of-range fields in place. Malformed values
// are clamped or defaulted, never rejected.
func (p *UserPreferences) Normalize() {
	if p.SlotMode != SlotModeSingle && p.SlotMode != SlotModeDouble {
		p.SlotMode = SlotModeSingle
	}
	switch p.BackgroundType {
	case BackgroundGradient, BackgroundSolid, BackgroundImage:
	default:
		p.BackgroundType = BackgroundGradient
	}
	p.PositionX = clampPosition(p.PositionX)
	p.PositionY = clampPosition(p.PositionY)

	floor := MinScale(p.SlotMode)
	if p.Scale < floor {
		p.Scale = floor
	}
	if p.Scale > MaxScale {
		p.Scale = MaxScale
	}
}

// PreferencesDelta is a partial update: nil fields are left unchanged.
type PreferencesDelta struct {
	ThemeID        *string  `json:"themeId,omitempty"`
	BackgroundType *string  `json:"backgroundType,omitempty"`
	SlotMode       *string  `json:"slotMode,omitempty"`
	PrimaryImage   *string  `json:"primaryImage,omitempty"`
	SecondaryImage *string  `json:"secondaryImage,omitempty"`
	PositionX      *float64 `json:"positionX,omitempty"`
	PositionY      *float64 `json:"positionY,omitempty"`
	Scale          *float64 `json:"scale,omitempty"`
	ShowBranding   *bool    `json:"showBranding,omitempty"`
	ShowDate       *bool    `json:"showDate,omitempty"`
}

// Apply merges the delta over a snapshot in place.
func (d *PreferencesDelta) Apply(p *UserPreferences) {
	if d.ThemeID != nil {
		p.ThemeID = *d.ThemeID
	}
	if d.BackgroundType != nil {
		p.BackgroundType = *d.BackgroundType
	}
	if d.SlotMode != nil {
		p.SlotMode = *d.SlotMode
	}
	if d.PrimaryImage != nil {
		p.PrimaryImage = *d.PrimaryImage
	}
	if d.SecondaryImage != nil {
		p.SecondaryImage = *d.SecondaryImage
	}
	if d.PositionX != nil {
		p.PositionX = *d.PositionX
	}
	if d.PositionY != nil {
		p.PositionY = *d.PositionY
	}
	if d.Scale != nil {
		p.Scale = *d.Scale
	}
	if d.ShowBranding != nil {
		p.ShowBranding = *d.ShowBranding
	}
	if d.ShowDate != nil {
		p.ShowDate = *d.ShowDate
	}
}
