package models

import "time"

// BookingSettings is the persisted per-site booking configuration, edited from
// the site builder and served to the widget alongside slot listings.
type BookingSettings struct {
	SiteID              string         `bson:"siteId" json:"siteId"`
	Timezone            string         `bson:"timezone" json:"timezone"`
	SlotDurationMinutes int            `bson:"slotDurationMinutes" json:"slotDurationMinutes"`
	LookaheadDays       int            `bson:"lookaheadDays" json:"lookaheadDays"`
	WeeklySchedule      WeeklySchedule `bson:"weeklySchedule" json:"weeklySchedule"`
	Overrides           Overrides      `bson:"overrides,omitempty" json:"overrides,omitempty"`

	// DepositCents > 0 makes reservations payment-required via embedded checkout.
	DepositCents int64  `bson:"depositCents,omitempty" json:"depositCents,omitempty"`
	Currency     string `bson:"currency,omitempty" json:"currency,omitempty"`

	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Config projects the settings onto the widget-facing BookingConfig.
func (s BookingSettings) Config() BookingConfig {
	return BookingConfig{
		Timezone:            s.Timezone,
		SlotDurationMinutes: s.SlotDurationMinutes,
		LookaheadDays:       s.LookaheadDays,
		WeeklySchedule:      s.WeeklySchedule,
		Overrides:           s.Overrides,
	}
}
