package models

// DayHours describes one weekday of a site's weekly booking template.
// Open/Close are wall-clock times ("09:00") in the site's timezone.
type DayHours struct {
	Enabled bool   `bson:"enabled" json:"enabled"`
	Open    string `bson:"open,omitempty" json:"open,omitempty"`
	Close   string `bson:"close,omitempty" json:"close,omitempty"`
}

// WeeklySchedule maps day-of-week (0=Sunday .. 6=Saturday) to its hours.
// A missing entry means the day is closed.
type WeeklySchedule map[int]DayHours

// DateOverride supersedes the weekly template for one exact civil date,
// forcing it open or closed regardless of the weekday template.
type DateOverride struct {
	Enabled bool `bson:"enabled" json:"enabled"`
}

// Overrides maps "YYYY-MM-DD" civil dates to their one-off override.
type Overrides map[string]DateOverride

// BookingConfig is the slice of a site's booking settings the widget flow
// needs to compute bookable dates. The widget starts from a client default and
// replaces it once the first slot response carries the authoritative values.
type BookingConfig struct {
	Timezone            string         `json:"timezone"`
	SlotDurationMinutes int            `json:"slotDurationMinutes"`
	LookaheadDays       int            `json:"lookaheadDays"`
	WeeklySchedule      WeeklySchedule `json:"weeklySchedule"`
	Overrides           Overrides      `json:"overrides,omitempty"`
}
