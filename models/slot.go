package models

import "time"

// TimeSlot is one fixed-duration interval of a single civil day, tagged with
// whether it can still be booked. Slots are contiguous, non-overlapping and
// ordered by StartTime.
type TimeSlot struct {
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Available bool      `json:"available"`
}

// Timeline row kinds.
const (
	RowAvailable = "available"
	RowBooked    = "booked"
)

// TimelineRow is a display-oriented grouping of slots: an available slot stays
// individually selectable, while a maximal run of unavailable slots collapses
// into one booked block. DurationMin drives proportional rendering only.
type TimelineRow struct {
	Type        string    `json:"type"`
	Slot        *TimeSlot `json:"slot,omitempty"`
	StartTime   time.Time `json:"startTime"`
	EndTime     time.Time `json:"endTime"`
	DurationMin int       `json:"durationMin"`
}
