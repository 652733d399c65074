package timeline

import (
	"math"
	"time"

	"sitekit/models"
)

// Build folds one day's ordered slot list into display rows: every available
// slot becomes its own selectable row, while each maximal run of unavailable
// slots collapses into a single booked block. Input order (startTime
// ascending) is preserved.
func Build(slots []models.TimeSlot) []models.TimelineRow {
	rows := make([]models.TimelineRow, 0, len(slots))

	var bookedStart, bookedEnd time.Time
	open := false

	flush := func() {
		if !open {
			return
		}
		rows = append(rows, models.TimelineRow{
			Type:        models.RowBooked,
			StartTime:   bookedStart,
			EndTime:     bookedEnd,
			DurationMin: minutesBetween(bookedStart, bookedEnd),
		})
		open = false
	}

	for i := range slots {
		slot := slots[i]
		if !slot.Available {
			if open {
				bookedEnd = slot.EndTime
			} else {
				bookedStart, bookedEnd = slot.StartTime, slot.EndTime
				open = true
			}
			continue
		}
		flush()
		rows = append(rows, models.TimelineRow{
			Type:        models.RowAvailable,
			Slot:        &slot,
			StartTime:   slot.StartTime,
			EndTime:     slot.EndTime,
			DurationMin: minutesBetween(slot.StartTime, slot.EndTime),
		})
	}
	flush()

	return rows
}

// minutesBetween rounds to the nearest whole minute; the value only drives
// proportional sizing in the widget.
func minutesBetween(start, end time.Time) int {
	return int(math.Round(end.Sub(start).Minutes()))
}

// Summary distinguishes the two empty states the widget messages differently:
// a day with no slot grid at all versus a fully booked day.
type Summary struct {
	TotalSlots     int
	AvailableCount int
}

// Summarize counts a day's slots. Both zero-states suppress the timeline; the
// caller checks TotalSlots first, then AvailableCount.
func Summarize(slots []models.TimeSlot) Summary {
	s := Summary{TotalSlots: len(slots)}
	for _, slot := range slots {
		if slot.Available {
			s.AvailableCount++
		}
	}
	return s
}
