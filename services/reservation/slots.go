package reservation

import (
	"fmt"
	"time"

	"sitekit/models"
	"sitekit/services/schedule"
)

// Hours applied when a date override opens a day whose weekday template
// carries no working hours of its own.
const (
	fallbackOpen  = "09:00"
	fallbackClose = "17:00"
)

// dayHoursFor resolves the working hours of an open date: the weekday
// template's hours when present, the fallback otherwise (an override can open
// a weekday the template never configured).
func dayHoursFor(settings models.BookingSettings, date string) (models.DayHours, bool) {
	if !schedule.IsBusinessDay(date, settings.WeeklySchedule, settings.Overrides) {
		return models.DayHours{}, false
	}
	wd, ok := schedule.Weekday(date)
	if !ok {
		return models.DayHours{}, false
	}
	day := settings.WeeklySchedule[wd]
	if day.Open == "" || day.Close == "" {
		day.Open, day.Close = fallbackOpen, fallbackClose
	}
	return day, true
}

// buildDayGrid instantiates the fixed-duration slot grid of one civil day in
// the site's timezone. A closed day yields an empty grid, not an error.
func buildDayGrid(settings models.BookingSettings, date string) ([]models.TimeSlot, error) {
	day, open := dayHoursFor(settings, date)
	if !open {
		return nil, nil
	}

	loc := schedule.Location(settings.Timezone)
	dayStart, err := wallClock(date, day.Open, loc)
	if err != nil {
		return nil, fmt.Errorf("invalid opening time for %s: %w", date, err)
	}
	dayEnd, err := wallClock(date, day.Close, loc)
	if err != nil {
		return nil, fmt.Errorf("invalid closing time for %s: %w", date, err)
	}

	step := time.Duration(settings.SlotDurationMinutes) * time.Minute
	if step <= 0 {
		return nil, NewSlotError("slot duration must be positive")
	}

	var slots []models.TimeSlot
	for t := dayStart; !t.Add(step).After(dayEnd); t = t.Add(step) {
		slots = append(slots, models.TimeSlot{
			StartTime: t,
			EndTime:   t.Add(step),
			Available: true,
		})
	}
	return slots, nil
}

// markBooked flags grid slots that overlap a live reservation. Half-open
// interval overlap, matching how the grid is laid out.
func markBooked(slots []models.TimeSlot, reservations []models.Reservation) {
	for i := range slots {
		for _, r := range reservations {
			if r.Status == models.ReservationCancelled {
				continue
			}
			if slots[i].StartTime.Before(r.EndTime) && r.StartTime.Before(slots[i].EndTime) {
				slots[i].Available = false
				break
			}
		}
	}
}

// wallClock combines a civil date and an "HH:MM" wall-clock string into an
// instant in loc.
func wallClock(date, hhmm string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation("2006-01-02 15:04", date+" "+hhmm, loc)
}
