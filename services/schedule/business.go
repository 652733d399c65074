package schedule

import "sitekit/models"

// searchHorizon bounds the walker so a pathological template (every day
// closed) still terminates. Exhausting it means the same thing as walking off
// the date bounds: no bookable day.
const searchHorizon = 60

// IsBusinessDay reports whether a civil date is open for booking. A date
// override wins outright over the weekly template, in either direction; a
// weekday missing from the template counts as closed.
func IsBusinessDay(date string, sched models.WeeklySchedule, overrides models.Overrides) bool {
	if ov, ok := overrides[date]; ok {
		return ov.Enabled
	}
	wd, ok := Weekday(date)
	if !ok {
		return false
	}
	day, ok := sched[wd]
	if !ok {
		return false
	}
	return day.Enabled
}

// NextBusinessDay walks one calendar day at a time in direction (+1 forward,
// anything negative backward) from, and returns the first open date within
// [minDate, maxDate]. The bounds are re-tested on every step; the first
// candidate outside them ends the search. ok=false means no day was found.
func NextBusinessDay(from string, direction int, sched models.WeeklySchedule, minDate, maxDate string, overrides models.Overrides) (string, bool) {
	step := 1
	if direction < 0 {
		step = -1
	}
	candidate := from
	for i := 0; i < searchHorizon; i++ {
		candidate = AddDays(candidate, step)
		if candidate == "" || candidate < minDate || candidate > maxDate {
			return "", false
		}
		if IsBusinessDay(candidate, sched, overrides) {
			return candidate, true
		}
	}
	return "", false
}

// FirstBusinessDay tests start itself before delegating to the forward walker:
// the start date is a candidate, not skipped.
func FirstBusinessDay(start string, sched models.WeeklySchedule, minDate, maxDate string, overrides models.Overrides) (string, bool) {
	if start >= minDate && start <= maxDate && IsBusinessDay(start, sched, overrides) {
		return start, true
	}
	return NextBusinessDay(start, +1, sched, minDate, maxDate, overrides)
}
