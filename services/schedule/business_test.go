package schedule

import (
	"testing"

	"sitekit/models"
)

func weekdaysOnly() models.WeeklySchedule {
	return models.WeeklySchedule{
		1: {Enabled: true, Open: "09:00", Close: "17:00"},
		2: {Enabled: true, Open: "09:00", Close: "17:00"},
		3: {Enabled: true, Open: "09:00", Close: "17:00"},
		4: {Enabled: true, Open: "09:00", Close: "17:00"},
		5: {Enabled: true, Open: "09:00", Close: "17:00"},
		6: {Enabled: false},
		0: {Enabled: false},
	}
}

func TestIsBusinessDayFollowsTemplate(t *testing.T) {
	sched := weekdaysOnly()
	// 2026-08-31 is a Monday, 2026-09-05 a Saturday.
	if !IsBusinessDay("2026-08-31", sched, nil) {
		t.Fatalf("expected Monday to be open")
	}
	if IsBusinessDay("2026-09-05", sched, nil) {
		t.Fatalf("expected Saturday to be closed")
	}
}

func TestIsBusinessDayMissingWeekdayIsClosed(t *testing.T) {
	sched := models.WeeklySchedule{1: {Enabled: true}}
	if IsBusinessDay("2026-09-02", sched, nil) { // Wednesday, no entry
		t.Fatalf("expected missing weekday entry to mean closed")
	}
}

func TestOverrideSupersedesTemplate(t *testing.T) {
	sched := weekdaysOnly()
	overrides := models.Overrides{
		"2026-09-06": {Enabled: true},  // a normally-closed Sunday forced open
		"2026-09-07": {Enabled: false}, // a normally-open Monday forced closed
	}
	if !IsBusinessDay("2026-09-06", sched, overrides) {
		t.Fatalf("expected override to open the Sunday")
	}
	if IsBusinessDay("2026-09-13", sched, overrides) {
		t.Fatalf("expected other Sundays to stay closed")
	}
	if IsBusinessDay("2026-09-07", sched, overrides) {
		t.Fatalf("expected override to close the Monday")
	}
}

func TestFirstBusinessDaySkipsWeekend(t *testing.T) {
	sched := weekdaysOnly()
	today := "2026-09-05" // Saturday
	maxDate := MaxBookableDate(today, 10)
	got, ok := FirstBusinessDay(today, sched, today, maxDate, nil)
	if !ok || got != "2026-09-07" {
		t.Fatalf("expected following Monday 2026-09-07, got %q ok=%v", got, ok)
	}
}

func TestFirstBusinessDayStartIsInclusive(t *testing.T) {
	sched := weekdaysOnly()
	today := "2026-08-31" // Monday
	got, ok := FirstBusinessDay(today, sched, today, MaxBookableDate(today, 7), nil)
	if !ok || got != today {
		t.Fatalf("expected today itself, got %q ok=%v", got, ok)
	}
}

func TestFirstBusinessDayZeroLookaheadClosedToday(t *testing.T) {
	sched := weekdaysOnly()
	sched[1] = models.DayHours{Enabled: false} // close Mondays
	today := "2026-08-31"                      // Monday
	if got, ok := FirstBusinessDay(today, sched, today, MaxBookableDate(today, 0), nil); ok {
		t.Fatalf("expected no bookable day, got %q", got)
	}
}

func TestNextBusinessDayStopsAtBound(t *testing.T) {
	sched := weekdaysOnly()
	// Friday with a window ending on the weekend: forward walk must hit the
	// bound and fail rather than skipping past it to the next Monday.
	got, ok := NextBusinessDay("2026-09-04", +1, sched, "2026-09-04", "2026-09-06", nil)
	if ok {
		t.Fatalf("expected no day within bound, got %q", got)
	}
}

func TestNextBusinessDayBackward(t *testing.T) {
	sched := weekdaysOnly()
	// Walking backward from Monday lands on the previous Friday.
	got, ok := NextBusinessDay("2026-09-07", -1, sched, "2026-08-31", "2026-09-07", nil)
	if !ok || got != "2026-09-04" {
		t.Fatalf("expected 2026-09-04, got %q ok=%v", got, ok)
	}
}

func TestRoundTripInteriorBusinessDay(t *testing.T) {
	sched := weekdaysOnly()
	minDate, maxDate := "2026-08-31", "2026-09-30"
	d := "2026-09-09" // a Wednesday strictly inside the window
	fwd, ok := NextBusinessDay(d, +1, sched, minDate, maxDate, nil)
	if !ok {
		t.Fatalf("forward walk failed")
	}
	back, ok := NextBusinessDay(fwd, -1, sched, minDate, maxDate, nil)
	if !ok || back != d {
		t.Fatalf("expected round-trip back to %s, got %q ok=%v", d, back, ok)
	}
}

func TestWalkerTerminatesOnAllClosedTemplate(t *testing.T) {
	sched := models.WeeklySchedule{}
	today := "2026-08-31"
	// Generous bounds: only the iteration horizon can stop the walk.
	if got, ok := NextBusinessDay(today, +1, sched, "2020-01-01", "2030-01-01", nil); ok {
		t.Fatalf("expected termination with no result, got %q", got)
	}
}
