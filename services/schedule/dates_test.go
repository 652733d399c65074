package schedule

import (
	"testing"
	"time"
)

func TestCivilDateRespectsTimezone(t *testing.T) {
	// 02:30 UTC on March 1st is still the previous evening in New York.
	instant := time.Date(2026, 3, 1, 2, 30, 0, 0, time.UTC)
	if got := CivilDate(instant, "America/New_York"); got != "2026-02-28" {
		t.Fatalf("expected 2026-02-28, got %s", got)
	}
	if got := CivilDate(instant, "UTC"); got != "2026-03-01" {
		t.Fatalf("expected 2026-03-01, got %s", got)
	}
}

func TestCivilDateUnknownZoneFallsBackToUTC(t *testing.T) {
	instant := time.Date(2026, 7, 4, 23, 0, 0, 0, time.UTC)
	if got := CivilDate(instant, "Not/AZone"); got != "2026-07-04" {
		t.Fatalf("expected UTC fallback date, got %s", got)
	}
}

func TestAddDaysAcrossDSTTransition(t *testing.T) {
	// US spring-forward 2026-03-08: a 23-hour day must still count as one day.
	if got := AddDays("2026-03-07", 1); got != "2026-03-08" {
		t.Fatalf("expected 2026-03-08, got %s", got)
	}
	if got := AddDays("2026-03-08", -1); got != "2026-03-07" {
		t.Fatalf("expected 2026-03-07, got %s", got)
	}
	if got := AddDays("2026-03-06", 5); got != "2026-03-11" {
		t.Fatalf("expected 2026-03-11, got %s", got)
	}
}

func TestAddDaysMonthAndYearBoundaries(t *testing.T) {
	if got := AddDays("2026-01-31", 1); got != "2026-02-01" {
		t.Fatalf("expected 2026-02-01, got %s", got)
	}
	if got := AddDays("2025-12-31", 1); got != "2026-01-01" {
		t.Fatalf("expected 2026-01-01, got %s", got)
	}
	if got := AddDays("2026-03-01", -1); got != "2026-02-28" {
		t.Fatalf("expected 2026-02-28, got %s", got)
	}
}

func TestAddDaysMalformed(t *testing.T) {
	if got := AddDays("not-a-date", 1); got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}
}

func TestWeekday(t *testing.T) {
	// 2026-08-30 is a Sunday.
	wd, ok := Weekday("2026-08-30")
	if !ok || wd != 0 {
		t.Fatalf("expected Sunday (0), got %d ok=%v", wd, ok)
	}
	wd, ok = Weekday("2026-09-05")
	if !ok || wd != 6 {
		t.Fatalf("expected Saturday (6), got %d ok=%v", wd, ok)
	}
	if _, ok := Weekday("2026-13-40"); ok {
		t.Fatalf("expected malformed date to report !ok")
	}
}

func TestMaxBookableDate(t *testing.T) {
	if got := MaxBookableDate("2026-08-31", 0); got != "2026-08-31" {
		t.Fatalf("zero lookahead must return today, got %s", got)
	}
	// Window spanning the US fall-back transition (2026-11-01): exactly N
	// calendar days regardless of the 25-hour day inside it.
	if got := MaxBookableDate("2026-10-28", 10); got != "2026-11-07" {
		t.Fatalf("expected 2026-11-07, got %s", got)
	}
}
