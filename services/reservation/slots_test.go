package reservation

import (
	"testing"

	"sitekit/models"
)

func TestBuildDayGridClosedDayIsEmpty(t *testing.T) {
	settings := allOpenSettings(0)
	settings.WeeklySchedule[0] = models.DayHours{Enabled: false} // close Sundays
	slots, err := buildDayGrid(*settings, "2026-09-06")          // a Sunday
	if err != nil {
		t.Fatalf("buildDayGrid: %v", err)
	}
	if len(slots) != 0 {
		t.Fatalf("expected no slots on a closed day, got %d", len(slots))
	}
}

func TestBuildDayGridOverrideOpensWithFallbackHours(t *testing.T) {
	settings := allOpenSettings(0)
	settings.WeeklySchedule[0] = models.DayHours{Enabled: false}
	settings.Overrides = models.Overrides{"2026-09-06": {Enabled: true}}

	slots, err := buildDayGrid(*settings, "2026-09-06")
	if err != nil {
		t.Fatalf("buildDayGrid: %v", err)
	}
	// Fallback 09:00-17:00 at 30 minutes.
	if len(slots) != 16 {
		t.Fatalf("expected 16 fallback slots, got %d", len(slots))
	}
}

func TestBuildDayGridRejectsZeroDuration(t *testing.T) {
	settings := allOpenSettings(0)
	settings.SlotDurationMinutes = 0
	if _, err := buildDayGrid(*settings, "2026-09-07"); err == nil {
		t.Fatalf("expected error for zero slot duration")
	}
}
