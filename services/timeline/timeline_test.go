package timeline

import (
	"testing"
	"time"

	"sitekit/models"
)

func daySlots(t *testing.T, avail ...bool) []models.TimeSlot {
	t.Helper()
	base := time.Date(2026, 9, 7, 9, 0, 0, 0, time.UTC)
	slots := make([]models.TimeSlot, len(avail))
	for i, a := range avail {
		slots[i] = models.TimeSlot{
			StartTime: base.Add(time.Duration(i) * 30 * time.Minute),
			EndTime:   base.Add(time.Duration(i+1) * 30 * time.Minute),
			Available: a,
		}
	}
	return slots
}

func TestBuildMergesBookedRuns(t *testing.T) {
	// 09:00 available, 09:30 + 10:00 booked, 10:30 available.
	rows := Build(daySlots(t, true, false, false, true))
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[0].Type != models.RowAvailable || rows[0].DurationMin != 30 {
		t.Fatalf("unexpected first row: %+v", rows[0])
	}
	if rows[1].Type != models.RowBooked || rows[1].DurationMin != 60 {
		t.Fatalf("expected merged 60min booked block, got %+v", rows[1])
	}
	if !rows[1].StartTime.Equal(time.Date(2026, 9, 7, 9, 30, 0, 0, time.UTC)) ||
		!rows[1].EndTime.Equal(time.Date(2026, 9, 7, 10, 30, 0, 0, time.UTC)) {
		t.Fatalf("booked block spans wrong range: %+v", rows[1])
	}
	if rows[2].Type != models.RowAvailable || rows[2].DurationMin != 30 {
		t.Fatalf("unexpected last row: %+v", rows[2])
	}
}

func TestBuildAllAvailable(t *testing.T) {
	rows := Build(daySlots(t, true, true, true, true))
	if len(rows) != 4 {
		t.Fatalf("expected one row per slot, got %d", len(rows))
	}
	for i, row := range rows {
		if row.Type != models.RowAvailable {
			t.Fatalf("row %d is %s, expected available", i, row.Type)
		}
		if row.Slot == nil {
			t.Fatalf("available row %d must carry its slot", i)
		}
	}
}

func TestBuildAllBooked(t *testing.T) {
	rows := Build(daySlots(t, false, false, false))
	if len(rows) != 1 {
		t.Fatalf("expected a single booked block, got %d rows", len(rows))
	}
	if rows[0].Type != models.RowBooked || rows[0].DurationMin != 90 {
		t.Fatalf("unexpected block: %+v", rows[0])
	}
}

func TestBuildTrailingBookedRunFlushes(t *testing.T) {
	rows := Build(daySlots(t, true, false, false))
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[1].Type != models.RowBooked || rows[1].DurationMin != 60 {
		t.Fatalf("trailing run not flushed: %+v", rows[1])
	}
}

func TestBuildEmptyInput(t *testing.T) {
	if rows := Build(nil); len(rows) != 0 {
		t.Fatalf("expected no rows, got %d", len(rows))
	}
}

func TestBuildIdempotentOnOwnOutput(t *testing.T) {
	first := Build(daySlots(t, false, true, false, false, true, false))

	// Re-feed the flushed rows as slots: each booked block becomes one
	// unavailable slot spanning its range.
	refed := make([]models.TimeSlot, len(first))
	for i, row := range first {
		refed[i] = models.TimeSlot{
			StartTime: row.StartTime,
			EndTime:   row.EndTime,
			Available: row.Type == models.RowAvailable,
		}
	}
	second := Build(refed)

	if len(second) != len(first) {
		t.Fatalf("row count changed: %d vs %d", len(second), len(first))
	}
	for i := range first {
		if second[i].Type != first[i].Type ||
			!second[i].StartTime.Equal(first[i].StartTime) ||
			!second[i].EndTime.Equal(first[i].EndTime) ||
			second[i].DurationMin != first[i].DurationMin {
			t.Fatalf("row %d diverged: %+v vs %+v", i, second[i], first[i])
		}
	}
}

func TestSummarizeEmptyStates(t *testing.T) {
	s := Summarize(nil)
	if s.TotalSlots != 0 || s.AvailableCount != 0 {
		t.Fatalf("unexpected summary for empty list: %+v", s)
	}

	s = Summarize(daySlots(t, false, false))
	if s.TotalSlots != 2 || s.AvailableCount != 0 {
		t.Fatalf("unexpected summary for fully booked day: %+v", s)
	}

	s = Summarize(daySlots(t, true, false))
	if s.TotalSlots != 2 || s.AvailableCount != 1 {
		t.Fatalf("unexpected summary: %+v", s)
	}
}
