package schedule

import "time"

// civilLayout is the wire format for civil dates. Dates in this form compare
// correctly as plain strings, which the walker relies on for bounds checks.
const civilLayout = "2006-01-02"

// Location resolves an IANA timezone name, falling back to UTC when the name
// is empty or unknown so date math never depends on the host's zone database
// being in sync with tenant settings.
func Location(tz string) *time.Location {
	if tz == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return time.UTC
	}
	return loc
}

// CivilDate converts an instant to its "YYYY-MM-DD" civil date in tz.
func CivilDate(t time.Time, tz string) string {
	return t.In(Location(tz)).Format(civilLayout)
}

// ParseCivil parses a "YYYY-MM-DD" string. The result is anchored at noon UTC:
// a neutral time-of-day keeps weekday extraction and calendar stepping stable
// regardless of the zone the caller later evaluates in.
func ParseCivil(date string) (time.Time, error) {
	t, err := time.Parse(civilLayout, date)
	if err != nil {
		return time.Time{}, err
	}
	return t.Add(12 * time.Hour), nil
}

// AddDays steps a civil date by n calendar days. The arithmetic is done on the
// civil calendar, not by adding elapsed hours, so stepping across a DST
// transition still moves exactly one date. Malformed input yields "".
func AddDays(date string, n int) string {
	t, err := ParseCivil(date)
	if err != nil {
		return ""
	}
	return t.AddDate(0, 0, n).Format(civilLayout)
}

// Weekday returns the day-of-week of a civil date, 0=Sunday .. 6=Saturday.
// Malformed input reports ok=false.
func Weekday(date string) (int, bool) {
	t, err := ParseCivil(date)
	if err != nil {
		return 0, false
	}
	return int(t.Weekday()), true
}

// MaxBookableDate is the inclusive end of the booking window:
// today + lookaheadDays calendar days in the site's timezone.
func MaxBookableDate(today string, lookaheadDays int) string {
	return AddDays(today, lookaheadDays)
}
