package rollout

import (
	"strings"
	"time"
)

// BusinessHours describes the local-time window in which a
// businessHoursOnly rollout is active.
type BusinessHours struct {
	// StartHour is inclusive, EndHour exclusive, both in local 24h time.
	StartHour int
	EndHour   int
	// Days is the set of working weekdays.
	Days map[time.Weekday]bool
}

// DefaultBusinessHours is 09:00-17:00, Monday through Friday.
func DefaultBusinessHours() BusinessHours {
	return BusinessHours{
		StartHour: 9,
		EndHour:   17,
		Days: map[time.Weekday]bool{
			time.Monday:    true,
			time.Tuesday:   true,
			time.Wednesday: true,
			time.Thursday:  true,
			time.Friday:    true,
		},
	}
}

// contains reports whether the given local time falls inside the window.
func (b BusinessHours) contains(local time.Time) bool {
	if !b.Days[local.Weekday()] {
		return false
	}
	h := local.Hour()
	return h >= b.StartHour && h < b.EndHour
}

// regionLocation maps a region string to a timezone by prefix. This is a
// coarse heuristic inherited from the original system; the prefixes are
// pinned by tests and must not be "improved" without migrating callers.
func (e *Engine) regionLocation(region string) *time.Location {
	switch {
	case strings.HasPrefix(region, "us-"):
		return e.locNewYork
	case strings.HasPrefix(region, "eu-"):
		return e.locLondon
	case strings.HasPrefix(region, "ap-"):
		return e.locTokyo
	default:
		return e.defaultLoc
	}
}

// loadLocation resolves a tz database name, falling back to UTC when the
// zone database is unavailable (stripped containers).
func loadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}
