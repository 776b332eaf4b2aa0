package domain

import (
	"fmt"
	"time"
)

// Sync window presets accepted by the sync trigger.
const (
	WindowToday     = "today"
	WindowYesterday = "yesterday"
	WindowWeek      = "week"
	WindowMonth     = "month"
)

// WindowRange resolves a preset to a [from, to] pair ending at now.
// Weeks start on Monday; all boundaries are taken in now's location.
func WindowRange(preset string, now time.Time) (time.Time, time.Time, error) {
	dayStart := func(t time.Time) time.Time {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	}

	switch preset {
	case WindowToday:
		return dayStart(now), now, nil
	case WindowYesterday:
		return dayStart(now.AddDate(0, 0, -1)), now, nil
	case WindowWeek:
		offset := (int(now.Weekday()) + 6) % 7
		return dayStart(now.AddDate(0, 0, -offset)), now, nil
	case WindowMonth:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()), now, nil
	default:
		return time.Time{}, time.Time{}, fmt.Errorf("%w: unknown sync window preset %q", ErrInvalidInput, preset)
	}
}
