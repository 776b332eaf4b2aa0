package domain

import (
	"errors"
	"testing"
	"time"
)

func TestWindowRange(t *testing.T) {
	t.Parallel()

	// A Wednesday, mid-month.
	now := time.Date(2024, 5, 15, 10, 30, 0, 0, time.UTC)

	cases := []struct {
		preset string
		from   time.Time
	}{
		{WindowToday, time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC)},
		{WindowYesterday, time.Date(2024, 5, 14, 0, 0, 0, 0, time.UTC)},
		{WindowWeek, time.Date(2024, 5, 13, 0, 0, 0, 0, time.UTC)},
		{WindowMonth, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		from, to, err := WindowRange(tc.preset, now)
		if err != nil {
			t.Fatalf("preset %s: unexpected error %v", tc.preset, err)
		}
		if !from.Equal(tc.from) {
			t.Fatalf("preset %s: want from %v, got %v", tc.preset, tc.from, from)
		}
		if !to.Equal(now) {
			t.Fatalf("preset %s: windows always end at now, got %v", tc.preset, to)
		}
	}
}

func TestWindowRangeWeekStartsMonday(t *testing.T) {
	t.Parallel()

	// On a Sunday the week window reaches back six days.
	sunday := time.Date(2024, 5, 19, 8, 0, 0, 0, time.UTC)
	from, _, err := WindowRange(WindowWeek, sunday)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := time.Date(2024, 5, 13, 0, 0, 0, 0, time.UTC); !from.Equal(want) {
		t.Fatalf("want %v, got %v", want, from)
	}
}

func TestWindowRangeUnknownPreset(t *testing.T) {
	t.Parallel()

	if _, _, err := WindowRange("fortnight", time.Now()); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
