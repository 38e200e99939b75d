// Package daily derives the daily puzzle from the calendar date and keeps
// the per-day results.
package daily

import (
	"time"

	"github.com/robalobadob/dicegrid/internal/dice"
)

// DateLayout is the ISO 8601 date used as the daily seed.
const DateLayout = "2006-01-02"

// DateKey returns t as YYYY-MM-DD in t's own location.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// Today returns the date key for now as seen from loc (nil means local time).
func Today(now time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return DateKey(now.In(loc))
}

// ValidDate reports whether s is a YYYY-MM-DD date.
func ValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// Dice returns the puzzle dice for date. The date string itself is the seed,
// unsalted, so any client can reproduce the puzzle offline.
func Dice(date string) []string {
	return dice.SeededRoll(date)
}
