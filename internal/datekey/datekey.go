// Package datekey handles the short date tokens used in request paths
// and dataset keys, e.g. "jan20" or "Feb 24".
package datekey

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

var months = map[string]time.Month{
	"jan": time.January,
	"feb": time.February,
	"mar": time.March,
	"apr": time.April,
	"may": time.May,
	"jun": time.June,
	"jul": time.July,
	"aug": time.August,
	"sep": time.September,
	"oct": time.October,
	"nov": time.November,
	"dec": time.December,
}

// Normalize lowercases a token and strips spaces and dashes, so that
// "Jan 20", "jan-20" and "jan20" all resolve to the same key.
func Normalize(token string) string {
	key := strings.ToLower(token)
	key = strings.ReplaceAll(key, " ", "")
	key = strings.ReplaceAll(key, "-", "")
	return key
}

// Parse resolves a date key to a calendar date in the given year.
func Parse(token string, year int) (time.Time, error) {
	key := Normalize(token)
	if len(key) < 4 {
		return time.Time{}, fmt.Errorf("invalid date key: %q", token)
	}

	month, ok := months[key[:3]]
	if !ok {
		return time.Time{}, fmt.Errorf("invalid month in date key: %q", token)
	}

	day, err := strconv.Atoi(key[3:])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid day in date key: %q", token)
	}
	if day < 1 || day > 31 {
		return time.Time{}, fmt.Errorf("day out of range in date key: %q", token)
	}

	date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if date.Day() != day {
		// time.Date normalizes overflow, e.g. feb30 becomes Mar 2
		return time.Time{}, fmt.Errorf("day does not exist in date key: %q", token)
	}

	return date, nil
}

// Format renders a calendar date as its canonical key, e.g. "jan20".
func Format(date time.Time) string {
	return strings.ToLower(date.Format("Jan")) + strconv.Itoa(date.Day())
}

// Display renders a calendar date for human-readable output, e.g. "Jan 20".
func Display(date time.Time) string {
	return date.Format("Jan 2")
}
