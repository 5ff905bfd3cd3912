package utils

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the canonical wire form for calendar dates. No time of day.
const DateLayout = "2006-01-02"

func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
	}
	return t, nil
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDateRange parses both dates and enforces checkIn < checkOut.
func ParseDateRange(checkIn, checkOut string) (time.Time, time.Time, error) {
	ci, err := ParseDate(checkIn)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	co, err := ParseDate(checkOut)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if !ci.Before(co) {
		return time.Time{}, time.Time{}, fmt.Errorf("check_in %s must be before check_out %s", checkIn, checkOut)
	}
	return ci, co, nil
}

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. Checkout day equals next check-in day is
// not an overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}
