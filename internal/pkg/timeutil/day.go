package timeutil

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	DateLayout = "2006-01-02"
	// ISOMillisLayout matches the millisecond precision UTC timestamps used in exports.
	ISOMillisLayout = "2006-01-02T15:04:05.000Z07:00"
)

// StartOfDay returns midnight of t's calendar date in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

// NextDay returns the midnight following dayStart. Calendar arithmetic keeps this correct on
// days that are not 24h long.
func NextDay(dayStart time.Time) time.Time {
	return dayStart.AddDate(0, 0, 1)
}

// DayRange returns the half-open interval [start, end) of t's calendar day in loc.
func DayRange(t time.Time, loc *time.Location) (start, end time.Time) {
	start = StartOfDay(t, loc)
	return start, NextDay(start)
}

// ClockTime is a wall clock time of day.
type ClockTime struct {
	Hour   int
	Minute int
}

// ParseClock parses a 24h "H:MM" or "HH:MM" string.
func ParseClock(s string) (ClockTime, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok || len(hh) < 1 || len(hh) > 2 || len(mm) != 2 {
		return ClockTime{}, fmt.Errorf("invalid clock time %q: expected HH:MM", s)
	}
	hour, err := strconv.Atoi(hh)
	if err != nil || hour < 0 || hour > 23 {
		return ClockTime{}, fmt.Errorf("invalid hour in %q", s)
	}
	minute, err := strconv.Atoi(mm)
	if err != nil || minute < 0 || minute > 59 {
		return ClockTime{}, fmt.Errorf("invalid minute in %q", s)
	}
	return ClockTime{Hour: hour, Minute: minute}, nil
}

// On returns the instant at which the clock time occurs on the calendar day starting at dayStart.
func (c ClockTime) On(dayStart time.Time) time.Time {
	return time.Date(dayStart.Year(), dayStart.Month(), dayStart.Day(), c.Hour, c.Minute, 0, 0, dayStart.Location())
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// ParseDay parses either a YYYY-MM-DD date or an RFC3339 timestamp and returns the start of
// the corresponding calendar day in loc.
func ParseDay(s string, loc *time.Location) (time.Time, error) {
	if d, err := time.ParseInLocation(DateLayout, s, loc); err == nil {
		return d, nil
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return StartOfDay(t, loc), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD or RFC3339", s)
}

// FormatISO renders t in UTC with millisecond precision, or "" when t is nil.
func FormatISO(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(ISOMillisLayout)
}
