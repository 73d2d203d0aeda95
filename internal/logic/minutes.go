package logic

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// MinutesPerDay is the number of minutes in a calendar day.
const MinutesPerDay = 24 * 60

// MinuteOfDay returns the wall-clock minute of the day for t in its location.
func MinuteOfDay(t time.Time) int {
	h, m, _ := t.Clock()
	return h*60 + m
}

// ClockText renders a minute of the day as zero-padded 24-hour "HH:MM".
// Callers must pass a non-negative value.
func ClockText(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// ParseClockText is the inverse of ClockText.
func ParseClockText(s string) (int, error) {
	hh, mm, ok := strings.Cut(s, ":")
	if !ok || len(hh) != 2 || len(mm) != 2 {
		return 0, fmt.Errorf("invalid clock text %q", s)
	}
	h, err := strconv.Atoi(hh)
	if err != nil {
		return 0, fmt.Errorf("invalid hour in %q: %w", s, err)
	}
	m, err := strconv.Atoi(mm)
	if err != nil {
		return 0, fmt.Errorf("invalid minute in %q: %w", s, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("clock text %q out of range", s)
	}
	return h*60 + m, nil
}

// DurationText renders a duration in minutes as "instant", "1hr", "2hrs",
// "5 mins" or "1hr 30 mins". Zero components are omitted.
func DurationText(minutes int) string {
	if minutes == 0 {
		return "instant"
	}

	hrs := minutes / 60
	mins := minutes % 60

	var b strings.Builder
	switch {
	case hrs > 1:
		fmt.Fprintf(&b, "%dhrs", hrs)
	case hrs == 1:
		b.WriteString("1hr")
	}
	if hrs > 0 && mins > 0 {
		b.WriteByte(' ')
	}
	if mins > 0 {
		fmt.Fprintf(&b, "%d mins", mins)
	}
	return b.String()
}

// wrap returns v stepped by delta inside [lo, hi], jumping to the opposite
// bound when a step would leave the range.
func wrap(v, delta, lo, hi int) int {
	v += delta
	if v > hi {
		return lo
	}
	if v < lo {
		return hi
	}
	return v
}
