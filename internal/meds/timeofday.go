package meds

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseClock parses a 12-hour "H:MM AM/PM" display string into minutes
// since midnight.
func ParseClock(s string) (int, error) {
	fields := strings.Fields(strings.TrimSpace(s))
	if len(fields) != 2 {
		return 0, fmt.Errorf("invalid time %q", s)
	}

	hm := strings.Split(fields[0], ":")
	if len(hm) != 2 {
		return 0, fmt.Errorf("invalid time %q", s)
	}

	hour, err := strconv.Atoi(hm[0])
	if err != nil || hour < 1 || hour > 12 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	minute, err := strconv.Atoi(hm[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}

	switch strings.ToUpper(fields[1]) {
	case "AM":
		if hour == 12 {
			hour = 0
		}
	case "PM":
		if hour != 12 {
			hour += 12
		}
	default:
		return 0, fmt.Errorf("invalid meridiem in %q", s)
	}

	return hour*60 + minute, nil
}

// FormatClock renders minutes since midnight as the 12-hour display
// string the companion has always shown ("8:05 AM", "12:00 PM").
func FormatClock(minutes int) string {
	minutes = ((minutes % 1440) + 1440) % 1440
	hour := minutes / 60
	minute := minutes % 60

	meridiem := "AM"
	if hour >= 12 {
		meridiem = "PM"
	}
	display := hour % 12
	if display == 0 {
		display = 12
	}

	return fmt.Sprintf("%d:%02d %s", display, minute, meridiem)
}

// MinuteOfDay truncates an instant to minutes since midnight, ignoring
// seconds.
func MinuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}
