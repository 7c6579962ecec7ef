package schedule

import (
	"fmt"
	"time"
)

// Weekday is the shared day label used by every module that needs a day
// strip. Values match time.Weekday (Sunday = 0).
type Weekday int

const (
	Sunday Weekday = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

var weekdayNames = [7]string{
	"Sunday",
	"Monday",
	"Tuesday",
	"Wednesday",
	"Thursday",
	"Friday",
	"Saturday",
}

func (w Weekday) String() string {
	if w < 0 || w > 6 {
		return fmt.Sprintf("Weekday(%d)", int(w))
	}
	return weekdayNames[w]
}

// Short returns the three-letter label shown on the day strip.
func (w Weekday) Short() string {
	return w.String()[:3]
}

// Add returns the weekday offset days ahead (or behind, for negative
// offsets), wrapping modulo 7.
func (w Weekday) Add(offset int) Weekday {
	return Weekday(((int(w)+offset)%7 + 7) % 7)
}

// ParseWeekday resolves a weekday name as stored in dose rows.
func ParseWeekday(name string) (Weekday, error) {
	for i, n := range weekdayNames {
		if n == name {
			return Weekday(i), nil
		}
	}
	return 0, fmt.Errorf("unknown weekday %q", name)
}

// WeekdayOf converts a calendar date to its Weekday label.
func WeekdayOf(t time.Time) Weekday {
	return Weekday(t.Weekday())
}
