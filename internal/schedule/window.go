package schedule

import (
	"time"

	apperrors "github.com/gmsas95/healthmate/internal/errors"
)

// Window is the rolling strip of weekday labels shown for day
// selection. Today sits at a fixed index; entries before it are past
// days and cannot be selected.
type Window struct {
	Days       []Weekday
	TodayIndex int
}

// SelectedDay is a successfully selected window entry with its
// resolved calendar date.
type SelectedDay struct {
	Index int
	Day   Weekday
	Date  time.Time
}

// Builder derives windows from a Clock with a fixed shape.
type Builder struct {
	length     int
	todayIndex int
	clock      Clock
}

// NewBuilder creates a window builder. Length and todayIndex give the
// window its shape; the default companion layout is length 7 with
// today at index 2.
func NewBuilder(length, todayIndex int, clock Clock) *Builder {
	if length <= 0 {
		length = 7
	}
	if todayIndex < 0 || todayIndex >= length {
		todayIndex = length / 2
	}
	if clock == nil {
		clock = SystemClock()
	}
	return &Builder{length: length, todayIndex: todayIndex, clock: clock}
}

// Today returns the current weekday according to the builder's clock.
func (b *Builder) Today() Weekday {
	return WeekdayOf(b.clock.Now())
}

// Build computes the window around the given weekday. Pure: the same
// input always yields the same window.
func (b *Builder) Build(today Weekday) Window {
	days := make([]Weekday, b.length)
	for i := range days {
		days[i] = today.Add(i - b.todayIndex)
	}
	return Window{Days: days, TodayIndex: b.todayIndex}
}

// Current builds the window for the clock's current day.
func (b *Builder) Current() Window {
	return b.Build(b.Today())
}

// Select resolves a window index to its day and calendar date. Indexes
// before today are past days and are rejected.
func (b *Builder) Select(w Window, index int) (SelectedDay, error) {
	if index < 0 || index >= len(w.Days) {
		return SelectedDay{}, apperrors.Wrap(nil, "SELECT_002", "day index out of range")
	}
	if index < w.TodayIndex {
		return SelectedDay{}, apperrors.ErrPastDay
	}

	now := b.clock.Now()
	date := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, index-w.TodayIndex)

	return SelectedDay{
		Index: index,
		Day:   w.Days[index],
		Date:  date,
	}, nil
}
