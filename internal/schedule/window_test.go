package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/gmsas95/healthmate/internal/errors"
)

// Wednesday, Jan 15 2025, 07:00 local.
var wednesdayMorning = time.Date(2025, 1, 15, 7, 0, 0, 0, time.Local)

func newTestBuilder() *Builder {
	return NewBuilder(7, 2, FixedClock(wednesdayMorning))
}

func TestBuild_TodayAtFixedIndex(t *testing.T) {
	b := newTestBuilder()

	for d := Sunday; d <= Saturday; d++ {
		w := b.Build(d)

		require.Len(t, w.Days, 7)
		assert.Equal(t, d, w.Days[2], "today must sit at index 2")

		count := 0
		for _, day := range w.Days {
			if day == d {
				count++
			}
		}
		assert.Equal(t, 1, count, "today must appear exactly once")
	}
}

func TestBuild_WrapsModuloSeven(t *testing.T) {
	b := newTestBuilder()
	w := b.Build(Monday)

	assert.Equal(t, []Weekday{Saturday, Sunday, Monday, Tuesday, Wednesday, Thursday, Friday}, w.Days)
}

func TestBuild_FiveDayVariant(t *testing.T) {
	b := NewBuilder(5, 2, FixedClock(wednesdayMorning))
	w := b.Build(Wednesday)

	assert.Equal(t, []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday}, w.Days)
}

func TestSelect_RejectsEveryPastIndex(t *testing.T) {
	b := newTestBuilder()
	w := b.Current()

	for i := 0; i < w.TodayIndex; i++ {
		_, err := b.Select(w, i)
		assert.ErrorIs(t, err, apperrors.ErrPastDay, "index %d", i)
	}
}

func TestSelect_AcceptsTodayAndForward(t *testing.T) {
	b := newTestBuilder()
	w := b.Current()

	for i := w.TodayIndex; i < len(w.Days); i++ {
		sel, err := b.Select(w, i)
		require.NoError(t, err, "index %d", i)
		assert.Equal(t, w.Days[i], sel.Day)
	}
}

func TestSelect_ResolvesCalendarDate(t *testing.T) {
	b := newTestBuilder()
	w := b.Current()

	today, err := b.Select(w, 2)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 15, 0, 0, 0, 0, time.Local), today.Date)
	assert.Equal(t, Wednesday, today.Day)

	friday, err := b.Select(w, 4)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 17, 0, 0, 0, 0, time.Local), friday.Date)
	assert.Equal(t, Friday, friday.Day)
}

func TestSelect_OutOfRange(t *testing.T) {
	b := newTestBuilder()
	w := b.Current()

	_, err := b.Select(w, -1)
	assert.Error(t, err)
	_, err = b.Select(w, len(w.Days))
	assert.Error(t, err)
}

func TestWeekday_Add(t *testing.T) {
	assert.Equal(t, Sunday, Saturday.Add(1))
	assert.Equal(t, Saturday, Sunday.Add(-1))
	assert.Equal(t, Wednesday, Wednesday.Add(7))
	assert.Equal(t, Wednesday, Wednesday.Add(-14))
}

func TestParseWeekday(t *testing.T) {
	d, err := ParseWeekday("Monday")
	require.NoError(t, err)
	assert.Equal(t, Monday, d)

	_, err = ParseWeekday("Mon")
	assert.Error(t, err)
}
