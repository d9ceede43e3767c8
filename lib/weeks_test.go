package lib

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// weekdaysIn counts Monday through Friday days of a month the slow way.
func weekdaysIn(year int, month time.Month) int {
	count := 0

	for day := 1; day <= DaysIn(year, month); day++ {
		if !IsWeekend(year, month, day) {
			count++
		}
	}

	return count
}

func sumWorkdays(segments []WeekSegment) int {
	total := 0
	for _, s := range segments {
		total += s.Workdays
	}

	return total
}

func TestSplitWeeks_June2024(t *testing.T) {
	// June 1st 2024 is a Saturday, June 30th a Sunday
	got := SplitWeeks(2024, time.June, []int{})

	want := []WeekSegment{
		{Start: 1, End: 1, Workdays: 0, Hours: 0},
		{Start: 2, End: 8, Workdays: 5, Hours: 40},
		{Start: 9, End: 15, Workdays: 5, Hours: 40},
		{Start: 16, End: 22, Workdays: 5, Hours: 40},
		{Start: 23, End: 29, Workdays: 5, Hours: 40},
		{Start: 30, End: 30, Workdays: 0, Hours: 0},
	}

	assert.Equal(t, want, got)
	assert.Equal(t, 20, sumWorkdays(got))
}

func TestSplitWeeks_StartsOnSunday(t *testing.T) {
	// September 1st 2024 is a Sunday
	got := SplitWeeks(2024, time.September, nil)

	require.NotEmpty(t, got)
	assert.Equal(t, WeekSegment{Start: 1, End: 7, Workdays: 5, Hours: 40}, got[0])
	assert.Equal(t, WeekSegment{Start: 29, End: 30, Workdays: 1, Hours: 8}, got[len(got)-1])
	assert.Equal(t, weekdaysIn(2024, time.September), sumWorkdays(got))
}

func TestSplitWeeks_StartsMidWeek(t *testing.T) {
	// May 1st 2024 is a Wednesday
	got := SplitWeeks(2024, time.May, nil)

	require.NotEmpty(t, got)
	assert.Equal(t, WeekSegment{Start: 1, End: 4, Workdays: 3, Hours: 24}, got[0])
	assert.Equal(t, weekdaysIn(2024, time.May), sumWorkdays(got))
}

func TestSplitWeeks_OffDays(t *testing.T) {
	// June 10th 2024 is a Monday, in the week of June 9 - 15
	base := SplitWeeks(2024, time.June, nil)
	got := SplitWeeks(2024, time.June, []int{10})

	require.Len(t, got, len(base))

	for i := range got {
		if got[i].Start == 9 {
			assert.Equal(t, base[i].Workdays-1, got[i].Workdays)
			assert.Equal(t, 32, got[i].Hours)

			continue
		}

		assert.Equal(t, base[i], got[i])
	}
}

func TestSplitWeeks_NeverNegative(t *testing.T) {
	// weekend days that slipped past the filter must not push a week below zero
	got := SplitWeeks(2024, time.June, []int{1, 1, 1, 30})

	assert.Equal(t, 0, got[0].Workdays)
	assert.Equal(t, 0, got[len(got)-1].Workdays)

	for _, s := range got {
		assert.GreaterOrEqual(t, s.Workdays, 0)
	}
}

func TestSplitWeeks_WholeWeekOff(t *testing.T) {
	got := SplitWeeks(2024, time.June, []int{10, 11, 12, 13, 14})

	assert.Equal(t, WeekSegment{Start: 9, End: 15, Workdays: 0, Hours: 0}, got[2])
}

func TestSplitWeeks_Partition(t *testing.T) {
	for year := 2019; year <= 2028; year++ {
		for month := time.January; month <= time.December; month++ {
			segments := SplitWeeks(year, month, nil)
			monthEnd := DaysIn(year, month)

			require.NotEmpty(t, segments)
			assert.Equal(t, 1, segments[0].Start, "%v-%v", year, month)
			assert.Equal(t, monthEnd, segments[len(segments)-1].End, "%v-%v", year, month)

			for i, s := range segments {
				assert.LessOrEqual(t, s.Start, s.End, "%v-%v", year, month)
				assert.Equal(t, s.Workdays*8, s.Hours)

				if i > 0 {
					assert.Equal(t, segments[i-1].End+1, s.Start, "%v-%v", year, month)
				}

				// every segment but the first starts on a Sunday
				if i > 0 {
					wd := time.Date(year, month, s.Start, 0, 0, 0, 0, time.UTC).Weekday()
					assert.Equal(t, time.Sunday, wd, "%v-%v-%v", year, month, s.Start)
				}
			}

			assert.Equal(t, weekdaysIn(year, month), sumWorkdays(segments), "%v-%v", year, month)
		}
	}
}
