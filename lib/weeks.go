package lib

import (
	"time"

	c "git.cmcode.dev/cmcode/invoice-planner/constants"
)

// WeekSegment is one Sunday-to-Saturday slice of a month (the first and last
// slices may be shorter), with the number of billable workdays in it.
type WeekSegment struct {
	Start    int
	End      int
	Workdays int
	Hours    int
}

// SplitWeeks partitions a month into contiguous week segments. Weeks start on
// Sunday; the first segment runs from the 1st through the first Saturday.
// Each segment counts its Monday through Friday days, minus any off days that
// fall inside it. offDays must already be stripped of weekend days (see
// FilterOffDays), otherwise they would be subtracted twice; the count never
// goes below zero regardless.
func SplitWeeks(year int, month time.Month, offDays []int) []WeekSegment {
	monthEnd := DaysIn(year, month)

	// Sunday = 1 ... Saturday = 7
	firstWeekday := int(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Weekday()) + 1

	start := 1
	span := c.DaysPerWeek - firstWeekday
	end := min(start+span, monthEnd)

	// a first week that starts on a Sunday is a full week; otherwise it ends
	// on Saturday and every day before it is a weekday
	workdays := span
	if span == c.DaysPerWeek-1 {
		workdays = c.WorkdaysPerWeek
	}

	segments := []WeekSegment{}

	for {
		workdays = max(workdays-countOffDays(offDays, start, end), 0)
		segments = append(segments, WeekSegment{
			Start:    start,
			End:      end,
			Workdays: workdays,
			Hours:    workdays * c.HoursPerDay,
		})

		start = end + 1
		if start > monthEnd {
			break
		}

		if monthEnd-start >= c.DaysPerWeek-1 {
			end = start + c.DaysPerWeek - 1
			workdays = c.WorkdaysPerWeek
		} else {
			// the last partial week starts on a Sunday, so every day after
			// it is a weekday
			end = monthEnd
			workdays = monthEnd - start
		}
	}

	return segments
}

// countOffDays returns how many of the off days fall within [start, end].
func countOffDays(offDays []int, start, end int) int {
	count := 0

	for _, day := range offDays {
		if start <= day && day <= end {
			count++
		}
	}

	return count
}
