package lib

import (
	"fmt"
	"sort"
	"time"

	"github.com/samber/lo"
	"github.com/teambition/rrule-go"
)

// FilterOffDays keeps only the off days that fall on a Monday through Friday
// of the given month. Weekends are never billed to begin with, so an off day
// on a weekend must not reduce the workday count. Days that do not exist in
// the month are dropped, and repeated days collapse into one. The result is
// sorted.
func FilterOffDays(year int, month time.Month, offDays []int) ([]int, error) {
	weekends, err := weekendDays(year, month)
	if err != nil {
		return []int{}, err
	}

	monthEnd := DaysIn(year, month)

	kept := lo.Uniq(lo.Filter(offDays, func(day int, _ int) bool {
		return day >= 1 && day <= monthEnd && !weekends[day]
	}))

	sort.Ints(kept)

	return kept, nil
}

// OutOfRangeDays returns the days that do not exist in the given month.
func OutOfRangeDays(year int, month time.Month, days []int) []int {
	monthEnd := DaysIn(year, month)

	return lo.Filter(days, func(day int, _ int) bool {
		return day < 1 || day > monthEnd
	})
}

// weekendDays returns the set of Saturdays and Sundays in the month.
func weekendDays(year int, month time.Month) (map[int]bool, error) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(year, month, DaysIn(year, month), 0, 0, 0, 0, time.UTC)

	r, err := rrule.NewRRule(rrule.ROption{
		Freq:      rrule.WEEKLY,
		Dtstart:   first,
		Until:     last,
		Byweekday: []rrule.Weekday{rrule.SA, rrule.SU},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to construct weekend rrule for %v-%02d: %w", year, int(month), err)
	}

	m := make(map[int]bool)
	for _, dt := range r.All() {
		m[dt.Day()] = true
	}

	return m, nil
}
