package lib

import (
	"fmt"
	"strconv"
	"time"

	"git.cmcode.dev/cmcode/invoice-planner/models"

	"github.com/samber/lo"
)

// GetBillables turns the week segments of a month into billable lines at the
// given hourly rate. Weeks without any workdays are left out, and the rest
// keep their ascending order.
func GetBillables(segments []WeekSegment, month time.Month, rate, marker string) []models.BillableLine {
	billed := lo.Filter(segments, func(w WeekSegment, _ int) bool {
		return w.Workdays > 0
	})

	return lo.Map(billed, func(w WeekSegment, _ int) models.BillableLine {
		return fillinBillable(w, month, rate, marker)
	})
}

func fillinBillable(w WeekSegment, month time.Month, rate, marker string) models.BillableLine {
	line := models.BillableLine{
		Description: fmt.Sprintf("Week of %v %v - %v", month.String(), w.Start, w.End),
		Hours:       strconv.Itoa(w.Hours),
		Rate:        WithMarker(marker, rate),
	}

	line.Cost = FormatCurrency(marker, LineCost(line))

	return line
}

// BillablesForDate runs the whole pipeline for one billing date: it drops
// weekend off days, splits the month into weeks and builds the billable lines.
func BillablesForDate(billdate, rate string, offDays []int, marker string) ([]models.BillableLine, error) {
	d, err := ParseBillingDate(billdate)
	if err != nil {
		return []models.BillableLine{}, err
	}

	off, err := FilterOffDays(d.Year, d.Month, offDays)
	if err != nil {
		return []models.BillableLine{}, fmt.Errorf("failed to filter off days for %v: %w", billdate, err)
	}

	weeks := SplitWeeks(d.Year, d.Month, off)

	return GetBillables(weeks, d.Month, rate, marker), nil
}

// LineCost is the rate in cents multiplied by the whole number of hours.
func LineCost(line models.BillableLine) int64 {
	return ParseMoney(line.Rate) * leadingInt(line.Hours)
}
