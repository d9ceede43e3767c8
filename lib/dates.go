package lib

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	c "git.cmcode.dev/cmcode/invoice-planner/constants"
)

// BillingDate is the reference date of one invoice, the last billed day of
// the period.
type BillingDate struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseBillingDate parses a YYYY-MM-DD string. The year must have 4 digits,
// the month and day 2, and the day must exist in that month.
func ParseBillingDate(input string) (BillingDate, error) {
	fields := strings.Split(input, "-")
	if len(fields) != 3 {
		return BillingDate{}, fmt.Errorf("billing date %q is not in YYYY-MM-DD format", input)
	}

	if len(fields[0]) != 4 || len(fields[1]) != 2 || len(fields[2]) != 2 {
		return BillingDate{}, fmt.Errorf("billing date %q is not in YYYY-MM-DD format", input)
	}

	nums := make([]int, 3)

	for i, f := range fields {
		for _, r := range f {
			if r < '0' || r > '9' {
				return BillingDate{}, fmt.Errorf("billing date %q must contain only digits", input)
			}
		}

		n, err := strconv.Atoi(f)
		if err != nil {
			return BillingDate{}, fmt.Errorf("failed to parse billing date %q: %w", input, err)
		}

		nums[i] = n
	}

	yr, mo, day := nums[0], nums[1], nums[2]

	if mo < 1 || mo > 12 {
		return BillingDate{}, fmt.Errorf("billing date %q has month out of range", input)
	}

	if day < 1 || day > DaysIn(yr, time.Month(mo)) {
		return BillingDate{}, fmt.Errorf("billing date %q has day out of range", input)
	}

	return BillingDate{Year: yr, Month: time.Month(mo), Day: day}, nil
}

// Time returns the billing date at midnight UTC.
func (d BillingDate) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// String formats the date as YYYY-MM-DD.
func (d BillingDate) String() string {
	return d.Time().Format(c.DateLayout)
}

// InvoiceDate is the human-readable date printed on the invoice, such as
// "June 15, 2024".
func (d BillingDate) InvoiceDate() string {
	return fmt.Sprintf("%v %v, %v", d.Month.String(), d.Day, d.Year)
}

// InvoiceNumber is the month abbreviation, day and year run together, such as
// "Jun152024".
func (d BillingDate) InvoiceNumber() string {
	return fmt.Sprintf("%v%v%v", d.Month.String()[0:3], d.Day, d.Year)
}

// AddDays returns the date count calendar days later, formatted YYYY/MM/DD.
func (d BillingDate) AddDays(count int) string {
	return d.Time().AddDate(0, 0, count).Format(c.DueDateLayout)
}

// DaysIn returns the number of days in the given month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// IsWeekend reports whether the given day of the month is a Saturday or a
// Sunday.
func IsWeekend(year int, month time.Month, day int) bool {
	wd := time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Weekday()

	return wd == time.Saturday || wd == time.Sunday
}
