package lib

import (
	"git.cmcode.dev/cmcode/invoice-planner/models"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// Totals holds the bottom of the invoice, in cents.
type Totals struct {
	Subtotal int64
	Tax      int64
	Total    int64
}

// GetTotals sums the line costs and applies the tax percentage. The tax is
// truncated to whole cents.
func GetTotals(lines []models.BillableLine, percentage decimal.Decimal) Totals {
	subtotal := lo.SumBy(lines, LineCost)
	tax := GetTax(subtotal, percentage)

	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal + tax,
	}
}

// GetTax returns percentage percent of subtotal, truncated to whole cents.
func GetTax(subtotal int64, percentage decimal.Decimal) int64 {
	return decimal.NewFromInt(subtotal).
		Mul(percentage).
		Div(decimal.NewFromInt(100)).
		IntPart()
}
