package invoice

import (
	"fmt"
	"strconv"
	"strings"

	c "git.cmcode.dev/cmcode/invoice-planner/constants"
	"git.cmcode.dev/cmcode/invoice-planner/lib"
	"git.cmcode.dev/cmcode/invoice-planner/models"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ParsePaymentTerms accepts "Net N" for N in 30, 60, 90, 120 or 180, with
// "Net" in any letter case. It returns the terms spelled "Net N" and the
// number of days.
func ParsePaymentTerms(terms string) (string, int, error) {
	fields := strings.Fields(terms)
	if len(fields) != 2 || !strings.EqualFold(fields[0], "net") {
		return "", 0, fmt.Errorf("bad payment terms %q, expected Net 30|60|90|120|180", terms)
	}

	days, err := strconv.Atoi(fields[1])
	if err != nil || strconv.Itoa(days) != fields[1] || !c.PaymentTermDays[days] {
		return "", 0, fmt.Errorf("bad payment terms %q, expected Net 30|60|90|120|180", terms)
	}

	normalized := fmt.Sprintf("%v %v", cases.Title(language.English).String(fields[0]), days)

	return normalized, days, nil
}

// SetDueDate derives bill.due_date from the billing date and the payment
// terms, defaulting the terms to Net 30. An invoice without a bill section
// is left alone for validation to report.
func SetDueDate(cfg *models.InvoiceConfig) error {
	if cfg.Bill == nil {
		return nil
	}

	if strings.TrimSpace(cfg.Bill.PaymentTerms) == "" {
		cfg.Bill.PaymentTerms = c.DefaultPaymentTerms
	}

	terms, days, err := ParsePaymentTerms(cfg.Bill.PaymentTerms)
	if err != nil {
		return err
	}

	d, err := lib.ParseBillingDate(cfg.BillDate)
	if err != nil {
		return fmt.Errorf("failed to compute due date: %w", err)
	}

	cfg.Bill.PaymentTerms = terms
	cfg.Bill.DueDate = d.AddDays(days)

	return nil
}
