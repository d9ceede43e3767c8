// Package invoice normalizes and validates an expanded invoice configuration
// so that it can be rendered.
package invoice

import (
	"strings"

	ierr "git.cmcode.dev/cmcode/invoice-planner/errors"
	"git.cmcode.dev/cmcode/invoice-planner/models"

	"github.com/samber/lo"
)

// ValidationProblems holds every problem found in one invoice.
type ValidationProblems []error

func (v ValidationProblems) Error() string {
	return strings.Join(v.Messages(), "; ")
}

func (v ValidationProblems) Unwrap() []error {
	return v
}

func (v ValidationProblems) Messages() []string {
	return lo.Map(v, func(e error, _ int) string {
		return e.Error()
	})
}

// Prepare applies defaults, derives the due date and validates the invoice.
// All problems found are returned together as ValidationProblems, marked as
// a validation error.
func Prepare(cfg *models.InvoiceConfig, marker string, theme *models.Colors) error {
	ApplyDefaults(cfg, marker, theme)

	problems := ValidationProblems{}

	if err := SetDueDate(cfg); err != nil {
		problems = append(problems, err)
	}

	problems = append(problems, Validate(cfg)...)

	if len(problems) == 0 {
		return nil
	}

	return ierr.WithError(problems).
		WithHintf("invoice for %v has %v configuration problem(s)", cfg.BillDate, len(problems)).
		Mark(ierr.ErrValidation)
}

// Problems lists the individual messages held by an error returned from
// Prepare. Any other error yields nil.
func Problems(err error) []string {
	var problems ValidationProblems
	if err == nil || !ierr.As(err, &problems) {
		return nil
	}

	return problems.Messages()
}
