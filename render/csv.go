package render

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"

	c "git.cmcode.dev/cmcode/invoice-planner/constants"
	ierr "git.cmcode.dev/cmcode/invoice-planner/errors"
	"git.cmcode.dev/cmcode/invoice-planner/lib"
)

// CSVString lays the billables table out as comma-separated values: a
// heading row, one row per billable line, then subtotal, tax and total rows
// with the label and amount in the last two columns.
func CSVString(doc *Document) string {
	b := new(strings.Builder)
	w := csv.NewWriter(b)

	_ = w.Write([]string{
		doc.label("PDFWeekOf"),
		doc.label("PDFHoursPerWeek"),
		doc.label("PDFRate"),
		doc.label("PDFLineTotal"),
	})

	for _, line := range doc.Config.Billables {
		_ = w.Write([]string{line.Description, line.Hours, line.Rate, doc.money(lib.LineCost(line))})
	}

	_ = w.Write([]string{"", "", doc.label("PDFSubtotal"), doc.money(doc.Totals.Subtotal)})
	_ = w.Write([]string{"", "", doc.taxName(), doc.money(doc.Totals.Tax)})
	_ = w.Write([]string{"", "", doc.label("PDFTotal"), doc.money(doc.Totals.Total)})

	w.Flush()

	return b.String()
}

// WriteCSVFile writes CSVString next to the PDF and returns the path.
func WriteCSVFile(doc *Document) (string, error) {
	path := doc.OutputPath(c.CSVExtension)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", ierr.WithError(err).
			WithHintf("failed to create output directory %v", filepath.Dir(path)).
			Mark(ierr.ErrSystem)
	}

	if err := os.WriteFile(path, []byte(CSVString(doc)), 0o644); err != nil {
		return "", ierr.WithError(err).
			WithHintf("failed to write %v", path).
			Mark(ierr.ErrSystem)
	}

	return path, nil
}
