package render

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"git.cmcode.dev/cmcode/invoice-planner/invoice"
	"git.cmcode.dev/cmcode/invoice-planner/lib"
	"git.cmcode.dev/cmcode/invoice-planner/models"
	"git.cmcode.dev/cmcode/invoice-planner/translations"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var generated = time.Date(2024, time.July, 1, 9, 30, 0, 0, time.UTC)

func labels(t *testing.T) map[string]string {
	t.Helper()

	l, err := translations.Load(os.DirFS(".."), translations.DefaultLanguage)
	require.NoError(t, err)

	return l
}

func preparedConfig(t *testing.T, outputDir string) *models.InvoiceConfig {
	t.Helper()

	lines, err := lib.BillablesForDate("2024-06-30", "50", []int{10}, "€")
	require.NoError(t, err)

	cfg := &models.InvoiceConfig{
		BillDate:       "2024-06-30",
		CurrencyMarker: "€",
		Business:       &models.Business{Name: "Acme GmbH", Person: "Jö Smith", Address: "1 Road"},
		BillTo: &models.BillTo{
			Email:        "a@b.c",
			Name:         "Client",
			Street:       "2 Street",
			CityStateZip: "Town",
			Country:      "Nowhere",
		},
		Bill:       &models.Bill{Department: "Eng", Currency: "EUR", PaymentTerms: "Net 30"},
		WorkDone:   []models.WorkItem{{Work: "fixed things"}, {Work: "broke other things"}},
		Billables:  lines,
		TaxDetails: &models.TaxDetails{TaxName: "VAT", DefaultPercentage: models.Percentage{Decimal: decimal.NewFromFloat(7.5)}},
		AppConfig:  &models.AppConfig{OutputDir: outputDir},
	}

	require.NoError(t, invoice.Prepare(cfg, "€", nil))

	return cfg
}

func TestNewDocument(t *testing.T) {
	doc, err := NewDocument(preparedConfig(t, t.TempDir()), labels(t), generated)
	require.NoError(t, err)

	assert.Equal(t, "Jun302024", doc.Number())
	assert.Equal(t, "June 30, 2024", doc.Date.InvoiceDate())

	// 40 + 32 + 40 + 40 hours at 50
	assert.Equal(t, lib.Totals{Subtotal: 760000, Tax: 57000, Total: 817000}, doc.Totals)
}

func TestOutputPath(t *testing.T) {
	dir := t.TempDir()

	doc, err := NewDocument(preparedConfig(t, dir), nil, generated)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "invoice_Jun302024.pdf"), doc.OutputPath(".pdf"))
}

func TestWrite(t *testing.T) {
	doc, err := NewDocument(preparedConfig(t, t.TempDir()), labels(t), generated)
	require.NoError(t, err)

	var b bytes.Buffer
	require.NoError(t, Write(doc, &b))
	assert.True(t, bytes.HasPrefix(b.Bytes(), []byte("%PDF")))
}

func TestWriteFileCreatesOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "billed")

	doc, err := NewDocument(preparedConfig(t, dir), labels(t), generated)
	require.NoError(t, err)

	path, err := WriteFile(doc)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "invoice_Jun302024.pdf"), path)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte("%PDF")))
}

func TestWriteManyWorkItemsBreaksPages(t *testing.T) {
	cfg := preparedConfig(t, t.TempDir())
	for i := 0; i < 80; i++ {
		cfg.WorkDone = append(cfg.WorkDone, models.WorkItem{Work: "more work"})
	}

	doc, err := NewDocument(cfg, labels(t), generated)
	require.NoError(t, err)

	pdf, err := Build(doc)
	require.NoError(t, err)
	assert.Greater(t, pdf.PageCount(), 1)
}

func TestWriteEmptyBillables(t *testing.T) {
	cfg := preparedConfig(t, t.TempDir())
	cfg.Billables = []models.BillableLine{}

	doc, err := NewDocument(cfg, labels(t), generated)
	require.NoError(t, err)

	var b bytes.Buffer
	require.NoError(t, Write(doc, &b))
	assert.Equal(t, lib.Totals{}, doc.Totals)
}

func TestCSVString(t *testing.T) {
	doc, err := NewDocument(preparedConfig(t, t.TempDir()), labels(t), generated)
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(CSVString(doc))).ReadAll()
	require.NoError(t, err)

	require.Len(t, records, 8)
	assert.Equal(t, []string{"Week of:", "Hours/Week", "Rate", "Line Total"}, records[0])
	assert.Equal(t, []string{"Week of June 9 - 15", "32", "€ 50", "€ 1600.0"}, records[2])
	assert.Equal(t, []string{"", "", "Subtotal", "€ 7600.0"}, records[5])
	assert.Equal(t, []string{"", "", "VAT", "€ 570.0"}, records[6])
	assert.Equal(t, []string{"", "", "Total", "€ 8170.0"}, records[7])
}

func TestWriteCSVFile(t *testing.T) {
	dir := t.TempDir()

	doc, err := NewDocument(preparedConfig(t, dir), labels(t), generated)
	require.NoError(t, err)

	path, err := WriteCSVFile(doc)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "invoice_Jun302024.csv"), path)
	assert.FileExists(t, path)
}
