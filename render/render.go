// Package render lays out a prepared invoice as an A4 PDF, and optionally as
// a CSV of its billable lines.
//
// Every draw function takes the vertical position to start at and returns the
// position the next block should be placed relative to, so the page layout
// reads top to bottom in Build. Units are millimeters.
package render

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	c "git.cmcode.dev/cmcode/invoice-planner/constants"
	ierr "git.cmcode.dev/cmcode/invoice-planner/errors"
	"git.cmcode.dev/cmcode/invoice-planner/lib"
	"git.cmcode.dev/cmcode/invoice-planner/models"
	"git.cmcode.dev/cmcode/invoice-planner/translations"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

const (
	pageWidth  = 210.0
	pageHeight = 297.0

	// the body starts a little below the header divider
	bodyTopY = c.HeaderDividerY + 25
	// continuation pages start right below the header divider
	continuationTopY = c.HeaderDividerY + 5

	billToIndentX = 20.0
	workCellWidth = 125.0
)

var billablesWidths = []float64{c.BillablesDescCol, c.BillablesNumCol, c.BillablesNumCol, c.BillablesNumCol}

// Document is everything needed to draw one invoice.
type Document struct {
	Config    *models.InvoiceConfig
	Date      lib.BillingDate
	Totals    lib.Totals
	Labels    map[string]string
	Generated time.Time

	tr func(string) string
}

// NewDocument computes the invoice number, date and totals for a prepared
// configuration. labels is a translation map; generated is printed in the
// footer.
func NewDocument(cfg *models.InvoiceConfig, labels map[string]string, generated time.Time) (*Document, error) {
	d, err := lib.ParseBillingDate(cfg.BillDate)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHintf("cannot render invoice with billing date %v", cfg.BillDate).
			Mark(ierr.ErrValidation)
	}

	percentage := decimal.Zero
	if cfg.TaxDetails != nil {
		percentage = cfg.TaxDetails.DefaultPercentage.Decimal
	}

	return &Document{
		Config:    cfg,
		Date:      d,
		Totals:    lib.GetTotals(cfg.Billables, percentage),
		Labels:    labels,
		Generated: generated,
	}, nil
}

// Number is the invoice number, e.g. "Jun302024".
func (d *Document) Number() string {
	return d.Date.InvoiceNumber()
}

// OutputPath returns <output_dir>/invoice_<number><ext>.
func (d *Document) OutputPath(ext string) string {
	dir := c.DefaultOutputDir
	if d.Config.AppConfig != nil && d.Config.AppConfig.OutputDir != "" {
		dir = d.Config.AppConfig.OutputDir
	}

	return filepath.Join(dir, c.InvoiceFilePrefix+d.Number()+ext)
}

func (d *Document) label(key string) string {
	return translations.Get(d.Labels, key)
}

func (d *Document) money(cents int64) string {
	return lib.FormatCurrency(d.Config.CurrencyMarker, cents)
}

func (d *Document) taxName() string {
	if d.Config.TaxDetails == nil || d.Config.TaxDetails.TaxName == "" {
		return c.DefaultTaxName
	}

	return d.Config.TaxDetails.TaxName
}

func (d *Document) text(s string) string {
	if d.tr == nil {
		return s
	}

	return d.tr(s)
}

// Build draws the whole invoice and returns the unwritten PDF.
func Build(doc *Document) (*fpdf.Fpdf, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	doc.tr = pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetMargins(c.PageMarginLeft, continuationTopY, pageWidth-c.PageMarginRight)
	pdf.SetAutoPageBreak(true, pageHeight-c.FooterDividerY)
	pdf.SetCreationDate(doc.Generated)
	pdf.SetTitle(fmt.Sprintf("%v %v", doc.label("PDFTitle"), doc.Number()), true)
	pdf.SetAuthor(doc.Config.Business.Name, true)
	pdf.SetCreator(c.AppName, true)

	pdf.SetHeaderFuncMode(func() { drawHeader(pdf, doc) }, true)
	pdf.SetFooterFunc(func() { drawFooter(pdf, doc) })

	pdf.AddPage()

	y := drawBillTo(pdf, doc, bodyTopY)
	y = drawBillTable(pdf, doc, y)
	y = drawWorkTable(pdf, doc, y)
	y = drawBillables(pdf, doc, y)
	drawTotals(pdf, doc, y)

	if err := pdf.Error(); err != nil {
		return nil, ierr.WithError(err).
			WithHintf("failed to lay out invoice %v", doc.Number()).
			Mark(ierr.ErrSystem)
	}

	return pdf, nil
}

// Write renders the invoice to w.
func Write(doc *Document, w io.Writer) error {
	pdf, err := Build(doc)
	if err != nil {
		return err
	}

	if err := pdf.Output(w); err != nil {
		return ierr.WithError(err).
			WithHintf("failed to write invoice %v", doc.Number()).
			Mark(ierr.ErrSystem)
	}

	return nil
}

// WriteFile renders the invoice into the configured output directory,
// creating it if needed, and returns the path written.
func WriteFile(doc *Document) (string, error) {
	path := doc.OutputPath(c.PDFExtension)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", ierr.WithError(err).
			WithHintf("failed to create output directory %v", filepath.Dir(path)).
			Mark(ierr.ErrSystem)
	}

	pdf, err := Build(doc)
	if err != nil {
		return "", err
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", ierr.WithError(err).
			WithHintf("failed to write %v", path).
			Mark(ierr.ErrSystem)
	}

	return path, nil
}

func textRGB(pdf *fpdf.Fpdf, rgb *models.RGB) {
	pdf.SetTextColor(rgb.R, rgb.G, rgb.B)
}

func drawHeader(pdf *fpdf.Fpdf, doc *Document) {
	cfg := doc.Config
	colors := cfg.Colors

	if cfg.Business.ImageFile != "" {
		pdf.ImageOptions(cfg.Business.ImageFile, 0, 10, c.LogoWidth, 0, false, fpdf.ImageOptions{ReadDpi: true}, 0, "")
	}

	pdf.SetFont(cfg.AppConfig.SansFont, "BI", 28)
	textRGB(pdf, colors.ColorDark)
	pdf.SetXY(c.HeaderRightX, 30)
	pdf.Cell(40, 0, doc.text(doc.label("PDFTitle")))

	pdf.SetFont(cfg.AppConfig.SerifFont, "", 12)

	rows := [][2]string{
		{doc.label("PDFDate"), doc.Date.InvoiceDate()},
		{doc.label("PDFInvoiceNumber"), doc.Number()},
	}

	for i, row := range rows {
		pdf.SetXY(c.HeaderRightX, 40+float64(i)*5)
		textRGB(pdf, colors.ColorDark)
		pdf.Cell(20, 0, doc.text(row[0]))
		textRGB(pdf, colors.ColorLight)
		pdf.Cell(20, 0, doc.text(row[1]))
	}

	textRGB(pdf, colors.ColorDark)
	pdf.SetFont(cfg.AppConfig.SerifFont, "B", 14)
	pdf.SetXY(c.PageMarginLeft, 40)
	pdf.Cell(40, 0, doc.text(cfg.Business.Person))

	pdf.SetFont(cfg.AppConfig.SerifFont, "", 10)
	pdf.SetXY(c.PageMarginLeft, 45)
	pdf.Cell(40, 0, doc.text(cfg.Business.Address))

	pdf.SetDrawColor(colors.ColorDark.R, colors.ColorDark.G, colors.ColorDark.B)
	pdf.Line(c.PageMarginLeft, c.HeaderDividerY, c.PageMarginRight, c.HeaderDividerY)
}

func drawFooter(pdf *fpdf.Fpdf, doc *Document) {
	cfg := doc.Config
	colors := cfg.Colors

	pdf.SetDrawColor(colors.ColorDark.R, colors.ColorDark.G, colors.ColorDark.B)
	pdf.Line(c.PageMarginLeft, c.FooterDividerY, c.PageMarginRight, c.FooterDividerY)

	pdf.SetFont(cfg.AppConfig.SerifFont, "", 10)
	pdf.SetXY(c.PageMarginLeft, c.FooterTextY)
	textRGB(pdf, colors.ColorDark)
	pdf.Cell(143, 0, doc.text(cfg.Business.Name))

	textRGB(pdf, colors.ColorLight)
	generated := doc.Generated.UTC().Format("2006-01-02 15:04:05")
	pdf.Cell(40, 0, doc.text(doc.label("PDFGenerated")+generated))
}

// drawBillTo prints the recipient lines, skipping empty ones.
func drawBillTo(pdf *fpdf.Fpdf, doc *Document, y float64) float64 {
	pdf.SetFont(doc.Config.AppConfig.SerifFont, "", 10)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(c.PageMarginLeft, y)
	pdf.Cell(0, 0, doc.text(doc.label("PDFTo")))

	first := true

	for _, field := range doc.Config.BillTo.Fields() {
		if field == "" {
			continue
		}

		if !first {
			pdf.Ln(5)
		}

		first = false

		pdf.SetX(billToIndentX)
		pdf.Cell(0, 0, doc.text(field))
	}

	return pdf.GetY()
}

func headerCellStyle(pdf *fpdf.Fpdf, doc *Document) {
	light := doc.Config.Colors.ColorLight

	pdf.SetTextColor(255, 255, 255)
	pdf.SetDrawColor(64, 64, 64)
	pdf.SetFillColor(light.R, light.G, light.B)
	pdf.SetLineWidth(0.3)
	pdf.SetFont(doc.Config.AppConfig.SerifFont, "B", 10)
}

func contentCellStyle(pdf *fpdf.Fpdf, doc *Document) {
	pdf.SetFillColor(255, 255, 255)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont(doc.Config.AppConfig.SerifFont, "", 8)
}

// drawBillTable prints department, currency, payment terms and due date as a
// two row table. Each column is as wide as its heading.
func drawBillTable(pdf *fpdf.Fpdf, doc *Document, y float64) float64 {
	headings := []string{
		doc.label("PDFDepartment"),
		doc.label("PDFCurrency"),
		doc.label("PDFPaymentTerms"),
		doc.label("PDFDueDate"),
	}

	widths := make([]float64, len(headings))
	for i, h := range headings {
		widths[i] = float64(len([]rune(h))) * c.BillTableCharMM
	}

	headerCellStyle(pdf, doc)
	pdf.SetXY(c.PageMarginLeft, y+10)

	for i, h := range headings {
		pdf.CellFormat(widths[i], 5, doc.text(h), "1", 0, "C", true, 0, "")
	}

	pdf.Ln(5)
	contentCellStyle(pdf, doc)

	for i, v := range doc.Config.Bill.Fields() {
		pdf.CellFormat(widths[i], 4, doc.text(v), "1", 0, "L", true, 0, "")
	}

	return pdf.GetY()
}

// drawWorkTable prints the free-text work notes.
func drawWorkTable(pdf *fpdf.Fpdf, doc *Document, y float64) float64 {
	pdf.SetXY(c.PageMarginLeft, y+20)
	pdf.SetFont(doc.Config.AppConfig.SerifFont, "B", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.Cell(40, 0, doc.text(doc.label("PDFWorkDetails")))

	pdf.Ln(5)
	pdf.SetFont(doc.Config.AppConfig.SerifFont, "", 10)

	for _, item := range doc.Config.WorkDone {
		pdf.Cell(workCellWidth, 5, doc.text(item.Work))
		pdf.Ln(5)
	}

	return pdf.GetY()
}

// drawBillables prints one row per billable line. The cost column is always
// recomputed from rate and hours.
func drawBillables(pdf *fpdf.Fpdf, doc *Document, y float64) float64 {
	headings := []string{
		doc.label("PDFWeekOf"),
		doc.label("PDFHoursPerWeek"),
		doc.label("PDFRate"),
		doc.label("PDFLineTotal"),
	}

	headerCellStyle(pdf, doc)
	pdf.SetXY(c.PageMarginLeft, y+10)

	for i, h := range headings {
		pdf.CellFormat(billablesWidths[i], 5, doc.text(h), "1", 0, "C", true, 0, "")
	}

	pdf.Ln(5)
	contentCellStyle(pdf, doc)

	for _, line := range doc.Config.Billables {
		row := []string{line.Description, line.Hours, line.Rate, doc.money(lib.LineCost(line))}
		for i, v := range row {
			pdf.CellFormat(billablesWidths[i], 4, doc.text(v), "1", 0, "R", true, 0, "")
		}

		pdf.Ln(4)
	}

	return pdf.GetY()
}

// drawTotals prints subtotal, tax and total under the last two columns of
// the billables table, with a rule above the total.
func drawTotals(pdf *fpdf.Fpdf, doc *Document, y float64) float64 {
	labelWidth := billablesWidths[len(billablesWidths)-2]
	valueWidth := billablesWidths[len(billablesWidths)-1]

	blanks := func() {
		for _, w := range billablesWidths[:len(billablesWidths)-2] {
			pdf.Cell(w, 4, "")
		}
	}

	pdf.SetDrawColor(255, 255, 255)
	contentCellStyle(pdf, doc)
	pdf.SetXY(c.PageMarginLeft, y+2)

	blanks()
	pdf.CellFormat(labelWidth, 4, doc.text(doc.label("PDFSubtotal")), "1", 0, "R", true, 0, "")
	pdf.CellFormat(valueWidth, 4, doc.text(doc.money(doc.Totals.Subtotal)), "1", 0, "R", true, 0, "")

	pdf.Ln(4)
	blanks()
	pdf.CellFormat(labelWidth, 4, doc.text(doc.taxName()), "1", 0, "R", true, 0, "")
	pdf.CellFormat(valueWidth, 4, doc.text(doc.money(doc.Totals.Tax)), "1", 0, "R", true, 0, "")

	pdf.Ln(4)
	blanks()
	pdf.SetFont(doc.Config.AppConfig.SerifFont, "B", 10)

	x, top := pdf.GetXY()
	pdf.CellFormat(labelWidth, 6, doc.text(doc.label("PDFTotal")), "1", 0, "R", true, 0, "")
	pdf.CellFormat(valueWidth, 6, doc.text(doc.money(doc.Totals.Total)), "1", 0, "R", true, 0, "")

	pdf.SetDrawColor(64, 64, 64)
	pdf.Line(x, top, pdf.GetX(), top)

	pdf.Ln(6)

	return pdf.GetY()
}
