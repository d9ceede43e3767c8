package constants

const (
	// AppName is used for the XDG config directory and for settings lookup.
	AppName = "invoice-planner"

	DefaultCurrencyMarker = "$"
	DefaultTaxName        = "Tax"
	DefaultTaxPercentage  = "0"
	DefaultOutputDir      = "./billed"
	DefaultSansFont       = "Helvetica"
	DefaultSerifFont      = "Times"
	DefaultPaymentTerms   = "Net 30"
	DefaultTheme          = "standard"

	// ProbeBillDate is substituted for BILLDATE when the template is expanded
	// only to discover its currency marker.
	ProbeBillDate = "1970-01-01"

	// DateLayout is the layout of billing dates in the values document.
	DateLayout = "2006-01-02"
	// DueDateLayout is the layout of the computed due date.
	DueDateLayout = "2006/01/02"

	HoursPerDay     = 8
	WorkdaysPerWeek = 5
	DaysPerWeek     = 7

	InvoiceFilePrefix = "invoice_"
	PDFExtension      = ".pdf"
	CSVExtension      = ".csv"
)

// Template marker names. Templates reference them as {{.BILLDATE}} or with the
// legacy %(BILLDATE)s syntax.
const (
	MarkerBillDate  = "BILLDATE"
	MarkerWork      = "WORK"
	MarkerBillables = "BILLABLES"
)

// PaymentTermDays lists every accepted "Net N" term.
var PaymentTermDays = map[int]bool{
	30:  true,
	60:  true,
	90:  true,
	120: true,
	180: true,
}

// Default colors, used when neither the config nor the theme sets them.
const (
	ColorLightR = 117
	ColorLightG = 180
	ColorLightB = 209

	ColorDarkR = 16
	ColorDarkG = 46
	ColorDarkB = 95
)

// page geometry, in mm on an A4 portrait page
const (
	PageMarginLeft   = 8.0
	PageMarginRight  = 200.0
	HeaderDividerY   = 50.0
	FooterDividerY   = 275.0
	FooterTextY      = 280.0
	HeaderRightX     = 140.0
	LogoWidth        = 100.0
	BillTableCharMM  = 4.9
	BillablesDescCol = 116.5
	BillablesNumCol  = 25.0
)

// Section and field names as they appear in the invoice configuration
// document. Used when reporting validation failures.
const (
	SectionBusiness  = "business"
	SectionBillTo    = "bill_to"
	SectionBill      = "bill"
	SectionWorkDone  = "work_done"
	SectionBillables = "billables"
)

// Reset clears any tview color tags that precede it.
const Reset = "[-:-:-:-]"
