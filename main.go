package main

import (
	"embed"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	ierr "git.cmcode.dev/cmcode/invoice-planner/errors"
	"git.cmcode.dev/cmcode/invoice-planner/expand"
	"git.cmcode.dev/cmcode/invoice-planner/invoice"
	"git.cmcode.dev/cmcode/invoice-planner/lib"
	"git.cmcode.dev/cmcode/invoice-planner/logger"
	"git.cmcode.dev/cmcode/invoice-planner/models"
	"git.cmcode.dev/cmcode/invoice-planner/render"
	"git.cmcode.dev/cmcode/invoice-planner/settings"
	"git.cmcode.dev/cmcode/invoice-planner/translations"

	"github.com/google/uuid"
)

//go:embed translations/*.yml
var AllTranslations embed.FS

//go:embed themes/*.yml
var AllThemes embed.FS

// InvoicePlanner holds everything one run of the command needs.
type InvoicePlanner struct {
	// Translations that are loaded at runtime.
	T map[string]string

	// Parsed command line flags.
	Flags Flags

	// Runtime settings from invoicer.yaml, .env and the environment.
	Settings *settings.Settings

	// The active theme, merged over the standard theme. Its colors are the
	// defaults for invoices that do not set their own.
	Theme models.Theme

	// Names of the embedded themes, listed in the usage message.
	Themes []string

	Log *logger.Logger

	// Now is printed in each invoice footer.
	Now func() time.Time

	// The error stream for usage and validation messages.
	Stderr io.Writer
}

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

// run executes the command and returns the process exit code.
func run(args []string, stderr io.Writer) int {
	t, err := translations.Load(AllTranslations, os.Getenv("LANG"))
	if err != nil {
		fmt.Fprintf(stderr, "failed to load translations: %v\n", err.Error())

		return 1
	}

	p := &InvoicePlanner{
		T:      t,
		Themes: themeNames(AllThemes),
		Now:    time.Now,
		Stderr: stderr,
	}

	p.Flags, err = parseArgs(args, t)
	if err != nil {
		usage(stderr, t, p.Themes, ierr.GetHint(err))

		return 1
	}

	if p.Flags.Help {
		usage(stderr, t, p.Themes, "")

		return 1
	}

	p.Settings, err = settings.Load(settings.DefaultOptions())
	if err != nil {
		fmt.Fprintf(stderr, "%v: %v\n", t["ErrorFailedToLoadSettings"], err.Error())

		return 1
	}

	p.Log = logger.Init(p.Settings.Log.Level).With("run", uuid.NewString())

	theme := p.Settings.Theme
	if p.Flags.Theme != "" {
		theme = p.Flags.Theme
	}

	p.Theme, err = loadThemes(AllThemes, theme)
	if err != nil {
		p.Log.Errorw(t["ErrorFailedToLoadThemes"], "theme", theme, "error", err)

		return 1
	}

	if err := p.Run(); err != nil {
		return p.report(err)
	}

	return 0
}

// Run processes every billing date of the values file in document order. Each
// date is expanded, prepared and written before the next one starts, and the
// first failure stops the run.
func (p *InvoicePlanner) Run() error {
	text, values, err := loadInputs(p.Flags, p.T)
	if err != nil {
		return err
	}

	e, err := expand.New(text, p.Settings.CurrencyMarker, p.Log)
	if err != nil {
		return err
	}

	p.Log.Debugw("loaded template", "template", p.Flags.Template, "currency_marker", e.CurrencyMarker(), "invoices", len(values))

	docs := []*render.Document{}

	for _, entry := range values {
		doc, err := p.prepare(e, entry)
		if err != nil {
			return err
		}

		if p.Flags.Preview {
			docs = append(docs, doc)

			continue
		}

		if err := p.write(doc); err != nil {
			return err
		}
	}

	if p.Flags.Preview {
		if err := runPreview(docs, p.T, p.Theme.Preview); err != nil {
			return ierr.WithError(err).
				WithHint("failed to run preview").
				Mark(ierr.ErrSystem)
		}
	}

	return nil
}

func (p *InvoicePlanner) prepare(e *expand.Expander, entry models.ValuesEntry) (*render.Document, error) {
	cfg, err := e.Expand(entry)
	if err != nil {
		return nil, err
	}

	if err := invoice.Prepare(cfg, e.CurrencyMarker(), &p.Theme.Colors); err != nil {
		return nil, err
	}

	return render.NewDocument(cfg, p.T, p.Now())
}

func (p *InvoicePlanner) write(doc *render.Document) error {
	path, err := render.WriteFile(doc)
	if err != nil {
		return ierr.WithError(err).
			WithMessagef("%v %v", p.T["ErrorFailedToRender"], doc.Number()).
			Mark(ierr.ErrSystem)
	}

	p.Log.Infow(p.T["InfoWroteInvoice"],
		"billdate", doc.Config.BillDate,
		"invoice", doc.Number(),
		"lines", len(doc.Config.Billables),
		"total", lib.FormatCurrency(doc.Config.CurrencyMarker, doc.Totals.Total),
		"path", path,
	)

	if !doc.Config.AppConfig.CSVExport {
		return nil
	}

	path, err = render.WriteCSVFile(doc)
	if err != nil {
		return ierr.WithError(err).
			WithMessage(p.T["ErrorFailedToRender"]).
			Mark(ierr.ErrSystem)
	}

	p.Log.Infow(p.T["InfoWroteInvoice"], "invoice", doc.Number(), "path", path)

	return nil
}

// report writes err to the error stream in the form its kind calls for and
// returns the exit code.
func (p *InvoicePlanner) report(err error) int {
	hint := ierr.GetHint(err)

	switch {
	case ierr.IsUsage(err):
		usage(p.Stderr, p.T, p.Themes, hint)
	case ierr.IsValidation(err):
		lines := []string{hint}

		for _, problem := range invoice.Problems(err) {
			p.Log.Debugw("invalid configuration", "problem", problem)
			lines = append(lines, problem)
		}

		lines = append(lines, p.T["ErrorBadConfig"])
		usage(p.Stderr, p.T, p.Themes, strings.Join(lines, "\n"))
	case ierr.IsSystem(err):
		p.Log.Errorw(hint, "error", err)
		fmt.Fprintf(p.Stderr, "%v: %v\n", hint, err.Error())
	default:
		p.Log.Debugw(hint, "error", err)
		fmt.Fprintf(p.Stderr, "%v: %v\n", hint, err.Error())
	}

	return 1
}
