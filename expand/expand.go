// Package expand turns an invoice template plus one entry of the values
// document into an invoice configuration.
//
// Templates are YAML documents with three markers: {{.BILLDATE}}, {{.WORK}}
// and {{.BILLABLES}} (the older %(BILLDATE)s spelling is accepted too). WORK
// and BILLABLES are replaced by whole YAML blocks, so they belong at the start
// of a line.
//
// The billable lines need the currency marker, which the template itself may
// define. The template is therefore expanded twice: once with placeholder
// values, only to read currency_marker, and then once per billing date with
// the generated blocks.
package expand

import (
	"bytes"
	"regexp"
	"sort"
	"strings"
	"text/template"

	c "git.cmcode.dev/cmcode/invoice-planner/constants"
	ierr "git.cmcode.dev/cmcode/invoice-planner/errors"
	"git.cmcode.dev/cmcode/invoice-planner/lib"
	"git.cmcode.dev/cmcode/invoice-planner/logger"
	"git.cmcode.dev/cmcode/invoice-planner/models"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

var legacyMarker = regexp.MustCompile(`%\((` + c.MarkerBillDate + `|` + c.MarkerWork + `|` + c.MarkerBillables + `)\)s`)

type Expander struct {
	tmpl     *template.Template
	marker   string
	log      *logger.Logger
	validate *validator.Validate
}

// New parses the template text and resolves its currency marker. The
// marker is taken from the template's own currency_marker if it has one,
// then from fallbackMarker, then "$".
func New(text, fallbackMarker string, log *logger.Logger) (*Expander, error) {
	if log == nil {
		log = logger.L
	}

	src := text
	if legacyMarker.MatchString(src) {
		src = legacyMarker.ReplaceAllString(src, "{{.$1}}")
		src = strings.ReplaceAll(src, "%%", "%")
	}

	tmpl, err := template.New("invoice").Option("missingkey=error").Parse(src)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("failed to parse invoice template").
			Mark(ierr.ErrParse)
	}

	e := &Expander{
		tmpl:     tmpl,
		log:      log,
		validate: validator.New(),
	}

	e.marker = e.probe(fallbackMarker)

	return e, nil
}

// CurrencyMarker is the marker resolved when the template was loaded. It is
// shared by every billing date expanded with this template.
func (e *Expander) CurrencyMarker() string {
	return e.marker
}

// probe expands the template with a dummy billing date and empty blocks and
// reads only currency_marker from the result. The document may well be
// incomplete at this point, so nothing here is allowed to fail.
func (e *Expander) probe(fallbackMarker string) string {
	text, err := e.execute(c.ProbeBillDate, "", "")
	if err != nil {
		e.log.Debugw("probe expansion failed, using fallback currency marker", "error", err)

		return ResolveCurrencyMarker("", fallbackMarker)
	}

	var probed struct {
		CurrencyMarker string `yaml:"currency_marker"`
	}

	if err := yaml.Unmarshal([]byte(text), &probed); err != nil {
		e.log.Debugw("probe document did not parse, using fallback currency marker", "error", err)

		return ResolveCurrencyMarker("", fallbackMarker)
	}

	return ResolveCurrencyMarker(probed.CurrencyMarker, fallbackMarker)
}

// ResolveCurrencyMarker returns the first non-blank of the template marker,
// the fallback marker and "$".
func ResolveCurrencyMarker(templateMarker, fallbackMarker string) string {
	marker, _ := lo.Coalesce(
		strings.TrimSpace(templateMarker),
		strings.TrimSpace(fallbackMarker),
		c.DefaultCurrencyMarker,
	)

	return marker
}

// Expand builds the invoice configuration for one billing date: it computes
// the billable lines, serializes them and the work notes into the template,
// and decodes the result. Defaults and validation are left to the invoice
// package.
func (e *Expander) Expand(entry models.ValuesEntry) (*models.InvoiceConfig, error) {
	d, err := lib.ParseBillingDate(entry.BillDate)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHintf("bad billing date %v in values document", entry.BillDate).
			Mark(ierr.ErrParse)
	}

	if err := e.validate.Struct(entry); err != nil {
		return nil, ierr.WithError(err).
			WithHintf("values for %v need both rate and work_done", entry.BillDate).
			Mark(ierr.ErrValidation)
	}

	if bad := lib.OutOfRangeDays(d.Year, d.Month, entry.OffDays); len(bad) > 0 {
		e.log.Warnw("ignoring off days that are not in the billed month", "billdate", entry.BillDate, "days", bad)
	}

	lines, err := lib.BillablesForDate(entry.BillDate, string(entry.Rate), entry.OffDays, e.marker)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHintf("failed to compute billables for %v", entry.BillDate).
			Mark(ierr.ErrSystem)
	}

	work, err := yaml.Marshal(map[string][]models.WorkItem{c.SectionWorkDone: entry.WorkDone})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("failed to serialize work notes").
			Mark(ierr.ErrSystem)
	}

	billables, err := yaml.Marshal(map[string][]models.BillableLine{c.SectionBillables: lines})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("failed to serialize billables").
			Mark(ierr.ErrSystem)
	}

	text, err := e.execute(entry.BillDate, string(work), string(billables))
	if err != nil {
		return nil, ierr.WithError(err).
			WithHintf("failed to expand template for %v", entry.BillDate).
			Mark(ierr.ErrParse)
	}

	cfg, err := Decode([]byte(text))
	if err != nil {
		return nil, ierr.WithError(err).
			WithHintf("expanded template for %v is not a valid document", entry.BillDate).
			Mark(ierr.ErrParse)
	}

	cfg.BillDate = entry.BillDate

	e.log.Debugw("expanded template", "billdate", entry.BillDate, "lines", len(cfg.Billables))

	return cfg, nil
}

func (e *Expander) execute(billdate, work, billables string) (string, error) {
	var b bytes.Buffer

	err := e.tmpl.Execute(&b, map[string]string{
		c.MarkerBillDate:  billdate,
		c.MarkerWork:      work,
		c.MarkerBillables: billables,
	})
	if err != nil {
		return "", err
	}

	return b.String(), nil
}

// Decode parses an expanded document into an InvoiceConfig and records which
// keys each section actually contained.
func Decode(b []byte) (*models.InvoiceConfig, error) {
	var cfg models.InvoiceConfig
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, err
	}

	var raw map[string]interface{}
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return nil, err
	}

	cfg.Keys = sectionKeys(raw)

	return &cfg, nil
}

func sectionKeys(raw map[string]interface{}) map[string][]string {
	keys := map[string][]string{"": lo.Keys(raw)}

	for name, section := range raw {
		m, ok := section.(map[string]interface{})
		if !ok {
			continue
		}

		keys[name] = lo.Keys(m)
	}

	for name := range keys {
		sort.Strings(keys[name])
	}

	return keys
}
