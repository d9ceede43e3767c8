package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// InvoiceConfig is one fully expanded invoice document. It is built once per
// billing date, normalized and validated, and read-only afterwards.
type InvoiceConfig struct {
	BillDate       string         `yaml:"billdate"`
	Business       *Business      `yaml:"business" validate:"required"`
	BillTo         *BillTo        `yaml:"bill_to" validate:"required"`
	Bill           *Bill          `yaml:"bill" validate:"required"`
	WorkDone       []WorkItem     `yaml:"work_done" validate:"required"`
	Billables      []BillableLine `yaml:"billables" validate:"required,dive"`
	TaxDetails     *TaxDetails    `yaml:"tax_details"`
	CurrencyMarker string         `yaml:"currency_marker"`
	AppConfig      *AppConfig     `yaml:"app_config"`
	Colors         *Colors        `yaml:"colors"`

	// Keys holds the keys that were actually written in each section of the
	// source document, keyed by section name. Top-level keys are under "".
	Keys map[string][]string `yaml:"-"`
}

type Business struct {
	Name      string `yaml:"name" validate:"required"`
	Person    string `yaml:"person" validate:"required"`
	Address   string `yaml:"address" validate:"required"`
	ImageFile string `yaml:"image_file,omitempty" validate:"omitempty,file"`
}

type BillTo struct {
	Email        string `yaml:"email" validate:"required"`
	Name         string `yaml:"name" validate:"required"`
	Street       string `yaml:"street" validate:"required"`
	CityStateZip string `yaml:"city_state_zip" validate:"required"`
	Country      string `yaml:"country" validate:"required"`
}

// Fields returns the bill-to lines in display order.
func (b *BillTo) Fields() []string {
	if b == nil {
		return nil
	}

	return []string{b.Email, b.Name, b.Street, b.CityStateZip, b.Country}
}

type Bill struct {
	Department   string `yaml:"department" validate:"required"`
	Currency     string `yaml:"currency" validate:"required"`
	PaymentTerms string `yaml:"payment_terms" validate:"required"`
	DueDate      string `yaml:"due_date" validate:"required"`
}

// Fields returns the bill table values, in the same order as its headers.
func (b *Bill) Fields() []string {
	if b == nil {
		return nil
	}

	return []string{b.Department, b.Currency, b.PaymentTerms, b.DueDate}
}

// BillableLine is one row of the itemized table. Rate and Cost carry the
// currency marker, e.g. "$ 50" and "$ 2000.0".
type BillableLine struct {
	Description string `yaml:"description" validate:"required"`
	Hours       string `yaml:"hours" validate:"required"`
	Rate        string `yaml:"rate" validate:"required"`
	Cost        string `yaml:"cost,omitempty"`
}

// WorkItem is one free-text note in the work details list. In documents it can
// be written either as a plain string or as a mapping with a "work" key.
type WorkItem struct {
	Work string `yaml:"work"`
}

func (w *WorkItem) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		w.Work = value.Value

		return nil
	case yaml.MappingNode:
		type plain WorkItem

		var p plain

		if err := value.Decode(&p); err != nil {
			return fmt.Errorf("failed to decode work item at line %v: %w", value.Line, err)
		}

		*w = WorkItem(p)

		return nil
	default:
		return fmt.Errorf("work item at line %v must be a string or a mapping", value.Line)
	}
}

type TaxDetails struct {
	TaxName           string     `yaml:"tax_name"`
	DefaultPercentage Percentage `yaml:"default_percentage"`
}

// Percentage is a tax rate such as 7.5; a trailing % sign is accepted.
type Percentage struct {
	decimal.Decimal
}

func NewPercentage(s string) (Percentage, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%")))
	if err != nil {
		return Percentage{}, fmt.Errorf("invalid percentage %q: %w", s, err)
	}

	return Percentage{Decimal: d}, nil
}

func (p *Percentage) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("percentage at line %v must be a number", value.Line)
	}

	if value.Value == "" {
		p.Decimal = decimal.Zero

		return nil
	}

	n, err := NewPercentage(value.Value)
	if err != nil {
		return err
	}

	*p = n

	return nil
}

func (p Percentage) MarshalYAML() (interface{}, error) {
	return p.Decimal.String(), nil
}

type AppConfig struct {
	OutputDir string `yaml:"output_dir"`
	SansFont  string `yaml:"sans_font"`
	SerifFont string `yaml:"serif_font"`
	// if true, a csv file with the same name as the pdf is written next to it
	CSVExport bool `yaml:"csv_export"`
}

type RGB struct {
	R int `yaml:"r" validate:"min=0,max=255"`
	G int `yaml:"g" validate:"min=0,max=255"`
	B int `yaml:"b" validate:"min=0,max=255"`
}

type Colors struct {
	ColorLight *RGB `yaml:"color_light"`
	ColorDark  *RGB `yaml:"color_dark"`
}

// Scalar keeps the literal text of a YAML scalar, so that rate: 50 and
// rate: "50" read the same.
type Scalar string

func (s *Scalar) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("value at line %v must be a scalar", value.Line)
	}

	*s = Scalar(value.Value)

	return nil
}

// ValuesEntry holds the monthly facts for one billing date.
type ValuesEntry struct {
	BillDate string     `yaml:"-"`
	Rate     Scalar     `yaml:"rate" validate:"required"`
	WorkDone []WorkItem `yaml:"work_done" validate:"required"`
	OffDays  []int      `yaml:"off_days"`
}

// Values is the values document: billing date keys mapped to their entries,
// kept in document order.
type Values []ValuesEntry

func (v *Values) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("values document must be a mapping of billing dates, got line %v", value.Line)
	}

	out := make(Values, 0, len(value.Content)/2)

	for i := 0; i+1 < len(value.Content); i += 2 {
		key := value.Content[i].Value

		var e ValuesEntry

		if err := value.Content[i+1].Decode(&e); err != nil {
			return fmt.Errorf("failed to decode values for %v: %w", key, err)
		}

		e.BillDate = key
		out = append(out, e)
	}

	*v = out

	return nil
}

type TableCell struct {
	Color  string
	Text   string
	Expand int
	Align  int
}

// Theme supplies the default PDF colors and the tview color tags used by the
// preview table.
type Theme struct {
	Colors  Colors            `yaml:"colors"`
	Preview map[string]string `yaml:"preview"`
}
