package invoice

import (
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strconv"
	"strings"

	c "git.cmcode.dev/cmcode/invoice-planner/constants"
	ierr "git.cmcode.dev/cmcode/invoice-planner/errors"
	"git.cmcode.dev/cmcode/invoice-planner/models"

	"github.com/go-playground/validator/v10"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/lo"
)

// maxSuggestDistance bounds how far a misspelled key may be from the field
// it is suggested for.
const maxSuggestDistance = 2

var indexed = regexp.MustCompile(`^(.+)\[(\d+)\]$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}

		return name
	})

	return v
}

// Validate checks every mandatory section and setting of the invoice and
// returns one error per problem found, in a stable order. A nil result means
// the invoice can be rendered.
func Validate(cfg *models.InvoiceConfig) []error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !ierr.As(err, &verrs) {
		return []error{err}
	}

	msgs := lo.Uniq(lo.Map(verrs, func(fe validator.FieldError, _ int) string {
		return describe(cfg, fe)
	}))

	return lo.Map(msgs, func(msg string, _ int) error {
		return fmt.Errorf("%v", msg)
	})
}

// describe turns one validator failure into the message shown to the user.
func describe(cfg *models.InvoiceConfig, fe validator.FieldError) string {
	// drop the root struct name: "InvoiceConfig.bill_to.email"
	path := strings.Split(fe.Namespace(), ".")[1:]

	switch {
	case fe.Tag() == "file":
		return fmt.Sprintf("no such image file %v", fe.Value())
	case fe.Tag() == "min" || fe.Tag() == "max":
		return fmt.Sprintf("%v must be between 0 and 255", strings.Join(path, "."))
	case fe.Tag() != "required":
		return fmt.Sprintf("%v failed the %v check", strings.Join(path, "."), fe.Tag())
	}

	if len(path) == 1 {
		return fmt.Sprintf("config is missing mandatory stanza %v", path[0]) +
			suggestion(path[0], cfg.Keys[""], topLevelFields())
	}

	section, field := path[0], path[len(path)-1]

	if m := indexed.FindStringSubmatch(section); m != nil {
		n, _ := strconv.Atoi(m[2])

		return fmt.Sprintf("%v entry %v is missing mandatory setting %v", m[1], n+1, field)
	}

	return fmt.Sprintf("%v stanza is missing mandatory setting %v", section, field) +
		suggestion(field, cfg.Keys[section], sectionFields(section))
}

// suggestion returns a " (did you mean x?)" hint when the document contains
// an unrecognized key that looks like a misspelling of want.
func suggestion(want string, present, known []string) string {
	unknown := lo.Without(present, known...)
	if len(unknown) == 0 {
		return ""
	}

	ranks := fuzzy.RankFindFold(want, unknown)
	if len(ranks) > 0 {
		sort.Sort(ranks)

		return fmt.Sprintf(" (did you mean %v?)", ranks[0].Target)
	}

	closest := lo.MinBy(unknown, func(a, b string) bool {
		return fuzzy.LevenshteinDistance(want, a) < fuzzy.LevenshteinDistance(want, b)
	})

	if fuzzy.LevenshteinDistance(want, closest) > maxSuggestDistance {
		return ""
	}

	return fmt.Sprintf(" (did you mean %v?)", closest)
}

func topLevelFields() []string {
	return yamlFields(reflect.TypeOf(models.InvoiceConfig{}))
}

func sectionFields(section string) []string {
	switch section {
	case c.SectionBusiness:
		return yamlFields(reflect.TypeOf(models.Business{}))
	case c.SectionBillTo:
		return yamlFields(reflect.TypeOf(models.BillTo{}))
	case c.SectionBill:
		return yamlFields(reflect.TypeOf(models.Bill{}))
	default:
		return nil
	}
}

func yamlFields(t reflect.Type) []string {
	out := []string{}

	for i := 0; i < t.NumField(); i++ {
		name := strings.SplitN(t.Field(i).Tag.Get("yaml"), ",", 2)[0]
		if name != "" && name != "-" {
			out = append(out, name)
		}
	}

	return out
}
