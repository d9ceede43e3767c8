package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	c "git.cmcode.dev/cmcode/invoice-planner/constants"
	ierr "git.cmcode.dev/cmcode/invoice-planner/errors"
	"git.cmcode.dev/cmcode/invoice-planner/models"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

// Flags holds the parsed command line.
type Flags struct {
	Template string
	Values   string
	Help     bool
	Theme    string
	Preview  bool
}

// parseArgs parses the command line arguments (without the program name),
// using t as the translation map for flag descriptions and errors. Each flag
// can be given in its short or long form, with one or two dashes.
func parseArgs(args []string, t map[string]string) (Flags, error) {
	var f Flags

	fs := flag.NewFlagSet(c.AppName, flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&f.Template, "t", "", t["UsageFlagTemplate"])
	fs.StringVar(&f.Template, "template", "", t["UsageFlagTemplate"])
	fs.StringVar(&f.Values, "v", "", t["UsageFlagValues"])
	fs.StringVar(&f.Values, "values", "", t["UsageFlagValues"])
	fs.BoolVar(&f.Help, "h", false, t["UsageFlagHelp"])
	fs.BoolVar(&f.Help, "help", false, t["UsageFlagHelp"])
	fs.StringVar(&f.Theme, "theme", "", t["UsageFlagTheme"])
	fs.BoolVar(&f.Preview, "preview", false, t["UsageFlagPreview"])

	if err := fs.Parse(args); err != nil {
		return f, ierr.WithError(err).
			WithHint(err.Error()).
			Mark(ierr.ErrUsage)
	}

	if fs.NArg() > 0 {
		return f, ierr.NewErrorf("unexpected arguments %v", fs.Args()).
			WithHintf("%v: %v", t["ErrorUnexpectedArguments"], strings.Join(fs.Args(), " ")).
			Mark(ierr.ErrUsage)
	}

	if f.Help {
		return f, nil
	}

	if f.Template == "" || f.Values == "" {
		return f, ierr.NewError("missing template or values flag").
			WithHint(t["ErrorMissingFlag"]).
			Mark(ierr.ErrUsage)
	}

	return f, nil
}

func fileExists(name string) (bool, error) {
	info, err := os.Stat(name)
	if err == nil {
		return !info.IsDir(), nil
	}

	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}

	return false, err
}

// resolvePath returns file if it exists. A relative path that does not exist
// is then looked up in the XDG config directory, e.g.
// ~/.config/invoice-planner/template.yml.
func resolvePath(file string, t map[string]string) (string, error) {
	candidates := []string{file}
	if !filepath.IsAbs(file) {
		candidates = append(candidates, filepath.Join(xdg.ConfigHome, c.AppName, file))
	}

	for _, candidate := range candidates {
		exists, err := fileExists(candidate)
		if err != nil {
			return "", ierr.WithError(err).
				WithHintf("failed to check if file %v exists", candidate).
				Mark(ierr.ErrSystem)
		}

		if exists {
			return candidate, nil
		}
	}

	return "", ierr.NewErrorf("no such file %v", file).
		WithHintf("%v: %v", t["ErrorNoSuchFile"], file).
		Mark(ierr.ErrUsage)
}

// loadInputs resolves and reads the template and values files.
func loadInputs(f Flags, t map[string]string) (string, models.Values, error) {
	templatePath, err := resolvePath(f.Template, t)
	if err != nil {
		return "", nil, err
	}

	valuesPath, err := resolvePath(f.Values, t)
	if err != nil {
		return "", nil, err
	}

	tmpl, err := os.ReadFile(templatePath)
	if err != nil {
		return "", nil, ierr.WithError(err).
			WithHintf("failed to read template %v", templatePath).
			Mark(ierr.ErrSystem)
	}

	b, err := os.ReadFile(valuesPath)
	if err != nil {
		return "", nil, ierr.WithError(err).
			WithHintf("%v %v", t["ErrorFailedToReadValues"], valuesPath).
			Mark(ierr.ErrSystem)
	}

	values, err := parseValues(b)
	if err != nil {
		return "", nil, ierr.WithError(err).
			WithHintf("failed to parse values file %v: %v", valuesPath, err.Error()).
			Mark(ierr.ErrParse)
	}

	return string(tmpl), values, nil
}

func parseValues(b []byte) (models.Values, error) {
	var values models.Values

	if err := yaml.Unmarshal(b, &values); err != nil {
		return nil, err
	}

	if len(values) == 0 {
		return nil, fmt.Errorf("values document has no billing dates")
	}

	return values, nil
}
