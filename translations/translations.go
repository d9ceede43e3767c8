package translations

import (
	"fmt"
	"io/fs"
	"strings"

	"gopkg.in/yaml.v3"
)

const DefaultLanguage = "en_US.UTF-8"

// load reads translations/${language}.yml from fsys.
func load(fsys fs.FS, language string) (map[string]string, error) {
	t := make(map[string]string)
	file := fmt.Sprintf("translations/%v.yml", language)

	b, err := fs.ReadFile(fsys, file)
	if err != nil {
		return t, fmt.Errorf("failed to load file %v: %w", file, err)
	}

	err = yaml.Unmarshal(b, &t)
	if err != nil {
		return t, fmt.Errorf("failed to unmarshal file %v: %w", file, err)
	}

	return t, nil
}

// candidates returns the file names to try for a LANG value, most specific
// first: "de_DE.UTF-8" tries "de_DE.UTF-8", then "de_DE", then "de".
func candidates(language string) []string {
	out := []string{language}

	base, _, found := strings.Cut(language, ".")
	if found && base != "" {
		out = append(out, base)
	}

	short, _, found := strings.Cut(base, "_")
	if found && short != "" {
		out = append(out, short)
	}

	return out
}

// Load returns the message map for language, merged over the default
// language so that strings that are not yet translated still show text. An
// empty language, or one without a translation file, yields the default map.
func Load(fsys fs.FS, language string) (map[string]string, error) {
	t, err := load(fsys, DefaultLanguage)
	if err != nil {
		return t, fmt.Errorf("failed to load default translations %v: %w", DefaultLanguage, err)
	}

	if language == "" || language == DefaultLanguage {
		return t, nil
	}

	for _, candidate := range candidates(language) {
		u, err := load(fsys, candidate)
		if err != nil {
			continue
		}

		for k, v := range u {
			t[k] = v
		}

		break
	}

	return t, nil
}

// Get returns the message for key, or the key itself when it has no entry,
// so a missing translation is visible instead of blank.
func Get(t map[string]string, key string) string {
	if v, ok := t[key]; ok && v != "" {
		return v
	}

	return key
}
