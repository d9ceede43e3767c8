package main

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	c "git.cmcode.dev/cmcode/invoice-planner/constants"
	"git.cmcode.dev/cmcode/invoice-planner/models"

	"gopkg.in/yaml.v3"
)

func isThemeFile(theme string) bool {
	return strings.HasSuffix(theme, ".yml") || strings.HasSuffix(theme, ".yaml")
}

// loadTheme reads themes/${theme}.yml from the embedded themes, or theme
// itself from disk when it names a .yml or .yaml file.
func loadTheme(allThemes fs.FS, theme string) (models.Theme, error) {
	if theme == "" {
		theme = c.DefaultTheme
	}

	var t models.Theme

	var b []byte

	var err error

	file := theme
	if isThemeFile(theme) {
		b, err = os.ReadFile(file)
	} else {
		file = fmt.Sprintf("themes/%v.yml", theme)
		b, err = fs.ReadFile(allThemes, file)
	}

	if err != nil {
		return t, fmt.Errorf("failed to load file %v: %w", file, err)
	}

	err = yaml.Unmarshal(b, &t)
	if err != nil {
		return t, fmt.Errorf("failed to unmarshal file %v: %w", file, err)
	}

	return t, nil
}

// loadThemes loads the requested theme over the default theme, so that
// anything the requested theme leaves out keeps its default color.
func loadThemes(allThemes fs.FS, theme string) (models.Theme, error) {
	t, err := loadTheme(allThemes, c.DefaultTheme)
	if err != nil {
		return t, fmt.Errorf("failed to load default theme %v: %w", c.DefaultTheme, err)
	}

	if t.Preview == nil {
		t.Preview = make(map[string]string)
	}

	switch theme {
	case "":
		fallthrough
	case c.DefaultTheme:
		return t, nil
	default:
		break
	}

	u, err := loadTheme(allThemes, theme)
	if err != nil {
		return t, fmt.Errorf("failed to load specified theme %v: %w", theme, err)
	}

	if u.Colors.ColorLight != nil {
		t.Colors.ColorLight = u.Colors.ColorLight
	}

	if u.Colors.ColorDark != nil {
		t.Colors.ColorDark = u.Colors.ColorDark
	}

	// merge the two maps
	for k, v := range u.Preview {
		t.Preview[k] = v
	}

	return t, nil
}

// themeNames lists the embedded themes.
func themeNames(allThemes embed.FS) []string {
	entries, err := allThemes.ReadDir("themes")
	if err != nil {
		return []string{}
	}

	names := []string{}

	for _, e := range entries {
		if e.IsDir() {
			continue
		}

		names = append(names, strings.TrimSuffix(e.Name(), path.Ext(e.Name())))
	}

	sort.Strings(names)

	return names
}
