package invoice

import (
	c "git.cmcode.dev/cmcode/invoice-planner/constants"
	"git.cmcode.dev/cmcode/invoice-planner/models"
)

// DefaultColors are used when neither the invoice nor the theme sets a color.
func DefaultColors() models.Colors {
	return models.Colors{
		ColorLight: &models.RGB{R: c.ColorLightR, G: c.ColorLightG, B: c.ColorLightB},
		ColorDark:  &models.RGB{R: c.ColorDarkR, G: c.ColorDarkG, B: c.ColorDarkB},
	}
}

// ApplyDefaults fills in every optional setting the invoice left out. marker
// is the currency marker resolved for the template; theme supplies colors
// and may be nil.
func ApplyDefaults(cfg *models.InvoiceConfig, marker string, theme *models.Colors) {
	if cfg.CurrencyMarker == "" {
		cfg.CurrencyMarker = marker
	}

	if cfg.CurrencyMarker == "" {
		cfg.CurrencyMarker = c.DefaultCurrencyMarker
	}

	if cfg.TaxDetails == nil {
		cfg.TaxDetails = &models.TaxDetails{}
	}

	if cfg.TaxDetails.TaxName == "" {
		cfg.TaxDetails.TaxName = c.DefaultTaxName
	}

	if cfg.AppConfig == nil {
		cfg.AppConfig = &models.AppConfig{}
	}

	if cfg.AppConfig.OutputDir == "" {
		cfg.AppConfig.OutputDir = c.DefaultOutputDir
	}

	if cfg.AppConfig.SansFont == "" {
		cfg.AppConfig.SansFont = c.DefaultSansFont
	}

	if cfg.AppConfig.SerifFont == "" {
		cfg.AppConfig.SerifFont = c.DefaultSerifFont
	}

	applyColorDefaults(cfg, theme)
}

func applyColorDefaults(cfg *models.InvoiceConfig, theme *models.Colors) {
	if cfg.Colors == nil {
		cfg.Colors = &models.Colors{}
	}

	fallback := DefaultColors()

	if theme != nil {
		if theme.ColorLight != nil {
			fallback.ColorLight = theme.ColorLight
		}

		if theme.ColorDark != nil {
			fallback.ColorDark = theme.ColorDark
		}
	}

	if cfg.Colors.ColorLight == nil {
		light := *fallback.ColorLight
		cfg.Colors.ColorLight = &light
	}

	if cfg.Colors.ColorDark == nil {
		dark := *fallback.ColorDark
		cfg.Colors.ColorDark = &dark
	}
}
