package settings

import (
	"errors"
	"io/fs"
	"path"
	"strings"

	c "git.cmcode.dev/cmcode/invoice-planner/constants"
	ierr "git.cmcode.dev/cmcode/invoice-planner/errors"

	"github.com/adrg/xdg"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Settings are the runtime options that do not belong to any one invoice.
// They come from, in increasing priority: built-in defaults, an optional
// invoicer.yaml, a .env file, and INVOICER_* environment variables.
type Settings struct {
	Log LogSettings `mapstructure:"log" validate:"required"`

	// CurrencyMarker is the fallback used when a template does not define
	// its own currency_marker.
	CurrencyMarker string `mapstructure:"currency_marker" validate:"required"`

	// Theme names an embedded theme, or a path to a .yml theme file.
	Theme string `mapstructure:"theme" validate:"required"`
}

type LogSettings struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
}

type Options struct {
	// EnvFile is loaded into the environment first if it exists.
	EnvFile string

	// ConfigPaths are searched in order for invoicer.yaml.
	ConfigPaths []string
}

// DefaultOptions looks for .env and invoicer.yaml in the working directory,
// then for invoicer.yaml in the XDG config directory.
func DefaultOptions() Options {
	return Options{
		EnvFile: ".env",
		ConfigPaths: []string{
			".",
			path.Join(xdg.ConfigHome, c.AppName),
		},
	}
}

func Load(opts Options) (*Settings, error) {
	if opts.EnvFile != "" {
		err := godotenv.Load(opts.EnvFile)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, ierr.WithError(err).
				WithHintf("failed to load env file %v", opts.EnvFile).
				Mark(ierr.ErrSystem)
		}
	}

	v := viper.New()

	v.SetDefault("log.level", "info")
	v.SetDefault("currency_marker", c.DefaultCurrencyMarker)
	v.SetDefault("theme", c.DefaultTheme)

	v.SetConfigName("invoicer")
	v.SetConfigType("yaml")

	for _, p := range opts.ConfigPaths {
		v.AddConfigPath(p)
	}

	v.SetEnvPrefix("INVOICER")
	v.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))
	v.AutomaticEnv()

	if len(opts.ConfigPaths) > 0 {
		if err := v.ReadInConfig(); err != nil {
			if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
				return nil, ierr.WithError(err).
					WithHint("failed to read invoicer.yaml").
					Mark(ierr.ErrParse)
			}
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, ierr.WithError(err).
			WithHint("failed to unmarshal settings").
			Mark(ierr.ErrParse)
	}

	s.Log.Level = strings.ToLower(strings.TrimSpace(s.Log.Level))

	if err := s.Validate(); err != nil {
		return nil, err
	}

	return &s, nil
}

func (s Settings) Validate() error {
	if err := validator.New().Struct(s); err != nil {
		return ierr.WithError(err).
			WithHint("invalid settings").
			Mark(ierr.ErrValidation)
	}

	return nil
}
