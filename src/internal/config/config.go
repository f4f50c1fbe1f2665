package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"bibread/src/internal/bibfile"
)

// Output formats accepted by the CLI.
const (
	OutputJSON   = "json"
	OutputYAML   = "yaml"
	OutputBibTeX = "bibtex"
)

type Config struct {
	Format   bibfile.Format // Unknown means detect
	Output   string
	LogLevel string
}

// Flags registers the settings as persistent flags on fs.
func Flags(fs *pflag.FlagSet) {
	fs.String("format", "auto", "input format: auto, bibtex, json, json-object, endnote, ris")
	fs.StringP("output", "O", OutputJSON, "output format: json, yaml, bibtex")
	fs.String("log-level", "warn", "log level: debug, info, warn, error")
}

// New resolves the configuration from flags, BIB_* environment variables and
// defaults, in that order of precedence. fs may be nil.
func New(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("BIB")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	v.SetDefault("format", "auto")
	v.SetDefault("output", OutputJSON)
	v.SetDefault("log_level", "warn")

	if fs != nil {
		for key, name := range map[string]string{"format": "format", "output": "output", "log_level": "log-level"} {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	format, err := bibfile.ParseFormat(v.GetString("format"))
	if err != nil {
		return nil, fmt.Errorf("invalid format: %w", err)
	}
	cfg := &Config{
		Format:   format,
		Output:   strings.ToLower(strings.TrimSpace(v.GetString("output"))),
		LogLevel: strings.ToLower(strings.TrimSpace(v.GetString("log_level"))),
	}
	switch cfg.Output {
	case OutputJSON, OutputYAML, OutputBibTeX:
	default:
		return nil, fmt.Errorf("invalid output %q: want json, yaml or bibtex", cfg.Output)
	}
	return cfg, nil
}
