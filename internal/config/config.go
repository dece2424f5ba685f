package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/caarlos0/env/v6"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/privatekonomi/statements/internal/banks"
	"github.com/privatekonomi/statements/internal/importer"
)

// DefaultPath is the config file looked up in the working directory.
const DefaultPath = "statements.yaml"

// Config represents the top-level statements.yaml configuration.
type Config struct {
	Import ImportConfig `yaml:"import"`
	Output OutputConfig `yaml:"output"`
	Log    LogConfig    `yaml:"log"`
}

// ImportConfig controls parser selection.
type ImportConfig struct {
	DefaultBank string `yaml:"default_bank,omitempty" env:"STATEMENTS_DEFAULT_BANK"`
	SampleBytes int    `yaml:"sample_bytes" env:"STATEMENTS_SAMPLE_BYTES" validate:"gt=0"`
}

// OutputConfig controls how parsed transactions are written.
type OutputConfig struct {
	Format   string `yaml:"format" env:"STATEMENTS_OUTPUT_FORMAT" validate:"oneof=table csv json yaml xlsx"`
	Currency string `yaml:"currency" env:"STATEMENTS_CURRENCY" validate:"len=3,uppercase"`
}

// LogConfig sets the diagnostic log level.
type LogConfig struct {
	Level string `yaml:"level" env:"STATEMENTS_LOG_LEVEL" validate:"oneof=debug info warn error"`
}

// Load reads a statements.yaml file from disk. Keys absent from the file keep their
// default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Import: ImportConfig{
			SampleBytes: importer.DefaultSampleSize,
		},
		Output: OutputConfig{
			Format:   "table",
			Currency: "SEK",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Resolve builds the effective configuration: defaults, then the file at path if it
// exists, then STATEMENTS_* environment variables. The result is validated.
func Resolve(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		cfg, err = Default(), nil
	}
	if err != nil {
		return nil, err
	}
	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields whose environment variable is set.
func ApplyEnv(cfg *Config) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("reading environment: %w", err)
	}
	return nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks enumerations, the sample size and that the default bank is supported.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s: failed %q (got %v)", fe.Namespace(), fe.Tag(), fe.Value()))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.Import.DefaultBank != "" {
		if _, ok := banks.ByName(c.Import.DefaultBank); !ok {
			return fmt.Errorf("invalid config: default_bank %q: %w", c.Import.DefaultBank, importer.ErrUnsupportedBank)
		}
	}
	return nil
}

// SlogLevel converts the configured level for slog handlers.
func (c LogConfig) SlogLevel() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.Level)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}
