// Package config loads the settings shared by the server and the CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/baditaflorin/go_fuzzy_compare/internal/adapters/preprocess"
	"github.com/baditaflorin/go_fuzzy_compare/internal/core/fuzzy"
	"github.com/baditaflorin/go_fuzzy_compare/internal/ports"
	"github.com/pelletier/go-toml/v2"
)

// Config is the root of a TOML configuration file.
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Compare CompareConfig `toml:"compare"`
	Log     LogConfig     `toml:"log"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port           int      `toml:"port"`
	ReadTimeout    Duration `toml:"read_timeout"`
	WriteTimeout   Duration `toml:"write_timeout"`
	RequestTimeout Duration `toml:"request_timeout"`
	MaxRequestSize int      `toml:"max_request_size"`
	Concurrency    int      `toml:"concurrency"`
	MaxChoices     int      `toml:"max_choices"`
	WarmUp         bool     `toml:"warm_up"`
	// RateLimit caps requests per second across all clients. Zero disables limiting.
	RateLimit float64 `toml:"rate_limit"`
	RateBurst int     `toml:"rate_burst"`
	// MaxInputRunes caps the length of every compared string. Zero disables the cap.
	MaxInputRunes int `toml:"max_input_runes"`
}

// CompareConfig holds the default algorithm settings.
type CompareConfig struct {
	Algorithm    string `toml:"algorithm"`
	Preprocessor string `toml:"preprocessor"`
	Language     string `toml:"language"`
	Cache        bool   `toml:"cache"`
	Workers      int    `toml:"workers"`
	Limit        int    `toml:"limit"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	File string `toml:"file"`
	JSON bool   `toml:"json"`
}

// Duration decodes TOML strings such as "30s".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Port:           8080,
			ReadTimeout:    Duration{30 * time.Second},
			WriteTimeout:   Duration{30 * time.Second},
			RequestTimeout: Duration{30 * time.Second},
			MaxRequestSize: 10 * 1024 * 1024, // 10MB
			Concurrency:    0,
			MaxChoices:     10000,
			MaxInputRunes:  512,
			WarmUp:         true,
		},
		Compare: CompareConfig{
			Algorithm:    fuzzy.NameWeightedRatio,
			Preprocessor: preprocess.NameDefault,
			Language:     preprocess.DefaultLanguage,
			Workers:      0,
			Limit:        5,
		},
		Log: LogConfig{
			JSON: true,
		},
	}
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server port %d out of range", c.Server.Port)
	}
	if c.Server.MaxRequestSize <= 0 {
		return errors.New("server max_request_size must be greater than 0")
	}
	if c.Server.Concurrency < 0 {
		return errors.New("server concurrency must not be negative")
	}
	if c.Server.RateLimit < 0 || c.Server.RateBurst < 0 {
		return errors.New("server rate_limit and rate_burst must not be negative")
	}
	if c.Server.MaxInputRunes < 0 {
		return errors.New("server max_input_runes must not be negative")
	}
	if c.Server.MaxChoices <= 0 {
		return errors.New("server max_choices must be greater than 0")
	}
	if c.Compare.Workers < 0 {
		return errors.New("compare workers must not be negative")
	}
	if _, err := fuzzy.ByName(c.Compare.Algorithm); err != nil {
		return err
	}
	if _, err := preprocess.ByName(c.Compare.Preprocessor, preprocess.Options{Language: c.Compare.Language}); err != nil {
		return err
	}
	return nil
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// BuildPreprocessor builds the configured preprocessor.
func (c CompareConfig) BuildPreprocessor() (ports.Preprocessor, error) {
	return preprocess.ByName(c.Preprocessor, preprocess.Options{Language: c.Language, Cache: c.Cache})
}
