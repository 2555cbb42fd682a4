package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileNames are the config file names Load looks for, in order.
var FileNames = []string{"docmerge.yml", "docmerge.yaml"}

// Config holds merge settings loaded from docmerge.yml.
type Config struct {
	IncludeFirstCell   bool     `yaml:"includeFirstCell,omitempty"`
	ImageWidthInches   float64  `yaml:"imageWidthInches,omitempty"`
	SubheadingEmphasis []string `yaml:"subheadingEmphasis,omitempty"`
	TableSpacing       *bool    `yaml:"tableSpacing,omitempty"`
	LogLevel           string   `yaml:"logLevel,omitempty"`
	AltText            bool     `yaml:"altText,omitempty"`
	OCRLanguage        string   `yaml:"ocrLanguage,omitempty"`
}

// Load attempts to read docmerge.yml or docmerge.yaml from the given
// directory. Returns a zero-value config (not an error) if no config file
// exists.
func Load(dir string) (*Config, error) {
	for _, name := range FileNames {
		cfg, err := LoadFile(filepath.Join(dir, name))
		if os.IsNotExist(err) {
			continue
		}
		return cfg, err
	}
	return &Config{}, nil
}

// LoadFile reads one config file. Unlike Load, a missing file is an error.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}
	return &cfg, nil
}

// Spacing reports whether a blank paragraph should follow each table.
// It defaults to true when the file does not say.
func (c *Config) Spacing() bool {
	return c.TableSpacing == nil || *c.TableSpacing
}

// Language returns the OCR language, preferring a non-empty override.
// An empty result keeps Tesseract's default.
func (c *Config) Language(override string) string {
	if lang := strings.TrimSpace(override); lang != "" {
		return lang
	}
	return strings.TrimSpace(c.OCRLanguage)
}

// Level parses LogLevel. An empty level is slog.LevelWarn.
func (c *Config) Level() (slog.Level, error) {
	if strings.TrimSpace(c.LogLevel) == "" {
		return slog.LevelWarn, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return 0, fmt.Errorf("logLevel: %w", err)
	}
	return level, nil
}
