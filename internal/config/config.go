package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/alexanderjulianmartinez/data-quality/internal/quality"
	"github.com/alexanderjulianmartinez/data-quality/internal/source/csvfile"
)

const (
	SourceCSV   = "csv"
	SourceMySQL = "mysql"
)

type Config struct {
	Source  SourceConfig  `yaml:"source"`
	Report  ReportConfig  `yaml:"report"`
	Checks  ChecksConfig  `yaml:"checks"`
	History HistoryConfig `yaml:"history"`
	Publish PublishConfig `yaml:"publish"`
	Logging LoggingConfig `yaml:"logging"`
}

type SourceConfig struct {
	Type      string `yaml:"type"`
	Path      string `yaml:"path"`
	Encoding  string `yaml:"encoding"`
	Delimiter string `yaml:"delimiter"`
	DSN       string `yaml:"dsn"`
	Schema    string `yaml:"schema"`
	Table     string `yaml:"table"`
}

type ReportConfig struct {
	Path    string `yaml:"path"`
	Console *bool  `yaml:"console"`
}

type ChecksConfig struct {
	RequiredColumns   []string `yaml:"requiredColumns"`
	AllowedCategories []string `yaml:"allowedCategories"`
	Parallel          bool     `yaml:"parallel"`
}

type HistoryConfig struct {
	DSN   string `yaml:"dsn"`
	Table string `yaml:"table"`
}

type PublishConfig struct {
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// ConsoleEnabled reports whether the report is printed; it defaults to true.
func (r ReportConfig) ConsoleEnabled() bool {
	return r.Console == nil || *r.Console
}

func (h HistoryConfig) Enabled() bool {
	return h.DSN != ""
}

func (p PublishConfig) Enabled() bool {
	return len(p.Brokers) > 0
}

func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is required")
	}

	_, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("config file not found: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	return Parse(data)
}

// Parse decodes YAML and fills defaults. Callers run Validate once their
// overrides are applied.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Source.Type == "" {
		c.Source.Type = SourceCSV
	}
	if c.Source.Encoding == "" {
		c.Source.Encoding = csvfile.DefaultEncoding
	}
	if c.Source.Delimiter == "" {
		c.Source.Delimiter = ","
	}
	if c.Checks.RequiredColumns == nil {
		c.Checks.RequiredColumns = append([]string(nil), quality.DefaultRequiredColumns...)
	}
	if c.Checks.AllowedCategories == nil {
		c.Checks.AllowedCategories = append([]string(nil), quality.DefaultAllowedCategories...)
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
}

// Validate checks the configuration after defaults and CLI overrides are applied.
func (c *Config) Validate() error {
	switch c.Source.Type {
	case SourceCSV:
		if c.Source.Path == "" {
			return errors.New("source.path is required for csv sources")
		}
		if _, err := csvfile.LookupEncoding(c.Source.Encoding); err != nil {
			return fmt.Errorf("source.encoding: %w", err)
		}
		if utf8.RuneCountInString(c.Source.Delimiter) != 1 {
			return fmt.Errorf("source.delimiter must be a single character, got %q", c.Source.Delimiter)
		}
	case SourceMySQL:
		if c.Source.DSN == "" {
			return errors.New("source.dsn is required for mysql sources")
		}
		if c.Source.Schema == "" {
			return errors.New("source.schema is required for mysql sources")
		}
		if c.Source.Table == "" {
			return errors.New("source.table is required for mysql sources")
		}
	default:
		return fmt.Errorf("source.type must be %s or %s, got %q", SourceCSV, SourceMySQL, c.Source.Type)
	}

	if c.Report.Path == "" {
		return errors.New("report.path is required")
	}

	if len(c.Checks.RequiredColumns) == 0 {
		return errors.New("checks.requiredColumns must not be empty")
	}
	seen := make(map[string]bool, len(c.Checks.RequiredColumns))
	for _, col := range c.Checks.RequiredColumns {
		if strings.TrimSpace(col) == "" {
			return errors.New("checks.requiredColumns contains an empty name")
		}
		if seen[col] {
			return fmt.Errorf("checks.requiredColumns lists %q twice", col)
		}
		seen[col] = true
	}
	if len(c.Checks.AllowedCategories) == 0 {
		return errors.New("checks.allowedCategories must not be empty")
	}

	if c.Publish.Enabled() && c.Publish.Topic == "" {
		return errors.New("publish.topic is required when brokers are set")
	}
	return nil
}
