package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the working directory.
const FileName = "ynabsplit.yaml"

// Environment variables.
const (
	EnvAccessToken = "YNAB_ACCESS_TOKEN"
	EnvAPIURL      = "YNAB_API_URL"
	EnvLogLevel    = "YNAB_LOG_LEVEL"
)

// ErrMissingToken is returned when no access token is configured.
var ErrMissingToken = errors.New("undefined " + EnvAccessToken)

// Config represents the top-level ynabsplit.yaml configuration.
type Config struct {
	API     APIConfig     `yaml:"api"`
	CSV     CSVConfig     `yaml:"csv"`
	Display DisplayConfig `yaml:"display"`
	Log     LogConfig     `yaml:"log"`
}

// APIConfig locates the budgeting service.
type APIConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

// CSVConfig locates the transactions export.
type CSVConfig struct {
	Path string `yaml:"path"`
}

// DisplayConfig controls prompt and table layout. Widths are terminal columns.
type DisplayConfig struct {
	PayeeWidth       int `yaml:"payee_width"`
	MemoWidth        int `yaml:"memo_width"`
	SummaryMemoWidth int `yaml:"summary_memo_width"`
	BudgetPageSize   int `yaml:"budget_page_size"`
	RowPageSize      int `yaml:"row_page_size"`
}

// LogConfig controls diagnostic logging on stderr.
type LogConfig struct {
	Level  string `yaml:"level"` // debug, info, warn, error
	Pretty bool   `yaml:"pretty"`
}

// Load reads a ynabsplit.yaml file from disk. Fields absent from the file keep
// their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOptional is Load, except that a missing file yields Default. Use it only
// for the default path; a path the user named should go through Load.
func LoadOptional(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
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

// Default returns a Config with the stock API endpoint and display widths.
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: "https://api.ynab.com/v1",
			Timeout: 30 * time.Second,
		},
		CSV: CSVConfig{
			Path: "transactions.csv",
		},
		Display: DisplayConfig{
			PayeeWidth:       25,
			MemoWidth:        40,
			SummaryMemoWidth: 30,
			BudgetPageSize:   10,
			RowPageSize:      15,
		},
		Log: LogConfig{
			Level:  "warn",
			Pretty: true,
		},
	}
}

// Validate rejects values the program cannot work with.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return errors.New("api.base_url is empty")
	}
	if c.API.Timeout < 0 {
		return fmt.Errorf("api.timeout %s is negative", c.API.Timeout)
	}
	if c.CSV.Path == "" {
		return errors.New("csv.path is empty")
	}
	d := c.Display
	for _, w := range []struct {
		name  string
		value int
	}{
		{"payee_width", d.PayeeWidth},
		{"memo_width", d.MemoWidth},
		{"summary_memo_width", d.SummaryMemoWidth},
		{"budget_page_size", d.BudgetPageSize},
		{"row_page_size", d.RowPageSize},
	} {
		if w.value < 4 {
			return fmt.Errorf("display.%s must be at least 4, got %d", w.name, w.value)
		}
	}
	return nil
}

// LoadEnv loads a .env file from the working directory if one exists.
func LoadEnv() {
	_ = godotenv.Load()
}

// ApplyEnv overrides config values from the environment.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvAPIURL); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
}

// TokenFromEnv returns the personal access token, or ErrMissingToken.
func TokenFromEnv() (string, error) {
	token := os.Getenv(EnvAccessToken)
	if token == "" {
		return "", ErrMissingToken
	}
	return token, nil
}
