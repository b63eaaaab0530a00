// Package config loads cbudget settings from TOML, .env and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/theirongolddev/cbudget/internal/pipeline"
)

// Config holds all cbudget configuration.
type Config struct {
	General        GeneralConfig        `toml:"general"`
	Classification ClassificationConfig `toml:"classification"`
	Appearance     AppearanceConfig     `toml:"appearance"`
	Server         ServerConfig         `toml:"server"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	DBPath     string `toml:"db_path,omitempty"`
	DefaultYTD bool   `toml:"default_ytd"`
	LogLevel   string `toml:"log_level"`
}

// ClassificationConfig lists the category names that are income and the
// ones left out of budget totals. Every other name is an expense.
type ClassificationConfig struct {
	Income    []string `toml:"income"`
	NonBudget []string `toml:"non_budget"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// ServerConfig holds report daemon settings.
type ServerConfig struct {
	Addr         string `toml:"addr"`
	IntervalSec  int    `toml:"interval_sec"`
	EventsBuffer int    `toml:"events_buffer"`
}

// Environment variables that override the file.
const (
	EnvDB        = "CBUDGET_DB"
	EnvIncome    = "CBUDGET_INCOME_NAMES"
	EnvNonBudget = "CBUDGET_NON_BUDGET_NAMES"
	EnvLogLevel  = "CBUDGET_LOG_LEVEL"
)

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			LogLevel: "warn",
		},
		Classification: ClassificationConfig{
			Income:    append([]string(nil), pipeline.DefaultIncomeNames...),
			NonBudget: append([]string(nil), pipeline.DefaultNonBudgetNames...),
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
		Server: ServerConfig{
			Addr:         "127.0.0.1:8787",
			IntervalSec:  15,
			EventsBuffer: 200,
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "cbudget")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "cbudget")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// DataDir returns the XDG-compliant data directory.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "cbudget")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "cbudget")
}

// LoadEnv reads a .env file from the working directory if present.
func LoadEnv() {
	_ = godotenv.Load()
}

// Load reads the config file, returning defaults if it doesn't exist.
// Environment overrides are applied last.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil && !os.IsNotExist(err) {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err == nil {
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config: %w", err)
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvIncome); v != "" {
		cfg.Classification.Income = SplitNames(v)
	}
	if v := os.Getenv(EnvNonBudget); v != "" {
		cfg.Classification.NonBudget = SplitNames(v)
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.General.LogLevel = v
	}
}

// SplitNames splits a comma-separated list, dropping empty entries.
// Names keep their inner spacing.
func SplitNames(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}

// GetDBPath returns the ledger path from env var, config, or the default
// data directory, in that order.
func GetDBPath(cfg Config) string {
	if p := os.Getenv(EnvDB); p != "" {
		return p
	}
	if cfg.General.DBPath != "" {
		return cfg.General.DBPath
	}
	return filepath.Join(DataDir(), "ledger.db")
}

// Classifier builds the category classifier from the configured lists.
func (c ClassificationConfig) Classifier() *pipeline.Classifier {
	return pipeline.NewClassifier(c.Income, c.NonBudget)
}

var validLogLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// Validate reports every problem found in cfg.
func (cfg Config) Validate() error {
	var errs []error

	seen := make(map[string]string)
	for _, n := range cfg.Classification.Income {
		if n == "" {
			errs = append(errs, errors.New("classification.income: empty name"))
		}
		seen[n] = "income"
	}
	for _, n := range cfg.Classification.NonBudget {
		if n == "" {
			errs = append(errs, errors.New("classification.non_budget: empty name"))
		}
		if seen[n] == "income" {
			errs = append(errs, fmt.Errorf("classification: %q is listed as both income and non-budget", n))
		}
	}
	if !validLogLevels[cfg.General.LogLevel] {
		errs = append(errs, fmt.Errorf("general.log_level: unknown level %q", cfg.General.LogLevel))
	}
	if cfg.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr: required"))
	}
	if cfg.Server.IntervalSec <= 0 {
		errs = append(errs, fmt.Errorf("server.interval_sec: must be positive, got %d", cfg.Server.IntervalSec))
	}
	if cfg.Server.EventsBuffer <= 0 {
		errs = append(errs, fmt.Errorf("server.events_buffer: must be positive, got %d", cfg.Server.EventsBuffer))
	}

	return errors.Join(errs...)
}
