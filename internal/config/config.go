// Package config loads service settings from an optional YAML file, a .env
// file and the process environment, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"apexbank/internal/auth"
	"apexbank/internal/logger"
	"apexbank/internal/mockdata"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the full service configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Auth    AuthConfig    `yaml:"auth"`
	Data    DataConfig    `yaml:"data"`
	Log     LogConfig     `yaml:"log"`
}

type ServerConfig struct {
	Addr         string `yaml:"addr"`
	SecureCookie bool   `yaml:"secure_cookie"`
}

type StorageConfig struct {
	Path string `yaml:"path"`
}

type AuthConfig struct {
	// GlobalPassword is the plain demo password. GlobalPasswordHash wins
	// when both are set.
	GlobalPassword     string        `yaml:"global_password"`
	GlobalPasswordHash string        `yaml:"global_password_hash"`
	SessionDuration    time.Duration `yaml:"session_duration"`
}

type DataConfig struct {
	Seed uint64 `yaml:"seed"`
	// History is "standard" or "extended".
	History string `yaml:"history"`
	// ReferenceDate pins "now" for generation, RFC 3339. Empty uses the
	// clock at startup.
	ReferenceDate    string                             `yaml:"reference_date"`
	BalanceTolerance float64                            `yaml:"balance_tolerance"`
	BalanceProfiles  map[string]mockdata.BalanceProfile `yaml:"balance_profiles"`
}

type LogConfig struct {
	Development bool   `yaml:"development"`
	Level       string `yaml:"level"`
}

// LoadDotEnv loads variables from the given .env files, or ./.env when none
// are given. Missing files are ignored and existing variables win.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

// Load reads the YAML file at path (skipped when path is empty), applies
// environment overrides and defaults, and validates the result.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(filepath.Clean(path))
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := applyEnvOverrides(&cfg); err != nil {
		return nil, fmt.Errorf("apply env overrides: %w", err)
	}
	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports settings that cannot be used.
func (c *Config) Validate() error {
	if _, ok := mockdata.HistoryByName(c.Data.History); !ok {
		return fmt.Errorf("unknown data.history %q", c.Data.History)
	}
	if c.Data.BalanceTolerance < 0 {
		return fmt.Errorf("data.balance_tolerance must not be negative, got %v", c.Data.BalanceTolerance)
	}
	if _, err := c.referenceDate(); err != nil {
		return err
	}
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if c.Auth.SessionDuration <= 0 {
		return fmt.Errorf("auth.session_duration must be positive, got %s", c.Auth.SessionDuration)
	}
	return nil
}

func (c *Config) referenceDate() (time.Time, error) {
	if c.Data.ReferenceDate == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, c.Data.ReferenceDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid data.reference_date %q: %w", c.Data.ReferenceDate, err)
	}
	return t, nil
}

// DataOptions converts the data section into generator options.
func (c *Config) DataOptions() (mockdata.Options, error) {
	now, err := c.referenceDate()
	if err != nil {
		return mockdata.Options{}, err
	}
	hist, ok := mockdata.HistoryByName(c.Data.History)
	if !ok {
		return mockdata.Options{}, fmt.Errorf("unknown data.history %q", c.Data.History)
	}
	return mockdata.Options{
		Now:      now,
		Seed:     c.Data.Seed,
		History:  hist,
		Balances: c.BalanceProfiles(),
	}, nil
}

// BalanceProfiles returns the configured profile table, or the built-in one
// when none is configured.
func (c *Config) BalanceProfiles() map[string]mockdata.BalanceProfile {
	if len(c.Data.BalanceProfiles) == 0 {
		return mockdata.DefaultBalanceProfiles()
	}
	return c.Data.BalanceProfiles
}

// Password builds the shared demo password, preferring the stored hash.
func (c *Config) Password() (auth.Password, error) {
	if c.Auth.GlobalPasswordHash != "" {
		pw, err := auth.PasswordFromHash(c.Auth.GlobalPasswordHash)
		if err != nil {
			return auth.Password{}, fmt.Errorf("invalid auth.global_password_hash: %w", err)
		}
		return pw, nil
	}
	return auth.NewPassword(c.Auth.GlobalPassword)
}

// LogLevel returns the parsed log level. Load has already validated it.
func (c *Config) LogLevel() logger.LogLevel {
	level, err := logger.ParseLevel(c.Log.Level)
	if err != nil {
		return logger.InfoLevel
	}
	return level
}
