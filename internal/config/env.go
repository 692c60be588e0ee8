package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// applyEnvOverrides overrides config values with environment variables if set
func applyEnvOverrides(cfg *Config) error {
	if port := os.Getenv("PORT"); port != "" {
		if _, err := strconv.Atoi(port); err != nil {
			return fmt.Errorf("invalid PORT %q: %w", port, err)
		}
		cfg.Server.Addr = ":" + port
	}
	if secure := os.Getenv("SECURE_COOKIE"); secure != "" {
		b, err := strconv.ParseBool(secure)
		if err != nil {
			return fmt.Errorf("invalid SECURE_COOKIE %q: %w", secure, err)
		}
		cfg.Server.SecureCookie = b
	}

	if path := os.Getenv("DB_PATH"); path != "" {
		cfg.Storage.Path = path
	}

	if pw := os.Getenv("DEMO_PASSWORD"); pw != "" {
		cfg.Auth.GlobalPassword = pw
	}
	if hash := os.Getenv("DEMO_PASSWORD_HASH"); hash != "" {
		cfg.Auth.GlobalPasswordHash = hash
	}
	if d := os.Getenv("SESSION_DURATION"); d != "" {
		dur, err := time.ParseDuration(d)
		if err != nil {
			return fmt.Errorf("invalid SESSION_DURATION %q: %w", d, err)
		}
		cfg.Auth.SessionDuration = dur
	}

	if seed := os.Getenv("DATA_SEED"); seed != "" {
		n, err := strconv.ParseUint(seed, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid DATA_SEED %q: %w", seed, err)
		}
		cfg.Data.Seed = n
	}
	if hist := os.Getenv("DATA_HISTORY"); hist != "" {
		cfg.Data.History = strings.ToLower(hist)
	}
	if ref := os.Getenv("DATA_REFERENCE_DATE"); ref != "" {
		cfg.Data.ReferenceDate = ref
	}

	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if dev := os.Getenv("LOG_DEVELOPMENT"); dev != "" {
		b, err := strconv.ParseBool(dev)
		if err != nil {
			return fmt.Errorf("invalid LOG_DEVELOPMENT %q: %w", dev, err)
		}
		cfg.Log.Development = b
	}
	return nil
}
