package config

import (
	"time"

	"apexbank/internal/mockdata"
)

const (
	DefaultAddr             = ":8080"
	DefaultStoragePath      = "apexbank.db"
	DefaultSessionDuration  = 30 * 24 * time.Hour
	DefaultBalanceTolerance = 0.01
)

// applyDefaults sets default values for unspecified configuration
func applyDefaults(cfg *Config) {
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = DefaultAddr
	}
	if cfg.Storage.Path == "" {
		cfg.Storage.Path = DefaultStoragePath
	}
	if cfg.Auth.GlobalPassword == "" {
		cfg.Auth.GlobalPassword = mockdata.DefaultGlobalPassword
	}
	if cfg.Auth.SessionDuration == 0 {
		cfg.Auth.SessionDuration = DefaultSessionDuration
	}
	if cfg.Data.History == "" {
		cfg.Data.History = mockdata.StandardHistory.Name
	}
	if cfg.Data.BalanceTolerance == 0 {
		cfg.Data.BalanceTolerance = DefaultBalanceTolerance
	}
}
