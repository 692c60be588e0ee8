package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"apexbank/internal/auth"
	"apexbank/internal/logger"
	"apexbank/internal/mockdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"PORT", "SECURE_COOKIE", "DB_PATH", "DEMO_PASSWORD", "DEMO_PASSWORD_HASH",
	"SESSION_DURATION", "DATA_SEED", "DATA_HISTORY", "DATA_REFERENCE_DATE",
	"LOG_LEVEL", "LOG_DEVELOPMENT",
}

// clearEnv blanks every variable Load reads; empty values are ignored.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.False(t, cfg.Server.SecureCookie)
	assert.Equal(t, "apexbank.db", cfg.Storage.Path)
	assert.Equal(t, mockdata.DefaultGlobalPassword, cfg.Auth.GlobalPassword)
	assert.Equal(t, 720*time.Hour, cfg.Auth.SessionDuration)
	assert.Equal(t, "standard", cfg.Data.History)
	assert.Equal(t, 0.01, cfg.Data.BalanceTolerance)
	assert.Equal(t, logger.InfoLevel, cfg.LogLevel())
	assert.Equal(t, mockdata.DefaultBalanceProfiles(), cfg.BalanceProfiles())
}

func TestLoadYAML(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "apexbank.yaml", `
server:
  addr: ":9090"
  secure_cookie: true
storage:
  path: /tmp/bank.db
auth:
  session_duration: 12h
data:
  seed: 42
  history: extended
  reference_date: "2018-11-28T12:00:00Z"
  balance_tolerance: 0.05
  balance_profiles:
    user-001:
      checking: 100
      savings: 200
      money_market: 300
      credit: 50
      investment: 400
log:
  development: true
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.True(t, cfg.Server.SecureCookie)
	assert.Equal(t, "/tmp/bank.db", cfg.Storage.Path)
	assert.Equal(t, 12*time.Hour, cfg.Auth.SessionDuration)
	assert.Equal(t, logger.DebugLevel, cfg.LogLevel())
	assert.True(t, cfg.Log.Development)

	profiles := cfg.BalanceProfiles()
	require.Contains(t, profiles, "user-001")
	assert.Equal(t, 300.0, profiles["user-001"].MoneyMarket)

	opts, err := cfg.DataOptions()
	require.NoError(t, err)
	assert.Equal(t, uint64(42), opts.Seed)
	assert.Equal(t, mockdata.ExtendedHistory.Name, opts.History.Name)
	assert.Equal(t, time.Date(2018, time.November, 28, 12, 0, 0, 0, time.UTC), opts.Now)
}

func TestEnvOverridesYAML(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "apexbank.yaml", "server:\n  addr: \":9090\"\nstorage:\n  path: file.db\n")
	t.Setenv("PORT", "3000")
	t.Setenv("DB_PATH", "env.db")
	t.Setenv("DATA_SEED", "7")
	t.Setenv("DATA_HISTORY", "EXTENDED")
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("SECURE_COOKIE", "true")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":3000", cfg.Server.Addr)
	assert.Equal(t, "env.db", cfg.Storage.Path)
	assert.Equal(t, uint64(7), cfg.Data.Seed)
	assert.Equal(t, "extended", cfg.Data.History)
	assert.Equal(t, logger.WarnLevel, cfg.LogLevel())
	assert.True(t, cfg.Server.SecureCookie)
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		yaml string
	}{
		{"bad port", map[string]string{"PORT": "http"}, ""},
		{"bad seed", map[string]string{"DATA_SEED": "-1"}, ""},
		{"bad duration", map[string]string{"SESSION_DURATION": "forever"}, ""},
		{"unknown history", nil, "data:\n  history: weekly\n"},
		{"negative tolerance", nil, "data:\n  balance_tolerance: -0.5\n"},
		{"bad reference date", nil, "data:\n  reference_date: yesterday\n"},
		{"bad log level", map[string]string{"LOG_LEVEL": "loud"}, ""},
		{"malformed yaml", nil, "server: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			path := ""
			if tt.yaml != "" {
				path = writeFile(t, "apexbank.yaml", tt.yaml)
			}
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestPassword(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)
	pw, err := cfg.Password()
	require.NoError(t, err)
	assert.True(t, pw.Matches(mockdata.DefaultGlobalPassword))

	hash, err := auth.HashPassword("from-hash")
	require.NoError(t, err)
	t.Setenv("DEMO_PASSWORD_HASH", hash)
	cfg, err = Load("")
	require.NoError(t, err)
	pw, err = cfg.Password()
	require.NoError(t, err)
	assert.True(t, pw.Matches("from-hash"))
	assert.False(t, pw.Matches(mockdata.DefaultGlobalPassword))

	cfg.Auth.GlobalPasswordHash = "not-bcrypt"
	_, err = cfg.Password()
	assert.Error(t, err)
}

func TestLoadDotEnv(t *testing.T) {
	const key = "APEXBANK_DOTENV_TEST"
	t.Cleanup(func() { os.Unsetenv(key) })

	path := writeFile(t, ".env", key+"=from-file\n")
	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "from-file", os.Getenv(key))

	assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), ".env")), "missing files are ignored")
}
