// internal/config/config_test.go
package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("BOT_TOKEN", "123:abc")
	t.Setenv("ADMIN_ID", "42")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)
	t.Setenv("SESSION_TTL", "120")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "123:abc", cfg.Bot.Token)
	assert.Equal(t, int64(42), cfg.Bot.AdminID)
	assert.Equal(t, BotModePolling, cfg.Bot.Mode)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, SessionBackendMemory, cfg.Session.Backend)
	assert.Equal(t, 2*time.Minute, cfg.Session.TTL)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
}

func TestLoadMissingBotToken(t *testing.T) {
	t.Setenv("BOT_TOKEN", "")
	t.Setenv("ADMIN_ID", "42")

	_, err := Load()
	assert.ErrorIs(t, err, ErrMissingBotToken)
}

func TestLoadMalformedAdminID(t *testing.T) {
	cases := []string{"", "0", "-5", "admin", "12abc"}
	for _, raw := range cases {
		t.Run(raw, func(t *testing.T) {
			t.Setenv("BOT_TOKEN", "123:abc")
			t.Setenv("ADMIN_ID", raw)

			_, err := Load()
			assert.ErrorIs(t, err, ErrInvalidAdminID)
		})
	}
}

func TestValidateRejectsUnknownModes(t *testing.T) {
	setRequired(t)

	t.Run("bot mode", func(t *testing.T) {
		t.Setenv("BOT_MODE", "carrier-pigeon")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("webhook without url", func(t *testing.T) {
		t.Setenv("BOT_MODE", BotModeWebhook)
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("db driver", func(t *testing.T) {
		t.Setenv("DB_DRIVER", "oracle")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("session backend", func(t *testing.T) {
		t.Setenv("SESSION_BACKEND", "memcached")
		_, err := Load()
		assert.Error(t, err)
	})
}

func TestDSN(t *testing.T) {
	sqlite := DatabaseConfig{Driver: DriverSQLite, Path: "shop.db"}
	assert.Contains(t, sqlite.DSN(), "file:shop.db?")
	assert.Contains(t, sqlite.DSN(), "_busy_timeout=5000")

	pg := DatabaseConfig{Driver: DriverPostgres, Host: "db", Port: "5432", User: "u", Password: "p", Database: "shop", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=shop sslmode=disable", pg.DSN())
}
