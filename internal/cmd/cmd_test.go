// internal/cmd/cmd_test.go
package cmd

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/shopbot/internal/config"
	"github.com/javajoker/shopbot/internal/session"
	"github.com/javajoker/shopbot/internal/utils"
)

func TestNewSessionStoreMemory(t *testing.T) {
	cfg := &config.Config{Session: config.SessionConfig{Backend: config.SessionBackendMemory, TTL: time.Minute}}

	store, closeFn, err := newSessionStore(context.Background(), cfg)
	require.NoError(t, err)
	defer closeFn()
	assert.IsType(t, &session.MemoryStore{}, store)
}

func TestNewSessionStoreRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := &config.Config{
		Session: config.SessionConfig{Backend: config.SessionBackendRedis, TTL: time.Minute},
		Redis:   config.RedisConfig{Host: mr.Host(), Port: mr.Port()},
	}

	store, closeFn, err := newSessionStore(context.Background(), cfg)
	require.NoError(t, err)
	defer closeFn()
	require.IsType(t, &session.RedisStore{}, store)

	require.NoError(t, store.Set(context.Background(), 7, session.CheckoutName{}))
	assert.True(t, mr.Exists("session:7"))
}

func TestNewSessionStoreRedisUnreachable(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	cfg := &config.Config{
		Session: config.SessionConfig{Backend: config.SessionBackendRedis},
		Redis:   config.RedisConfig{Host: mr.Host(), Port: mr.Port()},
	}
	mr.Close()

	_, _, err = newSessionStore(context.Background(), cfg)
	assert.Error(t, err)
}

func TestAdminTokenCommand(t *testing.T) {
	appConfig = &config.Config{
		Bot: config.BotConfig{AdminID: 42},
		JWT: config.JWTConfig{SecretKey: "cli-secret", AdminTokenTTL: 2},
	}
	t.Cleanup(func() { appConfig = nil })

	var out bytes.Buffer
	tokenCmd.SetOut(&out)
	require.NoError(t, tokenCmd.RunE(tokenCmd, nil))

	claims, err := utils.ValidateJWT(strings.TrimSpace(out.String()))
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, utils.RoleAdmin, claims.Role)
	assert.WithinDuration(t, time.Now().Add(2*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestSetupLogging(t *testing.T) {
	defer logrus.SetFormatter(&logrus.TextFormatter{})
	defer logrus.SetLevel(logrus.InfoLevel)

	setupLogging(&config.Config{Environment: "production", Log: config.LogConfig{Level: "debug"}})
	assert.IsType(t, &logrus.JSONFormatter{}, logrus.StandardLogger().Formatter)
	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())

	setupLogging(&config.Config{Environment: "development", Log: config.LogConfig{Level: "loud"}})
	assert.IsType(t, &logrus.TextFormatter{}, logrus.StandardLogger().Formatter)
	assert.Equal(t, logrus.InfoLevel, logrus.GetLevel())
}
