package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, "jwt:\n  secret: test-secret\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "memory", cfg.Store.Backend)
	assert.Equal(t, "@college.edu", cfg.Auth.StudentEmailDomain)
	assert.Equal(t, time.Hour, cfg.AccessTokenExp())
	assert.Equal(t, 10*time.Second, cfg.ProviderTimeout())
	assert.Equal(t, 800*time.Millisecond, cfg.MockDelay())
	assert.True(t, cfg.Mock.Seed)
}

func TestLoadConfigFileOverrides(t *testing.T) {
	path := writeConfig(t, `
server:
  port: "9090"
store:
  backend: redis
  redis_addr: "redis:6379"
auth:
  student_email_domain: "@university.edu"
jwt:
  secret: test-secret
  access_token_expiration: 30m
mock:
  delay: 0s
  seed: false
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "redis", cfg.Store.Backend)
	assert.Equal(t, "@university.edu", cfg.Auth.StudentEmailDomain)
	assert.Equal(t, 30*time.Minute, cfg.AccessTokenExp())
	assert.Zero(t, cfg.MockDelay())
	assert.False(t, cfg.Mock.Seed)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "7070")
	t.Setenv("AUTH_STUDENT_EMAIL_DOMAIN", "@campus.edu")
	t.Setenv("JWT_SECRET", "env-secret")

	path := writeConfig(t, "jwt:\n  secret: file-secret\n")
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.Server.Port)
	assert.Equal(t, "@campus.edu", cfg.Auth.StudentEmailDomain)
	assert.Equal(t, "env-secret", cfg.JWT.Secret)
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "env-secret")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.Store.Backend)
}

func TestLoadConfigRejectsMissingSecret(t *testing.T) {
	path := writeConfig(t, "server:\n  port: \"8080\"\n")

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfigRejectsUnknownBackend(t *testing.T) {
	path := writeConfig(t, "store:\n  backend: dynamo\njwt:\n  secret: test-secret\n")

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfigRejectsBadDuration(t *testing.T) {
	path := writeConfig(t, "jwt:\n  secret: test-secret\n  access_token_expiration: soon\n")

	_, err := LoadConfig(path)
	assert.Error(t, err)
}
