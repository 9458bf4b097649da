package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_FullConfig(t *testing.T) {
	path := writeConfig(t, `
[api]
base_url = "http://localhost:5000/api"
timeout = 20

[session]
file = "/tmp/hbs-session.json"

[logs]
file = "client.log"
level = "debug"

[metrics]
enabled = true
service_name = "hbs-test"
path = "/metrics"
port = 9105
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:5000/api", cfg.API.BaseURL)
	assert.Equal(t, 20, cfg.API.Timeout)
	assert.Equal(t, "/tmp/hbs-session.json", cfg.Session.File)
	assert.Equal(t, "client.log", cfg.Logs.File)
	assert.Equal(t, "debug", cfg.Logs.Level)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, 9105, cfg.Metrics.Port)
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
[api]
base_url = "http://localhost:5000/api"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.API.Timeout)
	assert.Equal(t, "stdout", cfg.Logs.File)
	assert.Equal(t, "info", cfg.Logs.Level)
	assert.False(t, cfg.Metrics.Enabled)
	assert.NotEmpty(t, cfg.Session.File)
	assert.Contains(t, cfg.Session.File, "session.json")
}

func TestLoad_MissingBaseURL(t *testing.T) {
	path := writeConfig(t, `
[logs]
level = "info"
`)

	_, err := Load(path)
	assert.ErrorContains(t, err, "api.base_url")
}

func TestLoad_InvalidTimeout(t *testing.T) {
	path := writeConfig(t, `
[api]
base_url = "http://localhost:5000/api"
timeout = -1
`)

	_, err := Load(path)
	assert.ErrorContains(t, err, "api.timeout")
}

func TestLoad_MetricsPortRequiredWhenEnabled(t *testing.T) {
	path := writeConfig(t, `
[api]
base_url = "http://localhost:5000/api"

[metrics]
enabled = true
port = 0
`)

	_, err := Load(path)
	assert.ErrorContains(t, err, "metrics.port")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

func TestLoad_MalformedTOML(t *testing.T) {
	path := writeConfig(t, `[api`)

	_, err := Load(path)
	assert.Error(t, err)
}
