package config

import (
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envFrom(values map[string]string) LookupEnvFunc {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := LoadWithEnv(afero.NewMemMapFs(), "", envFrom(nil))
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "30s", cfg.Timeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, hclog.Info, cfg.Level())
	assert.Empty(t, cfg.ClientID)
}

func TestLoad_File(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/etc/matrix/config.hcl", []byte(`
client_id     = "C0123"
secret        = "from-file"
developer_key = "DK1"
environment   = "production"
timeout       = "10s"
log_level     = "debug"
`), 0o600))

	cfg, err := LoadWithEnv(fs, "/etc/matrix/config.hcl", envFrom(nil))
	require.NoError(t, err)

	assert.Equal(t, "C0123", cfg.ClientID)
	assert.Equal(t, "from-file", cfg.Secret)
	assert.Equal(t, "DK1", cfg.DeveloperKey)
	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, "10s", cfg.Timeout)
	assert.Equal(t, hclog.Debug, cfg.Level())
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "config.hcl", []byte(`
client_id   = "from-file"
environment = "production"
`), 0o600))

	cfg, err := LoadWithEnv(fs, "config.hcl", envFrom(map[string]string{
		EnvClientID:     "from-env",
		EnvSecret:       "secret-env",
		EnvDeveloperKey: "dev-env",
		EnvEnvironment:  "",
		EnvBaseURL:      "http://localhost:9000",
	}))
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.ClientID)
	assert.Equal(t, "secret-env", cfg.Secret)
	assert.Equal(t, "dev-env", cfg.DeveloperKey)
	assert.Equal(t, "production", cfg.Environment, "empty env values do not override")
	assert.Equal(t, "http://localhost:9000", cfg.BaseURL)
}

func TestLoad_Errors(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "bad.hcl", []byte(`client_id = `), 0o600))
	require.NoError(t, afero.WriteFile(fs, "unknown.hcl", []byte(`colour = "blue"`), 0o600))

	tests := []struct {
		name string
		path string
		env  map[string]string
		want string
	}{
		{"missing file", "nope.hcl", nil, "configuration file not found"},
		{"syntax error", "bad.hcl", nil, "failed to parse configuration file"},
		{"unknown attribute", "unknown.hcl", nil, "failed to parse configuration file"},
		{"bad timeout", "", map[string]string{EnvTimeout: "soon"}, "duration"},
		{"negative timeout", "", map[string]string{EnvTimeout: "-5s"}, "positive"},
		{"bad log level", "", map[string]string{EnvLogLevel: "loud"}, "must be one of"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadWithEnv(fs, tt.path, envFrom(tt.env))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestConfig_MatrixConfig(t *testing.T) {
	cfg := &Config{
		ClientID:     "C1",
		Secret:       "S1",
		DeveloperKey: "D1",
		Environment:  "production",
		BaseURL:      "http://localhost",
		Timeout:      "15s",
		LogLevel:     "warn",
	}

	logger := hclog.NewNullLogger()
	mc, err := cfg.MatrixConfig(logger)
	require.NoError(t, err)

	assert.Equal(t, "C1", mc.ClientID)
	assert.Equal(t, "S1", mc.Secret)
	assert.Equal(t, "D1", mc.DeveloperKey)
	assert.Equal(t, "production", mc.Environment)
	assert.Equal(t, "http://localhost", mc.BaseURL)
	assert.Equal(t, 15*time.Second, mc.Timeout)
	assert.Equal(t, logger, mc.Logger)

	cfg.Timeout = "later"
	_, err = cfg.MatrixConfig(logger)
	assert.Error(t, err)
}
