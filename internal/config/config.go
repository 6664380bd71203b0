// Package config loads the matrix CLI configuration from an optional HCL
// file and the process environment.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/spf13/afero"

	"github.com/hashicorp-forge/matrix/pkg/matrix"
)

// Environment variables read by Load. The credential names are the ones the
// matrix API team hands out.
const (
	EnvClientID     = "CBOAUTH2_CLIENT_ID"
	EnvSecret       = "CBOAUTH2_SECRET"
	EnvDeveloperKey = "DEV_KEY"
	EnvEnvironment  = "MATRIX_ENVIRONMENT"
	EnvBaseURL      = "MATRIX_BASE_URL"
	EnvTimeout      = "MATRIX_TIMEOUT"
	EnvLogLevel     = "MATRIX_LOG_LEVEL"
)

const (
	DefaultEnvironment = "development"
	DefaultTimeout     = "30s"
	DefaultLogLevel    = "info"
)

// Config is the matrix CLI configuration.
//
// Example configuration (HCL):
//
//	client_id     = "C0123456789"
//	environment   = "production"
//	timeout       = "10s"
//	log_level     = "debug"
//
// Secrets are better left to CBOAUTH2_SECRET and DEV_KEY.
type Config struct {
	ClientID     string `hcl:"client_id,optional"`
	Secret       string `hcl:"secret,optional"`
	DeveloperKey string `hcl:"developer_key,optional"`

	// Environment selects the API host; only "production" reaches the
	// production host.
	Environment string `hcl:"environment,optional"`

	// BaseURL overrides the resolved API host.
	BaseURL string `hcl:"base_url,optional"`

	// Timeout is a Go duration string, e.g. "30s".
	Timeout string `hcl:"timeout,optional"`

	LogLevel string `hcl:"log_level,optional"`
}

// LookupEnvFunc matches os.LookupEnv.
type LookupEnvFunc func(key string) (string, bool)

// Load reads path from fs when path is non-empty, applies environment
// overrides from the process environment and fills in defaults.
func Load(fs afero.Fs, path string) (*Config, error) {
	return LoadWithEnv(fs, path, os.LookupEnv)
}

// LoadWithEnv is Load with an explicit environment lookup.
func LoadWithEnv(fs afero.Fs, path string, lookupEnv LookupEnvFunc) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		if err := cfg.decodeFile(fs, path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv(lookupEnv)
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) decodeFile(fs afero.Fs, path string) error {
	exists, err := afero.Exists(fs, path)
	if err != nil {
		return fmt.Errorf("error checking configuration file: %w", err)
	}
	if !exists {
		return fmt.Errorf("configuration file not found: %s", path)
	}

	src, err := afero.ReadFile(fs, path)
	if err != nil {
		return fmt.Errorf("error reading configuration file: %w", err)
	}

	if err := hclsimple.Decode(path, src, nil, c); err != nil {
		return fmt.Errorf("failed to parse configuration file: %w", err)
	}

	return nil
}

func (c *Config) applyEnv(lookupEnv LookupEnvFunc) {
	overrides := []struct {
		key   string
		field *string
	}{
		{EnvClientID, &c.ClientID},
		{EnvSecret, &c.Secret},
		{EnvDeveloperKey, &c.DeveloperKey},
		{EnvEnvironment, &c.Environment},
		{EnvBaseURL, &c.BaseURL},
		{EnvTimeout, &c.Timeout},
		{EnvLogLevel, &c.LogLevel},
	}

	for _, o := range overrides {
		if val, ok := lookupEnv(o.key); ok && val != "" {
			*o.field = val
		}
	}
}

func (c *Config) applyDefaults() {
	if c.Environment == "" {
		c.Environment = DefaultEnvironment
	}
	if c.Timeout == "" {
		c.Timeout = DefaultTimeout
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
}

// Validate checks the values that can be checked without knowing which
// operation will run.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Environment, validation.Required),
		validation.Field(&c.Timeout, validation.Required, validation.By(validDuration)),
		validation.Field(&c.LogLevel, validation.Required, validation.By(validLogLevel)),
	)
}

func validDuration(value interface{}) error {
	s, _ := value.(string)
	d, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("must be a duration such as 30s")
	}
	if d <= 0 {
		return fmt.Errorf("must be positive")
	}
	return nil
}

func validLogLevel(value interface{}) error {
	s, _ := value.(string)
	if hclog.LevelFromString(s) == hclog.NoLevel {
		return fmt.Errorf("must be one of trace, debug, info, warn, error")
	}
	return nil
}

// Level returns the configured log level.
func (c *Config) Level() hclog.Level {
	return hclog.LevelFromString(strings.TrimSpace(c.LogLevel))
}

// MatrixConfig converts c into the client configuration.
func (c *Config) MatrixConfig(logger hclog.Logger) (*matrix.Config, error) {
	timeout, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return nil, fmt.Errorf("invalid timeout %q: %w", c.Timeout, err)
	}

	return &matrix.Config{
		ClientID:     c.ClientID,
		Secret:       c.Secret,
		DeveloperKey: c.DeveloperKey,
		Environment:  c.Environment,
		BaseURL:      c.BaseURL,
		Timeout:      timeout,
		Logger:       logger,
	}, nil
}
