// Package base holds what every matrix subcommand shares: the logger and UI,
// the common client flags, config loading and output formatting.
package base

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/hashicorp-forge/matrix/internal/config"
	"github.com/hashicorp-forge/matrix/pkg/matrix"
)

const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Command is embedded by every subcommand.
type Command struct {
	Log hclog.Logger
	UI  cli.Ui

	// FS is where config and input files are read from.
	FS afero.Fs

	// Stdin is read when an input file argument is "-".
	Stdin io.Reader

	// NewClient builds the API client. Tests replace it.
	NewClient func(cfg *matrix.Config) (*matrix.Client, error)

	flagConfig   string
	flagLogLevel string
	flagFormat   string
}

// NewCommand creates a Command reading from the OS filesystem and stdin.
func NewCommand(log hclog.Logger, ui cli.Ui) *Command {
	return &Command{
		Log:   log,
		UI:    ui,
		FS:    afero.NewOsFs(),
		Stdin: os.Stdin,
		NewClient: func(cfg *matrix.Config) (*matrix.Client, error) {
			return matrix.NewClient(cfg)
		},
	}
}

// ClientFlags registers -config, -log-level and -format on f.
func (c *Command) ClientFlags(f *FlagSet) {
	f.StringVar(
		&c.flagConfig, "config", "",
		"Path to an HCL config file. Values from the environment take precedence.",
	)
	f.StringVar(
		&c.flagLogLevel, "log-level", "",
		"[MATRIX_LOG_LEVEL] Log level (trace, debug, info, warn, error).",
	)
	f.StringVar(
		&c.flagFormat, "format", FormatJSON,
		"Output format for response bodies (json or yaml).",
	)
}

// Client loads the configuration and creates the matrix client.
func (c *Command) Client() (*matrix.Client, error) {
	if c.flagFormat != FormatJSON && c.flagFormat != FormatYAML {
		return nil, fmt.Errorf("unsupported output format %q", c.flagFormat)
	}

	cfg, err := config.Load(c.FS, c.flagConfig)
	if err != nil {
		return nil, err
	}

	if c.flagLogLevel != "" {
		cfg.LogLevel = c.flagLogLevel
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("invalid configuration: %w", err)
		}
	}
	c.Log.SetLevel(cfg.Level())

	matrixCfg, err := cfg.MatrixConfig(c.Log)
	if err != nil {
		return nil, err
	}

	c.Log.Debug("loaded configuration",
		"environment", cfg.Environment,
		"base_url", cfg.BaseURL,
		"timeout", cfg.Timeout,
	)

	return c.NewClient(matrixCfg)
}

// Context returns a context canceled on SIGINT or SIGTERM.
func (c *Command) Context() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// ReadInput returns the contents of path, or of stdin when path is "-".
func (c *Command) ReadInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(c.Stdin)
	}
	return afero.ReadFile(c.FS, path)
}

// Output prints a response body in the selected format. Bodies that are not
// JSON are printed as they are.
func (c *Command) Output(body []byte) error {
	var decoded interface{}
	if err := json.Unmarshal(body, &decoded); err != nil {
		c.UI.Output(string(body))
		return nil
	}

	switch c.flagFormat {
	case FormatYAML:
		out, err := yaml.Marshal(decoded)
		if err != nil {
			return fmt.Errorf("error encoding yaml: %w", err)
		}
		c.UI.Output(string(out))
	default:
		out, err := json.MarshalIndent(decoded, "", "  ")
		if err != nil {
			return fmt.Errorf("error encoding json: %w", err)
		}
		c.UI.Output(string(out))
	}

	return nil
}

// Fail reports err and returns the exit code for it.
func (c *Command) Fail(err error) int {
	var apiErr *matrix.APIError
	if errors.As(err, &apiErr) {
		if apiErr.StatusCode != 0 {
			c.UI.Error(fmt.Sprintf("error (%s, HTTP %d): %s", apiErr.Kind, apiErr.StatusCode, apiErr.Message))
		} else {
			c.UI.Error(fmt.Sprintf("error (%s): %s", apiErr.Kind, apiErr.Message))
		}
		return 1
	}

	c.UI.Error(fmt.Sprintf("error: %v", err))
	return 1
}
