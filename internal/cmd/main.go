package cmd

import (
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"

	"github.com/hashicorp-forge/matrix/internal/config"
	"github.com/hashicorp-forge/matrix/internal/version"
)

// Main runs the matrix CLI and returns the process exit code.
func Main(args []string) int {
	name := filepath.Base(args[0])

	// Commands raise or lower this once -log-level and the config file are
	// known.
	level := hclog.Info
	if v := os.Getenv(config.EnvLogLevel); v != "" {
		if l := hclog.LevelFromString(v); l != hclog.NoLevel {
			level = l
		}
	}

	log := hclog.New(&hclog.LoggerOptions{
		Name:   name,
		Level:  level,
		Output: os.Stderr,
	})

	rest := args[1:]
	if len(rest) == 1 && (rest[0] == "-v" || rest[0] == "-version") {
		rest = []string{"version"}
	}

	ui := &cli.ColoredUi{
		ErrorColor: cli.UiColorRed,
		WarnColor:  cli.UiColorYellow,
		Ui: &cli.BasicUi{
			Reader:      os.Stdin,
			Writer:      os.Stdout,
			ErrorWriter: os.Stderr,
		},
	}

	initCommands(log, ui)

	c := &cli.CLI{
		Name:       name,
		Args:       rest,
		Version:    version.Version,
		Commands:   Commands,
		HelpWriter: os.Stderr,
	}

	exitCode, err := c.Run()
	if err != nil {
		log.Error("error running command", "error", err)
		return 1
	}

	return exitCode
}
