package cmd

import (
	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"

	"github.com/hashicorp-forge/matrix/internal/cmd/base"
	"github.com/hashicorp-forge/matrix/internal/cmd/commands/networks"
	"github.com/hashicorp-forge/matrix/internal/cmd/commands/tankconfig"
	"github.com/hashicorp-forge/matrix/internal/cmd/commands/token"
	"github.com/hashicorp-forge/matrix/internal/cmd/commands/version"
)

// Commands is the mapping of all available matrix commands.
var Commands map[string]cli.CommandFactory

func initCommands(log hclog.Logger, ui cli.Ui) {
	newBase := func() *base.Command {
		return base.NewCommand(log, ui)
	}

	Commands = map[string]cli.CommandFactory{
		"token": func() (cli.Command, error) {
			return &token.Command{Command: newBase()}, nil
		},
		"tankconfig": func() (cli.Command, error) {
			return &tankconfig.Command{Command: newBase()}, nil
		},
		"tankconfig get": func() (cli.Command, error) {
			return &tankconfig.GetCommand{Command: newBase()}, nil
		},
		"tankconfig update": func() (cli.Command, error) {
			return &tankconfig.UpdateCommand{Command: newBase()}, nil
		},
		"tankconfig create": func() (cli.Command, error) {
			return &tankconfig.CreateCommand{Command: newBase()}, nil
		},
		"networks": func() (cli.Command, error) {
			return &networks.Command{Command: newBase()}, nil
		},
		"networks search": func() (cli.Command, error) {
			return &networks.SearchCommand{Command: newBase()}, nil
		},
		"version": func() (cli.Command, error) {
			return &version.Command{Command: newBase()}, nil
		},
	}
}
