package tankconfig

import (
	"github.com/mitchellh/cli"

	"github.com/hashicorp-forge/matrix/internal/cmd/base"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Read and write talent network tank configurations"
}

func (c *Command) Help() string {
	return `Usage: matrix tankconfig <subcommand> [options] [args]

  This command groups subcommands for talent network tank configurations.

      $ matrix tankconfig get TN7L0KS75V8CSV87PX9C
      $ matrix tankconfig update TN7L0KS75V8CSV87PX9C config.json
      $ cat config.json | matrix tankconfig create -`
}

func (c *Command) Run(args []string) int {
	return cli.RunResultHelp
}
