package networks

import (
	"github.com/mitchellh/cli"

	"github.com/hashicorp-forge/matrix/internal/cmd/base"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Look up talent networks"
}

func (c *Command) Help() string {
	return `Usage: matrix networks <subcommand> [options] [args]

  This command groups subcommands for talent network lookups. Lookups use
  the developer key (DEV_KEY) rather than OAuth2 credentials.`
}

func (c *Command) Run(args []string) int {
	return cli.RunResultHelp
}
