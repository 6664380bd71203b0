package version

import (
	"github.com/hashicorp-forge/matrix/internal/cmd/base"
	matrixversion "github.com/hashicorp-forge/matrix/internal/version"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Print the version"
}

func (c *Command) Help() string {
	return "Usage: matrix version"
}

func (c *Command) Run(args []string) int {
	c.UI.Output("matrix " + matrixversion.Version)
	return 0
}
