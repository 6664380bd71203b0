package tankconfig

import (
	"flag"
	"fmt"

	"github.com/hashicorp-forge/matrix/internal/cmd/base"
)

type GetCommand struct {
	*base.Command
}

func (c *GetCommand) Synopsis() string {
	return "Print the tank configuration of a talent network"
}

func (c *GetCommand) Help() string {
	return `Usage: matrix tankconfig get [options] <tn-did>` + c.Flags().Help()
}

func (c *GetCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("tankconfig get", flag.ContinueOnError))
	c.ClientFlags(f)
	return f
}

func (c *GetCommand) Run(args []string) int {
	f := c.Flags()
	if err := f.Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	if f.NArg() != 1 {
		c.UI.Error("expected exactly one argument: the talent network DID")
		return 1
	}
	tnDID := f.Arg(0)

	client, err := c.Client()
	if err != nil {
		return c.Fail(err)
	}

	ctx, cancel := c.Context()
	defer cancel()

	body, err := client.Query(ctx, tnDID)
	if err != nil {
		return c.Fail(err)
	}

	if err := c.Output(body); err != nil {
		return c.Fail(err)
	}
	return 0
}
