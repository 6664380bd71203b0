package tankconfig

import (
	"flag"
	"fmt"

	"github.com/hashicorp-forge/matrix/internal/cmd/base"
)

type UpdateCommand struct {
	*base.Command
}

func (c *UpdateCommand) Synopsis() string {
	return "Replace the tank configuration of a talent network"
}

func (c *UpdateCommand) Help() string {
	return `Usage: matrix tankconfig update [options] <tn-did> <file>

  Sends the contents of file, or stdin when file is "-", as the new tank
  configuration. The body is sent exactly as read.` + c.Flags().Help()
}

func (c *UpdateCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("tankconfig update", flag.ContinueOnError))
	c.ClientFlags(f)
	return f
}

func (c *UpdateCommand) Run(args []string) int {
	f := c.Flags()
	if err := f.Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	if f.NArg() != 2 {
		c.UI.Error("expected two arguments: the talent network DID and a file")
		return 1
	}

	data, err := c.ReadInput(f.Arg(1))
	if err != nil {
		c.UI.Error(fmt.Sprintf("error reading input: %v", err))
		return 1
	}

	client, err := c.Client()
	if err != nil {
		return c.Fail(err)
	}

	ctx, cancel := c.Context()
	defer cancel()

	body, err := client.Update(ctx, f.Arg(0), data)
	if err != nil {
		return c.Fail(err)
	}

	if err := c.Output(body); err != nil {
		return c.Fail(err)
	}
	return 0
}
