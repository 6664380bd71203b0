package tankconfig

import (
	"encoding/json"
	"flag"
	"fmt"

	"github.com/hashicorp-forge/matrix/internal/cmd/base"
)

type CreateCommand struct {
	*base.Command
}

func (c *CreateCommand) Synopsis() string {
	return "Create a talent network tank configuration"
}

func (c *CreateCommand) Help() string {
	return `Usage: matrix tankconfig create [options] <file>

  Reads a JSON document from file, or stdin when file is "-", and creates a
  talent network from it.` + c.Flags().Help()
}

func (c *CreateCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("tankconfig create", flag.ContinueOnError))
	c.ClientFlags(f)
	return f
}

func (c *CreateCommand) Run(args []string) int {
	f := c.Flags()
	if err := f.Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	if f.NArg() != 1 {
		c.UI.Error("expected exactly one argument: a JSON file")
		return 1
	}

	raw, err := c.ReadInput(f.Arg(0))
	if err != nil {
		c.UI.Error(fmt.Sprintf("error reading input: %v", err))
		return 1
	}

	var data interface{}
	if err := json.Unmarshal(raw, &data); err != nil {
		c.UI.Error(fmt.Sprintf("input is not valid JSON: %v", err))
		return 1
	}

	client, err := c.Client()
	if err != nil {
		return c.Fail(err)
	}

	ctx, cancel := c.Context()
	defer cancel()

	body, err := client.Create(ctx, data)
	if err != nil {
		return c.Fail(err)
	}

	if err := c.Output(body); err != nil {
		return c.Fail(err)
	}
	return 0
}
