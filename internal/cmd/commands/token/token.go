package token

import (
	"flag"
	"fmt"

	"github.com/hashicorp-forge/matrix/internal/cmd/base"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Acquire an access token from the matrix token endpoint"
}

func (c *Command) Help() string {
	return `Usage: matrix token [options]

  Signs a client assertion with CBOAUTH2_CLIENT_ID and CBOAUTH2_SECRET,
  exchanges it for an access token and prints the token.` + c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("token", flag.ContinueOnError))
	c.ClientFlags(f)
	return f
}

func (c *Command) Run(args []string) int {
	f := c.Flags()
	if err := f.Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	client, err := c.Client()
	if err != nil {
		return c.Fail(err)
	}

	ctx, cancel := c.Context()
	defer cancel()

	token, err := client.AcquireToken(ctx)
	if err != nil {
		return c.Fail(err)
	}

	c.UI.Output(token)
	return 0
}
