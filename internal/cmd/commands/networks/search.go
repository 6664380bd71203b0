package networks

import (
	"flag"
	"fmt"

	"github.com/hashicorp-forge/matrix/internal/cmd/base"
	"github.com/hashicorp-forge/matrix/pkg/matrix"
)

type SearchCommand struct {
	*base.Command

	flagKeyword string
	flagQuery   base.KeyValueFlag
}

func (c *SearchCommand) Synopsis() string {
	return "Search talent networks by DID, name or site URL"
}

func (c *SearchCommand) Help() string {
	return `Usage: matrix networks search -kw=<keyword> [-q key=value ...]

  Searches talent networks. The keyword may be an account DID, a talent
  network DID, a talent network name or a site URL.` + c.Flags().Help()
}

func (c *SearchCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("networks search", flag.ContinueOnError))
	c.ClientFlags(f)

	if c.flagQuery == nil {
		c.flagQuery = base.KeyValueFlag{}
	}

	f.StringVar(
		&c.flagKeyword, "kw", "",
		"(Required) Account DID, talent network DID, name or site URL.",
	)
	f.Var(
		c.flagQuery, "q",
		"Extra query parameter as key=value. Can be repeated.",
	)

	return f
}

func (c *SearchCommand) Run(args []string) int {
	f := c.Flags()
	if err := f.Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	if c.flagKeyword == "" {
		c.UI.Error("-kw is required")
		return 1
	}

	client, err := c.Client()
	if err != nil {
		return c.Fail(err)
	}

	ctx, cancel := c.Context()
	defer cancel()

	body, err := client.QueryNetworks(ctx, matrix.NetworkSearch{
		Keyword: c.flagKeyword,
		Query:   c.flagQuery,
	})
	if err != nil {
		return c.Fail(err)
	}

	if err := c.Output(body); err != nil {
		return c.Fail(err)
	}
	return 0
}
