package base

import (
	"flag"
	"strings"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hashicorp-forge/matrix/internal/config"
	"github.com/hashicorp-forge/matrix/pkg/matrix"
)

func newTestCommand() (*Command, *cli.MockUi) {
	ui := cli.NewMockUi()
	c := NewCommand(hclog.NewNullLogger(), ui)
	c.FS = afero.NewMemMapFs()
	return c, ui
}

func parseClientFlags(t *testing.T, c *Command, args ...string) {
	t.Helper()
	f := NewFlagSet(flag.NewFlagSet("test", flag.ContinueOnError))
	c.ClientFlags(f)
	require.NoError(t, f.Parse(args))
}

func TestCommand_Output_JSON(t *testing.T) {
	c, ui := newTestCommand()
	parseClientFlags(t, c)

	require.NoError(t, c.Output([]byte(`{"b":1,"a":[true]}`)))
	assert.Equal(t, "{\n  \"a\": [\n    true\n  ],\n  \"b\": 1\n}\n", ui.OutputWriter.String())
}

func TestCommand_Output_YAML(t *testing.T) {
	c, ui := newTestCommand()
	parseClientFlags(t, c, "-format=yaml")

	require.NoError(t, c.Output([]byte(`{"name":"Tank","enabled":true}`)))
	assert.Equal(t, "enabled: true\nname: Tank\n", strings.TrimRight(ui.OutputWriter.String(), "\n")+"\n")
}

func TestCommand_Output_NotJSON(t *testing.T) {
	c, ui := newTestCommand()
	parseClientFlags(t, c, "-format=yaml")

	require.NoError(t, c.Output([]byte("<html>moved</html>")))
	assert.Equal(t, "<html>moved</html>\n", ui.OutputWriter.String())
}

func TestCommand_Fail(t *testing.T) {
	c, ui := newTestCommand()

	code := c.Fail(matrix.NormalizeError(400, []byte(`{"ErrorMessage":"Name is required"}`)))
	assert.Equal(t, 1, code)
	assert.Contains(t, ui.ErrorWriter.String(), "error (client_reported, HTTP 400): Name is required")

	c, ui = newTestCommand()
	c.Fail(&matrix.APIError{Kind: matrix.KindTransport, Message: "connection refused"})
	assert.Contains(t, ui.ErrorWriter.String(), "error (transport): connection refused")
}

func TestCommand_Client(t *testing.T) {
	t.Setenv(config.EnvBaseURL, "http://localhost:9999")
	t.Setenv(config.EnvTimeout, "5s")

	c, _ := newTestCommand()
	require.NoError(t, afero.WriteFile(c.FS, "matrix.hcl", []byte(`environment = "production"`), 0o600))

	var got *matrix.Config
	c.NewClient = func(cfg *matrix.Config) (*matrix.Client, error) {
		got = cfg
		return matrix.NewClient(cfg)
	}
	parseClientFlags(t, c, "-config=matrix.hcl", "-log-level=debug")

	client, err := c.Client()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9999", client.BaseURL())
	require.NotNil(t, got)
	assert.Equal(t, "production", got.Environment)
	assert.Equal(t, "5s", got.Timeout.String())
}

func TestCommand_Client_Errors(t *testing.T) {
	c, _ := newTestCommand()
	parseClientFlags(t, c, "-format=xml")
	_, err := c.Client()
	assert.ErrorContains(t, err, "unsupported output format")

	c, _ = newTestCommand()
	parseClientFlags(t, c, "-log-level=loud")
	_, err = c.Client()
	assert.ErrorContains(t, err, "invalid configuration")

	c, _ = newTestCommand()
	parseClientFlags(t, c, "-config=missing.hcl")
	_, err = c.Client()
	assert.ErrorContains(t, err, "configuration file not found")
}

func TestCommand_ReadInput(t *testing.T) {
	c, _ := newTestCommand()
	c.Stdin = strings.NewReader("from stdin")
	require.NoError(t, afero.WriteFile(c.FS, "in.json", []byte("from file"), 0o600))

	data, err := c.ReadInput("-")
	require.NoError(t, err)
	assert.Equal(t, "from stdin", string(data))

	data, err = c.ReadInput("in.json")
	require.NoError(t, err)
	assert.Equal(t, "from file", string(data))

	_, err = c.ReadInput("nope.json")
	assert.Error(t, err)
}

func TestKeyValueFlag(t *testing.T) {
	kv := KeyValueFlag{}
	require.NoError(t, kv.Set("AccountDID=A1"))
	require.NoError(t, kv.Set("Empty="))
	assert.Error(t, kv.Set("novalue"))
	assert.Error(t, kv.Set("=x"))

	assert.Equal(t, map[string]string{"AccountDID": "A1", "Empty": ""}, map[string]string(kv))
	assert.Equal(t, "AccountDID=A1,Empty=", kv.String())
}

func TestFlagSet_Help(t *testing.T) {
	c, _ := newTestCommand()
	f := NewFlagSet(flag.NewFlagSet("test", flag.ContinueOnError))
	c.ClientFlags(f)

	help := f.Help()
	assert.Contains(t, help, "Options:")
	assert.Contains(t, help, "-config")
	assert.Contains(t, help, "-format=json")
	assert.Contains(t, help, "-log-level")
}
