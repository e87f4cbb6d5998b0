package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "collectibles", cmd.Use)
	assert.Contains(t, cmd.Long, "royalty splits")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := [][]string{
		{"token", "parse"},
		{"split"},
		{"amount", "to-fixed"},
		{"amount", "from-fixed"},
		{"amount", "near"},
		{"validate"},
		{"schema"},
		{"ledger", "offer"},
		{"ledger", "mint"},
		{"ledger", "manual"},
		{"ledger", "remove-group"},
		{"ledger", "add-owner"},
		{"ledger", "remove-owner"},
		{"ledger", "payout"},
		{"ledger", "quote"},
		{"ledger", "token"},
		{"ledger", "tokens"},
		{"ledger", "groups"},
		{"ledger", "transfers"},
		{"test"},
	}

	for _, path := range commands {
		name := path[len(path)-1]
		t.Run(name, func(t *testing.T) {
			subCmd, _, err := cmd.Find(path)
			require.NoError(t, err, "Command %v should exist", path)
			require.NotNil(t, subCmd)
			assert.Equal(t, name, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)

	configFlag := cmd.PersistentFlags().Lookup("config")
	require.NotNil(t, configFlag)
	assert.Equal(t, "", configFlag.DefValue)
}

func TestLedgerCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	ledgerCmd, _, err := cmd.Find([]string{"ledger"})
	require.NoError(t, err)

	dbFlag := ledgerCmd.PersistentFlags().Lookup("db")
	require.NotNil(t, dbFlag)
	assert.Equal(t, "", dbFlag.DefValue)

	mintCmd, _, err := cmd.Find([]string{"ledger", "mint"})
	require.NoError(t, err)
	attached := mintCmd.Flags().Lookup("attached")
	require.NotNil(t, attached)
	assert.Equal(t, "0", attached.DefValue)
}

func TestInvalidFormat(t *testing.T) {
	_, err := execute(t, "--format", "xml", "token", "parse", "poster")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid format "xml"`)
}

func TestIsValidFormat(t *testing.T) {
	assert.True(t, isValidFormat("text"))
	assert.True(t, isValidFormat("json"))
	assert.False(t, isValidFormat("yaml"))
	assert.False(t, isValidFormat(""))
}

func TestConfigFlag_Missing(t *testing.T) {
	_, err := execute(t, "--config", "/nonexistent/config.yaml", "amount", "to-fixed", "1")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "failed to load config")
}
