package commands

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// findSubcommand finds a subcommand by name within a cobra command.
func findSubcommand(cmd *cobra.Command, name string) *cobra.Command {
	for _, c := range cmd.Commands() {
		if c.Name() == name {
			return c
		}
	}

	return nil
}

// withViper resets the global viper state around a test.
func withViper(t *testing.T, values map[string]interface{}) {
	t.Helper()

	viper.Reset()
	t.Cleanup(viper.Reset)

	for key, value := range values {
		viper.Set(key, value)
	}
}
