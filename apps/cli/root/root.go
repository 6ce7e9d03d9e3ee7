package root

import (
	"github.com/spf13/cobra"
)

// rootCmd is the base command for the idcheck CLI. Subcommands (validate, schema, etc.) are attached here.
var rootCmd = &cobra.Command{
	Use:           "idcheck",
	Short:         "Spanish identifier validation CLI",
	Long:          "Validate DNI, NIE, CIF and other Spanish identifiers, registration payloads and the validation journal.",
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

// Root returns the mutable root command for wiring from subpackages.
func Root() *cobra.Command {
	return rootCmd
}
