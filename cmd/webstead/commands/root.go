// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument
// parsing and flag binding. Command execution is delegated to handler
// functions in the handlers package.
package commands

import "github.com/spf13/cobra"

// Root returns the root command for the webstead CLI.
func Root() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "webstead",
		Short: "Provision and configure a single-host web server",
	}

	cmd.AddCommand(Deploy())
	cmd.AddCommand(Destroy())
	cmd.AddCommand(Doctor())
	cmd.AddCommand(Version())

	return cmd
}
