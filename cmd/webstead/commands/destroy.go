package commands

import (
	"github.com/spf13/cobra"

	"github.com/webstead/webstead/cmd/webstead/handlers"
)

// Destroy returns the command that tears down the provisioned
// infrastructure.
func Destroy() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "destroy",
		Short: "Tear down the provisioned infrastructure",
		Long: `Destroy removes everything terraform provisioned for this deployment.

The command asks for confirmation before deleting anything. Declining aborts
cleanly and leaves the infrastructure untouched.

WARNING: This operation is irreversible. The host and everything on it will
be deleted.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Destroy(cmd.Context(), configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: webstead.yaml)")

	return cmd
}
