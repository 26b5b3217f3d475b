package commands

import (
	"github.com/spf13/cobra"

	"github.com/webstead/webstead/cmd/webstead/handlers"
)

// Doctor returns the command that runs only the preflight checks.
func Doctor() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check tools and credentials without deploying",
		Long: `Doctor runs the same preflight checks the deploy pipeline starts with:
required tools on PATH and a valid AWS identity. Nothing is created or
modified.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Doctor(cmd.Context(), configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: webstead.yaml)")

	return cmd
}
