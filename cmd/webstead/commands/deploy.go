package commands

import (
	"github.com/spf13/cobra"

	"github.com/webstead/webstead/cmd/webstead/handlers"
)

// Deploy returns the command that runs the full deployment pipeline.
//
// The pipeline checks prerequisites, provisions the infrastructure with an
// explicit confirmation before apply, waits for the host to accept SSH,
// runs the configuration stages in order, and prints a summary.
func Deploy() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Provision the host and deploy the site",
		Long: `Deploy provisions one cloud host and configures it to serve the site.

The pipeline runs these phases in order, stopping at the first failure:

  1. preflight  - verify terraform, ansible-playbook, and AWS credentials
  2. provision  - terraform init, plan, confirm, apply
  3. facts      - read the host address and site URL from terraform outputs
  4. readiness  - wait until the new host accepts SSH
  5. configure  - run the ansible stages against the host
  6. summary    - print the site URL, SSH recipe, and teardown command

The apply step always asks for confirmation. Declining aborts cleanly with
exit code 0 and leaves the infrastructure untouched.

Examples:
  # Deploy using webstead.yaml in the current directory (or built-in defaults)
  webstead deploy

  # Deploy using a specific config file
  webstead deploy -c production.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Deploy(cmd.Context(), configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: webstead.yaml)")

	return cmd
}
