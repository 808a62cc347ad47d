package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/signdesk/internal/cli/config"
)

// NewConfigCommand creates the config command.
func NewConfigCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the configuration after merging defaults, the config file,
SIGNDESK_ environment variables and flags. The session secret is redacted.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			loaded := config.GetConfig(cmd.Context())
			if loaded == nil {
				return fmt.Errorf("configuration not loaded")
			}

			if loaded.FileUsed != "" {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "# config file: %s\n", loaded.FileUsed)
			}
			redacted := loaded.Config.Redacted()
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(&redacted); err != nil {
				return fmt.Errorf("failed to encode config: %w", err)
			}
			return enc.Close()
		},
	}
}
