package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/artgrid/internal/config"
)

// NewConfigValidateCmd creates the config validate command for validating configuration.
func NewConfigValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the effective configuration",
		Long:  "Validates the configuration after the file, environment and flags have been applied.",
		Example: `  # Validate current configuration
  artgrid config validate`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.GetGlobalConfig().Validate(); err != nil {
				return fmt.Errorf("configuration is invalid: %w", err)
			}
			cmd.Printf("✅ Configuration is valid\n")
			return nil
		},
	}

	return cmd
}
