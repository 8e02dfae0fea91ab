package cli

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/SukarnBharadwaj/Krishi-Mitra/internal/infrastructure/config"
)

// app carries state shared by every subcommand
type app struct {
	cfg *config.Config
}

// NewRootCommand builds the krishimitra command tree
func NewRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "krishimitra",
		Short:         "Krishi Mitra chat relay and crop prediction services",
		Long:          "Runs the farmer chat relay or the crop recommendation model server, and offers offline tools for model artifacts.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// A missing .env file is fine
			_ = godotenv.Load()

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			a.cfg = cfg
			return nil
		},
	}

	root.AddCommand(newChatServerCommand(a))
	root.AddCommand(newModelServerCommand(a))
	root.AddCommand(newPredictCommand(a))
	root.AddCommand(newConvertCommand(a))
	root.AddCommand(newReloadCommand(a))

	return root
}

// Execute runs the root command.
func Execute() error {
	return NewRootCommand().Execute()
}
