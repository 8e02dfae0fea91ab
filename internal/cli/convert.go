package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/SukarnBharadwaj/Krishi-Mitra/internal/infrastructure/modelstore"
)

func newConvertCommand(_ *app) *cobra.Command {
	return &cobra.Command{
		Use:   "convert <input> <output>",
		Short: "Rewrite a model artifact as gob",
		Long:  "Decode an artifact in any supported format, check that it builds, and write it as a gob file.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := convertArtifact(args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "converted %s (%s) -> %s (gob)\n", args[0], format, args[1])
			return nil
		},
	}
}

// convertArtifact returns the format the input was read as
func convertArtifact(in, out string) (string, error) {
	doc, format, err := modelstore.NewLoader(nil, zap.NewNop()).Document(in)
	if err != nil {
		return "", err
	}

	f, err := os.Create(out)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", out, err)
	}

	if err := modelstore.EncodeGob(f, doc); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("failed to encode %s: %w", out, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", out, err)
	}
	return format, nil
}
