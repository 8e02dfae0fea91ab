package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/SukarnBharadwaj/Krishi-Mitra/internal/adapter/client"
)

func newReloadCommand(a *app) *cobra.Command {
	var (
		server  string
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "reload",
		Short: "Ask a running model server to reload its artifact",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if server == "" {
				server = fmt.Sprintf("http://localhost:%d", a.cfg.ModelServer.Port)
			}

			mc := client.NewModelClient(server, timeout)
			resp, err := mc.Reload(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "status=%s model_loaded=%t\n", resp.Status, resp.ModelLoaded)
			return nil
		},
	}

	cmd.Flags().StringVar(&server, "server", "", "model server base URL (defaults to localhost on the configured port)")
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "request timeout")

	return cmd
}
