package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/voxplan/voxplan/adapter/api"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Long: `Run the REST API used by browser clients for account sync. Requires
the postgres storage driver (set DATABASE_URL) and JWT_SECRET.

A background worker permanently purges items soft-deleted more than
30 days ago.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := requireContainer()
		if err != nil {
			return err
		}
		if err := c.RequireServer(); err != nil {
			return err
		}

		serverCfg := api.DefaultServerConfig()
		serverCfg.Addr = c.Config.HTTPAddr
		serverCfg.CORSOrigin = c.Config.CORSOrigin

		server := api.NewServer(
			serverCfg,
			api.NewAuthHandler(c.Identity, c.Logger),
			api.NewPlannerHandler(c.RowStore, c.Engine, c.Logger),
			c.Health,
			c.Logger,
		)

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()
		go c.Purger.Start(ctx)

		errCh := make(chan error, 1)
		go func() {
			errCh <- server.Start()
		}()

		select {
		case err := <-errCh:
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("server failed: %w", err)
			}
		case <-ctx.Done():
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer shutdownCancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("shutdown failed: %w", err)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
