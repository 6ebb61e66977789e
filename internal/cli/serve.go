package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/commesse/internal/httpapi"
	"github.com/example/commesse/internal/wire"
)

// ServeCmd returns the serve command
func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the dashboard HTTP API",
		Long: `Run the HTTP API the dashboard front end talks to. A background
poller refreshes the local snapshot from the remote store at the
configured interval. Shuts down cleanly on SIGINT/SIGTERM.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := wire.Config()
			log := wire.Logger()

			addr, _ := cmd.Flags().GetString("addr")
			if addr == "" {
				addr = cfg.HTTPAddr
			}

			handler := httpapi.NewHandler(
				wire.JobService(),
				wire.DirectoryService(),
				wire.AssistantService(),
				wire.SyncService(),
				log,
			)
			srv := &http.Server{
				Addr:              addr,
				Handler:           httpapi.NewRouter(handler),
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			go wire.SyncService().Poll(ctx, cfg.PollInterval)

			errCh := make(chan error, 1)
			go func() {
				log.Info("http server listening", "addr", addr)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if err != nil && !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("server failed: %w", err)
				}
			case <-ctx.Done():
				log.Info("shutting down")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				if err := srv.Shutdown(shutdownCtx); err != nil {
					return fmt.Errorf("shutdown failed: %w", err)
				}
			}
			return nil
		},
	}
	cmd.Flags().String("addr", "", "listen address (defaults to the configured http_addr)")
	return cmd
}
