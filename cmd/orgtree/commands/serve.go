package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/erraggy/orgtree/internal/config"
	"github.com/erraggy/orgtree/internal/httpapi"
	"github.com/erraggy/orgtree/internal/observability"
	"github.com/erraggy/orgtree/report"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newServeCommand(loadConfig func() (*config.Config, error)) *cobra.Command {
	var listen, dataDir string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the organization tree HTTP API",
		Long: `Serve the HTTP API under ` + httpapi.BasePath + `.

Trees are kept in memory unless a data directory is configured, in which
case they are persisted with BadgerDB and restored on start.`,
		Example: `  orgtree serve --listen 127.0.0.1:8080
  orgtree serve --data-dir /var/lib/orgtree
  ORGTREE_CONFIG=orgtree.yaml orgtree serve`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("listen") {
				cfg.Server.Listen = listen
			}
			if cmd.Flags().Changed("data-dir") {
				cfg.Storage.DataDir = dataDir
				cfg.Storage.InMemory = dataDir == ""
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger, err := newLogger(cmd.ErrOrStderr(), cfg)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			ln, err := net.Listen("tcp", cfg.Server.Listen)
			if err != nil {
				return fmt.Errorf("listen on %s: %w", cfg.Server.Listen, err)
			}
			return serve(ctx, cfg, ln, logger)
		},
	}
	cmd.Flags().StringVar(&listen, "listen", "", "address to listen on (overrides server.listen)")
	cmd.Flags().StringVar(&dataDir, "data-dir", "", "BadgerDB directory; empty keeps trees in memory")
	return cmd
}

// serve runs the HTTP API on ln until ctx is done, then shuts down within
// the configured timeout. ln is closed on return.
func serve(ctx context.Context, cfg *config.Config, ln net.Listener, logger *slog.Logger) error {
	b, err := openBackend(cfg, logger)
	if err != nil {
		_ = ln.Close()
		return err
	}
	defer func() {
		if err := b.Close(); err != nil {
			logger.Error("closing store", "error", err)
		}
	}()

	format, err := report.ParseFormat(cfg.Report.DefaultFormat)
	if err != nil {
		_ = ln.Close()
		return err
	}

	metrics := observability.NewMetrics()
	metrics.TrackTrees(b.reg.Len)

	api := httpapi.New(b.reg,
		httpapi.WithLogger(logger),
		httpapi.WithMetrics(metrics),
		httpapi.WithRateLimit(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst),
		httpapi.WithMaxBodyBytes(cfg.Server.MaxBodyBytes),
		httpapi.WithDefaultFormat(format),
	)

	srv := &http.Server{
		Handler:           api.Handler(),
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("http server listening", "addr", ln.Addr().String(), "trees", b.reg.Len())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		logger.Info("http server shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
