package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/erraggy/orgtree/internal/config"
	"github.com/erraggy/orgtree/internal/mcpserver"
	"github.com/spf13/cobra"
)

func newMCPCommand(loadConfig func() (*config.Config, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Run the MCP tool server over stdio",
		Long: `Run a Model Context Protocol server on stdin/stdout exposing the tree
operations as tools. Logs go to stderr. Storage follows the same
configuration as serve.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			// stdout carries the protocol.
			logger, err := newLogger(cmd.ErrOrStderr(), cfg)
			if err != nil {
				return err
			}

			b, err := openBackend(cfg, logger)
			if err != nil {
				return err
			}
			defer func() {
				if err := b.Close(); err != nil {
					logger.Error("closing store", "error", err)
				}
			}()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return mcpserver.Run(ctx, b.reg)
		},
	}
}
