// Package commands provides CLI command handlers for orgtree.
package commands

import (
	"os"

	"github.com/erraggy/orgtree/internal/config"
	"github.com/spf13/cobra"
)

// NewRootCommand builds the orgtree command tree.
func NewRootCommand() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:   "orgtree",
		Short: "Manage XML organization trees",
		Long: `orgtree stores hierarchical organization trees and edits them through
path expressions such as person[@id='1']/children/person[@id='2'].

Run "orgtree serve" for the HTTP API, "orgtree mcp" for the MCP stdio
server, or use validate, report and paths on local files.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", os.Getenv(config.EnvConfigFile),
		"path to a YAML configuration file (env "+config.EnvConfigFile+")")

	loadConfig := func() (*config.Config, error) {
		return config.Load(configPath)
	}

	root.AddCommand(
		newServeCommand(loadConfig),
		newMCPCommand(loadConfig),
		newValidateCommand(),
		newReportCommand(),
		newPathsCommand(),
		newVersionCommand(),
	)
	return root
}
