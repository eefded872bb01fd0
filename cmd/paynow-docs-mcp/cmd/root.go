// Package cmd provides the CLI commands for paynow-docs-mcp.
package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/owlting/paynow-docs-mcp/internal/config"
	"github.com/owlting/paynow-docs-mcp/internal/logging"
	"github.com/owlting/paynow-docs-mcp/pkg/version"
)

// Persistent flags
var (
	configFile     string
	debugMode      bool
	loggingCleanup func()
)

// NewRootCmd creates the root command for the paynow-docs-mcp CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "paynow-docs-mcp",
		Short: "MCP server for PayNow Component documentation",
		Long: `paynow-docs-mcp exposes PayNow Component documentation search to AI
assistants over the Model Context Protocol.

It registers one tool and one prompt, both named
search_paynow_component_documentation, which forward a query to the
PayNow documentation service and return the matching sections.

Run without a subcommand to serve MCP on stdio.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return cmd.Help()
			}
			return runServe(cmd.Context(), "")
		},
	}

	cmd.SetVersionTemplate("paynow-docs-mcp version {{.Version}}\n")

	cmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to a config file (overrides the user config)")
	cmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging to ~/.paynow-docs-mcp/logs/")

	cmd.PersistentPreRunE = startLogging
	cmd.PersistentPostRunE = stopLogging

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newSearchCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newLogsCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// startLogging enables debug logging for CLI commands when --debug is set.
// MCP serving sets up its own file-only logging instead.
func startLogging(cmd *cobra.Command, _ []string) error {
	if !debugMode || isServeCommand(cmd) {
		return nil
	}

	cfg := logging.DefaultConfig()
	cfg.Level = "debug"
	logger, cleanup, err := logging.Setup(cfg)
	if err != nil {
		return fmt.Errorf("failed to setup debug logging: %w", err)
	}
	loggingCleanup = cleanup
	slog.SetDefault(logger)
	slog.Debug("Debug logging enabled",
		slog.String("log_file", cfg.FilePath),
		slog.String("command", cmd.CommandPath()))
	return nil
}

func stopLogging(_ *cobra.Command, _ []string) error {
	if loggingCleanup != nil {
		loggingCleanup()
		loggingCleanup = nil
	}
	return nil
}

func isServeCommand(cmd *cobra.Command) bool {
	return cmd.Name() == "serve" || !cmd.HasParent()
}

// loadConfig loads the effective configuration honoring --config.
func loadConfig() (*config.Config, error) {
	return config.Load(configFile)
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}
