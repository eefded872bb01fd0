package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/owlting/paynow-docs-mcp/internal/docs"
	"github.com/owlting/paynow-docs-mcp/internal/logging"
	"github.com/owlting/paynow-docs-mcp/internal/mcp"
)

func newServeCmd() *cobra.Command {
	var transport string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server",
		Long: `Start the MCP server on stdio.

Nothing is written to stdout except JSON-RPC messages. Logs go to
~/.paynow-docs-mcp/logs/server.log; view them with 'paynow-docs-mcp logs'.`,
		Example: `  # Claude Desktop / Cursor configuration
  {"command": "paynow-docs-mcp", "args": ["serve"]}`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), transport)
		},
	}

	cmd.Flags().StringVar(&transport, "transport", "", "Transport type (stdio)")

	return cmd
}

// runServe starts the MCP server. An empty transport uses the configured one.
func runServe(ctx context.Context, transport string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if transport == "" {
		transport = strings.ToLower(cfg.Server.Transport)
	}

	level := cfg.Server.LogLevel
	if debugMode {
		level = "debug"
	}
	logger, cleanup, err := logging.SetupMCPMode(level)
	if err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	defer cleanup()

	if isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		logger.Warn("stdin is a terminal; serve expects an MCP client on stdio")
	}

	client, err := docs.NewClient(cfg.DocsClientConfig())
	if err != nil {
		logger.Error("failed to create docs client", slog.String("error", err.Error()))
		return err
	}
	defer func() { _ = client.Close() }()
	client.SetLogger(logger)

	srv, err := mcp.NewServer(client)
	if err != nil {
		logger.Error("failed to create MCP server", slog.String("error", err.Error()))
		return err
	}
	srv.SetLogger(logger)

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	clientCfg := client.Config()
	logger.Info("docs client ready",
		slog.String("endpoint", clientCfg.Endpoint),
		slog.String("lang", clientCfg.Lang),
		slog.Duration("timeout", clientCfg.Timeout),
		slog.Int("max_retries", clientCfg.MaxRetries))

	if err := srv.Serve(ctx, transport); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
