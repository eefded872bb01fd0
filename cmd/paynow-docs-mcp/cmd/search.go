package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/owlting/paynow-docs-mcp/internal/docs"
	docserr "github.com/owlting/paynow-docs-mcp/internal/errors"
)

// maxParallelSearches bounds concurrent requests from one invocation.
const maxParallelSearches = 4

type searchOptions struct {
	lang    string
	timeout time.Duration
}

func newSearchCmd() *cobra.Command {
	var opts searchOptions

	cmd := &cobra.Command{
		Use:   "search QUERY [QUERY...]",
		Short: "Search PayNow Component documentation",
		Long: `Query the PayNow Component documentation service directly, the same way
the MCP tool does, and print the response as returned.

Several queries run concurrently; results print in argument order.`,
		Example: `  paynow-docs-mcp search "refund policy"
  paynow-docs-mcp search --lang zh-TW "payment button" "webhook signature"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd.Context(), cmd, args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.lang, "lang", "", "Documentation language (default from config)")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "Per-request timeout (default from config)")

	return cmd
}

func runSearch(ctx context.Context, cmd *cobra.Command, queries []string, opts searchOptions) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	clientCfg := cfg.DocsClientConfig()
	if opts.lang != "" {
		clientCfg.Lang = opts.lang
	}
	if opts.timeout > 0 {
		clientCfg.Timeout = opts.timeout
	}

	client, err := docs.NewClient(clientCfg)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()
	client.SetLogger(slog.Default())

	if ctx == nil {
		ctx = context.Background()
	}

	// Each query reports its own failure so one bad query does not cancel the rest.
	results := make([]string, len(queries))
	failures := make([]error, len(queries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelSearches)
	for i, q := range queries {
		g.Go(func() error {
			start := time.Now()
			body, err := client.Search(gctx, q)
			slog.Debug("search finished",
				slog.String("query", q),
				slog.Duration("duration", time.Since(start)),
				slog.Bool("ok", err == nil))
			results[i], failures[i] = body, err
			return nil
		})
	}
	// Workers always return nil; the group only bounds concurrency and
	// failures are read from failures below.
	_ = g.Wait()

	out := cmd.OutOrStdout()
	failed := 0
	for i, q := range queries {
		if len(queries) > 1 {
			if i > 0 {
				fmt.Fprintln(out)
			}
			fmt.Fprintf(out, "## %s\n\n", q)
		}
		if failures[i] != nil {
			failed++
			if len(queries) > 1 {
				fmt.Fprintln(cmd.ErrOrStderr(), docserr.FormatForCLI(failures[i]))
			}
			continue
		}
		fmt.Fprintln(out, results[i])
	}

	switch {
	case failed == 0:
		return nil
	case len(queries) == 1:
		return failures[0]
	default:
		return docserr.New(docserr.ErrCodeSearchFailed,
			fmt.Sprintf("%d of %d searches failed", failed, len(queries)), nil)
	}
}
