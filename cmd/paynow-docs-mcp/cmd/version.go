package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/owlting/paynow-docs-mcp/internal/mcp"
	"github.com/owlting/paynow-docs-mcp/pkg/version"
)

// versionInfo is the --json payload: build info plus the MCP identity.
type versionInfo struct {
	version.BuildInfo
	MCPServer string `json:"mcp_server"`
	Tool      string `json:"tool"`
}

func newVersionCmd() *cobra.Command {
	var jsonOutput bool
	var shortOutput bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print version information including git commit, build date, Go version and the MCP server identity.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()

			if shortOutput {
				_, err := fmt.Fprintln(out, version.Short())
				return err
			}

			if jsonOutput {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(versionInfo{
					BuildInfo: version.GetInfo(),
					MCPServer: mcp.ServerName,
					Tool:      mcp.SearchName,
				})
			}

			_, err := fmt.Fprintf(out, "%s\nmcp server: %s\n", version.String(), mcp.ServerName)
			return err
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output version info as JSON")
	cmd.Flags().BoolVar(&shortOutput, "short", false, "Output only the version number")

	return cmd
}
