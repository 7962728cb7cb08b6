package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/Avyakta000/mcp-client/internal/cli"
)

var (
	listOutputFormat string
	listWithTools    bool
)

// listCmd lists all server records known to the aggregator.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List MCP servers",
	Long: `List all MCP server definitions with their connection status.

Examples:
  mcp-client list
  mcp-client list -o wide
  mcp-client list -o yaml
  mcp-client list --with-tools`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVarP(&listOutputFormat, "output", "o", "", "Output format (table, wide, json, yaml)")
	listCmd.Flags().BoolVar(&listWithTools, "with-tools", false, "Also fetch each connected server's tool list")
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := activeConfig()
	if err != nil {
		return err
	}
	format, err := resolveOutput(listOutputFormat, cfg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	backend, err := connectBackend(ctx, cfg)
	if err != nil {
		return err
	}
	defer backend.Close()

	servers, err := backend.ListServers(ctx)
	if err != nil {
		return err
	}
	if listWithTools {
		if err := backend.RefreshAll(ctx, servers); err != nil {
			return err
		}
	}

	return cli.FormatServers(os.Stdout, servers, format, cfg.ColorEnabled())
}
