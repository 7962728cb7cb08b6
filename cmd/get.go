package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Avyakta000/mcp-client/internal/api"
	"github.com/Avyakta000/mcp-client/internal/cli"
	"github.com/Avyakta000/mcp-client/internal/panel"
)

var getOutputFormat string

// getCmd shows the management panel for one server.
var getCmd = &cobra.Command{
	Use:   "get <server>",
	Short: "Show one MCP server's status and available actions",
	Long: `Show the management panel for a single server: its connection status
indicator, the primary activate/deactivate control, and the secondary menu.

Examples:
  mcp-client get github
  mcp-client get github -o yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

func init() {
	rootCmd.AddCommand(getCmd)

	getCmd.Flags().StringVarP(&getOutputFormat, "output", "o", "", "Output format (table, wide, json, yaml)")
}

func runGet(cmd *cobra.Command, args []string) error {
	cfg, err := activeConfig()
	if err != nil {
		return err
	}
	format, err := resolveOutput(getOutputFormat, cfg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	backend, err := connectBackend(ctx, cfg)
	if err != nil {
		return err
	}
	defer backend.Close()

	server, err := backend.GetServer(ctx, args[0])
	if err != nil {
		return err
	}

	if format == cli.OutputFormatJSON || format == cli.OutputFormatYAML {
		return cli.FormatServers(os.Stdout, []api.ServerRecord{*server}, format, false)
	}

	p := panel.New(*server, panel.Options{
		PerformAction: backend.PerformAction,
	})
	fmt.Print(p.Render(cfg.ColorEnabled()))
	return nil
}
