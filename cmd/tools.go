package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Avyakta000/mcp-client/internal/cli"
	"github.com/Avyakta000/mcp-client/internal/explorer"
)

var (
	toolsOutputFormat string
	toolsSearch       string
	toolsFilter       string
	toolsView         string
	toolsExpand       string
)

// toolsCmd browses the tools a server exposes.
var toolsCmd = &cobra.Command{
	Use:   "tools <server>",
	Short: "Browse the tools a connected server exposes",
	Long: `Browse a server's tools in a grid or list, filtered by search text.

A tool is shown when its name or description contains the search text
(case-insensitive). The --expand flag opens one tool's input schema.

Examples:
  mcp-client tools github
  mcp-client tools github --search issue
  mcp-client tools github --view list --expand search_issues
  mcp-client tools github -o json`,
	Args: cobra.ExactArgs(1),
	RunE: runTools,
}

func init() {
	rootCmd.AddCommand(toolsCmd)

	toolsCmd.Flags().StringVarP(&toolsOutputFormat, "output", "o", "", "Output format (table, wide, json, yaml)")
	toolsCmd.Flags().StringVar(&toolsSearch, "search", "", "Filter tools by name or description substring")
	toolsCmd.Flags().StringVar(&toolsFilter, "filter", "all", "Availability filter (all, available, unavailable)")
	toolsCmd.Flags().StringVar(&toolsView, "view", "grid", "View mode (grid, list)")
	toolsCmd.Flags().StringVar(&toolsExpand, "expand", "", "Expand the named tool's input schema")
}

func runTools(cmd *cobra.Command, args []string) error {
	cfg, err := activeConfig()
	if err != nil {
		return err
	}
	format, err := resolveOutput(toolsOutputFormat, cfg)
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
	if len(server.Tools) == 0 && server.IsConnected() {
		if err := backend.LoadTools(ctx, server); err != nil {
			return err
		}
	}

	if format == cli.OutputFormatJSON || format == cli.OutputFormatYAML {
		return cli.FormatTools(os.Stdout, *server, format, false)
	}

	e := explorer.New(*server)
	e.SetSearch(toolsSearch)
	e.SetFilter(explorer.Filter(toolsFilter))
	e.SetViewMode(explorer.ViewMode(toolsView))
	if toolsExpand != "" {
		if _, err := server.FindTool(toolsExpand); err != nil {
			return err
		}
		e.ToggleExpanded(toolsExpand)
	}
	fmt.Print(e.Render(cfg.ColorEnabled()))
	return nil
}
