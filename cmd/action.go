package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/Avyakta000/mcp-client/internal/api"
	"github.com/Avyakta000/mcp-client/internal/notify"
	"github.com/Avyakta000/mcp-client/internal/panel"
)

// The three lifecycle commands share one runner; they differ only in the
// action forwarded to the backend.
var (
	activateCmd = &cobra.Command{
		Use:   "activate <server>",
		Short: "Activate an MCP server connection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAction(cmd, args[0], api.ActionActivate)
		},
	}

	deactivateCmd = &cobra.Command{
		Use:   "deactivate <server>",
		Short: "Deactivate an MCP server connection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAction(cmd, args[0], api.ActionDeactivate)
		},
	}

	restartCmd = &cobra.Command{
		Use:   "restart <server>",
		Short: "Restart an MCP server connection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAction(cmd, args[0], api.ActionRestart)
		},
	}
)

func init() {
	rootCmd.AddCommand(activateCmd)
	rootCmd.AddCommand(deactivateCmd)
	rootCmd.AddCommand(restartCmd)
}

func runAction(cmd *cobra.Command, serverName string, action api.ServerAction) error {
	cfg, err := activeConfig()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	backend, err := connectBackend(ctx, cfg)
	if err != nil {
		return err
	}
	defer backend.Close()

	server, err := backend.GetServer(ctx, serverName)
	if err != nil {
		return err
	}

	p := panel.New(*server, panel.Options{
		PerformAction: backend.PerformAction,
		Notifier:      notify.NewConsole(os.Stdout, cfg.ColorEnabled()),
		Spinner:       cfg.ColorEnabled(),
	})
	return p.Invoke(ctx, action)
}
