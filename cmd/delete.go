package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Avyakta000/mcp-client/internal/notify"
)

var deleteYes bool

// deleteCmd removes a server definition.
var deleteCmd = &cobra.Command{
	Use:   "delete <server>",
	Short: "Delete an MCP server definition",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

func init() {
	rootCmd.AddCommand(deleteCmd)

	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Skip the confirmation prompt")
}

func runDelete(cmd *cobra.Command, args []string) error {
	cfg, err := activeConfig()
	if err != nil {
		return err
	}

	if !deleteYes {
		fmt.Printf("Delete server %q? (y/N): ", args[0])
		var answer string
		fmt.Scanln(&answer)
		if answer != "y" && answer != "Y" && answer != "yes" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	ctx := cmd.Context()
	backend, err := connectBackend(ctx, cfg)
	if err != nil {
		return err
	}
	defer backend.Close()

	if err := backend.Delete(ctx, args[0]); err != nil {
		return err
	}
	notify.NewConsole(os.Stdout, cfg.ColorEnabled()).Success(fmt.Sprintf("Server %q deleted", args[0]))
	return nil
}
