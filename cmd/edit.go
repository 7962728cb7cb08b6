package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Avyakta000/mcp-client/internal/api"
	"github.com/Avyakta000/mcp-client/internal/form"
	"github.com/Avyakta000/mcp-client/internal/notify"
)

var (
	editInteractive bool
	editDescription string
	editTransport   string
	editURL         string
	editCommand     string
	editArgs        string
	editHeaders     []string
	editOAuth2      bool
	editPublic      bool
)

// editCmd opens the server form in edit mode, pre-populated from the
// existing record. Custom headers always start empty and must be supplied
// again; they are not read back from the record.
var editCmd = &cobra.Command{
	Use:   "edit <server>",
	Short: "Edit an existing MCP server definition",
	Long: `Edit an existing MCP server definition.

The form opens pre-populated from the current record. With --interactive
each field is offered at the prompt with its current value as the default.
Custom headers are not pre-populated; pass --header again to keep them.

Examples:
  mcp-client edit github --url https://mcp.example.com/v2/sse
  mcp-client edit github -i`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	rootCmd.AddCommand(editCmd)

	editCmd.Flags().BoolVarP(&editInteractive, "interactive", "i", false, "Fill the form interactively")
	editCmd.Flags().StringVar(&editDescription, "description", "", "Server description")
	editCmd.Flags().StringVar(&editTransport, "transport", "", "Transport (sse, streamable_http, stdio)")
	editCmd.Flags().StringVar(&editURL, "url", "", "Endpoint URL (sse and streamable_http servers)")
	editCmd.Flags().StringVar(&editCommand, "command", "", "Executable (stdio servers)")
	editCmd.Flags().StringVar(&editArgs, "args", "", `Command args as a JSON array`)
	editCmd.Flags().StringArrayVar(&editHeaders, "header", nil, "Custom header as key=value (repeatable)")
	editCmd.Flags().BoolVar(&editOAuth2, "oauth2", false, "Connection requires an OAuth2 credential exchange")
	editCmd.Flags().BoolVar(&editPublic, "public", false, "Mark the server as public")
}

func runEdit(cmd *cobra.Command, args []string) error {
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

	server, err := backend.GetServer(ctx, args[0])
	if err != nil {
		return err
	}

	modal := form.NewModal(backend.Update, notify.NewConsole(os.Stdout, cfg.ColorEnabled()))
	modal.OpenEdit(*server)

	if editInteractive {
		prompter, err := form.NewPrompter(modal)
		if err != nil {
			return err
		}
		defer prompter.Close()
		if err := prompter.Run(); err != nil {
			return err
		}
	} else {
		flags := cmd.Flags()
		if flags.Changed("transport") {
			transport, err := api.ParseTransport(editTransport)
			if err != nil {
				return err
			}
			modal.Update(func(s *form.State) { s.Transport = transport })
		}
		modal.Update(func(s *form.State) {
			if flags.Changed("description") {
				s.Description = editDescription
			}
			if flags.Changed("url") {
				s.URL = editURL
			}
			if flags.Changed("command") {
				s.Command = editCommand
			}
			if flags.Changed("args") {
				s.ArgsJSON = editArgs
			}
			if flags.Changed("oauth2") {
				s.RequiresOAuth2 = editOAuth2
			}
			if flags.Changed("public") {
				s.IsPublic = editPublic
			}
		})
		for _, header := range editHeaders {
			key, value, err := splitHeaderFlag(header)
			if err != nil {
				return err
			}
			modal.AddHeader(key, value)
		}
	}

	if err := modal.Submit(ctx); err != nil {
		return err
	}
	if modal.IsOpen() {
		return fmt.Errorf("server %q was not saved", args[0])
	}
	return nil
}
