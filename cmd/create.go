package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Avyakta000/mcp-client/internal/api"
	"github.com/Avyakta000/mcp-client/internal/form"
	"github.com/Avyakta000/mcp-client/internal/notify"
)

var (
	createInteractive bool
	createDescription string
	createTransport   string
	createURL         string
	createCommand     string
	createArgs        string
	createHeaders     []string
	createOAuth2      bool
	createPublic      bool
)

// createCmd opens the server form in add mode.
var createCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a new MCP server definition",
	Long: `Create a new MCP server definition.

With --interactive the form is filled in field by field at the prompt.
Otherwise the fields come from flags; only the name is required by
validation, everything else is optional.

Examples:
  mcp-client create github --transport sse --url https://mcp.example.com/sse
  mcp-client create local-fs --transport stdio --command npx --args '["-y","@scope/fs"]'
  mcp-client create github --header "Authorization=Bearer ..." --header "X-Org=acme"
  mcp-client create github -i`,
	Args: cobra.ExactArgs(1),
	RunE: runCreate,
}

func init() {
	rootCmd.AddCommand(createCmd)

	createCmd.Flags().BoolVarP(&createInteractive, "interactive", "i", false, "Fill the form interactively")
	createCmd.Flags().StringVar(&createDescription, "description", "", "Server description")
	createCmd.Flags().StringVar(&createTransport, "transport", "sse", "Transport (sse, streamable_http, stdio)")
	createCmd.Flags().StringVar(&createURL, "url", "", "Endpoint URL (sse and streamable_http servers)")
	createCmd.Flags().StringVar(&createCommand, "command", "", "Executable (stdio servers)")
	createCmd.Flags().StringVar(&createArgs, "args", "", `Command args as a JSON array, e.g. '["-y","@scope/server"]'`)
	createCmd.Flags().StringArrayVar(&createHeaders, "header", nil, "Custom header as key=value (repeatable)")
	createCmd.Flags().BoolVar(&createOAuth2, "oauth2", false, "Connection requires an OAuth2 credential exchange")
	createCmd.Flags().BoolVar(&createPublic, "public", false, "Mark the server as public")
}

func runCreate(cmd *cobra.Command, args []string) error {
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

	modal := form.NewModal(backend.Create, notify.NewConsole(os.Stdout, cfg.ColorEnabled()))
	modal.OpenAdd()
	modal.Update(func(s *form.State) {
		s.Name = args[0]
	})

	if createInteractive {
		prompter, err := form.NewPrompter(modal)
		if err != nil {
			return err
		}
		defer prompter.Close()
		if err := prompter.Run(); err != nil {
			return err
		}
	} else {
		transport, err := api.ParseTransport(createTransport)
		if err != nil {
			return err
		}
		modal.Update(func(s *form.State) {
			s.Description = createDescription
			s.Transport = transport
			s.URL = createURL
			s.Command = createCommand
			s.ArgsJSON = createArgs
			s.RequiresOAuth2 = createOAuth2
			s.IsPublic = createPublic
		})
		for _, header := range createHeaders {
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
		// Persist failed; the notification already explained why.
		return fmt.Errorf("server %q was not saved", args[0])
	}
	return nil
}

func splitHeaderFlag(raw string) (string, string, error) {
	key, value, found := strings.Cut(raw, "=")
	if !found || key == "" {
		return "", "", fmt.Errorf("invalid --header %q, expected key=value", raw)
	}
	return key, value, nil
}
