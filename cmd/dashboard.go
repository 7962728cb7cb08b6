package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/Avyakta000/mcp-client/internal/api"
	"github.com/Avyakta000/mcp-client/internal/cli"
	"github.com/Avyakta000/mcp-client/internal/client"
	"github.com/Avyakta000/mcp-client/internal/config"
	"github.com/Avyakta000/mcp-client/internal/explorer"
	"github.com/Avyakta000/mcp-client/internal/form"
	"github.com/Avyakta000/mcp-client/internal/notify"
	"github.com/Avyakta000/mcp-client/internal/panel"
	"github.com/Avyakta000/mcp-client/pkg/logging"
)

// dashboardCmd runs the interactive dashboard loop.
var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Interactive dashboard for MCP servers",
	Long: `Run an interactive dashboard session. Type "help" at the prompt for
the available commands. Config file changes (e.g. a new endpoint) are
picked up while the session runs.`,
	Args: cobra.NoArgs,
	RunE: runDashboard,
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

// dashboardSession holds the state of one interactive run: the current
// backend connection, the notification center, and the explorer view
// preferences shared across renders.
type dashboardSession struct {
	mu      sync.Mutex
	cfg     config.Config
	backend *client.Backend
	center  *notify.Center

	search   string
	filter   explorer.Filter
	viewMode explorer.ViewMode
	expanded string
}

func runDashboard(cmd *cobra.Command, args []string) error {
	cfg, err := activeConfig()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	backend, err := connectBackend(ctx, cfg)
	if err != nil {
		return err
	}

	session := &dashboardSession{
		cfg:      cfg,
		backend:  backend,
		center:   notify.NewCenter(0),
		filter:   explorer.FilterAll,
		viewMode: explorer.ViewGrid,
	}
	defer session.close()

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "mcp » ",
		InterruptPrompt: "^C",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize prompt: %w", err)
	}
	defer rl.Close()

	// Drain notifications onto the terminal as they arrive.
	go func() {
		for n := range session.center.Events() {
			fmt.Fprintln(rl.Stdout(), notify.Format(n, cfg.ColorEnabled()))
		}
	}()

	// Reconnect when the config file changes the endpoint.
	watchPath := rootConfigPath
	if watchPath == "" {
		if defaultPath, err := config.DefaultPath(); err == nil {
			watchPath = defaultPath
		}
	}
	if watchPath != "" {
		go func() {
			err := config.Watch(ctx, watchPath, func(cfg config.Config) {
				session.reconfigure(ctx, cfg)
			})
			if err != nil && ctx.Err() == nil {
				logging.Warn("dashboard", "config watch stopped: %v", err)
			}
		}()
	}

	fmt.Fprintln(rl.Stdout(), `Type "help" for commands, "quit" to exit.`)
	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "quit" || fields[0] == "exit" {
			return nil
		}
		if err := session.dispatch(ctx, rl, fields); err != nil {
			fmt.Fprintln(rl.Stdout(), err.Error())
		}
	}
}

// reconfigure swaps the backend connection for a freshly loaded config.
// The connect attempt is bound to the session context so a hanging
// endpoint cannot outlive the dashboard.
func (s *dashboardSession) reconfigure(ctx context.Context, cfg config.Config) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cfg.Endpoint == s.cfg.Endpoint && cfg.Transport == s.cfg.Transport {
		s.cfg = cfg
		return
	}

	backend, err := client.New(client.Options{
		Endpoint:  cfg.Endpoint,
		Transport: cfg.Transport,
		Timeout:   cfg.Timeout(),
	})
	if err != nil {
		s.center.Failure(fmt.Sprintf("Config change rejected: %v", err))
		return
	}
	if err := backend.Connect(ctx); err != nil {
		s.center.Failure(fmt.Sprintf("Failed to connect to %s: %v", cfg.Endpoint, err))
		return
	}
	if s.backend != nil {
		s.backend.Close()
	}
	s.backend = backend
	s.cfg = cfg
	s.center.Info(fmt.Sprintf("Reconnected to %s", cfg.Endpoint))
}

func (s *dashboardSession) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.backend != nil {
		s.backend.Close()
	}
}

func (s *dashboardSession) currentBackend() *client.Backend {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.backend
}

func (s *dashboardSession) color() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg.ColorEnabled()
}

func (s *dashboardSession) dispatch(ctx context.Context, rl *readline.Instance, fields []string) error {
	out := rl.Stdout()
	command, rest := fields[0], fields[1:]

	switch command {
	case "help":
		fmt.Fprint(out, dashboardHelp)
		return nil

	case "list":
		servers, err := s.currentBackend().ListServers(ctx)
		if err != nil {
			return err
		}
		return cli.FormatServers(out, servers, cli.OutputFormatTable, s.color())

	case "get":
		if len(rest) != 1 {
			return fmt.Errorf("usage: get <server>")
		}
		server, err := s.currentBackend().GetServer(ctx, rest[0])
		if err != nil {
			return err
		}
		p := panel.New(*server, panel.Options{PerformAction: s.currentBackend().PerformAction})
		fmt.Fprint(out, p.Render(s.color()))
		return nil

	case "tools":
		if len(rest) != 1 {
			return fmt.Errorf("usage: tools <server>")
		}
		return s.renderTools(ctx, out, rest[0])

	case "search":
		s.search = strings.Join(rest, " ")
		return nil

	case "filter":
		if len(rest) != 1 {
			return fmt.Errorf("usage: filter all|available|unavailable")
		}
		s.filter = explorer.Filter(rest[0])
		return nil

	case "view":
		if len(rest) != 1 || (rest[0] != "grid" && rest[0] != "list") {
			return fmt.Errorf("usage: view grid|list")
		}
		s.viewMode = explorer.ViewMode(rest[0])
		return nil

	case "expand":
		if len(rest) != 1 {
			return fmt.Errorf("usage: expand <tool>")
		}
		if s.expanded == rest[0] {
			s.expanded = ""
		} else {
			s.expanded = rest[0]
		}
		return nil

	case "activate", "deactivate", "restart":
		if len(rest) != 1 {
			return fmt.Errorf("usage: %s <server>", command)
		}
		action, err := api.ParseServerAction(command)
		if err != nil {
			return err
		}
		server, err := s.currentBackend().GetServer(ctx, rest[0])
		if err != nil {
			return err
		}
		p := panel.New(*server, panel.Options{
			PerformAction: s.currentBackend().PerformAction,
			Notifier:      s.center,
		})
		return p.Invoke(ctx, action)

	case "add":
		if len(rest) != 1 {
			return fmt.Errorf("usage: add <name>")
		}
		return s.runForm(ctx, rest[0], false)

	case "edit":
		if len(rest) != 1 {
			return fmt.Errorf("usage: edit <server>")
		}
		return s.runForm(ctx, rest[0], true)

	case "delete":
		if len(rest) != 1 {
			return fmt.Errorf("usage: delete <server>")
		}
		if err := s.currentBackend().Delete(ctx, rest[0]); err != nil {
			return err
		}
		s.center.Success(fmt.Sprintf("Server %q deleted", rest[0]))
		return nil

	default:
		return fmt.Errorf("unknown command %q, type \"help\"", command)
	}
}

func (s *dashboardSession) renderTools(ctx context.Context, out io.Writer, serverName string) error {
	backend := s.currentBackend()
	server, err := backend.GetServer(ctx, serverName)
	if err != nil {
		return err
	}
	if len(server.Tools) == 0 && server.IsConnected() {
		if err := backend.LoadTools(ctx, server); err != nil {
			return err
		}
	}

	e := explorer.New(*server)
	e.SetSearch(s.search)
	e.SetFilter(s.filter)
	e.SetViewMode(s.viewMode)
	if s.expanded != "" {
		e.ToggleExpanded(s.expanded)
	}
	fmt.Fprint(out, e.Render(s.color()))
	return nil
}

func (s *dashboardSession) runForm(ctx context.Context, name string, edit bool) error {
	backend := s.currentBackend()

	var modal *form.Modal
	if edit {
		server, err := backend.GetServer(ctx, name)
		if err != nil {
			return err
		}
		modal = form.NewModal(backend.Update, s.center)
		modal.OpenEdit(*server)
	} else {
		modal = form.NewModal(backend.Create, s.center)
		modal.OpenAdd()
		modal.Update(func(st *form.State) { st.Name = name })
	}

	prompter, err := form.NewPrompter(modal)
	if err != nil {
		return err
	}
	defer prompter.Close()
	if err := prompter.Run(); err != nil {
		return err
	}
	return modal.Submit(ctx)
}

const dashboardHelp = `Commands:
  list                      list servers with status
  get <server>              show the management panel for one server
  tools <server>            browse a server's tools
  search <text>             set the tools search text (empty to clear)
  filter all|available|unavailable
                            set the tools availability filter
  view grid|list            set the tools view mode
  expand <tool>             toggle a tool's schema (same tool collapses)
  activate <server>         activate a server connection
  deactivate <server>       deactivate a server connection
  restart <server>          restart a server connection
  add <name>                create a server (interactive form)
  edit <server>             edit a server (interactive form)
  delete <server>           delete a server definition
  quit                      exit the dashboard
`
