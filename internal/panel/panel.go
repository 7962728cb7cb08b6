// Package panel implements the server management panel: a status indicator
// plus the activate/deactivate/restart action controls for one server
// record. All actual lifecycle work happens in an injected api.ActionFunc;
// the panel only owns the ephemeral in-flight marker and the disable
// policy around it.
package panel

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/briandowns/spinner"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/Avyakta000/mcp-client/internal/api"
	"github.com/Avyakta000/mcp-client/internal/notify"
	"github.com/Avyakta000/mcp-client/pkg/logging"
)

const subsystem = "panel"

// MenuEntry is one secondary-menu item with its current enabled state.
type MenuEntry struct {
	Label   string
	Enabled bool
}

// Options configures a Panel.
type Options struct {
	// PerformAction executes restart/activate/deactivate in the backend.
	PerformAction api.ActionFunc

	// OnEdit, when set, adds an Edit entry to the secondary menu.
	OnEdit api.EditFunc

	// OnDelete, when set, adds a Delete entry to the secondary menu.
	OnDelete api.DeleteFunc

	// Notifier receives the success/failure notifications emitted after
	// each action. A nil notifier discards them.
	Notifier notify.Notifier

	// Spinner shows a terminal spinner while an action is awaited.
	// Disabled in tests and in non-interactive output.
	Spinner bool
}

// Panel renders and drives the management controls for one server record.
type Panel struct {
	server api.ServerRecord
	opts   Options

	mu       sync.Mutex
	inFlight api.ServerAction
}

// New creates a panel for the given server record.
func New(server api.ServerRecord, opts Options) *Panel {
	return &Panel{server: server, opts: opts}
}

// Server returns the record the panel was built for.
func (p *Panel) Server() api.ServerRecord {
	return p.server
}

// InFlight returns the action currently awaited, or "" when idle.
func (p *Panel) InFlight() api.ServerAction {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.inFlight
}

// PrimaryAction returns the toggle shown as the primary control:
// Deactivate while connected, Activate otherwise.
func (p *Panel) PrimaryAction() api.ServerAction {
	if p.server.IsConnected() {
		return api.ActionDeactivate
	}
	return api.ActionActivate
}

// ActionEnabled applies the disable policy: everything is disabled while
// an action is in flight; activate is disabled when already connected;
// deactivate is disabled when not connected; restart is never disabled by
// status.
func (p *Panel) ActionEnabled(action api.ServerAction) bool {
	if p.InFlight() != "" {
		return false
	}
	switch action {
	case api.ActionActivate:
		return !p.server.IsConnected()
	case api.ActionDeactivate:
		return p.server.IsConnected()
	case api.ActionRestart:
		return true
	default:
		return false
	}
}

// SecondaryMenu lists the secondary entries: the non-primary of the
// activate/deactivate pair, Restart, and Edit/Delete when their callbacks
// were supplied.
func (p *Panel) SecondaryMenu() []MenuEntry {
	secondary := api.ActionActivate
	if p.PrimaryAction() == api.ActionActivate {
		secondary = api.ActionDeactivate
	}
	entries := []MenuEntry{
		{Label: titleCase(string(secondary)), Enabled: p.ActionEnabled(secondary)},
		{Label: "Restart", Enabled: p.ActionEnabled(api.ActionRestart)},
	}
	idle := p.InFlight() == ""
	if p.opts.OnEdit != nil {
		entries = append(entries, MenuEntry{Label: "Edit", Enabled: idle})
	}
	if p.opts.OnDelete != nil {
		entries = append(entries, MenuEntry{Label: "Delete", Enabled: idle})
	}
	return entries
}

// Invoke runs one lifecycle action through the collaborator.
//
// Guard rejections (action disabled, another action in flight, missing
// collaborator) are returned to the caller. Collaborator failures are not:
// they are caught here, logged, and surfaced as a failure notification,
// matching the panel's never-fatal error policy. The in-flight marker is
// cleared unconditionally.
func (p *Panel) Invoke(ctx context.Context, action api.ServerAction) error {
	if p.opts.PerformAction == nil {
		return api.ErrNoActionHandler
	}

	p.mu.Lock()
	if p.inFlight != "" {
		p.mu.Unlock()
		return api.ErrActionInFlight
	}
	if !p.actionAllowedByStatus(action) {
		p.mu.Unlock()
		return api.ErrActionNotAllowed
	}
	p.inFlight = action
	p.mu.Unlock()

	defer func() {
		p.mu.Lock()
		p.inFlight = ""
		p.mu.Unlock()
	}()

	if p.opts.Spinner {
		s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
		s.Suffix = fmt.Sprintf(" %s %s...", action, p.server.Name)
		s.Start()
		defer s.Stop()
	}

	result, err := p.opts.PerformAction(ctx, p.server.Name, action)
	if err != nil {
		logging.Error(subsystem, err, "action %s on server %s failed", action, p.server.Name)
		p.notifyFailure(action, err)
		return nil
	}

	message := ""
	if result != nil {
		message = result.Message
	}
	if message == "" {
		message = fmt.Sprintf("Server %q: %s succeeded", p.server.Name, action)
	}
	logging.Info(subsystem, "action %s on server %s succeeded", action, p.server.Name)
	if p.opts.Notifier != nil {
		p.opts.Notifier.Success(message)
	}
	return nil
}

// Edit forwards the edit request to the supplied callback.
func (p *Panel) Edit() {
	if p.opts.OnEdit != nil {
		p.opts.OnEdit(p.server)
	}
}

// Delete forwards the delete request to the supplied callback.
func (p *Panel) Delete() {
	if p.opts.OnDelete != nil {
		p.opts.OnDelete(p.server.Name)
	}
}

// Render returns the panel as printable text: the status indicator, the
// server identity, the primary control, and the secondary menu with
// disabled entries struck out in brackets.
func (p *Panel) Render(color bool) string {
	pres := StatusToPresentation(p.server.ConnectionStatus)

	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s", pres.Render(color), p.server.Name)
	if p.server.Description != "" {
		fmt.Fprintf(&b, " - %s", p.server.Description)
	}
	b.WriteString("\n")

	primary := p.PrimaryAction()
	primaryLabel := titleCase(string(primary))
	if p.ActionEnabled(primary) {
		if color {
			primaryLabel = text.Bold.Sprint(primaryLabel)
		}
		fmt.Fprintf(&b, "  [%s]", primaryLabel)
	} else {
		fmt.Fprintf(&b, "  [%s (disabled)]", primaryLabel)
	}

	for _, entry := range p.SecondaryMenu() {
		if entry.Enabled {
			fmt.Fprintf(&b, "  %s", entry.Label)
		} else {
			fmt.Fprintf(&b, "  %s (disabled)", entry.Label)
		}
	}
	b.WriteString("\n")

	if inFlight := p.InFlight(); inFlight != "" {
		fmt.Fprintf(&b, "  %s in progress...\n", inFlight)
	}
	return b.String()
}

func (p *Panel) actionAllowedByStatus(action api.ServerAction) bool {
	switch action {
	case api.ActionActivate:
		return !p.server.IsConnected()
	case api.ActionDeactivate:
		return p.server.IsConnected()
	case api.ActionRestart:
		return true
	default:
		return false
	}
}

func (p *Panel) notifyFailure(action api.ServerAction, err error) {
	if p.opts.Notifier == nil {
		return
	}
	message := err.Error()
	if message == "" {
		message = fmt.Sprintf("Server %q: %s failed", p.server.Name, action)
	} else {
		message = fmt.Sprintf("Server %q: %s failed: %s", p.server.Name, action, message)
	}
	p.opts.Notifier.Failure(message)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
