// Package form implements the create/edit dialog for server connection
// records. The dialog owns one explicit form-state value; field edits go
// through an update function, validation happens before submission, and
// persistence is delegated to an injected api.PersistFunc.
package form

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/Avyakta000/mcp-client/internal/api"
	"github.com/Avyakta000/mcp-client/internal/notify"
	"github.com/Avyakta000/mcp-client/pkg/logging"
)

const subsystem = "form"

// Mode distinguishes creating a new record from editing an existing one.
type Mode string

const (
	ModeAdd  Mode = "add"
	ModeEdit Mode = "edit"
)

// State holds every editable field of the dialog. Args is edited as a
// JSON-array-literal string, matching how the backend transports it.
type State struct {
	Name           string
	Description    string
	Transport      api.Transport
	URL            string
	Command        string
	ArgsJSON       string
	RequiresOAuth2 bool
	IsPublic       bool
	Headers        []api.HeaderPair
}

// defaultState returns the empty add-mode state. Transport defaults to sse.
func defaultState() State {
	return State{Transport: api.TransportSSE}
}

// stateFromRecord pre-populates the state from an existing record for edit
// mode. The args slice is serialized back to a JSON array string.
//
// Custom headers are intentionally NOT carried over from the record: the
// headers list always starts empty and must be re-entered on each edit.
// This mirrors the original dashboard behavior; see DESIGN.md.
func stateFromRecord(record api.ServerRecord) State {
	argsJSON := ""
	if len(record.Args) > 0 {
		if raw, err := json.Marshal(record.Args); err == nil {
			argsJSON = string(raw)
		}
	}
	transport := record.Transport
	if transport == "" {
		transport = api.TransportSSE
	}
	return State{
		Name:           record.Name,
		Description:    record.Description,
		Transport:      transport,
		URL:            record.URL,
		Command:        record.Command,
		ArgsJSON:       argsJSON,
		RequiresOAuth2: record.RequiresOAuth2,
		IsPublic:       record.IsPublic,
	}
}

// Validate applies the client-side validation rules. Only the name is
// enforced; transport-conditional requirements (url for remote servers,
// command for stdio) are deliberately left to guidance text and accepted
// by validation.
func Validate(state State) error {
	if strings.TrimSpace(state.Name) == "" {
		return &api.ValidationError{Field: "name", Reason: "name is required"}
	}
	return nil
}

// Record converts the form state into the persistence payload. A malformed
// args JSON string degrades to no args rather than blocking the submit;
// the backend owns any stricter checking.
func (s State) Record() api.ServerRecord {
	record := api.ServerRecord{
		Name:           strings.TrimSpace(s.Name),
		Description:    s.Description,
		Transport:      s.Transport,
		RequiresOAuth2: s.RequiresOAuth2,
		IsPublic:       s.IsPublic,
	}
	if s.Transport == api.TransportStdio {
		record.Command = s.Command
		record.Args = parseArgsJSON(s.ArgsJSON)
	} else {
		record.URL = s.URL
		if len(s.Headers) > 0 {
			record.Headers = append([]api.HeaderPair(nil), s.Headers...)
		}
	}
	return record
}

func parseArgsJSON(argsJSON string) []string {
	trimmed := strings.TrimSpace(argsJSON)
	if trimmed == "" {
		return nil
	}
	var args []string
	if err := json.Unmarshal([]byte(trimmed), &args); err != nil {
		logging.Warn(subsystem, "args is not a JSON string array, dropping: %q", argsJSON)
		return nil
	}
	return args
}

// Guidance returns the presentational hint lines for the current
// transport. These hint at requirements the validation layer does not
// enforce.
func Guidance(transport api.Transport) []string {
	if transport == api.TransportStdio {
		return []string{
			"command: executable to spawn (required for stdio servers)",
			`args: JSON array of strings, e.g. ["-y", "@scope/server"]`,
		}
	}
	return []string{
		"url: endpoint address (required for sse and streamable_http servers)",
		"headers: optional custom headers sent with every request",
	}
}

// Modal is the controlled create/edit dialog. All mutation goes through
// the exported methods; the zero value is closed.
type Modal struct {
	persist  api.PersistFunc
	notifier notify.Notifier

	mu          sync.Mutex
	open        bool
	mode        Mode
	state       State
	showHeaders bool
	submitting  bool
}

// NewModal creates a closed dialog with the given collaborators. A nil
// notifier discards notifications.
func NewModal(persist api.PersistFunc, notifier notify.Notifier) *Modal {
	return &Modal{persist: persist, notifier: notifier}
}

// OpenAdd opens the dialog in add mode with empty defaults.
func (m *Modal) OpenAdd() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.open = true
	m.mode = ModeAdd
	m.state = defaultState()
	m.showHeaders = false
	m.submitting = false
}

// OpenEdit opens the dialog in edit mode, pre-populated from the record.
// Reopening always collapses the headers disclosure.
func (m *Modal) OpenEdit(record api.ServerRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.open = true
	m.mode = ModeEdit
	m.state = stateFromRecord(record)
	m.showHeaders = false
	m.submitting = false
}

// Close discards the dialog without submitting.
func (m *Modal) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.open = false
}

// IsOpen reports whether the dialog is currently shown.
func (m *Modal) IsOpen() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.open
}

// Mode returns the dialog mode. Only meaningful while open.
func (m *Modal) Mode() Mode {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mode
}

// State returns a copy of the current form state.
func (m *Modal) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	state := m.state
	state.Headers = append([]api.HeaderPair(nil), m.state.Headers...)
	return state
}

// Update applies a field mutation to the form state.
func (m *Modal) Update(fn func(*State)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	fn(&m.state)
}

// Submitting reports whether a persist call is pending. The submit control
// is disabled exactly while this is true.
func (m *Modal) Submitting() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.submitting
}

// ToggleHeaders flips the custom-headers disclosure.
func (m *Modal) ToggleHeaders() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.showHeaders = !m.showHeaders
}

// HeadersShown reports the disclosure state.
func (m *Modal) HeadersShown() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.showHeaders
}

// AddHeader appends a header pair. Order is preserved and duplicate keys
// are permitted without validation.
func (m *Modal) AddHeader(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.Headers = append(m.state.Headers, api.HeaderPair{Key: key, Value: value})
}

// RemoveHeader deletes the header pair at the given index. Out-of-range
// indexes are ignored.
func (m *Modal) RemoveHeader(index int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if index < 0 || index >= len(m.state.Headers) {
		return
	}
	m.state.Headers = append(m.state.Headers[:index], m.state.Headers[index+1:]...)
}

// Submit validates the form and runs the persist collaborator.
//
// A validation failure is returned to the caller for inline display and
// blocks the submission. A persist failure is caught here: the dialog
// stays open with all entered values preserved, the error is logged, and
// a generic failure notification is emitted. Only on success does the
// dialog close.
func (m *Modal) Submit(ctx context.Context) error {
	m.mu.Lock()
	if !m.open {
		m.mu.Unlock()
		return api.ErrFormClosed
	}
	if m.submitting {
		m.mu.Unlock()
		return api.ErrSubmitInFlight
	}
	if m.persist == nil {
		m.mu.Unlock()
		return api.ErrNoPersistHandler
	}
	state := m.state
	mode := m.mode
	if err := Validate(state); err != nil {
		m.mu.Unlock()
		return err
	}
	m.submitting = true
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.submitting = false
		m.mu.Unlock()
	}()

	record := state.Record()
	if err := m.persist(ctx, record); err != nil {
		logging.Error(subsystem, err, "failed to save server %s", record.Name)
		if m.notifier != nil {
			m.notifier.Failure(fmt.Sprintf("Failed to save server %q", record.Name))
		}
		return nil
	}

	m.mu.Lock()
	m.open = false
	m.mu.Unlock()

	verb := "added"
	if mode == ModeEdit {
		verb = "updated"
	}
	logging.Info(subsystem, "server %s %s", record.Name, verb)
	if m.notifier != nil {
		m.notifier.Success(fmt.Sprintf("Server %q %s", record.Name, verb))
	}
	return nil
}

// Render returns the dialog as printable text: title by mode, the common
// fields, the transport-conditional section, and the headers disclosure.
func (m *Modal) Render() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.open {
		return ""
	}

	var b strings.Builder
	if m.mode == ModeEdit {
		fmt.Fprintf(&b, "Edit MCP Server: %s\n", m.state.Name)
	} else {
		b.WriteString("Add MCP Server\n")
	}
	fmt.Fprintf(&b, "  name:        %s\n", m.state.Name)
	fmt.Fprintf(&b, "  description: %s\n", m.state.Description)
	fmt.Fprintf(&b, "  transport:   %s\n", m.state.Transport)

	if m.state.Transport == api.TransportStdio {
		fmt.Fprintf(&b, "  command:     %s\n", m.state.Command)
		fmt.Fprintf(&b, "  args:        %s\n", m.state.ArgsJSON)
	} else {
		fmt.Fprintf(&b, "  url:         %s\n", m.state.URL)
		if m.showHeaders {
			fmt.Fprintf(&b, "  headers (%d):\n", len(m.state.Headers))
			for i, h := range m.state.Headers {
				fmt.Fprintf(&b, "    %d. %s: %s\n", i+1, h.Key, h.Value)
			}
		} else {
			fmt.Fprintf(&b, "  headers:     (%d hidden)\n", len(m.state.Headers))
		}
	}

	fmt.Fprintf(&b, "  requires oauth2: %t\n", m.state.RequiresOAuth2)
	fmt.Fprintf(&b, "  public:          %t\n", m.state.IsPublic)
	for _, hint := range Guidance(m.state.Transport) {
		fmt.Fprintf(&b, "  hint: %s\n", hint)
	}
	if m.submitting {
		b.WriteString("  saving...\n")
	}
	return b.String()
}
