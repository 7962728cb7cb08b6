// Package explorer implements the tools explorer: a searchable, filterable
// grid or list of the tools a connected server exposes, with an expandable
// schema viewer per tool. Filtering is pure and recomputed on every
// render; the only state the explorer owns is the current search text,
// filter, view mode, and which tool is expanded.
package explorer

import (
	"strings"
	"sync"

	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/Avyakta000/mcp-client/internal/api"
)

// ViewMode selects the layout; both modes render the identical filtered
// data.
type ViewMode string

const (
	ViewGrid ViewMode = "grid"
	ViewList ViewMode = "list"
)

// Filter selects the availability filter. The unavailable option exists in
// the control surface but no tool is ever flagged unavailable, so it
// currently yields the same result set as available. The affordance is
// kept so the control set matches the backend's, and it starts behaving
// once the backend reports availability.
type Filter string

const (
	FilterAll         Filter = "all"
	FilterAvailable   Filter = "available"
	FilterUnavailable Filter = "unavailable"
)

// Category is the display category a tool is assigned to by name.
type Category struct {
	Name  string
	Color text.Color
}

// The fixed category palette.
var (
	CategorySearch  = Category{Name: "Search", Color: text.FgBlue}
	CategoryCreate  = Category{Name: "Create", Color: text.FgGreen}
	CategoryUpdate  = Category{Name: "Update", Color: text.FgYellow}
	CategoryDelete  = Category{Name: "Delete", Color: text.FgRed}
	CategoryRead    = Category{Name: "Read", Color: text.FgCyan}
	CategoryGeneral = Category{Name: "General", Color: text.FgHiBlack}
)

// categoryRules is evaluated in order; the first name-substring match
// wins, so a "search_and_update" tool lands in Search.
var categoryRules = []struct {
	substrings []string
	category   Category
}{
	{[]string{"search", "find"}, CategorySearch},
	{[]string{"create", "add"}, CategoryCreate},
	{[]string{"update", "edit"}, CategoryUpdate},
	{[]string{"delete", "remove"}, CategoryDelete},
	{[]string{"get", "fetch"}, CategoryRead},
}

// Categorize assigns a tool to exactly one display category by
// first-match substring test against its name.
func Categorize(toolName string) Category {
	lower := strings.ToLower(toolName)
	for _, rule := range categoryRules {
		for _, sub := range rule.substrings {
			if strings.Contains(lower, sub) {
				return rule.category
			}
		}
	}
	return CategoryGeneral
}

// Explorer renders the tools of one server record.
type Explorer struct {
	server api.ServerRecord

	mu       sync.Mutex
	search   string
	filter   Filter
	viewMode ViewMode
	expanded string
}

// New creates an explorer with the default grid view and no filtering.
func New(server api.ServerRecord) *Explorer {
	return &Explorer{
		server:   server,
		filter:   FilterAll,
		viewMode: ViewGrid,
	}
}

// SetSearch updates the search text.
func (e *Explorer) SetSearch(search string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.search = search
}

// Search returns the current search text.
func (e *Explorer) Search() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.search
}

// SetFilter selects the availability filter. Unknown values fall back to
// all.
func (e *Explorer) SetFilter(filter Filter) {
	e.mu.Lock()
	defer e.mu.Unlock()
	switch filter {
	case FilterAll, FilterAvailable, FilterUnavailable:
		e.filter = filter
	default:
		e.filter = FilterAll
	}
}

// Filter returns the current availability filter.
func (e *Explorer) Filter() Filter {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.filter
}

// SetViewMode selects grid or list layout. Unknown values fall back to
// grid.
func (e *Explorer) SetViewMode(mode ViewMode) {
	e.mu.Lock()
	defer e.mu.Unlock()
	switch mode {
	case ViewGrid, ViewList:
		e.viewMode = mode
	default:
		e.viewMode = ViewGrid
	}
}

// ViewMode returns the current layout.
func (e *Explorer) ViewMode() ViewMode {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.viewMode
}

// ToggleExpanded expands the named tool, or collapses it if it is already
// the expanded one. At most one tool is expanded; the state is shared
// across both view modes.
func (e *Explorer) ToggleExpanded(toolName string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.expanded == toolName {
		e.expanded = ""
		return
	}
	e.expanded = toolName
}

// Expanded returns the name of the expanded tool, or "".
func (e *Explorer) Expanded() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.expanded
}

// Filtered recomputes the visible tool set. A tool is included iff its
// name or description case-insensitively contains the search text and the
// availability filter admits it.
func (e *Explorer) Filtered() []api.ToolDescriptor {
	e.mu.Lock()
	search := strings.ToLower(e.search)
	filter := e.filter
	e.mu.Unlock()

	var filtered []api.ToolDescriptor
	for _, tool := range e.server.Tools {
		if !matchesSearch(tool, search) {
			continue
		}
		if !matchesFilter(tool, filter) {
			continue
		}
		filtered = append(filtered, tool)
	}
	return filtered
}

func matchesSearch(tool api.ToolDescriptor, lowerSearch string) bool {
	if lowerSearch == "" {
		return true
	}
	return strings.Contains(strings.ToLower(tool.Name), lowerSearch) ||
		strings.Contains(strings.ToLower(tool.Description), lowerSearch)
}

func matchesFilter(tool api.ToolDescriptor, filter Filter) bool {
	switch filter {
	case FilterAll, FilterAvailable:
		return true
	case FilterUnavailable:
		// No backend availability signal exists yet, so this branch
		// admits the same set as available.
		return true
	default:
		return true
	}
}

// EmptyStateMessage selects the message shown when the server exposes no
// tools at all, purely by connection status.
func EmptyStateMessage(server api.ServerRecord) string {
	switch server.Status() {
	case api.StatusConnected:
		return "Server is connected but exposes no tools."
	case api.StatusFailed:
		return "Connection failed. Tools cannot be loaded."
	default:
		return "Connect the server to load its tools."
	}
}

// NoResultsMessage is shown when tools exist but the filter/search
// excluded all of them.
const NoResultsMessage = "No tools found matching the current search and filter."
