package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Avyakta000/mcp-client/internal/api"
	"github.com/Avyakta000/mcp-client/internal/panel"
)

const maxDescriptionWidth = 50

// CellBuilder formats server record fields into table cells. The builder
// is stateless and reused across rows.
type CellBuilder struct{}

// NewCellBuilder creates a new cell builder instance.
func NewCellBuilder() *CellBuilder {
	return &CellBuilder{}
}

// StatusCell renders the status indicator cell using the shared status
// presentation, so list output and the management panel always agree.
func (b *CellBuilder) StatusCell(status string, color bool) string {
	return panel.StatusToPresentation(status).Render(color)
}

// EndpointCell renders whichever connection parameter is active for the
// record's transport: the URL for remote servers, command plus args for
// stdio servers.
func (b *CellBuilder) EndpointCell(record api.ServerRecord) string {
	if record.Transport == api.TransportStdio {
		if record.Command == "" {
			return "-"
		}
		if len(record.Args) == 0 {
			return record.Command
		}
		return record.Command + " " + strings.Join(record.Args, " ")
	}
	if record.URL == "" {
		return "-"
	}
	return record.URL
}

// ToolsCell summarizes a tool list: the first two names plus a count of
// the rest.
func (b *CellBuilder) ToolsCell(tools []api.ToolDescriptor) string {
	if len(tools) == 0 {
		return "-"
	}
	names := make([]string, 0, len(tools))
	for _, tool := range tools {
		names = append(names, tool.Name)
	}
	if len(names) <= 2 {
		return strings.Join(names, ", ")
	}
	return fmt.Sprintf("%s, %s (+%d more)", names[0], names[1], len(names)-2)
}

// DescriptionCell truncates long descriptions for table display.
func (b *CellBuilder) DescriptionCell(desc string) string {
	if desc == "" {
		return "-"
	}
	if len(desc) <= maxDescriptionWidth {
		return desc
	}
	return desc[:maxDescriptionWidth-3] + "..."
}

// BoolCell renders a boolean flag as Yes/No.
func (b *CellBuilder) BoolCell(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

// SortServersByName orders records by name, case-insensitively, for
// stable list output.
func SortServersByName(servers []api.ServerRecord) []api.ServerRecord {
	sorted := append([]api.ServerRecord(nil), servers...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return strings.ToLower(sorted[i].Name) < strings.ToLower(sorted[j].Name)
	})
	return sorted
}
