// Package cli provides the output plumbing shared by the dashboard
// commands: output format selection, kubectl-style plain tables, and cell
// formatting for server records.
package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/Avyakta000/mcp-client/internal/api"
	"github.com/Avyakta000/mcp-client/internal/explorer"
)

// OutputFormat represents the supported output formats for CLI commands.
type OutputFormat string

const (
	// OutputFormatTable formats output as a kubectl-style plain table.
	OutputFormatTable OutputFormat = "table"
	// OutputFormatWide formats output as a table with additional columns.
	OutputFormatWide OutputFormat = "wide"
	// OutputFormatJSON formats output as indented JSON.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatYAML formats output as YAML.
	OutputFormatYAML OutputFormat = "yaml"
)

// ValidateOutputFormat validates that the given format string is a
// supported output format.
func ValidateOutputFormat(format string) error {
	switch OutputFormat(format) {
	case OutputFormatTable, OutputFormatWide, OutputFormatJSON, OutputFormatYAML:
		return nil
	default:
		return fmt.Errorf("unsupported output format: %q (valid: table, wide, json, yaml)", format)
	}
}

// FormatServers writes the server list in the selected format. Table
// output is sorted by name; structured output preserves backend order.
func FormatServers(out io.Writer, servers []api.ServerRecord, format OutputFormat, color bool) error {
	switch format {
	case OutputFormatJSON:
		return writeJSON(out, servers)
	case OutputFormatYAML:
		return writeYAML(out, servers)
	case OutputFormatWide, OutputFormatTable:
		builder := NewCellBuilder()
		sorted := SortServersByName(servers)

		var t *PlainTable
		if format == OutputFormatWide {
			t = NewPlainTable("name", "transport", "endpoint", "status", "public", "oauth2", "tools", "description")
		} else {
			t = NewPlainTable("name", "transport", "endpoint", "status", "tools")
		}
		for _, s := range sorted {
			cells := []string{
				s.Name,
				string(s.Transport),
				builder.EndpointCell(s),
				builder.StatusCell(s.ConnectionStatus, color),
				builder.ToolsCell(s.Tools),
			}
			if format == OutputFormatWide {
				cells = []string{
					s.Name,
					string(s.Transport),
					builder.EndpointCell(s),
					builder.StatusCell(s.ConnectionStatus, color),
					builder.BoolCell(s.IsPublic),
					builder.BoolCell(s.RequiresOAuth2),
					builder.ToolsCell(s.Tools),
					builder.DescriptionCell(s.Description),
				}
			}
			t.AddRow(cells...)
		}
		t.Render(out)
		return nil
	default:
		return fmt.Errorf("unsupported output format: %q", format)
	}
}

// FormatTools writes a tool list in the selected format. Table and wide
// render through the explorer's list layout so CLI output matches the
// dashboard.
func FormatTools(out io.Writer, server api.ServerRecord, format OutputFormat, color bool) error {
	switch format {
	case OutputFormatJSON:
		return writeJSON(out, server.Tools)
	case OutputFormatYAML:
		return writeYAML(out, server.Tools)
	case OutputFormatTable, OutputFormatWide:
		e := explorer.New(server)
		e.SetViewMode(explorer.ViewList)
		fmt.Fprint(out, e.Render(color))
		return nil
	default:
		return fmt.Errorf("unsupported output format: %q", format)
	}
}

func writeJSON(out io.Writer, v interface{}) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	fmt.Fprintln(out, string(raw))
	return nil
}

func writeYAML(out io.Writer, v interface{}) error {
	raw, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	fmt.Fprint(out, string(raw))
	return nil
}
