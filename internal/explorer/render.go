package explorer

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/Avyakta000/mcp-client/internal/api"
)

// Render returns the explorer as printable text in the current view mode.
// Empty and no-results states take precedence over the layouts.
func (e *Explorer) Render(color bool) string {
	if len(e.server.Tools) == 0 {
		return EmptyStateMessage(e.server) + "\n"
	}

	filtered := e.Filtered()
	if len(filtered) == 0 {
		return NoResultsMessage + "\n"
	}

	if e.ViewMode() == ViewList {
		return e.renderList(filtered, color)
	}
	return e.renderGrid(filtered, color)
}

// renderGrid renders one card per tool.
func (e *Explorer) renderGrid(tools []api.ToolDescriptor, color bool) string {
	expanded := e.Expanded()
	var b strings.Builder
	for _, tool := range tools {
		t := table.NewWriter()
		t.SetStyle(table.StyleRounded)
		t.AppendRow(table.Row{fmt.Sprintf("%s  %s", tool.Name, badge(Categorize(tool.Name), color))})
		if tool.Description != "" {
			t.AppendRow(table.Row{tool.Description})
		}
		if tool.Name == expanded {
			if schema, ok := tool.ParsedSchema(); ok {
				t.AppendSeparator()
				t.AppendRow(table.Row{prettyJSON(schema)})
			}
		}
		b.WriteString(t.Render())
		b.WriteString("\n")
	}
	return b.String()
}

// renderList renders all tools as rows of one table; the expanded tool's
// schema follows the table.
func (e *Explorer) renderList(tools []api.ToolDescriptor, color bool) string {
	expanded := e.Expanded()
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"NAME", "CATEGORY", "DESCRIPTION"})
	for _, tool := range tools {
		t.AppendRow(table.Row{tool.Name, badge(Categorize(tool.Name), color), tool.Description})
	}

	var b strings.Builder
	b.WriteString(t.Render())
	b.WriteString("\n")
	if expanded != "" {
		for _, tool := range tools {
			if tool.Name != expanded {
				continue
			}
			if schema, ok := tool.ParsedSchema(); ok {
				fmt.Fprintf(&b, "Schema for %s:\n%s\n", tool.Name, prettyJSON(schema))
			}
		}
	}
	return b.String()
}

func badge(category Category, color bool) string {
	if color {
		return category.Color.Sprintf("[%s]", category.Name)
	}
	return fmt.Sprintf("[%s]", category.Name)
}

// prettyJSON formats a value as indented JSON, falling back to the fmt
// representation on marshal errors.
func prettyJSON(v interface{}) string {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(raw)
}
