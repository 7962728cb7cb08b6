package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlainTableRender(t *testing.T) {
	table := NewPlainTable("name", "status")
	table.AddRow("github", "connected")
	table.AddRow("jira", "failed")

	var buf bytes.Buffer
	table.Render(&buf)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "NAME     STATUS", lines[0])
	assert.Equal(t, "github   connected", lines[1])
	assert.Equal(t, "jira     failed", lines[2])
}

func TestPlainTableColumnWidthFollowsLongestCell(t *testing.T) {
	table := NewPlainTable("name", "status")
	table.AddRow("a-rather-long-server-name", "connected")
	table.AddRow("b", "failed")

	var buf bytes.Buffer
	table.Render(&buf)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	// All rows align on the widest cell plus padding.
	statusCol := strings.Index(lines[1], "connected")
	assert.Equal(t, statusCol, strings.Index(lines[2], "failed"))
	assert.Equal(t, statusCol, strings.Index(lines[0], "STATUS"))
}

func TestPlainTableNoHeaders(t *testing.T) {
	table := NewPlainTable("name")
	table.SetNoHeaders(true)
	table.AddRow("github")

	var buf bytes.Buffer
	table.Render(&buf)
	assert.Equal(t, "github\n", buf.String())
}

func TestPlainTableMissingAndExtraCells(t *testing.T) {
	table := NewPlainTable("a", "b")
	table.AddRow("only-a")
	table.AddRow("x", "y", "dropped")

	var buf bytes.Buffer
	table.Render(&buf)

	out := buf.String()
	assert.NotContains(t, out, "dropped")
	assert.Contains(t, out, "only-a")
}

func TestPlainTableNoTrailingSpaces(t *testing.T) {
	table := NewPlainTable("name", "status")
	table.AddRow("github", "ok")

	var buf bytes.Buffer
	table.Render(&buf)
	for _, line := range strings.Split(buf.String(), "\n") {
		assert.Equal(t, strings.TrimRight(line, " "), line)
	}
}
