package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTransport(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Transport
		wantErr  bool
	}{
		{name: "sse", input: "sse", expected: TransportSSE},
		{name: "sse uppercase", input: "SSE", expected: TransportSSE},
		{name: "streamable underscore", input: "streamable_http", expected: TransportStreamableHTTP},
		{name: "streamable dash alias", input: "streamable-http", expected: TransportStreamableHTTP},
		{name: "stdio", input: "stdio", expected: TransportStdio},
		{name: "stdio with spaces", input: "  stdio  ", expected: TransportStdio},
		{name: "empty", input: "", wantErr: true},
		{name: "unknown", input: "websocket", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTransport(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestTransportIsRemote(t *testing.T) {
	assert.True(t, TransportSSE.IsRemote())
	assert.True(t, TransportStreamableHTTP.IsRemote())
	assert.False(t, TransportStdio.IsRemote())
}

func TestNormalizeStatus(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected ConnectionStatus
	}{
		{name: "connected upper", input: "CONNECTED", expected: StatusConnected},
		{name: "connected lower", input: "connected", expected: StatusConnected},
		{name: "connected mixed", input: "Connected", expected: StatusConnected},
		{name: "disconnected", input: "disconnected", expected: StatusDisconnected},
		{name: "failed", input: "Failed", expected: StatusFailed},
		{name: "empty is unknown", input: "", expected: StatusUnknown},
		{name: "garbage is unknown", input: "bananas", expected: StatusUnknown},
		{name: "whitespace trimmed", input: " connected ", expected: StatusConnected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeStatus(tt.input))
		})
	}
}

func TestServerRecordIsConnected(t *testing.T) {
	assert.True(t, (&ServerRecord{ConnectionStatus: "connected"}).IsConnected())
	assert.True(t, (&ServerRecord{ConnectionStatus: "CONNECTED"}).IsConnected())
	assert.False(t, (&ServerRecord{ConnectionStatus: "DISCONNECTED"}).IsConnected())
	assert.False(t, (&ServerRecord{}).IsConnected())
}

func TestToolDescriptorParsedSchema(t *testing.T) {
	tests := []struct {
		name   string
		schema any
		want   map[string]any
		ok     bool
	}{
		{
			name:   "structured map used as-is",
			schema: map[string]any{"type": "object"},
			want:   map[string]any{"type": "object"},
			ok:     true,
		},
		{
			name:   "valid JSON string",
			schema: `{"type":"object"}`,
			want:   map[string]any{"type": "object"},
			ok:     true,
		},
		{
			name:   "malformed JSON string degrades silently",
			schema: `{bad json`,
			ok:     false,
		},
		{
			name:   "nil schema",
			schema: nil,
			ok:     false,
		},
		{
			name:   "empty object",
			schema: map[string]any{},
			ok:     false,
		},
		{
			name:   "JSON array string is not a schema",
			schema: `[1,2,3]`,
			ok:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tool := ToolDescriptor{Name: "t", Schema: tt.schema}
			got, ok := tool.ParsedSchema()
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			} else {
				assert.Nil(t, got)
			}
		})
	}
}

func TestServerRecordFindTool(t *testing.T) {
	server := ServerRecord{
		Name: "github",
		Tools: []ToolDescriptor{
			{Name: "search_users"},
			{Name: "create_ticket"},
		},
	}

	tool, err := server.FindTool("create_ticket")
	require.NoError(t, err)
	assert.Equal(t, "create_ticket", tool.Name)

	_, err = server.FindTool("nonexistent")
	assert.True(t, IsNotFound(err))
	assert.Equal(t, "tool nonexistent not found", err.Error())
}

func TestParseServerAction(t *testing.T) {
	for _, valid := range []string{"restart", "Activate", "DEACTIVATE"} {
		_, err := ParseServerAction(valid)
		assert.NoError(t, err, valid)
	}
	_, err := ParseServerAction("reboot")
	assert.Error(t, err)
}
