package api

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Transport defines how an MCP server connection is established.
type Transport string

const (
	// TransportSSE connects via Server-Sent Events.
	TransportSSE Transport = "sse"
	// TransportStreamableHTTP connects via streamable HTTP.
	TransportStreamableHTTP Transport = "streamable_http"
	// TransportStdio spawns a local process and speaks over stdin/stdout.
	TransportStdio Transport = "stdio"
)

// ParseTransport normalizes a transport string. Comparison is
// case-insensitive and the "streamable-http" spelling used by some backends
// is accepted as an alias for streamable_http.
func ParseTransport(s string) (Transport, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sse":
		return TransportSSE, nil
	case "streamable_http", "streamable-http":
		return TransportStreamableHTTP, nil
	case "stdio":
		return TransportStdio, nil
	default:
		return "", fmt.Errorf("unknown transport %q (valid: sse, streamable_http, stdio)", s)
	}
}

// IsRemote reports whether the transport reaches a server over the network.
// Remote servers are configured with a URL and optional headers; stdio
// servers are configured with a command and args instead.
func (t Transport) IsRemote() bool {
	return t != TransportStdio
}

// ConnectionStatus is the externally reported liveness of a server
// connection. Values are compared case-insensitively; anything that is not
// one of the three known states is treated as unknown.
type ConnectionStatus string

const (
	StatusConnected    ConnectionStatus = "CONNECTED"
	StatusDisconnected ConnectionStatus = "DISCONNECTED"
	StatusFailed       ConnectionStatus = "FAILED"
	StatusUnknown      ConnectionStatus = "UNKNOWN"
)

// NormalizeStatus maps an arbitrary status string onto one of the four
// canonical ConnectionStatus values.
func NormalizeStatus(s string) ConnectionStatus {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "CONNECTED":
		return StatusConnected
	case "DISCONNECTED":
		return StatusDisconnected
	case "FAILED":
		return StatusFailed
	default:
		return StatusUnknown
	}
}

// HeaderPair is a single custom HTTP header sent to a remote server.
// Pairs are order-preserving and duplicate keys are permitted.
type HeaderPair struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

// ServerRecord represents a single MCP server definition together with its
// reported runtime state. The record is owned by the backend; the dashboard
// reads it and only ever writes through a PersistFunc.
//
// Exactly one of URL or Command+Args is semantically active, selected by
// Transport: remote transports use URL (plus optional Headers), stdio uses
// Command and Args.
type ServerRecord struct {
	Name             string           `json:"name" yaml:"name"`
	Description      string           `json:"description,omitempty" yaml:"description,omitempty"`
	Transport        Transport        `json:"transport" yaml:"transport"`
	URL              string           `json:"url,omitempty" yaml:"url,omitempty"`
	Command          string           `json:"command,omitempty" yaml:"command,omitempty"`
	Args             []string         `json:"args,omitempty" yaml:"args,omitempty"`
	Headers          []HeaderPair     `json:"headers,omitempty" yaml:"headers,omitempty"`
	RequiresOAuth2   bool             `json:"requiresOauth2,omitempty" yaml:"requiresOauth2,omitempty"`
	IsPublic         bool             `json:"isPublic,omitempty" yaml:"isPublic,omitempty"`
	ConnectionStatus string           `json:"connectionStatus,omitempty" yaml:"connectionStatus,omitempty"`
	Tools            []ToolDescriptor `json:"tools,omitempty" yaml:"tools,omitempty"`
}

// Status returns the canonical connection status of the record.
func (r *ServerRecord) Status() ConnectionStatus {
	return NormalizeStatus(r.ConnectionStatus)
}

// IsConnected reports whether the record's status is CONNECTED, in any
// letter case.
func (r *ServerRecord) IsConnected() bool {
	return r.Status() == StatusConnected
}

// FindTool looks up one of the record's tools by name. A missing tool is
// reported as a NotFoundError.
func (r *ServerRecord) FindTool(name string) (*ToolDescriptor, error) {
	for i := range r.Tools {
		if r.Tools[i].Name == name {
			return &r.Tools[i], nil
		}
	}
	return nil, NewToolNotFoundError(name)
}

// ToolDescriptor describes one capability exposed by a connected server.
// Schema may arrive either as a structured object or as a JSON-encoded
// string, depending on the backend.
type ToolDescriptor struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Schema      any    `json:"schema,omitempty" yaml:"schema,omitempty"`
}

// ParsedSchema returns the tool's input schema as a structured map.
//
// A structured schema is used as-is; a string schema is parsed as JSON.
// A missing schema, a malformed JSON string, or a non-object value all
// yield (nil, false) rather than an error, so a bad schema simply hides
// the schema section for that tool.
func (t ToolDescriptor) ParsedSchema() (map[string]any, bool) {
	switch s := t.Schema.(type) {
	case nil:
		return nil, false
	case map[string]any:
		if len(s) == 0 {
			return nil, false
		}
		return s, true
	case string:
		var parsed map[string]any
		if err := json.Unmarshal([]byte(s), &parsed); err != nil {
			return nil, false
		}
		if len(parsed) == 0 {
			return nil, false
		}
		return parsed, true
	default:
		// Re-encode unknown structured values (e.g. json.RawMessage or a
		// decoded struct) through JSON to get a uniform map.
		raw, err := json.Marshal(s)
		if err != nil {
			return nil, false
		}
		var parsed map[string]any
		if err := json.Unmarshal(raw, &parsed); err != nil {
			return nil, false
		}
		if len(parsed) == 0 {
			return nil, false
		}
		return parsed, true
	}
}

// ServerAction is a lifecycle operation the dashboard can request for a
// server. The actual work happens in the backend behind an ActionFunc.
type ServerAction string

const (
	ActionRestart    ServerAction = "restart"
	ActionActivate   ServerAction = "activate"
	ActionDeactivate ServerAction = "deactivate"
)

// ParseServerAction validates an action name, case-insensitively.
func ParseServerAction(s string) (ServerAction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "restart":
		return ActionRestart, nil
	case "activate":
		return ActionActivate, nil
	case "deactivate":
		return ActionDeactivate, nil
	default:
		return "", fmt.Errorf("unknown action %q (valid: restart, activate, deactivate)", s)
	}
}

// ActionResult is returned by a successful ActionFunc call. Message, when
// non-empty, is shown to the user instead of a generic confirmation.
type ActionResult struct {
	Message string `json:"message,omitempty"`
}

// ActionFunc performs a lifecycle action against the named server.
// Failures are communicated through the returned error, whose message is
// surfaced to the user verbatim.
type ActionFunc func(ctx context.Context, serverName string, action ServerAction) (*ActionResult, error)

// PersistFunc stores a server record (create or update). The payload
// matches the ServerRecord field set minus runtime state.
type PersistFunc func(ctx context.Context, record ServerRecord) error

// EditFunc notifies the host that the user asked to edit a server.
type EditFunc func(record ServerRecord)

// DeleteFunc notifies the host that the user asked to delete a server.
type DeleteFunc func(serverName string)
