// Package client implements the backend collaborator the CLI wires into
// the dashboard components. It talks to an MCP aggregator's management
// tools (server list/get/create/update/delete plus the lifecycle actions)
// and adapts the results to the api collaborator contracts. No connection
// lifecycle logic lives here; the aggregator owns all of that.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	mcpclient "github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
	"golang.org/x/sync/errgroup"

	"github.com/Avyakta000/mcp-client/internal/api"
	"github.com/Avyakta000/mcp-client/pkg/logging"
)

const subsystem = "client"

// Management tool names exposed by the aggregator.
const (
	toolServerList   = "core_mcpserver_list"
	toolServerGet    = "core_mcpserver_get"
	toolServerCreate = "core_mcpserver_create"
	toolServerUpdate = "core_mcpserver_update"
	toolServerDelete = "core_mcpserver_delete"
)

// lifecycleToolPrefix is completed with the action name, e.g.
// core_mcpserver_restart.
const lifecycleToolPrefix = "core_mcpserver_"

const defaultTimeout = 30 * time.Second

// maxParallelRefresh bounds the concurrent per-server tool refreshes.
const maxParallelRefresh = 4

// Options configures a Backend.
type Options struct {
	// Endpoint is the aggregator URL.
	Endpoint string

	// Transport selects sse or streamable_http. When empty it is
	// inferred from the endpoint path.
	Transport string

	// Timeout bounds each aggregator call.
	Timeout time.Duration
}

// Backend is an aggregator-backed implementation of the dashboard's
// collaborator contracts.
type Backend struct {
	endpoint string
	timeout  time.Duration
	client   mcpclient.MCPClient
	isSSE    bool
}

// New creates a backend for the given aggregator endpoint. Connect must
// be called before any other method.
func New(opts Options) (*Backend, error) {
	if opts.Endpoint == "" {
		return nil, fmt.Errorf("aggregator endpoint is required")
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	isSSE := strings.EqualFold(opts.Transport, "sse")
	if opts.Transport == "" {
		isSSE = strings.HasSuffix(opts.Endpoint, "/sse")
	}

	return &Backend{
		endpoint: opts.Endpoint,
		timeout:  timeout,
		isSSE:    isSSE,
	}, nil
}

// Connect starts the transport and performs the MCP handshake.
func (b *Backend) Connect(ctx context.Context) error {
	if b.isSSE {
		sseClient, err := mcpclient.NewSSEMCPClient(b.endpoint)
		if err != nil {
			return fmt.Errorf("failed to create SSE client: %w", err)
		}
		if err := sseClient.Start(ctx); err != nil {
			return fmt.Errorf("failed to start SSE client: %w", err)
		}
		b.client = sseClient
	} else {
		httpClient, err := mcpclient.NewStreamableHttpClient(b.endpoint)
		if err != nil {
			return fmt.Errorf("failed to create streamable-http client: %w", err)
		}
		if err := httpClient.Start(ctx); err != nil {
			return fmt.Errorf("failed to start streamable-http client: %w", err)
		}
		b.client = httpClient
	}

	req := mcp.InitializeRequest{}
	req.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	req.Params.ClientInfo = mcp.Implementation{
		Name:    "mcp-client-dashboard",
		Version: "1.0.0",
	}
	req.Params.Capabilities = mcp.ClientCapabilities{}

	timeoutCtx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()
	if _, err := b.client.Initialize(timeoutCtx, req); err != nil {
		b.client.Close()
		b.client = nil
		return fmt.Errorf("initialization failed: %w", err)
	}

	logging.Debug(subsystem, "connected to aggregator at %s", b.endpoint)
	return nil
}

// Close shuts down the transport.
func (b *Backend) Close() error {
	if b.client == nil {
		return nil
	}
	err := b.client.Close()
	b.client = nil
	return err
}

// ListServers fetches all server records known to the aggregator.
func (b *Backend) ListServers(ctx context.Context) ([]api.ServerRecord, error) {
	raw, err := b.callToolText(ctx, toolServerList, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list servers: %w", err)
	}
	var servers []api.ServerRecord
	if err := json.Unmarshal([]byte(raw), &servers); err != nil {
		return nil, fmt.Errorf("unexpected server list payload: %w", err)
	}
	return servers, nil
}

// GetServer fetches one server record by name.
func (b *Backend) GetServer(ctx context.Context, name string) (*api.ServerRecord, error) {
	raw, err := b.callToolText(ctx, toolServerGet, map[string]interface{}{"name": name})
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "not found") {
			return nil, api.NewServerNotFoundError(name)
		}
		return nil, fmt.Errorf("failed to get server %s: %w", name, err)
	}
	var server api.ServerRecord
	if err := json.Unmarshal([]byte(raw), &server); err != nil {
		return nil, fmt.Errorf("unexpected server payload: %w", err)
	}
	return &server, nil
}

// PerformAction satisfies api.ActionFunc: it runs one lifecycle action
// through the matching aggregator tool. The aggregator's text response,
// when present, becomes the user-facing message.
func (b *Backend) PerformAction(ctx context.Context, serverName string, action api.ServerAction) (*api.ActionResult, error) {
	raw, err := b.callToolText(ctx, lifecycleToolPrefix+string(action), map[string]interface{}{
		"name": serverName,
	})
	if err != nil {
		return nil, err
	}
	return &api.ActionResult{Message: actionMessage(raw)}, nil
}

// Create satisfies api.PersistFunc for the add form.
func (b *Backend) Create(ctx context.Context, record api.ServerRecord) error {
	_, err := b.callToolText(ctx, toolServerCreate, recordArgs(record))
	return err
}

// Update satisfies api.PersistFunc for the edit form.
func (b *Backend) Update(ctx context.Context, record api.ServerRecord) error {
	_, err := b.callToolText(ctx, toolServerUpdate, recordArgs(record))
	return err
}

// Delete removes a server definition.
func (b *Backend) Delete(ctx context.Context, name string) error {
	_, err := b.callToolText(ctx, toolServerDelete, map[string]interface{}{"name": name})
	return err
}

// LoadTools populates the record's tool list from the aggregator's
// tools/list, matched by the aggregator's "<server>_" name prefix. The
// prefix is stripped so the explorer shows the server-local names.
func (b *Backend) LoadTools(ctx context.Context, server *api.ServerRecord) error {
	if b.client == nil {
		return fmt.Errorf("not connected to aggregator")
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	result, err := b.client.ListTools(timeoutCtx, mcp.ListToolsRequest{})
	if err != nil {
		return fmt.Errorf("failed to list tools: %w", err)
	}

	prefix := strings.ToLower(server.Name) + "_"
	var tools []api.ToolDescriptor
	for _, tool := range result.Tools {
		if !strings.HasPrefix(strings.ToLower(tool.Name), prefix) {
			continue
		}
		tools = append(tools, api.ToolDescriptor{
			Name:        tool.Name[len(prefix):],
			Description: tool.Description,
			Schema:      schemaToMap(tool.InputSchema),
		})
	}
	server.Tools = tools
	return nil
}

// RefreshAll loads the tool lists of every listed server, a few servers
// at a time.
func (b *Backend) RefreshAll(ctx context.Context, servers []api.ServerRecord) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelRefresh)
	for i := range servers {
		server := &servers[i]
		if !server.IsConnected() {
			continue
		}
		g.Go(func() error {
			if err := b.LoadTools(gctx, server); err != nil {
				logging.Warn(subsystem, "failed to refresh tools for %s: %v", server.Name, err)
			}
			return nil
		})
	}
	return g.Wait()
}

// callToolText calls an aggregator tool and returns its first text
// content. Tool-level errors (IsError results) come back as Go errors
// carrying the aggregator's message.
func (b *Backend) callToolText(ctx context.Context, name string, args map[string]interface{}) (string, error) {
	if b.client == nil {
		return "", fmt.Errorf("not connected to aggregator")
	}

	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args

	timeoutCtx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	result, err := b.client.CallTool(timeoutCtx, req)
	if err != nil {
		return "", fmt.Errorf("tool call failed: %w", err)
	}

	text := firstText(result)
	if result.IsError {
		if text == "" {
			text = fmt.Sprintf("tool %s failed", name)
		}
		return "", fmt.Errorf("%s", text)
	}
	return text, nil
}

func firstText(result *mcp.CallToolResult) string {
	for _, content := range result.Content {
		if textContent, ok := mcp.AsTextContent(content); ok {
			return textContent.Text
		}
	}
	return ""
}

// actionMessage extracts a human-readable message from an action
// response. Plain text is used as-is; a JSON object may carry a message
// field.
func actionMessage(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || !strings.HasPrefix(trimmed, "{") {
		return trimmed
	}
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal([]byte(trimmed), &payload); err != nil {
		return trimmed
	}
	return payload.Message
}

// recordArgs converts a record into the argument map the create/update
// tools accept.
func recordArgs(record api.ServerRecord) map[string]interface{} {
	args := map[string]interface{}{
		"name":           record.Name,
		"transport":      string(record.Transport),
		"requiresOauth2": record.RequiresOAuth2,
		"isPublic":       record.IsPublic,
	}
	if record.Description != "" {
		args["description"] = record.Description
	}
	if record.Transport == api.TransportStdio {
		args["command"] = record.Command
		if len(record.Args) > 0 {
			args["args"] = record.Args
		}
	} else {
		args["url"] = record.URL
		if len(record.Headers) > 0 {
			headers := make([]map[string]string, 0, len(record.Headers))
			for _, h := range record.Headers {
				headers = append(headers, map[string]string{"key": h.Key, "value": h.Value})
			}
			args["headers"] = headers
		}
	}
	return args
}

func schemaToMap(schema mcp.ToolInputSchema) map[string]any {
	raw, err := json.Marshal(schema)
	if err != nil {
		return nil
	}
	var parsed map[string]any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil
	}
	return parsed
}
