// Package api defines the shared data contract between the dashboard
// components and the backend that owns the actual MCP connections.
//
// The dashboard never talks to an MCP server itself. It renders
// ServerRecord values that a backend hands it, and it reports user intent
// back through the collaborator function types declared here (ActionFunc,
// PersistFunc, EditFunc, DeleteFunc). Connection lifecycle, transport
// handling, and persistence all live behind those functions.
package api
