// Package model holds the normalized records the console works with,
// decoupled from each transport's native wire representation. Raw* fields
// carry the untouched transport payload for verbatim display.
package model

import "strings"

// ServerInfo represents the identity of a connected MCP server.
type ServerInfo struct {
	Name            string         `json:"name,omitempty"`
	Version         string         `json:"version,omitempty"`
	ProtocolVersion string         `json:"protocolVersion,omitempty"`
	Capabilities    map[string]any `json:"capabilities,omitempty"`
	RawData         map[string]any `json:"raw_data,omitempty"`
}

// Tool represents an MCP tool advertised by a server.
type Tool struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	InputSchema any    `json:"inputSchema,omitempty"`
	RawData     any    `json:"raw_data,omitempty"`
}

// Prompt represents an MCP prompt advertised by a server.
type Prompt struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Arguments   any    `json:"arguments,omitempty"`
	RawData     any    `json:"raw_data,omitempty"`
}

// Resource represents an MCP resource advertised by a server.
type Resource struct {
	URI         string `json:"uri"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	MimeType    string `json:"mimeType,omitempty"`
	RawData     any    `json:"raw_data,omitempty"`
}

// ConnectionConfig describes how to reach an MCP server: a transport kind
// plus kind-specific parameters. Build one with NewConnectionConfig so the
// kind is normalized; treat it as immutable afterwards.
type ConnectionConfig struct {
	ConnectionType string         `json:"connection_type"`
	Parameters     map[string]any `json:"parameters"`
}

// NewConnectionConfig builds a ConnectionConfig with the kind lowered.
func NewConnectionConfig(connectionType string, parameters map[string]any) ConnectionConfig {
	return ConnectionConfig{
		ConnectionType: strings.ToLower(connectionType),
		Parameters:     parameters,
	}
}

// ExecutionResult captures the outcome of a single tool invocation.
// It is constructed once per call and never mutated afterwards.
type ExecutionResult struct {
	ID             string  `json:"id"`
	ToolName       string  `json:"tool_name"`
	Success        bool    `json:"success"`
	Result         any     `json:"result,omitempty"`
	Error          string  `json:"error,omitempty"`
	ElapsedSeconds float64 `json:"elapsed_seconds"`
	RawResult      any     `json:"raw_result,omitempty"`
}
