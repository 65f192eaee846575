// Package transport provides the connection strategies for reaching an MCP
// server: a subprocess speaking over its pipes (stdio), a network event
// stream (sse), and a plain request/response API (http). All three satisfy
// the Transport interface; callers pick one through Create and never branch
// on the concrete type afterwards.
package transport

import (
	"context"
	"encoding/json"
	"fmt"
)

// ServerData is the transport-native snapshot returned by Connect: the raw
// initialize payload plus whatever enumerations the transport performed.
// Values are plain decoded JSON so downstream normalization and verbatim
// display both work without knowing which transport produced them.
type ServerData struct {
	Info      map[string]any
	Tools     []any
	Prompts   []any
	Resources []any
}

// Transport is the capability contract every connection strategy satisfies.
type Transport interface {
	// Connect establishes whatever state the transport needs (subprocess,
	// network session) and returns the raw server data. It fails with a
	// *clienterr.ConnectionError when the medium cannot be reached or the
	// handshake is rejected.
	Connect(ctx context.Context) (*ServerData, error)

	// Disconnect releases resources acquired by Connect. It is idempotent
	// and never fails for the stateless transports.
	Disconnect(ctx context.Context) error

	// CallTool invokes a named tool with the given argument map and returns
	// the transport-native result. It fails with a
	// *clienterr.ToolExecutionError carrying the tool name and arguments.
	CallTool(ctx context.Context, name string, arguments map[string]any) (any, error)
}

// toRaw round-trips v through encoding/json so callers see plain decoded
// JSON values regardless of the SDK types behind them.
func toRaw(v any) any {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return string(data)
	}
	return out
}

// toRawMap is toRaw for values known to encode as JSON objects.
func toRawMap(v any) map[string]any {
	if m, ok := toRaw(v).(map[string]any); ok {
		return m
	}
	return map[string]any{}
}

func anyList(v any) []any {
	if list, ok := v.([]any); ok {
		return list
	}
	return nil
}
