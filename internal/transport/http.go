package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mcpconsole/mcp-console/internal/clienterr"
	"github.com/mcpconsole/mcp-console/internal/logging"
)

const (
	infoPath    = "/mcp/info"
	executePath = "/mcp/tools/execute"

	infoTimeout    = 10 * time.Second
	executeTimeout = 30 * time.Second
)

// HTTP reaches an MCP server through a plain request/response API rather
// than the protocol's own wire format. It is fully stateless: every
// operation is one independent request.
//
// Wire contract:
//
//	GET  {base}/mcp/info          -> 200 with a JSON object describing the server
//	POST {base}/mcp/tools/execute -> 200 with a JSON result,
//	                                 body {"tool_name": ..., "arguments": ...}
type HTTP struct {
	BaseURL string

	client *http.Client
	log    *zap.Logger
}

// NewHTTP creates a request/response transport rooted at baseURL. A trailing
// slash on baseURL is stripped.
func NewHTTP(baseURL string) *HTTP {
	return &HTTP{
		BaseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{},
		log:     logging.L().Named("transport.http"),
	}
}

// Connect fetches the server's info document. Any non-200 status is a
// connection failure. This transport's server-side contract does not expose
// prompt/resource listing, so enumerations come from the info payload alone.
func (t *HTTP) Connect(ctx context.Context) (*ServerData, error) {
	ctx, cancel := context.WithTimeout(ctx, infoTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.BaseURL+infoPath, nil)
	if err != nil {
		return nil, t.connectionError(fmt.Sprintf("failed to connect via http: %v", err), err)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, t.connectionError(fmt.Sprintf("failed to connect via http: %v", err), err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, t.connectionError(fmt.Sprintf("failed to read server info: %v", err), err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, t.connectionError(
			fmt.Sprintf("http connection failed with status %d", resp.StatusCode), nil)
	}

	var info map[string]any
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, t.connectionError(fmt.Sprintf("failed to decode server info: %v", err), err)
	}

	t.log.Debug("http connection successful", zap.String("base_url", t.BaseURL))
	return &ServerData{
		Info:      info,
		Tools:     anyList(info["tools"]),
		Prompts:   anyList(info["prompts"]),
		Resources: anyList(info["resources"]),
	}, nil
}

// Disconnect is a no-op: there is no session to release.
func (t *HTTP) Disconnect(ctx context.Context) error {
	return nil
}

// CallTool posts a single execution request. Any non-200 status is a tool
// execution failure whose message includes the response body text.
func (t *HTTP) CallTool(ctx context.Context, name string, arguments map[string]any) (any, error) {
	ctx, cancel := context.WithTimeout(ctx, executeTimeout)
	defer cancel()

	payload, err := json.Marshal(map[string]any{
		"tool_name": name,
		"arguments": arguments,
	})
	if err != nil {
		return nil, t.toolError(name, arguments,
			fmt.Sprintf("failed to encode arguments for tool %q: %v", name, err), err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.BaseURL+executePath, bytes.NewReader(payload))
	if err != nil {
		return nil, t.toolError(name, arguments,
			fmt.Sprintf("failed to execute tool %q: %v", name, err), err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, t.toolError(name, arguments,
			fmt.Sprintf("failed to execute tool %q: %v", name, err), err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, t.toolError(name, arguments,
			fmt.Sprintf("failed to read tool result for %q: %v", name, err), err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, t.toolError(name, arguments,
			fmt.Sprintf("tool execution failed with status %d: %s", resp.StatusCode, string(body)), nil)
	}

	var result any
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, t.toolError(name, arguments,
			fmt.Sprintf("failed to decode tool result for %q: %v", name, err), err)
	}

	t.log.Debug("tool executed", zap.String("tool", name))
	return result, nil
}

func (t *HTTP) connectionError(message string, err error) *clienterr.ConnectionError {
	return &clienterr.ConnectionError{
		Message:          message,
		ConnectionType:   "http",
		ConnectionParams: map[string]any{"base_url": t.BaseURL},
		Err:              err,
	}
}

func (t *HTTP) toolError(name string, arguments map[string]any, message string, err error) *clienterr.ToolExecutionError {
	return &clienterr.ToolExecutionError{
		Message:   message,
		ToolName:  name,
		Arguments: arguments,
		Err:       err,
	}
}
