package transport

import (
	"context"
	"fmt"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/mcpconsole/mcp-console/internal/clienterr"
	"github.com/mcpconsole/mcp-console/internal/logging"
)

// SSE reaches the MCP server over a network event stream. It follows the
// same ephemeral-session pattern as Stdio: each operation opens a fresh
// stream session and closes it when the operation completes.
type SSE struct {
	URL     string
	Headers map[string]string // optional, set on every request

	log *zap.Logger
}

// NewSSE creates an event-stream transport for the given endpoint.
func NewSSE(url string, headers map[string]string) *SSE {
	return &SSE{
		URL:     url,
		Headers: headers,
		log:     logging.L().Named("transport.sse"),
	}
}

// Connect opens a stream session, performs the handshake and enumerates the
// server's tools, prompts and resources.
func (t *SSE) Connect(ctx context.Context) (*ServerData, error) {
	session, err := t.dial(ctx)
	if err != nil {
		return nil, &clienterr.ConnectionError{
			Message:          fmt.Sprintf("failed to connect via sse: %v", err),
			ConnectionType:   "sse",
			ConnectionParams: t.params(),
			Err:              err,
		}
	}
	defer closeSession(session, t.log)

	data := introspect(ctx, session, t.log)
	t.log.Debug("sse connection successful", zap.String("url", t.URL))
	return data, nil
}

// Disconnect is a no-op: stream sessions do not outlive their operation.
func (t *SSE) Disconnect(ctx context.Context) error {
	return nil
}

// CallTool opens a fresh stream session and invokes the named tool.
func (t *SSE) CallTool(ctx context.Context, name string, arguments map[string]any) (any, error) {
	session, err := t.dial(ctx)
	if err != nil {
		return nil, &clienterr.ToolExecutionError{
			Message:   fmt.Sprintf("failed to execute tool %q: %v", name, err),
			ToolName:  name,
			Arguments: arguments,
			Err:       err,
		}
	}
	defer closeSession(session, t.log)

	result, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      name,
		Arguments: arguments,
	})
	if err != nil {
		return nil, &clienterr.ToolExecutionError{
			Message:   fmt.Sprintf("failed to execute tool %q: %v", name, err),
			ToolName:  name,
			Arguments: arguments,
			Err:       err,
		}
	}

	t.log.Debug("tool executed", zap.String("tool", name))
	return toRaw(result), nil
}

func (t *SSE) dial(ctx context.Context) (*mcp.ClientSession, error) {
	httpClient := http.DefaultClient
	if len(t.Headers) > 0 {
		httpClient = &http.Client{
			Transport: &headerRoundTripper{
				base:    http.DefaultTransport,
				headers: t.Headers,
			},
		}
	}
	return dial(ctx, &mcp.SSEClientTransport{
		Endpoint:   t.URL,
		HTTPClient: httpClient,
	})
}

func (t *SSE) params() map[string]any {
	return map[string]any{"url": t.URL}
}

// headerRoundTripper sets custom headers on every request of the stream
// session, without mutating the caller's request.
type headerRoundTripper struct {
	base    http.RoundTripper
	headers map[string]string
}

func (h *headerRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	for key, value := range h.headers {
		clone.Header.Set(key, value)
	}
	return h.base.RoundTrip(clone)
}
