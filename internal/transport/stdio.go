package transport

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/mcpconsole/mcp-console/internal/clienterr"
	"github.com/mcpconsole/mcp-console/internal/logging"
)

// Stdio runs the MCP server as a subprocess and speaks the protocol over its
// pipes. Sessions are ephemeral: every operation spawns a fresh subprocess,
// performs the handshake, and tears the subprocess down when done, so there
// is never persistent state for Disconnect to release.
type Stdio struct {
	Command string
	Args    []string

	log *zap.Logger
}

// NewStdio creates a stdio transport for the given server command.
func NewStdio(command string, args []string) *Stdio {
	return &Stdio{
		Command: command,
		Args:    args,
		log:     logging.L().Named("transport.stdio"),
	}
}

// Connect spawns the server, performs the handshake and enumerates its
// tools, prompts and resources.
func (t *Stdio) Connect(ctx context.Context) (*ServerData, error) {
	session, err := t.dial(ctx)
	if err != nil {
		return nil, &clienterr.ConnectionError{
			Message:          fmt.Sprintf("failed to connect via stdio: %v", err),
			ConnectionType:   "stdio",
			ConnectionParams: t.params(),
			Err:              err,
		}
	}
	defer closeSession(session, t.log)

	data := introspect(ctx, session, t.log)
	t.log.Debug("stdio connection successful", zap.String("command", t.Command))
	return data, nil
}

// Disconnect is a no-op: stdio sessions do not outlive their operation.
func (t *Stdio) Disconnect(ctx context.Context) error {
	return nil
}

// CallTool spawns a fresh subprocess, performs the handshake and invokes the
// named tool.
func (t *Stdio) CallTool(ctx context.Context, name string, arguments map[string]any) (any, error) {
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

func (t *Stdio) dial(ctx context.Context) (*mcp.ClientSession, error) {
	// #nosec G204 - the server command is operator-supplied by design
	cmd := exec.Command(t.Command, t.Args...)
	return dial(ctx, &mcp.CommandTransport{Command: cmd})
}

func (t *Stdio) params() map[string]any {
	return map[string]any{
		"command": t.Command,
		"args":    t.Args,
	}
}
