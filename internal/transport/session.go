package transport

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

const (
	clientName    = "mcp-console"
	clientVersion = "0.1.0"
)

// mcpSession is the subset of *mcp.ClientSession the ephemeral transports
// use. Narrowed to an interface so introspection can be tested against a
// scripted session.
type mcpSession interface {
	InitializeResult() *mcp.InitializeResult
	ListTools(ctx context.Context, params *mcp.ListToolsParams) (*mcp.ListToolsResult, error)
	ListPrompts(ctx context.Context, params *mcp.ListPromptsParams) (*mcp.ListPromptsResult, error)
	ListResources(ctx context.Context, params *mcp.ListResourcesParams) (*mcp.ListResourcesResult, error)
	CallTool(ctx context.Context, params *mcp.CallToolParams) (*mcp.CallToolResult, error)
	Close() error
}

// dial opens a fresh SDK session over t, performing the protocol handshake.
func dial(ctx context.Context, t mcp.Transport) (*mcp.ClientSession, error) {
	client := mcp.NewClient(
		&mcp.Implementation{
			Name:    clientName,
			Version: clientVersion,
		},
		nil,
	)
	return client.Connect(ctx, t, nil)
}

// introspect reads the initialize payload and enumerates tools, prompts and
// resources. The three enumerations are independently recoverable: a server
// that does not support one of the listing operations degrades to an empty
// list with a logged warning instead of failing the connect.
func introspect(ctx context.Context, session mcpSession, log *zap.Logger) *ServerData {
	data := &ServerData{
		Info:      toRawMap(session.InitializeResult()),
		Tools:     []any{},
		Prompts:   []any{},
		Resources: []any{},
	}

	if tools, err := session.ListTools(ctx, &mcp.ListToolsParams{}); err != nil {
		log.Warn("failed to list tools", zap.Error(err))
	} else {
		for _, tool := range tools.Tools {
			data.Tools = append(data.Tools, toRaw(tool))
		}
	}

	if prompts, err := session.ListPrompts(ctx, &mcp.ListPromptsParams{}); err != nil {
		log.Warn("failed to list prompts", zap.Error(err))
	} else {
		for _, prompt := range prompts.Prompts {
			data.Prompts = append(data.Prompts, toRaw(prompt))
		}
	}

	if resources, err := session.ListResources(ctx, &mcp.ListResourcesParams{}); err != nil {
		log.Warn("failed to list resources", zap.Error(err))
	} else {
		for _, resource := range resources.Resources {
			data.Resources = append(data.Resources, toRaw(resource))
		}
	}

	return data
}

func closeSession(session mcpSession, log *zap.Logger) {
	if err := session.Close(); err != nil {
		log.Warn("failed to close session", zap.Error(err))
	}
}
