// Package client provides the service that drives the
// connect/introspect/execute/disconnect lifecycle against one MCP server at
// a time, normalizing raw transport output into the console's data model.
package client

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mcpconsole/mcp-console/internal/clienterr"
	"github.com/mcpconsole/mcp-console/internal/logging"
	"github.com/mcpconsole/mcp-console/internal/model"
	"github.com/mcpconsole/mcp-console/internal/transport"
)

// factoryFunc builds a transport from a configuration. Swappable for tests.
type factoryFunc func(model.ConnectionConfig) (transport.Transport, error)

// Service owns the active transport and all session state derived from it.
// At most one connection is active per Service at any time. All methods are
// safe for concurrent use; the mutex serializes the
// connect/disconnect/execute sequence.
type Service struct {
	mu        sync.Mutex
	transport transport.Transport
	config    *model.ConnectionConfig
	server    *model.ServerInfo
	tools     []model.Tool
	prompts   []model.Prompt
	resources []model.Resource
	connected bool
	sessionID string

	factory factoryFunc
	hook    clienterr.Hook
	log     *zap.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithErrorHook registers a callback invoked with every error surfaced by
// the public methods, after logging. Intended for UI display.
func WithErrorHook(hook clienterr.Hook) Option {
	return func(s *Service) { s.hook = hook }
}

func withFactory(factory factoryFunc) Option {
	return func(s *Service) { s.factory = factory }
}

// NewService creates a disconnected service.
func NewService(opts ...Option) *Service {
	s := &Service{
		factory: transport.Create,
		log:     logging.L().Named("client"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Connect builds a transport for cfg, establishes the session and replaces
// all session state with the newly introspected data. On any failure the
// partially created transport is cleaned up and the service rolls back to
// the disconnected state.
//
// Connecting while already connected replaces the previous session's state
// without disconnecting it first; callers that need guaranteed teardown of
// the prior session must call Disconnect themselves.
func (s *Service) Connect(ctx context.Context, cfg model.ConnectionConfig) (*model.ServerInfo, error) {
	var info *model.ServerInfo
	err := clienterr.Observe(s.log, "connect", s.hook, func() error {
		var err error
		info, err = s.connect(ctx, cfg)
		return err
	})
	return info, err
}

func (s *Service) connect(ctx context.Context, cfg model.ConnectionConfig) (*model.ServerInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.log.Info("connecting to MCP server", zap.String("connection_type", cfg.ConnectionType))

	conn, err := s.factory(cfg)
	if err != nil {
		return nil, s.connectFailed(ctx, nil, cfg, err)
	}

	data, err := conn.Connect(ctx)
	if err != nil {
		return nil, s.connectFailed(ctx, conn, cfg, err)
	}

	s.transport = conn
	s.config = &cfg
	s.server = parseServerInfo(data.Info)
	s.tools = parseTools(data.Tools, s.log)
	s.prompts = parsePrompts(data.Prompts, s.log)
	s.resources = parseResources(data.Resources, s.log)
	s.connected = true
	s.sessionID = uuid.NewString()

	s.log.Info("connected to MCP server",
		zap.String("session_id", s.sessionID),
		zap.Int("tools", len(s.tools)),
		zap.Int("prompts", len(s.prompts)),
		zap.Int("resources", len(s.resources)),
	)
	return s.server, nil
}

// connectFailed cleans up whatever was created and maps err into the
// taxonomy: taxonomy errors pass through unchanged, anything else becomes a
// connection error carrying the attempted configuration.
func (s *Service) connectFailed(ctx context.Context, conn transport.Transport, cfg model.ConnectionConfig, err error) error {
	if conn != nil {
		if derr := conn.Disconnect(ctx); derr != nil {
			s.log.Warn("cleanup after failed connect", zap.Error(derr))
		}
	}
	s.reset()

	if clienterr.IsClientError(err) {
		return err
	}
	return &clienterr.ConnectionError{
		Message:          fmt.Sprintf("connection failed: %v", err),
		ConnectionType:   cfg.ConnectionType,
		ConnectionParams: cfg.Parameters,
		Err:              err,
	}
}

// Disconnect releases the active transport and unconditionally clears all
// session state. A transport failure during release is logged and swallowed;
// the service always ends up disconnected. Calling it while already
// disconnected is a no-op.
func (s *Service) Disconnect(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.transport != nil {
		s.log.Info("disconnecting from MCP server", zap.String("session_id", s.sessionID))
		if err := s.transport.Disconnect(ctx); err != nil {
			s.log.Warn("error during disconnect", zap.Error(err))
		}
	}
	s.reset()
}

// reset returns all session state to initial values. Callers hold s.mu.
func (s *Service) reset() {
	s.transport = nil
	s.config = nil
	s.server = nil
	s.tools = nil
	s.prompts = nil
	s.resources = nil
	s.connected = false
	s.sessionID = ""
}

// ExecuteTool invokes a named tool on the connected server, measuring wall
// time around the call. The returned record carries the normalized result
// and the untouched raw response.
func (s *Service) ExecuteTool(ctx context.Context, name string, arguments map[string]any) (*model.ExecutionResult, error) {
	var result *model.ExecutionResult
	err := clienterr.Observe(s.log, "execute_tool", s.hook, func() error {
		var err error
		result, err = s.executeTool(ctx, name, arguments)
		return err
	})
	return result, err
}

func (s *Service) executeTool(ctx context.Context, name string, arguments map[string]any) (*model.ExecutionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.connected || s.transport == nil {
		return nil, &clienterr.ToolExecutionError{
			Message:   "not connected to MCP server",
			ToolName:  name,
			Arguments: arguments,
		}
	}
	if s.findTool(name) == nil {
		return nil, &clienterr.ToolExecutionError{
			Message:   fmt.Sprintf("tool %q not found", name),
			ToolName:  name,
			Arguments: arguments,
		}
	}

	s.log.Info("executing tool", zap.String("tool", name), zap.String("session_id", s.sessionID))
	start := time.Now()
	raw, err := s.transport.CallTool(ctx, name, arguments)
	elapsed := time.Since(start)

	if err != nil {
		if clienterr.IsClientError(err) {
			return nil, err
		}
		return nil, &clienterr.ToolExecutionError{
			Message:        fmt.Sprintf("tool execution failed: %v", err),
			ToolName:       name,
			Arguments:      arguments,
			ElapsedSeconds: elapsed.Seconds(),
			Err:            err,
		}
	}

	s.log.Info("tool executed",
		zap.String("tool", name),
		zap.Duration("elapsed", elapsed),
	)
	return &model.ExecutionResult{
		ID:             uuid.NewString(),
		ToolName:       name,
		Success:        true,
		Result:         raw,
		ElapsedSeconds: elapsed.Seconds(),
		RawResult:      raw,
	}, nil
}

// IsConnected reports whether a session is active.
func (s *Service) IsConnected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.connected && s.transport != nil
}

// GetServerInfo returns the identity of the connected server, or nil when
// disconnected.
func (s *Service) GetServerInfo() *model.ServerInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.server
}

// GetTools returns a copy of the advertised tools.
func (s *Service) GetTools() []model.Tool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.tools)
}

// GetTool returns the first advertised tool with the given name, or nil.
func (s *Service) GetTool(name string) *model.Tool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findTool(name)
}

// findTool scans by name and returns the first match. Callers hold s.mu.
// Duplicate names from a non-compliant server are not deduplicated.
func (s *Service) findTool(name string) *model.Tool {
	for i := range s.tools {
		if s.tools[i].Name == name {
			tool := s.tools[i]
			return &tool
		}
	}
	return nil
}

// GetPrompts returns a copy of the advertised prompts.
func (s *Service) GetPrompts() []model.Prompt {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.prompts)
}

// GetResources returns a copy of the advertised resources.
func (s *Service) GetResources() []model.Resource {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.resources)
}
