// Package clienterr defines the structured failure kinds shared by the
// transports and the client service, plus the advisory classifier used for
// diagnostic display.
package clienterr

import "errors"

// ClientError is implemented by every taxonomy error. Transports never let a
// raw library error escape without wrapping it in one of these kinds; the
// service re-raises them unchanged.
type ClientError interface {
	error
	// ErrorDetails returns machine-readable context for diagnostic display.
	ErrorDetails() map[string]any

	taxonomy()
}

// IsClientError reports whether err or anything it wraps is a taxonomy error.
func IsClientError(err error) bool {
	var ce ClientError
	return errors.As(err, &ce)
}

// ConfigurationError signals invalid or missing connection parameters or an
// unsupported transport kind.
type ConfigurationError struct {
	Message string
	Field   string // the missing or invalid parameter, when known
	Err     error
}

func (e *ConfigurationError) Error() string { return e.Message }
func (e *ConfigurationError) Unwrap() error { return e.Err }
func (e *ConfigurationError) taxonomy()     {}

func (e *ConfigurationError) ErrorDetails() map[string]any {
	return map[string]any{
		"field": e.Field,
	}
}

// ConnectionError signals a transport-level failure to establish or verify a
// session. It carries the transport kind and the parameters attempted.
type ConnectionError struct {
	Message          string
	ConnectionType   string
	ConnectionParams map[string]any
	Err              error
}

func (e *ConnectionError) Error() string { return e.Message }
func (e *ConnectionError) Unwrap() error { return e.Err }
func (e *ConnectionError) taxonomy()     {}

func (e *ConnectionError) ErrorDetails() map[string]any {
	return map[string]any{
		"connection_type":   e.ConnectionType,
		"connection_params": e.ConnectionParams,
	}
}

// ToolExecutionError signals a failure while invoking a tool, before or after
// a session exists. Elapsed is the wall time spent in the call at the point
// of failure; zero when the failure happened before timing started.
type ToolExecutionError struct {
	Message        string
	ToolName       string
	Arguments      map[string]any
	ElapsedSeconds float64
	Err            error
}

func (e *ToolExecutionError) Error() string { return e.Message }
func (e *ToolExecutionError) Unwrap() error { return e.Err }
func (e *ToolExecutionError) taxonomy()     {}

func (e *ToolExecutionError) ErrorDetails() map[string]any {
	return map[string]any{
		"tool_name":       e.ToolName,
		"arguments":       e.Arguments,
		"elapsed_seconds": e.ElapsedSeconds,
	}
}

// ValidationError signals an input-shape check failure. Kept in the taxonomy
// for callers that validate tool arguments against schemas before execution.
type ValidationError struct {
	Message string
	Field   string
	Value   any
	Err     error
}

func (e *ValidationError) Error() string { return e.Message }
func (e *ValidationError) Unwrap() error { return e.Err }
func (e *ValidationError) taxonomy()     {}

func (e *ValidationError) ErrorDetails() map[string]any {
	return map[string]any{
		"field": e.Field,
		"value": e.Value,
	}
}
