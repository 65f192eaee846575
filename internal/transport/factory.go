package transport

import (
	"fmt"
	"strings"

	"github.com/mcpconsole/mcp-console/internal/clienterr"
	"github.com/mcpconsole/mcp-console/internal/model"
)

// Create builds a transport from a connection configuration. The kind is
// case-insensitive; required parameters are validated per kind. The factory
// holds no state and returns a fresh instance on every call.
func Create(cfg model.ConnectionConfig) (Transport, error) {
	switch strings.ToLower(cfg.ConnectionType) {
	case "stdio":
		command, _ := stringParam(cfg.Parameters, "command")
		if command == "" {
			return nil, &clienterr.ConfigurationError{
				Message: "stdio connection requires 'command' parameter",
				Field:   "command",
			}
		}
		args, err := stringSliceParam(cfg.Parameters, "args")
		if err != nil {
			return nil, &clienterr.ConfigurationError{
				Message: "stdio 'args' parameter must be a list of strings",
				Field:   "args",
				Err:     err,
			}
		}
		return NewStdio(command, args), nil

	case "sse":
		url, _ := stringParam(cfg.Parameters, "url")
		if url == "" {
			return nil, &clienterr.ConfigurationError{
				Message: "sse connection requires 'url' parameter",
				Field:   "url",
			}
		}
		headers, err := stringMapParam(cfg.Parameters, "headers")
		if err != nil {
			return nil, &clienterr.ConfigurationError{
				Message: "sse 'headers' parameter must map header names to string values",
				Field:   "headers",
				Err:     err,
			}
		}
		return NewSSE(url, headers), nil

	case "http":
		baseURL, _ := stringParam(cfg.Parameters, "base_url")
		if baseURL == "" {
			return nil, &clienterr.ConfigurationError{
				Message: "http connection requires 'base_url' parameter",
				Field:   "base_url",
			}
		}
		return NewHTTP(baseURL), nil

	default:
		return nil, &clienterr.ConfigurationError{
			Message: fmt.Sprintf("unsupported connection type: %s", cfg.ConnectionType),
			Field:   "connection_type",
		}
	}
}

// SupportedTypes lists the connection kinds Create accepts.
func SupportedTypes() []string {
	return []string{"stdio", "sse", "http"}
}

// ParameterSpec describes the parameters a connection kind accepts, for
// callers that render connection forms.
type ParameterSpec struct {
	Required    []string
	Optional    []string
	Description string
}

// Parameters returns the parameter spec for a connection kind. The second
// return value is false for unknown kinds.
func Parameters(kind string) (ParameterSpec, bool) {
	switch strings.ToLower(kind) {
	case "stdio":
		return ParameterSpec{
			Required:    []string{"command"},
			Optional:    []string{"args"},
			Description: "Execute the MCP server as a subprocess",
		}, true
	case "sse":
		return ParameterSpec{
			Required:    []string{"url"},
			Optional:    []string{"headers"},
			Description: "Connect to the MCP server via Server-Sent Events",
		}, true
	case "http":
		return ParameterSpec{
			Required:    []string{"base_url"},
			Description: "Connect to the MCP server via its HTTP API",
		}, true
	default:
		return ParameterSpec{}, false
	}
}

func stringParam(params map[string]any, key string) (string, bool) {
	s, ok := params[key].(string)
	return s, ok
}

// stringSliceParam accepts both []string and the []any produced by generic
// JSON/YAML decoding. A missing key yields a nil slice.
func stringSliceParam(params map[string]any, key string) ([]string, error) {
	value, ok := params[key]
	if !ok || value == nil {
		return nil, nil
	}
	switch v := value.(type) {
	case []string:
		return v, nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%s contains non-string element %v", key, item)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%s is %T, want a list of strings", key, value)
	}
}

func stringMapParam(params map[string]any, key string) (map[string]string, error) {
	value, ok := params[key]
	if !ok || value == nil {
		return nil, nil
	}
	switch v := value.(type) {
	case map[string]string:
		return v, nil
	case map[string]any:
		out := make(map[string]string, len(v))
		for name, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%s[%s] is %T, want a string", key, name, item)
			}
			out[name] = s
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%s is %T, want a map of strings", key, value)
	}
}
