package transport

import (
	"errors"
	"strings"
	"testing"

	"github.com/mcpconsole/mcp-console/internal/clienterr"
	"github.com/mcpconsole/mcp-console/internal/model"
)

func TestCreate_ParameterValidation(t *testing.T) {
	tests := []struct {
		name           string
		config         model.ConnectionConfig
		expectError    bool
		errorContains  string // substring of the configuration error message
		expectedField  string
		expectedType   any // expected concrete transport type, checked via type switch
	}{
		{
			name: "stdio_with_command",
			config: model.NewConnectionConfig("stdio", map[string]any{
				"command": "python",
				"args":    []string{"server.py"},
			}),
			expectedType: &Stdio{},
		},
		{
			name: "stdio_args_from_generic_decoding",
			config: model.NewConnectionConfig("stdio", map[string]any{
				"command": "python",
				"args":    []any{"server.py", "--debug"},
			}),
			expectedType: &Stdio{},
		},
		{
			name:          "stdio_missing_command",
			config:        model.NewConnectionConfig("stdio", map[string]any{}),
			expectError:   true,
			errorContains: "command",
			expectedField: "command",
		},
		{
			name: "stdio_empty_command",
			config: model.NewConnectionConfig("stdio", map[string]any{
				"command": "",
			}),
			expectError:   true,
			errorContains: "command",
			expectedField: "command",
		},
		{
			name: "stdio_bad_args",
			config: model.NewConnectionConfig("stdio", map[string]any{
				"command": "python",
				"args":    []any{"server.py", 42},
			}),
			expectError:   true,
			errorContains: "args",
			expectedField: "args",
		},
		{
			name: "sse_with_url",
			config: model.NewConnectionConfig("sse", map[string]any{
				"url": "http://localhost:8000/sse",
			}),
			expectedType: &SSE{},
		},
		{
			name:          "sse_missing_url",
			config:        model.NewConnectionConfig("sse", map[string]any{}),
			expectError:   true,
			errorContains: "url",
			expectedField: "url",
		},
		{
			name: "sse_bad_headers",
			config: model.NewConnectionConfig("sse", map[string]any{
				"url":     "http://localhost:8000/sse",
				"headers": map[string]any{"Authorization": 7},
			}),
			expectError:   true,
			errorContains: "headers",
			expectedField: "headers",
		},
		{
			name: "http_with_base_url",
			config: model.NewConnectionConfig("http", map[string]any{
				"base_url": "http://localhost:9000",
			}),
			expectedType: &HTTP{},
		},
		{
			name:          "http_missing_base_url",
			config:        model.NewConnectionConfig("http", map[string]any{}),
			expectError:   true,
			errorContains: "base_url",
			expectedField: "base_url",
		},
		{
			name:          "unsupported_kind",
			config:        model.NewConnectionConfig("websocket", map[string]any{}),
			expectError:   true,
			errorContains: "websocket",
			expectedField: "connection_type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, err := Create(tt.config)

			if tt.expectError {
				if err == nil {
					t.Fatalf("expected configuration error, got transport %T", tr)
				}
				var confErr *clienterr.ConfigurationError
				if !errors.As(err, &confErr) {
					t.Fatalf("expected *clienterr.ConfigurationError, got %T: %v", err, err)
				}
				if !strings.Contains(confErr.Message, tt.errorContains) {
					t.Errorf("error message %q does not mention %q", confErr.Message, tt.errorContains)
				}
				if confErr.Field != tt.expectedField {
					t.Errorf("error field = %q, want %q", confErr.Field, tt.expectedField)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			switch tt.expectedType.(type) {
			case *Stdio:
				if _, ok := tr.(*Stdio); !ok {
					t.Errorf("got %T, want *Stdio", tr)
				}
			case *SSE:
				if _, ok := tr.(*SSE); !ok {
					t.Errorf("got %T, want *SSE", tr)
				}
			case *HTTP:
				if _, ok := tr.(*HTTP); !ok {
					t.Errorf("got %T, want *HTTP", tr)
				}
			}
		})
	}
}

func TestCreate_KindCaseInsensitive(t *testing.T) {
	for _, kind := range []string{"STDIO", "Stdio", "stdio"} {
		config := model.ConnectionConfig{
			ConnectionType: kind,
			Parameters:     map[string]any{"command": "python"},
		}
		if _, err := Create(config); err != nil {
			t.Errorf("Create(%q) failed: %v", kind, err)
		}
	}
}

func TestCreate_HTTPStripsTrailingSlash(t *testing.T) {
	tr, err := Create(model.NewConnectionConfig("http", map[string]any{
		"base_url": "http://localhost:9000/",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	httpTransport, ok := tr.(*HTTP)
	if !ok {
		t.Fatalf("got %T, want *HTTP", tr)
	}
	if httpTransport.BaseURL != "http://localhost:9000" {
		t.Errorf("BaseURL = %q, want trailing slash stripped", httpTransport.BaseURL)
	}
}

func TestCreate_ReturnsFreshInstances(t *testing.T) {
	config := model.NewConnectionConfig("http", map[string]any{"base_url": "http://localhost:9000"})
	first, err := Create(config)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Create(config)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first == second {
		t.Error("Create returned the same instance twice")
	}
}

func TestSupportedTypes(t *testing.T) {
	types := SupportedTypes()
	want := []string{"stdio", "sse", "http"}
	if len(types) != len(want) {
		t.Fatalf("SupportedTypes() = %v, want %v", types, want)
	}
	for i := range want {
		if types[i] != want[i] {
			t.Errorf("SupportedTypes()[%d] = %q, want %q", i, types[i], want[i])
		}
	}
}

func TestParameters(t *testing.T) {
	spec, ok := Parameters("STDIO")
	if !ok {
		t.Fatal("Parameters(STDIO) not found")
	}
	if len(spec.Required) != 1 || spec.Required[0] != "command" {
		t.Errorf("stdio required = %v, want [command]", spec.Required)
	}

	if _, ok := Parameters("carrier-pigeon"); ok {
		t.Error("Parameters(carrier-pigeon) reported as known")
	}
}
