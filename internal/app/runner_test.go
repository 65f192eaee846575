package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mcpconsole/mcp-console/internal/formatter"
	"github.com/mcpconsole/mcp-console/internal/model"
)

func TestResolveConnection_InferredKind(t *testing.T) {
	tests := []struct {
		name       string
		cli        CLI
		wantKind   string
		wantParams map[string]any
		wantErr    string
	}{
		{
			name:     "server_command_implies_stdio",
			cli:      CLI{ServerCommand: "python", Args: []string{"server.py"}},
			wantKind: "stdio",
			wantParams: map[string]any{
				"command": "python",
				"args":    []string{"server.py"},
			},
		},
		{
			name:     "legacy_positional_command",
			cli:      CLI{Args: []string{"python", "server.py", "--debug"}},
			wantKind: "stdio",
			wantParams: map[string]any{
				"command": "python",
				"args":    []string{"server.py", "--debug"},
			},
		},
		{
			name:     "url_implies_sse",
			cli:      CLI{URL: "http://localhost:8000/sse"},
			wantKind: "sse",
			wantParams: map[string]any{
				"url": "http://localhost:8000/sse",
			},
		},
		{
			name:     "base_url_implies_http",
			cli:      CLI{BaseURL: "http://localhost:9000"},
			wantKind: "http",
			wantParams: map[string]any{
				"base_url": "http://localhost:9000",
			},
		},
		{
			name:     "explicit_transport_wins",
			cli:      CLI{Transport: "http", BaseURL: "http://localhost:9000", URL: "ignored"},
			wantKind: "http",
			wantParams: map[string]any{
				"base_url": "http://localhost:9000",
			},
		},
		{
			name:    "nothing_specified",
			cli:     CLI{},
			wantErr: ErrNoConnection,
		},
		{
			name:    "bad_header_flag",
			cli:     CLI{URL: "http://localhost:8000/sse", Headers: []string{"no-colon"}},
			wantErr: "invalid header format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := resolveConnection(&tt.cli)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("resolveConnection() error = %v, want containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cfg.ConnectionType != tt.wantKind {
				t.Errorf("kind = %q, want %q", cfg.ConnectionType, tt.wantKind)
			}
			for key, want := range tt.wantParams {
				switch wantTyped := want.(type) {
				case []string:
					got, ok := cfg.Parameters[key].([]string)
					if !ok || len(got) != len(wantTyped) {
						t.Fatalf("parameter %q = %v, want %v", key, cfg.Parameters[key], want)
					}
					for i := range wantTyped {
						if got[i] != wantTyped[i] {
							t.Errorf("parameter %q[%d] = %q, want %q", key, i, got[i], wantTyped[i])
						}
					}
				default:
					if cfg.Parameters[key] != want {
						t.Errorf("parameter %q = %v, want %v", key, cfg.Parameters[key], want)
					}
				}
			}
		})
	}
}

func TestResolveConnection_HeadersParsed(t *testing.T) {
	cli := CLI{URL: "http://localhost:8000/sse", Headers: []string{"Authorization: Bearer token"}}
	cfg, err := resolveConnection(&cli)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	headers, ok := cfg.Parameters["headers"].(map[string]string)
	if !ok {
		t.Fatalf("headers parameter = %T, want map[string]string", cfg.Parameters["headers"])
	}
	if headers["Authorization"] != "Bearer token" {
		t.Errorf("Authorization header = %q", headers["Authorization"])
	}
}

func TestResolveConnection_FromProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.yaml")
	contents := `profiles:
  local:
    connection_type: stdio
    parameters:
      command: python
`
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatal(err)
	}

	cli := CLI{Config: path, Profile: "local"}
	cfg, err := resolveConnection(&cli)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ConnectionType != "stdio" {
		t.Errorf("kind = %q, want stdio", cfg.ConnectionType)
	}
	if cfg.Parameters["command"] != "python" {
		t.Errorf("command = %v, want python", cfg.Parameters["command"])
	}
}

func TestFormatOutput(t *testing.T) {
	report := &formatter.Report{
		Server: &model.ServerInfo{Name: "demo", Version: "1.0"},
		Tools:  []model.Tool{{Name: "echo", Description: "Echo input"}},
	}

	jsonOut, err := formatOutput(report, "json")
	if err != nil {
		t.Fatalf("json: %v", err)
	}
	if !strings.Contains(string(jsonOut), `"echo"`) {
		t.Error("json output missing tool name")
	}

	mdOut, err := formatOutput(report, "markdown")
	if err != nil {
		t.Fatalf("markdown: %v", err)
	}
	if !strings.Contains(string(mdOut), "demo") || !strings.Contains(string(mdOut), "echo") {
		t.Error("markdown output missing server or tool name")
	}

	if _, err := formatOutput(report, "xml"); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestWriteOutput_ToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.md")
	if err := writeOutput([]byte("# Report\n"), path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "# Report\n" {
		t.Errorf("file contents = %q", data)
	}
}
