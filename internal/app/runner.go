package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/mcpconsole/mcp-console/internal/client"
	"github.com/mcpconsole/mcp-console/internal/clienterr"
	"github.com/mcpconsole/mcp-console/internal/config"
	"github.com/mcpconsole/mcp-console/internal/formatter"
	"github.com/mcpconsole/mcp-console/internal/logging"
	"github.com/mcpconsole/mcp-console/internal/model"
	"github.com/mcpconsole/mcp-console/internal/transport"
)

// Run executes the main application logic: connect, introspect, optionally
// call tools, report, disconnect.
func Run(cli *CLI) error {
	if err := cli.Validate(); err != nil {
		return err
	}

	// Logging is configured exactly once, before any component logs.
	logging.Setup(logging.Config{
		Level:      cli.LogLevel,
		Format:     cli.LogFormat,
		OutputPath: cli.LogFile,
	})

	connection, err := resolveConnection(cli)
	if err != nil {
		return err
	}

	ctx := context.Background()
	service := client.NewService()

	info, err := service.Connect(ctx, connection)
	if err != nil {
		return errors.New(clienterr.Summary(err))
	}
	defer service.Disconnect(ctx)

	toolCalls, err := callTools(ctx, service, cli)
	if err != nil {
		return err
	}

	report := &formatter.Report{
		Server:    info,
		Tools:     service.GetTools(),
		Prompts:   service.GetPrompts(),
		Resources: service.GetResources(),
		ToolCalls: toolCalls,
	}

	output, err := formatOutput(report, cli.Format)
	if err != nil {
		return err
	}
	return writeOutput(output, cli.Output)
}

// resolveConnection builds the connection configuration from a profile or
// from the transport flags. When --transport is omitted the kind is inferred
// from which flags were given.
func resolveConnection(cli *CLI) (model.ConnectionConfig, error) {
	if cli.Profile != "" || cli.Config != "" {
		file, err := config.Load(cli.Config)
		if err != nil {
			return model.ConnectionConfig{}, err
		}
		return file.Connection(cli.Profile)
	}

	kind := cli.Transport
	if kind == "" {
		switch {
		case cli.ServerCommand != "" || len(cli.Args) > 0:
			kind = "stdio"
		case cli.URL != "":
			kind = "sse"
		case cli.BaseURL != "":
			kind = "http"
		default:
			return model.ConnectionConfig{}, errors.New(ErrNoConnection)
		}
	}

	switch kind {
	case "stdio":
		command := cli.ServerCommand
		args := cli.Args
		if command == "" && len(args) > 0 {
			command, args = args[0], args[1:]
		}
		return model.NewConnectionConfig("stdio", map[string]any{
			"command": command,
			"args":    args,
		}), nil
	case "sse":
		parameters := map[string]any{"url": cli.URL}
		if len(cli.Headers) > 0 {
			headers, err := parseHeaders(cli.Headers)
			if err != nil {
				return model.ConnectionConfig{}, err
			}
			parameters["headers"] = headers
		}
		return model.NewConnectionConfig("sse", parameters), nil
	default:
		return model.NewConnectionConfig("http", map[string]any{
			"base_url": cli.BaseURL,
		}), nil
	}
}

// callTools invokes each requested tool, capturing failures in the result
// record so one failing tool does not abort the run.
func callTools(ctx context.Context, service *client.Service, cli *CLI) ([]model.ExecutionResult, error) {
	if len(cli.CallTool) == 0 {
		return nil, nil
	}

	var arguments map[string]any
	if cli.ToolArgs != "" {
		if err := json.Unmarshal([]byte(cli.ToolArgs), &arguments); err != nil {
			return nil, fmt.Errorf("failed to parse tool arguments: %w", err)
		}
	}

	results := make([]model.ExecutionResult, 0, len(cli.CallTool))
	for _, name := range cli.CallTool {
		result, err := service.ExecuteTool(ctx, name, arguments)
		if err != nil {
			record := model.ExecutionResult{
				ToolName: name,
				Success:  false,
				Error:    clienterr.Summary(err),
			}
			var toolErr *clienterr.ToolExecutionError
			if errors.As(err, &toolErr) {
				record.ElapsedSeconds = toolErr.ElapsedSeconds
			}
			results = append(results, record)
			continue
		}
		results = append(results, *result)
	}
	return results, nil
}

func formatOutput(report *formatter.Report, format string) ([]byte, error) {
	switch format {
	case "json":
		return formatter.FormatJSON(report)
	case "markdown":
		rendered, err := formatter.FormatMarkdown(report)
		if err != nil {
			return nil, err
		}
		return []byte(rendered), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// writeOutput writes the report to the output file, or stdout when none was
// requested.
func writeOutput(output []byte, outputPath string) error {
	if outputPath != "" {
		return os.WriteFile(outputPath, output, 0o600)
	}
	_, err := os.Stdout.Write(output)
	return err
}

// SupportedTransports is re-exported for help output.
func SupportedTransports() []string {
	return transport.SupportedTypes()
}
