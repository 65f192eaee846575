package app

import (
	"errors"
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/alecthomas/kong"
)

// Error messages
const (
	ErrToolArgsWithoutCall = "--tool-args requires at least one --call-tool"
	ErrNoConnection        = "no connection specified: use --profile, a server command, --url or --base-url"
)

// CLI represents the command line interface configuration
type CLI struct {
	// Version flag
	Version kong.VersionFlag `kong:"short='v',help='Show version information'"`

	// Output options
	Output string `kong:"short='o',help='Output file for the introspection report (defaults to stdout)'"`
	Format string `kong:"short='f',default='markdown',enum='markdown,json',help='Output format'"`

	// Transport selection. Leave empty to infer from the other flags.
	Transport string `kong:"short='t',enum=',stdio,sse,http',default='',help='Transport type (stdio, sse, http; inferred when omitted)'"`

	// Transport-specific options
	ServerCommand string   `kong:"help='Server command for the stdio transport'"`
	URL           string   `kong:"help='Endpoint URL for the sse transport'"`
	BaseURL       string   `kong:"help='Base URL for the http transport'"`
	Headers       []string `kong:"short='H',help='HTTP headers for the sse transport (format: Key:Value)'"`

	// Connection profiles
	Config  string `kong:"short='c',help='Path to a profiles file (YAML/JSON)'"`
	Profile string `kong:"short='p',help='Connection profile name from the profiles file'"`

	// Tool calling options
	CallTool []string `kong:"help='Call specific tool(s) by name, can be used multiple times'"`
	ToolArgs string   `kong:"help='JSON arguments for tool calls (applies to all --call-tool invocations)'"`

	// Logging options
	LogLevel  string `kong:"default='info',enum='debug,info,warn,error',help='Log level'"`
	LogFormat string `kong:"default='console',enum='console,json',help='Log encoding'"`
	LogFile   string `kong:"help='Log to this file (with rotation) instead of stderr'"`

	// Legacy command format: mcp-console -- python server.py
	Args []string `kong:"arg,optional,help='Command and arguments for the stdio transport'"`
}

// Validate checks flag combinations kong cannot express.
func (cli *CLI) Validate() error {
	if cli.ToolArgs != "" && len(cli.CallTool) == 0 {
		return errors.New(ErrToolArgsWithoutCall)
	}
	return nil
}

var (
	version = "dev"     // set by goreleaser
	commit  = "none"    //nolint:unused // set by goreleaser
	date    = "unknown" //nolint:unused // set by goreleaser
)

// GetVersion returns the release version. Builds straight from the
// repository fall back to a short VCS revision.
func GetVersion() string {
	if version != "dev" {
		return version
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return version
	}
	for _, setting := range info.Settings {
		if setting.Key != "vcs.revision" {
			continue
		}
		rev := setting.Value
		if len(rev) > 8 {
			rev = rev[:8]
		}
		return version + "-" + rev
	}
	return version
}

// parseHeaders parses header strings in format "Key:Value"
func parseHeaders(headerStrings []string) (map[string]string, error) {
	headers := make(map[string]string)
	for _, h := range headerStrings {
		parts := strings.SplitN(h, ":", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid header format: %s (expected Key:Value)", h)
		}
		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		if key == "" {
			return nil, fmt.Errorf("empty header key in: %s", h)
		}
		headers[key] = value
	}
	return headers, nil
}
