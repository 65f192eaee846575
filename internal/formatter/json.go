// Package formatter renders an introspection report for the console's
// output stream.
package formatter

import (
	"encoding/json"

	"github.com/mcpconsole/mcp-console/internal/model"
)

// Report is everything the console prints after a connect: the server
// identity plus the normalized descriptor collections and any tool calls
// performed during the run.
type Report struct {
	Server    *model.ServerInfo       `json:"server"`
	Tools     []model.Tool            `json:"tools"`
	Prompts   []model.Prompt          `json:"prompts"`
	Resources []model.Resource        `json:"resources"`
	ToolCalls []model.ExecutionResult `json:"tool_calls,omitempty"`
}

// FormatJSON renders the report as indented JSON.
func FormatJSON(report *Report) ([]byte, error) {
	return json.MarshalIndent(report, "", "  ")
}
