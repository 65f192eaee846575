package clienterr

import (
	"errors"
	"fmt"
	"regexp"
	"runtime/debug"
	"strings"
	"time"
)

// Category is a best-effort guess at what went wrong, derived from keywords
// in the error text. It exists purely to aid a human operator; never branch
// on it programmatically.
type Category string

const (
	CategoryURLParsing    Category = "url_parsing"
	CategoryConnection    Category = "connection"
	CategoryParsing       Category = "parsing"
	CategoryPermission    Category = "permission"
	CategoryFilesystem    Category = "filesystem"
	CategoryToolExecution Category = "tool_execution"
	CategoryUnknown       Category = "unknown"
)

// Report bundles everything the UI shows for a failure: a one-line summary,
// a heuristic category with remediation suggestions, and structured context.
type Report struct {
	Summary     string         `json:"summary"`
	Category    Category       `json:"category"`
	Suggestions []string       `json:"suggestions"`
	Timestamp   time.Time      `json:"timestamp"`
	Stack       string         `json:"stack"`
	Details     map[string]any `json:"details"`
}

var urlPattern = regexp.MustCompile(`(?:https?://|www\.|[a-zA-Z0-9-]+\.[a-zA-Z]{2,})\S*`)

// Classify builds a diagnostic report for err.
func Classify(err error) Report {
	msg := err.Error()
	category, suggestions, extra := analyze(msg)

	details := map[string]any{
		"error_type":    fmt.Sprintf("%T", err),
		"error_message": msg,
	}
	for k, v := range extra {
		details[k] = v
	}
	var ce ClientError
	if errors.As(err, &ce) {
		for k, v := range ce.ErrorDetails() {
			details[k] = v
		}
	}

	return Report{
		Summary:     Summary(err),
		Category:    category,
		Suggestions: suggestions,
		Timestamp:   time.Now(),
		Stack:       string(debug.Stack()),
		Details:     details,
	}
}

// Summary returns the one-line operator-facing message for err.
func Summary(err error) string {
	var (
		connErr *ConnectionError
		toolErr *ToolExecutionError
		confErr *ConfigurationError
		valErr  *ValidationError
	)
	switch {
	case errors.As(err, &connErr):
		return "Failed to connect to MCP server: " + connErr.Message
	case errors.As(err, &toolErr):
		return "Tool execution failed: " + toolErr.Message
	case errors.As(err, &confErr):
		return "Invalid configuration: " + confErr.Message
	case errors.As(err, &valErr):
		return "Validation failed: " + valErr.Message
	default:
		return "An unexpected error occurred: " + err.Error()
	}
}

func analyze(msg string) (Category, []string, map[string]any) {
	lower := strings.ToLower(msg)
	extra := map[string]any{}

	switch {
	case strings.Contains(lower, "invalid url") ||
		strings.Contains(lower, "unsupported protocol scheme") ||
		strings.Contains(lower, "missing protocol scheme"):
		if urls := urlPattern.FindAllString(msg, -1); len(urls) > 0 {
			extra["problematic_urls"] = urls
		}
		return CategoryURLParsing, []string{
			"Check that the URL is properly formatted with protocol (http:// or https://)",
			"Ensure the URL doesn't contain invalid characters",
		}, extra

	case containsAny(lower, "connection", "timeout", "refused", "unreachable"):
		return CategoryConnection, []string{
			"Check network connectivity",
			"Verify server is running and accessible",
			"Check firewall settings",
		}, extra

	case containsAny(lower, "json", "parse", "decode"):
		return CategoryParsing, []string{
			"Check data format and structure",
			"Verify input contains valid JSON/data",
		}, extra

	case containsAny(lower, "permission", "access", "denied", "unauthorized"):
		return CategoryPermission, []string{
			"Check file/directory permissions",
			"Verify authentication credentials",
			"Ensure proper access rights",
		}, extra

	case containsAny(lower, "file not found", "no such file", "directory"):
		return CategoryFilesystem, []string{
			"Verify file/directory path exists",
			"Check spelling and case sensitivity",
			"Ensure proper file permissions",
		}, extra

	case strings.Contains(lower, "tool"):
		return CategoryToolExecution, []string{
			"Check tool parameters and arguments",
			"Verify tool is available and properly configured",
			"Review tool documentation for proper usage",
		}, extra

	default:
		return CategoryUnknown, nil, extra
	}
}

func containsAny(s string, substrings ...string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
