package client

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/mcpconsole/mcp-console/internal/model"
)

// Normalization reads known field names out of raw introspection records
// with explicit fallbacks: a record with no name falls back to its string
// representation, and a record whose name field cannot be read as a string
// is dropped with a warning while the rest of the batch survives.

var errUnreadableRecord = errors.New("unreadable record")

func parseServerInfo(info map[string]any) *model.ServerInfo {
	server := &model.ServerInfo{RawData: info}
	if info == nil {
		return server
	}

	// The protocol nests identity under serverInfo; the request/response
	// transport's info document is flat. Accept both.
	nested, _ := info["serverInfo"].(map[string]any)
	server.Name = firstString(info["name"], nested["name"])
	server.Version = firstString(info["version"], nested["version"])
	server.ProtocolVersion = firstString(info["protocolVersion"], nil)
	server.Capabilities, _ = info["capabilities"].(map[string]any)
	return server
}

func parseTools(records []any, log *zap.Logger) []model.Tool {
	tools := make([]model.Tool, 0, len(records))
	for _, record := range records {
		name, fields, err := recordFields(record)
		if err != nil {
			log.Warn("failed to parse tool record", zap.Error(err))
			continue
		}
		description, _ := fields["description"].(string)
		tools = append(tools, model.Tool{
			Name:        name,
			Description: description,
			InputSchema: fields["inputSchema"],
			RawData:     record,
		})
	}
	return tools
}

func parsePrompts(records []any, log *zap.Logger) []model.Prompt {
	prompts := make([]model.Prompt, 0, len(records))
	for _, record := range records {
		name, fields, err := recordFields(record)
		if err != nil {
			log.Warn("failed to parse prompt record", zap.Error(err))
			continue
		}
		description, _ := fields["description"].(string)
		prompts = append(prompts, model.Prompt{
			Name:        name,
			Description: description,
			Arguments:   fields["arguments"],
			RawData:     record,
		})
	}
	return prompts
}

func parseResources(records []any, log *zap.Logger) []model.Resource {
	resources := make([]model.Resource, 0, len(records))
	for _, record := range records {
		uri, fields, err := recordKey(record, "uri")
		if err != nil {
			log.Warn("failed to parse resource record", zap.Error(err))
			continue
		}
		name, _ := fields["name"].(string)
		description, _ := fields["description"].(string)
		mimeType, _ := fields["mimeType"].(string)
		resources = append(resources, model.Resource{
			URI:         uri,
			Name:        name,
			Description: description,
			MimeType:    mimeType,
			RawData:     record,
		})
	}
	return resources
}

func recordFields(record any) (string, map[string]any, error) {
	return recordKey(record, "name")
}

// recordKey extracts the identifying key from a raw record. A bare string
// record is the key itself; a record without the key falls back to its
// string representation; a record whose key is present but not a string is
// unreadable and gets dropped by the caller.
func recordKey(record any, key string) (string, map[string]any, error) {
	switch value := record.(type) {
	case string:
		return value, nil, nil
	case map[string]any:
		raw, present := value[key]
		if !present {
			return fmt.Sprint(value), value, nil
		}
		name, ok := raw.(string)
		if !ok {
			return "", nil, fmt.Errorf("%w: %s is %T, want string", errUnreadableRecord, key, raw)
		}
		return name, value, nil
	case nil:
		return "", nil, fmt.Errorf("%w: nil record", errUnreadableRecord)
	default:
		return fmt.Sprint(value), nil, nil
	}
}

func firstString(values ...any) string {
	for _, value := range values {
		if s, ok := value.(string); ok && s != "" {
			return s
		}
	}
	return ""
}
