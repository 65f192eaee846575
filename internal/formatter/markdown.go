package formatter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"text/template"
)

const markdownTemplate = `# {{with .Server}}{{if .Name}}{{.Name}}{{else}}MCP Server{{end}}{{end}}

{{with .Server -}}
{{if .Version}}**Version:** {{.Version}}
{{end -}}
{{if .ProtocolVersion}}**Protocol:** {{.ProtocolVersion}}
{{end -}}
{{end}}
## Tools ({{len .Tools}})
{{range .Tools}}
### {{.Name}}

{{if .Description}}{{.Description}}{{else}}_No description provided._{{end}}
{{if .InputSchema}}
` + "```json\n{{jsonIndent .InputSchema}}\n```" + `
{{end}}{{end}}
## Prompts ({{len .Prompts}})
{{range .Prompts}}
### {{.Name}}

{{if .Description}}{{.Description}}{{else}}_No description provided._{{end}}
{{end}}
## Resources ({{len .Resources}})
{{range .Resources}}
### {{if .Name}}{{.Name}}{{else}}{{.URI}}{{end}}

- **URI:** ` + "`{{.URI}}`" + `
{{if .MimeType}}- **MIME type:** {{.MimeType}}
{{end}}{{if .Description}}
{{.Description}}
{{end}}{{end}}
{{- if .ToolCalls}}
## Tool Calls
{{range .ToolCalls}}
### {{.ToolName}}

- **Success:** {{.Success}}
- **Elapsed:** {{printf "%.3fs" .ElapsedSeconds}}
{{if .Error}}- **Error:** {{.Error}}
{{end}}{{if .Result}}
` + "```json\n{{jsonIndent .Result}}\n```" + `
{{end}}{{end}}
{{- end}}
`

// FormatMarkdown renders the report as a markdown document.
func FormatMarkdown(report *Report) (string, error) {
	tmpl, err := template.New("report").Funcs(template.FuncMap{
		"jsonIndent": jsonIndent,
	}).Parse(markdownTemplate)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, report); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

func jsonIndent(v any) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}
