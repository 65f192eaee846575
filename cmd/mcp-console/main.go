package main

import (
	"fmt"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/mcpconsole/mcp-console/internal/app"
)

func main() {
	var cli app.CLI
	ctx := kong.Parse(&cli,
		kong.Name("mcp-console"),
		kong.Description(fmt.Sprintf(
			"Protocol-compliance console for MCP servers (transports: %s)",
			strings.Join(app.SupportedTransports(), ", "))),
		kong.UsageOnError(),
		kong.Vars{"version": app.GetVersion()},
	)

	ctx.FatalIfErrorf(app.Run(&cli))
}
