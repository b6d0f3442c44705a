// Package menuserver exposes menu validation and layout as MCP tools, so an
// agent can check a definition before handing it to tuimenu.
package menuserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Run starts the menu MCP server over stdio.
// It blocks until the client disconnects or the context is cancelled.
func Run(ctx context.Context, version string) error {
	return newServer(version).Run(ctx, &mcp.StdioTransport{})
}

func newServer(version string) *mcp.Server {
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "tuimenu",
			Version: version,
		},
		nil,
	)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "validate_menu",
		Description: "Parse a menu definition and report its groups and items, or why it is invalid. Entries use the tuimenu syntax: \"[Heading]\" opens a group, other entries hold items separated by | with elements separated by , (label,text,tag by default). Example: validate_menu(entries: [\"[Fruits]\", \"a,Apple,1|b,Banana,2\"], default_tag: \"1\")",
	}, handleValidateMenu)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "render_menu",
		Description: "Lay out a menu definition the way tuimenu draws it, for a terminal of the given width (80 when omitted). Markup and escape sequences are removed from the returned text.",
	}, handleRenderMenu)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "find_item",
		Description: "Look up one item of a menu definition by label (what the user types) or by tag (what tuimenu prints). Exactly one of label and tag must be given.",
	}, handleFindItem)

	return server
}
