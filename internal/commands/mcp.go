package commands

import (
	"github.com/moasq/tuimenu/internal/menuserver"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:    "mcp",
	Short:  "Run the menu MCP server",
	Long:   "Starts the menu MCP server over stdio. Agents use it to validate, lay out and query menu definitions before running tuimenu.",
	Hidden: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return menuserver.Run(cmd.Context(), Version)
	},
}
