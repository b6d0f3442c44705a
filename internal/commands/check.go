package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/moasq/tuimenu/internal/menu"
	"github.com/moasq/tuimenu/internal/terminal"
	"github.com/spf13/cobra"
)

var checkWidth int

var checkCmd = &cobra.Command{
	Use:   "check [flags] ENTRY...",
	Short: "Validate a menu definition and print its layout",
	Long:  "Parse the definition exactly as tuimenu would, then print the menu laid out for the terminal width without prompting.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd, args)
		if err != nil {
			return err
		}
		def, err := cfg.Definition()
		if err != nil {
			return err
		}

		width := checkWidth
		if width <= 0 {
			width = terminal.NewScreen(os.Stdout).Width()
		}
		if err := renderCheck(cmd.OutOrStdout(), def, width); err != nil {
			return err
		}
		terminal.Success(summary(def))
		return nil
	},
}

func init() {
	checkCmd.Flags().IntVarP(&checkWidth, "width", "w", 0, "layout width (default: terminal width)")
}

func renderCheck(w io.Writer, def *menu.Definition, width int) error {
	for _, g := range def.Groups() {
		if err := g.Render(w, width); err != nil {
			return fmt.Errorf("render group: %w", err)
		}
	}
	return nil
}

func summary(def *menu.Definition) string {
	s := fmt.Sprintf("%d items in %d groups", len(def.Items()), len(def.Groups()))
	if tag, ok := def.DefaultTag(); ok {
		s += fmt.Sprintf(", default %s", tag)
	}
	if d := def.Timeout(); d > 0 {
		s += fmt.Sprintf(", timeout %s", d)
	}
	return s
}
