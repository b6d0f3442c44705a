package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/moasq/tuimenu/internal/logging"
	"github.com/moasq/tuimenu/internal/markup"
	"github.com/moasq/tuimenu/internal/session"
	"github.com/moasq/tuimenu/internal/terminal"
	"github.com/spf13/cobra"
)

// runSelect draws the menu on stderr, waits for a choice and prints it on
// stdout.
func runSelect(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	def, err := cfg.Definition()
	if err != nil {
		return err
	}

	logging.Trace("app.start", map[string]any{
		"version": Version,
		"items":   len(def.Items()),
		"timeout": def.Timeout().String(),
		"output":  cfg.Output,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	editor, err := terminal.NewLineEditor(markup.Render(def.Prompt()), os.Stderr)
	if err != nil {
		return err
	}
	// Cancel rather than Close: a read stuck in readline must not block exit.
	defer editor.Cancel()

	s := session.New(def, terminal.NewScreen(os.Stderr), editor,
		session.WithRedraw(terminal.ResizeEvents(ctx)))
	res, err := s.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return ErrCancelled
	}
	if err != nil {
		return fmt.Errorf("menu: %w", err)
	}
	if res.Cancelled() {
		return ErrCancelled
	}
	return writeResult(cmd.OutOrStdout(), cfg.Output, res)
}
