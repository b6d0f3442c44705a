package terminal

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/chzyer/readline"
	"github.com/moasq/tuimenu/internal/session"
	"golang.org/x/term"
)

// cancelGrace bounds how long Cancel waits for readline to shut down.
const cancelGrace = 100 * time.Millisecond

// LineEditor implements session.LineReader on top of readline. The text being
// edited is mirrored through readline's change listener so Prefix and Suffix
// can be called while a read is in flight.
type LineEditor struct {
	rl *readline.Instance

	fd    int
	state *term.State // cooked stdin mode, restored on Cancel

	mu   sync.Mutex
	line []rune
	pos  int

	closeOnce sync.Once
	closeErr  error
}

// NewLineEditor reads from stdin and echoes to out with the given prompt.
// The prompt must already be rendered.
func NewLineEditor(prompt string, out io.Writer) (*LineEditor, error) {
	e := &LineEditor{fd: int(os.Stdin.Fd())}
	if term.IsTerminal(e.fd) {
		if st, err := term.GetState(e.fd); err == nil {
			e.state = st
		}
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:       prompt,
		Stdout:       out,
		Stderr:       out,
		HistoryLimit: -1,
		Listener:     readline.FuncListener(e.onChange),
	})
	if err != nil {
		return nil, fmt.Errorf("init line editor: %w", err)
	}
	e.rl = rl
	return e, nil
}

func (e *LineEditor) onChange(line []rune, pos int, _ rune) ([]rune, int, bool) {
	e.mu.Lock()
	e.line = append(e.line[:0], line...)
	e.pos = pos
	e.mu.Unlock()
	return nil, 0, false
}

// Prefix returns the typed text before the cursor.
func (e *LineEditor) Prefix() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return string(e.line[:e.cursor()])
}

// Suffix returns the typed text from the cursor to the end of the line.
func (e *LineEditor) Suffix() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return string(e.line[e.cursor():])
}

func (e *LineEditor) cursor() int {
	if e.pos < 0 {
		return 0
	}
	if e.pos > len(e.line) {
		return len(e.line)
	}
	return e.pos
}

// ReadLine reads one line. Ctrl+C maps to session.ErrInterrupted, Ctrl+D on an
// empty line and closed input to io.EOF.
func (e *LineEditor) ReadLine() (string, error) {
	line, err := e.rl.Readline()
	e.mu.Lock()
	e.line = e.line[:0]
	e.pos = 0
	e.mu.Unlock()
	return line, readError(err)
}

func readError(err error) error {
	if errors.Is(err, readline.ErrInterrupt) {
		return session.ErrInterrupted
	}
	return err
}

// Cancel closes readline, waiting at most cancelGrace, and puts stdin back
// into the mode it had before the editor was created.
func (e *LineEditor) Cancel() {
	done := make(chan struct{})
	go func() {
		e.Close()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(cancelGrace):
	}
	if e.state != nil {
		_ = term.Restore(e.fd, e.state)
	}
}

// Close releases readline. It is safe to call more than once.
func (e *LineEditor) Close() error {
	e.closeOnce.Do(func() {
		if e.rl != nil {
			e.closeErr = e.rl.Close()
		}
	})
	return e.closeErr
}
