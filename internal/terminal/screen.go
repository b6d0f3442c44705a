package terminal

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

const defaultWidth = 80

// Screen implements session.Terminal with ANSI sequences. Output is buffered
// until Flush.
type Screen struct {
	out    *bufio.Writer
	fd     int // -1 when the output is not a terminal
	getenv func(string) string
}

// NewScreen writes to f and asks f for its size when it is a terminal.
func NewScreen(f *os.File) *Screen {
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		fd = -1
	}
	return &Screen{out: bufio.NewWriter(f), fd: fd, getenv: os.Getenv}
}

// NewScreenWriter writes to w, which is never queried for its size.
func NewScreenWriter(w io.Writer) *Screen {
	return &Screen{out: bufio.NewWriter(w), fd: -1, getenv: os.Getenv}
}

func (s *Screen) Write(p []byte) (int, error) { return s.out.Write(p) }

// ClearScreen homes the cursor and clears the whole screen.
func (s *Screen) ClearScreen() { s.out.WriteString("\033[H\033[2J") }

// ClearToEndOfScreen clears from the cursor to the bottom of the screen.
func (s *Screen) ClearToEndOfScreen() { s.out.WriteString("\033[J") }

// MoveCursorTo moves to a zero-based row and column.
func (s *Screen) MoveCursorTo(row, col int) {
	fmt.Fprintf(s.out, "\033[%d;%dH", row+1, col+1)
}

func (s *Screen) SaveCursorPosition()    { s.out.WriteString("\0337") }
func (s *Screen) RestoreCursorPosition() { s.out.WriteString("\0338") }

// Width asks the terminal, then $COLUMNS, then falls back to 80.
func (s *Screen) Width() int {
	if s.fd >= 0 {
		if w, _, err := term.GetSize(s.fd); err == nil && w > 0 {
			return w
		}
	}
	if v := strings.TrimSpace(s.getenv("COLUMNS")); v != "" {
		if w, err := strconv.Atoi(v); err == nil && w > 0 {
			return w
		}
	}
	return defaultWidth
}

func (s *Screen) Flush() error { return s.out.Flush() }
