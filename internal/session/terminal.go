package session

import (
	"errors"
	"io"
)

// Terminal is the output side of a session. Control methods may buffer; any
// write error surfaces from Flush.
type Terminal interface {
	io.Writer
	ClearScreen()
	ClearToEndOfScreen()
	MoveCursorTo(row, col int)
	SaveCursorPosition()
	RestoreCursorPosition()
	// Width returns the screen width in cells, falling back to 80.
	Width() int
	Flush() error
}

// LineReader is the input side of a session.
type LineReader interface {
	// Prefix and Suffix return the text before and after the edit cursor of
	// the line currently being typed.
	Prefix() string
	Suffix() string

	// ReadLine blocks until a line is entered. It returns io.EOF at end of
	// input and ErrInterrupted when the user aborts the line.
	ReadLine() (string, error)

	// Cancel abandons an in-flight ReadLine and restores the terminal input
	// mode. It must not block for long; the pending ReadLine may return later
	// or never.
	Cancel()
}

// ErrInterrupted is returned by a LineReader when the user aborts input,
// for example with Ctrl+C.
var ErrInterrupted = errors.New("input interrupted")
