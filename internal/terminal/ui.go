package terminal

import (
	"fmt"
	"io"
	"os"
)

// Colors for terminal output.
const (
	Reset  = "\033[0m"
	Bold   = "\033[1m"
	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
)

// Messages go to stderr: stdout carries the selection result.
var messages io.Writer = os.Stderr

// Success prints a green success message.
func Success(msg string) {
	fmt.Fprintf(messages, "%s%s✓%s %s\n", Bold, Green, Reset, msg)
}

// Error prints a red error message.
func Error(msg string) {
	fmt.Fprintf(messages, "%s%s✗%s %s\n", Bold, Red, Reset, msg)
}

// Warning prints a yellow warning message.
func Warning(msg string) {
	fmt.Fprintf(messages, "%s%s!%s %s\n", Bold, Yellow, Reset, msg)
}
