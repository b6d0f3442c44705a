// Package logging appends errors and opt-in JSON trace entries to a log file.
// The terminal is owned by the menu, so nothing here writes to stdout.
package logging

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

const defaultLogFile = "tuimenu.log"

var (
	mu           sync.Mutex
	traceEnabled bool
	logPath      = defaultLogFile
	logger       = newLogger(defaultLogFile, false)
)

// Entry is one decoded log line.
type Entry struct {
	Time    string          `json:"time"`
	Level   string          `json:"level"`
	Event   string          `json:"msg"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// appendFile opens path for every write, so no file appears until something
// is actually logged.
type appendFile struct {
	path string
}

func (a appendFile) Write(p []byte) (int, error) {
	f, err := os.OpenFile(a.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging failed: %v\n", err)
		return 0, err
	}
	defer f.Close()
	return f.Write(p)
}

func newLogger(path string, trace bool) *log.Logger {
	l := log.NewWithOptions(appendFile{path: path}, log.Options{
		Formatter:       log.JSONFormatter,
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339Nano,
		Level:           log.InfoLevel,
	})
	if trace {
		l.SetLevel(log.DebugLevel)
	}
	return l
}

// Configure sets the log destination. Empty values fall back to the default
// path. Missing directories are created.
func Configure(path string) {
	mu.Lock()
	defer mu.Unlock()
	logPath = defaultLogFile
	if strings.TrimSpace(path) != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "unable to create log directory: %v\n", err)
		} else {
			logPath = path
		}
	}
	logger = newLogger(logPath, traceEnabled)
}

// SetTraceEnabled toggles emission of trace entries.
func SetTraceEnabled(enabled bool) {
	mu.Lock()
	defer mu.Unlock()
	traceEnabled = enabled
	if enabled {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.InfoLevel)
	}
}

// TraceEnabled reports whether Trace writes anything.
func TraceEnabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return traceEnabled
}

func current() *log.Logger {
	mu.Lock()
	defer mu.Unlock()
	return logger
}

// Error appends err to the log file.
func Error(err error) {
	if err == nil {
		return
	}
	current().Error(err.Error())
}

// Trace appends a debug entry when tracing is enabled.
func Trace(event string, payload any) {
	if payload == nil {
		current().Debug(event)
		return
	}
	current().Debug(event, "payload", payload)
}
