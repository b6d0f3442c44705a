package commands

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/moasq/tuimenu/internal/logging"
	"github.com/moasq/tuimenu/internal/menu"
	"github.com/moasq/tuimenu/internal/session"
)

func fruits(t *testing.T) *menu.Definition {
	t.Helper()
	d, err := menu.New(menu.Options{DefaultTag: "1"}, "[Fruits]", `a,\[\e[1m\]Apple\[\e[0m\],1|b,Banana,2`)
	if err != nil {
		t.Fatalf("menu.New() error = %v", err)
	}
	return d
}

func TestWriteResultFormats(t *testing.T) {
	d := fruits(t)
	item, err := d.FindItemByLabel("a")
	if err != nil {
		t.Fatalf("FindItemByLabel() error = %v", err)
	}
	res := session.Result{Item: item, Outcome: session.OutcomeDefaulted, TimedOut: true}

	cases := map[string]string{
		"tag":   "1\n",
		"label": "a\n",
		"text":  "Apple\n",
		"json":  `{"tag":"1","label":"a","text":"Apple","outcome":"defaulted","timed_out":true}` + "\n",
	}
	for format, want := range cases {
		var buf bytes.Buffer
		if err := writeResult(&buf, format, res); err != nil {
			t.Fatalf("writeResult(%s) error = %v", format, err)
		}
		if buf.String() != want {
			t.Fatalf("writeResult(%s) = %q, want %q", format, buf.String(), want)
		}
	}
}

func TestWriteResultCancelled(t *testing.T) {
	var buf bytes.Buffer
	err := writeResult(&buf, "tag", session.Result{Outcome: session.OutcomeCancelled})
	if !errors.Is(err, ErrCancelled) {
		t.Fatalf("expected ErrCancelled, got %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("nothing should be printed, got %q", buf.String())
	}
}

func TestExitCode(t *testing.T) {
	if got := ExitCode(nil); got != ExitOK {
		t.Fatalf("ExitCode(nil) = %d", got)
	}
	if got := ExitCode(fmt.Errorf("run: %w", ErrCancelled)); got != ExitCancelled {
		t.Fatalf("ExitCode(cancelled) = %d", got)
	}
	if got := ExitCode(&menu.DuplicateError{Field: "tag", Value: "1"}); got != ExitError {
		t.Fatalf("ExitCode(duplicate) = %d", got)
	}
}

func TestSummary(t *testing.T) {
	got := summary(fruits(t))
	if got != "2 items in 1 groups, default 1" {
		t.Fatalf("summary() = %q", got)
	}
}

func TestCheckCommandPrintsLayout(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"check", "--width", "40", "[Fruits]", "a,Apple,1|b,Banana,2"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	if err := Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	want := "*Fruits*\n[a] Apple  [b] Banana \n\n"
	if out.String() != want {
		t.Fatalf("output = %q, want %q", out.String(), want)
	}
	if strings.Contains(out.String(), "items in") {
		t.Fatal("summary belongs on stderr")
	}
}

func TestReportErrorAlwaysLogs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuimenu.log")
	logging.Configure(path)
	logging.SetTraceEnabled(false)
	t.Cleanup(func() { logging.Configure("") })

	ReportError(&menu.DuplicateError{Field: "tag", Value: "1"})
	ReportError(nil)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if strings.Count(string(data), "duplicate usage of tag (1)") != 1 {
		t.Fatalf("unexpected log contents %q", data)
	}
}
