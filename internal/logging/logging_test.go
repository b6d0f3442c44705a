package logging

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func useLogFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "trace.log")
	Configure(path)
	t.Cleanup(func() {
		Configure("")
		SetTraceEnabled(false)
	})
	return path
}

func TestTraceDisabledWritesNothing(t *testing.T) {
	path := useLogFile(t)
	SetTraceEnabled(false)
	Trace("session.render", map[string]int{"groups": 1})
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected no log file, stat error = %v", err)
	}
}

func TestTraceWritesJSONLines(t *testing.T) {
	path := useLogFile(t)
	SetTraceEnabled(true)
	Trace("session.answer", map[string]string{"answer": "a"})
	Trace("session.result", nil)

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open log: %v", err)
	}
	defer f.Close()

	var entries []Entry
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var e Entry
		if err := json.Unmarshal(sc.Bytes(), &e); err != nil {
			t.Fatalf("invalid JSON line %q: %v", sc.Text(), err)
		}
		entries = append(entries, e)
	}
	if len(entries) != 2 || entries[0].Event != "session.answer" || entries[1].Event != "session.result" {
		t.Fatalf("unexpected entries %+v", entries)
	}
	if entries[0].Level != "debug" || entries[0].Time == "" {
		t.Fatalf("expected timestamped debug entry, got %+v", entries[0])
	}
	var payload map[string]string
	if err := json.Unmarshal(entries[0].Payload, &payload); err != nil || payload["answer"] != "a" {
		t.Fatalf("payload = %s, %v", entries[0].Payload, err)
	}
}

func TestErrorAlwaysAppends(t *testing.T) {
	path := useLogFile(t)
	Error(errors.New("boom"))
	Error(nil)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if strings.Count(string(data), "boom") != 1 {
		t.Fatalf("unexpected log contents %q", data)
	}
	var e Entry
	if err := json.Unmarshal(bytes.TrimSpace(data), &e); err != nil || e.Level != "error" {
		t.Fatalf("expected one JSON error entry, got %q (%v)", data, err)
	}
}
