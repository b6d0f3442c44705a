package session

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/moasq/tuimenu/internal/menu"
)

type fakeTerminal struct {
	bytes.Buffer
	width  int
	clears int
}

func (f *fakeTerminal) ClearScreen()              { f.WriteString("<clear>") }
func (f *fakeTerminal) ClearToEndOfScreen()       { f.clears++; f.WriteString("<ed>") }
func (f *fakeTerminal) MoveCursorTo(row, col int) { f.WriteString("<home>") }
func (f *fakeTerminal) SaveCursorPosition()       { f.WriteString("<save>") }
func (f *fakeTerminal) RestoreCursorPosition()    { f.WriteString("<restore>") }
func (f *fakeTerminal) Width() int                { return f.width }
func (f *fakeTerminal) Flush() error              { return nil }

// scriptedReader hands out queued answers; with an empty queue ReadLine
// blocks until Cancel.
type scriptedReader struct {
	answers   chan answer
	cancelled chan struct{}
	once      sync.Once
	prefix    string
	suffix    string
}

func newScriptedReader(answers ...answer) *scriptedReader {
	r := &scriptedReader{
		answers:   make(chan answer, len(answers)+1),
		cancelled: make(chan struct{}),
	}
	for _, a := range answers {
		r.answers <- a
	}
	return r
}

func (r *scriptedReader) Prefix() string { return r.prefix }
func (r *scriptedReader) Suffix() string { return r.suffix }

func (r *scriptedReader) ReadLine() (string, error) {
	select {
	case a := <-r.answers:
		return a.line, a.err
	case <-r.cancelled:
		return "", ErrInterrupted
	}
}

func (r *scriptedReader) Cancel() {
	r.once.Do(func() { close(r.cancelled) })
}

func (r *scriptedReader) wasCancelled() bool {
	select {
	case <-r.cancelled:
		return true
	default:
		return false
	}
}

func line(s string) answer { return answer{line: s} }

func fruits(t *testing.T, defaultTag string, timeout time.Duration) *menu.Definition {
	t.Helper()
	d, err := menu.New(menu.Options{Prompt: "> ", DefaultTag: defaultTag, Timeout: timeout}, "Apple,red,1|Banana,yellow,2")
	if err != nil {
		t.Fatalf("menu.New() error = %v", err)
	}
	return d
}

func run(t *testing.T, s *Session) Result {
	t.Helper()
	res, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	return res
}

func TestRunSelectsByLabel(t *testing.T) {
	term := &fakeTerminal{width: 80}
	s := New(fruits(t, "", 0), term, newScriptedReader(line("Banana")))

	res := run(t, s)
	if res.Outcome != OutcomeSelected || res.Item == nil || res.Item.Tag() != "2" {
		t.Fatalf("unexpected result %+v", res)
	}
	if res.TimedOut {
		t.Fatal("expected TimedOut = false")
	}
	if !strings.HasPrefix(term.String(), "<clear><home><ed>") {
		t.Fatalf("expected clear then redraw from home, got %q", term.String())
	}
}

func TestRunUnrecognisedAnswerReprompts(t *testing.T) {
	term := &fakeTerminal{width: 80}
	s := New(fruits(t, "", 0), term, newScriptedReader(line("doesnotexist"), line("Apple")))

	res := run(t, s)
	if res.Item == nil || res.Item.Label() != "Apple" {
		t.Fatalf("unexpected result %+v", res)
	}
	if s.Renders() < 2 || term.clears < 2 {
		t.Fatalf("expected at least 2 redraws, got %d renders, %d clears", s.Renders(), term.clears)
	}
	if !strings.Contains(term.String(), `Unknown choice "doesnotexist".`) {
		t.Fatalf("expected hint for unknown answer, got %q", term.String())
	}
}

func TestRunHintSuggestsClosestLabel(t *testing.T) {
	d, err := menu.New(menu.Options{Prompt: "> "}, "apple,Apple,1|banana,Banana,2")
	if err != nil {
		t.Fatalf("menu.New() error = %v", err)
	}
	term := &fakeTerminal{width: 80}
	s := New(d, term, newScriptedReader(line("bnn"), line("banana")))

	run(t, s)
	if !strings.Contains(term.String(), `Did you mean "banana"?`) {
		t.Fatalf("expected suggestion, got %q", term.String())
	}
}

func TestRunEmptyAnswerWithoutTimeoutReprompts(t *testing.T) {
	term := &fakeTerminal{width: 80}
	s := New(fruits(t, "1", 0), term, newScriptedReader(line(""), line("Banana")))

	res := run(t, s)
	if res.Item == nil || res.Item.Tag() != "2" {
		t.Fatalf("empty answer must not pick the default, got %+v", res)
	}
	if s.Renders() != 2 {
		t.Fatalf("renders = %d, want 2", s.Renders())
	}
}

func TestRunTimeoutFallsBackToDefault(t *testing.T) {
	reader := newScriptedReader()
	s := New(fruits(t, "1", 50*time.Millisecond), &fakeTerminal{width: 80}, reader)

	start := time.Now()
	res := run(t, s)
	elapsed := time.Since(start)

	if res.Outcome != OutcomeDefaulted || res.Item == nil || res.Item.Tag() != "1" {
		t.Fatalf("unexpected result %+v", res)
	}
	if !res.TimedOut {
		t.Fatal("expected TimedOut = true")
	}
	if elapsed < 50*time.Millisecond || elapsed > time.Second {
		t.Fatalf("resolved after %v, want about 50ms", elapsed)
	}
	if !reader.wasCancelled() {
		t.Fatal("expected the pending read to be cancelled")
	}
	if s.Renders() != 1 {
		t.Fatalf("renders = %d, timeout must not re-arm", s.Renders())
	}
}

func TestRunTimeoutWithoutDefaultCancels(t *testing.T) {
	s := New(fruits(t, "", 50*time.Millisecond), &fakeTerminal{width: 80}, newScriptedReader())

	res := run(t, s)
	if !res.Cancelled() || res.Item != nil || !res.TimedOut {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestRunEndOfInputCancelsEvenWithDefault(t *testing.T) {
	for _, err := range []error{io.EOF, ErrInterrupted} {
		s := New(fruits(t, "1", time.Hour), &fakeTerminal{width: 80}, newScriptedReader(answer{err: err}))
		res := run(t, s)
		if !res.Cancelled() || res.Item != nil || res.TimedOut {
			t.Fatalf("%v: unexpected result %+v", err, res)
		}
	}
}

func TestRunReturnsUnexpectedReadErrors(t *testing.T) {
	boom := errors.New("boom")
	s := New(fruits(t, "", 0), &fakeTerminal{width: 80}, newScriptedReader(answer{err: boom}))
	if _, err := s.Run(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("Run() error = %v, want %v", err, boom)
	}
}

func TestRunContextCancelAbandonsRead(t *testing.T) {
	reader := newScriptedReader()
	s := New(fruits(t, "", 0), &fakeTerminal{width: 80}, reader)

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(20*time.Millisecond, cancel)

	if _, err := s.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() error = %v, want context.Canceled", err)
	}
	if !reader.wasCancelled() {
		t.Fatal("expected the pending read to be cancelled")
	}
}

func TestRunRedrawKeepsTypedTextAroundCursor(t *testing.T) {
	reader := &scriptedReader{
		answers:   make(chan answer),
		cancelled: make(chan struct{}),
		prefix:    "Ban",
		suffix:    "ana",
	}
	redraw := make(chan struct{})
	term := &fakeTerminal{width: 80}
	s := New(fruits(t, "", 0), term, reader, WithRedraw(redraw))

	done := make(chan Result, 1)
	go func() {
		res, err := s.Run(context.Background())
		if err != nil {
			t.Errorf("Run() error = %v", err)
		}
		done <- res
	}()

	redraw <- struct{}{}
	reader.answers <- line("Banana")

	select {
	case res := <-done:
		if res.Item == nil || res.Item.Tag() != "2" {
			t.Fatalf("unexpected result %+v", res)
		}
	case <-time.After(time.Second):
		t.Fatal("session did not finish")
	}

	if s.Renders() != 2 {
		t.Fatalf("renders = %d, want 2", s.Renders())
	}
	out := term.String()
	if !strings.Contains(out, "> Ban<save>ana<restore>") {
		t.Fatalf("prompt not redrawn around cursor: %q", out)
	}
	// only the first draw precedes a fresh read
	if strings.Count(out, "<restore>\r") != 1 {
		t.Fatalf("expected one carriage return before the read, got %q", out)
	}
}

func TestRenderLaysOutGroupsThenPrompt(t *testing.T) {
	d, err := menu.New(menu.Options{Prompt: `\[\e[1m\]pick\[\e[0m\]: `}, "[Fruits]", "a,Apple,1")
	if err != nil {
		t.Fatalf("menu.New() error = %v", err)
	}
	term := &fakeTerminal{width: 80}
	s := New(d, term, newScriptedReader())
	if err := s.render(true); err != nil {
		t.Fatalf("render() error = %v", err)
	}
	want := "<home><ed>*Fruits*\n[a] Apple \n\n\033[1mpick\033[0m: <save><restore>\r"
	if term.String() != want {
		t.Fatalf("render() =\n%q\nwant\n%q", term.String(), want)
	}
}

func TestRunAmbiguousTextReprompts(t *testing.T) {
	d, err := menu.New(menu.Options{Prompt: "> "}, "a,Apple,1|b,Apple,2")
	if err != nil {
		t.Fatalf("menu.New() error = %v", err)
	}
	term := &fakeTerminal{width: 80}
	s := New(d, term, newScriptedReader(line("Apple"), line("b")))

	res := run(t, s)
	if res.Item == nil || res.Item.Tag() != "2" {
		t.Fatalf("unexpected result %+v", res)
	}
	if s.Renders() != 2 {
		t.Fatalf("renders = %d, want 2", s.Renders())
	}
}
