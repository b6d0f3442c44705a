// Package session runs one interactive selection: it draws a menu, reads a
// line with an optional timeout and resolves the answer to an item.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/moasq/tuimenu/internal/logging"
	"github.com/moasq/tuimenu/internal/markup"
	"github.com/moasq/tuimenu/internal/menu"
)

// Outcome tells how a session ended.
type Outcome int

const (
	OutcomeCancelled Outcome = iota
	OutcomeSelected
	OutcomeDefaulted
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSelected:
		return "selected"
	case OutcomeDefaulted:
		return "defaulted"
	}
	return "cancelled"
}

// Result is the outcome of Run. Item is nil exactly when the session was
// cancelled.
type Result struct {
	Item     *menu.Item
	Outcome  Outcome
	TimedOut bool
}

// Cancelled reports whether no item was chosen.
func (r Result) Cancelled() bool { return r.Outcome == OutcomeCancelled }

// Option configures a Session.
type Option func(*Session)

// WithRedraw makes the session redraw the menu whenever a value arrives on
// ch while it waits for input, typically on terminal resize.
func WithRedraw(ch <-chan struct{}) Option {
	return func(s *Session) { s.redraw = ch }
}

// Session is a single interactive run over a Definition. It is not reusable.
type Session struct {
	def    *menu.Definition
	term   Terminal
	reader LineReader
	redraw <-chan struct{}

	unknown string // last answer that matched no label
	renders int
}

// New creates a session. The definition is only read.
func New(def *menu.Definition, term Terminal, reader LineReader, opts ...Option) *Session {
	s := &Session{def: def, term: term, reader: reader}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Renders returns how many times the menu has been drawn.
func (s *Session) Renders() int { return s.renders }

type answer struct {
	line string
	err  error
}

// Run draws the menu and prompts until an item is chosen, the timeout fires,
// input ends or ctx is cancelled. Unrecognised and empty answers re-prompt.
func (s *Session) Run(ctx context.Context) (Result, error) {
	s.term.ClearScreen()
	for {
		if err := s.render(true); err != nil {
			return Result{}, err
		}

		a, timedOut, err := s.await(ctx)
		if err != nil {
			return Result{}, err
		}
		if timedOut {
			return s.finish(s.timedOut())
		}
		if a.err != nil {
			if errors.Is(a.err, io.EOF) || errors.Is(a.err, ErrInterrupted) {
				return s.finish(Result{Outcome: OutcomeCancelled}, nil)
			}
			return Result{}, fmt.Errorf("read answer: %w", a.err)
		}

		logging.Trace("session.answer", map[string]any{"answer": a.line})
		if a.line == "" {
			s.unknown = ""
			continue
		}
		item, err := s.def.FindItemByLabel(a.line)
		if errors.Is(err, menu.ErrNotFound) {
			s.unknown = a.line
			continue
		}
		if err != nil {
			return Result{}, err
		}
		return s.finish(Result{Item: item, Outcome: OutcomeSelected}, nil)
	}
}

// await starts one background read and waits for it, the timeout, a redraw
// request or ctx. An abandoned read sends into a buffered channel nobody
// drains, so its goroutine still exits if the read ever returns.
func (s *Session) await(ctx context.Context) (answer, bool, error) {
	answers := make(chan answer, 1)
	go func() {
		line, err := s.reader.ReadLine()
		answers <- answer{line: line, err: err}
	}()

	var timeout <-chan time.Time
	if d := s.def.Timeout(); d > 0 {
		timer := time.NewTimer(d)
		defer timer.Stop()
		timeout = timer.C
	}

	for {
		select {
		case a := <-answers:
			return a, false, nil
		case <-timeout:
			logging.Trace("session.timeout", map[string]any{"timeout": s.def.Timeout().String()})
			s.abandon()
			return answer{}, true, nil
		case <-s.redraw:
			if err := s.render(false); err != nil {
				s.abandon()
				return answer{}, false, err
			}
		case <-ctx.Done():
			s.abandon()
			return answer{}, false, ctx.Err()
		}
	}
}

// abandon cancels the pending read and moves to a fresh line.
func (s *Session) abandon() {
	s.reader.Cancel()
	io.WriteString(s.term, "\n")
	s.term.Flush()
}

func (s *Session) timedOut() (Result, error) {
	tag, ok := s.def.DefaultTag()
	if !ok {
		return Result{Outcome: OutcomeCancelled, TimedOut: true}, nil
	}
	item, err := s.def.FindItemByTag(tag)
	if err != nil {
		return Result{}, fmt.Errorf("resolve default: %w", err)
	}
	return Result{Item: item, Outcome: OutcomeDefaulted, TimedOut: true}, nil
}

func (s *Session) finish(r Result, err error) (Result, error) {
	if err != nil {
		return r, err
	}
	payload := map[string]any{"outcome": r.Outcome.String(), "timedOut": r.TimedOut, "renders": s.renders}
	if r.Item != nil {
		payload["tag"] = r.Item.Tag()
	}
	logging.Trace("session.result", payload)
	return r, nil
}

// render draws every group, the hint line and the prompt with the text typed
// so far. The cursor is left after the prefix, not after the suffix, so the
// line editor keeps its position. fresh returns to column 0 because the line
// editor prints its own prompt when a new read starts.
func (s *Session) render(fresh bool) error {
	s.renders++
	t := s.term
	t.MoveCursorTo(0, 0)
	t.ClearToEndOfScreen()

	width := t.Width()
	for _, g := range s.def.Groups() {
		if err := g.Render(t, width); err != nil {
			return fmt.Errorf("render group: %w", err)
		}
	}
	if s.unknown != "" {
		io.WriteString(t, s.hint()+"\n")
	}

	io.WriteString(t, markup.Render(s.def.Prompt()))
	io.WriteString(t, s.reader.Prefix())
	t.SaveCursorPosition()
	io.WriteString(t, s.reader.Suffix())
	t.RestoreCursorPosition()
	if fresh {
		io.WriteString(t, "\r")
	}

	logging.Trace("session.render", map[string]any{"renders": s.renders, "width": width})
	if err := t.Flush(); err != nil {
		return fmt.Errorf("flush terminal: %w", err)
	}
	return nil
}

// hint describes the last unrecognised answer and the closest label.
func (s *Session) hint() string {
	msg := fmt.Sprintf("Unknown choice %q.", s.unknown)
	ranks := fuzzy.RankFindFold(s.unknown, s.def.Labels())
	if len(ranks) > 0 {
		sort.Sort(ranks)
		msg += fmt.Sprintf(" Did you mean %q?", ranks[0].Target)
	}
	return msg
}
