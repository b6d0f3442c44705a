package menu

import (
	"io"
	"strings"

	"github.com/moasq/tuimenu/internal/markup"
)

// decorationWidth is the width of the "[" "] " wrapped around each label.
const decorationWidth = 3

// Item is one selectable entry. Items are created by a Group and never change.
type Item struct {
	tag        string
	label      string
	text       string
	labelWidth int
	textWidth  int
}

func newItem(tag, label, text string) *Item {
	return &Item{
		tag:        tag,
		label:      label,
		text:       text,
		labelWidth: markup.VisibleWidth(label),
		textWidth:  markup.VisibleWidth(text),
	}
}

// Tag returns the identifier callers use programmatically.
func (i *Item) Tag() string { return i.tag }

// Label returns the string the user types to pick this item.
func (i *Item) Label() string { return i.label }

// Text returns the description shown next to the label.
func (i *Item) Text() string { return i.text }

// LabelWidth returns the on-screen width of the label.
func (i *Item) LabelWidth() int { return i.labelWidth }

// TextWidth returns the on-screen width of the text.
func (i *Item) TextWidth() int { return i.textWidth }

func (i *Item) String() string {
	return "{tag:" + i.tag + ",label:" + i.label + ",text:" + i.text + "}"
}

// writeCell writes the item as one aligned cell: label right-aligned inside
// brackets, text left-aligned and padded.
func (i *Item) writeCell(w io.Writer, maxLabel, maxText int) error {
	var b strings.Builder
	b.WriteString(pad(maxLabel - i.labelWidth))
	b.WriteString("[")
	b.WriteString(markup.Render(i.label))
	b.WriteString("] ")
	b.WriteString(markup.Render(i.text))
	b.WriteString(pad(maxText - i.textWidth))
	_, err := io.WriteString(w, b.String())
	return err
}

func pad(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(" ", n)
}
