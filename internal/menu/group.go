package menu

import (
	"bufio"
	"io"

	"github.com/moasq/tuimenu/internal/markup"
)

// Group is an ordered cluster of items rendered together as a column block.
// Insertion order decides render order.
type Group struct {
	heading       string
	items         []*Item
	maxLabelWidth int
	maxTextWidth  int
}

// NewGroup creates an empty group. An empty heading renders no title line.
func NewGroup(heading string) *Group {
	return &Group{heading: heading}
}

// Heading returns the group title, possibly empty.
func (g *Group) Heading() string { return g.heading }

// Items returns the items in insertion order. The slice must not be modified.
func (g *Group) Items() []*Item { return g.items }

// MaxLabelWidth returns the widest label seen so far.
func (g *Group) MaxLabelWidth() int { return g.maxLabelWidth }

// MaxTextWidth returns the widest text seen so far.
func (g *Group) MaxTextWidth() int { return g.maxTextWidth }

// AddItem appends a new item. Uniqueness is checked by the Definition, not here.
func (g *Group) AddItem(tag, label, text string) *Item {
	item := newItem(tag, label, text)
	g.items = append(g.items, item)
	if item.labelWidth > g.maxLabelWidth {
		g.maxLabelWidth = item.labelWidth
	}
	if item.textWidth > g.maxTextWidth {
		g.maxTextWidth = item.textWidth
	}
	return item
}

// FindByLabel returns the first item whose visible label equals label, or nil.
func (g *Group) FindByLabel(label string) *Item {
	for _, item := range g.items {
		if item.label == label || markup.Strip(item.label) == label {
			return item
		}
	}
	return nil
}

// FindByTag returns the first item whose visible tag equals tag, or nil.
func (g *Group) FindByTag(tag string) *Item {
	for _, item := range g.items {
		if item.tag == tag || markup.Strip(item.tag) == tag {
			return item
		}
	}
	return nil
}

func (g *Group) findAllByText(text string) []*Item {
	var found []*Item
	for _, item := range g.items {
		if item.text == text || markup.Strip(item.text) == text {
			found = append(found, item)
		}
	}
	return found
}

// ColumnWidth is the width of one cell including the separator space.
func (g *Group) ColumnWidth() int {
	return g.maxLabelWidth + g.maxTextWidth + decorationWidth + 1
}

// Columns returns how many cells fit next to each other in screenWidth.
func (g *Group) Columns(screenWidth int) int {
	cols := screenWidth / g.ColumnWidth()
	if cols < 1 {
		return 1
	}
	return cols
}

// Render writes the heading and the items laid out row-major in as many
// columns as fit screenWidth, followed by a blank line.
func (g *Group) Render(w io.Writer, screenWidth int) error {
	bw := bufio.NewWriter(w)
	if g.heading != "" {
		bw.WriteString("*" + markup.Render(g.heading) + "*\n")
	}
	cols := g.Columns(screenWidth)
	n := 0
	for _, item := range g.items {
		if err := item.writeCell(bw, g.maxLabelWidth, g.maxTextWidth); err != nil {
			return err
		}
		n++
		if n%cols == 0 {
			bw.WriteString("\n")
		} else {
			bw.WriteString(" ")
		}
	}
	if n%cols != 0 {
		bw.WriteString("\n")
	}
	bw.WriteString("\n")
	return bw.Flush()
}

func (g *Group) String() string {
	s := "["
	for i, item := range g.items {
		if i > 0 {
			s += ","
		}
		s += item.String()
	}
	return s + "]"
}
