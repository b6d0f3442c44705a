// Package menu parses and validates menu definitions.
//
// A definition is a sequence of entries. An entry wrapped in brackets, such
// as "[Fruits]", opens a named group; any other entry holds one or more items
// separated by the item delimiter, each made of three elements (label, text
// and tag by default) separated by the element delimiter:
//
//	"[Fruits]" "a,Apple,1|b,Banana,2" "[Veg]" "c,Carrot,3"
//
// Tags and labels must be unique across the whole definition.
package menu

import (
	"strings"
	"time"

	"github.com/moasq/tuimenu/internal/markup"
)

// Definition is a parsed, validated menu. It is immutable once returned by
// New or Build.
type Definition struct {
	opts   Options
	groups []*Group
	tags   map[string]struct{}
	labels map[string]struct{}
}

// GroupSpec describes a group for Build.
type GroupSpec struct {
	Heading string
	Items   []ItemSpec
}

// ItemSpec describes an item for Build.
type ItemSpec struct {
	Tag   string
	Label string
	Text  string
}

// New parses entries into a Definition. A single string is a one-entry
// definition. On error no Definition is returned.
func New(opts Options, entries ...string) (*Definition, error) {
	opts, err := opts.withDefaults()
	if err != nil {
		return nil, err
	}
	d := newDefinition(opts)

	var open *Group // named group still accepting entries
	for _, entry := range entries {
		if heading, ok := groupHeading(entry); ok {
			open = d.newGroup(heading)
			continue
		}
		g := open
		if g == nil {
			g = d.newGroup("")
		}
		for _, chunk := range strings.Split(entry, opts.ItemDelimiter) {
			spec, err := d.parseChunk(chunk)
			if err != nil {
				return nil, err
			}
			if err := d.addItem(g, spec); err != nil {
				return nil, err
			}
		}
	}

	if err := d.finish(strings.Join(entries, " ")); err != nil {
		return nil, err
	}
	return d, nil
}

// Build creates a Definition from already structured groups, applying the
// same uniqueness and default tag checks as New.
func Build(opts Options, groups []GroupSpec) (*Definition, error) {
	opts, err := opts.withDefaults()
	if err != nil {
		return nil, err
	}
	d := newDefinition(opts)

	var args []string
	for _, spec := range groups {
		g := d.newGroup(spec.Heading)
		for _, item := range spec.Items {
			if err := d.addItem(g, item); err != nil {
				return nil, err
			}
			args = append(args, item.Tag)
		}
	}

	if err := d.finish(strings.Join(args, " ")); err != nil {
		return nil, err
	}
	return d, nil
}

func newDefinition(opts Options) *Definition {
	return &Definition{
		opts:   opts,
		tags:   make(map[string]struct{}),
		labels: make(map[string]struct{}),
	}
}

// groupHeading reports whether entry is a "[heading]" group marker.
func groupHeading(entry string) (string, bool) {
	if len(entry) < 2 || !strings.HasPrefix(entry, "[") || !strings.HasSuffix(entry, "]") {
		return "", false
	}
	return entry[1 : len(entry)-1], true
}

func (d *Definition) newGroup(heading string) *Group {
	g := NewGroup(heading)
	d.groups = append(d.groups, g)
	return g
}

func (d *Definition) parseChunk(chunk string) (ItemSpec, error) {
	elems := strings.Split(chunk, d.opts.ElementDelimiter)
	if len(elems) != len(d.opts.FieldOrder) {
		return ItemSpec{}, &FieldCountError{Chunk: chunk, Delimiter: d.opts.ElementDelimiter, Got: len(elems)}
	}
	var spec ItemSpec
	for i, f := range d.opts.FieldOrder {
		switch f {
		case FieldLabel:
			spec.Label = elems[i]
		case FieldText:
			spec.Text = elems[i]
		case FieldTag:
			spec.Tag = elems[i]
		}
	}
	return spec, nil
}

// addItem appends the item to g and registers its label and tag. Values are
// compared as they appear on screen, so two labels differing only in markup
// collide.
func (d *Definition) addItem(g *Group, spec ItemSpec) error {
	g.AddItem(spec.Tag, spec.Label, spec.Text)
	if err := register(d.labels, "label", spec.Label); err != nil {
		return err
	}
	return register(d.tags, "tag", spec.Tag)
}

func register(set map[string]struct{}, field, value string) error {
	key := markup.Strip(value)
	if _, dup := set[key]; dup {
		return &DuplicateError{Field: field, Value: value}
	}
	set[key] = struct{}{}
	return nil
}

// finish runs the checks that need the complete item set. args is the raw
// definition text quoted in error messages.
func (d *Definition) finish(args string) error {
	if len(d.tags) == 0 {
		return ErrNoItems
	}
	if d.opts.DefaultTag == "" {
		return nil
	}
	if _, ok := d.tags[markup.Strip(d.opts.DefaultTag)]; !ok {
		return &MissingDefaultError{Tag: d.opts.DefaultTag, Args: args}
	}
	return nil
}

// Groups returns the groups in document order. The slice must not be modified.
func (d *Definition) Groups() []*Group { return d.groups }

// Prompt returns the prompt text, possibly containing markup.
func (d *Definition) Prompt() string { return d.opts.Prompt }

// DefaultTag returns the configured default tag, if any.
func (d *Definition) DefaultTag() (string, bool) {
	return d.opts.DefaultTag, d.opts.DefaultTag != ""
}

// Timeout returns the prompt timeout; zero means wait indefinitely.
func (d *Definition) Timeout() time.Duration { return d.opts.Timeout }

// Items returns every item in document order.
func (d *Definition) Items() []*Item {
	var items []*Item
	for _, g := range d.groups {
		items = append(items, g.items...)
	}
	return items
}

// Labels returns the visible label of every item in document order.
func (d *Definition) Labels() []string {
	items := d.Items()
	labels := make([]string, len(items))
	for i, item := range items {
		labels[i] = markup.Strip(item.Label())
	}
	return labels
}

// FindItemByLabel returns the item with the given label. When no label
// matches, an item whose visible text equals label is returned, provided it
// is the only one, so typing "Apple" picks "a,Apple,1". Labels always win
// over texts.
func (d *Definition) FindItemByLabel(label string) (*Item, error) {
	for _, g := range d.groups {
		if item := g.FindByLabel(label); item != nil {
			return item, nil
		}
	}
	var match *Item
	for _, g := range d.groups {
		for _, item := range g.findAllByText(label) {
			if match != nil {
				return nil, &NotFoundError{Field: "label", Value: label}
			}
			match = item
		}
	}
	if match != nil {
		return match, nil
	}
	return nil, &NotFoundError{Field: "label", Value: label}
}

// FindItemByTag returns the item with the given tag.
func (d *Definition) FindItemByTag(tag string) (*Item, error) {
	for _, g := range d.groups {
		if item := g.FindByTag(tag); item != nil {
			return item, nil
		}
	}
	return nil, &NotFoundError{Field: "tag", Value: tag}
}

func (d *Definition) String() string {
	parts := make([]string, len(d.groups))
	for i, g := range d.groups {
		parts[i] = g.String()
	}
	return "[" + strings.Join(parts, ",") + "]"
}
