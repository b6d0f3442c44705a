package menuserver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/moasq/tuimenu/internal/menu"
)

const defaultWidth = 80

// menuInput is the definition shared by every tool.
type menuInput struct {
	Entries          []string `json:"entries" jsonschema:"Definition entries e.g. [\"[Fruits]\", \"a,Apple,1|b,Banana,2\"]"`
	Format           string   `json:"format,omitempty" jsonschema:"Element order inside an item, default label,text,tag"`
	ItemDelimiter    string   `json:"item_delimiter,omitempty" jsonschema:"Separator between items of one entry, default |"`
	ElementDelimiter string   `json:"element_delimiter,omitempty" jsonschema:"Separator between the elements of an item, default ,"`
	DefaultTag       string   `json:"default_tag,omitempty" jsonschema:"Tag chosen when the prompt times out; must exist"`
}

func (in menuInput) definition() (*menu.Definition, error) {
	opts := menu.Options{
		DefaultTag:       in.DefaultTag,
		ItemDelimiter:    in.ItemDelimiter,
		ElementDelimiter: in.ElementDelimiter,
	}
	if strings.TrimSpace(in.Format) != "" {
		order, err := menu.ParseFieldOrder(in.Format)
		if err != nil {
			return nil, err
		}
		opts.FieldOrder = order
	}
	return menu.New(opts, in.Entries...)
}

type itemView struct {
	Tag   string `json:"tag"`
	Label string `json:"label"`
	Text  string `json:"text"`
	Group string `json:"group,omitempty"`
}

type groupView struct {
	Heading string     `json:"heading,omitempty"`
	Items   []itemView `json:"items"`
}

type validateOutput struct {
	Valid  bool        `json:"valid"`
	Error  string      `json:"error,omitempty"`
	Groups []groupView `json:"groups,omitempty"`
}

func handleValidateMenu(ctx context.Context, req *mcp.CallToolRequest, input menuInput) (*mcp.CallToolResult, validateOutput, error) {
	d, err := input.definition()
	if err != nil {
		// An invalid definition is an answer, not a tool failure.
		return nil, validateOutput{Error: err.Error()}, nil
	}

	out := validateOutput{Valid: true}
	for _, g := range d.Groups() {
		view := groupView{Heading: g.Heading(), Items: []itemView{}}
		for _, item := range g.Items() {
			view.Items = append(view.Items, itemView{Tag: item.Tag(), Label: item.Label(), Text: item.Text()})
		}
		out.Groups = append(out.Groups, view)
	}
	return nil, out, nil
}

type renderInput struct {
	Entries          []string `json:"entries" jsonschema:"Definition entries"`
	Format           string   `json:"format,omitempty" jsonschema:"Element order inside an item, default label,text,tag"`
	ItemDelimiter    string   `json:"item_delimiter,omitempty" jsonschema:"Separator between items of one entry, default |"`
	ElementDelimiter string   `json:"element_delimiter,omitempty" jsonschema:"Separator between the elements of an item, default ,"`
	DefaultTag       string   `json:"default_tag,omitempty" jsonschema:"Tag chosen when the prompt times out; must exist"`
	Width            int      `json:"width,omitempty" jsonschema:"Terminal width in columns, default 80"`
}

func (in renderInput) menu() menuInput {
	return menuInput{Entries: in.Entries, Format: in.Format, ItemDelimiter: in.ItemDelimiter, ElementDelimiter: in.ElementDelimiter, DefaultTag: in.DefaultTag}
}

type renderOutput struct {
	Text string `json:"text"`
}

func handleRenderMenu(ctx context.Context, req *mcp.CallToolRequest, input renderInput) (*mcp.CallToolResult, renderOutput, error) {
	d, err := input.menu().definition()
	if err != nil {
		return nil, renderOutput{}, err
	}
	width := input.Width
	if width <= 0 {
		width = defaultWidth
	}

	var buf bytes.Buffer
	for _, g := range d.Groups() {
		if err := g.Render(&buf, width); err != nil {
			return nil, renderOutput{}, fmt.Errorf("render group: %w", err)
		}
	}
	return nil, renderOutput{Text: ansi.Strip(buf.String())}, nil
}

type findInput struct {
	Entries          []string `json:"entries" jsonschema:"Definition entries"`
	Format           string   `json:"format,omitempty" jsonschema:"Element order inside an item, default label,text,tag"`
	ItemDelimiter    string   `json:"item_delimiter,omitempty" jsonschema:"Separator between items of one entry, default |"`
	ElementDelimiter string   `json:"element_delimiter,omitempty" jsonschema:"Separator between the elements of an item, default ,"`
	Label            string   `json:"label,omitempty" jsonschema:"Label to look up"`
	Tag              string   `json:"tag,omitempty" jsonschema:"Tag to look up"`
}

func (in findInput) menu() menuInput {
	return menuInput{Entries: in.Entries, Format: in.Format, ItemDelimiter: in.ItemDelimiter, ElementDelimiter: in.ElementDelimiter}
}

type findOutput struct {
	Found   bool     `json:"found"`
	Message string   `json:"message,omitempty"`
	Item    itemView `json:"item"`
}

func handleFindItem(ctx context.Context, req *mcp.CallToolRequest, input findInput) (*mcp.CallToolResult, findOutput, error) {
	if (input.Label == "") == (input.Tag == "") {
		return nil, findOutput{}, fmt.Errorf("exactly one of label and tag is required")
	}
	d, err := input.menu().definition()
	if err != nil {
		return nil, findOutput{}, err
	}

	var item *menu.Item
	if input.Label != "" {
		item, err = d.FindItemByLabel(input.Label)
	} else {
		item, err = d.FindItemByTag(input.Tag)
	}
	if errors.Is(err, menu.ErrNotFound) {
		return nil, findOutput{Message: err.Error()}, nil
	}
	if err != nil {
		return nil, findOutput{}, err
	}
	return nil, findOutput{Found: true, Item: viewOf(d, item)}, nil
}

func viewOf(d *menu.Definition, item *menu.Item) itemView {
	view := itemView{Tag: item.Tag(), Label: item.Label(), Text: item.Text()}
	for _, g := range d.Groups() {
		for _, it := range g.Items() {
			if it == item {
				view.Group = g.Heading()
				return view
			}
		}
	}
	return view
}
