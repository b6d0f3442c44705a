package menu

import (
	"strings"
	"time"
)

// Field names one element of an item chunk.
type Field int

const (
	FieldLabel Field = iota
	FieldText
	FieldTag
)

func (f Field) String() string {
	switch f {
	case FieldLabel:
		return "label"
	case FieldText:
		return "text"
	case FieldTag:
		return "tag"
	}
	return "unknown"
}

// Defaults for the item syntax.
const (
	DefaultItemDelimiter    = "|"
	DefaultElementDelimiter = ","
	DefaultFieldOrder       = "label,text,tag"
)

const fieldOrderReason = "must name label, text and tag exactly once"

// Options configures how a Definition is parsed and presented.
type Options struct {
	Prompt string

	// DefaultTag is the item chosen when the prompt times out. Empty means
	// no default.
	DefaultTag string

	// Timeout <= 0 waits indefinitely.
	Timeout time.Duration

	// FieldOrder is the order of the three elements inside an item chunk.
	// Nil means label,text,tag.
	FieldOrder []Field

	ItemDelimiter    string
	ElementDelimiter string
}

// DefaultOptions returns options with the standard item syntax.
func DefaultOptions() Options {
	return Options{
		FieldOrder:       []Field{FieldLabel, FieldText, FieldTag},
		ItemDelimiter:    DefaultItemDelimiter,
		ElementDelimiter: DefaultElementDelimiter,
	}
}

// withDefaults fills zero-valued syntax fields and normalises the timeout.
func (o Options) withDefaults() (Options, error) {
	def := DefaultOptions()
	if o.FieldOrder == nil {
		o.FieldOrder = def.FieldOrder
	} else if err := validateFieldOrder(o.FieldOrder); err != nil {
		return o, err
	}
	if o.ItemDelimiter == "" {
		o.ItemDelimiter = def.ItemDelimiter
	}
	if o.ElementDelimiter == "" {
		o.ElementDelimiter = def.ElementDelimiter
	}
	if o.Timeout < 0 {
		o.Timeout = 0
	}
	return o, nil
}

// ParseFieldOrder parses a comma separated permutation of label, text and tag.
func ParseFieldOrder(s string) ([]Field, error) {
	parts := strings.Split(s, ",")
	order := make([]Field, 0, len(parts))
	for _, p := range parts {
		switch strings.ToLower(strings.TrimSpace(p)) {
		case "label":
			order = append(order, FieldLabel)
		case "text":
			order = append(order, FieldText)
		case "tag":
			order = append(order, FieldTag)
		default:
			return nil, &OptionsError{Option: "field order", Value: s, Reason: "unknown field " + strings.TrimSpace(p)}
		}
	}
	if err := validateFieldOrder(order); err != nil {
		return nil, &OptionsError{Option: "field order", Value: s, Reason: fieldOrderReason}
	}
	return order, nil
}

func validateFieldOrder(order []Field) error {
	if len(order) != 3 {
		return &OptionsError{Option: "field order", Value: formatFieldOrder(order), Reason: fieldOrderReason}
	}
	var seen [3]bool
	for _, f := range order {
		if f < FieldLabel || f > FieldTag || seen[f] {
			return &OptionsError{Option: "field order", Value: formatFieldOrder(order), Reason: fieldOrderReason}
		}
		seen[f] = true
	}
	return nil
}

func formatFieldOrder(order []Field) string {
	names := make([]string, len(order))
	for i, f := range order {
		names[i] = f.String()
	}
	return strings.Join(names, ",")
}
