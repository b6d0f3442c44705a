package menu

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDefinition is wrapped by every error that aborts construction.
	ErrInvalidDefinition = errors.New("invalid menu definition")

	// ErrNoItems is returned for a definition without a single item.
	ErrNoItems = fmt.Errorf("%w: no items", ErrInvalidDefinition)

	// ErrNotFound is wrapped by lookup failures on a Definition.
	ErrNotFound = errors.New("menu item not found")
)

// DuplicateError reports a tag or label used by more than one item.
type DuplicateError struct {
	Field string // "tag" or "label"
	Value string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("duplicate usage of %s (%s)", e.Field, e.Value)
}

func (e *DuplicateError) Unwrap() error { return ErrInvalidDefinition }

// FieldCountError reports an item chunk that does not split into exactly
// three elements.
type FieldCountError struct {
	Chunk     string
	Delimiter string
	Got       int
}

func (e *FieldCountError) Error() string {
	return fmt.Sprintf("item %q: expected 3 elements separated by %q, got %d", e.Chunk, e.Delimiter, e.Got)
}

func (e *FieldCountError) Unwrap() error { return ErrInvalidDefinition }

// MissingDefaultError reports a default tag that no parsed item carries.
type MissingDefaultError struct {
	Tag  string
	Args string
}

func (e *MissingDefaultError) Error() string {
	return fmt.Sprintf("default tag %q not found in arguments %q", e.Tag, e.Args)
}

func (e *MissingDefaultError) Unwrap() error { return ErrInvalidDefinition }

// OptionsError reports a malformed option value.
type OptionsError struct {
	Option string
	Value  string
	Reason string
}

func (e *OptionsError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Option, e.Value, e.Reason)
}

// NotFoundError reports a lookup with no matching item.
type NotFoundError struct {
	Field string
	Value string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("can't find %s %s", e.Field, e.Value)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }
