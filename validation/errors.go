package validation

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Error collects validation messages keyed by field name.
type Error struct {
	Fields map[string][]string
}

// NewError creates an empty validation error.
func NewError() *Error {
	return &Error{Fields: make(map[string][]string)}
}

// Add appends a message for a field.
func (e *Error) Add(field, message string) *Error {
	e.Fields[field] = append(e.Fields[field], message)
	return e
}

// HasErrors returns true if any field has a message.
func (e *Error) HasErrors() bool {
	return len(e.Fields) > 0
}

// Messages returns the messages recorded for field.
func (e *Error) Messages(field string) []string {
	return e.Fields[field]
}

// ErrOrNil returns e when it holds messages and nil otherwise.
func (e *Error) ErrOrNil() error {
	if !e.HasErrors() {
		return nil
	}
	return e
}

// Error implements the error interface. Fields are listed in sorted order.
func (e *Error) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, strings.Join(e.Fields[name], ", ")))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// AsError extracts a *Error from err.
func AsError(err error) (*Error, bool) {
	var verr *Error
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}
