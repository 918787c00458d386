package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrNotFound is returned when the requested post does not exist.
	ErrNotFound = errors.New("post not found")
	// ErrUnauthorized is returned when the actor is unknown or lacks the edit capability.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidPage is returned for page numbers below 1.
	ErrInvalidPage = errors.New("page must be a positive integer")
)

// ValidationError carries one message per failed field so the caller can
// re-render the form with every violation at once.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// violations accumulates field errors during a workflow and turns into a
// *ValidationError only when at least one field failed.
type violations map[string]string

func (v violations) add(field, message string) {
	if _, dup := v[field]; !dup {
		v[field] = message
	}
}

func (v violations) err() error {
	if len(v) == 0 {
		return nil
	}
	return &ValidationError{Fields: v}
}
