package tools

import (
	"errors"
	"fmt"
)

// Failure taxonomy shared by every tool and collaborator.
var (
	ErrNotFound            = errors.New("not found")
	ErrMalformedSource     = errors.New("malformed source")
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	ErrInvalidExpression   = errors.New("invalid expression")
)

// FieldError reports an infobox that lacks the field a tool was asked for.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Unwrap lets errors.Is(err, ErrMalformedSource) see through a FieldError.
func (e *FieldError) Unwrap() error {
	return ErrMalformedSource
}
