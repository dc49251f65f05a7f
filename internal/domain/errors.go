package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a failure at the point it happens so the presentation layer can
// react to it without inspecting error text.
type Kind uint8

// The closed set of failure kinds. KindUnknown is reserved for errors that did not
// originate from the pipeline (programming errors, unexpected I/O).
const (
	KindUnknown Kind = iota
	KindValidation
	KindUpstream
	KindMalformedOutput
	KindTimeout
	KindNotFound
)

// Sentinel errors matched by errors.Is for each Kind.
var (
	// ErrValidation is returned when required input is missing or malformed.
	ErrValidation = errors.New("validation failed")

	// ErrUpstream is returned when the language model or image service fails.
	ErrUpstream = errors.New("upstream service failed")

	// ErrMalformedOutput is returned when a model response cannot be parsed
	// or violates the expected schema.
	ErrMalformedOutput = errors.New("malformed model output")

	// ErrTimeout is returned when a caller-side or job-poll deadline is exceeded.
	ErrTimeout = errors.New("deadline exceeded")

	// ErrNotFound is returned when a batch or slide does not exist in storage.
	ErrNotFound = errors.New("not found")
)

// String returns the wire name of the kind, used in API error bodies.
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindUpstream:
		return "upstream"
	case KindMalformedOutput:
		return "malformed_output"
	case KindTimeout:
		return "timeout"
	case KindNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindValidation:
		return ErrValidation
	case KindUpstream:
		return ErrUpstream
	case KindMalformedOutput:
		return ErrMalformedOutput
	case KindTimeout:
		return ErrTimeout
	case KindNotFound:
		return ErrNotFound
	default:
		return nil
	}
}

// Error is the tagged error produced by every pipeline stage.
type Error struct {
	// Kind is the failure classification.
	Kind Kind

	// Op names the operation that failed, e.g. "generate structure".
	Op string

	// Service names the external collaborator involved, if any
	// (e.g. "gemini", "kie.ai"). Empty for local failures.
	Service string

	// Field names the offending input field for validation failures.
	Field string

	// Message is a short human-readable description.
	Message string

	// Err is the underlying cause, if any.
	Err error
}

// Error formats the error as "op: service: field message: cause".
func (e *Error) Error() string {
	var parts []string
	if e.Op != "" {
		parts = append(parts, e.Op)
	}
	if e.Service != "" {
		parts = append(parts, e.Service)
	}

	msg := e.Message
	if e.Field != "" {
		msg = strings.TrimSpace(e.Field + " " + msg)
	}
	if msg == "" {
		if s := e.Kind.sentinel(); s != nil {
			msg = s.Error()
		}
	}
	if msg != "" {
		parts = append(parts, msg)
	}
	if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}
	return strings.Join(parts, ": ")
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for this error's kind.
func (e *Error) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

// NewValidationError creates a validation error for the named field.
func NewValidationError(field, message string, err error) *Error {
	return &Error{Kind: KindValidation, Field: field, Message: message, Err: err}
}

// NewUpstreamError creates an error for a failed call to an external service.
func NewUpstreamError(op, service string, err error) *Error {
	return &Error{Kind: KindUpstream, Op: op, Service: service, Err: err}
}

// NewMalformedOutputError creates an error for an unusable model response.
func NewMalformedOutputError(op, message string, err error) *Error {
	return &Error{Kind: KindMalformedOutput, Op: op, Message: message, Err: err}
}

// NewTimeoutError creates an error for an exceeded deadline.
func NewTimeoutError(op, service string, err error) *Error {
	return &Error{Kind: KindTimeout, Op: op, Service: service, Err: err}
}

// NewNotFoundError creates an error for a missing resource.
func NewNotFoundError(resource, id string) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("%s %q not found", resource, id)}
}

// KindOf classifies any error. Tagged errors report their own kind; a bare
// context deadline is a timeout; everything else is unknown.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	var derr *Error
	if errors.As(err, &derr) {
		return derr.Kind
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	return KindUnknown
}

// ServiceOf returns the external service named by the outermost tagged error, if any.
func ServiceOf(err error) string {
	var derr *Error
	if errors.As(err, &derr) {
		return derr.Service
	}
	return ""
}

// FromContext converts a context error into a tagged error for op. A deadline
// becomes a timeout; cancellation is returned unchanged.
func FromContext(op, service string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return NewTimeoutError(op, service, err)
	}
	return err
}
