// Package errs defines the error kinds shared by the repository, the notes file
// codec and the command layer.
package errs

import "errors"

// Kind classifies an application error.
type Kind string

const (
	Validation      Kind = "validation"
	NotFound        Kind = "not_found"
	EmptyRepository Kind = "empty_repository"
	IncompleteNote  Kind = "incomplete_note"
	Persistence     Kind = "persistence"
	Internal        Kind = "internal"
)

// Error is a classified application error.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return string(e.Kind)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New creates a classified error with message.
func New(kind Kind, message string) error {
	return &Error{
		Kind:    kind,
		Message: message,
	}
}

// Wrap creates a classified error with message and cause.
func Wrap(kind Kind, message string, cause error) error {
	return &Error{
		Kind:    kind,
		Message: message,
		Err:     cause,
	}
}

// KindOf returns the kind of err, defaulting to Internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) && e.Kind != "" {
		return e.Kind
	}
	return Internal
}

// Is reports whether err carries the given kind anywhere in its chain.
// Unclassified errors count as Internal.
func Is(err error, kind Kind) bool {
	if err == nil {
		return false
	}
	if KindOf(err) == kind {
		return true
	}
	var e *Error
	for errors.As(err, &e) && e.Err != nil {
		err = e.Err
		if k := KindOf(err); k == kind && errors.As(err, new(*Error)) {
			return true
		}
	}
	return false
}

// MessageOf returns the message meant for the user. Unclassified errors are
// reported as "unexpected error" followed by their text.
func MessageOf(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return "unexpected error: " + err.Error()
}
