package errors

import (
	"errors"
	"fmt"
)

// Kind classifies where in the run a failure happened
type Kind string

const (
	KindStartup  Kind = "startup"
	KindNavigate Kind = "navigate"
	KindEval     Kind = "eval"
	KindNotFound Kind = "not_found"
	KindWrite    Kind = "write"
	KindConfig   Kind = "config"
	KindUnknown  Kind = "unknown"
)

// Error carries a kind alongside the message and the wrapped cause
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an Error of the given kind
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf creates an Error of the given kind with a formatted message
func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a kind and message to an underlying error
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// Wrapf attaches a kind and a formatted message to an underlying error
func Wrapf(kind Kind, err error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

// KindOf returns the kind of the outermost typed error in err's chain,
// or KindUnknown when no typed error is present
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsNotFound reports whether err means a page element was absent.
// This is the expected end-of-listing signal during extraction, not a
// genuine failure.
func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}

// IsStartup reports whether err happened while opening the browser session
func IsStartup(err error) bool {
	return KindOf(err) == KindStartup
}

// IsWrite reports whether err happened while serializing outputs
func IsWrite(err error) bool {
	return KindOf(err) == KindWrite
}
