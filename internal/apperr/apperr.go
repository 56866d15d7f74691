// Package apperr gives every failure a stable machine-readable kind
// while keeping the human-readable message clients already display.
package apperr

import "errors"

// Kind is the stable error category carried in API responses.
type Kind string

const (
	// KindNotAuthenticated means no valid session accompanied the request.
	KindNotAuthenticated Kind = "not_authenticated"
	// KindValidation means the request referenced an unknown product or
	// size, or asked for more stock than is available.
	KindValidation Kind = "validation"
	// KindNotFound means a file or record the request depends on is absent.
	KindNotFound Kind = "not_found"
	// KindInternal covers unexpected I/O or encoding failures.
	KindInternal Kind = "internal"
)

// Error pairs a kind with a message. The message is the user-facing text
// and is returned verbatim in response bodies.
type Error struct {
	Kind    Kind
	Message string
}

// Error returns the human-readable message.
func (e *Error) Error() string {
	return e.Message
}

// New builds an Error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// KindOf extracts the kind of err, or KindInternal if err carries none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
