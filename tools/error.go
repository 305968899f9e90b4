package tools

import (
	"github.com/cockroachdb/errors"
	"github.com/effective-security/youtrack-mcp/pkg/llmutils"
)

// ErrorKind tags a tool failure so that callers can distinguish validation,
// lookup, and transport failures without matching on message strings.
type ErrorKind string

const (
	// KindValidation is a missing or malformed input field; no network call
	// was attempted.
	KindValidation ErrorKind = "validation"
	// KindLookup is a failed resolution, such as a project short name that
	// does not exist.
	KindLookup ErrorKind = "lookup"
	// KindTransport is an HTTP or connectivity failure from the tracker.
	KindTransport ErrorKind = "transport"
	// KindInternal is any other unexpected failure.
	KindInternal ErrorKind = "internal"
)

// Error is the tagged failure returned by tool Run methods.
// Its JSON form is the wire contract: at least an `error` key, and
// `status: "error"` when the failing operation is a write or validation.
type Error struct {
	Kind    ErrorKind `json:"-"`
	Message string    `json:"error"`
	Status  string    `json:"status,omitempty"`
	cause   error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// JSON renders the error as the pretty-printed object tools return to the
// agent.
func (e *Error) JSON() string {
	return llmutils.ToJSONIndent(e)
}

// WithStatus marks the error with `status: "error"` in its JSON form.
func (e *Error) WithStatus() *Error {
	e.Status = "error"
	return e
}

// NewError creates a tagged tool error.
func NewError(kind ErrorKind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// NewErrorf creates a tagged tool error with a formatted message.
func NewErrorf(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: errors.Errorf(format, args...).Error()}
}

// WrapError tags an underlying failure, preserving it for errors.Is/As.
func WrapError(kind ErrorKind, err error, msg string) *Error {
	return &Error{Kind: kind, Message: msg, cause: err}
}

// AsError coerces any failure into a tagged *Error. Untyped failures become
// KindInternal with the stringified message, which preserves the historical
// catch-and-stringify contract at the boundary.
func AsError(err error) *Error {
	var te *Error
	if errors.As(err, &te) {
		return te
	}
	return &Error{Kind: KindInternal, Message: err.Error(), cause: err}
}

// ErrorJSON stringifies any failure into the JSON error object contract.
func ErrorJSON(err error) string {
	return AsError(err).JSON()
}
