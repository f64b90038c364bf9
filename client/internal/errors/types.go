// Package errors provides error classification for the Chatterbox client SDK.
// Errors carry two orthogonal labels: a Kind that tells the caller what went
// wrong in domain terms (bad input, rejected session, network, backend, chat
// turn), and a Category that tells retry logic whether another attempt can
// succeed.
package errors

import "fmt"

// Kind identifies the failure in terms the view layer can act on.
type Kind int

const (
	// KindValidation means a client-side precondition failed; no request
	// was issued.
	KindValidation Kind = iota

	// KindUnauthorized means the server rejected the call because the
	// session is absent or expired. Callers map this to "please sign in".
	KindUnauthorized

	// KindTransport means the request never produced an HTTP response:
	// connection refused, DNS failure, timeout.
	KindTransport

	// KindServer means the server answered with a non-2xx status that is
	// not an authorization failure.
	KindServer

	// KindChat marks failures of the chat-turn exchange specifically, so
	// the conversation layer can degrade to a substitute bot reply.
	KindChat
)

// String returns a human-readable representation of the error kind.
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindUnauthorized:
		return "unauthorized"
	case KindTransport:
		return "transport"
	case KindServer:
		return "server"
	case KindChat:
		return "chat"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// Category determines how errors are handled by the executor's retry logic.
type Category int

const (
	// Recoverable errors may be retried with exponential backoff.
	// Examples: 5xx responses, network timeouts, connection failures.
	Recoverable Category = iota

	// Irrecoverable errors fail immediately without retry.
	// Examples: 400, 401, 403 responses, validation failures.
	Irrecoverable
)

// String returns a human-readable representation of the category.
func (c Category) String() string {
	switch c {
	case Recoverable:
		return "recoverable"
	case Irrecoverable:
		return "irrecoverable"
	default:
		return fmt.Sprintf("unknown(%d)", int(c))
	}
}

// Error is the normalized error every service wrapper returns.
type Error struct {
	Kind       Kind
	Category   Category
	Op         string // operation that failed, e.g. "login"
	StatusCode int    // HTTP status code (0 for non-HTTP errors)
	Body       string // response body snippet for debugging
	Underlying error  // the original error, if any
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s: [%s] HTTP %d", e.Op, e.Kind, e.StatusCode)
	}
	if e.Underlying != nil {
		return fmt.Sprintf("%s: [%s] %v", e.Op, e.Kind, e.Underlying)
	}
	return fmt.Sprintf("%s: [%s]", e.Op, e.Kind)
}

// Unwrap returns the underlying error for error chain compatibility.
func (e *Error) Unwrap() error { return e.Underlying }

// KindOf extracts the Kind from err. Unclassified errors are reported as
// transport failures because that is the only way a wrapper can fail without
// producing an *Error.
func KindOf(err error) Kind {
	if e, ok := err.(*Error); ok {
		return e.Kind
	}
	return KindTransport
}

// HasKind reports whether err is an *Error of the given kind.
func HasKind(err error, k Kind) bool {
	e, ok := err.(*Error)
	return ok && e.Kind == k
}

// IsIrrecoverable reports whether err should not be retried.
func IsIrrecoverable(err error) bool {
	if e, ok := err.(*Error); ok {
		return e.Category == Irrecoverable
	}
	return false
}

// Validation builds a KindValidation error. It never carries a status code:
// validation failures happen before any request is issued.
func Validation(op, msg string) *Error {
	return &Error{
		Kind:       KindValidation,
		Category:   Irrecoverable,
		Op:         op,
		Underlying: fmt.Errorf("%s", msg),
	}
}
