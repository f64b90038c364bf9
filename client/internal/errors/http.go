package errors

import "fmt"

// FromStatus normalizes a non-2xx HTTP response into an *Error.
//
// Status mapping:
//   - 401, 403        -> KindUnauthorized, irrecoverable
//   - other 4xx       -> KindServer, irrecoverable (408 and 429 stay recoverable)
//   - 5xx             -> KindServer, recoverable
func FromStatus(op string, statusCode int, body string) *Error {
	kind := KindServer
	if statusCode == 401 || statusCode == 403 {
		kind = KindUnauthorized
	}
	return &Error{
		Kind:       kind,
		Category:   categoryForStatus(statusCode),
		Op:         op,
		StatusCode: statusCode,
		Body:       body,
		Underlying: fmt.Errorf("%s failed: HTTP %d", op, statusCode),
	}
}

// FromTransport normalizes a network-level failure (no HTTP response) into an
// *Error. Transport errors are always recoverable; they may be transient.
func FromTransport(op string, err error) *Error {
	return &Error{
		Kind:       KindTransport,
		Category:   Recoverable,
		Op:         op,
		Underlying: err,
	}
}

func categoryForStatus(statusCode int) Category {
	switch {
	case statusCode >= 400 && statusCode < 500:
		switch statusCode {
		case 408, 429: // timeouts and throttling can succeed on retry
			return Recoverable
		default:
			return Irrecoverable
		}
	case statusCode >= 500 && statusCode < 600:
		return Recoverable
	default:
		// Unexpected status codes: be conservative and allow retry.
		return Recoverable
	}
}
