// Package api contains the thin per-endpoint HTTP wrappers. Functions here
// shape the wire contract with the backend and normalize failures into the
// SDK error taxonomy; they hold no state of their own.
package api

import (
	"io"
	"net/http"
)

// maxErrorBody bounds how much of an error response body is captured for
// diagnostics.
const maxErrorBody = 1024

// readErrorBody drains up to maxErrorBody bytes of an error response so the
// classified error can carry a useful snippet.
func readErrorBody(resp *http.Response) string {
	b, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return ""
	}
	return string(b)
}
