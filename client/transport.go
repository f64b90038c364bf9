package client

import (
	"net/http"

	"github.com/google/uuid"
)

// requestIDTransport stamps every outbound request with a fresh
// X-Request-ID so failures can be correlated with backend logs.
type requestIDTransport struct {
	base http.RoundTripper
}

func (t *requestIDTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// Clone so retried requests from shared callers are not mutated.
	cloned := req.Clone(req.Context())
	cloned.Header.Set("X-Request-ID", uuid.NewString())
	return t.base.RoundTrip(cloned)
}
