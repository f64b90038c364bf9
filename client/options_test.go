package client

import (
	"net/http"
	"testing"
	"time"

	"github.com/chatterbox-ai/chatterbox-client/session"
)

func TestWithHTTPTimeout(t *testing.T) {
	c := New("http://localhost:3003", session.NewMemStore(),
		WithoutExecutor(), WithHTTPTimeout(5*time.Second))
	t.Cleanup(func() { _ = c.Close() })
	if c.http.Timeout != 5*time.Second {
		t.Fatalf("timeout = %v", c.http.Timeout)
	}
}

func TestWithHTTPTimeout_RejectsNonPositive(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for non-positive timeout")
		}
	}()
	New("http://localhost:3003", session.NewMemStore(), WithHTTPTimeout(0))
}

func TestWithHTTPClient_KeepsCookieJar(t *testing.T) {
	custom := &http.Client{}
	c := New("http://localhost:3003", session.NewMemStore(),
		WithoutExecutor(), WithHTTPClient(custom))
	t.Cleanup(func() { _ = c.Close() })
	if c.http != custom {
		t.Fatal("custom http client not installed")
	}
	if c.http.Jar == nil {
		t.Fatal("cookie jar must survive client injection; the backend session rides on it")
	}
}

func TestRequestIDWrapperAlwaysInstalled(t *testing.T) {
	c := New("http://localhost:3003", session.NewMemStore(), WithoutExecutor())
	t.Cleanup(func() { _ = c.Close() })
	if _, ok := c.http.Transport.(*requestIDTransport); !ok {
		t.Fatalf("outermost transport is %T, want *requestIDTransport", c.http.Transport)
	}
}
