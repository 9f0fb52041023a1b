package api

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/logist-pro/lgp-api-examples/client/internal/types"
)

// errRT is an http.RoundTripper that always returns an error (simulates network failure).
type errRT struct{}

func (e *errRT) RoundTrip(*http.Request) (*http.Response, error) { return nil, fmt.Errorf("boom") }

// countingClient counts Do calls and forwards to next.
type countingClient struct {
	next  HTTPClient
	calls int
}

func (c *countingClient) Do(req *http.Request) (*http.Response, error) {
	c.calls++
	return c.next.Do(req)
}

// newSession returns an authenticated session pointing at srv.
func newSession(srv *httptest.Server) types.Session {
	return types.Session{BaseURL: srv.URL + "/api/v1", APIKey: "key", Cookie: "SID=xyz"}
}

// serve starts a server answering every request with status and body.
func serve(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}
