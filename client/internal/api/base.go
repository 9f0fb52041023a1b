package api

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/logist-pro/lgp-api-examples/client/internal/types"
	"github.com/logist-pro/lgp-api-examples/internal/json"
)

// HTTPClient interface for dependency injection
type HTTPClient = types.HTTPClient

// Header names used by the marketplace.
const (
	HeaderAPIKey      = "X-ApiKey"
	HeaderCookie      = "Cookie"
	HeaderSetCookie   = "Set-Cookie"
	HeaderAccept      = "Accept"
	HeaderContentType = "Content-Type"
	contentTypeJSON   = "application/json"
)

// maxResponseBytes caps how much of a response body is read into memory.
const maxResponseBytes = 10 << 20

// endpoint joins the versioned base URL and a relative API path.
func endpoint(sess types.Session, path string) string {
	return strings.TrimRight(sess.BaseURL, "/") + "/" + strings.TrimLeft(path, "/")
}

// newRequest builds a request carrying the API key and JSON Accept header.
// When payload is non-nil it is encoded as the JSON body.
func newRequest(ctx context.Context, sess types.Session, method, path string, payload any) (*http.Request, error) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint(sess, path), body)
	if err != nil {
		return nil, err
	}
	req.Header.Set(HeaderAPIKey, sess.APIKey)
	req.Header.Set(HeaderAccept, contentTypeJSON)
	if payload != nil {
		req.Header.Set(HeaderContentType, contentTypeJSON)
	}
	return req, nil
}

// newAuthedRequest is newRequest plus the session cookie. It refuses to build
// a request before login so nothing unauthenticated reaches the wire.
func newAuthedRequest(ctx context.Context, sess types.Session, method, path string, payload any) (*http.Request, error) {
	if !sess.Authenticated() {
		return nil, types.ErrNotAuthenticated
	}
	req, err := newRequest(ctx, sess, method, path, payload)
	if err != nil {
		return nil, err
	}
	req.Header.Set(HeaderCookie, sess.Cookie)
	return req, nil
}

// response is a fully read HTTP answer.
type response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

func (r *response) ok() bool { return r.StatusCode >= 200 && r.StatusCode < 300 }

// empty reports whether the body carries no value at all.
func (r *response) empty() bool {
	b := bytes.TrimSpace(r.Body)
	return len(b) == 0 || bytes.Equal(b, []byte("null"))
}

// send executes req and reads the whole (bounded) body.
func send(httpClient HTTPClient, req *http.Request) (*response, error) {
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, err
	}
	return &response{StatusCode: resp.StatusCode, Header: resp.Header, Body: body}, nil
}
