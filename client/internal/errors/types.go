// Package errors describes failed marketplace calls so callers can inspect
// the HTTP status and response body behind a sentinel error.
package errors

import "fmt"

// maxBodyLen bounds how much of a response body is kept for diagnostics.
const maxBodyLen = 2048

// HTTPError wraps a non-success HTTP answer of one API operation.
type HTTPError struct {
	Op         string // operation name, e.g. "login"
	StatusCode int    // HTTP status code (0 for transport errors)
	Body       string // response body for debugging, truncated
	Underlying error  // sentinel or transport error
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	if e.StatusCode > 0 {
		if e.Body != "" {
			return fmt.Sprintf("%s: HTTP %d: %v: %s", e.Op, e.StatusCode, e.Underlying, e.Body)
		}
		return fmt.Sprintf("%s: HTTP %d: %v", e.Op, e.StatusCode, e.Underlying)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Underlying)
}

// Unwrap returns the underlying error for error chain compatibility.
func (e *HTTPError) Unwrap() error {
	return e.Underlying
}
