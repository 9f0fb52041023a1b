package errors

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// NewHTTPError creates an error for a non-success status. sentinel is the
// step-specific error callers match with errors.Is.
func NewHTTPError(op string, statusCode int, body string, sentinel error) *HTTPError {
	body = strings.TrimSpace(body)
	if len(body) > maxBodyLen {
		// Cut on a rune boundary so multi-byte text stays valid UTF-8.
		cut := maxBodyLen
		for cut > 0 && !utf8.RuneStart(body[cut]) {
			cut--
		}
		body = body[:cut]
	}
	return &HTTPError{
		Op:         op,
		StatusCode: statusCode,
		Body:       body,
		Underlying: sentinel,
	}
}

// NewNetworkError creates an error for transport-level failures, keeping
// both the sentinel and the cause in the chain.
func NewNetworkError(op string, sentinel, err error) *HTTPError {
	return &HTTPError{
		Op:         op,
		Underlying: fmt.Errorf("%w: %w", sentinel, err),
	}
}

// StatusCode extracts the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var he *HTTPError
	if errors.As(err, &he) {
		return he.StatusCode
	}
	return 0
}
