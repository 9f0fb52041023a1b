package api

import (
	"net/http"
	"strings"

	"github.com/logist-pro/lgp-api-examples/client/internal/types"
)

// ExtractSessionCookie returns the session token carried by the first
// Set-Cookie header: the text before the first ';', without attributes such
// as Path, Expires or HttpOnly. It is resent verbatim as the Cookie header.
func ExtractSessionCookie(h http.Header) (string, error) {
	raw := h.Get(HeaderSetCookie)
	if raw == "" {
		return "", types.ErrMissingCookie
	}
	token, _, _ := strings.Cut(raw, ";")
	token = strings.TrimSpace(token)
	if token == "" {
		return "", types.ErrMissingCookie
	}
	return token, nil
}

// ParseIdentifier turns the body of a create/assign answer, a bare JSON
// string such as "\"123e4567\"", into the identifier it holds.
func ParseIdentifier(body []byte) string {
	return strings.Trim(strings.TrimSpace(string(body)), `"`)
}
