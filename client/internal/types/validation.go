package types

import (
	"errors"
	"fmt"
	"net/http"
)

// ------------------------------
// Shared Interfaces
// ------------------------------

// HTTPClient interface for dependency injection
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// ------------------------------
// Shared Errors
// ------------------------------

var (
	// ErrUnreachable is returned when the connectivity probe fails.
	ErrUnreachable = errors.New("api unreachable")
	// ErrAuthentication is returned when login fails or yields no session cookie.
	ErrAuthentication = errors.New("authentication failed")
	// ErrMissingCookie is returned when a successful login carries no Set-Cookie header.
	ErrMissingCookie = errors.New("session cookie not set")
	// ErrNotAuthenticated is returned when an authenticated call is attempted before login.
	ErrNotAuthenticated = errors.New("not authenticated: login required")
	// ErrDictionary is returned when the creation dictionaries are absent or unparseable.
	ErrDictionary = errors.New("dictionaries unavailable")
	// ErrMissingReference is returned when the dictionaries lack an entry a payload needs.
	ErrMissingReference = fmt.Errorf("required entry missing: %w", ErrDictionary)
	// ErrCreate is returned when create/assign does not yield an identifier.
	ErrCreate = errors.New("tender not created")
	// ErrFetch is returned when a tender view cannot be read.
	ErrFetch = errors.New("tender fetch failed")
	// ErrNotFound is returned when the tender does not exist or the body is empty.
	ErrNotFound = errors.New("tender not found")
	// ErrAwaitTimeout is returned when a tender does not reach the awaited status in time.
	ErrAwaitTimeout = errors.New("tender status not reached")
)

// ValidateTenderID rejects identifiers that cannot be placed in a request path.
func ValidateTenderID(id string) error {
	if id == "" {
		return ErrNotFound
	}
	return nil
}
