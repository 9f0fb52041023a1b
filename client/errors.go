package client

import (
	sdkerrors "github.com/logist-pro/lgp-api-examples/client/internal/errors"
	"github.com/logist-pro/lgp-api-examples/client/internal/types"
)

// Re-export shared SDK errors so callers compare against a single symbol.
var (
	ErrUnreachable      = types.ErrUnreachable
	ErrAuthentication   = types.ErrAuthentication
	ErrMissingCookie    = types.ErrMissingCookie
	ErrNotAuthenticated = types.ErrNotAuthenticated
	ErrDictionary       = types.ErrDictionary
	ErrMissingReference = types.ErrMissingReference
	ErrCreate           = types.ErrCreate
	ErrFetch            = types.ErrFetch
	ErrNotFound         = types.ErrNotFound
	ErrAwaitTimeout     = types.ErrAwaitTimeout
)

// HTTPError carries the status code and body of a failed call.
type HTTPError = sdkerrors.HTTPError

// StatusCode returns the HTTP status behind err, or 0 when there is none.
func StatusCode(err error) int { return sdkerrors.StatusCode(err) }
