package api

import (
	"context"
	"net/http"

	sdkerrors "github.com/logist-pro/lgp-api-examples/client/internal/errors"
	"github.com/logist-pro/lgp-api-examples/client/internal/types"
)

// Ping checks reachability with GET test/ping. It needs only the API key.
func Ping(ctx context.Context, httpClient HTTPClient, sess types.Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	req, err := newRequest(ctx, sess, http.MethodGet, "test/ping", nil)
	if err != nil {
		return err
	}
	resp, err := send(httpClient, req)
	if err != nil {
		return sdkerrors.NewNetworkError("probe", types.ErrUnreachable, err)
	}
	if !resp.ok() {
		return sdkerrors.NewHTTPError("probe", resp.StatusCode, string(resp.Body), types.ErrUnreachable)
	}
	return nil
}
