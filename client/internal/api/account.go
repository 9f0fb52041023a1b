package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	sdkerrors "github.com/logist-pro/lgp-api-examples/client/internal/errors"
	"github.com/logist-pro/lgp-api-examples/client/internal/types"
)

// Login exchanges credentials for a session token via POST account/login and
// returns sess with the captured cookie set. sess itself is not modified.
func Login(ctx context.Context, httpClient HTTPClient, sess types.Session, mode types.LoginMode, creds types.Credentials) (types.Session, error) {
	if err := ctx.Err(); err != nil {
		return sess, err
	}

	var (
		req *http.Request
		err error
	)
	switch mode {
	case types.LoginJSON:
		req, err = newRequest(ctx, sess, http.MethodPost, "account/login", creds)
	case types.LoginQuery, "":
		q := url.Values{}
		q.Set("login", creds.Login)
		q.Set("password", creds.Password)
		req, err = newRequest(ctx, sess, http.MethodPost, "account/login?"+q.Encode(), nil)
	default:
		return sess, fmt.Errorf("unsupported login mode %q", mode)
	}
	if err != nil {
		return sess, err
	}

	resp, err := send(httpClient, req)
	if err != nil {
		return sess, sdkerrors.NewNetworkError("login", types.ErrAuthentication, err)
	}
	if !resp.ok() {
		return sess, sdkerrors.NewHTTPError("login", resp.StatusCode, string(resp.Body), types.ErrAuthentication)
	}

	cookie, err := ExtractSessionCookie(resp.Header)
	if err != nil {
		return sess, fmt.Errorf("login: %w: %w", types.ErrAuthentication, err)
	}
	return sess.WithCookie(cookie), nil
}
