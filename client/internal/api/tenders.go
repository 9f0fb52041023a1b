package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	sdkerrors "github.com/logist-pro/lgp-api-examples/client/internal/errors"
	"github.com/logist-pro/lgp-api-examples/client/internal/types"
	"github.com/logist-pro/lgp-api-examples/internal/json"
)

// GetDictionaries fetches the creation context (corporates, contacts,
// contractors) with GET tender/create.
func GetDictionaries(ctx context.Context, httpClient HTTPClient, sess types.Session) (*types.Dictionaries, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	req, err := newAuthedRequest(ctx, sess, http.MethodGet, "tender/create", nil)
	if err != nil {
		return nil, err
	}
	resp, err := send(httpClient, req)
	if err != nil {
		return nil, sdkerrors.NewNetworkError("dictionaries", types.ErrDictionary, err)
	}
	if !resp.ok() {
		return nil, sdkerrors.NewHTTPError("dictionaries", resp.StatusCode, string(resp.Body), types.ErrDictionary)
	}
	if resp.empty() {
		return nil, fmt.Errorf("dictionaries: empty body: %w", types.ErrDictionary)
	}

	var dicts types.Dictionaries
	if err := json.Unmarshal(resp.Body, &dicts); err != nil {
		return nil, fmt.Errorf("dictionaries: decode: %w: %w", types.ErrDictionary, err)
	}
	return &dicts, nil
}

// CreateTender submits a new tender with POST tender/create and returns its identifier.
func CreateTender(ctx context.Context, httpClient HTTPClient, sess types.Session, req types.CreateTenderRequest) (string, error) {
	return submitTender(ctx, httpClient, sess, "create", "tender/create", req)
}

// AssignTender submits a tender already assigned to a contractor with
// POST tender/assign and returns its identifier.
func AssignTender(ctx context.Context, httpClient HTTPClient, sess types.Session, req types.AssignTenderRequest) (string, error) {
	return submitTender(ctx, httpClient, sess, "assign", "tender/assign", req)
}

func submitTender(ctx context.Context, httpClient HTTPClient, sess types.Session, op, path string, payload any) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	httpReq, err := newAuthedRequest(ctx, sess, http.MethodPost, path, payload)
	if err != nil {
		return "", err
	}
	resp, err := send(httpClient, httpReq)
	if err != nil {
		return "", sdkerrors.NewNetworkError(op, types.ErrCreate, err)
	}
	if !resp.ok() {
		return "", sdkerrors.NewHTTPError(op, resp.StatusCode, string(resp.Body), types.ErrCreate)
	}

	id := ParseIdentifier(resp.Body)
	if id == "" || id == "null" {
		return "", fmt.Errorf("%s: empty identifier: %w", op, types.ErrCreate)
	}
	return id, nil
}

// GetTender reads the tender view by identifier with GET tender/{id}.
func GetTender(ctx context.Context, httpClient HTTPClient, sess types.Session, tenderID string) (*types.Tender, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := types.ValidateTenderID(tenderID); err != nil {
		return nil, err
	}
	req, err := newAuthedRequest(ctx, sess, http.MethodGet, "tender/"+url.PathEscape(tenderID), nil)
	if err != nil {
		return nil, err
	}
	resp, err := send(httpClient, req)
	if err != nil {
		return nil, sdkerrors.NewNetworkError("get tender", types.ErrFetch, err)
	}
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, sdkerrors.NewHTTPError("get tender", resp.StatusCode, string(resp.Body), types.ErrNotFound)
	case !resp.ok():
		return nil, sdkerrors.NewHTTPError("get tender", resp.StatusCode, string(resp.Body), types.ErrFetch)
	case resp.empty():
		return nil, fmt.Errorf("get tender %s: empty body: %w", tenderID, types.ErrNotFound)
	}

	var tender types.Tender
	if err := json.Unmarshal(resp.Body, &tender); err != nil {
		return nil, fmt.Errorf("get tender %s: decode: %w: %w", tenderID, types.ErrFetch, err)
	}
	return &tender, nil
}
