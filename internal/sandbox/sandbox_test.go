package sandbox

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logist-pro/lgp-api-examples/client"
	"github.com/logist-pro/lgp-api-examples/devmode"
)

func startSandbox(t *testing.T, cfg Config) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(New(cfg).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func loggedInClient(t *testing.T, srv *httptest.Server, opts ...client.Option) *client.Client {
	t.Helper()
	c, err := client.NewWithDevMode(srv.URL, append([]client.Option{client.WithHTTPClient(srv.Client())}, opts...)...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	require.NoError(t, c.Probe(context.Background()))
	_, err = c.Login(context.Background(), client.Credentials{Login: devmode.Login, Password: devmode.Password})
	require.NoError(t, err)
	return c
}

func validCreate(d *client.Dictionaries) client.CreateTenderRequest {
	customer, _ := d.FirstCustomer()
	return client.CreateTenderRequest{Customer: customer, Cargo: "box", PackageType: "Joint"}
}

func TestSandbox_CreateAndGet(t *testing.T) {
	srv := startSandbox(t, DefaultConfig())
	c := loggedInClient(t, srv)
	ctx := context.Background()

	assert.True(t, strings.HasPrefix(c.Session().Cookie, CookieName+"="))

	dicts, err := c.FetchDictionaries(ctx)
	require.NoError(t, err)
	require.Len(t, dicts.Corporates, 1)
	require.Len(t, dicts.Contractors, 1)

	id, err := c.CreateTender(ctx, validCreate(dicts))
	require.NoError(t, err)
	_, err = uuid.Parse(id)
	require.NoError(t, err, "tender id %q", id)

	first, err := c.GetTender(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, StatusAwaiting, first.Status)
	assert.Equal(t, int64(1), first.Number)
	assert.Nil(t, first.BestProposal)

	second, err := c.GetTender(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, first.Status, second.Status)
}

func TestSandbox_Assign(t *testing.T) {
	srv := startSandbox(t, DefaultConfig())
	c := loggedInClient(t, srv, client.WithLoginMode(client.LoginJSON))
	ctx := context.Background()

	dicts, err := c.FetchDictionaries(ctx)
	require.NoError(t, err)
	contractor, ok := dicts.FirstContractor()
	require.True(t, ok)

	id, err := c.AssignTender(ctx, client.AssignTenderRequest{
		CreateTenderRequest: validCreate(dicts),
		ContractorID:        contractor.ID,
		Cost:                45000,
	})
	require.NoError(t, err)

	got, err := c.AwaitTenderStatus(ctx, id, StatusAssigned)
	require.NoError(t, err)
	require.NotNil(t, got.BestProposal)
	assert.InDelta(t, 45000.0, got.BestProposal.Bet, 0.001)
	assert.Equal(t, 1, got.ProposalsCount)
}

func TestSandbox_RejectsUnknownReferences(t *testing.T) {
	srv := startSandbox(t, DefaultConfig())
	c := loggedInClient(t, srv)
	ctx := context.Background()

	_, err := c.CreateTender(ctx, client.CreateTenderRequest{Customer: client.Customer{CompanyID: "nope", ContactID: "nope"}})
	assert.ErrorIs(t, err, client.ErrCreate)
	assert.Equal(t, http.StatusBadRequest, client.StatusCode(err))

	dicts, err := c.FetchDictionaries(ctx)
	require.NoError(t, err)
	_, err = c.AssignTender(ctx, client.AssignTenderRequest{CreateTenderRequest: validCreate(dicts), ContractorID: "nope"})
	assert.ErrorIs(t, err, client.ErrCreate)

	_, err = c.GetTender(ctx, "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, client.ErrNotFound)
}

func TestSandbox_Auth(t *testing.T) {
	srv := startSandbox(t, DefaultConfig())
	ctx := context.Background()

	wrongKey, err := client.New(srv.URL, "wrong", client.WithHTTPClient(srv.Client()))
	require.NoError(t, err)
	assert.ErrorIs(t, wrongKey.Probe(ctx), client.ErrUnreachable)

	c, err := client.NewWithDevMode(srv.URL, client.WithHTTPClient(srv.Client()))
	require.NoError(t, err)
	_, err = c.Login(ctx, client.Credentials{Login: devmode.Login, Password: "bad"})
	assert.ErrorIs(t, err, client.ErrAuthentication)
	assert.Equal(t, http.StatusUnauthorized, client.StatusCode(err))

	// A forged cookie is refused by the server.
	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/api/v1/tender/create", nil)
	req.Header.Set("X-ApiKey", devmode.APIKey)
	req.Header.Set("Cookie", CookieName+"=forged")
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestSandbox_LoginWithoutCredentials(t *testing.T) {
	srv := startSandbox(t, DefaultConfig())
	req, _ := http.NewRequest(http.MethodPost, srv.URL+"/api/v1/account/login", nil)
	req.Header.Set("X-ApiKey", devmode.APIKey)
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSandbox_Metrics(t *testing.T) {
	srv := startSandbox(t, DefaultConfig())
	resp, err := srv.Client().Get(srv.URL + "/metrics")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestSandbox_ActualDateTitle(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC))
	cfg := DefaultConfig()
	cfg.Clock = clock
	srv := startSandbox(t, cfg)
	c := loggedInClient(t, srv)
	ctx := context.Background()

	dicts, err := c.FetchDictionaries(ctx)
	require.NoError(t, err)
	id, err := c.CreateTender(ctx, validCreate(dicts))
	require.NoError(t, err)

	got, err := c.GetTender(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "2026-10-16 09:00", got.ActualDate)
	assert.Equal(t, "just now", got.ActualDateTitle)

	clock.Advance(90 * time.Minute)
	got, err = c.GetTender(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "1 h ago", got.ActualDateTitle)
	assert.Equal(t, StatusAwaiting, got.Status)
}

func TestRecoveryMiddleware(t *testing.T) {
	h := recoveryMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestSessionToken(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Cookie", "other=1; "+CookieName+"=abc")
	assert.Equal(t, "abc", sessionToken(r))
	r.Header.Del("Cookie")
	assert.Empty(t, sessionToken(r))
}
