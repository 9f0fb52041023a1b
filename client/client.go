package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/logist-pro/lgp-api-examples/client/internal/api"
	"github.com/logist-pro/lgp-api-examples/client/internal/types"
	"github.com/logist-pro/lgp-api-examples/devmode"
)

// APIPrefix is the versioned path every endpoint lives under.
const APIPrefix = "/api/v1"

// --------------------------------------------------------------------
// Client core
// --------------------------------------------------------------------

// Client talks to the marketplace API. It starts unauthenticated; a
// successful Login captures the session cookie, which is then attached to
// every later call. There is no transition back to unauthenticated.
type Client struct {
	http      *http.Client
	loginMode LoginMode
	clock     clockwork.Clock

	pollInterval    time.Duration
	pollMaxInterval time.Duration
	awaitTimeout    time.Duration

	debug bool // wrap the transport with debugTransport in New

	mu   sync.RWMutex
	sess types.Session

	closedOnce uint32 // ensures Close is idempotent
}

// New constructs a Client for the marketplace at baseURL (host root or the
// versioned /api/v1 root) using the static apiKey.
func New(baseURL, apiKey string, opts ...Option) (*Client, error) {
	root, err := apiRoot(baseURL)
	if err != nil {
		return nil, err
	}
	if apiKey == "" {
		return nil, fmt.Errorf("apiKey cannot be empty")
	}

	c := &Client{
		http:            &http.Client{Timeout: 30 * time.Second},
		loginMode:       LoginQuery,
		clock:           clockwork.NewRealClock(),
		pollInterval:    500 * time.Millisecond,
		pollMaxInterval: 10 * time.Second,
		awaitTimeout:    time.Minute,
		sess:            types.Session{BaseURL: root, APIKey: apiKey},
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	// Transport wrappers go on last so WithHTTPClient cannot drop them.
	// Debug can also be enabled from the environment without changing code.
	if c.debug || debugLoggingRequested() {
		c.http.Transport = &debugTransport{base: c.http.Transport}
	}
	c.wrapTransportWithRequestID()
	return c, nil
}

// NewWithDevMode constructs a Client for the local sandbox using the shared
// development API key.
func NewWithDevMode(baseURL string, opts ...Option) (*Client, error) {
	return New(baseURL, devmode.APIKey, opts...)
}

// apiRoot validates baseURL and appends APIPrefix unless already present.
func apiRoot(baseURL string) (string, error) {
	if baseURL == "" {
		return "", fmt.Errorf("baseURL cannot be empty")
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid baseURL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("invalid baseURL %q: scheme and host required", baseURL)
	}
	root := strings.TrimRight(baseURL, "/")
	if !strings.HasSuffix(root, APIPrefix) {
		root += APIPrefix
	}
	return root, nil
}

// wrapTransportWithRequestID wraps the HTTP client's transport so every
// request carries a fresh X-Request-Id for log correlation.
func (c *Client) wrapTransportWithRequestID() {
	baseTransport := c.http.Transport
	if baseTransport == nil {
		baseTransport = http.DefaultTransport
	}
	c.http.Transport = &requestIDTransport{base: baseTransport}
}

// requestIDTransport wraps an http.RoundTripper to add X-Request-Id.
type requestIDTransport struct {
	base http.RoundTripper
}

func (t *requestIDTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// Clone the request to avoid modifying the original
	cloned := req.Clone(req.Context())
	if cloned.Header.Get("X-Request-Id") == "" {
		cloned.Header.Set("X-Request-Id", uuid.NewString())
	}
	return t.base.RoundTrip(cloned)
}

// Close releases idle connections held by the transport. Safe to call multiple times.
func (c *Client) Close() error {
	if !atomic.CompareAndSwapUint32(&c.closedOnce, 0, 1) {
		return nil
	}
	c.http.CloseIdleConnections()
	return nil
}

// Session returns a snapshot of the current session.
func (c *Client) Session() Session {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sess
}

// Authenticated reports whether Login has captured a session cookie.
func (c *Client) Authenticated() bool {
	return c.Session().Authenticated()
}

// --------------------------------------------------------------------
// Unauthenticated operations
// --------------------------------------------------------------------

// Probe checks that the API answers GET test/ping. Only the API key is sent.
func (c *Client) Probe(ctx context.Context) error {
	start := time.Now()
	err := api.Ping(ctx, c.http, c.Session())
	observe(opProbe, start, err)
	return err
}

// Login exchanges creds for a session cookie and keeps it for later calls.
func (c *Client) Login(ctx context.Context, creds Credentials) (Session, error) {
	start := time.Now()
	sess, err := api.Login(ctx, c.http, c.Session(), c.loginMode, creds)
	observe(opLogin, start, err)
	if err != nil {
		return Session{}, err
	}

	c.mu.Lock()
	c.sess = sess
	c.mu.Unlock()

	log.Debug().
		Str("login", creds.Login).
		Str("mode", string(c.loginMode)).
		Dur("elapsed", time.Since(start)).
		Msg("session established")
	return sess, nil
}

// --------------------------------------------------------------------
// Tender operations - delegated to internal/api
// --------------------------------------------------------------------

// FetchDictionaries retrieves the reference data needed to build a tender.
func (c *Client) FetchDictionaries(ctx context.Context) (*Dictionaries, error) {
	start := time.Now()
	d, err := api.GetDictionaries(ctx, c.http, c.Session())
	observe(opDictionaries, start, err)
	if err == nil {
		log.Debug().
			Int("corporates", len(d.Corporates)).
			Int("contractors", len(d.Contractors)).
			Msg("dictionaries fetched")
	}
	return d, err
}

// CreateTender submits a new tender and returns its identifier.
func (c *Client) CreateTender(ctx context.Context, req CreateTenderRequest) (string, error) {
	start := time.Now()
	id, err := api.CreateTender(ctx, c.http, c.Session(), req)
	observe(opCreate, start, err)
	if err == nil {
		log.Debug().Str("tender_id", id).Msg("tender created")
	}
	return id, err
}

// AssignTender submits a tender assigned to a contractor and returns its identifier.
func (c *Client) AssignTender(ctx context.Context, req AssignTenderRequest) (string, error) {
	start := time.Now()
	id, err := api.AssignTender(ctx, c.http, c.Session(), req)
	observe(opAssign, start, err)
	if err == nil {
		log.Debug().Str("tender_id", id).Str("contractor_id", req.ContractorID).Msg("tender assigned")
	}
	return id, err
}

// GetTender reads the current view of a tender.
func (c *Client) GetTender(ctx context.Context, tenderID string) (*Tender, error) {
	start := time.Now()
	t, err := api.GetTender(ctx, c.http, c.Session(), tenderID)
	observe(opGetTender, start, err)
	if err == nil {
		log.Debug().Str("tender_id", tenderID).Str("status", t.Status).Msg("tender fetched")
	}
	return t, err
}
