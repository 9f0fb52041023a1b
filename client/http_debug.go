package client

import (
	"net/http"
	"net/http/httputil"
	"os"

	"github.com/rs/zerolog/log"
)

// debugTransport dumps every request and response at debug level.
//
// Enable it with WithDebugLogging(true), or set LGP_DEBUG=true or DEBUG=true
// in the environment. The API key and session cookie are redacted from the
// dumps, but bodies are logged in full, so keep it out of production.
type debugTransport struct{ base http.RoundTripper }

// redactedHeaders are replaced before a request or response is dumped.
var redactedHeaders = []string{"X-ApiKey", "Cookie", "Set-Cookie"}

func (dt *debugTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := dt.base
	if base == nil {
		base = http.DefaultTransport
	}

	dumpReq := req.Clone(req.Context())
	dumpReq.Header = redact(req.Header)
	if req.GetBody != nil {
		if body, err := req.GetBody(); err == nil {
			dumpReq.Body = body
		}
	} else {
		// No replayable body: dump headers only so the original stays readable.
		dumpReq.Body = nil
	}
	if reqDump, err := httputil.DumpRequestOut(dumpReq, dumpReq.Body != nil); err == nil {
		log.Debug().Str("method", req.Method).Str("url", req.URL.String()).Str("request_dump", string(reqDump)).Msg("HTTP request")
	}

	resp, err := base.RoundTrip(req)
	if err != nil {
		log.Error().Err(err).Str("method", req.Method).Str("url", req.URL.String()).Msg("HTTP request failed")
		return nil, err
	}

	original := resp.Header
	resp.Header = redact(original)
	respDump, dumpErr := httputil.DumpResponse(resp, true)
	resp.Header = original
	if dumpErr == nil {
		log.Debug().Str("method", req.Method).Str("url", req.URL.String()).Int("status_code", resp.StatusCode).Str("response_dump", string(respDump)).Msg("HTTP response")
	}
	return resp, nil
}

// redact returns a copy of h with secret header values masked.
func redact(h http.Header) http.Header {
	out := h.Clone()
	if out == nil {
		return http.Header{}
	}
	for _, k := range redactedHeaders {
		if out.Get(k) != "" {
			out.Set(k, "[REDACTED]")
		}
	}
	return out
}

// debugLoggingRequested reports whether HTTP dump logging is requested
// through LGP_DEBUG=true or the generic DEBUG=true.
func debugLoggingRequested() bool {
	return os.Getenv("LGP_DEBUG") == "true" || os.Getenv("DEBUG") == "true"
}
