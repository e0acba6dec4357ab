package transport

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// headerRoundTripper fills in default headers the request does not already carry,
// so headers set per call always win.
type headerRoundTripper struct {
	next    http.RoundTripper
	headers http.Header
}

// RoundTrip implements the http.RoundTripper interface.
func (t *headerRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	out := req.Clone(req.Context())
	for k, vs := range t.headers {
		if _, ok := out.Header[k]; ok {
			continue
		}
		out.Header[k] = append([]string(nil), vs...)
	}

	return t.next.RoundTrip(out)
}

// loggingRoundTripper emits one debug event per HTTP exchange.
type loggingRoundTripper struct {
	next http.RoundTripper
	log  zerolog.Logger
}

// RoundTrip implements the http.RoundTripper interface.
func (t *loggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	resp, err := t.next.RoundTrip(req)
	if err != nil {
		t.log.Debug().
			Err(err).
			Str("method", req.Method).
			Str("path", req.URL.Path).
			Dur("duration", time.Since(start)).
			Msg("request failed")
		return nil, err
	}

	t.log.Debug().
		Str("method", req.Method).
		Str("path", req.URL.Path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("request completed")

	return resp, nil
}
