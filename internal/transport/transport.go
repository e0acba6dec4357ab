// Package transport sends single JSON requests to the normalization service with a
// per-request deadline.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"jusho-client/internal/apierror"

	"github.com/rs/zerolog"
)

// Options configures a Transport.
type Options struct {
	// BaseURL must already be stripped of trailing slashes.
	BaseURL string
	Timeout time.Duration
	// Headers are added to every request unless the call sets the same header.
	Headers    map[string]string
	HTTPClient *http.Client
	Logger     zerolog.Logger
}

// Transport issues one HTTP request per Send.
type Transport struct {
	baseURL string
	timeout time.Duration
	client  *http.Client
	log     zerolog.Logger
}

// New builds a Transport. The supplied HTTPClient is copied, never mutated.
func New(opts Options) *Transport {
	defaults := http.Header{}
	defaults.Set("Content-Type", "application/json")
	defaults.Set("Accept", "application/json")
	for k, v := range opts.Headers {
		defaults.Set(k, v)
	}

	var client http.Client
	if opts.HTTPClient != nil {
		client = *opts.HTTPClient
	}
	base := client.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	client.Transport = &headerRoundTripper{
		headers: defaults,
		next: &loggingRoundTripper{
			next: base,
			log:  opts.Logger,
		},
	}

	return &Transport{
		baseURL: opts.BaseURL,
		timeout: opts.Timeout,
		client:  &client,
		log:     opts.Logger,
	}
}

// Timeout returns the per-request deadline.
func (t *Transport) Timeout() time.Duration {
	return t.timeout
}

// Send performs method on path (relative to the base URL) and returns the raw JSON
// body of a success response. body, when non-nil, is sent as JSON. Non-success
// responses come back as a classified *apierror.Error.
func (t *Transport) Send(ctx context.Context, method, path string, body any, header http.Header) (json.RawMessage, error) {
	parent := ctx
	ctx, cancel := context.WithTimeout(parent, t.timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("transport: failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, t.baseURL+path, reader)
	if err != nil {
		return nil, apierror.Network(err.Error(), err)
	}
	for k, vs := range header {
		req.Header[http.CanonicalHeaderKey(k)] = vs
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, t.fail(parent, ctx, method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, t.fail(parent, ctx, method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apierror.Classify(resp.StatusCode, resp.Header, data)
	}

	var raw json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, apierror.Network("invalid JSON in response body", err)
	}

	return raw, nil
}

// fail classifies a request that produced no response. Only expiry of the
// transport's own deadline counts as a timeout; a caller context that ended
// first is reported as a network failure carrying the caller's reason.
func (t *Transport) fail(parent, ctx context.Context, method, path string, err error) *apierror.Error {
	var apiErr *apierror.Error
	switch {
	case parent.Err() != nil:
		apiErr = apierror.Network("request canceled: "+parent.Err().Error(), err)
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		apiErr = apierror.Timeout(t.timeout, err)
	default:
		apiErr = apierror.Network(err.Error(), err)
	}

	t.log.Warn().
		Err(err).
		Str("method", method).
		Str("path", path).
		Stringer("kind", apiErr.Kind).
		Msg("request did not complete")

	return apiErr
}
