// Package client is the public surface for the address-normalization service. Each
// operation performs exactly one HTTP round trip and returns either a canonical
// result or a typed error from package apierror.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"jusho-client/internal/apierror"
	"jusho-client/internal/batch"
	"jusho-client/internal/models"
	"jusho-client/internal/normalizer"
	"jusho-client/internal/transport"

	"github.com/rs/zerolog"
)

const (
	// DefaultBaseURL is the production endpoint.
	DefaultBaseURL = "https://api.jusho.dev"
	// DefaultTimeout bounds every request unless Options.Timeout is set.
	DefaultTimeout = 30 * time.Second
)

// Options configures a Client. It is copied at construction and never read again.
type Options struct {
	BaseURL    string
	Timeout    time.Duration
	Headers    map[string]string
	HTTPClient *http.Client
	Logger     *zerolog.Logger
}

// Client is safe for concurrent use; it holds no state besides its configuration.
type Client struct {
	baseURL   string
	transport *transport.Transport
	log       zerolog.Logger
}

// New creates a Client.
func New(opts Options) *Client {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	headers := make(map[string]string, len(opts.Headers))
	for k, v := range opts.Headers {
		headers[k] = v
	}

	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	return &Client{
		baseURL: baseURL,
		transport: transport.New(transport.Options{
			BaseURL:    baseURL,
			Timeout:    timeout,
			Headers:    headers,
			HTTPClient: opts.HTTPClient,
			Logger:     logger,
		}),
		log: logger,
	}
}

// BaseURL returns the normalized base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Timeout returns the per-request deadline.
func (c *Client) Timeout() time.Duration {
	return c.transport.Timeout()
}

// Normalize normalizes a single address. When the service reports an ambiguous town
// match the error is a *models.AmbiguousMatch, not an *apierror.Error; check for it
// with errors.As before treating the failure as fatal.
func (c *Client) Normalize(ctx context.Context, address string) (models.NormalizationResult, error) {
	raw, err := c.transport.Send(ctx, http.MethodPost, "/normalize", models.NormalizeRequest{Address: address}, nil)
	if err != nil {
		if amb, ok := ambiguous(err); ok {
			return models.NormalizationResult{}, amb
		}
		return models.NormalizationResult{}, err
	}

	res, err := normalizer.Normalize(raw)
	if err != nil {
		return models.NormalizationResult{}, apierror.Network("unexpected response shape", err)
	}

	return res, nil
}

// NormalizeBatch normalizes up to models.MaxBatchSize addresses in one request.
// Per-address failures are reported in the summary; only a failure of the request
// itself is returned as an error. An empty batch, or one larger than
// models.MaxBatchSize, is rejected locally with a validation error and no request
// is sent.
func (c *Client) NormalizeBatch(ctx context.Context, addresses []string) (models.BatchSummary, error) {
	if err := batch.CheckInputs(addresses); err != nil {
		return models.BatchSummary{}, err
	}

	raw, err := c.transport.Send(ctx, http.MethodPost, "/normalize/batch", models.BatchRequest{Addresses: addresses}, nil)
	if err != nil {
		return models.BatchSummary{}, err
	}

	var resp models.BatchResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return models.BatchSummary{}, apierror.Network("unexpected batch response shape", err)
	}

	summary := batch.Aggregate(addresses, resp, normalizer.Normalize)
	c.log.Debug().
		Int("total", summary.Total).
		Int("success", summary.SuccessCount).
		Int("errors", summary.ErrorCount).
		Msg("batch normalized")

	return summary, nil
}

// Postal looks up the address registered for a postal code. Hyphens, dash variants
// and full-width digits are accepted.
func (c *Client) Postal(ctx context.Context, code string) (models.PostalResult, error) {
	sanitized := SanitizePostalCode(code)

	raw, err := c.transport.Send(ctx, http.MethodGet, "/postal/"+url.PathEscape(sanitized), nil, nil)
	if err != nil {
		return models.PostalResult{}, err
	}

	res, err := normalizer.Postal(raw, sanitized)
	if err != nil {
		return models.PostalResult{}, apierror.Network("unexpected postal response shape", err)
	}

	return res, nil
}

// Suggest returns completion candidates for a partial address. An empty list is a
// valid answer.
func (c *Client) Suggest(ctx context.Context, query string) (models.SuggestResult, error) {
	raw, err := c.transport.Send(ctx, http.MethodGet, "/suggest?"+url.Values{"q": {query}}.Encode(), nil, nil)
	if err != nil {
		return models.SuggestResult{}, err
	}

	var res models.SuggestResult
	if err := json.Unmarshal(raw, &res); err != nil {
		return models.SuggestResult{}, apierror.Network("unexpected suggest response shape", err)
	}
	if res.Suggestions == nil {
		res.Suggestions = []models.Suggestion{}
	}

	return res, nil
}

// Validate reports whether address is valid and, when it is, its normalized form.
func (c *Client) Validate(ctx context.Context, address string) (models.ValidationResult, error) {
	raw, err := c.transport.Send(ctx, http.MethodGet, "/validate?"+url.Values{"address": {address}}.Encode(), nil, nil)
	if err != nil {
		return models.ValidationResult{}, err
	}

	var wire struct {
		Valid      bool            `json:"valid"`
		Normalized json.RawMessage `json:"normalized"`
		MatchLevel string          `json:"match_level"`
	}
	if err := json.Unmarshal(raw, &wire); err != nil {
		return models.ValidationResult{}, apierror.Network("unexpected validate response shape", err)
	}

	res := models.ValidationResult{Valid: wire.Valid, MatchLevel: wire.MatchLevel}
	if wire.Valid && len(wire.Normalized) > 0 && string(wire.Normalized) != "null" {
		n, err := normalizer.Normalize(wire.Normalized)
		if err != nil {
			return models.ValidationResult{}, apierror.Network("unexpected validate response shape", err)
		}
		res.Normalized = &n
	}

	return res, nil
}

// Reverse resolves the postal code and administrative codes of an address.
func (c *Client) Reverse(ctx context.Context, address string) (models.ReverseResult, error) {
	raw, err := c.transport.Send(ctx, http.MethodGet, "/reverse?"+url.Values{"address": {address}}.Encode(), nil, nil)
	if err != nil {
		return models.ReverseResult{}, err
	}

	var res models.ReverseResult
	if err := json.Unmarshal(raw, &res); err != nil {
		return models.ReverseResult{}, apierror.Network("unexpected reverse response shape", err)
	}
	if res.Codes.PostCode == "" {
		res.Codes.PostCode = res.PostalCode
	}

	return res, nil
}

func ambiguous(err error) (*models.AmbiguousMatch, bool) {
	var apiErr *apierror.Error
	if !errors.As(err, &apiErr) || len(apiErr.Body) == 0 {
		return nil, false
	}

	var body models.ErrorBody
	if json.Unmarshal(apiErr.Body, &body) != nil {
		return nil, false
	}

	return models.ParseAmbiguousMatch(body.Detail)
}

// String implements fmt.Stringer.
func (c *Client) String() string {
	return fmt.Sprintf("jusho client (%s, timeout %s)", c.baseURL, c.Timeout())
}
