package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"tonsor/config"
	"tonsor/infras/otel"
	"tonsor/shared/constant"
	"tonsor/shared/failure"

	"github.com/rs/zerolog/log"
)

// Client is the typed HTTP client for the remote booking backend. The base
// URL comes from configuration, resolved once at construction; callers only
// ever name endpoint paths.
type Client struct {
	cfg        *config.Config
	httpClient *http.Client
	baseURL    string
	otel       otel.Otel
}

func New(cfg *config.Config, ot otel.Otel) *Client {
	return &Client{
		cfg: cfg,
		// Per-call deadlines come from the context; the transport itself
		// carries no timeout so the probe budget can undercut the write one.
		httpClient: &http.Client{},
		baseURL:    strings.TrimRight(cfg.Backend.BaseURL, "/"),
		otel:       ot,
	}
}

// envelope is the least common denominator of backend error bodies.
type envelope struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

type requestOptions struct {
	token   string
	query   url.Values
	noCache bool
}

type Option func(*requestOptions)

// WithToken attaches a bearer token to the request.
func WithToken(token string) Option {
	return func(o *requestOptions) {
		o.token = token
	}
}

// WithQuery appends query parameters to the request URL.
func WithQuery(query url.Values) Option {
	return func(o *requestOptions) {
		o.query = query
	}
}

// WithNoCache disables intermediary caching, used for slot-availability reads
// whose booked flags must always be fresh.
func WithNoCache() Option {
	return func(o *requestOptions) {
		o.noCache = true
	}
}

// APIPath prefixes an endpoint with the REST api root ("/api").
func (c *Client) APIPath(endpoint string) string {
	return c.cfg.Backend.APIPrefix + endpoint
}

// RoutePath builds a legacy routed path ("/api-route?path=<name>"); further
// parameters are appended by WithQuery.
func (c *Client) RoutePath(name string) string {
	return c.cfg.Backend.RoutePrefix + "?" + constant.RequestParamPath + "=" + name
}

// Get performs a GET within the generic timeout budget.
func (c *Client) Get(ctx context.Context, path string, out any, opts ...Option) error {
	return c.call(ctx, http.MethodGet, path, nil, out, c.readTimeout(), opts...)
}

// Post performs a POST within the long write budget.
func (c *Client) Post(ctx context.Context, path string, body, out any, opts ...Option) error {
	return c.call(ctx, http.MethodPost, path, body, out, c.writeTimeout(), opts...)
}

// Delete performs a DELETE within the generic timeout budget.
func (c *Client) Delete(ctx context.Context, path string, out any, opts ...Option) error {
	return c.call(ctx, http.MethodDelete, path, nil, out, c.readTimeout(), opts...)
}

// Probe checks backend reachability with the short connection-test budget.
func (c *Client) Probe(ctx context.Context) error {
	timeout := time.Duration(c.cfg.Backend.ProbeTimeoutSeconds) * time.Second

	return c.call(ctx, http.MethodGet, c.APIPath("/test-connection"), nil, nil, timeout)
}

func (c *Client) readTimeout() time.Duration {
	return time.Duration(c.cfg.Backend.TimeoutSeconds) * time.Second
}

func (c *Client) writeTimeout() time.Duration {
	return time.Duration(c.cfg.Backend.WriteTimeoutSeconds) * time.Second
}

func (c *Client) call(ctx context.Context, method, path string, body, out any, timeout time.Duration, opts ...Option) (err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+"."+method+" "+path)
	defer scope.End()
	defer scope.TraceIfError(err)

	options := requestOptions{}
	for _, opt := range opts {
		opt(&options)
	}

	fullURL := c.baseURL + path
	if options.query != nil {
		separator := "?"
		if strings.Contains(fullURL, "?") {
			separator = "&"
		}

		fullURL += separator + options.query.Encode()
	}

	var payload []byte
	if body != nil {
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp, err := c.doWithRetry(ctx, method, fullURL, payload, options)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			log.Warn().Str("url", fullURL).Dur("timeout", timeout).Msg("request aborted by timeout budget")

			return failure.Timeout("the server is taking too long to respond") //nolint:wrapcheck
		}

		return fmt.Errorf("unable to reach the server: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		// Best-effort decode so callers still see structured conflict details
		// (the 409 body carries the clashing appointment id).
		if out != nil && len(respBody) > 0 {
			_ = json.Unmarshal(respBody, out)
		}

		return failure.FromStatus(resp.StatusCode, errorMessage(respBody)) //nolint:wrapcheck
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		log.Error().Err(err).Str("url", fullURL).Msg("backend returned a malformed response")

		return failure.InternalError(fmt.Errorf("malformed response from server: %w", err)) //nolint:wrapcheck
	}

	return nil
}

// doWithRetry reissues the request on transport failures up to the configured
// attempt budget. Aborted requests are never retried: the deadline belongs to
// the whole call, not to a single attempt.
func (c *Client) doWithRetry(ctx context.Context, method, fullURL string, payload []byte, options requestOptions) (*http.Response, error) {
	delay := time.Duration(c.cfg.Backend.RetryDelaySeconds) * time.Second

	var lastErr error

	for attempt := 0; attempt <= c.cfg.Backend.MaxRetries; attempt++ {
		if attempt > 0 {
			log.Debug().Int("attempt", attempt).Str("url", fullURL).Msg("retrying request")

			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}

		req, err := c.newRequest(ctx, method, fullURL, payload, options)
		if err != nil {
			return nil, err
		}

		resp, err := c.httpClient.Do(req)
		if err == nil {
			return resp, nil
		}

		lastErr = err

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}

	return nil, lastErr
}

func (c *Client) newRequest(ctx context.Context, method, fullURL string, payload []byte, options requestOptions) (*http.Request, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set(constant.RequestHeaderAccept, constant.ContentTypeJSON)
	req.Header.Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)

	if options.token != "" {
		req.Header.Set(constant.RequestHeaderAuthorization, "Bearer "+options.token)
	}

	if options.noCache {
		req.Header.Set(constant.RequestHeaderCacheControl, constant.CacheControlOff)
		req.Header.Set(constant.RequestHeaderPragma, constant.PragmaNoCache)
	}

	return req, nil
}

func errorMessage(body []byte) string {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return ""
	}

	if env.Message != "" {
		return env.Message
	}

	return env.Error
}
