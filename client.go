package upyun

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultTimeout is the default HTTP client timeout.
	DefaultTimeout = 60 * time.Second

	// headerPrefix is the provider's private header namespace. Outbound
	// control headers and inbound metadata echoes both live under it.
	headerPrefix = "x-upyun-"

	purgeHost = "purge.upyun.com"
	purgePath = "/purge/"
)

// Client performs signed operations against the UpYun REST API.
//
// A Client is safe for concurrent use: its configuration and credential
// digest are read-only after New.
type Client struct {
	config     Config
	signer     *Signer
	httpClient *http.Client

	// baseURL/purgeURL override the provider hosts; empty outside of tests.
	baseURL  string
	purgeURL string

	// now is stubbed in tests to freeze the signed date.
	now func() time.Time
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client. Timeouts and transport tuning
// belong to it; the Client adds none of its own.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithBaseURL points the client at an alternative API base URL, e.g. an
// upyuntest fake server. The URL replaces scheme and host; the bucket prefix
// is still applied.
func WithBaseURL(rawurl string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(rawurl, "/")
	}
}

// WithPurgeURL points the purge operation at an alternative base URL.
func WithPurgeURL(rawurl string) Option {
	return func(c *Client) {
		c.purgeURL = strings.TrimSuffix(rawurl, "/")
	}
}

// New creates a Client for the given configuration.
func New(cfg *Config, opts ...Option) (*Client, error) {
	if cfg == nil {
		return nil, ErrConfigRequired
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Client{
		config:     *cfg,
		signer:     NewSigner(cfg.Operator, cfg.Password),
		httpClient: &http.Client{Timeout: DefaultTimeout},
		now:        time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// request is the ephemeral descriptor for one HTTP call. Built per call,
// discarded after send returns.
type request struct {
	method  string
	url     string
	headers map[string]string
	body    []byte
}

// response is the normalized outcome of one HTTP call. Headers holds the
// provider's private-namespace response headers with the prefix stripped and
// keys lower-cased.
type response struct {
	Result
	Headers     map[string]string
	ContentType string
	Body        []byte
}

// providerError converts a non-200 response into an *APIError.
func (r *response) providerError() error {
	return &APIError{
		StatusCode: r.StatusCode,
		Code:       r.ErrCode,
		Message:    r.ErrMsg,
	}
}

// scheme returns the configured request scheme.
func (c *Client) scheme() string {
	if c.config.UseHTTPS {
		return "https"
	}
	return "http"
}

// do builds and sends one signed REST request. path is the caller's path,
// not yet bucket-prefixed. Every REST operation goes through here; none
// issues its own HTTP call.
//
// Reserved headers (Date, Authorization) are set first and caller headers are
// merged after them, so an explicit caller value wins.
func (c *Client) do(ctx context.Context, method, path string, extra map[string]string, body []byte) (*response, error) {
	uri := "/" + c.config.Bucket + normalizePath(path)

	base := c.baseURL
	if base == "" {
		base = c.scheme() + "://" + c.config.Endpoint.Host()
	}

	date := httpDate(c.now())

	headers := map[string]string{
		"Date":          date,
		"Authorization": c.signer.SignREST(method, uri, date, int64(len(body))),
	}
	for k, v := range extra {
		headers[k] = v
	}

	return c.send(ctx, &request{
		method:  method,
		url:     base + uri,
		headers: headers,
		body:    body,
	})
}

// send performs the HTTP round trip and normalizes the outcome. Transport
// failures are recovered into a Result with status -1 so the wire contract
// looks uniform regardless of cause; the underlying error is still returned
// for callers that want it.
func (c *Client) send(ctx context.Context, r *request) (*response, error) {
	var bodyReader *bytes.Reader
	if len(r.body) > 0 {
		bodyReader = bytes.NewReader(r.body)
	} else {
		bodyReader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, r.url, bodyReader)
	if err != nil {
		return transportFailure(err), fmt.Errorf("create request: %w", err)
	}
	req.ContentLength = int64(len(r.body))
	for k, v := range r.headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return transportFailure(err), fmt.Errorf("do request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := readBody(resp)
	if err != nil {
		return transportFailure(err), fmt.Errorf("read response: %w", err)
	}

	out := &response{
		Result: Result{StatusCode: resp.StatusCode},
		Body:   body,
	}

	if resp.StatusCode == http.StatusOK {
		out.Headers = extractCustomHeaders(resp.Header)
		out.ContentType = resp.Header.Get("Content-Type")
		return out, nil
	}

	out.ErrCode, out.ErrMsg = parseErrorBody(body, resp.StatusCode)
	return out, nil
}

// transportFailure synthesizes the uniform negative result for requests that
// never produced a provider answer.
func transportFailure(err error) *response {
	return &response{
		Result: Result{
			StatusCode: -1,
			ErrCode:    -1,
			ErrMsg:     err.Error(),
		},
	}
}

// extractCustomHeaders collects response headers under the private namespace,
// stripping the prefix and lower-casing the remaining key.
func extractCustomHeaders(h http.Header) map[string]string {
	out := make(map[string]string)
	for name, values := range h {
		key := strings.ToLower(name)
		if !strings.HasPrefix(key, headerPrefix) || len(values) == 0 {
			continue
		}
		out[strings.TrimPrefix(key, headerPrefix)] = values[0]
	}
	return out
}

// parseErrorBody extracts the provider's {code, msg} error fields.
//
// Error bodies are not guaranteed to be well-formed, so this is deliberately
// best-effort: an absent or malformed body falls back to defaults derived
// from the status line instead of surfacing the parse failure. The fallback
// is this one branch only; real parse bugs elsewhere still propagate.
func parseErrorBody(body []byte, statusCode int) (code int, msg string) {
	var parsed struct {
		Code *int    `json:"code"`
		Msg  *string `json:"msg"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return 0, http.StatusText(statusCode)
	}

	code = 0
	if parsed.Code != nil {
		code = *parsed.Code
	}
	msg = http.StatusText(statusCode)
	if parsed.Msg != nil {
		msg = *parsed.Msg
	}
	return code, msg
}
