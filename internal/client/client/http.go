package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"golang.org/x/net/publicsuffix"

	"github.com/dmitrijs2005/gophnotes/internal/common"
	"github.com/dmitrijs2005/gophnotes/internal/logging"
)

var _ Client = (*HTTPClient)(nil)

// HTTPClient talks JSON over HTTP to the notes backend.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	tokens  TokenStore
	log     logging.Logger
}

type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client. If it has no cookie
// jar, a copy with the client's jar is used instead.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) {
		cp := *hc
		if cp.Jar == nil {
			cp.Jar = c.http.Jar
		}
		c.http = &cp
	}
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.log = l }
}

// NewHTTPClient creates a client for the backend at baseURL. Trailing
// slashes of baseURL are dropped. tokens may be nil, in which case no token
// is attached or captured.
func NewHTTPClient(baseURL string, tokens TokenStore, opts ...Option) (*HTTPClient, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}

	c := &HTTPClient{
		baseURL: NormalizeBaseURL(baseURL),
		http:    &http.Client{Jar: jar},
		tokens:  tokens,
		log:     logging.NopLogger{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// NormalizeBaseURL strips trailing slashes.
func NormalizeBaseURL(u string) string {
	return strings.TrimRight(strings.TrimSpace(u), "/")
}

// BaseURL returns the normalized base URL.
func (c *HTTPClient) BaseURL() string {
	return c.baseURL
}

func (c *HTTPClient) Request(ctx context.Context, path string, opts RequestOptions) (json.RawMessage, error) {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	if opts.Body != nil {
		b, err := json.Marshal(opts.Body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	req.Header.Set(common.HeaderContentType, common.ContentTypeJSON)
	if !opts.SkipAuth && c.tokens != nil {
		if token, ok := c.tokens.Token(); ok {
			req.Header.Set(common.HeaderAuthorization, common.BearerPrefix+token)
		}
	}
	for k, v := range opts.Headers {
		req.Header.Set(k, v)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug(ctx, "api request failed", "method", method, "path", path, "error", err)
		return nil, fmt.Errorf("%w: %s %s: %w", ErrUnavailable, method, path, err)
	}
	defer resp.Body.Close()

	c.log.Debug(ctx, "api request", "method", method, "path", path,
		"status", resp.StatusCode, "elapsed", time.Since(start))

	ok := resp.StatusCode >= 200 && resp.StatusCode < 300

	data, err := readBody(resp)
	if err != nil {
		if !ok && errors.Is(err, errMalformedJSON) {
			return nil, newAPIError(resp.StatusCode, nil)
		}
		return nil, err
	}

	if !ok {
		return nil, newAPIError(resp.StatusCode, data)
	}

	if token := firstString(data, "token"); token != "" && c.tokens != nil {
		if err := c.tokens.SetToken(ctx, token); err != nil {
			return nil, fmt.Errorf("store token: %w", err)
		}
	}

	return data, nil
}

func (c *HTTPClient) Do(ctx context.Context, path string, opts RequestOptions, out any) error {
	data, err := c.Request(ctx, path, opts)
	if err != nil {
		return err
	}
	if out == nil || isNull(data) {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

var errMalformedJSON = errors.New("malformed json response")

// readBody parses the response body. JSON content is returned as is; any
// other non-empty content is wrapped as {"message": <text>}. An empty body
// yields nil.
func readBody(resp *http.Response) (json.RawMessage, error) {
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if strings.Contains(resp.Header.Get(common.HeaderContentType), common.ContentTypeJSON) {
		raw = bytes.TrimSpace(raw)
		if len(raw) == 0 {
			return nil, nil
		}
		if !json.Valid(raw) {
			return nil, errMalformedJSON
		}
		return json.RawMessage(raw), nil
	}

	if len(raw) == 0 {
		return nil, nil
	}
	wrapped, err := json.Marshal(map[string]string{"message": string(raw)})
	if err != nil {
		return nil, err
	}
	return wrapped, nil
}

// firstString returns the first non-empty string value among keys of the
// JSON object in data. Non-objects and non-string values are skipped.
func firstString(data json.RawMessage, keys ...string) string {
	if len(data) == 0 {
		return ""
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return ""
	}
	for _, k := range keys {
		raw, ok := obj[k]
		if !ok {
			continue
		}
		var s string
		if err := json.Unmarshal(raw, &s); err == nil && s != "" {
			return s
		}
	}
	return ""
}

func isNull(data json.RawMessage) bool {
	return len(data) == 0 || string(data) == "null"
}
