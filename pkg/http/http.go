// Package http provides the fluent client used to talk to the FarmXChain
// backend.
//
// A Client is bound to the API base URL and, optionally, to a token source
// that supplies the bearer for every request:
//
//	api := http.NewClient(config.APIBaseURL(), http.WithTimeout(30*time.Second))
//	authed := api.WithTokenSource(sess.Token)
//
//	crops, err := http.Fetch[[]models.Crop](authed.Get(ctx, "/crops/all"))
//
//	// POST JSON body
//	order, err := http.Fetch[models.Order](authed.Post(ctx, "/orders").Body(req))
//
// Every backend reply is wrapped in an envelope; Fetch unwraps the data field
// and turns non-2xx replies into *APIError carrying the backend's message.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	gohttp "net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"github.com/farmxchain/farmx/pkg/logger"
	"github.com/farmxchain/farmx/pkg/metrics"
	"github.com/farmxchain/farmx/pkg/reqid"
)

// defaultTransport is the connection-pooled transport used in production.
// Tests can replace DefaultClient.Transport to inject mocks.
var defaultTransport = &gohttp.Transport{
	Proxy:               gohttp.ProxyFromEnvironment,
	MaxIdleConns:        100,
	MaxIdleConnsPerHost: 50,
	IdleConnTimeout:     90 * time.Second,
}

// DefaultClient is the shared HTTP client used by every Client that was not
// given its own. Tests can swap DefaultClient.Transport to intercept calls:
//
//	http.DefaultClient.Transport = myMockTransport
//	defer http.ResetTransport()
var DefaultClient = &gohttp.Client{
	Transport: defaultTransport,
}

// ResetTransport restores the production transport on DefaultClient.
// Call via defer after injecting a test transport.
func ResetTransport() {
	DefaultClient.Transport = defaultTransport
}

// ------------------- Client -------------------

// TokenSource returns the bearer token for a request, or "" to send none.
type TokenSource func(ctx context.Context) string

// Client builds requests against one backend base URL.
// It is safe for concurrent use; WithTokenSource returns a copy.
type Client struct {
	baseURL string
	hc      *gohttp.Client
	token   TokenSource
	timeout time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient routes requests through hc instead of DefaultClient.
func WithHTTPClient(hc *gohttp.Client) Option { return func(c *Client) { c.hc = hc } }

// WithTimeout sets the per-request timeout. Zero disables it.
func WithTimeout(d time.Duration) Option { return func(c *Client) { c.timeout = d } }

// NewClient returns a client for baseURL (e.g. "http://localhost:8080/api/v1").
// Every request is a single attempt; failures go straight back to the caller.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: 30 * time.Second,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// WithTokenSource returns a copy of c that attaches the bearer from ts.
func (c *Client) WithTokenSource(ts TokenSource) *Client {
	cp := *c
	cp.token = ts
	return &cp
}

// Get starts a GET request.
func (c *Client) Get(ctx context.Context, path string) *Request {
	return c.newRequest(ctx, gohttp.MethodGet, path)
}

// Post starts a POST request.
func (c *Client) Post(ctx context.Context, path string) *Request {
	return c.newRequest(ctx, gohttp.MethodPost, path)
}

// Put starts a PUT request.
func (c *Client) Put(ctx context.Context, path string) *Request {
	return c.newRequest(ctx, gohttp.MethodPut, path)
}

// Patch starts a PATCH request.
func (c *Client) Patch(ctx context.Context, path string) *Request {
	return c.newRequest(ctx, gohttp.MethodPatch, path)
}

// Delete starts a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) *Request {
	return c.newRequest(ctx, gohttp.MethodDelete, path)
}

func (c *Client) newRequest(ctx context.Context, method, path string) *Request {
	if ctx == nil {
		ctx = context.Background()
	}
	r := &Request{
		client:  c,
		method:  method,
		path:    path,
		query:   url.Values{},
		headers: map[string]string{"Accept": "application/json"},
		timeout: c.timeout,
		ctx:     ctx,
	}
	if c.token != nil {
		if tok := c.token(ctx); tok != "" {
			r.Bearer(tok)
		}
	}
	return r
}

func (c *Client) httpClient() *gohttp.Client {
	if c.hc != nil {
		return c.hc
	}
	return DefaultClient
}

// ------------------- Request -------------------

// Request is a fluent HTTP request builder.
type Request struct {
	client  *Client
	method  string
	path    string
	query   url.Values
	headers map[string]string
	body    interface{}
	file    *filePart
	timeout time.Duration
	ctx     context.Context
}

type filePart struct {
	field, name, contentType string
	data                     []byte
}

// Header adds a single header to the request.
func (r *Request) Header(key, value string) *Request {
	r.headers[key] = value
	return r
}

// Bearer sets the Authorization: Bearer <token> header.
func (r *Request) Bearer(token string) *Request {
	return r.Header("Authorization", "Bearer "+token)
}

// Query adds a query-string parameter. Empty values are skipped.
func (r *Request) Query(key, value string) *Request {
	if value != "" {
		r.query.Add(key, value)
	}
	return r
}

// Body sets the request body. v is marshalled to JSON automatically.
// Pass a string or []byte to send raw bodies.
func (r *Request) Body(v interface{}) *Request {
	r.body = v
	return r
}

// File turns the request into a multipart/form-data upload with a single
// file part.
func (r *Request) File(field, filename, contentType string, data []byte) *Request {
	r.file = &filePart{field: field, name: filename, contentType: contentType, data: data}
	return r
}

// URL returns the absolute URL the request will hit.
func (r *Request) URL() string {
	u := r.client.baseURL + "/" + strings.TrimLeft(r.path, "/")
	if len(r.query) > 0 {
		sep := "?"
		if strings.Contains(u, "?") {
			sep = "&"
		}
		u += sep + r.query.Encode()
	}
	return u
}

// ------------------- Send -------------------

// Send executes the request and returns a Response. Only transport failures
// are errors here; call Throw for HTTP status.
func (r *Request) Send() (*Response, error) {
	start := time.Now()
	resource := resourceOf(r.path)

	body, ct, err := r.buildBody()
	if err != nil {
		return nil, err
	}

	ctx := r.ctx
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	req, err := gohttp.NewRequestWithContext(ctx, r.method, r.URL(), body)
	if err != nil {
		return nil, fmt.Errorf("http: build request: %w", err)
	}

	for k, v := range r.headers {
		req.Header.Set(k, v)
	}
	if ct != "" {
		req.Header.Set("Content-Type", ct)
	}
	if id := reqid.FromCtx(r.ctx); id != "" {
		req.Header.Set(reqid.Header, id)
	}

	resp, err := r.client.httpClient().Do(req)
	if err != nil {
		metrics.ObserveAPICall(r.method, resource, 0, start)
		return nil, fmt.Errorf("http: send: %w", err)
	}

	raw, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("http: read body: %w", err)
	}

	metrics.ObserveAPICall(r.method, resource, resp.StatusCode, start)
	logger.WithCtx(r.ctx).Debug("api call",
		"method", r.method,
		"path", r.path,
		"status", resp.StatusCode,
		"duration", time.Since(start).String(),
	)

	return &Response{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Raw:        raw,
	}, nil
}

func (r *Request) buildBody() (io.Reader, string, error) {
	if r.file != nil {
		return r.buildMultipart()
	}
	if r.body == nil {
		return nil, "", nil
	}
	switch v := r.body.(type) {
	case string:
		return bytes.NewBufferString(v), "text/plain", nil
	case []byte:
		return bytes.NewReader(v), "application/octet-stream", nil
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return nil, "", fmt.Errorf("http: marshal body: %w", err)
		}
		return bytes.NewReader(b), "application/json", nil
	}
}

func (r *Request) buildMultipart() (io.Reader, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, r.file.field, r.file.name))
	ct := r.file.contentType
	if ct == "" {
		ct = "application/octet-stream"
	}
	h.Set("Content-Type", ct)

	part, err := mw.CreatePart(h)
	if err != nil {
		return nil, "", fmt.Errorf("http: multipart: %w", err)
	}
	if _, err := part.Write(r.file.data); err != nil {
		return nil, "", fmt.Errorf("http: multipart: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, "", fmt.Errorf("http: multipart: %w", err)
	}
	return &buf, mw.FormDataContentType(), nil
}

// resourceOf returns the first path segment ("/crops/7" → "crops") for metric labels.
func resourceOf(path string) string {
	p := strings.TrimLeft(path, "/")
	if i := strings.IndexAny(p, "/?"); i >= 0 {
		p = p[:i]
	}
	if p == "" {
		return "root"
	}
	return p
}

// ------------------- Response -------------------

// Response is a fully read backend reply.
type Response struct {
	StatusCode int
	Headers    gohttp.Header
	Raw        []byte
}

// JSON unmarshals the response body into dest.
func (r *Response) JSON(dest interface{}) error {
	if err := json.Unmarshal(r.Raw, dest); err != nil {
		return fmt.Errorf("http: decode JSON: %w", err)
	}
	return nil
}

// Throw returns an *APIError if the response status is not 2xx.
func (r *Response) Throw() error {
	if r.StatusCode < 200 || r.StatusCode >= 300 {
		return newAPIError(r.StatusCode, r.Raw)
	}
	return nil
}
