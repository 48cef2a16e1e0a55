package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/risan/http-client/httpclient"
)

// Client is a JSON-focused REST client that wraps the base HTTP client.
type Client struct {
	http *httpclient.Client
}

// New creates a REST client. JSON content-type and accept headers are added
// to the defaults unless already present.
func New(prefixURL string, defaults map[string]any, opts ...httpclient.ClientOption) *Client {
	c := httpclient.New(prefixURL, defaults, opts...)
	headers := httpclient.NewHeaders(toHeaderMap(c.DefaultOptions()[httpclient.OptionHeaders]))
	if !headers.Has("content-type") {
		c.SetDefaultHeader("content-type", "application/json")
	}
	if !headers.Has("accept") {
		c.SetDefaultHeader("accept", "application/json")
	}
	return &Client{http: c}
}

// NewFromClient creates a REST client from an existing HTTP client.
func NewFromClient(c *httpclient.Client) *Client {
	return &Client{http: c}
}

// HTTP returns the underlying HTTP client.
func (c *Client) HTTP() *httpclient.Client {
	return c.http
}

// RequestOption configures a single REST request.
type RequestOption func(*httpclient.Options)

// WithQuery adds query parameters to the request.
func WithQuery(params map[string]string) RequestOption {
	return func(o *httpclient.Options) {
		setExtra(o, httpclient.OptionSearchParams, params)
	}
}

// WithHeaders adds headers to the request.
func WithHeaders(headers map[string]string) RequestOption {
	return func(o *httpclient.Options) {
		if o.Headers == nil {
			o.Headers = make(map[string]any, len(headers))
		}
		for k, v := range headers {
			o.Headers[k] = v
		}
	}
}

// WithTimeout bounds the request.
func WithTimeout(d time.Duration) RequestOption {
	return func(o *httpclient.Options) {
		setExtra(o, httpclient.OptionTimeout, d)
	}
}

// WithErrorPaths sets where error messages and validation errors are read
// from in JSON error bodies.
func WithErrorPaths(messagePath, validationErrorsPath string) RequestOption {
	return func(o *httpclient.Options) {
		o.ErrorMessagePath = messagePath
		o.ValidationErrorsPath = validationErrorsPath
	}
}

// Response wraps a typed REST response.
type Response[T any] struct {
	// StatusCode is the HTTP status code.
	StatusCode int
	// Headers are the response headers.
	Headers httpclient.Headers
	// Data is the decoded response body.
	Data T
}

// Get performs a GET request and decodes the JSON response into type T.
//
// Like every method here, a failure whose body is JSON returns both a
// Response holding that body decoded into T and the *httpclient.Error.
func Get[T any](ctx context.Context, c *Client, path string, opts ...RequestOption) (*Response[T], error) {
	return do[T](ctx, c, http.MethodGet, path, nil, opts...)
}

// Post performs a POST request with a JSON body and decodes the response into type T.
// On a JSON error body both the decoded Response and the error are returned.
func Post[T any](ctx context.Context, c *Client, path string, body any, opts ...RequestOption) (*Response[T], error) {
	return do[T](ctx, c, http.MethodPost, path, body, opts...)
}

// Put performs a PUT request with a JSON body and decodes the response into type T.
func Put[T any](ctx context.Context, c *Client, path string, body any, opts ...RequestOption) (*Response[T], error) {
	return do[T](ctx, c, http.MethodPut, path, body, opts...)
}

// Patch performs a PATCH request with a JSON body and decodes the response into type T.
func Patch[T any](ctx context.Context, c *Client, path string, body any, opts ...RequestOption) (*Response[T], error) {
	return do[T](ctx, c, http.MethodPatch, path, body, opts...)
}

// Delete performs a DELETE request and decodes the response into type T.
func Delete[T any](ctx context.Context, c *Client, path string, opts ...RequestOption) (*Response[T], error) {
	return do[T](ctx, c, http.MethodDelete, path, nil, opts...)
}

// do executes a REST request and decodes the JSON response. When a request
// fails with a JSON error body, the body is decoded into T and returned
// together with the error.
func do[T any](ctx context.Context, c *Client, method, path string, body any, opts ...RequestOption) (*Response[T], error) {
	req := httpclient.Options{ResponseType: httpclient.ResponseTypeArrayBuffer}
	for _, opt := range opts {
		opt(&req)
	}

	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("httpclient/rest: encode request: %w", err)
		}
		req.Body = httpclient.RawBody(data)
		if !httpclient.NewHeaders(req.Headers).Has("content-type") {
			WithHeaders(map[string]string{"content-type": "application/json"})(&req)
		}
	}

	result, err := c.http.Request(ctx, method, path, req)
	if err != nil {
		// Error bodies are decoded by content type; hand back a JSON one as T.
		if e, ok := httpclient.AsError(err); ok && e.HasJSONBody() {
			if data, convErr := convert[T](e.Response.Body); convErr == nil {
				return &Response[T]{
					StatusCode: e.Response.Status,
					Headers:    e.Response.Headers,
					Data:       data,
				}, err
			}
		}
		return nil, err
	}

	resp := result.Response
	var data T
	if raw, ok := resp.Body.([]byte); ok && len(raw) > 0 {
		if err := json.Unmarshal(raw, &data); err != nil {
			return nil, fmt.Errorf("httpclient/rest: decode response: %w", err)
		}
	}

	return &Response[T]{
		StatusCode: resp.Status,
		Headers:    resp.Headers,
		Data:       data,
	}, nil
}

// convert re-decodes an already parsed JSON value into T.
func convert[T any](v any) (T, error) {
	var data T
	raw, err := json.Marshal(v)
	if err != nil {
		return data, err
	}
	err = json.Unmarshal(raw, &data)
	return data, err
}

func setExtra(o *httpclient.Options, key string, value any) {
	if o.Extra == nil {
		o.Extra = make(map[string]any)
	}
	o.Extra[key] = value
}

func toHeaderMap(v any) map[string]any {
	if m, ok := v.(map[string]any); ok {
		return m
	}
	return nil
}
