package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

var errEmptyJSONBody = errors.New("parse json body: empty body")

// RawResponse is a transport response whose body has not been decoded yet.
type RawResponse interface {
	StatusCode() int
	Header() http.Header
	// JSON parses the body as JSON. An empty body is an error.
	JSON(ctx context.Context) (any, error)
	Text(ctx context.Context) (string, error)
	Blob(ctx context.Context) (*Blob, error)
	ArrayBuffer(ctx context.Context) ([]byte, error)
}

// Blob is an opaque binary body together with its media type.
type Blob struct {
	Type string
	Data []byte
}

// Size returns the number of bytes in the blob.
func (b *Blob) Size() int {
	return len(b.Data)
}

// NativeResponse is a fully buffered RawResponse.
type NativeResponse struct {
	status int
	header http.Header
	body   []byte
}

var _ RawResponse = (*NativeResponse)(nil)

// NewRawResponse creates a buffered raw response.
func NewRawResponse(status int, header http.Header, body []byte) *NativeResponse {
	if header == nil {
		header = http.Header{}
	}
	return &NativeResponse{status: status, header: header, body: body}
}

func (r *NativeResponse) StatusCode() int     { return r.status }
func (r *NativeResponse) Header() http.Header { return r.header }

func (r *NativeResponse) JSON(ctx context.Context) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(r.body) == 0 {
		return nil, errEmptyJSONBody
	}
	var v any
	if err := json.Unmarshal(r.body, &v); err != nil {
		return nil, fmt.Errorf("parse json body: %w", err)
	}
	return v, nil
}

func (r *NativeResponse) Text(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return string(r.body), nil
}

// Blob returns the body with its declared content type. Without one the
// type is detected from the content.
func (r *NativeResponse) Blob(ctx context.Context) (*Blob, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	contentType := r.header.Get("Content-Type")
	if contentType == "" {
		contentType = mimetype.Detect(r.body).String()
	}
	return &Blob{Type: contentType, Data: r.body}, nil
}

func (r *NativeResponse) ArrayBuffer(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.body, nil
}

// TransportOptions is everything a transport needs for one round trip.
type TransportOptions struct {
	Method    string
	PrefixURL string
	Headers   Headers
	// Body is nil when JSON is set.
	Body Body
	// JSON is a payload the transport serializes as JSON.
	JSON map[string]any
	// Extra carries passthrough options such as "timeout" and "searchParams".
	Extra map[string]any
}

// Transport performs a single HTTP round trip. A response with an error
// status is reported as a *ResponseError; any other error means no
// response was received.
type Transport interface {
	Do(ctx context.Context, path string, opts TransportOptions) (RawResponse, error)
}

// TransportFunc adapts a function to the Transport interface.
type TransportFunc func(ctx context.Context, path string, opts TransportOptions) (RawResponse, error)

// Do calls f.
func (f TransportFunc) Do(ctx context.Context, path string, opts TransportOptions) (RawResponse, error) {
	return f(ctx, path, opts)
}

// Middleware wraps a transport with extra behavior.
type Middleware func(Transport) Transport

// Chain applies middleware so that the first one is the outermost.
func Chain(t Transport, middleware ...Middleware) Transport {
	for i := len(middleware) - 1; i >= 0; i-- {
		t = middleware[i](t)
	}
	return t
}

// ResponseError is a transport rejection that carries the response.
type ResponseError struct {
	Message  string
	Response RawResponse
	Err      error
}

// NewResponseError creates the rejection transports return for error statuses.
func NewResponseError(resp RawResponse) *ResponseError {
	status := resp.StatusCode()
	return &ResponseError{
		Message:  strings.TrimSpace(fmt.Sprintf("Request failed with status code %d %s", status, http.StatusText(status))),
		Response: resp,
	}
}

func (e *ResponseError) Error() string {
	return e.Message
}

func (e *ResponseError) Unwrap() error {
	return e.Err
}
