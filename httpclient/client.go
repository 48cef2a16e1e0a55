package httpclient

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/risan/http-client/logger"
	"github.com/risan/http-client/util"
)

var errNoResponse = errors.New("transport returned no response")

// Client sends requests relative to a prefix URL, merging persistent default
// options into every call. Default options are not synchronized: do not
// mutate them while requests are in flight.
type Client struct {
	prefixURL  string
	defaults   map[string]any
	base       Transport
	transport  Transport
	middleware []Middleware
	log        *logger.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithTransport sets the transport. The default is a net/http Adapter.
func WithTransport(t Transport) ClientOption {
	return func(c *Client) {
		c.base = t
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *logger.Logger) ClientOption {
	return func(c *Client) {
		c.log = l
	}
}

// WithMiddleware wraps the transport. The first middleware is the outermost.
func WithMiddleware(mw ...Middleware) ClientOption {
	return func(c *Client) {
		c.middleware = append(c.middleware, mw...)
	}
}

// New creates a client. The defaults tree is copied, so later changes go
// through the SetDefault* and RemoveDefault* methods.
func New(prefixURL string, defaults map[string]any, opts ...ClientOption) *Client {
	c := &Client{
		prefixURL: prefixURL,
		defaults:  util.CloneTree(defaults),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.base == nil {
		c.base = NewAdapter(nil)
	}
	if c.log == nil {
		c.log = logger.NewNop()
	}
	c.log = c.log.WithComponent("httpclient")
	c.transport = Chain(c.base, c.middleware...)
	return c
}

// PrefixURL returns the URL requests are resolved against.
func (c *Client) PrefixURL() string {
	return c.prefixURL
}

// Transport returns the transport without middleware.
func (c *Client) Transport() Transport {
	return c.base
}

// Close releases the transport's resources when it holds any.
func (c *Client) Close(ctx context.Context) error {
	if closer, ok := c.base.(interface{ Close(context.Context) error }); ok {
		return closer.Close(ctx)
	}
	return nil
}

// Get sends a GET request.
func (c *Client) Get(ctx context.Context, path string, opts Options) (*Result, error) {
	return c.Request(ctx, http.MethodGet, path, opts)
}

// Post sends a POST request with body.
func (c *Client) Post(ctx context.Context, path string, body Body, opts Options) (*Result, error) {
	opts.Body = body
	return c.Request(ctx, http.MethodPost, path, opts)
}

// Put sends a PUT request with body.
func (c *Client) Put(ctx context.Context, path string, body Body, opts Options) (*Result, error) {
	opts.Body = body
	return c.Request(ctx, http.MethodPut, path, opts)
}

// Patch sends a PATCH request with body.
func (c *Client) Patch(ctx context.Context, path string, body Body, opts Options) (*Result, error) {
	opts.Body = body
	return c.Request(ctx, http.MethodPatch, path, opts)
}

// Delete sends a DELETE request.
func (c *Client) Delete(ctx context.Context, path string, opts Options) (*Result, error) {
	return c.Request(ctx, http.MethodDelete, path, opts)
}

// Request sends a request and decodes the response.
//
// On success the Result carries the decoded Response and, if OnSuccess is
// set, its return value. On failure the returned error is an *Error, unless
// OnError is set: then the Result is Recovered and the error is nil. Failures
// while preparing the request never reach OnError.
func (c *Client) Request(ctx context.Context, method, path string, opts Options) (*Result, error) {
	log := c.log.WithFields(logger.Fields(
		logger.FieldRequestID, uuid.NewString(),
		logger.FieldMethod, method,
		logger.FieldPath, path,
	))

	eff, err := c.RequestOptions(opts)
	if err != nil {
		e := newInternalError(err)
		log.Error("failed to prepare request", logger.Fields(logger.FieldError, err.Error()))
		return failed(e), e
	}

	log.Debug("dispatching request", logger.Fields(logger.FieldPrefixURL, c.prefixURL))
	start := time.Now()

	raw, err := c.transport.Do(ctx, stripLeadingSlash(path), TransportOptions{
		Method:    method,
		PrefixURL: c.prefixURL,
		Headers:   eff.Headers,
		Body:      eff.Body,
		JSON:      eff.JSON,
		Extra:     eff.Extra,
	})
	if err != nil {
		return c.fail(ctx, log, eff, err, time.Since(start))
	}
	if raw == nil {
		return c.fail(ctx, log, eff, newInternalError(errNoResponse), time.Since(start))
	}

	resp, err := FromNativeResponse(ctx, raw, eff.ResponseType)
	if err != nil {
		return c.fail(ctx, log, eff, newInternalError(err), time.Since(start))
	}

	log.Debug("request completed", logger.MergeWithDuration(
		logger.Fields(logger.FieldStatus, resp.Status), time.Since(start)))

	result := succeeded(resp)
	if eff.OnSuccess != nil {
		result.Value = eff.OnSuccess(resp)
		result.hooked = true
	}
	return result, nil
}

// fail normalizes a transport rejection or decode failure into an *Error and
// hands it to OnError when set.
func (c *Client) fail(ctx context.Context, log *logger.Logger, eff EffectiveOptions, cause error, elapsed time.Duration) (*Result, error) {
	e, ok := cause.(*Error)
	if !ok {
		var resp *Response
		message := cause.Error()

		var rejection *ResponseError
		if errors.As(cause, &rejection) {
			message = rejection.Message
			if rejection.Response != nil {
				resp = c.decodeErrorResponse(ctx, log, rejection.Response)
			}
		}

		e = NewError(message, resp, ErrorPaths{
			ErrorMessagePath:     eff.ErrorMessagePath,
			ValidationErrorsPath: eff.ValidationErrorsPath,
		})
		e.Err = cause
	}

	fields := logger.MergeWithDuration(logger.Fields(logger.FieldError, e.Message), elapsed)
	if e.Response != nil {
		fields[logger.FieldStatus] = e.Response.Status
	}
	log.Warn("request failed", fields)

	if eff.OnError != nil {
		return recovered(e, eff.OnError(e)), nil
	}
	return failed(e), e
}

// decodeErrorResponse decodes the response of a rejection. A body that does
// not match its content type is kept as text.
func (c *Client) decodeErrorResponse(ctx context.Context, log *logger.Logger, raw RawResponse) *Response {
	resp, err := FromNativeResponse(ctx, raw, ResponseTypeAuto)
	if err == nil {
		return resp
	}

	log.Warn("failed to decode error response", logger.Fields(logger.FieldError, err.Error()))
	text, textErr := raw.Text(ctx)
	if textErr != nil {
		return nil
	}
	return NewResponse(text, raw.StatusCode(), HeadersFromHTTP(raw.Header()))
}
