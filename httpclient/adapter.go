package httpclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// Adapter is the default Transport, built on net/http.
type Adapter struct {
	httpClient *http.Client
}

var _ Transport = (*Adapter)(nil)

// NewAdapter creates a net/http transport. A nil client gets a private
// clone of the default transport.
func NewAdapter(hc *http.Client) *Adapter {
	if hc == nil {
		hc = &http.Client{
			Transport: http.DefaultTransport.(*http.Transport).Clone(),
		}
	}
	return &Adapter{httpClient: hc}
}

// Do sends the request and buffers the response. Statuses of 400 and above
// are returned as a *ResponseError.
func (a *Adapter) Do(ctx context.Context, path string, opts TransportOptions) (RawResponse, error) {
	ctx, cancel, err := withTimeout(ctx, opts.Extra)
	if err != nil {
		return nil, err
	}
	defer cancel()

	httpReq, err := a.buildRequest(ctx, path, opts)
	if err != nil {
		return nil, err
	}

	resp, err := a.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	raw := NewRawResponse(resp.StatusCode, resp.Header, body)
	if resp.StatusCode >= 400 {
		return nil, NewResponseError(raw)
	}
	return raw, nil
}

// Unwrap returns the underlying *http.Client for advanced use cases.
func (a *Adapter) Unwrap() *http.Client {
	return a.httpClient
}

// Close releases idle connections.
func (a *Adapter) Close(_ context.Context) error {
	a.httpClient.CloseIdleConnections()
	return nil
}

func (a *Adapter) buildRequest(ctx context.Context, path string, opts TransportOptions) (*http.Request, error) {
	params, err := searchParams(opts.Extra)
	if err != nil {
		return nil, err
	}
	target, err := applyQuery(resolveURL(opts.PrefixURL, path), params)
	if err != nil {
		return nil, fmt.Errorf("build url: %w", err)
	}

	body, contentType, err := encodePayload(opts)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, opts.Method, target, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header = requestHeaders(opts, contentType).HTTPHeader()

	return httpReq, nil
}
