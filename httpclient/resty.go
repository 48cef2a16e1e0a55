package httpclient

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"

	"github.com/risan/http-client/logger"
)

// RestyTransport is a Transport built on go-resty. Retries configured on the
// resty client are left to resty.
type RestyTransport struct {
	client *resty.Client
}

var _ Transport = (*RestyTransport)(nil)

// NewRestyTransport wraps a resty client. A nil client gets resty.New().
func NewRestyTransport(rc *resty.Client) *RestyTransport {
	if rc == nil {
		rc = resty.New()
	}
	return &RestyTransport{client: rc}
}

// SetLogger routes resty's own log output through l.
func (t *RestyTransport) SetLogger(l *logger.Logger) *RestyTransport {
	t.client.SetLogger(restyLogger{l.WithComponent("resty")})
	return t
}

// Unwrap returns the underlying resty client.
func (t *RestyTransport) Unwrap() *resty.Client {
	return t.client
}

// Do sends the request. Statuses of 400 and above are returned as a
// *ResponseError.
func (t *RestyTransport) Do(ctx context.Context, path string, opts TransportOptions) (RawResponse, error) {
	ctx, cancel, err := withTimeout(ctx, opts.Extra)
	if err != nil {
		return nil, err
	}
	defer cancel()

	params, err := searchParams(opts.Extra)
	if err != nil {
		return nil, err
	}
	body, contentType, err := encodePayload(opts)
	if err != nil {
		return nil, err
	}

	req := t.client.R().
		SetContext(ctx).
		SetHeaderMultiValues(requestHeaders(opts, contentType).HTTPHeader())
	if len(params) > 0 {
		req.SetQueryParamsFromValues(params)
	}
	if body != nil {
		req.SetBody(body)
	}

	resp, err := req.Execute(opts.Method, resolveURL(opts.PrefixURL, path))
	if err != nil {
		return nil, err
	}

	raw := NewRawResponse(resp.StatusCode(), resp.Header(), resp.Body())
	if resp.StatusCode() >= 400 {
		return nil, NewResponseError(raw)
	}
	return raw, nil
}

// restyLogger adapts Logger to resty.Logger.
type restyLogger struct {
	log *logger.Logger
}

func (l restyLogger) Errorf(format string, v ...interface{}) {
	l.log.Error(fmt.Sprintf(format, v...))
}

func (l restyLogger) Warnf(format string, v ...interface{}) {
	l.log.Warn(fmt.Sprintf(format, v...))
}

func (l restyLogger) Debugf(format string, v ...interface{}) {
	l.log.Debug(fmt.Sprintf(format, v...))
}
