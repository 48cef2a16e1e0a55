package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/cast"

	"github.com/risan/http-client/version"
)

const contentTypeURLEncodedUTF8 = "application/x-www-form-urlencoded;charset=UTF-8"

// UserAgent is sent when a request sets no user-agent header.
var UserAgent = version.UserAgent("http-client")

// resolveURL joins the prefix URL and a path, inserting one slash between
// them. Without a prefix the path is used as is.
func resolveURL(prefixURL, path string) string {
	if prefixURL == "" {
		return path
	}
	if !strings.HasSuffix(prefixURL, "/") {
		prefixURL += "/"
	}
	return prefixURL + strings.TrimPrefix(path, "/")
}

// encodePayload serializes the request payload and returns the content type
// it implies, or "" when the caller's header should stand.
func encodePayload(opts TransportOptions) (io.Reader, string, error) {
	if opts.JSON != nil {
		data, err := json.Marshal(opts.JSON)
		if err != nil {
			return nil, "", fmt.Errorf("encode json body: %w", err)
		}
		return bytes.NewReader(data), contentTypeJSON, nil
	}

	switch body := opts.Body.(type) {
	case nil:
		return nil, "", nil
	case RawBody:
		return strings.NewReader(string(body)), "", nil
	case *FormBody:
		return body.Encode()
	case URLEncodedBody:
		return strings.NewReader(body.Encode()), contentTypeURLEncodedUTF8, nil
	case StructuredBody:
		data, err := json.Marshal(map[string]any(body))
		if err != nil {
			return nil, "", fmt.Errorf("encode json body: %w", err)
		}
		return bytes.NewReader(data), contentTypeJSON, nil
	default:
		return nil, "", fmt.Errorf("unsupported body type %T", body)
	}
}

// requestHeaders returns the headers to send: the content type is filled in
// when missing, multipart boundaries always replace it, and a user-agent is
// added when missing.
func requestHeaders(opts TransportOptions, contentType string) Headers {
	headers := opts.Headers.Clone()
	if contentType != "" {
		_, multipart := opts.Body.(*FormBody)
		if multipart || !headers.Has("content-type") {
			headers.Set("content-type", contentType)
		}
	}
	if !headers.Has("user-agent") {
		headers.Set("user-agent", UserAgent)
	}
	return headers
}

// searchParams reads the "searchParams" passthrough option.
func searchParams(extra map[string]any) (url.Values, error) {
	switch v := extra[OptionSearchParams].(type) {
	case nil:
		return nil, nil
	case url.Values:
		return v, nil
	case URLEncodedBody:
		return url.Values(v), nil
	case map[string][]string:
		return url.Values(v), nil
	case map[string]string:
		values := url.Values{}
		for key, value := range v {
			values.Set(key, value)
		}
		return values, nil
	case string:
		return url.ParseQuery(strings.TrimPrefix(v, "?"))
	default:
		m, err := cast.ToStringMapE(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s option: %w", OptionSearchParams, err)
		}
		values := url.Values{}
		for key, value := range m {
			for _, s := range stringValues(value) {
				values.Add(key, s)
			}
		}
		return values, nil
	}
}

// requestTimeout reads the "timeout" passthrough option. Numbers are
// milliseconds; false or a missing value means no timeout.
func requestTimeout(extra map[string]any) (time.Duration, error) {
	switch v := extra[OptionTimeout].(type) {
	case nil, bool:
		return 0, nil
	case time.Duration:
		return v, nil
	case string:
		d, err := cast.ToDurationE(v)
		if err != nil {
			return 0, fmt.Errorf("invalid %s option: %w", OptionTimeout, err)
		}
		return d, nil
	default:
		ms, err := cast.ToFloat64E(v)
		if err != nil {
			return 0, fmt.Errorf("invalid %s option: %w", OptionTimeout, err)
		}
		return time.Duration(ms * float64(time.Millisecond)), nil
	}
}

// withTimeout bounds ctx by the timeout option.
func withTimeout(ctx context.Context, extra map[string]any) (context.Context, context.CancelFunc, error) {
	timeout, err := requestTimeout(extra)
	if err != nil {
		return ctx, func() {}, err
	}
	if timeout <= 0 {
		return ctx, func() {}, nil
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	return ctx, cancel, nil
}

// applyQuery merges the search params into the URL's query string.
func applyQuery(rawURL string, params url.Values) (string, error) {
	if len(params) == 0 {
		return rawURL, nil
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	q := u.Query()
	for k, v := range params {
		q[k] = v
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}
