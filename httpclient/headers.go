package httpclient

import (
	"net/http"
	"strings"

	"github.com/spf13/cast"
)

// Headers is a case-insensitive header container. Keys are always stored
// lower-cased; values are a string or a []string for multi-valued headers
// such as accept.
type Headers map[string]any

// NewHeaders builds Headers from a raw mapping, lower-casing every key.
func NewHeaders(raw map[string]any) Headers {
	h := make(Headers, len(raw))
	for k, v := range raw {
		h[strings.ToLower(k)] = v
	}
	return h
}

// HeadersFromHTTP builds Headers from a net/http header collection. A single
// value is stored as a string, several values as a []string.
func HeadersFromHTTP(header http.Header) Headers {
	h := make(Headers, len(header))
	for k, values := range header {
		switch len(values) {
		case 0:
			continue
		case 1:
			h[strings.ToLower(k)] = values[0]
		default:
			h[strings.ToLower(k)] = append([]string(nil), values...)
		}
	}
	return h
}

// Get returns the value stored under key, or fallback (nil when omitted)
// if the header is absent.
func (h Headers) Get(key string, fallback ...any) any {
	if v, ok := h[strings.ToLower(key)]; ok {
		return v
	}
	if len(fallback) > 0 {
		return fallback[0]
	}
	return nil
}

// GetString returns the first value of the header as a string, or "".
func (h Headers) GetString(key string) string {
	values := stringValues(h.Get(key))
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

// Has reports whether the header is present.
func (h Headers) Has(key string) bool {
	_, ok := h[strings.ToLower(key)]
	return ok
}

// ContentType returns the content-type header, or "".
func (h Headers) ContentType() string {
	return h.GetString("content-type")
}

// Set stores value under the lower-cased key.
func (h Headers) Set(key string, value any) {
	h[strings.ToLower(key)] = value
}

// Del removes the header.
func (h Headers) Del(key string) {
	delete(h, strings.ToLower(key))
}

// Clone returns a shallow copy.
func (h Headers) Clone() Headers {
	c := make(Headers, len(h))
	for k, v := range h {
		c[k] = v
	}
	return c
}

// HTTPHeader converts the headers into a net/http header collection.
// Values that are neither strings nor string lists are stringified.
func (h Headers) HTTPHeader() http.Header {
	header := make(http.Header, len(h))
	for k, v := range h {
		for _, value := range stringValues(v) {
			header.Add(k, value)
		}
	}
	return header
}

func stringValues(v any) []string {
	switch t := v.(type) {
	case nil:
		return nil
	case string:
		return []string{t}
	case []string:
		return t
	case []any:
		values := make([]string, 0, len(t))
		for _, e := range t {
			values = append(values, cast.ToString(e))
		}
		return values
	default:
		return []string{cast.ToString(t)}
	}
}
