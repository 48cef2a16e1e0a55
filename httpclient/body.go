package httpclient

import (
	"net/url"
)

// Body is a request body. It is one of RawBody, *FormBody, URLEncodedBody
// or StructuredBody. Only StructuredBody is transcoded according to the
// request content type; the others are sent as they are.
type Body interface {
	isBody()
}

// RawBody is an already serialized body, sent verbatim.
type RawBody string

// URLEncodedBody is a pre-built application/x-www-form-urlencoded body.
type URLEncodedBody url.Values

// StructuredBody is plain key/value data. It becomes a multipart form, a
// URL-encoded form or a JSON payload depending on the content-type header.
type StructuredBody map[string]any

func (RawBody) isBody()        {}
func (*FormBody) isBody()      {}
func (URLEncodedBody) isBody() {}
func (StructuredBody) isBody() {}

// Get returns the first value for key.
func (b URLEncodedBody) Get(key string) string {
	return url.Values(b).Get(key)
}

// Set replaces the values for key.
func (b URLEncodedBody) Set(key, value string) {
	url.Values(b).Set(key, value)
}

// Encode returns the body in URL-encoded form, sorted by key.
func (b URLEncodedBody) Encode() string {
	return url.Values(b).Encode()
}
