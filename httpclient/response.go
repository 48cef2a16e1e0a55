package httpclient

import (
	"net/http"
	"regexp"
)

var (
	imageContentType = regexp.MustCompile(`(?i)^image/`)
	jsonContentType  = regexp.MustCompile(`(?i)[/+]json`)
	textContentType  = regexp.MustCompile(`(?i)^text/`)
)

// ResponseType selects the body reader used to decode a response,
// overriding content-type detection.
type ResponseType string

const (
	// ResponseTypeAuto decodes by status and content type.
	ResponseTypeAuto        ResponseType = ""
	ResponseTypeJSON        ResponseType = "json"
	ResponseTypeText        ResponseType = "text"
	ResponseTypeBlob        ResponseType = "blob"
	ResponseTypeArrayBuffer ResponseType = "arrayBuffer"
)

// Response is the decoded result of an HTTP round trip. Body is nil exactly
// when Status is 204 No Content. Treat it as read-only.
type Response struct {
	// Body is the decoded body: a JSON value, a string, a *Blob or []byte.
	Body any
	// Status is the HTTP status code.
	Status int
	// Headers are the response headers.
	Headers Headers
}

// NewResponse creates a response envelope. Nil headers become empty Headers.
func NewResponse(body any, status int, headers Headers) *Response {
	if headers == nil {
		headers = Headers{}
	}
	return &Response{Body: body, Status: status, Headers: headers}
}

// IsSuccess returns true if the status code is 2xx.
func (r *Response) IsSuccess() bool {
	return r.Status >= 200 && r.Status < 300
}

// IsError returns true if the status code is 4xx or 5xx.
func (r *Response) IsError() bool {
	return r.Status >= 400
}

// IsOK returns true if the status code is exactly 200.
func (r *Response) IsOK() bool {
	return r.Status == http.StatusOK
}

// IsClientError returns true if the status code is 4xx.
func (r *Response) IsClientError() bool {
	return r.Status >= 400 && r.Status < 500
}

// IsServerError returns true if the status code is 5xx.
func (r *Response) IsServerError() bool {
	return r.Status >= 500 && r.Status < 600
}

func (r *Response) IsUnauthorized() bool    { return r.Status == http.StatusUnauthorized }
func (r *Response) IsForbidden() bool       { return r.Status == http.StatusForbidden }
func (r *Response) IsNotFound() bool        { return r.Status == http.StatusNotFound }
func (r *Response) IsValidationError() bool { return r.Status == http.StatusUnprocessableEntity }

// ContentType returns the response content type, or "".
func (r *Response) ContentType() string {
	return r.Headers.ContentType()
}

// IsJSON reports a JSON media type, including +json suffixes.
func (r *Response) IsJSON() bool {
	return jsonContentType.MatchString(r.ContentType())
}

// IsImage reports an image/* media type.
func (r *Response) IsImage() bool {
	return imageContentType.MatchString(r.ContentType())
}

// IsText reports a text/* media type.
func (r *Response) IsText() bool {
	return textContentType.MatchString(r.ContentType())
}

// JSONBody returns the body as a JSON object when it is one.
func (r *Response) JSONBody() (map[string]any, bool) {
	m, ok := r.Body.(map[string]any)
	return m, ok
}

// hasJSONShapedBody reports a decoded JSON object or array, as opposed to a
// primitive, string or binary body.
func (r *Response) hasJSONShapedBody() bool {
	switch r.Body.(type) {
	case map[string]any, []any:
		return true
	default:
		return false
	}
}
