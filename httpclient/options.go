package httpclient

import (
	"strings"

	"github.com/risan/http-client/util"
)

// Keys of the default options tree with a meaning of their own. Every other
// top-level key is forwarded to the transport untouched.
const (
	OptionHeaders              = "headers"
	OptionResponseType         = "responseType"
	OptionErrorMessagePath     = "errorMessagePath"
	OptionValidationErrorsPath = "validationErrorsPath"
	OptionOnSuccess            = "onSuccess"
	OptionOnError              = "onError"

	// Passthrough keys understood by the built-in transports.
	OptionTimeout      = "timeout"
	OptionSearchParams = "searchParams"
)

// Options are the per-call request options.
type Options struct {
	// Headers override default headers. Keys are matched case-insensitively.
	Headers map[string]any
	// Body is the request body. Post, Put and Patch set it from their argument.
	Body Body
	// ResponseType forces a body reader instead of content-type detection.
	ResponseType ResponseType
	// OnSuccess, when set, receives the response; its return value becomes
	// the Result value.
	OnSuccess func(*Response) any
	// OnError, when set, receives the error; its return value becomes the
	// Result value and the call no longer fails.
	OnError func(*Error) any
	// ErrorMessagePath is a dot-path into a JSON error body holding a better
	// error message.
	ErrorMessagePath string
	// ValidationErrorsPath is a dot-path into a 422 JSON body holding the
	// validation errors.
	ValidationErrorsPath string
	// Extra holds transport passthrough options such as "timeout".
	Extra map[string]any
}

// EffectiveOptions is the result of merging default and per-call options.
type EffectiveOptions struct {
	Headers Headers
	Body    Body
	// JSON is set instead of Body when a StructuredBody is sent as JSON.
	JSON                 map[string]any
	ResponseType         ResponseType
	OnSuccess            func(*Response) any
	OnError              func(*Error) any
	ErrorMessagePath     string
	ValidationErrorsPath string
	Extra                map[string]any
}

// baselineAccept is the accept header used when neither the defaults nor the
// call set one.
func baselineAccept() []string {
	return []string{"application/json", "text/plain"}
}

// MergeOptions combines the client defaults with per-call options. Per-call
// values win; headers are merged by lower-cased name on top of the baseline
// accept header. The defaults are never modified.
func (c *Client) MergeOptions(opts Options) EffectiveOptions {
	eff := EffectiveOptions{
		Headers: Headers{"accept": baselineAccept()},
		Extra:   make(map[string]any),
	}

	for k, v := range c.defaults {
		switch k {
		case OptionHeaders:
			for name, value := range util.LowerCaseKeys(toAnyMap(v)) {
				eff.Headers[name] = value
			}
		case OptionResponseType:
			eff.ResponseType = toResponseType(v)
		case OptionErrorMessagePath:
			eff.ErrorMessagePath, _ = v.(string)
		case OptionValidationErrorsPath:
			eff.ValidationErrorsPath, _ = v.(string)
		case OptionOnSuccess:
			eff.OnSuccess, _ = v.(func(*Response) any)
		case OptionOnError:
			eff.OnError, _ = v.(func(*Error) any)
		default:
			eff.Extra[k] = v
		}
	}

	for name, value := range util.LowerCaseKeys(opts.Headers) {
		eff.Headers[name] = value
	}
	for k, v := range opts.Extra {
		eff.Extra[k] = v
	}

	eff.Body = opts.Body
	if opts.ResponseType != ResponseTypeAuto {
		eff.ResponseType = opts.ResponseType
	}
	if opts.OnSuccess != nil {
		eff.OnSuccess = opts.OnSuccess
	}
	if opts.OnError != nil {
		eff.OnError = opts.OnError
	}
	eff.ErrorMessagePath = util.Coalesce(opts.ErrorMessagePath, eff.ErrorMessagePath)
	eff.ValidationErrorsPath = util.Coalesce(opts.ValidationErrorsPath, eff.ValidationErrorsPath)

	return eff
}

// DefaultOptions returns the live default options tree.
func (c *Client) DefaultOptions() map[string]any {
	return c.defaults
}

// SetDefaultOption sets a default option at a dot-path such as
// "headers.content-type", creating intermediate maps as needed.
func (c *Client) SetDefaultOption(path string, value any) *Client {
	util.Set(c.defaults, path, value)
	return c
}

// RemoveDefaultOption removes the default option at a dot-path.
func (c *Client) RemoveDefaultOption(path string) *Client {
	util.Remove(c.defaults, path)
	return c
}

// SetDefaultHeader sets a header sent with every request.
func (c *Client) SetDefaultHeader(name string, value any) *Client {
	return c.SetDefaultOption(OptionHeaders+util.PathSeparator+name, value)
}

// RemoveDefaultHeader removes a default header.
func (c *Client) RemoveDefaultHeader(name string) *Client {
	return c.RemoveDefaultOption(OptionHeaders + util.PathSeparator + name)
}

// SetDefaultBearerToken sends "Authorization: Bearer <token>" with every request.
func (c *Client) SetDefaultBearerToken(token string) *Client {
	return c.SetDefaultHeader("authorization", "Bearer "+token)
}

// RemoveDefaultBearerToken removes the default authorization header.
func (c *Client) RemoveDefaultBearerToken() *Client {
	return c.RemoveDefaultHeader("authorization")
}

func toAnyMap(v any) map[string]any {
	switch m := v.(type) {
	case map[string]any:
		return m
	case Headers:
		return m
	case map[string]string:
		result := make(map[string]any, len(m))
		for k, s := range m {
			result[k] = s
		}
		return result
	case map[string][]string:
		result := make(map[string]any, len(m))
		for k, s := range m {
			result[k] = s
		}
		return result
	default:
		return nil
	}
}

func toResponseType(v any) ResponseType {
	switch t := v.(type) {
	case ResponseType:
		return t
	case string:
		return ResponseType(t)
	default:
		return ResponseTypeAuto
	}
}

// stripLeadingSlash removes a single leading slash from a request path.
func stripLeadingSlash(path string) string {
	return strings.TrimPrefix(path, "/")
}
