// Package httpclient is a small convenience layer over HTTP transports.
//
// A Client keeps a prefix URL and a tree of default options. Every request
// merges the defaults with per-call Options, encodes the body according to
// the content-type header, sends it through a Transport and decodes the
// response by its content type. Failures are normalized into *Error, which
// can pull a message and validation errors out of a JSON error body.
//
// Subpackages:
//
//   - rest: typed JSON helpers built on Client
//
// # Basic Usage
//
//	client := httpclient.New("https://api.example.com", map[string]any{
//	    "errorMessagePath":     "message",
//	    "validationErrorsPath": "errors",
//	})
//	client.SetDefaultBearerToken("my-token")
//
//	result, err := client.Post(ctx, "users", httpclient.StructuredBody{"name": "Alice"}, httpclient.Options{})
//	if httpclient.IsValidation(err) {
//	    e, _ := httpclient.AsError(err)
//	    fmt.Println(e.ValidationMessages("name"))
//	}
//
// # Hooks
//
// OnSuccess and OnError turn a response or a failure into a value. When
// OnError is set the failure is recovered: Request returns its value in
// Result.Value and a nil error.
//
// # Transports
//
// The default transport is net/http (Adapter). RestyTransport sends requests
// through go-resty instead. Middleware such as TracingMiddleware,
// LoggingMiddleware and Metrics.Middleware wrap either one.
package httpclient
