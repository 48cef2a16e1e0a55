package httpclient

import (
	"context"
	"errors"
	"strconv"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/risan/http-client/httpclient"

// Span attribute keys.
const (
	AttrHTTPMethod = "http.request.method"
	AttrHTTPStatus = "http.response.status_code"
	AttrURLPath    = "url.path"
	AttrServerURL  = "server.address"
)

// TracingMiddleware starts a client span per round trip and injects the
// trace context into the request headers. Nil arguments fall back to the
// global provider and propagator.
func TracingMiddleware(tp trace.TracerProvider, propagator propagation.TextMapPropagator) Middleware {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	if propagator == nil {
		propagator = otel.GetTextMapPropagator()
	}
	tracer := tp.Tracer(tracerName)

	return func(next Transport) Transport {
		return TransportFunc(func(ctx context.Context, path string, opts TransportOptions) (RawResponse, error) {
			ctx, span := tracer.Start(ctx, "HTTP "+opts.Method,
				trace.WithSpanKind(trace.SpanKindClient),
				trace.WithAttributes(
					attribute.String(AttrHTTPMethod, opts.Method),
					attribute.String(AttrURLPath, path),
					attribute.String(AttrServerURL, opts.PrefixURL),
				),
			)
			defer span.End()

			opts.Headers = opts.Headers.Clone()
			propagator.Inject(ctx, headerCarrier(opts.Headers))

			raw, err := next.Do(ctx, path, opts)
			if status := responseStatus(raw, err); status > 0 {
				span.SetAttributes(attribute.Int(AttrHTTPStatus, status))
			}
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
			}
			return raw, err
		})
	}
}

// headerCarrier lets a propagator write into Headers.
type headerCarrier Headers

var _ propagation.TextMapCarrier = headerCarrier(nil)

func (c headerCarrier) Get(key string) string {
	return Headers(c).GetString(key)
}

func (c headerCarrier) Set(key, value string) {
	Headers(c).Set(key, value)
}

func (c headerCarrier) Keys() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	return keys
}

// responseStatus returns the status of a response or of a rejection that
// carries one, and 0 otherwise.
func responseStatus(raw RawResponse, err error) int {
	if raw != nil {
		return raw.StatusCode()
	}
	var rejection *ResponseError
	if errors.As(err, &rejection) && rejection.Response != nil {
		return rejection.Response.StatusCode()
	}
	return 0
}

// statusLabel renders a status for metric labels; "error" means no response.
func statusLabel(status int) string {
	if status == 0 {
		return "error"
	}
	return strconv.Itoa(status)
}
