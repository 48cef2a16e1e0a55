package httpclient

import (
	"context"
	"time"

	"github.com/risan/http-client/logger"
)

// LoggingMiddleware logs every round trip at debug level, and rejections
// without a response at warn level.
func LoggingMiddleware(l *logger.Logger) Middleware {
	log := l.WithComponent("transport")
	return func(next Transport) Transport {
		return TransportFunc(func(ctx context.Context, path string, opts TransportOptions) (RawResponse, error) {
			start := time.Now()
			raw, err := next.Do(ctx, path, opts)

			fields := logger.MergeWithDuration(logger.Fields(
				logger.FieldMethod, opts.Method,
				logger.FieldPath, path,
				logger.FieldPrefixURL, opts.PrefixURL,
			), time.Since(start))

			status := responseStatus(raw, err)
			if status > 0 {
				fields[logger.FieldStatus] = status
			}
			if err != nil && status == 0 {
				log.Warn("round trip failed", logger.MergeWithError(fields, err))
				return raw, err
			}
			log.Debug("round trip", fields)
			return raw, err
		})
	}
}
