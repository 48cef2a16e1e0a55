// Package logger provides structured logging for the HTTP client using
// zerolog.
//
// It supports JSON and console output, log level configuration and
// component-scoped loggers with structured fields.
//
// # Configuration
//
//	logging:
//	  level: "debug"
//	  format: "json"
//
// # Usage
//
//	log := logger.New(&cfg, "billing-api").WithComponent("httpclient")
//	log.Debug("dispatching request", logger.Fields("method", "GET", "path", "users"))
package logger
