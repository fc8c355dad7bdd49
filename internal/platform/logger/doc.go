// Package logger configures the application's slog-based JSON logging
// and carries request-scoped loggers through context, so handlers and
// stores log with the trace ID of the request they serve.
package logger
