// Package logging defines the structured-logging interface the server
// components depend on, decoupling them from the concrete backend.
package logging

import "context"

// Logger is a context-aware, leveled logger. The variadic args are key–value
// pairs:
//
//	log.Info(ctx, "Starting HTTP server", "address", addr)
type Logger interface {
	// Info records normal operational events.
	Info(ctx context.Context, msg string, args ...any)

	// Warn records unusual but non-fatal conditions.
	Warn(ctx context.Context, msg string, args ...any)

	// Error records failures.
	Error(ctx context.Context, msg string, args ...any)

	// With returns a derived logger carrying the given key–value pairs on
	// every record, e.g. With("module", "http_server").
	With(args ...any) Logger
}
