// Package logging defines the structured-logging interface used by the
// portal client and a log/slog backed implementation.
package logging

import "context"

// Logger is a context-aware, structured logger. Args are key/value pairs:
//
//	log.Info(ctx, "paper submitted", "paper_id", id, "status", status)
//
// The client logs to stderr only; everything the user must see goes through
// the screens' notifier instead.
type Logger interface {
	// Debug carries per-request HTTP traces and probe outcomes.
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	// Warn is for recoverable trouble, e.g. an unreadable session cache.
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that adds args to every record.
	With(args ...any) Logger
}
