// Package logging configures structured logging for the mirror proxy.
//
// It wraps log/slog with two additions the proxy needs: bot token redaction
// (every request path carries a full bot credential, and it must never reach
// a log line) and a process-wide level that can be changed at runtime when
// the configuration file is reloaded.
//
// Components obtain loggers the usual way:
//
//	logger := slog.Default().With("component", "proxy")
package logging
