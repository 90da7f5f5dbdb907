// Package logger provides structured logging functionality for the
// application, built on log/slog. It handles logger setup from
// configuration and carries request-scoped loggers through contexts.
package logger
