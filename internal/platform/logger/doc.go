// Package logger provides structured logging functionality for the application.
//
// It utilizes Go's standard library log/slog package to implement structured JSON logging
// with configurable log levels, and carries request-scoped loggers in contexts so
// trace ids attached at the HTTP boundary follow every downstream log line.
package logger
