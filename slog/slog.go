// Package slog provides log/slog decorators for the readerize service
// interfaces. Each decorator logs one line per call with its duration
// and error and otherwise delegates to the wrapped implementation.
package slog
