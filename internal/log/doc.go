// Package log provides structured logging helpers for seoscan built on
// log/slog. The redacting handler masks provider API keys and other
// credentials before they reach log output, so verbose runs can be
// shared in bug reports without leaking billing tokens.
package log
