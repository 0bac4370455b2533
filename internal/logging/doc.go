// Package logging assembles the structured slog loggers used across
// NiClean components.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes attr helpers so batch code tags log lines with
// the same component and file fields everywhere. A no-op logger is
// provided for tests and wiring code that cannot fail.
package logging
