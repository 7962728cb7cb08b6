// Package logging provides the structured logger used across the
// dashboard. It wraps log/slog with subsystem-tagged helpers so call sites
// stay short and every entry can be filtered by the component it came from.
package logging
