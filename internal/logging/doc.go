// Package logging constructs the slog logger used across gifclip,
// with a compact console handler for interactive use and a JSON
// handler for everything else.
package logging
