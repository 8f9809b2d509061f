// Package source decides which subtitle source to use for a given
// input and fetches it.
//
// The precedence is a fixed decision table: the --no-subs flag, then an
// explicit override, then the kind-specific default (platform track for
// remote videos, embedded stream or adjacent file for local ones,
// embedded stream only for direct URLs). Absence of an optional source
// is not an error; fetch and extraction failures are.
package source
