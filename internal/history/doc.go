// Package history persists a record of rendered clips in SQLite so
// `gifclip history` can list past work.
package history
