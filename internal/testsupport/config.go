// Package testsupport provides fixtures shared across package tests.
package testsupport

import (
	"path/filepath"
	"testing"

	"gifclip/internal/config"
)

// ConfigOption customizes the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per
// test, applying any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.StagingDir = filepath.Join(base, "staging")
	cfg.Tools.ManagedDir = filepath.Join(base, "tools")
	cfg.History.Path = filepath.Join(base, "history.db")

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithToolSource overrides the tool source on the test config.
func WithToolSource(source string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Tools.Source = source
	}
}
