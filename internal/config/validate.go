package config

import "fmt"

// Validate checks configuration invariants after normalization.
func (c *Config) Validate() error {
	switch c.Tools.Source {
	case ToolSourceSystem, ToolSourceManaged:
	default:
		return fmt.Errorf("tools.source: unsupported value %q (use %q or %q)",
			c.Tools.Source, ToolSourceSystem, ToolSourceManaged)
	}

	switch c.Defaults.Format {
	case "gif", "webm", "mp4":
	default:
		return fmt.Errorf("defaults.format: unsupported value %q (use gif, webm, or mp4)", c.Defaults.Format)
	}
	if c.Defaults.Width <= 0 {
		return fmt.Errorf("defaults.width: must be positive, got %d", c.Defaults.Width)
	}
	if c.Defaults.FPS <= 0 {
		return fmt.Errorf("defaults.fps: must be positive, got %d", c.Defaults.FPS)
	}
	if c.Defaults.Quality < 1 || c.Defaults.Quality > 100 {
		return fmt.Errorf("defaults.quality: must be 1-100, got %d", c.Defaults.Quality)
	}
	if c.Defaults.Language == "" {
		return fmt.Errorf("defaults.language: must not be empty")
	}

	switch c.Logging.Format {
	case "auto", "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q (use auto, console, or json)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}

	if c.History.Enabled && c.History.Path == "" {
		return fmt.Errorf("history.path: must not be empty when history is enabled")
	}
	return nil
}
