package config

import "strings"

// normalize expands user paths and lowercases enum-ish fields so the
// rest of the program never re-checks casing or tildes.
func (c *Config) normalize() error {
	var err error

	expand := func(value string) string {
		if err != nil || strings.TrimSpace(value) == "" {
			return value
		}
		var expanded string
		expanded, err = expandPath(value)
		return expanded
	}

	c.Paths.StagingDir = expand(c.Paths.StagingDir)
	c.Tools.ManagedDir = expand(c.Tools.ManagedDir)
	c.Tools.YtDlp = expand(c.Tools.YtDlp)
	c.Tools.FFmpeg = expand(c.Tools.FFmpeg)
	c.Tools.FFprobe = expand(c.Tools.FFprobe)
	c.History.Path = expand(c.History.Path)
	if err != nil {
		return err
	}

	c.Tools.Source = strings.ToLower(strings.TrimSpace(c.Tools.Source))
	c.Defaults.Format = strings.ToLower(strings.TrimSpace(c.Defaults.Format))
	c.Defaults.Language = strings.TrimSpace(c.Defaults.Language)
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	return nil
}
