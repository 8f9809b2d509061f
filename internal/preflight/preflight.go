package preflight

import (
	"context"

	"gifclip/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes every applicable check for the given config.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckTool(ctx, cfg, "yt-dlp"),
		CheckTool(ctx, cfg, "ffmpeg"),
		CheckTool(ctx, cfg, "ffprobe"),
		CheckDirectoryAccess("Staging directory", cfg.Paths.StagingDir),
		CheckFreeSpace("Staging free space", cfg.Paths.StagingDir, minStagingBytes),
	}
	return results
}

// Passed reports whether every result in the set passed.
func Passed(results []Result) bool {
	for _, result := range results {
		if !result.Passed {
			return false
		}
	}
	return true
}
