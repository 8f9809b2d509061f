package tools

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"gifclip/internal/config"
)

// Paths holds the resolved locations of the external binaries.
type Paths struct {
	YtDlp   string
	FFmpeg  string
	FFprobe string
}

// NotFoundError reports a binary that could not be located.
type NotFoundError struct {
	Name   string
	Source string
	Detail string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("tools: %s not found (%s source): %s", e.Name, e.Source, e.Detail)
}

// Resolve locates all three binaries per the configuration. Explicit
// overrides win; otherwise "managed" looks in the managed tools
// directory first and falls back to PATH, while "system" consults
// PATH only.
func Resolve(cfg *config.Config) (Paths, error) {
	ytdlp, err := Lookup(cfg, "yt-dlp")
	if err != nil {
		return Paths{}, err
	}
	ffmpeg, err := Lookup(cfg, "ffmpeg")
	if err != nil {
		return Paths{}, err
	}
	ffprobe, err := Lookup(cfg, "ffprobe")
	if err != nil {
		return Paths{}, err
	}
	return Paths{YtDlp: ytdlp, FFmpeg: ffmpeg, FFprobe: ffprobe}, nil
}

// Lookup resolves a single binary by name ("yt-dlp", "ffmpeg", or
// "ffprobe") using the same rules as Resolve.
func Lookup(cfg *config.Config, name string) (string, error) {
	var override string
	switch name {
	case "yt-dlp":
		override = cfg.Tools.YtDlp
	case "ffmpeg":
		override = cfg.Tools.FFmpeg
	case "ffprobe":
		override = cfg.Tools.FFprobe
	default:
		return "", fmt.Errorf("tools: unknown tool %q", name)
	}
	return resolveTool(cfg, name, override)
}

func resolveTool(cfg *config.Config, name, override string) (string, error) {
	if trimmed := strings.TrimSpace(override); trimmed != "" {
		if _, err := os.Stat(trimmed); err != nil {
			return "", &NotFoundError{Name: name, Source: "override", Detail: err.Error()}
		}
		return trimmed, nil
	}

	if cfg.Tools.Source == config.ToolSourceManaged {
		candidate := filepath.Join(cfg.Tools.ManagedDir, name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}

	path, err := exec.LookPath(name)
	if err != nil {
		detail := "not on PATH"
		if cfg.Tools.Source == config.ToolSourceManaged {
			detail = fmt.Sprintf("not in %s and not on PATH; run `gifclip setup`", cfg.Tools.ManagedDir)
		}
		return "", &NotFoundError{Name: name, Source: cfg.Tools.Source, Detail: detail}
	}
	return path, nil
}
