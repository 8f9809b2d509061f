package ytdlp

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gifclip/internal/subtitle"
)

// Executor abstracts command execution for testability.
type Executor interface {
	Run(ctx context.Context, binary string, args []string) error
	Output(ctx context.Context, binary string, args []string) (string, error)
}

// Option configures the client.
type Option func(*Client)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(c *Client) {
		if exec != nil {
			c.exec = exec
		}
	}
}

// Client wraps yt-dlp CLI interactions.
type Client struct {
	binary string
	exec   Executor
}

// New constructs a yt-dlp client.
func New(binary string, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("yt-dlp binary required")
	}
	client := &Client{binary: binary, exec: commandExecutor{}}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Title fetches the video title.
func (c *Client) Title(ctx context.Context, url string) (string, error) {
	out, err := c.exec.Output(ctx, c.binary, []string{"--get-title", "--no-playlist", url})
	if err != nil {
		return "", fmt.Errorf("get video title: %w", err)
	}
	return strings.TrimSpace(out), nil
}

// Duration fetches the video duration. Returns 0 without error when
// the platform does not report one (live streams).
func (c *Client) Duration(ctx context.Context, url string) (time.Duration, error) {
	out, err := c.exec.Output(ctx, c.binary, []string{"--print", "duration", "--no-playlist", url})
	if err != nil {
		return 0, fmt.Errorf("get video duration: %w", err)
	}
	trimmed := strings.TrimSpace(out)
	if trimmed == "" || trimmed == "NA" {
		return 0, nil
	}
	seconds, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || seconds < 0 {
		return 0, nil
	}
	return time.Duration(seconds * float64(time.Second)), nil
}

// Download fetches the video as MP4 into dest.
func (c *Client) Download(ctx context.Context, url, dest string) error {
	args := []string{
		"-f", "b[ext=mp4]/b",
		"-o", dest,
		"--no-playlist",
		url,
	}
	if err := c.exec.Run(ctx, c.binary, args); err != nil {
		return fmt.Errorf("download video: %w", err)
	}
	return nil
}

// FetchSubtitle downloads the platform's subtitle track for a language
// into dir and returns its raw bytes. Human-authored captions are
// requested first; auto-generated ones only when no manual track
// exists. A nil payload with nil error means the platform has none.
func (c *Client) FetchSubtitle(ctx context.Context, url, lang string) ([]byte, error) {
	dir, err := os.MkdirTemp("", "gifclip-subs-")
	if err != nil {
		return nil, fmt.Errorf("create subtitle dir: %w", err)
	}
	defer os.RemoveAll(dir)

	for _, flag := range []string{"--write-subs", "--write-auto-subs"} {
		args := []string{
			"--skip-download",
			flag,
			"--sub-langs", lang,
			"--convert-subs", "srt",
			"--no-playlist",
			"-o", filepath.Join(dir, "subs.%(ext)s"),
			url,
		}
		if err := c.exec.Run(ctx, c.binary, args); err != nil {
			return nil, fmt.Errorf("fetch subtitles: %w", err)
		}
		path, err := pickSubtitleFile(dir, lang)
		if err != nil {
			return nil, err
		}
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read fetched subtitles: %w", err)
		}
		return data, nil
	}
	return nil, nil
}

// pickSubtitleFile locates the downloaded subtitle file, preferring a
// language-tagged name and, on ties, the shortest one (the least
// decorated variant).
func pickSubtitleFile(dir, lang string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("list subtitle dir: %w", err)
	}

	var best string
	bestRank := -1
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !subtitle.IsSubtitlePath(name) {
			continue
		}
		rank := 1
		stem := strings.TrimSuffix(name, filepath.Ext(name))
		if dot := strings.LastIndex(stem, "."); dot >= 0 && subtitle.MatchesLanguage(stem[dot+1:], lang) {
			rank = 0
		}
		if best == "" || rank < bestRank || (rank == bestRank && len(name) < len(best)) {
			best = name
			bestRank = rank
		}
	}
	if best == "" {
		return "", nil
	}
	return filepath.Join(dir, best), nil
}
