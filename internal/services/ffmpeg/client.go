package ffmpeg

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Executor abstracts command execution for testability.
type Executor interface {
	Run(ctx context.Context, binary string, args []string) error
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

// Client wraps ffmpeg CLI interactions.
type Client struct {
	binary string
	exec   Executor
}

// New constructs an ffmpeg client.
func New(binary string, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("ffmpeg binary required")
	}
	client := &Client{binary: binary, exec: commandExecutor{}}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Job describes one encode: cut Input at [Start, Start+Length) and
// write Output, optionally burning SubtitlePath in.
type Job struct {
	Input        string
	Output       string
	SubtitlePath string
	Start        time.Duration
	Length       time.Duration
	Format       Format
	Width        int
	FPS          int
	Quality      int // 1-100, higher is better
}

// Encode renders the clip.
func (c *Client) Encode(ctx context.Context, job Job) error {
	if job.Input == "" || job.Output == "" {
		return errors.New("ffmpeg encode: input and output required")
	}
	if job.Length <= 0 {
		return errors.New("ffmpeg encode: non-positive clip length")
	}

	args := []string{
		"-y",
		"-i", job.Input,
		"-ss", formatSeconds(job.Start),
		"-t", formatSeconds(job.Length),
	}
	switch job.Format {
	case FormatGIF:
		args = append(args, "-vf", gifFilter(job))
	case FormatWebM:
		args = append(args,
			"-vf", plainFilter(job),
			"-c:v", "libvpx-vp9",
			"-crf", strconv.Itoa(webmCRF(job.Quality)),
			"-b:v", "0",
			"-an",
		)
	case FormatMP4:
		args = append(args,
			"-vf", plainFilter(job),
			"-c:v", "libx264",
			"-crf", strconv.Itoa(mp4CRF(job.Quality)),
			"-preset", "medium",
			"-an",
			"-movflags", "+faststart",
		)
	default:
		return fmt.Errorf("ffmpeg encode: unsupported format %q", job.Format)
	}
	args = append(args, job.Output)

	if err := c.exec.Run(ctx, c.binary, args); err != nil {
		return fmt.Errorf("encode %s: %w", job.Format, err)
	}
	return nil
}

// ExtractSubtitle dumps one embedded subtitle stream to dest as SRT.
// A nil payload with nil error means the stream decoded to nothing
// usable.
func (c *Client) ExtractSubtitle(ctx context.Context, mediaPath string, streamIndex int, dest string) ([]byte, error) {
	args := []string{
		"-y",
		"-i", mediaPath,
		"-map", fmt.Sprintf("0:%d", streamIndex),
		"-c:s", "srt",
		dest,
	}
	if err := c.exec.Run(ctx, c.binary, args); err != nil {
		return nil, fmt.Errorf("extract subtitle stream %d: %w", streamIndex, err)
	}
	data, err := os.ReadFile(dest)
	if err != nil {
		return nil, fmt.Errorf("read extracted subtitles: %w", err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, nil
	}
	return data, nil
}

func formatSeconds(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', 3, 64)
}
