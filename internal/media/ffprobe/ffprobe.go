package ffprobe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"gifclip/internal/subtitle"
)

// Result represents the parsed output from an ffprobe inspection.
type Result struct {
	Streams []Stream `json:"streams"`
	Format  Format   `json:"format"`
}

// Stream describes a single stream in the media container.
type Stream struct {
	Index     int               `json:"index"`
	CodecName string            `json:"codec_name"`
	CodecType string            `json:"codec_type"`
	Width     int               `json:"width"`
	Height    int               `json:"height"`
	Tags      map[string]string `json:"tags"`
}

// Language returns the stream's language tag, if the container carries
// one.
func (s Stream) Language() string {
	for key, value := range s.Tags {
		if strings.EqualFold(key, "language") {
			return value
		}
	}
	return ""
}

// Format captures container-level metadata extracted by ffprobe.
type Format struct {
	Filename   string            `json:"filename"`
	Duration   string            `json:"duration"`
	FormatName string            `json:"format_name"`
	Tags       map[string]string `json:"tags"`
}

// Inspect executes ffprobe against the provided path and decodes the
// JSON response.
func Inspect(ctx context.Context, binary string, path string) (Result, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffprobe"
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return Result{}, errors.New("ffprobe inspect: empty path")
	}

	cmd := exec.CommandContext(ctx, binary, "-v", "error", "-hide_banner", "-show_format", "-show_streams", "-of", "json", "--", path)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return Result{}, fmt.Errorf("ffprobe inspect: %w: %s", err, strings.TrimSpace(string(output)))
	}

	var result Result
	if err := json.Unmarshal(output, &result); err != nil {
		return Result{}, fmt.Errorf("ffprobe parse: %w", err)
	}
	return result, nil
}

// Duration returns the container duration, or 0 when unavailable.
func (r Result) Duration() time.Duration {
	cleaned := strings.TrimSpace(r.Format.Duration)
	if cleaned == "" {
		return 0
	}
	seconds, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || seconds < 0 {
		return 0
	}
	return time.Duration(seconds * float64(time.Second))
}

// Title returns the container title tag, if present.
func (r Result) Title() string {
	for key, value := range r.Format.Tags {
		if strings.EqualFold(key, "title") {
			return value
		}
	}
	return ""
}

// SubtitleStreams returns the subtitle streams in container order.
func (r Result) SubtitleStreams() []Stream {
	var out []Stream
	for _, stream := range r.Streams {
		if strings.EqualFold(stream.CodecType, "subtitle") {
			out = append(out, stream)
		}
	}
	return out
}

// FindSubtitleStream picks the embedded subtitle stream for a language.
// A stream tagged with a matching language wins; an untagged stream is
// accepted when no tagged one matches. Returns -1 when the container
// has no usable stream.
func (r Result) FindSubtitleStream(lang string) int {
	untagged := -1
	for _, stream := range r.SubtitleStreams() {
		tag := stream.Language()
		if tag == "" {
			if untagged < 0 {
				untagged = stream.Index
			}
			continue
		}
		if subtitle.MatchesLanguage(tag, lang) {
			return stream.Index
		}
	}
	return untagged
}
