package source

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gifclip/internal/subtitle"
)

// InputKind classifies what the user pointed the tool at.
type InputKind int

const (
	KindRemotePlatform InputKind = iota
	KindDirectURL
	KindLocalFile
)

func (k InputKind) String() string {
	switch k {
	case KindRemotePlatform:
		return "remote"
	case KindDirectURL:
		return "url"
	case KindLocalFile:
		return "file"
	default:
		return "unknown"
	}
}

// RemoteFetcher retrieves a platform subtitle track, preferring
// human-authored captions over auto-generated ones. A nil payload with
// a nil error means the platform has no track for the language.
type RemoteFetcher interface {
	FetchSubtitle(ctx context.Context, url, lang string) ([]byte, error)
}

// Extractor pulls an embedded subtitle stream out of a local media
// file. A nil payload with a nil error means the container carries no
// matching stream.
type Extractor interface {
	ExtractSubtitle(ctx context.Context, mediaPath, lang string) ([]byte, error)
}

// Downloader fetches raw bytes from a URL, used only for explicit
// subtitle override URLs.
type Downloader interface {
	FetchBytes(ctx context.Context, url string) ([]byte, error)
}

// Request describes one subtitle acquisition.
type Request struct {
	Kind      InputKind
	Input     string // original URL or path
	MediaPath string // local media file for embedded extraction
	Override  string // explicit --subs path or URL
	Disabled  bool   // --no-subs
	Language  string
}

// Resolver owns the collaborator capabilities; it never constructs
// them, so the decision logic stays testable with fakes.
type Resolver struct {
	Remote   RemoteFetcher
	Extract  Extractor
	Download Downloader
}

// Resolve applies the decision table and returns the parsed track, or
// nil when subtitles are disabled or no optional source exists.
func (r *Resolver) Resolve(ctx context.Context, req Request) (*subtitle.Track, error) {
	switch {
	case req.Disabled:
		return nil, nil
	case req.Override != "":
		return r.fromOverride(ctx, req)
	}

	switch req.Kind {
	case KindRemotePlatform:
		return r.fromRemote(ctx, req)
	case KindLocalFile:
		track, err := r.fromEmbedded(ctx, req)
		if track != nil || err != nil {
			return track, err
		}
		return r.fromAdjacent(req)
	case KindDirectURL:
		// No local directory exists for a direct URL, so the
		// adjacent-file search is skipped.
		return r.fromEmbedded(ctx, req)
	default:
		return nil, fmt.Errorf("source: unknown input kind %d", req.Kind)
	}
}

// fromOverride loads an explicitly requested source. Failures here are
// never downgraded to "no subtitles".
func (r *Resolver) fromOverride(ctx context.Context, req Request) (*subtitle.Track, error) {
	var (
		data []byte
		err  error
	)
	if isURL(req.Override) {
		if r.Download == nil {
			return nil, errors.New("source: no downloader available for subtitle URL")
		}
		data, err = r.Download.FetchBytes(ctx, req.Override)
		if err != nil {
			return nil, fmt.Errorf("fetch subtitle override: %w", err)
		}
	} else {
		data, err = os.ReadFile(req.Override)
		if err != nil {
			return nil, fmt.Errorf("read subtitle override: %w", err)
		}
	}

	track, err := subtitle.Parse(data, subtitle.DetectFormat(req.Override, data))
	if err != nil {
		return nil, fmt.Errorf("parse subtitle override %s: %w", req.Override, err)
	}
	track.Language = req.Language
	track.Origin = subtitle.OriginOverride
	return track, nil
}

func (r *Resolver) fromRemote(ctx context.Context, req Request) (*subtitle.Track, error) {
	if r.Remote == nil {
		return nil, nil
	}
	data, err := r.Remote.FetchSubtitle(ctx, req.Input, req.Language)
	if err != nil {
		return nil, fmt.Errorf("fetch platform subtitles: %w", err)
	}
	if data == nil {
		return nil, nil
	}
	track, err := subtitle.Parse(data, subtitle.FormatUnknown)
	if err != nil {
		// The platform served a track we cannot use; treat it
		// like an absent optional source.
		return nil, nil
	}
	track.Language = req.Language
	track.Origin = subtitle.OriginRemote
	return track, nil
}

func (r *Resolver) fromEmbedded(ctx context.Context, req Request) (*subtitle.Track, error) {
	if r.Extract == nil || req.MediaPath == "" {
		return nil, nil
	}
	data, err := r.Extract.ExtractSubtitle(ctx, req.MediaPath, req.Language)
	if err != nil {
		return nil, fmt.Errorf("extract embedded subtitles: %w", err)
	}
	if data == nil {
		return nil, nil
	}
	track, err := subtitle.Parse(data, subtitle.FormatUnknown)
	if err != nil {
		return nil, nil
	}
	track.Language = req.Language
	track.Origin = subtitle.OriginEmbedded
	return track, nil
}

// fromAdjacent searches the video's directory for a subtitle file
// sharing its base name, preferring a file whose language suffix
// matches the requested language over one without a suffix.
func (r *Resolver) fromAdjacent(req Request) (*subtitle.Track, error) {
	path, err := findAdjacent(req.MediaPath, req.Language)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read adjacent subtitles: %w", err)
	}
	track, err := subtitle.Parse(data, subtitle.DetectFormat(path, data))
	if err != nil {
		return nil, nil
	}
	track.Language = req.Language
	track.Origin = subtitle.OriginAdjacent
	return track, nil
}

func findAdjacent(mediaPath, lang string) (string, error) {
	dir := filepath.Dir(mediaPath)
	base := strings.TrimSuffix(filepath.Base(mediaPath), filepath.Ext(mediaPath))

	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("list %s: %w", dir, err)
	}

	type candidate struct {
		path string
		rank int
	}
	var candidates []candidate
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !subtitle.IsSubtitlePath(name) {
			continue
		}
		stem := strings.TrimSuffix(name, filepath.Ext(name))
		if stem != base && !strings.HasPrefix(stem, base+".") {
			continue
		}
		rank := 1
		if suffix := strings.TrimPrefix(stem, base+"."); stem != base {
			if !subtitle.MatchesLanguage(suffix, lang) {
				continue
			}
			rank = 0
		}
		candidates = append(candidates, candidate{path: filepath.Join(dir, name), rank: rank})
	}
	if len(candidates) == 0 {
		return "", nil
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].rank != candidates[j].rank {
			return candidates[i].rank < candidates[j].rank
		}
		return candidates[i].path < candidates[j].path
	})
	return candidates[0].path, nil
}

func isURL(value string) bool {
	return strings.HasPrefix(value, "http://") || strings.HasPrefix(value, "https://")
}
