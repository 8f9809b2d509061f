package subtitle

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format identifies a supported subtitle file format.
type Format int

const (
	FormatUnknown Format = iota
	FormatSRT
	FormatVTT
	FormatASS
)

func (f Format) String() string {
	switch f {
	case FormatSRT:
		return "srt"
	case FormatVTT:
		return "vtt"
	case FormatASS:
		return "ass"
	default:
		return "unknown"
	}
}

// Extensions recognized during adjacent-file discovery and format
// detection.
var formatByExtension = map[string]Format{
	".srt": FormatSRT,
	".vtt": FormatVTT,
	".ass": FormatASS,
	".ssa": FormatASS,
	".sub": FormatSRT,
}

// IsSubtitlePath reports whether the path carries a recognized subtitle
// extension.
func IsSubtitlePath(path string) bool {
	_, ok := formatByExtension[strings.ToLower(filepath.Ext(path))]
	return ok
}

// DetectFormat picks a format from the file extension, falling back to
// content sniffing when the extension is absent or unrecognized.
func DetectFormat(path string, data []byte) Format {
	if f, ok := formatByExtension[strings.ToLower(filepath.Ext(path))]; ok {
		return f
	}
	return sniffFormat(data)
}

func sniffFormat(data []byte) Format {
	content := strings.TrimPrefix(string(data), "\uFEFF")
	trimmed := strings.TrimSpace(content)
	switch {
	case strings.HasPrefix(trimmed, "WEBVTT"):
		return FormatVTT
	case strings.Contains(trimmed, "[Script Info]") || strings.Contains(trimmed, "[Events]"):
		return FormatASS
	case strings.Contains(trimmed, "-->"):
		return FormatSRT
	default:
		return FormatUnknown
	}
}

// Parse decodes raw subtitle bytes into a normalized track. Malformed
// cue blocks are skipped; a source yielding zero cues fails with
// ErrEmptyTrack.
func Parse(data []byte, format Format) (*Track, error) {
	if format == FormatUnknown {
		format = sniffFormat(data)
	}

	var (
		cues []Cue
		err  error
	)
	switch format {
	case FormatSRT:
		cues, err = parseSRT(data)
	case FormatVTT:
		cues, err = parseVTT(data)
	case FormatASS:
		cues, err = parseASS(data)
	default:
		return nil, fmt.Errorf("subtitle: unrecognized format")
	}
	if err != nil {
		return nil, err
	}
	if len(cues) == 0 {
		return nil, ErrEmptyTrack
	}
	sortCues(cues)
	return &Track{Cues: cues}, nil
}

// normalizeLines splits raw content into lines with CRLF and BOM
// removed.
func normalizeLines(data []byte) []string {
	content := strings.TrimPrefix(string(data), "\uFEFF")
	content = strings.ReplaceAll(content, "\r\n", "\n")
	return strings.Split(content, "\n")
}
