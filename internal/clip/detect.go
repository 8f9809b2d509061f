package clip

import (
	"net/url"
	"path"
	"strings"

	"gifclip/internal/source"
)

// mediaExtensions are raw file types a URL can point at directly; any
// other URL is assumed to be a platform page yt-dlp knows how to read.
var mediaExtensions = map[string]bool{
	".mp4":  true,
	".webm": true,
	".mkv":  true,
	".mov":  true,
	".avi":  true,
	".m4v":  true,
	".ts":   true,
}

// DetectInputKind classifies the positional input argument.
func DetectInputKind(input string) source.InputKind {
	trimmed := strings.TrimSpace(input)
	if !strings.HasPrefix(trimmed, "http://") && !strings.HasPrefix(trimmed, "https://") {
		return source.KindLocalFile
	}
	parsed, err := url.Parse(trimmed)
	if err != nil {
		return source.KindRemotePlatform
	}
	ext := strings.ToLower(path.Ext(parsed.Path))
	if mediaExtensions[ext] {
		return source.KindDirectURL
	}
	return source.KindRemotePlatform
}
