package clip

import (
	"fmt"
	"regexp"
	"strings"

	"gifclip/internal/cliprange"
	"gifclip/internal/services/ffmpeg"
	"gifclip/internal/timecode"
)

var unsafeFilenameChars = regexp.MustCompile(`[<>:"/\\|?*]`)

// OutputName builds the default output filename from the video title
// and resolved range, e.g. "Some_Title_1m30s-1m35s.gif".
func OutputName(title string, rng cliprange.Range, format ffmpeg.Format) string {
	safe := sanitizeTitle(title)
	if safe == "" {
		safe = "clip"
	}
	return fmt.Sprintf("%s_%s-%s.%s",
		safe,
		timecode.Compact(rng.Start),
		timecode.Compact(rng.End),
		format.Extension(),
	)
}

// sanitizeTitle replaces filename-unsafe characters and caps the
// result at 50 runes.
func sanitizeTitle(title string) string {
	cleaned := unsafeFilenameChars.ReplaceAllString(strings.TrimSpace(title), "_")
	cleaned = strings.Join(strings.Fields(cleaned), "_")
	runes := []rune(cleaned)
	if len(runes) > 50 {
		runes = runes[:50]
	}
	return string(runes)
}
