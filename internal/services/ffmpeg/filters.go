package ffmpeg

import (
	"fmt"
	"strings"
)

// Format is the output container.
type Format string

const (
	FormatGIF  Format = "gif"
	FormatWebM Format = "webm"
	FormatMP4  Format = "mp4"
)

// ParseFormat validates a user-supplied format name.
func ParseFormat(value string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(value))) {
	case FormatGIF:
		return FormatGIF, nil
	case FormatWebM:
		return FormatWebM, nil
	case FormatMP4:
		return FormatMP4, nil
	default:
		return "", fmt.Errorf("unsupported output format %q (use gif, webm, or mp4)", value)
	}
}

// Extension returns the output file extension for the format.
func (f Format) Extension() string {
	return string(f)
}

// baseFilters builds the shared filter chain: optional subtitle
// burn-in first, then frame rate and proportional scaling.
func baseFilters(job Job) []string {
	var filters []string
	if job.SubtitlePath != "" {
		filters = append(filters, fmt.Sprintf("subtitles='%s'", escapeFilterPath(job.SubtitlePath)))
	}
	filters = append(filters,
		fmt.Sprintf("fps=%d", job.FPS),
		fmt.Sprintf("scale=%d:-1:flags=lanczos", job.Width),
	)
	return filters
}

func plainFilter(job Job) string {
	return strings.Join(baseFilters(job), ",")
}

// gifFilter extends the base chain with a two-pass palette so GIF
// output keeps acceptable colors; quality maps onto the palette size.
func gifFilter(job Job) string {
	return fmt.Sprintf(
		"%s,split[s0][s1];[s0]palettegen=max_colors=%d[p];[s1][p]paletteuse=dither=bayer",
		plainFilter(job), gifMaxColors(job.Quality),
	)
}

// Quality runs 1-100; the mappings preserve the original tool's
// behavior: GIF palette 16-256 colors, VP9 CRF 63-10, x264 CRF 51-10.
func gifMaxColors(quality int) int {
	return 16 + int(float64(clampQuality(quality))/100*240)
}

func webmCRF(quality int) int {
	return 63 - int(float64(clampQuality(quality))/100*53)
}

func mp4CRF(quality int) int {
	return 51 - int(float64(clampQuality(quality))/100*41)
}

func clampQuality(quality int) int {
	switch {
	case quality < 1:
		return 1
	case quality > 100:
		return 100
	default:
		return quality
	}
}

// escapeFilterPath escapes characters the ffmpeg filter parser treats
// specially inside a quoted subtitles= argument.
func escapeFilterPath(path string) string {
	replacer := strings.NewReplacer(
		`\`, `\\`,
		`:`, `\:`,
		`'`, `\'`,
	)
	return replacer.Replace(path)
}
