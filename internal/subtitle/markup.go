package subtitle

import "regexp"

// Styling markup is removed before matching and burn-in so tags never
// corrupt rendering or defeat substring search.
var (
	htmlTagPattern     = regexp.MustCompile(`<[^>]+>`)
	assOverridePattern = regexp.MustCompile(`\{[^}]*\}`)
)

func stripMarkup(text string, format Format) string {
	switch format {
	case FormatASS:
		return assOverridePattern.ReplaceAllString(text, "")
	default:
		// SRT and VTT share HTML-ish tags (<i>, <b>, <v Name>,
		// <c.class>).
		return htmlTagPattern.ReplaceAllString(text, "")
	}
}
