package subtitle

import (
	"strings"

	"golang.org/x/text/language"
)

// MatchesLanguage reports whether a candidate language label (an
// adjacent-file suffix like "en" or "pt-BR", or a container stream tag
// like "eng") refers to the wanted language. Labels that BCP 47 cannot
// parse fall back to a case-insensitive string comparison.
func MatchesLanguage(candidate, want string) bool {
	candidate = strings.TrimSpace(candidate)
	want = strings.TrimSpace(want)
	if candidate == "" || want == "" {
		return false
	}

	wantTag, err := language.Parse(want)
	if err != nil {
		return strings.EqualFold(candidate, want)
	}
	candTag, err := language.Parse(candidate)
	if err != nil {
		return strings.EqualFold(candidate, want)
	}

	matcher := language.NewMatcher([]language.Tag{wantTag})
	_, _, confidence := matcher.Match(candTag)
	return confidence >= language.High
}
