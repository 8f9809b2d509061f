package subtitle

import (
	"fmt"
	"strings"
)

// Query describes a dialogue search. An empty To means single-cue mode;
// a non-empty To bounds the clip from the first From match to the next
// To match.
type Query struct {
	From string
	To   string
}

// Match is the result of a successful dialogue search. Ranged reports
// whether a To cue was matched; when false, To equals From.
type Match struct {
	From   Cue
	To     Cue
	Ranged bool
}

// NotFoundError reports the phrase that failed to match any cue.
type NotFoundError struct {
	Phrase string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("subtitle: dialogue not found: %q", e.Phrase)
}

// Find locates the cue (or cue pair) matching the query. A cue matches
// a phrase when the phrase occurs as a case-insensitive substring of
// the cue's whitespace-collapsed text. The first match by ascending
// start time wins; in range mode the To search continues strictly
// forward from the From cue, so the To cue never starts before it.
func Find(track *Track, query Query) (Match, error) {
	from := strings.TrimSpace(query.From)
	if from == "" {
		return Match{}, fmt.Errorf("subtitle: empty search phrase")
	}

	fromIdx := findFrom(track.Cues, 0, from)
	if fromIdx < 0 {
		return Match{}, &NotFoundError{Phrase: query.From}
	}
	match := Match{From: track.Cues[fromIdx], To: track.Cues[fromIdx]}

	to := strings.TrimSpace(query.To)
	if to == "" {
		return match, nil
	}

	toIdx := findFrom(track.Cues, fromIdx+1, to)
	if toIdx < 0 {
		return Match{}, &NotFoundError{Phrase: query.To}
	}
	match.To = track.Cues[toIdx]
	match.Ranged = true
	return match, nil
}

func findFrom(cues []Cue, start int, phrase string) int {
	needle := normalizeForMatch(phrase)
	for i := start; i < len(cues); i++ {
		if strings.Contains(normalizeForMatch(cues[i].Text), needle) {
			return i
		}
	}
	return -1
}

// normalizeForMatch lowercases and collapses all whitespace runs
// (including line breaks) to single spaces.
func normalizeForMatch(text string) string {
	return strings.ToLower(strings.Join(strings.Fields(text), " "))
}
