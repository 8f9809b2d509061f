package subtitle

import (
	"errors"
	"sort"
	"time"
)

// ErrEmptyTrack reports a source from which no cue could be parsed.
var ErrEmptyTrack = errors.New("subtitle: no cues parsed")

// Cue is a single timed subtitle entry. Text may contain embedded line
// breaks; styling markup has already been stripped.
type Cue struct {
	Start time.Duration
	End   time.Duration
	Text  string
}

// Origin records where a track came from.
type Origin int

const (
	OriginRemote Origin = iota
	OriginEmbedded
	OriginAdjacent
	OriginOverride
)

func (o Origin) String() string {
	switch o {
	case OriginRemote:
		return "remote"
	case OriginEmbedded:
		return "embedded"
	case OriginAdjacent:
		return "adjacent"
	case OriginOverride:
		return "override"
	default:
		return "unknown"
	}
}

// Track is an ordered sequence of cues from a single subtitle source.
// Cues are non-decreasing in start time; ties keep source order.
type Track struct {
	Cues     []Cue
	Language string
	Origin   Origin
}

// sortCues enforces the ordering invariant without reordering ties.
func sortCues(cues []Cue) {
	sort.SliceStable(cues, func(i, j int) bool {
		return cues[i].Start < cues[j].Start
	})
}

// Clip returns the cues overlapping [start, end), trimmed to the
// window. Timestamps stay on the source timeline; the render step
// seeks on the output side, so burned cues must keep original times.
func (t *Track) Clip(start, end time.Duration) []Cue {
	var out []Cue
	for _, cue := range t.Cues {
		if cue.End <= start || cue.Start >= end {
			continue
		}
		clipped := cue
		if clipped.Start < start {
			clipped.Start = start
		}
		if clipped.End > end {
			clipped.End = end
		}
		out = append(out, clipped)
	}
	return out
}
