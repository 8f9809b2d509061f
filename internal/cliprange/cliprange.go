package cliprange

import (
	"errors"
	"fmt"
	"time"

	"gifclip/internal/subtitle"
	"gifclip/internal/timecode"
)

// ErrEmptyRange reports a clip whose end does not come after its start.
var ErrEmptyRange = errors.New("cliprange: end must be after start")

// OutOfBoundsError reports a clip falling outside the known video
// duration.
type OutOfBoundsError struct {
	Start    time.Duration
	Duration time.Duration
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("cliprange: start %s is beyond the video duration %s",
		timecode.Format(e.Start), timecode.Format(e.Duration))
}

// Range is the resolved clip interval. Start < End; both lie within
// the video when its duration is known.
type Range struct {
	Start time.Duration
	End   time.Duration
}

// Duration returns the clip length.
func (r Range) Duration() time.Duration {
	return r.End - r.Start
}

// Pad carries the user's padding flags. The Set bits distinguish "flag
// given" from a zero value so precedence can be applied: asymmetric
// before/after beats the symmetric value, which beats the mode default.
type Pad struct {
	Symmetric    time.Duration
	SymmetricSet bool
	Before       time.Duration
	BeforeSet    bool
	After        time.Duration
	AfterSet     bool
}

func (p Pad) resolve(defaultBefore, defaultAfter time.Duration) (before, after time.Duration) {
	before, after = defaultBefore, defaultAfter
	if p.SymmetricSet {
		before, after = p.Symmetric, p.Symmetric
	}
	if p.BeforeSet {
		before = p.Before
	}
	if p.AfterSet {
		after = p.After
	}
	return before, after
}

// Mode-specific defaults: a single quote gets two seconds of trailing
// room so the line can finish; a quote pair is already bounded and gets
// half a second.
const (
	defaultSinglePadAfter = 2 * time.Second
	defaultPairPadAfter   = 500 * time.Millisecond
)

// Mode selects how the clip interval is derived.
type Mode interface {
	window() (start, end time.Duration, err error)
}

// Explicit uses user-supplied start and end timestamps directly.
type Explicit struct {
	Start time.Duration
	End   time.Duration
}

func (m Explicit) window() (time.Duration, time.Duration, error) {
	if m.End <= m.Start {
		return 0, 0, ErrEmptyRange
	}
	return m.Start, m.End, nil
}

// SingleCue pads a single matched cue.
type SingleCue struct {
	Cue subtitle.Cue
	Pad Pad
}

func (m SingleCue) window() (time.Duration, time.Duration, error) {
	before, after := m.Pad.resolve(0, defaultSinglePadAfter)
	return padded(m.Cue.Start, m.Cue.End, before, after)
}

// CuePair spans from the first matched cue to the second.
type CuePair struct {
	From subtitle.Cue
	To   subtitle.Cue
	Pad  Pad
}

func (m CuePair) window() (time.Duration, time.Duration, error) {
	before, after := m.Pad.resolve(0, defaultPairPadAfter)
	return padded(m.From.Start, m.To.End, before, after)
}

func padded(start, end, before, after time.Duration) (time.Duration, time.Duration, error) {
	start -= before
	if start < 0 {
		start = 0
	}
	end += after
	if end <= start {
		return 0, 0, ErrEmptyRange
	}
	return start, end, nil
}

// Resolve computes the final clip interval. A zero videoDuration means
// the duration is unknown and no clamping happens; otherwise the end is
// clamped to it and a start at or beyond it fails.
func Resolve(mode Mode, videoDuration time.Duration) (Range, error) {
	start, end, err := mode.window()
	if err != nil {
		return Range{}, err
	}
	if videoDuration > 0 {
		if start >= videoDuration {
			return Range{}, &OutOfBoundsError{Start: start, Duration: videoDuration}
		}
		if end > videoDuration {
			end = videoDuration
		}
		if end <= start {
			return Range{}, &OutOfBoundsError{Start: start, Duration: videoDuration}
		}
	}
	return Range{Start: start, End: end}, nil
}
