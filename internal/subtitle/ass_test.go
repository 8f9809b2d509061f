package subtitle

import (
	"testing"
	"time"
)

const sampleASS = `[Script Info]
Title: sample
ScriptType: v4.00+

[V4+ Styles]
Format: Name, Fontname, Fontsize
Style: Default,Arial,20

[Events]
Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text
Dialogue: 0,0:00:05.00,0:00:07.00,Default,,0,0,0,,{\i1}What is the Matrix?{\i0}
Dialogue: 0,0:00:40.00,0:00:43.00,Default,,0,0,0,,No one can be told,\Nwhat the Matrix is.
Comment: 0,0:00:50.00,0:00:51.00,Default,,0,0,0,,not a cue
`

func TestParseASS(t *testing.T) {
	track, err := Parse([]byte(sampleASS), FormatASS)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(track.Cues) != 2 {
		t.Fatalf("expected 2 cues, got %d", len(track.Cues))
	}
	first := track.Cues[0]
	if first.Start != 5*time.Second || first.End != 7*time.Second {
		t.Fatalf("unexpected timing: %v -> %v", first.Start, first.End)
	}
	if first.Text != "What is the Matrix?" {
		t.Fatalf("override tags not stripped: %q", first.Text)
	}
	second := track.Cues[1]
	if second.Text != "No one can be told,\nwhat the Matrix is." {
		t.Fatalf("text field with commas misparsed: %q", second.Text)
	}
}

func TestParseASSTimestampCentiseconds(t *testing.T) {
	got, err := parseASSTimestamp("0:01:02.50")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if got != time.Minute+2*time.Second+500*time.Millisecond {
		t.Fatalf("unexpected value %v", got)
	}
}
