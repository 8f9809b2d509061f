package subtitle

import (
	"testing"
	"time"
)

const sampleVTT = "WEBVTT - Trailer captions\n" +
	"Kind: captions\nLanguage: en\n\n" +
	"NOTE this block is ignored\nstill ignored\n\n" +
	"intro\n00:05.000 --> 00:07.000 align:start\n<v Morpheus>What is the Matrix?</v>\n\n" +
	"2\n00:00:40.000 --> 00:00:43.000\nNo one <i>can</i> be told\nwhat the Matrix is.\n"

func TestParseVTT(t *testing.T) {
	track, err := Parse([]byte(sampleVTT), FormatVTT)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(track.Cues) != 2 {
		t.Fatalf("expected 2 cues, got %d", len(track.Cues))
	}
	first := track.Cues[0]
	if first.Start != 5*time.Second || first.End != 7*time.Second {
		t.Fatalf("short-form timestamps misparsed: %v -> %v", first.Start, first.End)
	}
	if first.Text != "What is the Matrix?" {
		t.Fatalf("voice tag not stripped: %q", first.Text)
	}
	second := track.Cues[1]
	if second.Text != "No one can be told\nwhat the Matrix is." {
		t.Fatalf("unexpected second cue text: %q", second.Text)
	}
}

func TestParseVTTWithBOM(t *testing.T) {
	raw := "\uFEFFWEBVTT\n\n00:01.000 --> 00:02.000\nhi\n"
	track, err := Parse([]byte(raw), FormatVTT)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(track.Cues) != 1 || track.Cues[0].Text != "hi" {
		t.Fatalf("unexpected cues: %+v", track.Cues)
	}
}

func TestDetectFormat(t *testing.T) {
	cases := []struct {
		path string
		data string
		want Format
	}{
		{"clip.srt", "", FormatSRT},
		{"clip.en.vtt", "", FormatVTT},
		{"clip.ssa", "", FormatASS},
		{"download", "WEBVTT\n", FormatVTT},
		{"download", "[Script Info]\n", FormatASS},
		{"download", "1\n00:00:01,000 --> 00:00:02,000\nhi\n", FormatSRT},
		{"download", "plain text", FormatUnknown},
	}
	for _, tc := range cases {
		if got := DetectFormat(tc.path, []byte(tc.data)); got != tc.want {
			t.Fatalf("DetectFormat(%q, %q) = %v, want %v", tc.path, tc.data, got, tc.want)
		}
	}
}
