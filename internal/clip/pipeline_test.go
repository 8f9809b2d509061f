package clip

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gifclip/internal/cliprange"
	"gifclip/internal/history"
	"gifclip/internal/services/ffmpeg"
	"gifclip/internal/services/ytdlp"
	"gifclip/internal/subtitle"
	"gifclip/internal/testsupport"
)

const pipelineSRT = `1
00:00:05,000 --> 00:00:07,000
What is the Matrix?

2
00:00:12,000 --> 00:00:14,500
Frankly, my dear,
I don't give a damn.

3
00:00:40,000 --> 00:00:43,000
No one can be told what the Matrix is.
`

// fakeYtDlp answers metadata queries and simulates downloads by
// creating the destination file.
type fakeYtDlp struct {
	title    string
	duration string
	runs     [][]string
}

func (f *fakeYtDlp) Run(ctx context.Context, binary string, args []string) error {
	f.runs = append(f.runs, args)
	for i, arg := range args {
		if arg == "-o" && i+1 < len(args) && !strings.Contains(args[i+1], "%(ext)s") {
			return os.WriteFile(args[i+1], []byte("video-bytes"), 0o644)
		}
	}
	return nil
}

func (f *fakeYtDlp) Output(ctx context.Context, binary string, args []string) (string, error) {
	for _, arg := range args {
		if arg == "--get-title" {
			return f.title + "\n", nil
		}
		if arg == "duration" {
			return f.duration + "\n", nil
		}
	}
	return "", nil
}

// fakeFFmpeg records encode invocations and creates the output file.
type fakeFFmpeg struct {
	runs [][]string
}

func (f *fakeFFmpeg) Run(ctx context.Context, binary string, args []string) error {
	f.runs = append(f.runs, args)
	if len(args) > 0 {
		return os.WriteFile(args[len(args)-1], []byte("rendered"), 0o644)
	}
	return nil
}

func newTestPipeline(t *testing.T, yt *fakeYtDlp, ff *fakeFFmpeg) (*Pipeline, *history.Store) {
	t.Helper()

	cfg := testsupport.NewConfig(t)

	ytClient, err := ytdlp.New("yt-dlp", ytdlp.WithExecutor(yt))
	if err != nil {
		t.Fatal(err)
	}
	ffClient, err := ffmpeg.New("ffmpeg", ffmpeg.WithExecutor(ff))
	if err != nil {
		t.Fatal(err)
	}
	store, err := history.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })

	return &Pipeline{
		Config:  cfg,
		YtDlp:   ytClient,
		FFmpeg:  ffClient,
		FFprobe: "ffprobe",
		History: store,
	}, store
}

func TestRunExplicitRange(t *testing.T) {
	yt := &fakeYtDlp{title: "Test Video", duration: "120"}
	ff := &fakeFFmpeg{}
	pipeline, store := newTestPipeline(t, yt, ff)

	output := filepath.Join(t.TempDir(), "out.gif")
	result, err := pipeline.Run(context.Background(), Request{
		Input:   "https://www.youtube.com/watch?v=abc",
		Start:   "10",
		End:     "15",
		NoSubs:  true,
		Format:  ffmpeg.FormatGIF,
		Width:   480,
		FPS:     15,
		Quality: 80,
		Output:  output,
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if result.Range.Start != 10*time.Second || result.Range.End != 15*time.Second {
		t.Fatalf("unexpected range %v-%v", result.Range.Start, result.Range.End)
	}
	if result.Output != output {
		t.Fatalf("explicit output not honored: %q", result.Output)
	}
	if _, err := os.Stat(output); err != nil {
		t.Fatalf("output file missing: %v", err)
	}

	if len(ff.runs) != 1 {
		t.Fatalf("expected one ffmpeg invocation, got %d", len(ff.runs))
	}
	encodeArgs := strings.Join(ff.runs[0], " ")
	if !strings.Contains(encodeArgs, "-ss 10.000") || !strings.Contains(encodeArgs, "-t 5.000") {
		t.Fatalf("seek args missing: %s", encodeArgs)
	}

	clips, err := store.List(context.Background(), 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(clips) != 1 || clips[0].Title != "Test Video" {
		t.Fatalf("history not recorded: %+v", clips)
	}
}

func TestRunDialogueWithOverrideSubs(t *testing.T) {
	subsPath := filepath.Join(t.TempDir(), "subs.srt")
	if err := os.WriteFile(subsPath, []byte(pipelineSRT), 0o644); err != nil {
		t.Fatal(err)
	}

	yt := &fakeYtDlp{title: "Gone with the Wind", duration: "120"}
	ff := &fakeFFmpeg{}
	pipeline, _ := newTestPipeline(t, yt, ff)

	result, err := pipeline.Run(context.Background(), Request{
		Input:        "https://www.youtube.com/watch?v=abc",
		From:         "FRANKLY, my dear",
		SubsOverride: subsPath,
		Language:     "en",
		Format:       ffmpeg.FormatGIF,
		Width:        480,
		FPS:          15,
		Quality:      80,
		Output:       filepath.Join(t.TempDir(), "out.gif"),
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	// Matched cue 12s-14.5s plus the default 2s trailing pad.
	if result.Range.Start != 12*time.Second || result.Range.End != 16500*time.Millisecond {
		t.Fatalf("unexpected range %v-%v", result.Range.Start, result.Range.End)
	}

	encodeArgs := strings.Join(ff.runs[len(ff.runs)-1], " ")
	if !strings.Contains(encodeArgs, "subtitles=") {
		t.Fatalf("caption burn-in missing from args: %s", encodeArgs)
	}
}

func TestRunNoSubsNeverFetches(t *testing.T) {
	yt := &fakeYtDlp{title: "Test", duration: "60"}
	ff := &fakeFFmpeg{}
	pipeline, _ := newTestPipeline(t, yt, ff)

	_, err := pipeline.Run(context.Background(), Request{
		Input:   "https://www.youtube.com/watch?v=abc",
		Start:   "1",
		End:     "2",
		NoSubs:  true,
		Format:  ffmpeg.FormatMP4,
		Width:   480,
		FPS:     15,
		Quality: 80,
		Output:  filepath.Join(t.TempDir(), "out.mp4"),
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	for _, run := range yt.runs {
		for _, arg := range run {
			if arg == "--write-subs" || arg == "--write-auto-subs" {
				t.Fatalf("subtitle fetch attempted with --no-subs: %v", run)
			}
		}
	}
}

func TestRunLiteralTextCaption(t *testing.T) {
	yt := &fakeYtDlp{title: "Test", duration: "60"}
	ff := &fakeFFmpeg{}
	pipeline, _ := newTestPipeline(t, yt, ff)

	_, err := pipeline.Run(context.Background(), Request{
		Input:   "https://www.youtube.com/watch?v=abc",
		Start:   "5",
		End:     "8",
		Text:    "deal with it",
		Format:  ffmpeg.FormatGIF,
		Width:   480,
		FPS:     15,
		Quality: 80,
		Output:  filepath.Join(t.TempDir(), "out.gif"),
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	encodeArgs := strings.Join(ff.runs[len(ff.runs)-1], " ")
	if !strings.Contains(encodeArgs, "subtitles=") {
		t.Fatalf("literal caption not burned in: %s", encodeArgs)
	}
}

func TestRunDefaultOutputName(t *testing.T) {
	yt := &fakeYtDlp{title: "My Video", duration: "60"}
	ff := &fakeFFmpeg{}
	pipeline, _ := newTestPipeline(t, yt, ff)

	result, err := pipeline.Run(context.Background(), Request{
		Input:   "https://www.youtube.com/watch?v=abc",
		Start:   "10",
		End:     "12",
		NoSubs:  true,
		Format:  ffmpeg.FormatWebM,
		Width:   480,
		FPS:     15,
		Quality: 80,
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	defer os.Remove(result.Output)
	if result.Output != "My_Video_0m10s-0m12s.webm" {
		t.Fatalf("unexpected default output name %q", result.Output)
	}
}

func TestResolveRangeDialogueWithoutTrackFails(t *testing.T) {
	_, err := ResolveRange(Request{From: "hello"}, nil, time.Minute)
	if err == nil || !strings.Contains(err.Error(), "no subtitles") {
		t.Fatalf("expected no-subtitles error, got %v", err)
	}
}

func TestResolveRangeCuePair(t *testing.T) {
	track, err := subtitle.Parse([]byte(pipelineSRT), subtitle.FormatSRT)
	if err != nil {
		t.Fatal(err)
	}
	rng, err := ResolveRange(Request{From: "what is the matrix?", To: "no one can be told"}, track, 2*time.Minute)
	if err != nil {
		t.Fatalf("ResolveRange failed: %v", err)
	}
	// From cue starts at 5s; To cue ends at 43s plus the 500ms pair pad.
	if rng.Start != 5*time.Second || rng.End != 43500*time.Millisecond {
		t.Fatalf("unexpected range %v-%v", rng.Start, rng.End)
	}
}

func TestResolveRangePaddingPrecedence(t *testing.T) {
	track, err := subtitle.Parse([]byte(pipelineSRT), subtitle.FormatSRT)
	if err != nil {
		t.Fatal(err)
	}
	pad := cliprange.Pad{
		Symmetric: time.Second, SymmetricSet: true,
		After: 3 * time.Second, AfterSet: true,
	}
	rng, err := ResolveRange(Request{From: "frankly", Pad: pad}, track, 2*time.Minute)
	if err != nil {
		t.Fatalf("ResolveRange failed: %v", err)
	}
	// Symmetric 1s before, overridden 3s after.
	if rng.Start != 11*time.Second || rng.End != 17500*time.Millisecond {
		t.Fatalf("unexpected range %v-%v", rng.Start, rng.End)
	}
}

func TestResolveRangeClampsToDuration(t *testing.T) {
	rng, err := ResolveRange(Request{Start: "50", End: "90"}, nil, time.Minute)
	if err != nil {
		t.Fatalf("ResolveRange failed: %v", err)
	}
	if rng.End != time.Minute {
		t.Fatalf("end not clamped: %v", rng.End)
	}
}

func TestResolveRangeBadTimestamp(t *testing.T) {
	if _, err := ResolveRange(Request{Start: "abc", End: "5"}, nil, time.Minute); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestValidateRequest(t *testing.T) {
	cases := []struct {
		name    string
		req     Request
		wantErr bool
	}{
		{"explicit", Request{Input: "v", Start: "1", End: "2"}, false},
		{"dialogue single", Request{Input: "v", From: "hello"}, false},
		{"dialogue pair", Request{Input: "v", From: "a", To: "b"}, false},
		{"mixed", Request{Input: "v", Start: "1", End: "2", From: "x"}, true},
		{"start only", Request{Input: "v", Start: "1"}, true},
		{"to without from", Request{Input: "v", To: "b"}, true},
		{"nothing", Request{Input: "v"}, true},
		{"no input", Request{Start: "1", End: "2"}, true},
	}
	for _, tc := range cases {
		err := validateRequest(tc.req)
		if (err != nil) != tc.wantErr {
			t.Errorf("%s: err = %v, wantErr = %v", tc.name, err, tc.wantErr)
		}
	}
}
