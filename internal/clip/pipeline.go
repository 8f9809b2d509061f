package clip

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"gifclip/internal/cliprange"
	"gifclip/internal/config"
	"gifclip/internal/history"
	"gifclip/internal/media/ffprobe"
	"gifclip/internal/services/ffmpeg"
	"gifclip/internal/services/ytdlp"
	"gifclip/internal/source"
	"gifclip/internal/subtitle"
	"gifclip/internal/timecode"
)

// Request describes one clip render.
type Request struct {
	Input string

	// Explicit timestamps; both or neither.
	Start string
	End   string

	// Dialogue phrases; From alone selects a single cue, From+To a
	// bounded pair. Mutually exclusive with Start/End.
	From string
	To   string

	// Text burns a literal caption over the whole clip instead of
	// matched subtitles.
	Text string

	Pad          cliprange.Pad
	Language     string
	NoSubs       bool
	SubsOverride string

	Format  ffmpeg.Format
	Width   int
	FPS     int
	Quality int

	Output string
}

// Result reports a finished render.
type Result struct {
	Output string
	Title  string
	Range  cliprange.Range
}

// Pipeline wires the collaborators a render needs. History is
// optional; a nil store disables recording.
type Pipeline struct {
	Config  *config.Config
	Logger  *slog.Logger
	YtDlp   *ytdlp.Client
	FFmpeg  *ffmpeg.Client
	FFprobe string
	History *history.Store
	HTTP    *http.Client
}

// Run executes the full pipeline and returns the rendered output path.
func (p *Pipeline) Run(ctx context.Context, req Request) (*Result, error) {
	logger := p.logger()
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	kind := DetectInputKind(req.Input)
	logger.Info("starting clip", "input", req.Input, "kind", kind.String(), "format", string(req.Format))

	workdir := filepath.Join(p.Config.Paths.StagingDir, uuid.NewString())
	if err := os.MkdirAll(workdir, 0o755); err != nil {
		return nil, fmt.Errorf("clip: create staging directory: %w", err)
	}
	defer os.RemoveAll(workdir)

	title, duration, mediaPath, err := p.acquireMedia(ctx, kind, req.Input, workdir)
	if err != nil {
		return nil, err
	}
	logger.Info("media ready", "title", title, "duration", timecode.Format(duration))

	var track *subtitle.Track
	if req.Text == "" || req.From != "" {
		track, err = p.resolveTrack(ctx, kind, req, mediaPath, workdir)
		if err != nil {
			return nil, err
		}
		if track != nil {
			logger.Info("subtitles resolved", "origin", track.Origin.String(), "cues", len(track.Cues))
		} else if !req.NoSubs {
			logger.Warn("no subtitles found, proceeding without them")
		}
	}

	rng, err := ResolveRange(req, track, duration)
	if err != nil {
		return nil, err
	}
	logger.Info("range resolved", "start", timecode.Format(rng.Start), "end", timecode.Format(rng.End))

	output := req.Output
	if output == "" {
		output = OutputName(title, rng, req.Format)
	}

	captionPath, err := p.writeCaptions(req, track, rng, workdir)
	if err != nil {
		return nil, err
	}

	job := ffmpeg.Job{
		Input:        mediaPath,
		Output:       output,
		SubtitlePath: captionPath,
		Start:        rng.Start,
		Length:       rng.Duration(),
		Format:       req.Format,
		Width:        req.Width,
		FPS:          req.FPS,
		Quality:      req.Quality,
	}
	if err := p.FFmpeg.Encode(ctx, job); err != nil {
		return nil, fmt.Errorf("clip: %w", err)
	}
	logger.Info("clip rendered", "output", output)

	p.record(ctx, logger, req, title, rng, output)

	return &Result{Output: output, Title: title, Range: rng}, nil
}

// ResolveSubtitles resolves the subtitle track for an input without
// rendering anything, for `gifclip subs`. Direct media URLs are
// downloaded first because only the container can carry their track.
func (p *Pipeline) ResolveSubtitles(ctx context.Context, input, lang, override string) (*subtitle.Track, error) {
	kind := DetectInputKind(input)

	workdir := filepath.Join(p.Config.Paths.StagingDir, uuid.NewString())
	if err := os.MkdirAll(workdir, 0o755); err != nil {
		return nil, fmt.Errorf("clip: create staging directory: %w", err)
	}
	defer os.RemoveAll(workdir)

	mediaPath := ""
	switch kind {
	case source.KindLocalFile:
		mediaPath = input
	case source.KindDirectURL:
		mediaPath = filepath.Join(workdir, "source.mp4")
		if err := p.YtDlp.Download(ctx, input, mediaPath); err != nil {
			return nil, fmt.Errorf("clip: %w", err)
		}
	}

	return p.resolveTrack(ctx, kind, Request{Input: input, Language: lang, SubsOverride: override}, mediaPath, workdir)
}

// ResolveRange turns the request's timestamps or dialogue match into a
// concrete clip interval against the known video duration.
func ResolveRange(req Request, track *subtitle.Track, videoDuration time.Duration) (cliprange.Range, error) {
	if req.Start != "" {
		start, err := timecode.Parse(req.Start)
		if err != nil {
			return cliprange.Range{}, fmt.Errorf("clip: start: %w", err)
		}
		end, err := timecode.Parse(req.End)
		if err != nil {
			return cliprange.Range{}, fmt.Errorf("clip: end: %w", err)
		}
		return cliprange.Resolve(cliprange.Explicit{Start: start, End: end}, videoDuration)
	}

	if track == nil || len(track.Cues) == 0 {
		return cliprange.Range{}, errors.New("clip: no subtitles available to match dialogue against")
	}
	match, err := subtitle.Find(track, subtitle.Query{From: req.From, To: req.To})
	if err != nil {
		return cliprange.Range{}, fmt.Errorf("clip: %w", err)
	}
	if match.Ranged {
		return cliprange.Resolve(cliprange.CuePair{From: match.From, To: match.To, Pad: req.Pad}, videoDuration)
	}
	return cliprange.Resolve(cliprange.SingleCue{Cue: match.From, Pad: req.Pad}, videoDuration)
}

func validateRequest(req Request) error {
	if req.Input == "" {
		return errors.New("clip: input required")
	}
	explicit := req.Start != "" || req.End != ""
	dialogue := req.From != "" || req.To != ""
	switch {
	case explicit && dialogue:
		return errors.New("clip: timestamps and dialogue phrases are mutually exclusive")
	case explicit && (req.Start == "" || req.End == ""):
		return errors.New("clip: explicit mode needs both start and end")
	case dialogue && req.From == "":
		return errors.New("clip: --to needs --from")
	case !explicit && !dialogue:
		return errors.New("clip: provide start/end timestamps or a dialogue phrase")
	}
	return nil
}

// acquireMedia probes title and duration and makes sure a local media
// file exists for the render, downloading remote inputs into workdir.
func (p *Pipeline) acquireMedia(ctx context.Context, kind source.InputKind, input, workdir string) (title string, duration time.Duration, mediaPath string, err error) {
	if kind == source.KindLocalFile {
		if _, statErr := os.Stat(input); statErr != nil {
			return "", 0, "", fmt.Errorf("clip: open input: %w", statErr)
		}
		result, probeErr := ffprobe.Inspect(ctx, p.FFprobe, input)
		if probeErr != nil {
			return "", 0, "", fmt.Errorf("clip: %w", probeErr)
		}
		title = result.Title()
		if title == "" {
			title = strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
		}
		return title, result.Duration(), input, nil
	}

	title, err = p.YtDlp.Title(ctx, input)
	if err != nil {
		return "", 0, "", fmt.Errorf("clip: %w", err)
	}
	duration, err = p.YtDlp.Duration(ctx, input)
	if err != nil {
		return "", 0, "", fmt.Errorf("clip: %w", err)
	}

	mediaPath = filepath.Join(workdir, "source.mp4")
	p.logger().Info("downloading video", "url", input)
	if err = p.YtDlp.Download(ctx, input, mediaPath); err != nil {
		return "", 0, "", fmt.Errorf("clip: %w", err)
	}
	return title, duration, mediaPath, nil
}

func (p *Pipeline) resolveTrack(ctx context.Context, kind source.InputKind, req Request, mediaPath, workdir string) (*subtitle.Track, error) {
	resolver := source.Resolver{
		Remote:   p.YtDlp,
		Extract:  &embeddedExtractor{ffmpeg: p.FFmpeg, ffprobe: p.FFprobe, workdir: workdir},
		Download: &httpDownloader{client: p.HTTP},
	}
	track, err := resolver.Resolve(ctx, source.Request{
		Kind:      kind,
		Input:     req.Input,
		MediaPath: mediaPath,
		Override:  req.SubsOverride,
		Disabled:  req.NoSubs,
		Language:  req.Language,
	})
	if err != nil {
		return nil, fmt.Errorf("clip: %w", err)
	}
	return track, nil
}

// writeCaptions produces the SRT file ffmpeg burns in, or "" when the
// clip carries no captions. Timestamps stay on the source timeline
// because the encode seeks on the output side.
func (p *Pipeline) writeCaptions(req Request, track *subtitle.Track, rng cliprange.Range, workdir string) (string, error) {
	var cues []subtitle.Cue
	switch {
	case req.Text != "":
		cues = []subtitle.Cue{{Start: rng.Start, End: rng.End, Text: req.Text}}
	case req.NoSubs || track == nil:
		return "", nil
	default:
		cues = track.Clip(rng.Start, rng.End)
	}
	if len(cues) == 0 {
		return "", nil
	}

	path := filepath.Join(workdir, "captions.srt")
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("clip: create caption file: %w", err)
	}
	defer file.Close()
	if err := subtitle.WriteSRT(file, cues); err != nil {
		return "", fmt.Errorf("clip: write captions: %w", err)
	}
	return path, nil
}

// record stores the finished clip in history; failures degrade to a
// warning because losing history must not lose the render.
func (p *Pipeline) record(ctx context.Context, logger *slog.Logger, req Request, title string, rng cliprange.Range, output string) {
	if p.History == nil {
		return
	}
	_, err := p.History.Record(ctx, history.Clip{
		Input:  req.Input,
		Title:  title,
		Start:  rng.Start,
		End:    rng.End,
		Format: string(req.Format),
		Output: output,
	})
	if err != nil {
		logger.Warn("failed to record clip history", "error", err)
	}
}

func (p *Pipeline) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
