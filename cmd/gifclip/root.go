package main

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"gifclip/internal/clip"
	"gifclip/internal/cliprange"
	"gifclip/internal/config"
	"gifclip/internal/history"
	"gifclip/internal/preflight"
	"gifclip/internal/services/ffmpeg"
	"gifclip/internal/services/ytdlp"
	"gifclip/internal/timecode"
	"gifclip/internal/tools"
)

type clipOptions struct {
	start     string
	end       string
	from      string
	to        string
	text      string
	pad       time.Duration
	padBefore time.Duration
	padAfter  time.Duration
	output    string
	format    string
	width     int
	fps       int
	quality   int
	lang      string
	noSubs    bool
	subs      string
}

func newRootCommand() *cobra.Command {
	var configFlag string
	ctx := newCommandContext(&configFlag)
	opts := &clipOptions{}

	rootCmd := &cobra.Command{
		Use:           "gifclip <url-or-file>",
		Short:         "Download a video clip and export it as GIF/WebM/MP4 with burned-in subtitles",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return runClip(cmd, ctx, opts, args[0])
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")

	flags := rootCmd.Flags()
	flags.StringVar(&opts.start, "start", "", "Clip start timestamp (seconds, MM:SS, or HH:MM:SS)")
	flags.StringVar(&opts.end, "end", "", "Clip end timestamp")
	flags.StringVar(&opts.from, "from", "", "Dialogue phrase that starts the clip")
	flags.StringVar(&opts.to, "to", "", "Dialogue phrase that ends the clip")
	flags.StringVar(&opts.text, "text", "", "Burn a literal caption instead of matched subtitles")
	flags.DurationVar(&opts.pad, "pad", 0, "Symmetric padding around the matched dialogue")
	flags.DurationVar(&opts.padBefore, "pad-before", 0, "Padding before the matched dialogue")
	flags.DurationVar(&opts.padAfter, "pad-after", 0, "Padding after the matched dialogue")
	flags.StringVarP(&opts.output, "output", "o", "", "Output file path (default: derived from the title)")
	flags.StringVarP(&opts.format, "format", "f", "", "Output format: gif, webm, or mp4")
	flags.IntVarP(&opts.width, "width", "w", 0, "Output width in pixels")
	flags.IntVar(&opts.fps, "fps", 0, "Output frame rate")
	flags.IntVarP(&opts.quality, "quality", "q", 0, "Quality 1-100, higher is better")
	flags.StringVar(&opts.lang, "lang", "", "Subtitle language")
	flags.BoolVar(&opts.noSubs, "no-subs", false, "Skip subtitles entirely")
	flags.StringVar(&opts.subs, "subs", "", "Explicit subtitle file or URL")

	rootCmd.AddCommand(newSetupCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))
	rootCmd.AddCommand(newSubsCommand(ctx))
	rootCmd.AddCommand(newHistoryCommand(ctx))
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

func runClip(cmd *cobra.Command, ctx *commandContext, opts *clipOptions, input string) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := ctx.ensureLogger()
	if err != nil {
		return err
	}

	results := preflight.RunAll(cmd.Context(), cfg)
	if !preflight.Passed(results) {
		fmt.Fprintln(cmd.ErrOrStderr(), renderPreflight(results))
		return fmt.Errorf("environment checks failed; run `gifclip setup`")
	}

	pipeline, store, err := buildPipeline(cfg, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	format, err := ffmpeg.ParseFormat(valueOr(opts.format, cfg.Defaults.Format))
	if err != nil {
		return err
	}

	request := clip.Request{
		Input:        input,
		Start:        strings.TrimSpace(opts.start),
		End:          strings.TrimSpace(opts.end),
		From:         strings.TrimSpace(opts.from),
		To:           strings.TrimSpace(opts.to),
		Text:         opts.text,
		Pad:          buildPad(cmd, opts),
		Language:     valueOr(opts.lang, cfg.Defaults.Language),
		NoSubs:       opts.noSubs,
		SubsOverride: strings.TrimSpace(opts.subs),
		Format:       format,
		Width:        intOr(opts.width, cfg.Defaults.Width),
		FPS:          intOr(opts.fps, cfg.Defaults.FPS),
		Quality:      intOr(opts.quality, cfg.Defaults.Quality),
		Output:       strings.TrimSpace(opts.output),
	}

	result, err := pipeline.Run(cmd.Context(), request)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created: %s (%s - %s)\n",
		result.Output, timecode.Format(result.Range.Start), timecode.Format(result.Range.End))
	return nil
}

// buildPipeline resolves the external binaries and wires the render
// pipeline. A history store failure degrades to a warning; the render
// still proceeds. The returned store is nil-safe to close.
func buildPipeline(cfg *config.Config, logger *slog.Logger) (*clip.Pipeline, *history.Store, error) {
	paths, err := tools.Resolve(cfg)
	if err != nil {
		return nil, nil, err
	}
	ytClient, err := ytdlp.New(paths.YtDlp)
	if err != nil {
		return nil, nil, err
	}
	ffClient, err := ffmpeg.New(paths.FFmpeg)
	if err != nil {
		return nil, nil, err
	}

	var store *history.Store
	if cfg.History.Enabled {
		store, err = history.Open(cfg.History.Path)
		if err != nil {
			logger.Warn("history store unavailable", "error", err)
			store = nil
		}
	}

	pipeline := &clip.Pipeline{
		Config:  cfg,
		Logger:  logger,
		YtDlp:   ytClient,
		FFmpeg:  ffClient,
		FFprobe: paths.FFprobe,
		History: store,
	}
	return pipeline, store, nil
}

func buildPad(cmd *cobra.Command, opts *clipOptions) cliprange.Pad {
	flags := cmd.Flags()
	return cliprange.Pad{
		Symmetric:    opts.pad,
		SymmetricSet: flags.Changed("pad"),
		Before:       opts.padBefore,
		BeforeSet:    flags.Changed("pad-before"),
		After:        opts.padAfter,
		AfterSet:     flags.Changed("pad-after"),
	}
}

func valueOr(value, fallback string) string {
	if strings.TrimSpace(value) != "" {
		return value
	}
	return fallback
}

func intOr(value, fallback int) int {
	if value > 0 {
		return value
	}
	return fallback
}
