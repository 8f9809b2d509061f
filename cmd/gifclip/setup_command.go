package main

import (
	"bufio"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"

	"gifclip/internal/config"
	"gifclip/internal/preflight"
	"gifclip/internal/tools"
)

func newSetupCommand(ctx *commandContext) *cobra.Command {
	var useSystem bool
	var useManaged bool

	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Configure how gifclip finds yt-dlp, ffmpeg, and ffprobe",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			return runSetup(cmd, ctx, cfg, useSystem, useManaged)
		},
	}

	cmd.Flags().BoolVar(&useSystem, "system", false, "Use tools from PATH without prompting")
	cmd.Flags().BoolVar(&useManaged, "managed", false, "Download managed tools without prompting")
	return cmd
}

func runSetup(cmd *cobra.Command, ctx *commandContext, cfg *config.Config, useSystem, useManaged bool) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "gifclip setup")
	fmt.Fprintln(out)

	ytdlpPath, ytdlpErr := exec.LookPath("yt-dlp")
	ffmpegPath, ffmpegErr := exec.LookPath("ffmpeg")

	if ytdlpErr == nil && ffmpegErr == nil {
		fmt.Fprintln(out, "Found system installations:")
		fmt.Fprintf(out, "  yt-dlp: %s\n", ytdlpPath)
		fmt.Fprintf(out, "  ffmpeg: %s\n", ffmpegPath)
	} else {
		fmt.Fprintln(out, "System tools not found:")
		if ytdlpErr != nil {
			fmt.Fprintln(out, "  yt-dlp: not found")
		}
		if ffmpegErr != nil {
			fmt.Fprintln(out, "  ffmpeg: not found")
		}
	}
	fmt.Fprintln(out)

	var source string
	switch {
	case useSystem && useManaged:
		return fmt.Errorf("--system and --managed are mutually exclusive")
	case useSystem:
		source = config.ToolSourceSystem
	case useManaged:
		source = config.ToolSourceManaged
	default:
		choice, err := promptChoice(cmd.InOrStdin(), out, []string{
			"Use system tools from PATH",
			fmt.Sprintf("Download and manage yt-dlp in %s", cfg.Tools.ManagedDir),
		}, systemDefault(ytdlpErr == nil && ffmpegErr == nil))
		if err != nil {
			return err
		}
		if choice == 0 {
			source = config.ToolSourceSystem
		} else {
			source = config.ToolSourceManaged
		}
	}

	cfg.Tools.Source = source
	if source == config.ToolSourceManaged {
		fmt.Fprintf(out, "Downloading yt-dlp to %s...\n", cfg.Tools.ManagedDir)
		installer := tools.NewInstaller(cfg.Tools.ManagedDir)
		if _, err := installer.InstallYtDlp(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(out, "yt-dlp installed.")
		if ffmpegErr != nil {
			fmt.Fprintln(out, "ffmpeg is not downloadable here; install it via your package manager or set tools.ffmpeg in the config.")
		}
	}

	if err := cfg.Save(ctx.configPath); err != nil {
		return err
	}
	fmt.Fprintf(out, "\nConfiguration saved to %s\n\n", ctx.configPath)

	results := preflight.RunAll(cmd.Context(), cfg)
	fmt.Fprintln(out, renderPreflight(results))
	if !preflight.Passed(results) {
		return fmt.Errorf("some environment checks failed")
	}
	return nil
}

// systemDefault picks the recommended menu entry: system tools when
// both are already installed, managed otherwise.
func systemDefault(haveSystem bool) int {
	if haveSystem {
		return 0
	}
	return 1
}

func promptChoice(in io.Reader, out io.Writer, options []string, defaultIdx int) (int, error) {
	for i, option := range options {
		marker := " "
		if i == defaultIdx {
			marker = "*"
		}
		fmt.Fprintf(out, " %s %d) %s\n", marker, i+1, option)
	}
	fmt.Fprintf(out, "Choice [%d]: ", defaultIdx+1)

	reader := bufio.NewReader(in)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return defaultIdx, nil
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return defaultIdx, nil
	}
	for i := range options {
		if line == fmt.Sprintf("%d", i+1) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("invalid choice %q", line)
}
