package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestNewRejectsBadLevel(t *testing.T) {
	if _, err := New(Options{Level: "loud", Format: "json"}); err == nil {
		t.Fatalf("expected error for bad level")
	}
}

func TestNewRejectsBadFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatalf("expected error for bad format")
	}
}

func TestConsoleOutput(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "debug", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	logger.Info("rendering clip", "format", "gif", "width", 480)
	line := buf.String()
	if !strings.Contains(line, "INF rendering clip") {
		t.Fatalf("unexpected line: %q", line)
	}
	if !strings.Contains(line, "format=gif") || !strings.Contains(line, "width=480") {
		t.Fatalf("attrs missing: %q", line)
	}
}

func TestConsoleGroupsAndAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	logger.WithGroup("encode").With("codec", "vp9").Warn("slow pass")
	line := buf.String()
	if !strings.Contains(line, "WRN slow pass") || !strings.Contains(line, "encode.codec=vp9") {
		t.Fatalf("unexpected line: %q", line)
	}
}

func TestConsoleLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "warn", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	logger.Info("hidden")
	if buf.Len() != 0 {
		t.Fatalf("info should be filtered at warn level: %q", buf.String())
	}
}

func TestJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Format: "json", Writer: &buf})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	logger.Info("download complete", "path", "/tmp/video.mp4")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if record["msg"] != "download complete" || record["path"] != "/tmp/video.mp4" {
		t.Fatalf("unexpected record: %v", record)
	}
}

func TestParseLevelDefaults(t *testing.T) {
	level, err := parseLevel("")
	if err != nil || level != slog.LevelInfo {
		t.Fatalf("empty level should default to info, got %v, %v", level, err)
	}
}
