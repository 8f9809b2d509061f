package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	cfg, path, exists, err := Load(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if exists {
		t.Fatalf("file should not exist")
	}
	if path == "" {
		t.Fatalf("resolved path missing")
	}
	if cfg.Tools.Source != ToolSourceSystem {
		t.Fatalf("unexpected tool source %q", cfg.Tools.Source)
	}
	if cfg.Defaults.Width != 480 || cfg.Defaults.FPS != 15 || cfg.Defaults.Quality != 80 {
		t.Fatalf("unexpected defaults: %+v", cfg.Defaults)
	}
}

func TestLoadParsesAndNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[tools]
source = "Managed"

[defaults]
format = "MP4"
width = 640

[logging]
level = "DEBUG"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, _, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !exists {
		t.Fatalf("file should exist")
	}
	if cfg.Tools.Source != ToolSourceManaged {
		t.Fatalf("source not normalized: %q", cfg.Tools.Source)
	}
	if cfg.Defaults.Format != "mp4" || cfg.Defaults.Width != 640 {
		t.Fatalf("unexpected defaults: %+v", cfg.Defaults)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("level not normalized: %q", cfg.Logging.Level)
	}
	if strings.HasPrefix(cfg.Paths.StagingDir, "~") {
		t.Fatalf("staging dir not expanded: %q", cfg.Paths.StagingDir)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := []string{
		"[tools]\nsource = \"cloud\"\n",
		"[defaults]\nformat = \"avi\"\n",
		"[defaults]\nwidth = 0\n",
		"[defaults]\nquality = 101\n",
		"[logging]\nlevel = \"loud\"\n",
	}
	for _, content := range cases {
		path := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, _, _, err := Load(path); err == nil {
			t.Fatalf("expected validation error for %q", content)
		}
	}
}

func TestWriteSampleRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := WriteSample(path); err != nil {
		t.Fatalf("WriteSample failed: %v", err)
	}
	if err := WriteSample(path); err == nil {
		t.Fatalf("expected error when file exists")
	}
	// The sample must itself be loadable.
	if _, _, _, err := Load(path); err != nil {
		t.Fatalf("sample config does not load: %v", err)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg := Default()
	cfg.Defaults.Width = 720
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	loaded, _, _, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Defaults.Width != 720 {
		t.Fatalf("width not persisted: %d", loaded.Defaults.Width)
	}
}
