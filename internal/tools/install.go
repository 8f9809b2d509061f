package tools

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"

	"github.com/gofrs/flock"
)

const defaultYtDlpBaseURL = "https://github.com/yt-dlp/yt-dlp/releases/latest/download"

// Installer downloads managed tool binaries into a directory. Only
// yt-dlp ships as a single static binary on every platform; ffmpeg
// and ffprobe must come from the system or an explicit override.
type Installer struct {
	dir     string
	client  *http.Client
	baseURL string
}

// InstallerOption adjusts installer behavior.
type InstallerOption func(*Installer)

// WithHTTPClient substitutes the HTTP client used for downloads.
func WithHTTPClient(client *http.Client) InstallerOption {
	return func(i *Installer) { i.client = client }
}

// WithBaseURL substitutes the release download URL prefix.
func WithBaseURL(url string) InstallerOption {
	return func(i *Installer) { i.baseURL = url }
}

// NewInstaller returns an installer targeting dir.
func NewInstaller(dir string, opts ...InstallerOption) *Installer {
	inst := &Installer{
		dir:     dir,
		client:  http.DefaultClient,
		baseURL: defaultYtDlpBaseURL,
	}
	for _, opt := range opts {
		opt(inst)
	}
	return inst
}

// InstallYtDlp downloads the latest yt-dlp release binary into the
// managed directory and returns its path. An advisory file lock keeps
// concurrent setups from clobbering each other.
func (i *Installer) InstallYtDlp(ctx context.Context) (string, error) {
	if err := os.MkdirAll(i.dir, 0o755); err != nil {
		return "", fmt.Errorf("tools: create managed directory: %w", err)
	}

	lock := flock.New(filepath.Join(i.dir, ".install.lock"))
	if err := lock.Lock(); err != nil {
		return "", fmt.Errorf("tools: acquire install lock: %w", err)
	}
	defer lock.Unlock()

	dest := filepath.Join(i.dir, "yt-dlp")
	if err := i.download(ctx, i.baseURL+"/"+ytDlpAssetName(), dest); err != nil {
		return "", err
	}
	if err := os.Chmod(dest, 0o755); err != nil {
		return "", fmt.Errorf("tools: mark yt-dlp executable: %w", err)
	}
	return dest, nil
}

func (i *Installer) download(ctx context.Context, url, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("tools: build download request: %w", err)
	}
	resp, err := i.client.Do(req)
	if err != nil {
		return fmt.Errorf("tools: download yt-dlp: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("tools: download yt-dlp: HTTP %s", resp.Status)
	}

	// Write to a temp name and rename so a failed download never
	// leaves a truncated binary behind.
	tmp, err := os.CreateTemp(i.dir, "yt-dlp.download-*")
	if err != nil {
		return fmt.Errorf("tools: create download file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("tools: write yt-dlp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("tools: close download file: %w", err)
	}
	if err := os.Rename(tmpName, dest); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("tools: install yt-dlp: %w", err)
	}
	return nil
}

func ytDlpAssetName() string {
	switch runtime.GOOS {
	case "darwin":
		return "yt-dlp_macos"
	case "windows":
		return "yt-dlp.exe"
	default:
		return "yt-dlp"
	}
}
