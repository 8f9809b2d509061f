package clip

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"

	"gifclip/internal/media/ffprobe"
	"gifclip/internal/services/ffmpeg"
)

// embeddedExtractor adapts ffprobe stream selection plus ffmpeg stream
// dumping to the resolver's extractor capability.
type embeddedExtractor struct {
	ffmpeg  *ffmpeg.Client
	ffprobe string
	workdir string
}

func (e *embeddedExtractor) ExtractSubtitle(ctx context.Context, mediaPath, lang string) ([]byte, error) {
	result, err := ffprobe.Inspect(ctx, e.ffprobe, mediaPath)
	if err != nil {
		return nil, err
	}
	index := result.FindSubtitleStream(lang)
	if index < 0 {
		return nil, nil
	}
	dest := filepath.Join(e.workdir, "embedded.srt")
	return e.ffmpeg.ExtractSubtitle(ctx, mediaPath, index, dest)
}

// httpDownloader fetches raw bytes, used for subtitle override URLs.
type httpDownloader struct {
	client *http.Client
}

func (d *httpDownloader) FetchBytes(ctx context.Context, url string) ([]byte, error) {
	client := d.client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: HTTP %s", url, resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", url, err)
	}
	return data, nil
}
