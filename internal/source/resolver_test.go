package source

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"gifclip/internal/subtitle"
)

const fakeSRT = "1\n00:00:01,000 --> 00:00:02,000\nhello there\n"

type fakeFetcher struct {
	data  []byte
	err   error
	calls int
}

func (f *fakeFetcher) FetchSubtitle(_ context.Context, _, _ string) ([]byte, error) {
	f.calls++
	return f.data, f.err
}

type fakeExtractor struct {
	data  []byte
	err   error
	calls int
}

func (f *fakeExtractor) ExtractSubtitle(_ context.Context, _, _ string) ([]byte, error) {
	f.calls++
	return f.data, f.err
}

type fakeDownloader struct {
	data []byte
	err  error
}

func (f *fakeDownloader) FetchBytes(_ context.Context, _ string) ([]byte, error) {
	return f.data, f.err
}

func TestResolveDisabledNeverFetches(t *testing.T) {
	fetcher := &fakeFetcher{data: []byte(fakeSRT)}
	resolver := &Resolver{Remote: fetcher}

	track, err := resolver.Resolve(context.Background(), Request{
		Kind:     KindRemotePlatform,
		Input:    "https://youtube.com/watch?v=x",
		Disabled: true,
		Language: "en",
	})
	if err != nil || track != nil {
		t.Fatalf("expected nil track and nil error, got %v / %v", track, err)
	}
	if fetcher.calls != 0 {
		t.Fatalf("fetcher must not be called when subtitles are disabled")
	}
}

func TestResolveOverrideFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.srt")
	if err := os.WriteFile(path, []byte(fakeSRT), 0o644); err != nil {
		t.Fatal(err)
	}

	resolver := &Resolver{}
	track, err := resolver.Resolve(context.Background(), Request{
		Kind:     KindRemotePlatform,
		Override: path,
		Language: "en",
	})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if track == nil || track.Origin != subtitle.OriginOverride {
		t.Fatalf("unexpected track: %+v", track)
	}
}

func TestResolveOverrideMissingFileIsFatal(t *testing.T) {
	resolver := &Resolver{}
	_, err := resolver.Resolve(context.Background(), Request{
		Kind:     KindLocalFile,
		Override: filepath.Join(t.TempDir(), "missing.srt"),
	})
	if err == nil {
		t.Fatalf("expected hard error for missing override")
	}
}

func TestResolveRemoteAbsenceIsNotAnError(t *testing.T) {
	resolver := &Resolver{Remote: &fakeFetcher{}}
	track, err := resolver.Resolve(context.Background(), Request{
		Kind:     KindRemotePlatform,
		Input:    "https://youtube.com/watch?v=x",
		Language: "en",
	})
	if err != nil || track != nil {
		t.Fatalf("absence should yield nil/nil, got %v / %v", track, err)
	}
}

func TestResolveRemoteFetchFailureIsFatal(t *testing.T) {
	resolver := &Resolver{Remote: &fakeFetcher{err: errors.New("network down")}}
	_, err := resolver.Resolve(context.Background(), Request{
		Kind:  KindRemotePlatform,
		Input: "https://youtube.com/watch?v=x",
	})
	if err == nil {
		t.Fatalf("fetch failure must not be downgraded to absence")
	}
}

func TestResolveLocalPrefersEmbeddedOverAdjacent(t *testing.T) {
	dir := t.TempDir()
	media := filepath.Join(dir, "movie.mp4")
	if err := os.WriteFile(filepath.Join(dir, "movie.srt"), []byte(fakeSRT), 0o644); err != nil {
		t.Fatal(err)
	}

	extractor := &fakeExtractor{data: []byte(fakeSRT)}
	resolver := &Resolver{Extract: extractor}
	track, err := resolver.Resolve(context.Background(), Request{
		Kind:      KindLocalFile,
		Input:     media,
		MediaPath: media,
		Language:  "en",
	})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if track == nil || track.Origin != subtitle.OriginEmbedded {
		t.Fatalf("expected embedded origin, got %+v", track)
	}
}

func TestResolveLocalFallsBackToAdjacentFile(t *testing.T) {
	dir := t.TempDir()
	media := filepath.Join(dir, "movie.mp4")
	if err := os.WriteFile(filepath.Join(dir, "movie.en.srt"), []byte(fakeSRT), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "other.srt"), []byte(fakeSRT), 0o644); err != nil {
		t.Fatal(err)
	}

	resolver := &Resolver{Extract: &fakeExtractor{}}
	track, err := resolver.Resolve(context.Background(), Request{
		Kind:      KindLocalFile,
		Input:     media,
		MediaPath: media,
		Language:  "en",
	})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if track == nil || track.Origin != subtitle.OriginAdjacent {
		t.Fatalf("expected adjacent origin, got %+v", track)
	}
}

func TestResolveLocalAdjacentLanguageMismatch(t *testing.T) {
	dir := t.TempDir()
	media := filepath.Join(dir, "movie.mp4")
	if err := os.WriteFile(filepath.Join(dir, "movie.de.srt"), []byte(fakeSRT), 0o644); err != nil {
		t.Fatal(err)
	}

	resolver := &Resolver{Extract: &fakeExtractor{}}
	track, err := resolver.Resolve(context.Background(), Request{
		Kind:      KindLocalFile,
		Input:     media,
		MediaPath: media,
		Language:  "en",
	})
	if err != nil || track != nil {
		t.Fatalf("mismatched language should yield nil/nil, got %v / %v", track, err)
	}
}

func TestResolveDirectURLSkipsAdjacentSearch(t *testing.T) {
	dir := t.TempDir()
	media := filepath.Join(dir, "download.mp4")
	// An adjacent file exists next to the downloaded media, but a
	// direct URL input has no real local directory to search.
	if err := os.WriteFile(filepath.Join(dir, "download.srt"), []byte(fakeSRT), 0o644); err != nil {
		t.Fatal(err)
	}

	resolver := &Resolver{Extract: &fakeExtractor{}}
	track, err := resolver.Resolve(context.Background(), Request{
		Kind:      KindDirectURL,
		Input:     "https://example.com/download.mp4",
		MediaPath: media,
		Language:  "en",
	})
	if err != nil || track != nil {
		t.Fatalf("direct URL without embedded stream should yield nil/nil, got %v / %v", track, err)
	}
}

func TestResolveExtractionFailureIsFatal(t *testing.T) {
	resolver := &Resolver{Extract: &fakeExtractor{err: errors.New("permission denied")}}
	_, err := resolver.Resolve(context.Background(), Request{
		Kind:      KindLocalFile,
		MediaPath: "/video/movie.mp4",
	})
	if err == nil {
		t.Fatalf("extraction failure must be a hard error")
	}
}
