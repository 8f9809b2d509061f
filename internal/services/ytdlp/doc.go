// Package ytdlp wraps yt-dlp CLI interactions: video metadata lookup,
// clip source download, and platform subtitle retrieval.
package ytdlp
