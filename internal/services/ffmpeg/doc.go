// Package ffmpeg wraps the ffmpeg binary for clip encoding and
// embedded subtitle extraction.
package ffmpeg
