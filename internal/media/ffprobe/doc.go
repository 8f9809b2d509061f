// Package ffprobe wraps the ffprobe binary to inspect media files.
package ffprobe
