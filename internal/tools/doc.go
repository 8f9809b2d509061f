// Package tools resolves the external binaries gifclip drives
// (yt-dlp, ffmpeg, ffprobe) according to configuration, and installs
// managed copies of yt-dlp for `gifclip setup`.
package tools
