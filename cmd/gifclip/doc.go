// Command gifclip downloads a video clip and exports it as a GIF,
// WebM, or MP4 with burned-in subtitles.
package main
