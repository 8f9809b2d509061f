// Package subtitle parses subtitle tracks and searches their dialogue.
//
// The package normalizes SRT, WebVTT, and ASS/SSA sources into one
// ordered cue sequence, strips styling markup, and answers fuzzy
// (case- and whitespace-insensitive substring) dialogue queries used to
// resolve clip ranges. It also re-emits cue windows as SRT for ffmpeg
// burn-in.
package subtitle
