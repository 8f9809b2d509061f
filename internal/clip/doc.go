// Package clip orchestrates one render: classify the input, probe
// metadata, resolve subtitles and the clip range, download when
// needed, and drive ffmpeg to produce the final file.
package clip
