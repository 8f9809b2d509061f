package subtitle

import (
	"fmt"
	"io"
	"time"
)

// WriteSRT re-emits cues as a SubRip document, the only format the
// ffmpeg subtitles filter is fed.
func WriteSRT(w io.Writer, cues []Cue) error {
	for i, cue := range cues {
		_, err := fmt.Fprintf(w, "%d\n%s --> %s\n%s\n\n",
			i+1, formatSRTTimestamp(cue.Start), formatSRTTimestamp(cue.End), cue.Text)
		if err != nil {
			return fmt.Errorf("write srt: %w", err)
		}
	}
	return nil
}

func formatSRTTimestamp(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	millis := d.Milliseconds()
	hours := millis / 3_600_000
	millis %= 3_600_000
	minutes := millis / 60_000
	millis %= 60_000
	seconds := millis / 1000
	millis %= 1000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, seconds, millis)
}
