package subtitle

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// parseSRT decodes SubRip blocks: an optional numeric index line, a
// "HH:MM:SS,mmm --> HH:MM:SS,mmm" timing line, and one or more text
// lines terminated by a blank line. Blocks without a usable timing line
// are skipped.
func parseSRT(data []byte) ([]Cue, error) {
	content := strings.Join(normalizeLines(data), "\n")
	blocks := strings.Split(strings.TrimSpace(content), "\n\n")

	var cues []Cue
	for _, block := range blocks {
		lines := strings.Split(block, "\n")

		timingIdx := -1
		for i, line := range lines {
			if strings.Contains(line, "-->") {
				timingIdx = i
				break
			}
		}
		if timingIdx < 0 {
			continue
		}

		start, end, err := parseSRTTiming(lines[timingIdx])
		if err != nil {
			continue
		}

		text := joinCueText(lines[timingIdx+1:], FormatSRT)
		if text == "" {
			continue
		}
		cues = append(cues, Cue{Start: start, End: end, Text: text})
	}
	return cues, nil
}

func parseSRTTiming(line string) (time.Duration, time.Duration, error) {
	parts := strings.Split(line, "-->")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid timing line %q", line)
	}
	start, err := parseSRTTimestamp(parts[0])
	if err != nil {
		return 0, 0, err
	}
	// VTT-style cue settings after the end stamp are ignored.
	endText := strings.Fields(strings.TrimSpace(parts[1]))
	if len(endText) == 0 {
		return 0, 0, fmt.Errorf("invalid timing line %q", line)
	}
	end, err := parseSRTTimestamp(endText[0])
	if err != nil {
		return 0, 0, err
	}
	if end < start {
		return 0, 0, fmt.Errorf("cue ends before it starts in %q", line)
	}
	return start, end, nil
}

// parseSRTTimestamp accepts HH:MM:SS,mmm with either comma or period
// before the milliseconds.
func parseSRTTimestamp(value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	value = strings.ReplaceAll(value, ".", ",")
	timeParts := strings.Split(value, ",")
	if len(timeParts) > 2 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	millis := 0
	if len(timeParts) == 2 {
		parsed, err := strconv.Atoi(timeParts[1])
		if err != nil || parsed < 0 {
			return 0, fmt.Errorf("invalid timestamp %q", value)
		}
		millis = parsed
	}
	hms := strings.Split(timeParts[0], ":")
	if len(hms) != 3 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hours, errH := strconv.Atoi(hms[0])
	minutes, errM := strconv.Atoi(hms[1])
	seconds, errS := strconv.Atoi(hms[2])
	if errH != nil || errM != nil || errS != nil || hours < 0 || minutes < 0 || seconds < 0 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	return time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		time.Duration(seconds)*time.Second +
		time.Duration(millis)*time.Millisecond, nil
}

// joinCueText strips markup from text lines and joins the non-empty
// remainder with embedded line breaks preserved.
func joinCueText(lines []string, format Format) string {
	var kept []string
	for _, line := range lines {
		cleaned := strings.TrimSpace(stripMarkup(line, format))
		if cleaned == "" {
			continue
		}
		kept = append(kept, cleaned)
	}
	return strings.Join(kept, "\n")
}
