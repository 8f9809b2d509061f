package subtitle

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

func errInvalidStamp(value string) error {
	return fmt.Errorf("invalid timestamp %q", value)
}

// parseVTT decodes WebVTT content. NOTE and STYLE blocks are skipped,
// cue identifiers and settings are ignored, and both HH:MM:SS.mmm and
// the short MM:SS.mmm stamp forms are accepted.
func parseVTT(data []byte) ([]Cue, error) {
	lines := normalizeLines(data)

	var cues []Cue
	var current *Cue
	skipBlock := false

	flush := func() {
		if current != nil && current.Text != "" {
			cues = append(cues, *current)
		}
		current = nil
	}

	for _, raw := range lines {
		line := strings.TrimSpace(raw)

		if line == "" {
			flush()
			skipBlock = false
			continue
		}
		if skipBlock {
			continue
		}
		if strings.HasPrefix(line, "WEBVTT") {
			continue
		}
		if strings.HasPrefix(line, "NOTE") || line == "STYLE" || line == "REGION" {
			skipBlock = true
			continue
		}

		if strings.Contains(line, "-->") {
			start, end, ok := parseVTTTiming(line)
			if !ok {
				continue
			}
			flush()
			current = &Cue{Start: start, End: end}
			continue
		}

		if current == nil {
			// Cue identifier or header metadata outside a cue.
			continue
		}

		cleaned := strings.TrimSpace(stripMarkup(line, FormatVTT))
		if cleaned == "" {
			continue
		}
		if current.Text != "" {
			current.Text += "\n"
		}
		current.Text += cleaned
	}
	flush()

	return cues, nil
}

func parseVTTTiming(line string) (time.Duration, time.Duration, bool) {
	parts := strings.Split(line, "-->")
	if len(parts) != 2 {
		return 0, 0, false
	}
	start, err := parseVTTTimestamp(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, false
	}
	endFields := strings.Fields(strings.TrimSpace(parts[1]))
	if len(endFields) == 0 {
		return 0, 0, false
	}
	end, err := parseVTTTimestamp(endFields[0])
	if err != nil || end < start {
		return 0, 0, false
	}
	return start, end, true
}

// parseVTTTimestamp accepts H:MM:SS.mmm or MM:SS.mmm, comma tolerated
// in place of the period.
func parseVTTTimestamp(value string) (time.Duration, error) {
	value = strings.Replace(value, ",", ".", 1)

	var millis int
	if dot := strings.LastIndex(value, "."); dot >= 0 {
		parsed, err := strconv.Atoi(value[dot+1:])
		if err != nil || parsed < 0 {
			return 0, errInvalidStamp(value)
		}
		millis = parsed
		value = value[:dot]
	}

	fields := strings.Split(value, ":")
	var hours, minutes, seconds int
	var errH, errM, errS error
	switch len(fields) {
	case 3:
		hours, errH = strconv.Atoi(fields[0])
		minutes, errM = strconv.Atoi(fields[1])
		seconds, errS = strconv.Atoi(fields[2])
	case 2:
		minutes, errM = strconv.Atoi(fields[0])
		seconds, errS = strconv.Atoi(fields[1])
	default:
		return 0, errInvalidStamp(value)
	}
	if errH != nil || errM != nil || errS != nil || hours < 0 || minutes < 0 || seconds < 0 {
		return 0, errInvalidStamp(value)
	}
	return time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		time.Duration(seconds)*time.Second +
		time.Duration(millis)*time.Millisecond, nil
}
