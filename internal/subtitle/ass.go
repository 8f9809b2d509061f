package subtitle

import (
	"strconv"
	"strings"
	"time"
)

// parseASS decodes Advanced SubStation Alpha (and legacy SSA) events.
// Only the [Events] section matters: the Format line fixes the field
// order, Dialogue lines carry the cues. Override blocks ({\...}) are
// stripped and \N becomes a line break.
func parseASS(data []byte) ([]Cue, error) {
	lines := normalizeLines(data)

	inEvents := false
	startIdx, endIdx, textIdx, fieldCount := 1, 2, 9, 10

	var cues []Cue
	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, ";") {
			continue
		}
		if strings.HasPrefix(line, "[") {
			inEvents = strings.EqualFold(line, "[Events]")
			continue
		}
		if !inEvents {
			continue
		}

		if value, ok := strings.CutPrefix(line, "Format:"); ok {
			fields := strings.Split(value, ",")
			fieldCount = len(fields)
			for i, field := range fields {
				switch strings.TrimSpace(field) {
				case "Start":
					startIdx = i
				case "End":
					endIdx = i
				case "Text":
					textIdx = i
				}
			}
			continue
		}

		value, ok := strings.CutPrefix(line, "Dialogue:")
		if !ok {
			continue
		}
		// Text is the last field and may itself contain commas.
		fields := strings.SplitN(value, ",", fieldCount)
		if len(fields) <= textIdx || textIdx != fieldCount-1 {
			continue
		}
		start, errStart := parseASSTimestamp(fields[startIdx])
		end, errEnd := parseASSTimestamp(fields[endIdx])
		if errStart != nil || errEnd != nil || end < start {
			continue
		}

		text := stripMarkup(fields[textIdx], FormatASS)
		text = strings.ReplaceAll(text, `\N`, "\n")
		text = strings.ReplaceAll(text, `\n`, "\n")
		text = strings.ReplaceAll(text, `\h`, " ")
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		cues = append(cues, Cue{Start: start, End: end, Text: text})
	}
	return cues, nil
}

// parseASSTimestamp accepts H:MM:SS.cc with centisecond precision.
func parseASSTimestamp(value string) (time.Duration, error) {
	value = strings.TrimSpace(value)

	centis := 0
	if dot := strings.LastIndex(value, "."); dot >= 0 {
		parsed, err := strconv.Atoi(value[dot+1:])
		if err != nil || parsed < 0 {
			return 0, errInvalidStamp(value)
		}
		centis = parsed
		value = value[:dot]
	}

	fields := strings.Split(value, ":")
	if len(fields) != 3 {
		return 0, errInvalidStamp(value)
	}
	hours, errH := strconv.Atoi(fields[0])
	minutes, errM := strconv.Atoi(fields[1])
	seconds, errS := strconv.Atoi(fields[2])
	if errH != nil || errM != nil || errS != nil || hours < 0 || minutes < 0 || seconds < 0 {
		return 0, errInvalidStamp(value)
	}
	return time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		time.Duration(seconds)*time.Second +
		time.Duration(centis)*10*time.Millisecond, nil
}
