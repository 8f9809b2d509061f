package timecode

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Parse failure reasons.
const (
	ReasonFormat = "invalid format"
	ReasonValue  = "invalid value"
)

// ParseError reports a timestamp literal that could not be parsed.
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse timestamp %q: %s (use seconds, MM:SS, or HH:MM:SS)", e.Input, e.Reason)
}

func formatErr(input string) error {
	return &ParseError{Input: input, Reason: ReasonFormat}
}

func valueErr(input string) error {
	return &ParseError{Input: input, Reason: ReasonValue}
}

// Parse converts a time literal into a duration. Grammars are tried in
// order: plain seconds, MM:SS, HH:MM:SS. Fractional seconds are allowed
// in every grammar; the leftmost field is unbounded, the rest must stay
// within their unit.
func Parse(input string) (time.Duration, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return 0, formatErr(input)
	}

	parts := strings.Split(trimmed, ":")
	switch len(parts) {
	case 1:
		// A bare token that is not a plain decimal number matches none
		// of the grammars, so that is a format error; a number that
		// parses but is negative is a value error.
		if !decimalToken(trimmed, true) {
			return 0, formatErr(input)
		}
		seconds, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return 0, formatErr(input)
		}
		if seconds < 0 {
			return 0, valueErr(input)
		}
		return toDuration(seconds), nil
	case 2:
		minutes, err := parseField(parts[0], -1)
		if err != nil {
			return 0, &ParseError{Input: input, Reason: reason(err)}
		}
		seconds, err := parseSeconds(parts[1], true)
		if err != nil {
			return 0, &ParseError{Input: input, Reason: reason(err)}
		}
		return toDuration(float64(minutes)*60 + seconds), nil
	case 3:
		hours, err := parseField(parts[0], -1)
		if err != nil {
			return 0, &ParseError{Input: input, Reason: reason(err)}
		}
		minutes, err := parseField(parts[1], 60)
		if err != nil {
			return 0, &ParseError{Input: input, Reason: reason(err)}
		}
		seconds, err := parseSeconds(parts[2], true)
		if err != nil {
			return 0, &ParseError{Input: input, Reason: reason(err)}
		}
		return toDuration(float64(hours)*3600 + float64(minutes)*60 + seconds), nil
	default:
		return 0, formatErr(input)
	}
}

// parseField parses one colon-separated integer field. A negative limit
// means unbounded (the leftmost field carries cumulative magnitude).
func parseField(field string, limit int) (int, error) {
	if field == "" || strings.ContainsAny(field, "+-") {
		return 0, formatErr(field)
	}
	value, err := strconv.Atoi(field)
	if err != nil {
		return 0, valueErr(field)
	}
	if value < 0 || (limit > 0 && value >= limit) {
		return 0, valueErr(field)
	}
	return value, nil
}

// parseSeconds parses a seconds field, optionally fractional. When
// bounded it must stay below 60.
func parseSeconds(field string, bounded bool) (float64, error) {
	if field == "" || strings.ContainsAny(field, "+-") {
		return 0, formatErr(field)
	}
	if !decimalToken(field, false) {
		return 0, valueErr(field)
	}
	value, err := strconv.ParseFloat(field, 64)
	if err != nil {
		return 0, valueErr(field)
	}
	if value < 0 || (bounded && value >= 60) {
		return 0, valueErr(field)
	}
	return value, nil
}

// decimalToken reports whether field is a plain decimal number: an
// optional sign when allowed, digits, and at most one dot. ParseFloat
// alone would also accept NaN, infinities, hex floats, and exponents,
// none of which the grammars allow.
func decimalToken(field string, signed bool) bool {
	if signed && field != "" && (field[0] == '+' || field[0] == '-') {
		field = field[1:]
	}
	digits, dots := 0, 0
	for _, r := range field {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '.':
			dots++
		default:
			return false
		}
	}
	return digits > 0 && dots <= 1
}

func reason(err error) string {
	if pe, ok := err.(*ParseError); ok {
		return pe.Reason
	}
	return ReasonFormat
}

// toDuration converts seconds to a duration rounded to milliseconds.
func toDuration(seconds float64) time.Duration {
	return time.Duration(seconds*1000+0.5) * time.Millisecond
}

// Format renders a duration in the canonical H:MM:SS form, appending
// milliseconds only when the value is not whole seconds. Parse is a
// left-inverse of Format.
func Format(d time.Duration) string {
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

	if millis == 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%d:%02d:%02d.%03d", hours, minutes, seconds, millis)
}

// Compact renders a duration as a short filename-safe label ("1m30s").
// Sub-second precision is dropped.
func Compact(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Second)
	return fmt.Sprintf("%dm%ds", total/60, total%60)
}
