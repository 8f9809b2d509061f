// Package timecode parses and formats user-supplied time literals.
//
// Accepted input grammars are plain seconds ("90", "12.5"), MM:SS with
// unbounded minutes ("1:30", "125:07.250"), and HH:MM:SS with unbounded
// hours ("1:02:03.450"). Parsed values are non-negative durations with
// millisecond precision.
package timecode
