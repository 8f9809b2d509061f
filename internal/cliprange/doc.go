// Package cliprange turns explicit timestamps or matched subtitle cues
// into a final clip interval, applying padding precedence and clamping
// to known video bounds.
package cliprange
