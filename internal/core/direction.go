package core

import (
	"fmt"
	"time"
)

// Direction is the way a seek session moves the playback cursor.
type Direction int

const (
	Forward Direction = iota
	Backward
)

// String returns the human-readable name of the direction.
func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

// Sign returns +1 for Forward and -1 for Backward.
func (d Direction) Sign() int {
	if d == Backward {
		return -1
	}
	return 1
}

// Apply returns amount signed for this direction.
func (d Direction) Apply(amount time.Duration) time.Duration {
	return time.Duration(d.Sign()) * amount
}

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction {
	if d == Backward {
		return Forward
	}
	return Backward
}

// Arrow returns a compact glyph for overlays and log lines.
func (d Direction) Arrow() string {
	if d == Backward {
		return "◀◀"
	}
	return "▶▶"
}

// MarshalText encodes the direction by name.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}
