// Package gesture resolves where a hold lands and when a press becomes a hold.
package gesture

import (
	"errors"

	"github.com/tessro/holdseek/internal/core"
)

// Zone is a horizontal band of the screen.
type Zone int

const (
	// ZoneBrightness is the left band, owned by the brightness drag.
	ZoneBrightness Zone = iota
	// ZoneSeek is the center band where holds seek.
	ZoneSeek
	// ZoneVolume is the right band, owned by the volume drag.
	ZoneVolume
)

func (z Zone) String() string {
	switch z {
	case ZoneBrightness:
		return "brightness"
	case ZoneSeek:
		return "seek"
	case ZoneVolume:
		return "volume"
	default:
		return "unknown"
	}
}

// Layout splits the screen width into three bands. LeftBand and RightBand
// are fractions of the width where the seek band starts and ends.
type Layout struct {
	LeftBand  float64
	RightBand float64
}

// DefaultLayout gives the outer 30% on each side to volume and brightness.
var DefaultLayout = Layout{LeftBand: 0.3, RightBand: 0.7}

// Validate checks that the bands are ordered fractions.
func (l Layout) Validate() error {
	if l.LeftBand < 0 || l.RightBand > 1 || l.LeftBand >= l.RightBand {
		return errors.New("bands must satisfy 0 <= left_band < right_band <= 1")
	}
	return nil
}

// Zone returns the band containing x.
func (l Layout) Zone(x, width float64) Zone {
	if width <= 0 {
		return ZoneSeek
	}
	f := x / width
	switch {
	case f < l.LeftBand:
		return ZoneBrightness
	case f >= l.RightBand:
		return ZoneVolume
	default:
		return ZoneSeek
	}
}

// Classify resolves the initial direction of a hold at x: the left half of
// the seek band seeks backward, the right half forward. Eligibility is the
// caller's concern; any x yields a direction.
func (l Layout) Classify(x, width float64) core.Direction {
	mid := width * (l.LeftBand + l.RightBand) / 2
	if x < mid {
		return core.Backward
	}
	return core.Forward
}

// Classify resolves direction with DefaultLayout.
func Classify(x, width float64) core.Direction {
	return DefaultLayout.Classify(x, width)
}
