package speed

import (
	"fmt"
	"strings"
	"time"
)

// Tier is a discrete seek-speed level.
type Tier int

const (
	X1 Tier = iota
	X2
	X4
	X8
	X16
	X32
)

// NumTiers is the number of tiers in the ordered sequence.
const NumTiers = int(X32) + 1

// MinTickInterval is the floor below which a tier would starve the player's
// own position-update loop.
const MinTickInterval = 50 * time.Millisecond

// Multiplier returns the nominal speed multiplier (1, 2, 4, ...).
func (t Tier) Multiplier() int {
	return 1 << int(t.clamp())
}

// String returns the tier label, e.g. "x8".
func (t Tier) String() string {
	if t < X1 || t > X32 {
		return fmt.Sprintf("tier(%d)", int(t))
	}
	return fmt.Sprintf("x%d", t.Multiplier())
}

// Next returns the following tier, saturating at X32.
func (t Tier) Next() Tier {
	if t >= X32 {
		return X32
	}
	return t + 1
}

func (t Tier) clamp() Tier {
	switch {
	case t < X1:
		return X1
	case t > X32:
		return X32
	}
	return t
}

// ParseTier parses labels like "x4" or "4".
func ParseTier(s string) (Tier, error) {
	s = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "x")
	for t := X1; t <= X32; t++ {
		if fmt.Sprint(t.Multiplier()) == s {
			return t, nil
		}
	}
	return X1, fmt.Errorf("unknown speed tier %q", s)
}

// MarshalText encodes the tier by label.
func (t Tier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText decodes a label accepted by ParseTier.
func (t *Tier) UnmarshalText(b []byte) error {
	v, err := ParseTier(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// TierSpec is the per-tick behaviour of a tier.
type TierSpec struct {
	// TickSeekAmount is the timeline distance moved per tick.
	TickSeekAmount time.Duration `json:"tick_seek_amount"`
	// TickInterval is how often a tick fires at this tier.
	TickInterval time.Duration `json:"tick_interval"`
}

// Rate returns timeline distance per wall-clock second.
func (s TierSpec) Rate() float64 {
	if s.TickInterval <= 0 {
		return 0
	}
	return float64(s.TickSeekAmount) / float64(s.TickInterval)
}
