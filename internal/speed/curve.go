// Package speed maps hold duration and drag distance to seek-speed tiers.
package speed

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// Default thresholds and per-tier behaviour.
var (
	DefaultElapsedSteps = []time.Duration{
		1 * time.Second,
		2 * time.Second,
		3 * time.Second,
		4 * time.Second,
		5 * time.Second,
	}

	DefaultDragSteps = []float64{0.1, 0.3, 0.5, 0.7, 0.9}

	DefaultSpecs = []TierSpec{
		{TickSeekAmount: 1 * time.Second, TickInterval: 250 * time.Millisecond},
		{TickSeekAmount: 2 * time.Second, TickInterval: 250 * time.Millisecond},
		{TickSeekAmount: 4 * time.Second, TickInterval: 200 * time.Millisecond},
		{TickSeekAmount: 8 * time.Second, TickInterval: 150 * time.Millisecond},
		{TickSeekAmount: 16 * time.Second, TickInterval: 120 * time.Millisecond},
		{TickSeekAmount: 32 * time.Second, TickInterval: 100 * time.Millisecond},
	}

	// DefaultFixedSpec is the edge-hold variant: 10 second jumps.
	DefaultFixedSpec = TierSpec{TickSeekAmount: 10 * time.Second, TickInterval: 500 * time.Millisecond}
)

// Curve is an immutable lookup table. It is safe for concurrent use.
type Curve struct {
	elapsedSteps [NumTiers - 1]time.Duration
	dragSteps    [NumTiers - 1]float64
	specs        [NumTiers]TierSpec
	fixed        bool
}

// Default returns the progressive curve with the default tables.
func Default() *Curve {
	c, err := New(DefaultElapsedSteps, DefaultDragSteps, DefaultSpecs)
	if err != nil {
		panic(err)
	}
	return c
}

// New builds a progressive curve. elapsed and drag hold the lower bound of
// tiers X2..X32; specs holds one entry per tier.
func New(elapsed []time.Duration, drag []float64, specs []TierSpec) (*Curve, error) {
	if len(elapsed) != NumTiers-1 {
		return nil, fmt.Errorf("elapsed steps: want %d thresholds, got %d", NumTiers-1, len(elapsed))
	}
	if len(drag) != NumTiers-1 {
		return nil, fmt.Errorf("drag steps: want %d thresholds, got %d", NumTiers-1, len(drag))
	}
	if len(specs) != NumTiers {
		return nil, fmt.Errorf("tier specs: want %d, got %d", NumTiers, len(specs))
	}

	c := &Curve{}
	for i := range elapsed {
		if elapsed[i] <= 0 || (i > 0 && elapsed[i] <= elapsed[i-1]) {
			return nil, errors.New("elapsed steps must be positive and strictly increasing")
		}
		if drag[i] <= 0 || drag[i] > 1 || (i > 0 && drag[i] <= drag[i-1]) {
			return nil, errors.New("drag steps must be in (0,1] and strictly increasing")
		}
		c.elapsedSteps[i] = elapsed[i]
		c.dragSteps[i] = drag[i]
	}
	for i, s := range specs {
		if err := validateSpec(s); err != nil {
			return nil, fmt.Errorf("tier %s: %w", Tier(i), err)
		}
		c.specs[i] = s
	}
	return c, nil
}

// Fixed returns a degenerate curve pinned to X1 with the given behaviour:
// no ramp and no drag acceleration.
func Fixed(spec TierSpec) (*Curve, error) {
	if err := validateSpec(spec); err != nil {
		return nil, err
	}
	c := &Curve{fixed: true}
	for i := range c.specs {
		c.specs[i] = spec
	}
	return c, nil
}

func validateSpec(s TierSpec) error {
	if s.TickSeekAmount <= 0 {
		return errors.New("tick seek amount must be positive")
	}
	if s.TickInterval < MinTickInterval {
		return fmt.Errorf("tick interval %v below floor %v", s.TickInterval, MinTickInterval)
	}
	return nil
}

// IsFixed reports whether this is the fixed-jump curve.
func (c *Curve) IsFixed() bool { return c.fixed }

// TierForElapsed maps hold duration to a tier. Monotonic non-decreasing.
func (c *Curve) TierForElapsed(elapsed time.Duration) Tier {
	if c.fixed {
		return X1
	}
	t := X1
	for _, step := range c.elapsedSteps {
		if elapsed < step {
			break
		}
		t++
	}
	return t
}

// TierForDragRatio maps |dx|/width to a tier. The ratio is clamped to [0,1].
func (c *Curve) TierForDragRatio(ratio float64) Tier {
	if c.fixed {
		return X1
	}
	ratio = ClampRatio(ratio)
	t := X1
	for _, step := range c.dragSteps {
		if ratio < step {
			break
		}
		t++
	}
	return t
}

// Spec returns the behaviour of tier t. Out-of-range tiers saturate.
func (c *Curve) Spec(t Tier) TierSpec {
	return c.specs[t.clamp()]
}

// Row is one line of the tier table.
type Row struct {
	Tier      Tier
	Spec      TierSpec
	FromHeld  time.Duration
	FromRatio float64
}

// Table returns the curve as displayable rows. A fixed curve has one row.
func (c *Curve) Table() []Row {
	if c.fixed {
		return []Row{{Tier: X1, Spec: c.specs[X1]}}
	}
	rows := make([]Row, NumTiers)
	for i := range rows {
		rows[i] = Row{Tier: Tier(i), Spec: c.specs[i]}
		if i > 0 {
			rows[i].FromHeld = c.elapsedSteps[i-1]
			rows[i].FromRatio = c.dragSteps[i-1]
		}
	}
	return rows
}

// Ratio returns |deltaX|/width clamped to [0,1]. A non-positive width
// yields 0.
func Ratio(deltaX, width float64) float64 {
	if width <= 0 {
		return 0
	}
	return ClampRatio(math.Abs(deltaX) / width)
}

// ClampRatio clamps r to [0,1]; NaN maps to 0.
func ClampRatio(r float64) float64 {
	switch {
	case math.IsNaN(r) || r < 0:
		return 0
	case r > 1:
		return 1
	}
	return r
}
