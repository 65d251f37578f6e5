package config

import (
	"fmt"
	"time"

	"github.com/tessro/holdseek/internal/gesture"
	"github.com/tessro/holdseek/internal/speed"
)

// Curve builds the speed curve selected by Mode.
func (c *SeekConfig) Curve() (*speed.Curve, error) {
	if c.Mode == ModeFixed {
		curve, err := speed.Fixed(speed.TierSpec{
			TickSeekAmount: millis(c.FixedJump),
			TickInterval:   millis(c.FixedInterval),
		})
		if err != nil {
			return nil, fmt.Errorf("fixed curve: %w", err)
		}
		return curve, nil
	}

	if len(c.TickAmounts) != len(c.TickIntervals) {
		return nil, fmt.Errorf("tick_amounts has %d entries but tick_intervals has %d", len(c.TickAmounts), len(c.TickIntervals))
	}
	specs := make([]speed.TierSpec, len(c.TickAmounts))
	for i := range specs {
		specs[i] = speed.TierSpec{
			TickSeekAmount: millis(c.TickAmounts[i]),
			TickInterval:   millis(c.TickIntervals[i]),
		}
	}
	elapsed := make([]time.Duration, len(c.ElapsedSteps))
	for i, v := range c.ElapsedSteps {
		elapsed[i] = millis(v)
	}

	curve, err := speed.New(elapsed, c.DragSteps, specs)
	if err != nil {
		return nil, fmt.Errorf("progressive curve: %w", err)
	}
	return curve, nil
}

// ActivationThresholdDuration returns the hold activation threshold.
func (c *SeekConfig) ActivationThresholdDuration() time.Duration {
	return millis(c.ActivationThreshold)
}

// EndMarginDuration returns the clamp margin before the end of media.
func (c *SeekConfig) EndMarginDuration() time.Duration {
	return millis(c.EndMargin)
}

// PlayerTimeoutDuration returns the per-call player timeout.
func (c *SeekConfig) PlayerTimeoutDuration() time.Duration {
	return millis(c.PlayerTimeout)
}

// Layout returns the gesture zone layout.
func (c *ZonesConfig) Layout() gesture.Layout {
	return gesture.Layout{LeftBand: c.LeftBand, RightBand: c.RightBand}
}

// SimDurationValue returns the simulated media duration.
func (c *PlayerConfig) SimDurationValue() time.Duration {
	return time.Duration(c.SimDuration) * time.Second
}

// RefreshDuration returns the TUI refresh interval.
func (c *TUIConfig) RefreshDuration() time.Duration {
	return millis(c.RefreshInterval)
}

func millis(v int) time.Duration {
	return time.Duration(v) * time.Millisecond
}
