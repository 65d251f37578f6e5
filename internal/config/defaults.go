package config

import (
	"time"

	"github.com/tessro/holdseek/internal/gesture"
	"github.com/tessro/holdseek/internal/playback"
	"github.com/tessro/holdseek/internal/seek"
	"github.com/tessro/holdseek/internal/speed"
)

// Seek modes.
const (
	ModeProgressive = "progressive"
	ModeFixed       = "fixed"
)

// Player backends.
const (
	BackendSim = "sim"
	BackendMPV = "mpv"
)

// Default returns a Config populated with sensible defaults.
func Default() *Config {
	return &Config{
		Seek: SeekConfig{
			Mode:                ModeProgressive,
			ActivationThreshold: ms(gesture.DefaultActivationThreshold),
			DragDeadzone:        seek.DefaultDragDeadzone,
			EndMargin:           ms(playback.DefaultEndMargin),
			PlayerTimeout:       ms(playback.DefaultTimeout),
			ElapsedSteps:        msSlice(speed.DefaultElapsedSteps),
			DragSteps:           append([]float64(nil), speed.DefaultDragSteps...),
			TickAmounts:         specAmounts(speed.DefaultSpecs),
			TickIntervals:       specIntervals(speed.DefaultSpecs),
			FixedJump:           ms(speed.DefaultFixedSpec.TickSeekAmount),
			FixedInterval:       ms(speed.DefaultFixedSpec.TickInterval),
		},
		Zones: ZonesConfig{
			LeftBand:  gesture.DefaultLayout.LeftBand,
			RightBand: gesture.DefaultLayout.RightBand,
		},
		Player: PlayerConfig{
			Backend:     BackendSim,
			SimDuration: 600,
		},
		TUI: TUIConfig{
			Theme:           "auto",
			RefreshInterval: 100,
			CellWidth:       8,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// ApplyDefaults fills in zero values with sensible defaults.
func (c *Config) ApplyDefaults() {
	d := Default()

	// Seek
	if c.Seek.Mode == "" {
		c.Seek.Mode = d.Seek.Mode
	}
	if c.Seek.ActivationThreshold == 0 {
		c.Seek.ActivationThreshold = d.Seek.ActivationThreshold
	}
	if c.Seek.DragDeadzone == 0 {
		c.Seek.DragDeadzone = d.Seek.DragDeadzone
	}
	if c.Seek.EndMargin == 0 {
		c.Seek.EndMargin = d.Seek.EndMargin
	}
	if c.Seek.PlayerTimeout == 0 {
		c.Seek.PlayerTimeout = d.Seek.PlayerTimeout
	}
	if len(c.Seek.ElapsedSteps) == 0 {
		c.Seek.ElapsedSteps = d.Seek.ElapsedSteps
	}
	if len(c.Seek.DragSteps) == 0 {
		c.Seek.DragSteps = d.Seek.DragSteps
	}
	if len(c.Seek.TickAmounts) == 0 {
		c.Seek.TickAmounts = d.Seek.TickAmounts
	}
	if len(c.Seek.TickIntervals) == 0 {
		c.Seek.TickIntervals = d.Seek.TickIntervals
	}
	if c.Seek.FixedJump == 0 {
		c.Seek.FixedJump = d.Seek.FixedJump
	}
	if c.Seek.FixedInterval == 0 {
		c.Seek.FixedInterval = d.Seek.FixedInterval
	}

	// Zones
	if c.Zones.LeftBand == 0 && c.Zones.RightBand == 0 {
		c.Zones = d.Zones
	}

	// Player
	if c.Player.Backend == "" {
		c.Player.Backend = d.Player.Backend
	}
	if c.Player.SimDuration == 0 {
		c.Player.SimDuration = d.Player.SimDuration
	}

	// TUI
	if c.TUI.Theme == "" {
		c.TUI.Theme = d.TUI.Theme
	}
	if c.TUI.RefreshInterval == 0 {
		c.TUI.RefreshInterval = d.TUI.RefreshInterval
	}
	if c.TUI.CellWidth == 0 {
		c.TUI.CellWidth = d.TUI.CellWidth
	}

	// Log
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
}

func ms(d time.Duration) int {
	return int(d / time.Millisecond)
}

func msSlice(ds []time.Duration) []int {
	out := make([]int, len(ds))
	for i, d := range ds {
		out[i] = ms(d)
	}
	return out
}

func specAmounts(specs []speed.TierSpec) []int {
	out := make([]int, len(specs))
	for i, s := range specs {
		out[i] = ms(s.TickSeekAmount)
	}
	return out
}

func specIntervals(specs []speed.TierSpec) []int {
	out := make([]int, len(specs))
	for i, s := range specs {
		out[i] = ms(s.TickInterval)
	}
	return out
}
