package config

import (
	"errors"
	"fmt"
)

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if err := c.Seek.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("seek: %w", err))
	}
	if err := c.Zones.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("zones: %w", err))
	}
	if err := c.Player.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("player: %w", err))
	}
	if err := c.TUI.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("tui: %w", err))
	}
	if err := c.Log.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("log: %w", err))
	}

	return errors.Join(errs...)
}

// Validate checks SeekConfig for errors, including that the tier tables
// form a valid curve.
func (c *SeekConfig) Validate() error {
	var errs []error

	switch c.Mode {
	case "", ModeProgressive, ModeFixed:
		// valid
	default:
		errs = append(errs, fmt.Errorf("invalid mode: %s (must be progressive or fixed)", c.Mode))
	}
	if c.ActivationThreshold < 0 {
		errs = append(errs, errors.New("activation_threshold must be non-negative"))
	}
	if c.DragDeadzone < 0 {
		errs = append(errs, errors.New("drag_deadzone must be non-negative"))
	}
	if c.EndMargin < 0 {
		errs = append(errs, errors.New("end_margin must be non-negative"))
	}
	if c.PlayerTimeout < 0 {
		errs = append(errs, errors.New("player_timeout must be non-negative"))
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	if _, err := c.Curve(); err != nil {
		return err
	}
	return nil
}

// Validate checks ZonesConfig for errors.
func (c *ZonesConfig) Validate() error {
	return c.Layout().Validate()
}

// Validate checks PlayerConfig for errors.
func (c *PlayerConfig) Validate() error {
	switch c.Backend {
	case "", BackendSim:
		// valid
	case BackendMPV:
		if c.MPVSocket == "" {
			return errors.New("mpv_socket is required for the mpv backend")
		}
	default:
		return fmt.Errorf("invalid backend: %s (must be sim or mpv)", c.Backend)
	}
	if c.SimDuration < 0 {
		return errors.New("sim_duration must be non-negative")
	}
	return nil
}

// Validate checks TUIConfig for errors.
func (c *TUIConfig) Validate() error {
	switch c.Theme {
	case "", "auto", "dark", "light":
		// valid
	default:
		return fmt.Errorf("invalid theme: %s (must be auto, dark, or light)", c.Theme)
	}
	if c.RefreshInterval < 0 {
		return errors.New("refresh_interval must be non-negative")
	}
	if c.CellWidth < 0 {
		return errors.New("cell_width must be non-negative")
	}
	return nil
}

// Validate checks LogConfig for errors.
func (c *LogConfig) Validate() error {
	switch c.Level {
	case "", "trace", "debug", "info", "warn", "error":
		// valid
	default:
		return fmt.Errorf("invalid log level: %s (must be trace, debug, info, warn, or error)", c.Level)
	}
	return nil
}
