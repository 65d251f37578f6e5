package config

// Config is the root configuration structure.
type Config struct {
	Seek   SeekConfig   `toml:"seek"`
	Zones  ZonesConfig  `toml:"zones"`
	Player PlayerConfig `toml:"player"`
	TUI    TUIConfig    `toml:"tui"`
	Log    LogConfig    `toml:"log"`
}

// SeekConfig holds the seek controller and speed curve settings. Durations
// are in milliseconds.
type SeekConfig struct {
	Mode                string    `toml:"mode"`
	ActivationThreshold int       `toml:"activation_threshold"`
	DragDeadzone        float64   `toml:"drag_deadzone"`
	EndMargin           int       `toml:"end_margin"`
	PlayerTimeout       int       `toml:"player_timeout"`
	ElapsedSteps        []int     `toml:"elapsed_steps"`
	DragSteps           []float64 `toml:"drag_steps"`
	TickAmounts         []int     `toml:"tick_amounts"`
	TickIntervals       []int     `toml:"tick_intervals"`
	FixedJump           int       `toml:"fixed_jump"`
	FixedInterval       int       `toml:"fixed_interval"`
}

// ZonesConfig splits the screen width into brightness, seek and volume
// zones, as fractions of the width.
type ZonesConfig struct {
	LeftBand  float64 `toml:"left_band"`
	RightBand float64 `toml:"right_band"`
}

// PlayerConfig selects the player backend.
type PlayerConfig struct {
	Backend     string `toml:"backend"`
	MPVSocket   string `toml:"mpv_socket"`
	SimDuration int    `toml:"sim_duration"`
	SimLive     bool   `toml:"sim_live"`
}

// TUIConfig holds terminal UI settings.
type TUIConfig struct {
	Theme           string `toml:"theme"`
	RefreshInterval int    `toml:"refresh_interval"`
	CellWidth       int    `toml:"cell_width"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}
