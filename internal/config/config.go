package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	hserrors "github.com/tessro/holdseek/internal/errors"
)

// Load reads configuration from standard locations with environment overrides.
// Search order: ~/.holdseekrc, $XDG_CONFIG_HOME/holdseek/config.toml, ~/.config/holdseek/config.toml
func Load() (*Config, error) {
	cfg := &Config{}

	// Try loading from file
	path := Path()
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("%s: %w", path, errors.Join(hserrors.ErrInvalidConfig, err))
		}
	}

	// Apply defaults, then environment variable overrides
	cfg.ApplyDefaults()
	loadDotEnv()
	applyEnvOverrides(cfg)

	return cfg, nil
}

// LoadFrom reads configuration from a specific file path.
func LoadFrom(path string) (*Config, error) {
	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, hserrors.ErrConfigNotFound)
		}
		return nil, fmt.Errorf("%s: %w", path, errors.Join(hserrors.ErrInvalidConfig, err))
	}
	cfg.ApplyDefaults()
	loadDotEnv()
	applyEnvOverrides(cfg)
	return cfg, nil
}

// Encode renders cfg as TOML.
func Encode(cfg *Config) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Save writes cfg to path, creating parent directories.
func Save(cfg *Config, path string) error {
	data, err := Encode(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Path returns the first existing config file path, or "" if none exists.
func Path() string {
	for _, p := range searchPaths() {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// DefaultPath returns where `config init` writes a new file.
func DefaultPath() string {
	paths := searchPaths()
	if len(paths) == 0 {
		return ""
	}
	return paths[len(paths)-1]
}

func searchPaths() []string {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}

	paths := []string{
		filepath.Join(home, ".holdseekrc"),
	}

	// XDG_CONFIG_HOME or default
	xdgConfig := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfig == "" {
		xdgConfig = filepath.Join(home, ".config")
	}
	return append(paths, filepath.Join(xdgConfig, "holdseek", "config.toml"))
}

// loadDotEnv loads .env from the working directory into the process
// environment. Variables already set win.
func loadDotEnv() {
	_ = godotenv.Load()
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(cfg *Config) {
	// Seek
	if v := os.Getenv("HOLDSEEK_SEEK_MODE"); v != "" {
		cfg.Seek.Mode = v
	}
	envInt("HOLDSEEK_SEEK_ACTIVATION_THRESHOLD", &cfg.Seek.ActivationThreshold)
	if v := os.Getenv("HOLDSEEK_SEEK_DRAG_DEADZONE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Seek.DragDeadzone = f
		}
	}
	envInt("HOLDSEEK_SEEK_END_MARGIN", &cfg.Seek.EndMargin)
	envInt("HOLDSEEK_SEEK_PLAYER_TIMEOUT", &cfg.Seek.PlayerTimeout)

	// Player
	if v := os.Getenv("HOLDSEEK_PLAYER_BACKEND"); v != "" {
		cfg.Player.Backend = v
	}
	if v := os.Getenv("HOLDSEEK_PLAYER_MPV_SOCKET"); v != "" {
		cfg.Player.MPVSocket = v
	}

	// TUI
	if v := os.Getenv("HOLDSEEK_TUI_THEME"); v != "" {
		cfg.TUI.Theme = v
	}
	envInt("HOLDSEEK_TUI_REFRESH_INTERVAL", &cfg.TUI.RefreshInterval)
	envInt("HOLDSEEK_TUI_CELL_WIDTH", &cfg.TUI.CellWidth)

	// Log
	if v := os.Getenv("HOLDSEEK_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("HOLDSEEK_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
}

func envInt(key string, dst *int) {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			*dst = i
		}
	}
}
