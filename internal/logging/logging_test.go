package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tessro/holdseek/internal/config"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		level   string
		verbose bool
		want    hclog.Level
	}{
		{"info", false, hclog.Info},
		{"warn", false, hclog.Warn},
		{"warn", true, hclog.Debug},
		{"trace", true, hclog.Trace},
		{"", false, hclog.Info},
		{"bogus", false, hclog.Info},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			logger, closeFn, err := New(config.LogConfig{Level: tt.level}, Options{Verbose: tt.verbose, Stderr: &buf})
			require.NoError(t, err)
			defer closeFn()
			assert.Equal(t, tt.want, logger.GetLevel())
		})
	}
}

func TestNewWritesToStderr(t *testing.T) {
	var buf bytes.Buffer
	logger, _, err := New(config.LogConfig{Level: "debug"}, Options{Stderr: &buf, JSON: true})
	require.NoError(t, err)

	logger.Named("seek").Debug("session started", "direction", "forward")
	assert.Contains(t, buf.String(), `"@message":"session started"`)
	assert.Contains(t, buf.String(), `"@module":"holdseek.seek"`)
}

func TestNewQuiet(t *testing.T) {
	var buf bytes.Buffer
	logger, _, err := New(config.LogConfig{Level: "debug"}, Options{Quiet: true, Stderr: &buf})
	require.NoError(t, err)
	logger.Error("dropped")
	assert.Empty(t, buf.String())
}

func TestNewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "holdseek.log")
	logger, closeFn, err := New(config.LogConfig{Level: "info", File: path}, Options{Quiet: true})
	require.NoError(t, err)

	logger.Info("hello")
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
}
