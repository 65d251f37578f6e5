package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tessro/holdseek/internal/config"
)

func TestAnswersApply(t *testing.T) {
	cfg := config.Default()
	a := answersFrom(cfg)
	assert.Equal(t, "300", a.threshold)
	assert.Equal(t, "24", a.deadzone)

	a.mode = config.ModeFixed
	a.threshold = "450"
	a.deadzone = "32.5"
	a.backend = config.BackendMPV
	a.socket = "/tmp/mpv.sock"
	a.logLevel = "debug"
	require.NoError(t, a.apply(cfg))

	assert.Equal(t, config.ModeFixed, cfg.Seek.Mode)
	assert.Equal(t, 450, cfg.Seek.ActivationThreshold)
	assert.Equal(t, 32.5, cfg.Seek.DragDeadzone)
	assert.Equal(t, "/tmp/mpv.sock", cfg.Player.MPVSocket)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestAnswersApplyRejectsInvalid(t *testing.T) {
	cfg := config.Default()
	a := answersFrom(cfg)
	a.backend = config.BackendMPV
	a.socket = ""
	assert.Error(t, a.apply(cfg))

	a = answersFrom(config.Default())
	a.threshold = "soon"
	assert.Error(t, a.apply(config.Default()))
}

func TestValidators(t *testing.T) {
	assert.NoError(t, positiveInt("300"))
	assert.Error(t, positiveInt("0"))
	assert.Error(t, positiveInt("abc"))
	assert.NoError(t, positiveFloat("24.5"))
	assert.Error(t, positiveFloat("-1"))
}
