package cli

import (
	"context"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/tessro/holdseek/internal/clock"
	"github.com/tessro/holdseek/internal/config"
	"github.com/tessro/holdseek/internal/core"
	"github.com/tessro/holdseek/internal/feedback"
	"github.com/tessro/holdseek/internal/gesture"
	"github.com/tessro/holdseek/internal/mpv"
	"github.com/tessro/holdseek/internal/playback"
	"github.com/tessro/holdseek/internal/seek"
	"github.com/tessro/holdseek/internal/sim"
	"github.com/tessro/holdseek/internal/telemetry"
)

// rig is a player wired to a seek controller and hold recognizer.
type rig struct {
	player     core.Player
	sim        *sim.Player // nil for real players
	stream     *feedback.Stream
	controller *seek.Controller
	recognizer *gesture.Recognizer
	metrics    *telemetry.Metrics
	close      func() error
}

type simMedia struct {
	duration time.Duration
	position time.Duration
	paused   bool
	live     bool
}

// newPlayer returns the player selected by the [player] section. A non-empty
// socket forces the mpv backend.
func newPlayer(pc config.PlayerConfig, socket string, media simMedia, logger hclog.Logger) (core.Player, func() error) {
	if socket == "" && pc.Backend == config.BackendMPV {
		socket = pc.MPVSocket
	}
	if socket != "" {
		p := mpv.NewPlayer(socket, logger.Named("mpv"))
		return p, p.Close
	}

	p := sim.New(sim.Options{
		Media: core.Media{
			Title:    "Simulated media",
			Duration: media.duration,
			Live:     media.live,
		},
		Position: media.position,
		Playing:  !media.paused,
	})
	return p, func() error { return nil }
}

// newRig wires player into a controller publishing to a Stream (plus the
// log) and a recognizer feeding the controller.
func newRig(ctx context.Context, player core.Player, logger hclog.Logger) (*rig, error) {
	curve, err := cfg.Seek.Curve()
	if err != nil {
		return nil, err
	}

	stream := feedback.NewStream(256)
	metrics := telemetry.New()
	coord := playback.New(player, playback.Options{
		EndMargin: cfg.Seek.EndMarginDuration(),
		Timeout:   cfg.Seek.PlayerTimeoutDuration(),
		Logger:    logger.Named("playback"),
	})
	layout := cfg.Zones.Layout()
	ctrl := seek.New(coord, feedback.Multi{stream, feedback.NewLogBus(logger.Named("feedback"))}, seek.Options{
		Curve:        curve,
		DragDeadzone: cfg.Seek.DragDeadzone,
		Layout:       layout,
		Clock:        clock.Real(),
		Logger:       logger.Named("seek"),
		Metrics:      metrics,
		Context:      ctx,
	})
	rec := gesture.NewRecognizer(ctrl, gesture.RecognizerOptions{
		Layout:              layout,
		ActivationThreshold: cfg.Seek.ActivationThresholdDuration(),
		MoveSlop:            cfg.Seek.DragDeadzone,
		Logger:              logger.Named("gesture"),
	})

	r := &rig{
		player:     player,
		stream:     stream,
		controller: ctrl,
		recognizer: rec,
		metrics:    metrics,
	}
	r.close = func() error {
		ctrl.Interrupt()
		stream.Close()
		return nil
	}
	if s, ok := player.(*sim.Player); ok {
		r.sim = s
	}
	return r, nil
}
