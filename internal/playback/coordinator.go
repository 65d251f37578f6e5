// Package playback bridges seek sessions to the player: it captures and
// pauses playback, applies clamped seeks and restores the play state.
package playback

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/tessro/holdseek/internal/core"
)

// Defaults for Options.
const (
	DefaultEndMargin = 250 * time.Millisecond
	DefaultTimeout   = 2 * time.Second
)

// Options configures a Coordinator.
type Options struct {
	// EndMargin keeps seeks this far before the end of the media so an
	// active session never triggers end-of-media completion.
	EndMargin time.Duration
	// Timeout bounds each call into the player.
	Timeout time.Duration
	Logger  hclog.Logger
}

// Coordinator drives a core.Player on behalf of one seek controller. Its
// methods are called serially by the controller; calls from other
// goroutines (play/pause buttons) go straight to the player.
type Coordinator struct {
	player  core.Player
	margin  time.Duration
	timeout time.Duration
	logger  hclog.Logger

	mu       sync.Mutex
	anchored bool
	anchor   time.Duration
}

// New creates a coordinator for player.
func New(player core.Player, opts Options) *Coordinator {
	if opts.EndMargin < 0 {
		opts.EndMargin = 0
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Logger == nil {
		opts.Logger = hclog.NewNullLogger()
	}
	return &Coordinator{
		player:  player,
		margin:  opts.EndMargin,
		timeout: opts.Timeout,
		logger:  opts.Logger,
	}
}

// PauseAndCapture reads whether the player is playing, pauses it if so and
// returns the pre-call value. hint is used when the player cannot be
// queried. Calling it on a paused player is a no-op returning false.
func (c *Coordinator) PauseAndCapture(ctx context.Context, hint bool) bool {
	c.mu.Lock()
	c.anchored = false
	c.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	playing, err := c.player.IsPlaying(ctx)
	if err != nil {
		c.logger.Warn("play state unavailable, using host hint", "error", err, "hint", hint)
		playing = hint
	}
	if !playing {
		return false
	}
	if err := c.player.Pause(ctx); err != nil {
		c.logger.Warn("pause for seeking failed", "error", err)
	}
	return true
}

// ApplySeek moves the playback cursor by delta, clamped to
// [0, duration-EndMargin], and returns the resulting absolute position.
// Unbounded media are clamped at 0 only. Within a session the base position
// is the last target issued, so players that apply seeks asynchronously do
// not make ticks compound on a stale position.
func (c *Coordinator) ApplySeek(ctx context.Context, delta time.Duration) (time.Duration, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	c.mu.Lock()
	base, anchored := c.anchor, c.anchored
	c.mu.Unlock()

	if !anchored {
		pos, err := c.player.Position(ctx)
		if err != nil {
			return 0, fmt.Errorf("read position: %w", err)
		}
		base = pos
	}

	dur, known, err := c.player.Duration(ctx)
	if err != nil {
		return 0, fmt.Errorf("read duration: %w", err)
	}

	target := Clamp(base+delta, dur, known, c.margin)
	if err := c.player.SeekTo(ctx, target); err != nil {
		return 0, fmt.Errorf("seek to %v: %w", target, err)
	}

	c.mu.Lock()
	c.anchor, c.anchored = target, true
	c.mu.Unlock()

	c.logger.Trace("seek applied", "delta", delta, "target", target)
	return target, nil
}

// Restore resumes playback when wasPlaying is true and otherwise leaves the
// player paused. Call it once per session, after the last ApplySeek.
func (c *Coordinator) Restore(ctx context.Context, wasPlaying bool) {
	c.mu.Lock()
	c.anchored = false
	c.mu.Unlock()

	if !wasPlaying {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.player.Play(ctx); err != nil {
		c.logger.Error("resume after seeking failed", "error", err)
	}
}

// Clamp constrains target to [0, duration-margin]. When known is false only
// the lower bound applies.
func Clamp(target, duration time.Duration, known bool, margin time.Duration) time.Duration {
	if known {
		upper := duration - margin
		if upper < 0 {
			upper = 0
		}
		if target > upper {
			target = upper
		}
	}
	if target < 0 {
		target = 0
	}
	return target
}
