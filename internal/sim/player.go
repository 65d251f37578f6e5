// Package sim provides an in-memory player whose playback clock keeps
// running while it plays. It stands in for a real engine in the CLI
// simulator, the TUI demo and tests.
package sim

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/tessro/holdseek/internal/clock"
	"github.com/tessro/holdseek/internal/core"
	hserrors "github.com/tessro/holdseek/internal/errors"
)

// ErrNotReady is returned by injected seek failures.
var ErrNotReady = errors.New("player not ready")

// Options configures a simulated player.
type Options struct {
	Media    core.Media
	Position time.Duration
	Playing  bool
	Clock    clock.Clock
}

// Calls counts invocations per method.
type Calls struct {
	Play      int
	Pause     int
	Seek      int
	IsPlaying int
	Position  int
	Duration  int
}

// Player is a simulated core.Player.
type Player struct {
	clock clock.Clock

	mu          sync.Mutex
	media       core.Media
	pos         time.Duration
	since       time.Time
	playing     bool
	completed   bool
	unavailable bool
	failNext    int
	failEvery   int
	calls       Calls
	seeks       []time.Duration
}

// New creates a simulated player.
func New(opts Options) *Player {
	if opts.Clock == nil {
		opts.Clock = clock.Real()
	}
	return &Player{
		clock:   opts.Clock,
		media:   opts.Media,
		pos:     opts.Position,
		since:   opts.Clock.Now(),
		playing: opts.Playing,
	}
}

// sync folds elapsed play time into pos. Reaching the end of bounded media
// stops playback and marks it completed.
func (p *Player) sync() {
	now := p.clock.Now()
	if p.playing {
		p.pos += now.Sub(p.since)
		if !p.media.Live && p.media.Duration > 0 && p.pos >= p.media.Duration {
			p.pos = p.media.Duration
			p.playing = false
			p.completed = true
		}
	}
	p.since = now
}

func (p *Player) check() error {
	if p.unavailable {
		return hserrors.ErrPlayerUnavailable
	}
	return nil
}

func (p *Player) Play(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls.Play++
	if err := p.check(); err != nil {
		return err
	}
	p.sync()
	p.playing = true
	p.completed = false
	return nil
}

func (p *Player) Pause(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls.Pause++
	if err := p.check(); err != nil {
		return err
	}
	p.sync()
	p.playing = false
	return nil
}

func (p *Player) SeekTo(ctx context.Context, position time.Duration) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls.Seek++
	if err := p.check(); err != nil {
		return err
	}
	if p.failNext > 0 {
		p.failNext--
		return ErrNotReady
	}
	if p.failEvery > 0 && p.calls.Seek%p.failEvery == 0 {
		return ErrNotReady
	}
	if position < 0 {
		return fmt.Errorf("seek to negative position %v", position)
	}
	p.sync()
	if !p.media.Live && p.media.Duration > 0 && position >= p.media.Duration {
		position = p.media.Duration
		p.playing = false
		p.completed = true
	}
	p.pos = position
	p.seeks = append(p.seeks, position)
	return nil
}

func (p *Player) IsPlaying(ctx context.Context) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls.IsPlaying++
	if err := p.check(); err != nil {
		return false, err
	}
	p.sync()
	return p.playing, nil
}

func (p *Player) Position(ctx context.Context) (time.Duration, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls.Position++
	if err := p.check(); err != nil {
		return 0, err
	}
	p.sync()
	return p.pos, nil
}

func (p *Player) Duration(ctx context.Context) (time.Duration, bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls.Duration++
	if err := p.check(); err != nil {
		return 0, false, err
	}
	if p.media.Live || p.media.Duration <= 0 {
		return 0, false, nil
	}
	return p.media.Duration, true, nil
}

// Toggle flips between playing and paused, like a play/pause button.
func (p *Player) Toggle(ctx context.Context) error {
	playing, err := p.IsPlaying(ctx)
	if err != nil {
		return err
	}
	if playing {
		return p.Pause(ctx)
	}
	return p.Play(ctx)
}

// Media returns the loaded media.
func (p *Player) Media(ctx context.Context) (core.Media, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.check(); err != nil {
		return core.Media{}, err
	}
	return p.media, nil
}

// FailSeeks makes the next n seeks fail with ErrNotReady.
func (p *Player) FailSeeks(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.failNext = n
}

// FailEvery makes every nth seek fail. Zero disables.
func (p *Player) FailEvery(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.failEvery = n
}

// SetUnavailable makes every call fail with ErrPlayerUnavailable.
func (p *Player) SetUnavailable(v bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.unavailable = v
}

// Completed reports whether playback reached the end of the media.
func (p *Player) Completed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sync()
	return p.completed
}

// Calls returns the invocation counters.
func (p *Player) Calls() Calls {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

// Seeks returns every successfully applied seek target in order.
func (p *Player) Seeks() []time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]time.Duration(nil), p.seeks...)
}

// Ensure Player implements core.Player
var (
	_ core.Player      = (*Player)(nil)
	_ core.MediaSource = (*Player)(nil)
)
