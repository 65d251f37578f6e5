package mpv

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/tessro/holdseek/internal/core"
)

// Player implements core.Player on top of an mpv IPC Client.
type Player struct {
	client *Client
}

var (
	_ core.Player      = (*Player)(nil)
	_ core.MediaSource = (*Player)(nil)
)

// NewPlayer creates a player for the mpv socket at path.
func NewPlayer(path string, logger hclog.Logger) *Player {
	return &Player{client: NewClient(path, logger)}
}

// Close releases the IPC connection. mpv keeps running.
func (p *Player) Close() error {
	return p.client.Close()
}

func (p *Player) Play(ctx context.Context) error {
	if err := p.client.SetProperty(ctx, "pause", false); err != nil {
		return fmt.Errorf("mpv play: %w", err)
	}
	return nil
}

func (p *Player) Pause(ctx context.Context) error {
	if err := p.client.SetProperty(ctx, "pause", true); err != nil {
		return fmt.Errorf("mpv pause: %w", err)
	}
	return nil
}

func (p *Player) SeekTo(ctx context.Context, position time.Duration) error {
	if _, err := p.client.Command(ctx, "seek", position.Seconds(), "absolute"); err != nil {
		return fmt.Errorf("mpv seek: %w", err)
	}
	return nil
}

func (p *Player) IsPlaying(ctx context.Context) (bool, error) {
	val, err := p.client.GetProperty(ctx, "pause")
	if err != nil {
		return false, fmt.Errorf("mpv pause state: %w", err)
	}
	paused, ok := val.(bool)
	if !ok {
		return false, fmt.Errorf("unexpected type for pause: %T", val)
	}
	return !paused, nil
}

func (p *Player) Position(ctx context.Context) (time.Duration, error) {
	secs, err := p.seconds(ctx, "time-pos")
	if err != nil {
		return 0, fmt.Errorf("mpv position: %w", err)
	}
	return secs, nil
}

// Duration reports ok=false when mpv has no duration for the current media.
func (p *Player) Duration(ctx context.Context) (time.Duration, bool, error) {
	d, err := p.seconds(ctx, "duration")
	if errors.Is(err, ErrPropertyUnavailable) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("mpv duration: %w", err)
	}
	return d, d > 0, nil
}

// Media returns the current media title and duration.
func (p *Player) Media(ctx context.Context) (core.Media, error) {
	var m core.Media
	if val, err := p.client.GetProperty(ctx, "media-title"); err == nil {
		m.Title, _ = val.(string)
	} else if !errors.Is(err, ErrPropertyUnavailable) {
		return m, fmt.Errorf("mpv media title: %w", err)
	}
	if val, err := p.client.GetProperty(ctx, "path"); err == nil {
		m.URI, _ = val.(string)
	}
	d, ok, err := p.Duration(ctx)
	if err != nil {
		return m, err
	}
	m.Duration = d
	m.Live = !ok
	return m, nil
}

func (p *Player) seconds(ctx context.Context, name string) (time.Duration, error) {
	val, err := p.client.GetProperty(ctx, name)
	if err != nil {
		return 0, err
	}
	if val == nil {
		return 0, ErrPropertyUnavailable
	}
	v, ok := val.(float64)
	if !ok {
		return 0, fmt.Errorf("unexpected type for %s: %T", name, val)
	}
	return time.Duration(v * float64(time.Second)), nil
}
