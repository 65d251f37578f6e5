package core

import (
	"context"
	"time"
)

// Player defines the control surface the seek controller drives.
// Implementations must be safe for concurrent use; the controller never
// issues two seeks at once but other UI paths may call Play/Pause.
type Player interface {
	// Playback control
	Play(ctx context.Context) error
	Pause(ctx context.Context) error
	SeekTo(ctx context.Context, position time.Duration) error

	// State queries
	IsPlaying(ctx context.Context) (bool, error)
	Position(ctx context.Context) (time.Duration, error)

	// Duration returns the media length. ok is false for live or otherwise
	// unbounded media.
	Duration(ctx context.Context) (d time.Duration, ok bool, err error)
}

// MediaSource is implemented by players that can describe what is loaded.
type MediaSource interface {
	Media(ctx context.Context) (Media, error)
}

// Snapshot reads the full playback state from p. Media is filled in when p
// is a MediaSource.
func Snapshot(ctx context.Context, p Player) (*PlaybackState, error) {
	playing, err := p.IsPlaying(ctx)
	if err != nil {
		return nil, err
	}
	pos, err := p.Position(ctx)
	if err != nil {
		return nil, err
	}
	dur, ok, err := p.Duration(ctx)
	if err != nil {
		return nil, err
	}
	state := &PlaybackState{
		IsPlaying:     playing,
		Position:      pos,
		Duration:      dur,
		DurationKnown: ok,
	}
	if src, isSource := p.(MediaSource); isSource {
		m, err := src.Media(ctx)
		if err != nil {
			return nil, err
		}
		state.Media = &m
	}
	return state, nil
}
