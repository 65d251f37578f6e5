package sim

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tessro/holdseek/internal/clock"
	"github.com/tessro/holdseek/internal/core"
	hserrors "github.com/tessro/holdseek/internal/errors"
)

func newPlayer(playing bool, media core.Media) (*Player, *clock.Manual) {
	clk := clock.NewManual(time.Unix(0, 0))
	return New(Options{Media: media, Playing: playing, Clock: clk}), clk
}

func TestPositionAdvancesWhilePlaying(t *testing.T) {
	ctx := context.Background()
	p, clk := newPlayer(true, core.Media{Duration: time.Minute})

	clk.Advance(1500 * time.Millisecond)
	pos, err := p.Position(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1500*time.Millisecond, pos)

	require.NoError(t, p.Pause(ctx))
	clk.Advance(time.Second)
	pos, _ = p.Position(ctx)
	assert.Equal(t, 1500*time.Millisecond, pos, "paused player must not advance")
}

func TestPlaybackCompletesAtEnd(t *testing.T) {
	ctx := context.Background()
	p, clk := newPlayer(true, core.Media{Duration: 2 * time.Second})

	clk.Advance(5 * time.Second)
	playing, _ := p.IsPlaying(ctx)
	assert.False(t, playing)
	assert.True(t, p.Completed())

	pos, _ := p.Position(ctx)
	assert.Equal(t, 2*time.Second, pos)
}

func TestLiveMediaHasUnknownDuration(t *testing.T) {
	p, clk := newPlayer(true, core.Media{Live: true})
	_, known, err := p.Duration(context.Background())
	require.NoError(t, err)
	assert.False(t, known)

	clk.Advance(time.Hour)
	assert.False(t, p.Completed())
}

func TestInjectedSeekFailures(t *testing.T) {
	ctx := context.Background()
	p, _ := newPlayer(false, core.Media{Duration: time.Minute})

	p.FailSeeks(1)
	assert.ErrorIs(t, p.SeekTo(ctx, time.Second), ErrNotReady)
	assert.NoError(t, p.SeekTo(ctx, time.Second))

	p.FailEvery(2)
	// seek call #3 succeeds, #4 fails
	assert.NoError(t, p.SeekTo(ctx, 2*time.Second))
	assert.ErrorIs(t, p.SeekTo(ctx, 3*time.Second), ErrNotReady)

	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, p.Seeks())
	assert.Equal(t, 4, p.Calls().Seek)
}

func TestUnavailable(t *testing.T) {
	p, _ := newPlayer(true, core.Media{Duration: time.Minute})
	p.SetUnavailable(true)

	_, err := p.IsPlaying(context.Background())
	assert.True(t, errors.Is(err, hserrors.ErrPlayerUnavailable))
}

func TestToggle(t *testing.T) {
	ctx := context.Background()
	p, _ := newPlayer(false, core.Media{Duration: time.Minute})

	require.NoError(t, p.Toggle(ctx))
	playing, _ := p.IsPlaying(ctx)
	assert.True(t, playing)

	require.NoError(t, p.Toggle(ctx))
	playing, _ = p.IsPlaying(ctx)
	assert.False(t, playing)
}

func TestSnapshot(t *testing.T) {
	ctx := context.Background()
	p, clk := newPlayer(true, core.Media{Title: "movie", Duration: time.Minute})
	clk.Advance(15 * time.Second)

	state, err := core.Snapshot(ctx, p)
	require.NoError(t, err)
	assert.True(t, state.IsPlaying)
	assert.Equal(t, 15*time.Second, state.Position)
	assert.True(t, state.DurationKnown)
	require.NotNil(t, state.Media)
	assert.Equal(t, "movie", state.Media.Title)
	assert.InDelta(t, 25.0, state.ProgressPercent(), 0.001)

	p.SetUnavailable(true)
	_, err = core.Snapshot(ctx, p)
	assert.ErrorIs(t, err, hserrors.ErrPlayerUnavailable)
}
