package components

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"github.com/tessro/holdseek/internal/core"
	"github.com/tessro/holdseek/internal/feedback"
	"github.com/tessro/holdseek/internal/gesture"
	"github.com/tessro/holdseek/internal/seek"
	"github.com/tessro/holdseek/internal/speed"
	"github.com/tessro/holdseek/internal/tui/styles"
)

func TestEventsSkipTicksAndKeepLimit(t *testing.T) {
	e := NewEvents(2)
	now := time.Unix(100, 0)

	e.Add(feedback.Event{Type: feedback.EventTick, Timestamp: now})
	assert.Equal(t, 0, e.Len())

	e.Add(feedback.Event{Type: feedback.EventTierChange, Tier: speed.X2, Timestamp: now})
	e.Add(feedback.Event{Type: feedback.EventDirectionChange, Direction: core.Backward, Timestamp: now})
	e.Add(feedback.Event{Type: feedback.EventSessionEnd, Timestamp: now})
	assert.Equal(t, 2, e.Len())
	assert.Equal(t, feedback.EventSessionEnd, e.entries[0].Type, "newest first")
}

func TestEventsRenderEmpty(t *testing.T) {
	out := NewEvents(10).Render(40, 8, time.Now())
	assert.Contains(t, out, "No events yet")
}

func TestFormatAgo(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{500 * time.Millisecond, "now"},
		{12 * time.Second, "12s"},
		{3 * time.Minute, "3m"},
	}
	for _, tt := range tests {
		if got := formatAgo(tt.d); got != tt.want {
			t.Errorf("formatAgo(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		s    string
		n    int
		want string
	}{
		{"hello", 10, "hello"},
		{"hello", 0, ""},
		{"hello", 1, "h"},
	}
	for _, tt := range tests {
		if got := truncate(tt.s, tt.n); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.s, tt.n, got, tt.want)
		}
	}
	assert.LessOrEqual(t, len([]rune(truncate("a long line of text", 8))), 8)
}

func TestZonesMarksPress(t *testing.T) {
	z := NewZones(gesture.DefaultLayout)
	out := z.Render(50, 25)
	assert.Equal(t, 1, strings.Count(out, "▼"))
	assert.Contains(t, out, "seek")
	assert.Equal(t, "", z.Render(0, -1))
}

func TestOverlayIdleAndActive(t *testing.T) {
	o := NewOverlay(speed.Default())

	idle := o.Render(seek.Status{State: seek.Idle}, 80)
	assert.Contains(t, idle, "press and hold")

	active := o.Render(seek.Status{
		State:     seek.Active,
		Direction: core.Forward,
		Tier:      speed.X4,
		Position:  90 * time.Second,
		Held:      2 * time.Second,
		Ticks:     9,
	}, 80)
	assert.Contains(t, active, "9 ticks")
	assert.Contains(t, active, feedback.FormatPosition(90*time.Second))
}

func TestNowPlaying(t *testing.T) {
	n := NewNowPlaying()
	assert.Contains(t, n.Render(nil, 60, styles.Primary), "Waiting for player")

	state := &core.PlaybackState{
		Media:         &core.Media{Title: "movie"},
		IsPlaying:     true,
		Position:      time.Minute,
		Duration:      2 * time.Minute,
		DurationKnown: true,
	}
	out := n.Render(state, 60, lipgloss.Color("#FFFFFF"))
	assert.Contains(t, out, "movie")

	state.DurationKnown = false
	assert.Contains(t, n.Render(state, 60, styles.Primary), "live")
}
