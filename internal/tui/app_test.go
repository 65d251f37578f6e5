package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tessro/holdseek/internal/clock"
	"github.com/tessro/holdseek/internal/core"
	"github.com/tessro/holdseek/internal/feedback"
	"github.com/tessro/holdseek/internal/gesture"
	"github.com/tessro/holdseek/internal/playback"
	"github.com/tessro/holdseek/internal/seek"
	"github.com/tessro/holdseek/internal/sim"
)

type testRig struct {
	clk    *clock.Manual
	player *sim.Player
	stream *feedback.Stream
	ctrl   *seek.Controller
	model  Model
}

func newTestRig(t *testing.T) *testRig {
	t.Helper()
	clk := clock.NewManual(time.Unix(0, 0))
	player := sim.New(sim.Options{
		Media:    core.Media{Title: "movie", Duration: 10 * time.Minute},
		Position: time.Minute,
		Playing:  true,
		Clock:    clk,
	})
	stream := feedback.NewStream(256)
	t.Cleanup(stream.Close)
	ctrl := seek.New(playback.New(player, playback.Options{}), stream, seek.Options{Clock: clk})
	rec := gesture.NewRecognizer(ctrl, gesture.RecognizerOptions{Clock: clk})

	app := NewApp(Options{
		Player:     player,
		Controller: ctrl,
		Recognizer: rec,
		Stream:     stream,
		CellWidth:  8,
	})
	r := &testRig{clk: clk, player: player, stream: stream, ctrl: ctrl, model: NewModel(app)}
	r.send(t, tea.WindowSizeMsg{Width: 100, Height: 40})
	r.run(t, r.model.fetchState())
	return r
}

// send feeds msg to the model and returns the resulting command.
func (r *testRig) send(t *testing.T, msg tea.Msg) tea.Cmd {
	t.Helper()
	updated, cmd := r.model.Update(msg)
	m, ok := updated.(Model)
	require.True(t, ok)
	r.model = m
	return cmd
}

// run executes cmd and feeds its message back to the model.
func (r *testRig) run(t *testing.T, cmd tea.Cmd) tea.Cmd {
	t.Helper()
	require.NotNil(t, cmd)
	return r.send(t, cmd())
}

func press(col int) tea.MouseMsg {
	return tea.MouseMsg{X: col, Y: 10, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func motion(col int) tea.MouseMsg {
	return tea.MouseMsg{X: col, Y: 10, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft}
}

func release(col int) tea.MouseMsg {
	return tea.MouseMsg{X: col, Y: 10, Action: tea.MouseActionRelease, Button: tea.MouseButtonNone}
}

func TestTapTogglesPlayback(t *testing.T) {
	r := newTestRig(t)
	require.NotNil(t, r.model.state)
	assert.True(t, r.model.state.IsPlaying)

	r.send(t, press(50))
	assert.True(t, r.model.pressing)

	toggle := r.run(t, r.send(t, release(50)))
	r.run(t, toggle)

	assert.False(t, r.model.state.IsPlaying)
	assert.Equal(t, 1, r.player.Calls().Pause)
	assert.Empty(t, r.player.Seeks())
}

func TestHoldSeeksAndRestores(t *testing.T) {
	r := newTestRig(t)

	r.send(t, press(50))
	r.clk.Advance(300 * time.Millisecond)
	r.clk.Advance(time.Second)
	assert.Equal(t, seek.Active, r.ctrl.State())

	r.run(t, r.send(t, release(50)))
	assert.False(t, r.model.pressing)
	assert.Equal(t, seek.Idle, r.ctrl.State())

	seeks := r.player.Seeks()
	require.NotEmpty(t, seeks)
	assert.Greater(t, seeks[len(seeks)-1], time.Minute)

	calls := r.player.Calls()
	assert.Equal(t, 1, calls.Pause)
	assert.Equal(t, 1, calls.Play)

	// Feedback arrives over the stream; ticks are not listed, session end is.
	for i := 0; i < 64 && r.model.events.Len() == 0; i++ {
		r.run(t, r.model.waitForFeedback())
	}
	assert.Positive(t, r.model.events.Len())
}

func TestDragPicksDirection(t *testing.T) {
	r := newTestRig(t)

	r.send(t, press(50))
	r.clk.Advance(300 * time.Millisecond)
	r.send(t, motion(10))
	r.clk.Advance(time.Second)

	st := r.ctrl.Status()
	assert.Equal(t, core.Backward, st.Direction)
	assert.True(t, st.DragOverride)

	r.run(t, r.send(t, release(10)))
	seeks := r.player.Seeks()
	require.NotEmpty(t, seeks)
	assert.Less(t, seeks[len(seeks)-1], time.Minute)
}

func TestPressOutsideSeekBandIsIgnored(t *testing.T) {
	r := newTestRig(t)

	r.send(t, press(95))
	assert.False(t, r.model.pressing)
	assert.Nil(t, r.send(t, release(95)))
}

func TestBlurInterruptsHold(t *testing.T) {
	r := newTestRig(t)

	r.send(t, press(50))
	r.clk.Advance(800 * time.Millisecond)
	require.Equal(t, seek.Active, r.ctrl.State())

	r.run(t, r.send(t, tea.BlurMsg{}))
	assert.False(t, r.model.pressing)
	assert.Equal(t, seek.Idle, r.ctrl.State())
	assert.Equal(t, 1, r.player.Calls().Play)
}

func TestMouseIgnoredBeforeSize(t *testing.T) {
	r := newTestRig(t)
	r.model.width = 0

	r.send(t, press(50))
	assert.False(t, r.model.pressing)
}

func TestView(t *testing.T) {
	r := newTestRig(t)

	view := r.model.View()
	assert.True(t, strings.Contains(view, "holdseek"), "view missing title")

	r.model.quitting = true
	assert.Empty(t, r.model.View())
}

func TestHelpToggle(t *testing.T) {
	r := newTestRig(t)
	r.send(t, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})
	assert.True(t, r.model.help.ShowAll)
}
