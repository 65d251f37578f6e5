package feedback

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/tessro/holdseek/internal/core"
	"github.com/tessro/holdseek/internal/speed"
)

func TestRecorderTracksContext(t *testing.T) {
	r := NewRecorder()
	r.OnTick(time.Second, speed.X2, core.Backward)
	r.OnDirectionChanged(core.Forward)
	r.OnSeekFailed(errors.New("not ready"))
	r.OnSessionEnd()

	events := r.Events()
	if len(events) != 4 {
		t.Fatalf("len(events) = %d, want 4", len(events))
	}
	if events[1].Tier != speed.X2 {
		t.Errorf("direction change carried tier %s, want x2", events[1].Tier)
	}
	if events[2].Direction != core.Forward {
		t.Errorf("seek failure carried direction %s, want forward", events[2].Direction)
	}
	if r.Count(EventSessionEnd) != 1 {
		t.Errorf("Count(EventSessionEnd) = %d, want 1", r.Count(EventSessionEnd))
	}
	if len(r.Ticks()) != 1 {
		t.Errorf("len(Ticks()) = %d, want 1", len(r.Ticks()))
	}
}

func TestMultiFansOut(t *testing.T) {
	a, b := NewRecorder(), NewRecorder()
	m := Multi{a, Nop{}, b}

	m.OnTierChanged(speed.X4)
	m.OnSeekFailed(errors.New("x"))
	m.OnSessionEnd()

	for i, r := range []*Recorder{a, b} {
		if got := len(r.Events()); got != 3 {
			t.Errorf("recorder %d got %d events, want 3", i, got)
		}
	}
}

func TestStreamDropsWhenFull(t *testing.T) {
	s := NewStream(2)
	s.OnTick(0, speed.X1, core.Forward)
	s.OnTick(time.Second, speed.X1, core.Forward)
	s.OnTick(2*time.Second, speed.X1, core.Forward)

	if s.Dropped() != 1 {
		t.Errorf("Dropped() = %d, want 1", s.Dropped())
	}

	s.Close()
	s.OnSessionEnd() // must not panic after close

	var got []Event
	for e := range s.Events() {
		got = append(got, e)
	}
	if len(got) != 2 {
		t.Fatalf("received %d events, want 2", len(got))
	}
	if got[1].Position != time.Second {
		t.Errorf("second event position = %v, want 1s", got[1].Position)
	}
}

func TestStreamKeepsSessionEndWhenFull(t *testing.T) {
	s := NewStream(2)
	s.OnTick(0, speed.X1, core.Forward)
	s.OnTick(time.Second, speed.X1, core.Forward)
	s.OnSessionEnd()
	s.Close()

	var got []Event
	for e := range s.Events() {
		got = append(got, e)
	}
	if len(got) != 2 {
		t.Fatalf("received %d events, want 2", len(got))
	}
	if got[0].Position != time.Second {
		t.Errorf("oldest kept event position = %v, want 1s", got[0].Position)
	}
	if got[1].Type != EventSessionEnd {
		t.Errorf("last event = %v, want session end", got[1].Type)
	}
	if s.Dropped() != 1 {
		t.Errorf("Dropped() = %d, want 1", s.Dropped())
	}
}

func TestHaptic(t *testing.T) {
	if (Event{Type: EventTick}).Haptic() {
		t.Error("tick should not pulse")
	}
	for _, typ := range []EventType{EventTierChange, EventDirectionChange, EventSessionEnd} {
		if !(Event{Type: typ}).Haptic() {
			t.Errorf("%s should pulse", typ)
		}
	}
}

func TestFormatterLine(t *testing.T) {
	f := NewFormatter(WithEmoji(false))
	e := Event{Type: EventTick, Position: 83*time.Second + 250*time.Millisecond, Tier: speed.X4, Direction: core.Forward}

	if got, want := f.Format(e), "▶▶ x4 1:23.3"; got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}

	if got := NewFormatter(WithTicks(false)).Format(e); got != "" {
		t.Errorf("Format() with ticks hidden = %q, want empty", got)
	}
}

func TestFormatterTemplate(t *testing.T) {
	f := NewFormatter(WithTemplate("{{.Type}}|{{.Tier}}|{{.Direction}}|{{.Error}}"))
	got := f.Format(Event{Type: EventSeekFailed, Tier: speed.X8, Direction: core.Backward, Err: errors.New("eof")})
	if got != "seek_failed|x8|backward|eof" {
		t.Errorf("Format() = %q", got)
	}
}

func TestFormatterBadTemplateFallsBack(t *testing.T) {
	f := NewFormatter(WithTemplate("{{.Missing"), WithEmoji(false))
	if got := f.Format(Event{Type: EventSessionEnd}); !strings.Contains(got, "Released") {
		t.Errorf("Format() = %q, want line format", got)
	}
}

func TestFormatPosition(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{-time.Second, "0:00.0"},
		{9750 * time.Millisecond, "0:09.8"},
		{61 * time.Second, "1:01.0"},
		{time.Hour + 2*time.Minute + 3*time.Second, "1:02:03.0"},
	}
	for _, tt := range tests {
		if got := FormatPosition(tt.d); got != tt.want {
			t.Errorf("FormatPosition(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
