package feedback

import (
	"sync"
	"time"

	"github.com/tessro/holdseek/internal/core"
	"github.com/tessro/holdseek/internal/speed"
)

// Recorder keeps every feedback event in memory. It backs session
// summaries in the CLI and assertions in tests.
type Recorder struct {
	mu     sync.Mutex
	sink   eventSink
	events []Event
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	r := &Recorder{}
	r.sink = eventSink{now: time.Now, emit: func(e Event) { r.events = append(r.events, e) }}
	return r
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// Count returns how many events of type t were recorded.
func (r *Recorder) Count(t EventType) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.events {
		if e.Type == t {
			n++
		}
	}
	return n
}

// Ticks returns the recorded tick events in order.
func (r *Recorder) Ticks() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ticks []Event
	for _, e := range r.events {
		if e.Type == EventTick {
			ticks = append(ticks, e)
		}
	}
	return ticks
}

// Reset discards recorded events.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}

func (r *Recorder) OnTierChanged(tier speed.Tier) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sink.OnTierChanged(tier)
}

func (r *Recorder) OnDirectionChanged(dir core.Direction) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sink.OnDirectionChanged(dir)
}

func (r *Recorder) OnTick(position time.Duration, tier speed.Tier, dir core.Direction) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sink.OnTick(position, tier, dir)
}

func (r *Recorder) OnSeekFailed(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sink.OnSeekFailed(err)
}

func (r *Recorder) OnSessionEnd() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sink.OnSessionEnd()
}

var (
	_ Bus             = (*Recorder)(nil)
	_ FailureObserver = (*Recorder)(nil)
)
