package feedback

import (
	"sync"
	"time"

	"github.com/tessro/holdseek/internal/core"
	"github.com/tessro/holdseek/internal/speed"
)

// Stream publishes feedback as Events on a buffered channel. When the
// consumer falls behind, events are dropped and counted. A session end is
// never dropped: it evicts the oldest buffered event instead.
type Stream struct {
	mu      sync.Mutex
	sink    eventSink
	events  chan Event
	closed  bool
	dropped int
}

// NewStream creates a stream with the given buffer size.
func NewStream(buffer int) *Stream {
	if buffer <= 0 {
		buffer = 64
	}
	s := &Stream{events: make(chan Event, buffer)}
	s.sink = eventSink{now: time.Now, emit: s.send}
	return s
}

// Events returns the channel of feedback events.
func (s *Stream) Events() <-chan Event {
	return s.events
}

// Dropped returns how many events were discarded because the buffer was full.
func (s *Stream) Dropped() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dropped
}

// Close closes the event channel. Later feedback is discarded.
func (s *Stream) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.closed = true
		close(s.events)
	}
}

func (s *Stream) send(e Event) {
	if s.closed {
		return
	}
	for {
		select {
		case s.events <- e:
			return
		default:
		}
		if e.Type != EventSessionEnd {
			// Drop event if channel is full
			s.dropped++
			return
		}
		select {
		case <-s.events:
			s.dropped++
		default:
		}
	}
}

func (s *Stream) OnTierChanged(tier speed.Tier) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sink.OnTierChanged(tier)
}

func (s *Stream) OnDirectionChanged(dir core.Direction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sink.OnDirectionChanged(dir)
}

func (s *Stream) OnTick(position time.Duration, tier speed.Tier, dir core.Direction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sink.OnTick(position, tier, dir)
}

func (s *Stream) OnSeekFailed(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sink.OnSeekFailed(err)
}

func (s *Stream) OnSessionEnd() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sink.OnSessionEnd()
}

var (
	_ Bus             = (*Stream)(nil)
	_ FailureObserver = (*Stream)(nil)
)
