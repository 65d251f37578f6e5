package feedback

import (
	"time"

	"github.com/tessro/holdseek/internal/core"
	"github.com/tessro/holdseek/internal/speed"
)

// EventType represents the kind of feedback event.
type EventType int

const (
	EventTick EventType = iota
	EventTierChange
	EventDirectionChange
	EventSeekFailed
	EventSessionEnd
)

// Event is a single feedback notification as delivered by Stream and
// Recorder.
type Event struct {
	Type      EventType
	Timestamp time.Time
	Position  time.Duration
	Tier      speed.Tier
	Direction core.Direction
	Err       error
}

// Haptic reports whether the event should produce a haptic pulse.
func (e Event) Haptic() bool {
	switch e.Type {
	case EventTierChange, EventDirectionChange, EventSessionEnd:
		return true
	}
	return false
}

// String returns the snake_case name of the event type.
func (t EventType) String() string {
	switch t {
	case EventTick:
		return "tick"
	case EventTierChange:
		return "tier_change"
	case EventDirectionChange:
		return "direction_change"
	case EventSeekFailed:
		return "seek_failed"
	case EventSessionEnd:
		return "session_end"
	default:
		return "unknown"
	}
}

// eventSink adapts a func(Event) into a Bus. The latest tier and direction
// are tracked so change events carry full context.
type eventSink struct {
	now  func() time.Time
	emit func(Event)
	tier speed.Tier
	dir  core.Direction
}

func (s *eventSink) OnTierChanged(tier speed.Tier) {
	s.tier = tier
	s.emit(Event{Type: EventTierChange, Timestamp: s.now(), Tier: tier, Direction: s.dir})
}

func (s *eventSink) OnDirectionChanged(dir core.Direction) {
	s.dir = dir
	s.emit(Event{Type: EventDirectionChange, Timestamp: s.now(), Tier: s.tier, Direction: dir})
}

func (s *eventSink) OnTick(position time.Duration, tier speed.Tier, dir core.Direction) {
	s.tier, s.dir = tier, dir
	s.emit(Event{Type: EventTick, Timestamp: s.now(), Position: position, Tier: tier, Direction: dir})
}

func (s *eventSink) OnSeekFailed(err error) {
	s.emit(Event{Type: EventSeekFailed, Timestamp: s.now(), Tier: s.tier, Direction: s.dir, Err: err})
}

func (s *eventSink) OnSessionEnd() {
	s.emit(Event{Type: EventSessionEnd, Timestamp: s.now(), Tier: s.tier, Direction: s.dir})
	s.tier, s.dir = speed.X1, core.Forward
}
