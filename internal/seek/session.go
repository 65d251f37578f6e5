package seek

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tessro/holdseek/internal/core"
	hserrors "github.com/tessro/holdseek/internal/errors"
	"github.com/tessro/holdseek/internal/speed"
)

// State is the controller lifecycle state.
type State int

const (
	Idle State = iota
	Active
	Terminating
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Active:
		return "active"
	case Terminating:
		return "terminating"
	default:
		return "unknown"
	}
}

// session is the mutable state of one hold. Every field is guarded by the
// owning Controller's mutex.
type session struct {
	id          uuid.UUID
	activatedAt time.Time
	direction   core.Direction
	tier        speed.Tier
	peak        speed.Tier

	dragOverride bool
	dragRatio    float64

	hint       bool
	captured   bool
	wasPlaying bool

	cumulative   time.Duration
	lastPosition time.Duration
	ticks        int
	failed       int

	// ended is set once OnSessionEnd has been published.
	ended bool

	summary Summary
	done    chan struct{}
}

// Summary describes a finished session.
type Summary struct {
	ID           uuid.UUID      `json:"id"`
	Direction    core.Direction `json:"direction"`
	Held         time.Duration  `json:"held"`
	Ticks        int            `json:"ticks"`
	FailedTicks  int            `json:"failed_ticks"`
	Cumulative   time.Duration  `json:"cumulative"`
	LastPosition time.Duration  `json:"last_position"`
	PeakTier     speed.Tier     `json:"peak_tier"`
	DragOverride bool           `json:"drag_override"`
	WasPlaying   bool           `json:"was_playing"`
}

func (s *session) summarize(now time.Time) Summary {
	return Summary{
		ID:           s.id,
		Direction:    s.direction,
		Held:         now.Sub(s.activatedAt),
		Ticks:        s.ticks,
		FailedTicks:  s.failed,
		Cumulative:   s.cumulative,
		LastPosition: s.lastPosition,
		PeakTier:     s.peak,
		DragOverride: s.dragOverride,
		WasPlaying:   s.captured && s.wasPlaying,
	}
}

// SessionHandle refers to a session returned by Activate.
type SessionHandle struct {
	ID        uuid.UUID
	Direction core.Direction
	s         *session
}

// Done is closed once the session has been restored and torn down.
func (h *SessionHandle) Done() <-chan struct{} {
	return h.s.done
}

// Summary returns the session summary. ok is false until Done is closed.
func (h *SessionHandle) Summary() (sum Summary, ok bool) {
	select {
	case <-h.s.done:
		return h.s.summary, true
	default:
		return Summary{}, false
	}
}

// AlreadyActiveError reports an activation while a session exists. It
// matches errors.ErrAlreadyActive.
type AlreadyActiveError struct {
	Session uuid.UUID
	State   State
}

func (e *AlreadyActiveError) Error() string {
	return fmt.Sprintf("%v: session %s is %s", hserrors.ErrAlreadyActive, e.Session, e.State)
}

func (e *AlreadyActiveError) Unwrap() error {
	return hserrors.ErrAlreadyActive
}

// Status is a point-in-time view of the controller for overlays.
type Status struct {
	State        State
	Session      uuid.UUID
	Direction    core.Direction
	Tier         speed.Tier
	DragOverride bool
	Held         time.Duration
	Position     time.Duration
	Ticks        int
}
