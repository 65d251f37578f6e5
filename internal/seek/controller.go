// Package seek implements the accelerating long-press seek state machine.
//
// A Controller owns at most one session. Activate starts it and fires the
// first tick immediately; each tick looks up the current speed tier, asks the
// coordinator to apply a seek and publishes feedback before scheduling the
// next tick at that tier's interval. Terminate cancels the pending tick and
// restores playback exactly once.
//
// Concurrency: input calls (Activate, OnDrag, Terminate) and timer ticks are
// serialized by one mutex. Feedback buses are invoked while it is held and
// must not call back into the Controller. Coordinator (player) calls are made
// without the mutex.
package seek

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"

	"github.com/tessro/holdseek/internal/clock"
	"github.com/tessro/holdseek/internal/core"
	"github.com/tessro/holdseek/internal/feedback"
	"github.com/tessro/holdseek/internal/gesture"
	"github.com/tessro/holdseek/internal/speed"
	"github.com/tessro/holdseek/internal/telemetry"
)

// DefaultDragDeadzone is the displacement, in pixels, beyond which a drag
// takes over tier selection.
const DefaultDragDeadzone = 24.0

// Coordinator applies a session's effects to the player.
// playback.Coordinator is the production implementation.
type Coordinator interface {
	PauseAndCapture(ctx context.Context, hint bool) bool
	ApplySeek(ctx context.Context, delta time.Duration) (time.Duration, error)
	Restore(ctx context.Context, wasPlaying bool)
}

// Options configures a Controller. Zero values select defaults.
type Options struct {
	Curve        *speed.Curve
	DragDeadzone float64
	// Layout classifies hold positions for the gesture.HoldTarget methods.
	Layout  gesture.Layout
	Clock   clock.Clock
	Logger  hclog.Logger
	Metrics *telemetry.Metrics
	// Context is passed to every coordinator call.
	Context context.Context
}

// Controller is the seek acceleration state machine.
type Controller struct {
	coord    Coordinator
	bus      feedback.Bus
	curve    *speed.Curve
	deadzone float64
	layout   gesture.Layout
	clock    clock.Clock
	logger   hclog.Logger
	metrics  *telemetry.Metrics
	ctx      context.Context

	mu       sync.Mutex
	state    State
	session  *session
	timer    clock.Timer
	inFlight bool
	last     *Summary
}

// New creates an idle controller. bus may be nil.
func New(coord Coordinator, bus feedback.Bus, opts Options) *Controller {
	if bus == nil {
		bus = feedback.Nop{}
	}
	if opts.Curve == nil {
		opts.Curve = speed.Default()
	}
	if opts.DragDeadzone <= 0 {
		opts.DragDeadzone = DefaultDragDeadzone
	}
	if opts.Layout == (gesture.Layout{}) {
		opts.Layout = gesture.DefaultLayout
	}
	if opts.Clock == nil {
		opts.Clock = clock.Real()
	}
	if opts.Logger == nil {
		opts.Logger = hclog.NewNullLogger()
	}
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	return &Controller{
		coord:    coord,
		bus:      bus,
		curve:    opts.Curve,
		deadzone: opts.DragDeadzone,
		layout:   opts.Layout,
		clock:    opts.Clock,
		logger:   opts.Logger,
		metrics:  opts.Metrics,
		ctx:      opts.Context,
	}
}

// Activate starts a session seeking in direction. nowPlaying is the host's
// view of the play state, used only if the player cannot be queried. It
// returns an *AlreadyActiveError while another session exists, including one
// that is still terminating.
func (c *Controller) Activate(direction core.Direction, nowPlaying bool) (*SessionHandle, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != Idle {
		return nil, &AlreadyActiveError{Session: c.session.id, State: c.state}
	}

	s := &session{
		id:          uuid.New(),
		activatedAt: c.clock.Now(),
		direction:   direction,
		tier:        speed.X1,
		peak:        speed.X1,
		hint:        nowPlaying,
		done:        make(chan struct{}),
	}
	c.session = s
	c.state = Active
	c.timer = c.clock.AfterFunc(0, func() { c.tick(s) })

	c.logger.Debug("session started", "session", s.id, "direction", direction, "playing", nowPlaying)
	return &SessionHandle{ID: s.id, Direction: direction, s: s}, nil
}

// OnDrag reports the total horizontal displacement since the hold began.
// Once |deltaX| exceeds the deadzone the drag owns tier selection for the
// rest of the session, and its sign sets the direction.
func (c *Controller) OnDrag(deltaX, width float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != Active {
		return
	}
	s := c.session

	if !s.dragOverride {
		if math.Abs(deltaX) <= c.deadzone {
			return
		}
		s.dragOverride = true
		c.logger.Trace("drag override engaged", "session", s.id, "dx", deltaX)
	}
	s.dragRatio = speed.Ratio(deltaX, width)

	var dir core.Direction
	switch {
	case deltaX > c.deadzone:
		dir = core.Forward
	case deltaX < -c.deadzone:
		dir = core.Backward
	default:
		return
	}
	if dir != s.direction {
		s.direction = dir
		c.logger.Debug("direction changed", "session", s.id, "direction", dir)
		c.bus.OnDirectionChanged(dir)
	}
}

// Terminate ends the current session. It is idempotent and safe to call
// from any goroutine. The pending tick is cancelled and OnSessionEnd is
// published before it returns; nothing else reaches the bus for the session
// afterwards. If a seek is in flight, its result is discarded and
// restoration happens when it completes; otherwise restoration also happens
// before Terminate returns.
func (c *Controller) Terminate() {
	c.mu.Lock()
	if c.state != Active {
		c.mu.Unlock()
		return
	}
	s := c.session
	c.state = Terminating
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	deferred := c.inFlight
	if deferred {
		s.ended = true
		c.bus.OnSessionEnd()
	}
	c.mu.Unlock()

	c.logger.Debug("session terminating", "session", s.id, "deferred", deferred)
	if !deferred {
		c.finish(s)
	}
}

// Interrupt terminates any session on behalf of the host, for example when
// the window loses focus.
func (c *Controller) Interrupt() {
	c.mu.Lock()
	active := c.state == Active
	c.mu.Unlock()
	if active {
		c.logger.Debug("session interrupted")
	}
	c.Terminate()
}

// State returns the lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Status returns a snapshot of the current session, if any.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()

	st := Status{State: c.state}
	if s := c.session; s != nil {
		st.Session = s.id
		st.Direction = s.direction
		st.Tier = s.tier
		st.DragOverride = s.dragOverride
		st.Held = c.clock.Now().Sub(s.activatedAt)
		st.Position = s.lastPosition
		st.Ticks = s.ticks
	}
	return st
}

// LastSummary returns the summary of the most recently finished session.
func (c *Controller) LastSummary() (Summary, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.last == nil {
		return Summary{}, false
	}
	return *c.last, true
}

// nextTier picks the tier for the next tick. The time-based ramp advances at
// most one tier per tick; a drag override maps directly to any tier.
func (c *Controller) nextTier(s *session, now time.Time) speed.Tier {
	if s.dragOverride {
		return c.curve.TierForDragRatio(s.dragRatio)
	}
	t := c.curve.TierForElapsed(now.Sub(s.activatedAt))
	if t > s.tier {
		t = s.tier.Next()
	} else {
		t = s.tier
	}
	return t
}

func (c *Controller) tick(s *session) {
	c.mu.Lock()
	if c.session != s || c.state != Active {
		c.mu.Unlock()
		return
	}
	c.timer = nil
	c.inFlight = true

	tier := c.nextTier(s, c.clock.Now())
	tierChanged := tier != s.tier
	s.tier = tier
	if tier > s.peak {
		s.peak = tier
	}
	dir := s.direction
	spec := c.curve.Spec(tier)
	delta := dir.Apply(spec.TickSeekAmount)
	capture := !s.captured
	hint := s.hint
	c.mu.Unlock()

	if capture {
		wasPlaying := c.coord.PauseAndCapture(c.ctx, hint)

		c.mu.Lock()
		s.captured = true
		s.wasPlaying = wasPlaying
		if c.state != Active {
			c.inFlight = false
			c.mu.Unlock()
			c.finish(s)
			return
		}
		c.mu.Unlock()
	}

	pos, err := c.coord.ApplySeek(c.ctx, delta)

	c.mu.Lock()
	c.inFlight = false
	if c.state != Active {
		c.mu.Unlock()
		c.finish(s)
		return
	}

	s.ticks++
	if tierChanged {
		c.logger.Debug("tier changed", "session", s.id, "tier", tier)
		c.bus.OnTierChanged(tier)
	}
	if err != nil {
		s.failed++
		c.logger.Warn("seek failed", "session", s.id, "error", err)
		if fo, ok := c.bus.(feedback.FailureObserver); ok {
			fo.OnSeekFailed(err)
		}
	} else {
		s.cumulative += delta
		s.lastPosition = pos
		c.bus.OnTick(pos, tier, dir)
	}
	c.timer = c.clock.AfterFunc(spec.TickInterval, func() { c.tick(s) })
	c.mu.Unlock()
}

// finish restores playback and returns the controller to Idle. It runs
// exactly once per session: from Terminate, or from the tick that was in
// flight when Terminate was called. In the latter case Terminate has already
// published OnSessionEnd.
func (c *Controller) finish(s *session) {
	c.mu.Lock()
	resume := s.captured && s.wasPlaying
	c.mu.Unlock()

	c.coord.Restore(c.ctx, resume)

	c.mu.Lock()
	if !s.ended {
		s.ended = true
		c.bus.OnSessionEnd()
	}
	sum := s.summarize(c.clock.Now())
	s.summary = sum
	c.last = &sum
	c.session = nil
	c.state = Idle
	c.mu.Unlock()

	close(s.done)

	if c.metrics != nil {
		c.metrics.RecordSession(sum.Held, sum.Ticks, sum.FailedTicks, sum.Cumulative, sum.PeakTier)
	}
	c.logger.Debug("session ended",
		"session", sum.ID,
		"held", sum.Held,
		"ticks", sum.Ticks,
		"failed", sum.FailedTicks,
		"cumulative", sum.Cumulative,
		"peak", sum.PeakTier,
		"resumed", resume,
	)
}
