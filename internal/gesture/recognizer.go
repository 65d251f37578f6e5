package gesture

import (
	"math"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/tessro/holdseek/internal/clock"
)

// HoldTarget receives the reduced hold gesture.
type HoldTarget interface {
	OnHoldStart(x, width float64, playing bool) error
	OnHoldDrag(deltaX, width float64)
	OnHoldEnd()
	OnHoldCancelled()
}

// Default recognizer thresholds.
const (
	DefaultActivationThreshold = 300 * time.Millisecond
	DefaultMoveSlop            = 24.0
)

// RecognizerOptions configures a Recognizer.
type RecognizerOptions struct {
	Layout              Layout
	ActivationThreshold time.Duration
	// MoveSlop is how far the pointer may move before activation without
	// the press being reclassified as a plain drag.
	MoveSlop float64
	Clock    clock.Clock
	Logger   hclog.Logger
}

type phase int

const (
	phaseIdle phase = iota
	phasePending
	phaseHolding
	phaseDragOnly
)

// Recognizer turns raw pointer events into hold gestures. Target callbacks
// are made while the recognizer's lock is held so they arrive strictly in
// order; a target must not call back into the Recognizer.
type Recognizer struct {
	target    HoldTarget
	layout    Layout
	threshold time.Duration
	slop      float64
	clock     clock.Clock
	logger    hclog.Logger

	mu      sync.Mutex
	phase   phase
	downX   float64
	width   float64
	playing bool
	timer   clock.Timer
	gen     int
}

// NewRecognizer creates a recognizer feeding target.
func NewRecognizer(target HoldTarget, opts RecognizerOptions) *Recognizer {
	if opts.Layout == (Layout{}) {
		opts.Layout = DefaultLayout
	}
	if opts.ActivationThreshold <= 0 {
		opts.ActivationThreshold = DefaultActivationThreshold
	}
	if opts.MoveSlop <= 0 {
		opts.MoveSlop = DefaultMoveSlop
	}
	if opts.Clock == nil {
		opts.Clock = clock.Real()
	}
	if opts.Logger == nil {
		opts.Logger = hclog.NewNullLogger()
	}
	return &Recognizer{
		target:    target,
		layout:    opts.Layout,
		threshold: opts.ActivationThreshold,
		slop:      opts.MoveSlop,
		clock:     opts.Clock,
		logger:    opts.Logger,
	}
}

// Down records a touch-down. It returns false when the touch lands outside
// the seek band or another touch is already being tracked.
func (r *Recognizer) Down(x, width float64, playing bool) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.phase != phaseIdle {
		return false
	}
	if zone := r.layout.Zone(x, width); zone != ZoneSeek {
		r.logger.Trace("touch outside seek band", "zone", zone, "x", x)
		return false
	}

	r.gen++
	gen := r.gen
	r.phase = phasePending
	r.downX = x
	r.width = width
	r.playing = playing
	r.timer = r.clock.AfterFunc(r.threshold, func() { r.activate(gen) })
	return true
}

func (r *Recognizer) activate(gen int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.gen != gen || r.phase != phasePending {
		return
	}
	r.timer = nil
	r.phase = phaseHolding
	if err := r.target.OnHoldStart(r.downX, r.width, r.playing); err != nil {
		r.logger.Error("hold start rejected", "error", err)
		r.phase = phaseDragOnly
	}
}

// Move reports the pointer's current x.
func (r *Recognizer) Move(x float64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delta := x - r.downX
	switch r.phase {
	case phasePending:
		if math.Abs(delta) > r.slop {
			r.stopTimer()
			r.phase = phaseDragOnly
			r.logger.Trace("press reclassified as drag", "delta", delta)
		}
	case phaseHolding:
		r.target.OnHoldDrag(delta, r.width)
	}
}

// Up reports touch-up. It returns true when the press ended before it became
// a hold or a drag, i.e. the host should treat it as a tap.
func (r *Recognizer) Up() bool {
	return r.release(false)
}

// Cancel reports a touch-cancel.
func (r *Recognizer) Cancel() {
	r.release(true)
}

// Holding reports whether a hold is currently active.
func (r *Recognizer) Holding() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.phase == phaseHolding
}

func (r *Recognizer) release(cancelled bool) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev := r.phase
	r.stopTimer()
	r.phase = phaseIdle

	switch prev {
	case phasePending:
		return !cancelled
	case phaseHolding:
		if cancelled {
			r.target.OnHoldCancelled()
		} else {
			r.target.OnHoldEnd()
		}
	}
	return false
}

func (r *Recognizer) stopTimer() {
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
}
