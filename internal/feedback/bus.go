// Package feedback carries seek session events to haptics and overlays.
package feedback

import (
	"time"

	"github.com/tessro/holdseek/internal/core"
	"github.com/tessro/holdseek/internal/speed"
)

// Bus receives seek session feedback. The controller calls a Bus while
// holding its session lock: implementations must return promptly and must
// not call back into the controller.
type Bus interface {
	OnTierChanged(tier speed.Tier)
	OnDirectionChanged(dir core.Direction)
	OnTick(position time.Duration, tier speed.Tier, dir core.Direction)
	OnSessionEnd()
}

// FailureObserver is implemented by buses that want best-effort notice of
// failed seek ticks.
type FailureObserver interface {
	OnSeekFailed(err error)
}

// Nop discards all feedback.
type Nop struct{}

func (Nop) OnTierChanged(speed.Tier) {}
func (Nop) OnDirectionChanged(core.Direction) {}
func (Nop) OnTick(time.Duration, speed.Tier, core.Direction) {}
func (Nop) OnSessionEnd() {}

// Multi fans feedback out to several buses in order.
type Multi []Bus

func (m Multi) OnTierChanged(tier speed.Tier) {
	for _, b := range m {
		b.OnTierChanged(tier)
	}
}

func (m Multi) OnDirectionChanged(dir core.Direction) {
	for _, b := range m {
		b.OnDirectionChanged(dir)
	}
}

func (m Multi) OnTick(position time.Duration, tier speed.Tier, dir core.Direction) {
	for _, b := range m {
		b.OnTick(position, tier, dir)
	}
}

func (m Multi) OnSessionEnd() {
	for _, b := range m {
		b.OnSessionEnd()
	}
}

// OnSeekFailed forwards to members implementing FailureObserver.
func (m Multi) OnSeekFailed(err error) {
	for _, b := range m {
		if fo, ok := b.(FailureObserver); ok {
			fo.OnSeekFailed(err)
		}
	}
}

var (
	_ Bus             = Nop{}
	_ Bus             = Multi(nil)
	_ FailureObserver = Multi(nil)
)
