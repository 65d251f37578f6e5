package feedback

import (
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/tessro/holdseek/internal/core"
	"github.com/tessro/holdseek/internal/speed"
)

// LogBus writes feedback to a structured logger. Ticks are logged at trace
// level, haptic-worthy events at debug.
type LogBus struct {
	logger hclog.Logger
}

// NewLogBus creates a bus logging to logger.
func NewLogBus(logger hclog.Logger) *LogBus {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &LogBus{logger: logger}
}

func (l *LogBus) OnTierChanged(tier speed.Tier) {
	l.logger.Debug("tier changed", "tier", tier.String())
}

func (l *LogBus) OnDirectionChanged(dir core.Direction) {
	l.logger.Debug("direction changed", "direction", dir.String())
}

func (l *LogBus) OnTick(position time.Duration, tier speed.Tier, dir core.Direction) {
	l.logger.Trace("seek tick", "position", position, "tier", tier.String(), "direction", dir.String())
}

func (l *LogBus) OnSeekFailed(err error) {
	l.logger.Warn("seek tick failed", "error", err)
}

func (l *LogBus) OnSessionEnd() {
	l.logger.Debug("session ended")
}

var (
	_ Bus             = (*LogBus)(nil)
	_ FailureObserver = (*LogBus)(nil)
)
