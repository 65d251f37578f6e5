package telemetry

import (
	"sync"
	"time"

	"github.com/tessro/holdseek/internal/speed"
)

// Metrics tracks seek session counters for one controller.
type Metrics struct {
	mu sync.RWMutex

	SessionsTotal    int64
	TicksTotal       int64
	FailedTicksTotal int64
	// SeekApplied is the sum of absolute seek distances issued.
	SeekApplied time.Duration
	HeldTotal   time.Duration
	PeakTiers   map[string]int64

	startTime time.Time
}

// Snapshot is a point-in-time copy of Metrics.
type Snapshot struct {
	SessionsTotal    int64            `json:"sessions_total"`
	TicksTotal       int64            `json:"ticks_total"`
	FailedTicksTotal int64            `json:"failed_ticks_total"`
	SeekApplied      time.Duration    `json:"seek_applied"`
	HeldTotal        time.Duration    `json:"held_total"`
	PeakTiers        map[string]int64 `json:"peak_tiers"`
	Uptime           time.Duration    `json:"uptime"`
}

// New creates an empty metrics set.
func New() *Metrics {
	return &Metrics{
		PeakTiers: make(map[string]int64),
		startTime: time.Now(),
	}
}

// RecordSession records a finished seek session.
func (m *Metrics) RecordSession(held time.Duration, ticks, failed int, cumulative time.Duration, peak speed.Tier) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if cumulative < 0 {
		cumulative = -cumulative
	}
	m.SessionsTotal++
	m.TicksTotal += int64(ticks)
	m.FailedTicksTotal += int64(failed)
	m.SeekApplied += cumulative
	m.HeldTotal += held
	m.PeakTiers[peak.String()]++
}

// Snapshot returns a copy of the current values.
func (m *Metrics) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	peaks := make(map[string]int64, len(m.PeakTiers))
	for k, v := range m.PeakTiers {
		peaks[k] = v
	}
	return Snapshot{
		SessionsTotal:    m.SessionsTotal,
		TicksTotal:       m.TicksTotal,
		FailedTicksTotal: m.FailedTicksTotal,
		SeekApplied:      m.SeekApplied,
		HeldTotal:        m.HeldTotal,
		PeakTiers:        peaks,
		Uptime:           time.Since(m.startTime),
	}
}

// FailureRate returns failed ticks as a fraction of all ticks.
func (s Snapshot) FailureRate() float64 {
	if s.TicksTotal == 0 {
		return 0
	}
	return float64(s.FailedTicksTotal) / float64(s.TicksTotal)
}
