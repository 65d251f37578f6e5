package core

import "time"

// PlaybackState represents the current playback state.
type PlaybackState struct {
	Media         *Media        `json:"media,omitempty"`
	IsPlaying     bool          `json:"is_playing"`
	Position      time.Duration `json:"position"`
	Duration      time.Duration `json:"duration"`
	DurationKnown bool          `json:"duration_known"`
}

// ProgressPercent returns playback progress as a percentage (0-100).
// Unbounded media always reports 0.
func (s *PlaybackState) ProgressPercent() float64 {
	if s == nil || !s.DurationKnown || s.Duration <= 0 {
		return 0
	}
	p := float64(s.Position) / float64(s.Duration) * 100
	if p > 100 {
		return 100
	}
	return p
}
