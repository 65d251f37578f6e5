package core

import (
	"testing"
	"time"
)

func TestDirectionApply(t *testing.T) {
	if got := Forward.Apply(2 * time.Second); got != 2*time.Second {
		t.Errorf("Forward.Apply = %v, want 2s", got)
	}
	if got := Backward.Apply(2 * time.Second); got != -2*time.Second {
		t.Errorf("Backward.Apply = %v, want -2s", got)
	}
}

func TestDirectionOpposite(t *testing.T) {
	if Forward.Opposite() != Backward {
		t.Error("Forward.Opposite() != Backward")
	}
	if Backward.Opposite() != Forward {
		t.Error("Backward.Opposite() != Forward")
	}
}

func TestDirectionString(t *testing.T) {
	tests := []struct {
		d    Direction
		want string
	}{
		{Forward, "forward"},
		{Backward, "backward"},
		{Direction(7), "direction(7)"},
	}
	for _, tt := range tests {
		if got := tt.d.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestProgressPercent(t *testing.T) {
	tests := []struct {
		name  string
		state *PlaybackState
		want  float64
	}{
		{"nil", nil, 0},
		{"unknown duration", &PlaybackState{Position: time.Minute}, 0},
		{"half", &PlaybackState{Position: 5 * time.Second, Duration: 10 * time.Second, DurationKnown: true}, 50},
		{"past end", &PlaybackState{Position: 11 * time.Second, Duration: 10 * time.Second, DurationKnown: true}, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.ProgressPercent(); got != tt.want {
				t.Errorf("ProgressPercent() = %v, want %v", got, tt.want)
			}
		})
	}
}
