package speed

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTierForElapsed(t *testing.T) {
	c := Default()
	tests := []struct {
		elapsed time.Duration
		want    Tier
	}{
		{0, X1},
		{999 * time.Millisecond, X1},
		{time.Second, X2},
		{1999 * time.Millisecond, X2},
		{2 * time.Second, X4},
		{3 * time.Second, X8},
		{3500 * time.Millisecond, X8},
		{4 * time.Second, X16},
		{5 * time.Second, X32},
		{time.Hour, X32},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, c.TierForElapsed(tt.elapsed), "elapsed=%v", tt.elapsed)
	}
}

func TestTierForElapsedMonotonic(t *testing.T) {
	c := Default()
	prev := X1
	for d := time.Duration(0); d < 7*time.Second; d += 37 * time.Millisecond {
		got := c.TierForElapsed(d)
		require.GreaterOrEqual(t, got, prev, "tier decreased at %v", d)
		prev = got
	}
}

func TestTierForDragRatio(t *testing.T) {
	c := Default()
	tests := []struct {
		ratio float64
		want  Tier
	}{
		{-0.5, X1},
		{0, X1},
		{0.099, X1},
		{0.1, X2},
		{0.29, X2},
		{0.3, X4},
		{0.5, X8},
		{0.7, X16},
		{0.89, X16},
		{0.9, X32},
		{1.0, X32},
		{4.0, X32},
		{math.NaN(), X1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, c.TierForDragRatio(tt.ratio), "ratio=%v", tt.ratio)
	}
}

func TestRatio(t *testing.T) {
	assert.InDelta(t, 0.25, Ratio(-270, 1080), 1e-9)
	assert.Equal(t, 1.0, Ratio(5000, 1080))
	assert.Equal(t, 0.0, Ratio(100, 0))
}

func TestDefaultSpecsShortenWithTier(t *testing.T) {
	c := Default()
	for tier := X2; tier <= X32; tier++ {
		prev, cur := c.Spec(tier-1), c.Spec(tier)
		assert.LessOrEqual(t, cur.TickInterval, prev.TickInterval, "interval grew at %s", tier)
		assert.Greater(t, cur.Rate(), prev.Rate(), "rate did not grow at %s", tier)
		assert.GreaterOrEqual(t, cur.TickInterval, MinTickInterval)
	}
}

func TestNewRejectsBadTables(t *testing.T) {
	_, err := New(DefaultElapsedSteps[:4], DefaultDragSteps, DefaultSpecs)
	require.Error(t, err)

	_, err = New([]time.Duration{1, 3, 2, 4, 5}, DefaultDragSteps, DefaultSpecs)
	require.Error(t, err)

	_, err = New(DefaultElapsedSteps, []float64{0.1, 0.3, 0.5, 0.7, 1.2}, DefaultSpecs)
	require.Error(t, err)

	specs := append([]TierSpec(nil), DefaultSpecs...)
	specs[5].TickInterval = 10 * time.Millisecond
	_, err = New(DefaultElapsedSteps, DefaultDragSteps, specs)
	require.ErrorContains(t, err, "x32")
}

func TestFixedCurve(t *testing.T) {
	c, err := Fixed(DefaultFixedSpec)
	require.NoError(t, err)

	assert.True(t, c.IsFixed())
	assert.Equal(t, X1, c.TierForElapsed(10*time.Second))
	assert.Equal(t, X1, c.TierForDragRatio(1))
	assert.Equal(t, 10*time.Second, c.Spec(X32).TickSeekAmount)
	assert.Len(t, c.Table(), 1)
}

func TestTierLabels(t *testing.T) {
	assert.Equal(t, "x1", X1.String())
	assert.Equal(t, "x32", X32.String())
	assert.Equal(t, 16, X16.Multiplier())
	assert.Equal(t, X32, X32.Next())

	tier, err := ParseTier("X8")
	require.NoError(t, err)
	assert.Equal(t, X8, tier)

	_, err = ParseTier("x3")
	assert.Error(t, err)
}
