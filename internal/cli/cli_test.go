package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tessro/holdseek/internal/core"
	"github.com/tessro/holdseek/internal/seek"
	"github.com/tessro/holdseek/internal/speed"
)

func TestParseDrags(t *testing.T) {
	steps, err := parseDrags([]string{"3s:120", "1.5s:-300"})
	require.NoError(t, err)
	assert.Equal(t, []dragStep{
		{At: 1500 * time.Millisecond, DX: -300},
		{At: 3 * time.Second, DX: 120},
	}, steps, "steps are sorted by time")

	for _, bad := range []string{"1s", "soon:10", "-1s:10", "1s:far"} {
		_, err := parseDrags([]string{bad})
		assert.Error(t, err, bad)
	}
}

func TestPrintTiers(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printTiers(&buf, speed.Default(), false))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, speed.NumTiers+1)
	assert.True(t, strings.HasPrefix(lines[0], "TIER"))
	assert.Contains(t, lines[1], "x1")
	assert.Contains(t, lines[1], "4x")
	assert.Contains(t, lines[speed.NumTiers], "x32")
}

func TestPrintTiersJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printTiers(&buf, speed.Default(), true))

	var rows []tierRow
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rows))
	require.Len(t, rows, speed.NumTiers)
	assert.Equal(t, "x8", rows[3].Tier)
	assert.Equal(t, int64(8000), rows[3].TickSeekMS)
	assert.Equal(t, int64(150), rows[3].IntervalMS)
}

func TestPrintTiersFixed(t *testing.T) {
	curve, err := speed.Fixed(speed.DefaultFixedSpec)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, printTiers(&buf, curve, false))
	assert.Equal(t, "fixed: 10s every 500ms (20x)\n", buf.String())
}

func TestFormatSigned(t *testing.T) {
	assert.Equal(t, "+1:04.0", FormatSigned(64*time.Second))
	assert.Equal(t, "-0:30.0", FormatSigned(-30*time.Second))
}

func TestFormatProgress(t *testing.T) {
	tests := []struct {
		name    string
		current time.Duration
		total   time.Duration
		want    string
	}{
		{"unknown total", time.Second, 0, "──────────"},
		{"half", 30 * time.Second, time.Minute, "━━━━━─────"},
		{"past end", 2 * time.Minute, time.Minute, "━━━━━━━━━━"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatProgress(tt.current, tt.total, 10); got != tt.want {
				t.Errorf("FormatProgress() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPrintReport(t *testing.T) {
	var buf bytes.Buffer
	printReport(&buf, simulateReport{Result: scriptResult{}})
	assert.Contains(t, buf.String(), "outside the seek zone")

	buf.Reset()
	printReport(&buf, simulateReport{Result: scriptResult{Accepted: true, Tapped: true}})
	assert.Contains(t, buf.String(), "tap")

	buf.Reset()
	printReport(&buf, simulateReport{
		Result: scriptResult{Accepted: true},
		Summary: &seek.Summary{
			Direction:    core.Forward,
			Held:         3500 * time.Millisecond,
			Ticks:        17,
			Cumulative:   64 * time.Second,
			LastPosition: 124 * time.Second,
			PeakTier:     speed.X8,
			WasPlaying:   true,
		},
		Media: core.Media{Duration: 10 * time.Minute},
	})
	out := buf.String()
	assert.Contains(t, out, "Ticks: 17 (0 failed)")
	assert.Contains(t, out, "Moved: +1:04.0")
	assert.Contains(t, out, "Peak tier: x8")
	assert.Contains(t, out, "10:00.0")
}

func TestPrintVersion(t *testing.T) {
	info := buildInfo("progressive", speed.Default())
	assert.Equal(t, speed.NumTiers, info.Tiers)
	assert.Equal(t, 320.0, info.PeakRate)

	var buf bytes.Buffer
	require.NoError(t, printVersion(&buf, info, false, false))
	assert.Equal(t, "holdseek dev\n", buf.String())

	buf.Reset()
	require.NoError(t, printVersion(&buf, info, false, true))
	assert.Contains(t, buf.String(), "seek:       progressive, 6 tiers, up to 320x")

	buf.Reset()
	require.NoError(t, printVersion(&buf, info, true, false))
	var got versionInfo
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, info, got)
}

func TestVersionInfoFixedCurve(t *testing.T) {
	curve, err := speed.Fixed(speed.DefaultFixedSpec)
	require.NoError(t, err)

	info := buildInfo("fixed", curve)
	assert.Equal(t, 1, info.Tiers)
	assert.Equal(t, 20.0, info.PeakRate)
}
