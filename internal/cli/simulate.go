package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tessro/holdseek/internal/config"
	"github.com/tessro/holdseek/internal/core"
	"github.com/tessro/holdseek/internal/feedback"
	"github.com/tessro/holdseek/internal/seek"
	"github.com/tessro/holdseek/internal/telemetry"
)

var (
	simHold      time.Duration
	simX         float64
	simWidth     float64
	simDrags     []string
	simDuration  time.Duration
	simPosition  time.Duration
	simPaused    bool
	simLive      bool
	simFailEvery int
	simNoEmoji   bool
	simTimestamp bool
	simFormat    string
	simQuiet     bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a scripted hold against a simulated player",
	Long: `Press at --x on a screen --width pixels wide, hold for --hold, and print
feedback as it happens. The hold includes the activation threshold.

Drags are given as at:dx, where at is the time since touch-down and dx the
horizontal displacement from the touch-down point:

  holdseek simulate --hold 4s --drag 1.5s:-300 --drag 3s:120

Events printed:
  - Ticks (position, tier, direction)
  - Tier changes
  - Direction changes
  - Failed seeks
  - Session end`,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().DurationVar(&simHold, "hold", 3500*time.Millisecond, "how long the press lasts")
	simulateCmd.Flags().Float64Var(&simX, "x", 700, "touch-down x in pixels")
	simulateCmd.Flags().Float64Var(&simWidth, "width", 1000, "screen width in pixels")
	simulateCmd.Flags().StringArrayVar(&simDrags, "drag", nil, "drag step as at:dx (repeatable)")
	simulateCmd.Flags().DurationVar(&simDuration, "duration", 0, "media duration (default: player.sim_duration)")
	simulateCmd.Flags().DurationVar(&simPosition, "position", time.Minute, "starting position")
	simulateCmd.Flags().BoolVar(&simPaused, "paused", false, "start paused")
	simulateCmd.Flags().BoolVar(&simLive, "live", false, "simulate a live stream (unknown duration)")
	simulateCmd.Flags().IntVar(&simFailEvery, "fail-every", 0, "fail every nth seek")
	simulateCmd.Flags().BoolVar(&simNoEmoji, "no-emoji", false, "disable emoji output")
	simulateCmd.Flags().BoolVarP(&simTimestamp, "timestamp", "t", false, "show timestamps")
	simulateCmd.Flags().StringVarP(&simFormat, "format", "f", "", "custom format template")
	simulateCmd.Flags().BoolVarP(&simQuiet, "quiet", "q", false, "hide individual ticks")

	rootCmd.AddCommand(simulateCmd)
}

// dragStep moves the pointer to downX+DX at At after touch-down.
type dragStep struct {
	At time.Duration
	DX float64
}

func parseDrags(specs []string) ([]dragStep, error) {
	steps := make([]dragStep, 0, len(specs))
	for _, s := range specs {
		at, dx, ok := strings.Cut(s, ":")
		if !ok {
			return nil, fmt.Errorf("invalid drag %q: want at:dx", s)
		}
		d, err := time.ParseDuration(at)
		if err != nil {
			return nil, fmt.Errorf("invalid drag time %q: %w", at, err)
		}
		if d < 0 {
			return nil, fmt.Errorf("invalid drag time %q: must be non-negative", at)
		}
		f, err := strconv.ParseFloat(dx, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid drag offset %q: %w", dx, err)
		}
		steps = append(steps, dragStep{At: d, DX: f})
	}
	sort.SliceStable(steps, func(i, j int) bool { return steps[i].At < steps[j].At })
	return steps, nil
}

// scriptResult reports how the scripted press was classified.
type scriptResult struct {
	Accepted  bool
	Tapped    bool
	Cancelled bool
}

// runScript plays the press against r's recognizer in real time and waits
// for the controller to go idle.
func runScript(ctx context.Context, r *rig, x, width float64, hold time.Duration, drags []dragStep, playing bool) scriptResult {
	var res scriptResult
	if !r.recognizer.Down(x, width, playing) {
		return res
	}
	res.Accepted = true

	start := time.Now()
	wait := func(until time.Duration) bool {
		d := until - time.Since(start)
		if d <= 0 {
			return true
		}
		t := time.NewTimer(d)
		defer t.Stop()
		select {
		case <-t.C:
			return true
		case <-ctx.Done():
			return false
		}
	}

	for _, step := range drags {
		if step.At >= hold {
			break
		}
		if !wait(step.At) {
			res.Cancelled = true
			break
		}
		r.recognizer.Move(x + step.DX)
	}

	if !res.Cancelled && wait(hold) {
		res.Tapped = r.recognizer.Up()
	} else {
		res.Cancelled = true
		r.recognizer.Cancel()
	}

	for r.controller.State() != seek.Idle {
		time.Sleep(5 * time.Millisecond)
	}
	return res
}

type simulateReport struct {
	Result  scriptResult       `json:"result"`
	Summary *seek.Summary      `json:"summary,omitempty"`
	Metrics telemetry.Snapshot `json:"metrics"`
	Seeks   int                `json:"seeks"`
	Dropped int                `json:"dropped_events"`
	Media   core.Media         `json:"media"`
}

func runSimulate(cmd *cobra.Command, args []string) error {
	drags, err := parseDrags(simDrags)
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(false)
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	duration := simDuration
	if duration == 0 {
		duration = cfg.Player.SimDurationValue()
	}
	pc := cfg.Player
	pc.Backend = config.BackendSim
	player, closePlayer := newPlayer(pc, "", simMedia{
		duration: duration,
		position: simPosition,
		paused:   simPaused,
		live:     simLive || cfg.Player.SimLive,
	}, logger)
	defer func() { _ = closePlayer() }()

	// Handle Ctrl+C gracefully
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	go func() {
		select {
		case <-sigCh:
			cancel()
		case <-ctx.Done():
		}
	}()

	r, err := newRig(context.WithoutCancel(ctx), player, logger)
	if err != nil {
		return err
	}
	defer func() { _ = r.close() }()
	if simFailEvery > 0 {
		r.sim.FailEvery(simFailEvery)
	}

	formatter := feedback.NewFormatter(
		feedback.WithEmoji(!simNoEmoji),
		feedback.WithTimestamp(simTimestamp),
		feedback.WithTicks(!simQuiet),
		feedback.WithTemplate(simFormat),
	)

	out := cmd.OutOrStdout()
	if !JSONOutput() {
		media, err := r.sim.Media(ctx)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(out, "%s at %s, hold %v\n", media.Title, feedback.FormatPosition(simPosition), simHold)
	}

	resCh := make(chan scriptResult, 1)
	go func() {
		resCh <- runScript(ctx, r, simX, simWidth, simHold, drags, !simPaused)
	}()

	// Print events as they arrive
	var res scriptResult
	for done := false; !done; {
		select {
		case e := <-r.stream.Events():
			printEvent(out, formatter, e)
		case res = <-resCh:
			done = true
		}
	}
	for drained := false; !drained; {
		select {
		case e := <-r.stream.Events():
			printEvent(out, formatter, e)
		default:
			drained = true
		}
	}

	report := simulateReport{
		Result:  res,
		Metrics: r.metrics.Snapshot(),
		Seeks:   len(r.sim.Seeks()),
		Dropped: r.stream.Dropped(),
	}
	if media, err := r.sim.Media(ctx); err == nil {
		report.Media = media
	}
	if sum, ok := r.controller.LastSummary(); ok {
		report.Summary = &sum
	}

	if JSONOutput() {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	printReport(out, report)
	return nil
}

func printEvent(out io.Writer, f *feedback.Formatter, e feedback.Event) {
	if JSONOutput() {
		return
	}
	if line := f.Format(e); line != "" {
		_, _ = fmt.Fprintln(out, line)
	}
}

func printReport(out io.Writer, rep simulateReport) {
	switch {
	case !rep.Result.Accepted:
		_, _ = fmt.Fprintln(out, "touch outside the seek zone; nothing to do")
		return
	case rep.Result.Tapped:
		_, _ = fmt.Fprintln(out, "released before the activation threshold: tap")
		return
	case rep.Summary == nil:
		_, _ = fmt.Fprintln(out, "no seek session started")
		return
	}

	s := rep.Summary
	_, _ = fmt.Fprintln(out)
	Normal(out, "Session", s.ID.String())
	Normal(out, "Held", s.Held.Round(time.Millisecond).String())
	Normal(out, "Ticks", fmt.Sprintf("%d (%d failed)", s.Ticks, s.FailedTicks))
	Normal(out, "Moved", FormatSigned(s.Cumulative))
	pos := feedback.FormatPosition(s.LastPosition)
	if !rep.Media.Live && rep.Media.Duration > 0 {
		pos = fmt.Sprintf("%s %s %s", pos, FormatProgress(s.LastPosition, rep.Media.Duration, 30), feedback.FormatPosition(rep.Media.Duration))
	}
	Normal(out, "Position", pos)
	Normal(out, "Peak tier", s.PeakTier.String())
	Normal(out, "Resumed", strconv.FormatBool(s.WasPlaying))
	if rep.Result.Cancelled {
		Normal(out, "Ended", "cancelled")
	}
	if rep.Dropped > 0 {
		Normal(out, "Dropped events", strconv.Itoa(rep.Dropped))
	}
}
