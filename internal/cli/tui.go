package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/tessro/holdseek/internal/tui"
)

var (
	tuiRefresh   int
	tuiMPVSocket string
)

var tuiCmd = &cobra.Command{
	Use:     "ui",
	Aliases: []string{"tui"},
	Short:   "Launch interactive hold-to-seek demo",
	Long: `Launch the interactive terminal demo.

Press and hold the left mouse button in the center band of the screen to
seek: the right half seeks forward, the left half backward. While holding,
drag sideways to pick the speed. Further from the press point is faster,
and crossing it reverses direction. A quick click toggles play/pause.

The demo drives a simulated player unless --mpv-socket is given or
player.backend is "mpv".

Keyboard shortcuts:
  q, Ctrl+C    Quit
  ?            Help
  Space        Play/Pause
  Esc          Cancel hold
  r            Refresh`,
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().IntVar(&tuiRefresh, "refresh", 0, "Refresh interval in milliseconds (default: tui.refresh_interval)")
	tuiCmd.Flags().StringVar(&tuiMPVSocket, "mpv-socket", "", "mpv IPC socket to control")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	logger, closeLog, err := newLogger(true)
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	player, closePlayer := newPlayer(cfg.Player, tuiMPVSocket, simMedia{
		duration: cfg.Player.SimDurationValue(),
		live:     cfg.Player.SimLive,
	}, logger)
	defer func() { _ = closePlayer() }()

	r, err := newRig(context.Background(), player, logger)
	if err != nil {
		return err
	}
	defer func() { _ = r.close() }()

	curve, err := cfg.Seek.Curve()
	if err != nil {
		return err
	}

	refresh := cfg.TUI.RefreshDuration()
	if tuiRefresh > 0 {
		refresh = time.Duration(tuiRefresh) * time.Millisecond
	}

	return tui.Run(tui.Options{
		Player:          r.player,
		Controller:      r.controller,
		Recognizer:      r.recognizer,
		Stream:          r.stream,
		Curve:           curve,
		Layout:          cfg.Zones.Layout(),
		CellWidth:       cfg.TUI.CellWidth,
		RefreshInterval: refresh,
		Theme:           cfg.TUI.Theme,
		Logger:          logger.Named("tui"),
	})
}
