package wizard

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"

	"github.com/tessro/holdseek/internal/config"
)

// ErrNotInteractive is returned when a form is requested without a terminal.
var ErrNotInteractive = errors.New("not running in a terminal")

// configAnswers holds form values as strings so numeric fields can be
// edited as text and validated in place.
type configAnswers struct {
	mode      string
	threshold string
	deadzone  string
	backend   string
	socket    string
	logLevel  string
}

func answersFrom(cfg *config.Config) *configAnswers {
	return &configAnswers{
		mode:      cfg.Seek.Mode,
		threshold: strconv.Itoa(cfg.Seek.ActivationThreshold),
		deadzone:  strconv.FormatFloat(cfg.Seek.DragDeadzone, 'f', -1, 64),
		backend:   cfg.Player.Backend,
		socket:    cfg.Player.MPVSocket,
		logLevel:  cfg.Log.Level,
	}
}

// apply copies the answers into cfg. Fields are validated by the form, so
// parse errors only occur for values that bypassed it.
func (a *configAnswers) apply(cfg *config.Config) error {
	threshold, err := strconv.Atoi(a.threshold)
	if err != nil {
		return fmt.Errorf("activation threshold: %w", err)
	}
	deadzone, err := strconv.ParseFloat(a.deadzone, 64)
	if err != nil {
		return fmt.Errorf("drag deadzone: %w", err)
	}

	cfg.Seek.Mode = a.mode
	cfg.Seek.ActivationThreshold = threshold
	cfg.Seek.DragDeadzone = deadzone
	cfg.Player.Backend = a.backend
	cfg.Player.MPVSocket = a.socket
	cfg.Log.Level = a.logLevel
	return cfg.Validate()
}

func positiveInt(s string) error {
	v, err := strconv.Atoi(s)
	if err != nil || v <= 0 {
		return errors.New("enter a positive whole number")
	}
	return nil
}

func positiveFloat(s string) error {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return errors.New("enter a positive number")
	}
	return nil
}

// RunConfigForm lets the user edit the common settings of cfg in place.
func RunConfigForm(cfg *config.Config) error {
	if !CanInteract() {
		return ErrNotInteractive
	}

	a := answersFrom(cfg)
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Seek mode").
				Description("Progressive speeds up the longer you hold; fixed always jumps the same amount").
				Options(
					huh.NewOption("Progressive (x1 to x32)", config.ModeProgressive),
					huh.NewOption("Fixed jump", config.ModeFixed),
				).
				Value(&a.mode),
			huh.NewInput().
				Title("Activation threshold (ms)").
				Description("How long a press must last before seeking starts").
				Validate(positiveInt).
				Value(&a.threshold),
			huh.NewInput().
				Title("Drag deadzone (px)").
				Description("Sideways movement ignored before a drag picks the speed").
				Validate(positiveFloat).
				Value(&a.deadzone),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Player").
				Options(
					huh.NewOption("Simulated", config.BackendSim),
					huh.NewOption("mpv (JSON IPC)", config.BackendMPV),
				).
				Value(&a.backend),
			huh.NewInput().
				Title("mpv socket").
				Description("Path passed to mpv --input-ipc-server; required for mpv").
				Value(&a.socket),
			huh.NewSelect[string]().
				Title("Log level").
				Options(huh.NewOptions("error", "warn", "info", "debug", "trace")...).
				Value(&a.logLevel),
		),
	)

	if err := form.Run(); err != nil {
		return fmt.Errorf("configuration cancelled: %w", err)
	}
	return a.apply(cfg)
}
