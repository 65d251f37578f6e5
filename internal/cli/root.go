package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/tessro/holdseek/internal/config"
	hserrors "github.com/tessro/holdseek/internal/errors"
	"github.com/tessro/holdseek/internal/logging"
)

var (
	cfgFile string
	jsonOut bool
	verbose bool

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "holdseek",
	Short: "Accelerating long-press seek for media players",
	Long: `Holdseek turns a press-and-hold on the center of the screen into an
accelerating seek: the longer the hold, the faster playback moves. Dragging
sideways picks the speed and direction directly.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig(cmd)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: ~/.holdseekrc)")
	rootCmd.PersistentFlags().BoolVarP(&jsonOut, "json", "j", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// annotationConfigOptional marks commands that run without an existing
// --config file.
const annotationConfigOptional = "config-optional"

func initConfig(cmd *cobra.Command) error {
	var err error
	if cfgFile != "" {
		cfg, err = config.LoadFrom(cfgFile)
	} else {
		cfg, err = config.Load()
	}
	if errors.Is(err, hserrors.ErrConfigNotFound) && cmd.Annotations[annotationConfigOptional] == "true" {
		cfg, err = config.Default(), nil
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%w: %w", hserrors.ErrInvalidConfig, err)
	}

	return nil
}

// newLogger builds the command logger from the [log] section. quiet keeps
// logs off the terminal unless a log file is configured.
func newLogger(quiet bool) (hclog.Logger, func() error, error) {
	return logging.New(cfg.Log, logging.Options{
		Quiet:   quiet,
		JSON:    jsonOut,
		Verbose: verbose,
	})
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, hserrors.Format(err))
		os.Exit(1)
	}
}

// Config returns the loaded configuration.
func Config() *config.Config {
	return cfg
}

// JSONOutput returns true if JSON output is requested.
func JSONOutput() bool {
	return jsonOut
}

// Verbose returns true if verbose output is requested.
func Verbose() bool {
	return verbose
}
