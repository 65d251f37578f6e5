package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/tessro/holdseek/internal/config"
	hserrors "github.com/tessro/holdseek/internal/errors"
	"github.com/tessro/holdseek/internal/wizard"
)

var (
	configInitInteractive bool
	configInitForce       bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `Commands for viewing and creating holdseek configuration.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  `Display the effective configuration: file values, defaults and HOLDSEEK_* overrides.`,
	RunE:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	Long: `Create a new configuration file with default values.

With --interactive, a short form asks for the seek mode, activation threshold,
drag deadzone, player backend and log level first.`,
	Annotations: map[string]string{annotationConfigOptional: "true"},
	RunE:        runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:         "path",
	Short:       "Show the configuration file path",
	Annotations: map[string]string{annotationConfigOptional: "true"},
	RunE:        runConfigPath,
}

func init() {
	configInitCmd.Flags().BoolVarP(&configInitInteractive, "interactive", "i", false, "edit values in a form before writing")
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "overwrite an existing file")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if JSONOutput() {
		return json.NewEncoder(out).Encode(cfg)
	}

	// Pretty print as TOML
	encoder := toml.NewEncoder(out)
	encoder.Indent = "  "
	return encoder.Encode(cfg)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	configPath := getConfigPath()

	// Check if file already exists
	if _, err := os.Stat(configPath); err == nil && !configInitForce {
		return hserrors.WithSuggestion(
			fmt.Errorf("config file already exists at %s", configPath),
			"Pass --force to overwrite it",
		)
	}

	newCfg := config.Default()
	if configInitInteractive {
		if err := wizard.RunConfigForm(newCfg); err != nil {
			if errors.Is(err, wizard.ErrNotInteractive) {
				return hserrors.WithSuggestion(err, "Run without --interactive to write the defaults")
			}
			return err
		}
	}

	// Ensure directory exists
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	// Write header comment
	_, _ = fmt.Fprintln(f, "# Holdseek Configuration")
	_, _ = fmt.Fprintln(f, "# Durations are in milliseconds unless noted.")
	_, _ = fmt.Fprintln(f, "")

	encoder := toml.NewEncoder(f)
	encoder.Indent = "  "
	if err := encoder.Encode(newCfg); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	out := cmd.OutOrStdout()
	if JSONOutput() {
		_ = json.NewEncoder(out).Encode(map[string]string{
			"status": "created",
			"path":   configPath,
		})
	} else {
		_, _ = fmt.Fprintf(out, "Created config file: %s\n", configPath)
		_, _ = fmt.Fprintln(out, "\nNext steps:")
		_, _ = fmt.Fprintln(out, "  1. Try a hold with 'holdseek simulate --hold 4s'")
		_, _ = fmt.Fprintln(out, "  2. Point player.mpv_socket at mpv's --input-ipc-server and run 'holdseek ui'")
	}

	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	path := cfgFile
	exists := true
	if path == "" {
		path = config.Path()
	}
	if path == "" {
		path = config.DefaultPath()
		exists = false
	}

	out := cmd.OutOrStdout()
	if JSONOutput() {
		return json.NewEncoder(out).Encode(map[string]any{
			"path":   path,
			"exists": exists,
		})
	}
	if exists {
		_, _ = fmt.Fprintln(out, path)
	} else {
		_, _ = fmt.Fprintf(out, "%s (not created)\n", path)
	}
	return nil
}

func getConfigPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	if p := config.DefaultPath(); p != "" {
		return p
	}
	return ".holdseekrc"
}
