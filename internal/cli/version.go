package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/tessro/holdseek/internal/speed"
)

var (
	// Set via ldflags at build time
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

var versionCmd = &cobra.Command{
	Use:         "version",
	Short:       "Show version information",
	Annotations: map[string]string{annotationConfigOptional: "true"},
	Long: `Show the build version and, with --verbose, build details and the seek
curve the loaded configuration selects.`,
	RunE: runVersion,
}

func runVersion(cmd *cobra.Command, args []string) error {
	curve, err := cfg.Seek.Curve()
	if err != nil {
		return err
	}
	return printVersion(cmd.OutOrStdout(), buildInfo(cfg.Seek.Mode, curve), JSONOutput(), Verbose())
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

type versionInfo struct {
	Version   string  `json:"version"`
	Commit    string  `json:"commit"`
	BuildDate string  `json:"build_date"`
	GoVersion string  `json:"go_version"`
	Platform  string  `json:"platform"`
	SeekMode  string  `json:"seek_mode"`
	Tiers     int     `json:"tiers"`
	PeakRate  float64 `json:"peak_rate"`
}

func buildInfo(mode string, curve *speed.Curve) versionInfo {
	info := versionInfo{
		Version:   Version,
		Commit:    Commit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
		SeekMode:  mode,
		Tiers:     speed.NumTiers,
	}
	if curve.IsFixed() {
		info.Tiers = 1
	}
	for _, r := range curve.Table() {
		if rate := r.Spec.Rate(); rate > info.PeakRate {
			info.PeakRate = rate
		}
	}
	return info
}

func printVersion(out io.Writer, info versionInfo, asJSON, verbose bool) error {
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	}

	_, _ = fmt.Fprintf(out, "holdseek %s\n", info.Version)
	if verbose {
		_, _ = fmt.Fprintf(out, "  commit:     %s\n", info.Commit)
		_, _ = fmt.Fprintf(out, "  built:      %s\n", info.BuildDate)
		_, _ = fmt.Fprintf(out, "  go version: %s\n", info.GoVersion)
		_, _ = fmt.Fprintf(out, "  platform:   %s\n", info.Platform)
		_, _ = fmt.Fprintf(out, "  seek:       %s, %d tiers, up to %s\n", info.SeekMode, info.Tiers, FormatRate(info.PeakRate))
	}
	return nil
}
