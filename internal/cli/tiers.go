package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/tessro/holdseek/internal/speed"
)

var tiersCmd = &cobra.Command{
	Use:   "tiers",
	Short: "Show the speed tier table",
	Long: `Show the active speed curve: for each tier, how far a tick seeks, how
often ticks fire, and the hold time or drag distance that selects it.`,
	RunE: runTiers,
}

func init() {
	rootCmd.AddCommand(tiersCmd)
}

type tierRow struct {
	Tier       string  `json:"tier"`
	TickSeekMS int64   `json:"tick_seek_ms"`
	IntervalMS int64   `json:"interval_ms"`
	Rate       float64 `json:"rate"`
	FromHeldMS int64   `json:"from_held_ms"`
	FromRatio  float64 `json:"from_drag_ratio"`
}

func runTiers(cmd *cobra.Command, args []string) error {
	curve, err := cfg.Seek.Curve()
	if err != nil {
		return err
	}
	return printTiers(os.Stdout, curve, JSONOutput())
}

func printTiers(out io.Writer, curve *speed.Curve, asJSON bool) error {
	rows := curve.Table()

	if asJSON {
		data := make([]tierRow, len(rows))
		for i, r := range rows {
			data[i] = tierRow{
				Tier:       r.Tier.String(),
				TickSeekMS: r.Spec.TickSeekAmount.Milliseconds(),
				IntervalMS: r.Spec.TickInterval.Milliseconds(),
				Rate:       r.Spec.Rate(),
				FromHeldMS: r.FromHeld.Milliseconds(),
				FromRatio:  r.FromRatio,
			}
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	}

	if curve.IsFixed() {
		r := rows[0]
		_, _ = fmt.Fprintf(out, "fixed: %v every %v (%s)\n", r.Spec.TickSeekAmount, r.Spec.TickInterval, FormatRate(r.Spec.Rate()))
		return nil
	}

	t := NewTableWriter(out, "TIER", "TICK", "EVERY", "RATE", "HELD", "DRAG")
	for _, r := range rows {
		t.Row(
			r.Tier.String(),
			r.Spec.TickSeekAmount.String(),
			r.Spec.TickInterval.String(),
			FormatRate(r.Spec.Rate()),
			"≥"+r.FromHeld.String(),
			fmt.Sprintf("≥%.0f%%", r.FromRatio*100),
		)
	}
	t.Flush()
	return nil
}
