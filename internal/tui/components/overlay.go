package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/tessro/holdseek/internal/feedback"
	"github.com/tessro/holdseek/internal/seek"
	"github.com/tessro/holdseek/internal/speed"
	"github.com/tessro/holdseek/internal/tui/styles"
)

// Overlay shows the active seek session: direction, tier, target position
// and how long the hold has lasted.
type Overlay struct {
	curve *speed.Curve
}

// NewOverlay creates an overlay for curve.
func NewOverlay(curve *speed.Curve) *Overlay {
	return &Overlay{curve: curve}
}

// Render renders the overlay for st, or an idle hint when no session runs.
func (o *Overlay) Render(st seek.Status, width int) string {
	if st.State == seek.Idle {
		hint := styles.Dim.Render("press and hold in the seek zone · drag sideways to pick speed")
		return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(hint)
	}

	color := styles.TierColor(st.Tier)
	arrow := lipgloss.NewStyle().Bold(true).Foreground(color).Render(st.Direction.Arrow())
	spec := o.curve.Spec(st.Tier)

	head := fmt.Sprintf("%s  %s  %s", arrow, styles.TierBadge(st.Tier), styles.Title.Render(feedback.FormatPosition(st.Position)))
	rate := styles.Muted.Render(fmt.Sprintf("%v every %v", spec.TickSeekAmount, spec.TickInterval))
	held := styles.Dim.Render(fmt.Sprintf("held %s · %d ticks", st.Held.Round(100*time.Millisecond), st.Ticks))
	if st.DragOverride {
		held += styles.Dim.Render(" · drag")
	}
	if st.State == seek.Terminating {
		held += styles.Paused.Render(" · releasing")
	}

	box := styles.FocusedBorder.
		BorderForeground(color).
		Padding(0, 2).
		Render(lipgloss.JoinVertical(lipgloss.Center, head, o.ladder(st.Tier), rate, held))

	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(box)
}

// ladder draws one cell per tier, lit up to the current one.
func (o *Overlay) ladder(current speed.Tier) string {
	if o.curve.IsFixed() {
		return ""
	}
	cells := make([]string, 0, speed.NumTiers)
	for t := speed.X1; t <= speed.X32; t++ {
		style := lipgloss.NewStyle().Foreground(styles.Border)
		if t <= current {
			style = lipgloss.NewStyle().Foreground(styles.TierColor(t))
		}
		cells = append(cells, style.Render("■"))
	}
	return strings.Join(cells, " ")
}
