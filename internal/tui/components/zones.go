package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tessro/holdseek/internal/gesture"
	"github.com/tessro/holdseek/internal/tui/styles"
)

// Zones draws the screen's gesture bands as a strip, marking where the
// pointer is pressed.
type Zones struct {
	layout gesture.Layout
}

// NewZones creates a zone strip for layout.
func NewZones(layout gesture.Layout) *Zones {
	return &Zones{layout: layout}
}

// Render renders the strip width columns wide. pressCol < 0 means no press.
func (z *Zones) Render(width, pressCol int) string {
	if width <= 0 {
		return ""
	}
	left := int(z.layout.LeftBand * float64(width))
	right := int(z.layout.RightBand * float64(width))
	mid := (left + right) / 2

	bandStyle := lipgloss.NewStyle().Foreground(styles.Border)
	seekStyle := lipgloss.NewStyle().Foreground(styles.Primary)
	pressStyle := lipgloss.NewStyle().Bold(true).Foreground(styles.Accent)

	var b strings.Builder
	for col := 0; col < width; col++ {
		switch {
		case col == pressCol:
			b.WriteString(pressStyle.Render("▼"))
		case col < left || col >= right:
			b.WriteString(bandStyle.Render("░"))
		case col < mid:
			b.WriteString(seekStyle.Render("◀"))
		default:
			b.WriteString(seekStyle.Render("▶"))
		}
	}

	labels := z.labels(width, left, right)
	return lipgloss.JoinVertical(lipgloss.Left, b.String(), labels)
}

func (z *Zones) labels(width, left, right int) string {
	place := func(text string, w int) string {
		return lipgloss.NewStyle().Width(w).Align(lipgloss.Center).Render(styles.Dim.Render(text))
	}
	return place(gesture.ZoneBrightness.String(), left) +
		place(gesture.ZoneSeek.String(), right-left) +
		place(gesture.ZoneVolume.String(), width-right)
}
