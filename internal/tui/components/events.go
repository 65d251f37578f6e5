package components

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/tessro/holdseek/internal/feedback"
	"github.com/tessro/holdseek/internal/tui/styles"
)

// Events displays recent feedback events, newest first
type Events struct {
	formatter *feedback.Formatter
	limit     int
	entries   []feedback.Event
}

// NewEvents creates an event log keeping at most limit entries. Ticks are
// left out; the overlay already shows them.
func NewEvents(limit int) *Events {
	return &Events{
		formatter: feedback.NewFormatter(feedback.WithTicks(false)),
		limit:     limit,
	}
}

// Add records an event.
func (e *Events) Add(ev feedback.Event) {
	if e.formatter.Format(ev) == "" {
		return
	}
	e.entries = append([]feedback.Event{ev}, e.entries...)
	if len(e.entries) > e.limit {
		e.entries = e.entries[:e.limit]
	}
}

// Len returns the number of kept events.
func (e *Events) Len() int {
	return len(e.entries)
}

// Render renders the event panel
func (e *Events) Render(width, height int, now time.Time) string {
	title := styles.PanelTitle("Feedback", false)

	var content string
	if len(e.entries) == 0 {
		content = styles.Muted.Render("No events yet")
	} else {
		content = e.renderEntries(width-4, height-4, now)
	}

	panel := styles.Panel(false).
		Width(width).
		Height(height)

	return panel.Render(lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		content,
	))
}

func (e *Events) renderEntries(width, maxLines int, now time.Time) string {
	lines := make([]string, 0, maxLines)

	for i, ev := range e.entries {
		if i >= maxLines {
			break
		}

		ago := formatAgo(now.Sub(ev.Timestamp))
		text := truncate(e.formatter.Format(ev), width-len(ago)-1)

		// Right-align the age
		padding := width - lipgloss.Width(text) - len(ago)
		if padding < 1 {
			padding = 1
		}

		style := lipgloss.NewStyle()
		switch ev.Type {
		case feedback.EventSeekFailed:
			style = styles.Failure
		case feedback.EventTierChange:
			style = lipgloss.NewStyle().Foreground(styles.TierColor(ev.Tier))
		}

		lines = append(lines, style.Render(text)+
			lipgloss.NewStyle().Width(padding).Render("")+
			styles.Dim.Render(ago))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func formatAgo(d time.Duration) string {
	switch {
	case d < time.Second:
		return "now"
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	default:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 {
		return ""
	}
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
