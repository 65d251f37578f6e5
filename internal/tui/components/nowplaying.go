package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/tessro/holdseek/internal/core"
	"github.com/tessro/holdseek/internal/feedback"
	"github.com/tessro/holdseek/internal/tui/styles"
)

// NowPlaying displays the current media and playback position
type NowPlaying struct{}

// NewNowPlaying creates a new NowPlaying component
func NewNowPlaying() *NowPlaying {
	return &NowPlaying{}
}

// Render renders the now playing panel. accent colors the progress bar.
func (n *NowPlaying) Render(state *core.PlaybackState, width int, accent lipgloss.TerminalColor) string {
	title := styles.PanelTitle("Now Playing", false)

	var content string
	if state == nil || state.Media == nil {
		content = styles.Muted.Render("Waiting for player...")
	} else {
		content = n.renderMedia(state, width-4, accent)
	}

	panel := styles.Panel(false).Width(width)

	return panel.Render(lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		content,
	))
}

func (n *NowPlaying) renderMedia(state *core.PlaybackState, width int, accent lipgloss.TerminalColor) string {
	icon := styles.StatusIcon(state.IsPlaying)
	titleStyle := styles.Title.Width(width - 4)
	title := titleStyle.Render(state.Media.Title)

	var sub string
	if state.Media.URI != "" {
		sub = styles.Dim.Render(state.Media.URI)
	}

	// Progress bar
	current := feedback.FormatPosition(state.Position)
	total := "live"
	if state.DurationKnown {
		total = feedback.FormatPosition(state.Duration)
	}
	progressWidth := width - len(current) - len(total) - 2
	if progressWidth < 10 {
		progressWidth = 10
	}
	bar := styles.ProgressBar(state.ProgressPercent(), progressWidth, accent)
	progress := fmt.Sprintf("%s %s %s", current, bar, styles.Dim.Render(total))

	return lipgloss.JoinVertical(lipgloss.Left,
		icon+" "+title,
		"  "+sub,
		"",
		progress,
	)
}
