package feedback

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"time"
)

// Formatter formats events for output.
type Formatter struct {
	showEmoji     bool
	showTimestamp bool
	showTicks     bool
	template      *template.Template
}

// FormatterOption configures a Formatter.
type FormatterOption func(*Formatter)

// WithEmoji enables emoji output.
func WithEmoji(enabled bool) FormatterOption {
	return func(f *Formatter) {
		f.showEmoji = enabled
	}
}

// WithTimestamp enables timestamp output.
func WithTimestamp(enabled bool) FormatterOption {
	return func(f *Formatter) {
		f.showTimestamp = enabled
	}
}

// WithTicks controls whether tick events produce output.
func WithTicks(enabled bool) FormatterOption {
	return func(f *Formatter) {
		f.showTicks = enabled
	}
}

// WithTemplate sets a custom format template.
func WithTemplate(tmpl string) FormatterOption {
	return func(f *Formatter) {
		if tmpl != "" {
			t, err := template.New("format").Parse(tmpl)
			if err == nil {
				f.template = t
			}
		}
	}
}

// NewFormatter creates a new formatter with the given options.
func NewFormatter(opts ...FormatterOption) *Formatter {
	f := &Formatter{
		showEmoji: true,
		showTicks: true,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format formats an event as a string. It returns "" for events the
// formatter is configured to hide.
func (f *Formatter) Format(e Event) string {
	if e.Type == EventTick && !f.showTicks {
		return ""
	}
	if f.template != nil {
		return f.formatTemplate(e)
	}
	return f.formatLine(e)
}

func (f *Formatter) formatLine(e Event) string {
	var parts []string

	if f.showTimestamp {
		parts = append(parts, e.Timestamp.Format("15:04:05.000"))
	}

	if f.showEmoji {
		parts = append(parts, eventEmoji(e.Type))
	}

	parts = append(parts, eventDescription(e))

	return strings.Join(parts, " ")
}

func (f *Formatter) formatTemplate(e Event) string {
	data := templateData{
		Type:      e.Type.String(),
		Emoji:     eventEmoji(e.Type),
		Timestamp: e.Timestamp,
		Time:      e.Timestamp.Format("15:04:05.000"),
		Position:  FormatPosition(e.Position),
		Tier:      e.Tier.String(),
		Direction: e.Direction.String(),
		Arrow:     e.Direction.Arrow(),
		Haptic:    e.Haptic(),
	}
	if e.Err != nil {
		data.Error = e.Err.Error()
	}

	var buf bytes.Buffer
	if err := f.template.Execute(&buf, data); err != nil {
		return f.formatLine(e)
	}
	return buf.String()
}

type templateData struct {
	Type      string
	Emoji     string
	Timestamp time.Time
	Time      string
	Position  string
	Tier      string
	Direction string
	Arrow     string
	Haptic    bool
	Error     string
}

func eventDescription(e Event) string {
	switch e.Type {
	case EventTick:
		return fmt.Sprintf("%s %s %s", e.Direction.Arrow(), e.Tier, FormatPosition(e.Position))
	case EventTierChange:
		return fmt.Sprintf("Speed: %s", e.Tier)
	case EventDirectionChange:
		return fmt.Sprintf("Direction: %s", e.Direction)
	case EventSeekFailed:
		if e.Err != nil {
			return fmt.Sprintf("Seek failed: %v", e.Err)
		}
		return "Seek failed"
	case EventSessionEnd:
		return "Released"
	default:
		return "Unknown event"
	}
}

func eventEmoji(t EventType) string {
	switch t {
	case EventTick:
		return "⏩"
	case EventTierChange:
		return "🚀"
	case EventDirectionChange:
		return "🔁"
	case EventSeekFailed:
		return "⚠️"
	case EventSessionEnd:
		return "✋"
	default:
		return "❓"
	}
}

// FormatPosition formats a timeline position as m:ss.t or h:mm:ss.t.
func FormatPosition(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	d = d.Round(100 * time.Millisecond)
	h := d / time.Hour
	m := (d % time.Hour) / time.Minute
	s := (d % time.Minute) / time.Second
	tenths := (d % time.Second) / (100 * time.Millisecond)
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d.%d", h, m, s, tenths)
	}
	return fmt.Sprintf("%d:%02d.%d", m, s, tenths)
}
