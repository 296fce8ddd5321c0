package cli

import (
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/calvinalkan/timetrack/internal/tracker"
)

// styles holds the lipgloss styles for one output writer. Writers that are
// not terminals get plain text.
type styles struct {
	title   lipgloss.Style
	label   lipgloss.Style
	faint   lipgloss.Style
	running lipgloss.Style
	paused  lipgloss.Style
	stopped lipgloss.Style
	box     lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)

	return styles{
		title:   r.NewStyle().Bold(true),
		label:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4")),
		faint:   r.NewStyle().Faint(true),
		running: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#04B575")),
		paused:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("#F7DC6F")),
		stopped: r.NewStyle().Foreground(lipgloss.Color("#FF6B6B")),
		box: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#874BFD")).
			Padding(0, 1),
	}
}

// status renders a status badge like "[Running]".
func (s styles) status(status tracker.Status) string {
	badge := "[" + string(status) + "]"

	switch status {
	case tracker.StatusRunning:
		return s.running.Render(badge)
	case tracker.StatusPaused:
		return s.paused.Render(badge)
	default:
		return s.stopped.Render(badge)
	}
}

// task renders "name (category)".
func (s styles) task(ref tracker.Ref) string {
	return s.label.Render(ref.Task.Name) + " (" + ref.Category + ")"
}
