package chart

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/calvinalkan/timetrack/internal/tracker"
)

const (
	maxLabelWidth = 32
	minTrackWidth = 12
	filledCell    = "█"
	emptyCell     = "·"
)

// RenderText writes tl to w as one line per row: a label, a track of width
// cells in total, and the row's accrued time.
//
// Colors come from a renderer bound to w, so writers that are not terminals
// get plain text.
func RenderText(w io.Writer, tl Timeline, width int) error {
	renderer := lipgloss.NewRenderer(w)
	faint := renderer.NewStyle().Faint(true)
	bold := renderer.NewStyle().Bold(true)

	var b strings.Builder

	b.WriteString(bold.Render(fmt.Sprintf("Timeline %s - %s",
		tl.Start.Format("Mon Jan 2 15:04"), tl.End.Format("Mon Jan 2 15:04"))))
	b.WriteString("\n")

	if len(tl.Rows) == 0 {
		b.WriteString("No activity in this window.\n")

		_, err := io.WriteString(w, b.String())

		return err
	}

	labelWidth := 0
	for _, row := range tl.Rows {
		labelWidth = max(labelWidth, lipgloss.Width(row.Label()))
	}

	labelWidth = min(labelWidth, maxLabelWidth)
	track := max(width-labelWidth-len(" 00:00:00")-2, minTrackWidth)

	b.WriteString(strings.Repeat(" ", labelWidth+1))
	b.WriteString(faint.Render(axis(tl, track)))
	b.WriteString("\n")

	for i, row := range tl.Rows {
		label := truncate(row.Label(), labelWidth)
		b.WriteString(label)
		b.WriteString(strings.Repeat(" ", labelWidth-lipgloss.Width(label)+1))

		barStyle := renderer.NewStyle().Foreground(lipgloss.Color(Color(i).Hex()))

		for _, filled := range cells(tl, row, track) {
			if filled {
				b.WriteString(barStyle.Render(filledCell))
			} else {
				b.WriteString(faint.Render(emptyCell))
			}
		}

		b.WriteString(" ")
		b.WriteString(tracker.FormatClock(row.Total()))
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())

	return err
}

// cells reports for each of n equal slices of the window whether any bar of
// row overlaps it.
func cells(tl Timeline, row Row, n int) []bool {
	out := make([]bool, n)

	span := tl.End.Sub(tl.Start)
	if span <= 0 {
		return out
	}

	for _, bar := range row.Bars {
		first := int(int64(bar.Start.Sub(tl.Start)) * int64(n) / int64(span))
		last := int((int64(bar.End.Sub(tl.Start))*int64(n) - 1) / int64(span))

		for i := max(first, 0); i <= min(last, n-1); i++ {
			out[i] = true
		}
	}

	return out
}

// axis labels every few hours of the window with the local hour.
func axis(tl Timeline, n int) string {
	line := []rune(strings.Repeat(" ", n))
	hours := int(tl.End.Sub(tl.Start) / time.Hour)
	if hours == 0 {
		return string(line)
	}

	step := 1
	for step < hours && n/(hours/step) < 3 {
		step++
	}

	for h := 0; h < hours; h += step {
		pos := h * n / hours
		label := fmt.Sprintf("%02d", tl.Start.Add(time.Duration(h)*time.Hour).Hour())

		if pos+len(label) > n {
			break
		}

		copy(line[pos:], []rune(label))
	}

	return string(line)
}

func truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}

	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}

	return string(runes) + "…"
}
