// Package chart lays out one day of tracked time as a timeline and renders
// it to a terminal or to a PNG image.
//
// The day runs from 04:00 to 04:00 the next day in the location of the
// reference time, so work past midnight still counts toward the evening it
// started in.
package chart

import (
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/calvinalkan/timetrack/internal/tracker"
)

// DayStartHour is the local hour at which a chart day begins.
const DayStartHour = 4

// Bar is one chunk of work clipped to the chart window.
type Bar struct {
	Start time.Time
	End   time.Time
}

// Row is one task with every chunk that falls inside the window.
type Row struct {
	Category string
	Name     string
	Status   tracker.Status
	Bars     []Bar
}

// Label returns "name (category)".
func (r Row) Label() string {
	return r.Name + " (" + r.Category + ")"
}

// Total returns the summed length of the row's bars.
func (r Row) Total() time.Duration {
	var total time.Duration
	for _, bar := range r.Bars {
		total += bar.End.Sub(bar.Start)
	}

	return total
}

// Timeline is the chart model: a window and the rows active inside it.
type Timeline struct {
	Start time.Time
	End   time.Time
	Rows  []Row
}

// DayWindow returns the chart day containing now.
func DayWindow(now time.Time) (time.Time, time.Time) {
	start := time.Date(now.Year(), now.Month(), now.Day(), DayStartHour, 0, 0, 0, now.Location())
	if now.Before(start) {
		start = start.AddDate(0, 0, -1)
	}

	return start, start.AddDate(0, 0, 1)
}

// Build lays out the chart day containing now.
func Build(store *tracker.Store, now time.Time) Timeline {
	start, end := DayWindow(now)

	return BuildWindow(store, start, end, now)
}

// BuildWindow lays out every task with work inside [start, end).
//
// Tasks keep [tracker.Store.Tasks] order. An open chunk on a Running task
// extends to now. Chunks outside the window and zero-length bars are dropped,
// and tasks left without bars get no row.
func BuildWindow(store *tracker.Store, start, end, now time.Time) Timeline {
	tl := Timeline{Start: start, End: end}

	for category, task := range store.Tasks() {
		row := Row{Category: category, Name: task.Name, Status: task.Status}

		for _, chunk := range task.TimeChunks {
			chunkEnd := now
			if chunk.End != nil {
				chunkEnd = *chunk.End
			} else if task.Status != tracker.StatusRunning {
				continue
			}

			barStart := latest(chunk.Start, start)
			barEnd := earliest(chunkEnd, end)

			if !barEnd.After(barStart) {
				continue
			}

			row.Bars = append(row.Bars, Bar{Start: barStart, End: barEnd})
		}

		if len(row.Bars) > 0 {
			tl.Rows = append(tl.Rows, row)
		}
	}

	return tl
}

// Color returns the palette color for the i-th row. Hues step by the
// golden angle so neighbouring rows stay distinguishable.
func Color(i int) colorful.Color {
	hue := float64((i * 137) % 360)

	return colorful.Hsv(hue, 0.55, 0.85)
}

func latest(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}

	return b
}

func earliest(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}

	return b
}
