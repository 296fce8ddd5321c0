package chart_test

import (
	"bytes"
	"image/color"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calvinalkan/timetrack/internal/chart"
	"github.com/calvinalkan/timetrack/internal/tracker"
)

// day is 2024-03-01 04:00 UTC, the start of a chart day.
var day = time.Date(2024, 3, 1, chart.DayStartHour, 0, 0, 0, time.UTC)

func hours(h float64) time.Time {
	return day.Add(time.Duration(h * float64(time.Hour)))
}

func hoursPtr(h float64) *time.Time {
	t := hours(h)

	return &t
}

func fixtureStore() *tracker.Store {
	s := tracker.NewStore()
	s.Categories["#work"] = []*tracker.Task{
		{
			// Yesterday only: no row.
			Name:       "old",
			TimeChunks: []tracker.TimeChunk{{Start: hours(-10), End: hoursPtr(-9)}},
			Status:     tracker.StatusStopped,
		},
		{
			// Crosses the window start: clipped.
			Name:       "late night",
			TimeChunks: []tracker.TimeChunk{{Start: hours(-1), End: hoursPtr(1)}, {Start: hours(5), End: hoursPtr(6)}},
			Status:     tracker.StatusPaused,
		},
	}
	s.Categories["Uncategorized"] = []*tracker.Task{
		{
			Name:       "inbox",
			TimeChunks: []tracker.TimeChunk{{Start: hours(8)}},
			Status:     tracker.StatusRunning,
		},
	}

	return s
}

func Test_DayWindow_Starts_At_Four_AM(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		now       time.Time
		wantStart time.Time
	}{
		{"afternoon", hours(10), day},
		{"exactly four", day, day},
		{"after midnight", hours(23), day},
		{"before four", hours(-1), day.AddDate(0, 0, -1)},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			start, end := chart.DayWindow(testCase.now)
			assert.True(t, start.Equal(testCase.wantStart), "start = %s", start)
			assert.True(t, end.Equal(testCase.wantStart.AddDate(0, 0, 1)), "end = %s", end)
		})
	}
}

func Test_Build_Clips_Chunks_And_Extends_Open_Chunk_To_Now(t *testing.T) {
	t.Parallel()

	now := hours(9)
	tl := chart.Build(fixtureStore(), now)

	want := []chart.Row{
		{
			Category: "#work",
			Name:     "late night",
			Status:   tracker.StatusPaused,
			Bars: []chart.Bar{
				{Start: day, End: hours(1)},
				{Start: hours(5), End: hours(6)},
			},
		},
		{
			Category: "Uncategorized",
			Name:     "inbox",
			Status:   tracker.StatusRunning,
			Bars:     []chart.Bar{{Start: hours(8), End: now}},
		},
	}

	if diff := cmp.Diff(want, tl.Rows); diff != "" {
		t.Fatalf("rows mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, 2*time.Hour, tl.Rows[0].Total())
	assert.Equal(t, "late night (#work)", tl.Rows[0].Label())
}

func Test_Build_Returns_No_Rows_When_Store_Empty(t *testing.T) {
	t.Parallel()

	tl := chart.Build(tracker.NewStore(), hours(9))
	assert.Empty(t, tl.Rows)
}

func Test_RenderText_Writes_One_Line_Per_Row(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	tl := chart.Build(fixtureStore(), hours(9))
	require.NoError(t, chart.RenderText(&buf, tl, 80))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4, "title, axis, and two rows:\n%s", buf.String())

	assert.Contains(t, lines[0], "Timeline Fri Mar 1 04:00")
	assert.Contains(t, lines[1], "04")
	assert.True(t, strings.HasPrefix(lines[2], "late night (#work)"))
	assert.True(t, strings.HasSuffix(lines[2], " 02:00:00"))
	assert.Contains(t, lines[2], "█")
	assert.True(t, strings.HasSuffix(lines[3], " 01:00:00"))
}

func Test_RenderText_Reports_Empty_Window(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	require.NoError(t, chart.RenderText(&buf, chart.Build(tracker.NewStore(), hours(9)), 80))
	assert.Contains(t, buf.String(), "No activity in this window.")
}

func Test_WritePNG_Draws_Bars_In_Row_Colors(t *testing.T) {
	t.Parallel()

	tl := chart.Timeline{
		Start: day,
		End:   day.AddDate(0, 0, 1),
		Rows: []chart.Row{
			{Category: "#a", Name: "x", Status: tracker.StatusStopped, Bars: []chart.Bar{{Start: hours(6), End: hours(18)}}},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, chart.WritePNG(&buf, tl))

	img, err := png.Decode(&buf)
	require.NoError(t, err)

	assert.Equal(t, chart.PNGWidth, img.Bounds().Dx())
	assert.Equal(t, chart.PNGHeight, img.Bounds().Dy())

	white := color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	assert.Equal(t, white, color.RGBAModel.Convert(img.At(1, 1)))

	// One row of 60px starting at the top margin; the bar is centred in it.
	r, g, b := chart.Color(0).RGB255()
	want := color.RGBA{R: r, G: g, B: b, A: 0xff}
	assert.Equal(t, want, color.RGBAModel.Convert(img.At(chart.PNGWidth/2+3, 40+30)))
}
