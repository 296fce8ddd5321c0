package cli

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"

	"github.com/calvinalkan/timetrack/internal/chart"

	flag "github.com/spf13/pflag"
)

const pngPerms = 0o644

var errWidthInvalid = errors.New("--width must be positive")

// VisualizeCmd returns the visualize command.
func VisualizeCmd(a *app) *Command {
	fs := flag.NewFlagSet("visualize", flag.ContinueOnError)
	fs.String("png", "", "Also write the chart as a PNG image to this path")
	fs.Int("width", 0, "Chart width in columns (default: chart_width from config)")

	return &Command{
		Flags: fs,
		Usage: "visualize [flags]",
		Short: "Chart today's tasks on a timeline",
		Long: `Chart today's work on a timeline, one row per task and one bar per time
chunk. The day runs from 04:00 to 04:00. A running task's bar extends to now.`,
		Exec: func(_ context.Context, io *IO, _ []string) error {
			pngPath, _ := fs.GetString("png")
			width, _ := fs.GetInt("width")

			if !fs.Changed("width") {
				width = a.cfg.ChartWidth
			}

			return execVisualize(io, a, pngPath, width)
		},
	}
}

func execVisualize(io *IO, a *app, pngPath string, width int) error {
	if width <= 0 {
		return errWidthInvalid
	}

	s, err := a.load(io)
	if err != nil {
		return err
	}

	tl := chart.Build(s, a.now())

	err = chart.RenderText(io.Out(), tl, width)
	if err != nil {
		return err
	}

	if pngPath == "" {
		return nil
	}

	if !filepath.IsAbs(pngPath) {
		pngPath = filepath.Join(a.cfg.EffectiveCwd, pngPath)
	}

	var buf bytes.Buffer

	err = chart.WritePNG(&buf, tl)
	if err != nil {
		return err
	}

	err = a.fs.MkdirAll(filepath.Dir(pngPath), 0o750)
	if err != nil {
		return err
	}

	err = a.fs.WriteFileAtomic(pngPath, buf.Bytes(), pngPerms)
	if err != nil {
		return err
	}

	io.Println("Wrote", pngPath)

	return nil
}
