package chart

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"time"
)

// PNG canvas size.
const (
	PNGWidth  = 1280
	PNGHeight = 720
)

const (
	pngMargin     = 40
	maxRowHeight  = 60
	barFillFactor = 0.6
)

var (
	background = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	gridColor  = color.RGBA{R: 0xdd, G: 0xdd, B: 0xdd, A: 0xff}
)

// Render draws tl onto a [PNGWidth]x[PNGHeight] canvas: hour grid lines and
// one colored bar per chunk, each row in its [Color].
func Render(tl Timeline) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, PNGWidth, PNGHeight))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: background}, image.Point{}, draw.Src)

	plot := image.Rect(pngMargin, pngMargin, PNGWidth-pngMargin, PNGHeight-pngMargin)

	span := tl.End.Sub(tl.Start)
	if span <= 0 {
		return img
	}

	xOf := func(t time.Time) int {
		return plot.Min.X + int(int64(t.Sub(tl.Start))*int64(plot.Dx())/int64(span))
	}

	for h := time.Duration(0); h <= span; h += time.Hour {
		x := xOf(tl.Start.Add(h))
		draw.Draw(img, image.Rect(x, plot.Min.Y, x+1, plot.Max.Y), &image.Uniform{C: gridColor}, image.Point{}, draw.Src)
	}

	if len(tl.Rows) == 0 {
		return img
	}

	rowHeight := min(plot.Dy()/len(tl.Rows), maxRowHeight)
	barHeight := max(int(float64(rowHeight)*barFillFactor), 1)

	for i, row := range tl.Rows {
		r, g, b := Color(i).RGB255()
		fill := &image.Uniform{C: color.RGBA{R: r, G: g, B: b, A: 0xff}}

		top := plot.Min.Y + i*rowHeight + (rowHeight-barHeight)/2

		for _, bar := range row.Bars {
			x0 := xOf(bar.Start)
			x1 := max(xOf(bar.End), x0+1)

			draw.Draw(img, image.Rect(x0, top, x1, top+barHeight), fill, image.Point{}, draw.Src)
		}
	}

	return img
}

// WritePNG encodes the rendered timeline as PNG to w.
func WritePNG(w io.Writer, tl Timeline) error {
	err := png.Encode(w, Render(tl))
	if err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}

	return nil
}
