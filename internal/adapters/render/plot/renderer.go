package plot

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/color"

	"pkpd-profile/internal/ports/render"

	gplot "gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var (
	seriesColor = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	micColor    = color.RGBA{R: 214, G: 39, B: 40, A: 255}
)

type Options struct {
	Width  vg.Length
	Height vg.Length
}

// Renderer dibuja la curva concentración-tiempo con gonum/plot y una línea
// horizontal punteada en el MIC.
type Renderer struct {
	width  vg.Length
	height vg.Length
}

func New(opts Options) *Renderer {
	w, h := opts.Width, opts.Height
	if w <= 0 {
		w = 6.4 * vg.Inch
	}
	if h <= 0 {
		h = 4.8 * vg.Inch
	}
	return &Renderer{width: w, height: h}
}

func (r *Renderer) Render(ctx context.Context, p render.Plot, format render.Format) ([]byte, string, error) {
	contentType, err := contentTypeFor(format)
	if err != nil {
		return nil, "", err
	}
	if len(p.TimePoints) != len(p.Concentrations) {
		return nil, "", errors.New("plot: time points and concentrations differ in length")
	}
	if len(p.TimePoints) == 0 {
		return nil, "", errors.New("plot: empty series")
	}
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}

	pl := gplot.New()
	pl.Title.Text = p.Title
	pl.X.Label.Text = p.XLabel
	pl.Y.Label.Text = p.YLabel
	pl.Y.Min = 0
	pl.Legend.Top = true
	pl.Add(plotter.NewGrid())

	xys := make(plotter.XYs, len(p.TimePoints))
	minX, maxX := p.TimePoints[0], p.TimePoints[0]
	for i := range p.TimePoints {
		xys[i].X = p.TimePoints[i]
		xys[i].Y = p.Concentrations[i]
		if p.TimePoints[i] < minX {
			minX = p.TimePoints[i]
		}
		if p.TimePoints[i] > maxX {
			maxX = p.TimePoints[i]
		}
	}

	line, err := plotter.NewLine(xys)
	if err != nil {
		return nil, "", fmt.Errorf("plot: series: %w", err)
	}
	line.LineStyle.Width = vg.Points(1.5)
	line.LineStyle.Color = seriesColor
	pl.Add(line)
	pl.Legend.Add(p.SeriesLabel, line)

	if p.MIC != nil {
		micLine, err := plotter.NewLine(plotter.XYs{{X: minX, Y: *p.MIC}, {X: maxX, Y: *p.MIC}})
		if err != nil {
			return nil, "", fmt.Errorf("plot: mic line: %w", err)
		}
		micLine.LineStyle.Width = vg.Points(1)
		micLine.LineStyle.Color = micColor
		micLine.LineStyle.Dashes = []vg.Length{vg.Points(6), vg.Points(4)}
		pl.Add(micLine)
		pl.Legend.Add(p.MICLabel, micLine)
	}

	wt, err := pl.WriterTo(r.width, r.height, string(format))
	if err != nil {
		return nil, "", fmt.Errorf("plot: writer: %w", err)
	}

	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return nil, "", fmt.Errorf("plot: encode %s: %w", format, err)
	}
	return buf.Bytes(), contentType, nil
}

func contentTypeFor(f render.Format) (string, error) {
	switch f {
	case render.FormatPNG:
		return "image/png", nil
	case render.FormatSVG:
		return "image/svg+xml", nil
	default:
		return "", fmt.Errorf("%w: %q", render.ErrUnsupportedFormat, f)
	}
}

var _ render.Renderer = (*Renderer)(nil)
