package render

import (
	"context"
	"errors"
)

var ErrUnsupportedFormat = errors.New("unsupported render format")

type Format string

const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
)

// Plot es lo que el renderer recibe: la serie calculada y, aparte, el umbral MIC.
type Plot struct {
	Title       string
	SeriesLabel string
	XLabel      string
	YLabel      string

	TimePoints     []float64
	Concentrations []float64

	MIC      *float64
	MICLabel string
}

// Renderer dibuja un Plot y devuelve los bytes de la imagen y su content type.
type Renderer interface {
	Render(ctx context.Context, p Plot, format Format) ([]byte, string, error)
}
