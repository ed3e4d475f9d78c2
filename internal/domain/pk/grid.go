package pk

import (
	"fmt"
	"math"
)

const (
	DefaultGridHours  = 24.0
	DefaultGridPoints = 100
)

// Linspace genera n puntos equiespaciados en [start, end], ambos incluidos.
// El último punto es exactamente end.
func Linspace(start, end float64, n int) ([]float64, error) {
	if n < 2 {
		return nil, fmt.Errorf("%w: need at least 2 points, got %d", ErrInvalidTimeGrid, n)
	}
	if math.IsNaN(start) || math.IsNaN(end) || math.IsInf(start, 0) || math.IsInf(end, 0) {
		return nil, fmt.Errorf("%w: bounds must be finite", ErrInvalidTimeGrid)
	}
	if start < 0 || end <= start {
		return nil, fmt.Errorf("%w: expected 0 <= start < end, got [%v, %v]", ErrInvalidTimeGrid, start, end)
	}

	step := (end - start) / float64(n-1)
	out := make([]float64, n)
	for i := 0; i < n-1; i++ {
		out[i] = start + float64(i)*step
	}
	out[n-1] = end
	return out, nil
}

// DefaultGrid es la grilla de observación de un día: 0..24h en 100 puntos.
func DefaultGrid() []float64 {
	g, _ := Linspace(0, DefaultGridHours, DefaultGridPoints)
	return g
}
