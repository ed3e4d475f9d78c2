package pk

import "sort"

// Summary resume una serie contra el umbral MIC.
type Summary struct {
	Peak       float64
	TimeOfPeak float64
	Trough     float64 // valor en el último punto de la grilla
	AUC        float64 // regla del trapecio, concentración·hora

	// Solo con MIC conocido.
	TimeAboveMIC     *float64 // horas
	FractionAboveMIC *float64 // 0..1 sobre la ventana observada
}

// Summarize calcula métricas PK/PD sobre la serie. Los puntos se ordenan por tiempo
// antes de integrar; los cruces con el MIC se interpolan linealmente.
func Summarize(s Series, mic *float64) Summary {
	n := len(s.TimePoints)
	if n == 0 || n != len(s.Concentrations) {
		return Summary{}
	}

	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return s.TimePoints[idx[a]] < s.TimePoints[idx[b]]
	})

	var sum Summary
	first := true
	for _, i := range idx {
		if first || s.Concentrations[i] > sum.Peak {
			sum.Peak = s.Concentrations[i]
			sum.TimeOfPeak = s.TimePoints[i]
			first = false
		}
	}
	sum.Trough = s.Concentrations[idx[n-1]]

	above := 0.0
	for j := 0; j+1 < n; j++ {
		t0, t1 := s.TimePoints[idx[j]], s.TimePoints[idx[j+1]]
		c0, c1 := s.Concentrations[idx[j]], s.Concentrations[idx[j+1]]
		dt := t1 - t0

		sum.AUC += (c0 + c1) / 2 * dt

		if mic != nil {
			above += timeAbove(c0, c1, dt, *mic)
		}
	}

	if mic != nil {
		sum.TimeAboveMIC = &above
		span := s.TimePoints[idx[n-1]] - s.TimePoints[idx[0]]
		frac := 0.0
		if span > 0 {
			frac = above / span
		}
		sum.FractionAboveMIC = &frac
	}

	return sum
}

func timeAbove(c0, c1, dt, mic float64) float64 {
	switch {
	case c0 >= mic && c1 >= mic:
		return dt
	case c0 < mic && c1 < mic:
		return 0
	case c0 >= mic:
		return (c0 - mic) / (c0 - c1) * dt
	default:
		return (c1 - mic) / (c1 - c0) * dt
	}
}
