package pk

import (
	"fmt"
	"math"
)

// boundaryEpsilon es la tolerancia relativa (en intervalos) para decidir si k·T < t.
// Un t que cae sobre un múltiplo exacto del intervalo no cuenta la dosis de ese instante.
const boundaryEpsilon = 1e-9

// EliminationRateConstant devuelve ke = ln(2) / halfLife.
func EliminationRateConstant(halfLife float64) (float64, error) {
	if !positiveFinite(halfLife) {
		return 0, fmt.Errorf("%w: half-life must be positive, got %v", ErrInvalidPharmacokinetics, halfLife)
	}
	return math.Ln2 / halfLife, nil
}

// ComputeConcentration calcula la concentración plasmática en cada punto de timePoints
// superponiendo el decaimiento exponencial de cada dosis administrada antes de t:
//
//	C(t) = Σ (dose/vd)·exp(-ke·(t - k·T)),  k = 0, 1, … con k·T < t,  T = 24/frequency
//
// Los puntos se evalúan de forma independiente; no necesitan estar ordenados.
func ComputeConcentration(dose float64, frequency int, vd, ke float64, timePoints []float64) ([]float64, error) {
	if err := validateRegimen(dose, frequency); err != nil {
		return nil, err
	}
	if !positiveFinite(vd) {
		return nil, fmt.Errorf("%w: volume of distribution must be positive, got %v", ErrInvalidPharmacokinetics, vd)
	}
	if !positiveFinite(ke) {
		return nil, fmt.Errorf("%w: elimination rate constant must be positive, got %v", ErrInvalidPharmacokinetics, ke)
	}

	maxT := 0.0
	for i, t := range timePoints {
		if math.IsNaN(t) || math.IsInf(t, 0) || t < 0 {
			return nil, fmt.Errorf("%w: time point %d must be a finite value >= 0, got %v", ErrInvalidTimeGrid, i, t)
		}
		if t > maxT {
			maxT = t
		}
	}

	interval := HoursPerDay / float64(frequency)
	maxDoses := dosesBefore(maxT, interval)
	c0 := dose / vd

	out := make([]float64, len(timePoints))
	for i, t := range timePoints {
		n := dosesBefore(t, interval)
		if n > maxDoses {
			n = maxDoses
		}

		total := 0.0
		for k := 0; k < n; k++ {
			total += c0 * math.Exp(-ke*(t-float64(k)*interval))
		}
		out[i] = total
	}

	return out, nil
}

// Simulate aplica ComputeConcentration a un Regimen + Parameters ya validados.
func Simulate(reg Regimen, params Parameters, timePoints []float64) (Series, error) {
	if err := reg.Validate(); err != nil {
		return Series{}, err
	}
	if err := params.Validate(); err != nil {
		return Series{}, err
	}
	ke, err := params.Ke()
	if err != nil {
		return Series{}, err
	}

	conc, err := ComputeConcentration(reg.Dose, reg.Frequency, params.Vd, ke, timePoints)
	if err != nil {
		return Series{}, err
	}

	tp := make([]float64, len(timePoints))
	copy(tp, timePoints)
	return Series{TimePoints: tp, Concentrations: conc}, nil
}

// dosesBefore cuenta las dosis con k·interval < t usando floor(t/T - ε) + 1.
func dosesBefore(t, interval float64) int {
	if t <= 0 {
		return 0
	}
	n := int(math.Floor(t/interval-boundaryEpsilon)) + 1
	if n < 1 {
		// la dosis de t=0 cuenta siempre que t > 0
		return 1
	}
	return n
}
