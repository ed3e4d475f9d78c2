package pk

import (
	"fmt"
	"math"
)

// HoursPerDay es la ventana sobre la que se reparte la frecuencia de dosis.
const HoursPerDay = 24.0

// Regimen describe la pauta de dosificación: dose (mg) repetida frequency veces cada 24h.
type Regimen struct {
	Dose      float64
	Frequency int
}

func (r Regimen) Validate() error {
	return validateRegimen(r.Dose, r.Frequency)
}

// Interval devuelve el intervalo entre dosis en horas (24 / frequency).
// Solo tiene sentido con un Regimen válido.
func (r Regimen) Interval() float64 {
	return HoursPerDay / float64(r.Frequency)
}

// Parameters son los parámetros farmacocinéticos de una droga.
// MIC es opcional: nil cuando la fuente no lo conoce.
type Parameters struct {
	MIC      *float64
	Vd       float64 // volumen de distribución
	HalfLife float64 // horas
}

func (p Parameters) Validate() error {
	if !positiveFinite(p.Vd) {
		return fmt.Errorf("%w: volume of distribution must be positive, got %v", ErrInvalidPharmacokinetics, p.Vd)
	}
	if !positiveFinite(p.HalfLife) {
		return fmt.Errorf("%w: half-life must be positive, got %v", ErrInvalidPharmacokinetics, p.HalfLife)
	}
	if p.MIC != nil && (*p.MIC < 0 || math.IsNaN(*p.MIC) || math.IsInf(*p.MIC, 0)) {
		return fmt.Errorf("%w: mic must be non-negative, got %v", ErrInvalidPharmacokinetics, *p.MIC)
	}
	return nil
}

// Ke deriva la constante de eliminación desde la vida media.
func (p Parameters) Ke() (float64, error) {
	return EliminationRateConstant(p.HalfLife)
}

// Series es el resultado de una simulación: un valor por punto de la grilla, mismo orden.
type Series struct {
	TimePoints     []float64
	Concentrations []float64
}

func validateRegimen(dose float64, frequency int) error {
	if frequency < 1 {
		return fmt.Errorf("%w: frequency must be >= 1, got %d", ErrInvalidRegimen, frequency)
	}
	if !positiveFinite(dose) {
		return fmt.Errorf("%w: dose must be positive, got %v", ErrInvalidRegimen, dose)
	}
	return nil
}

func positiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}
