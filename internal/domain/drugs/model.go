package drugs

import (
	"strings"
	"time"
)

// Drug es una fila del catálogo local de breakpoints (drugs: name, mic, vd, half_life).
type Drug struct {
	ID   string
	Name string

	MIC      *float64 // μg/mL, nil si no hay breakpoint cargado
	Vd       float64  // L
	HalfLife float64  // horas

	Notes string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NormalizeName es la clave de búsqueda: los nombres no distinguen mayúsculas.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
