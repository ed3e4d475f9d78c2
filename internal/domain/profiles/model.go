package profiles

import (
	"pkpd-profile/internal/domain/pk"
	"pkpd-profile/internal/ports/paramsource"
	"pkpd-profile/internal/ports/render"
)

// Request es una solicitud de cálculo. Organism, Weight y RenalFunction viajan
// con la solicitud y se devuelven tal cual; el modelo de un compartimento no los usa.
type Request struct {
	Drug      string
	Dose      float64 // mg
	Frequency int     // dosis cada 24h

	Organism      string
	Weight        float64
	RenalFunction string

	Source string // "" = fuente por defecto

	Hours  float64 // ventana observada; 0 = 24h
	Points int     // 0 = 100

	Render render.Format // "" = sin imagen
}

// Profile es el resultado de un cálculo. No se persiste.
type Profile struct {
	ID string

	Drug    string
	Regimen pk.Regimen
	Params  paramsource.Params
	Ke      float64

	Organism      string
	Weight        float64
	RenalFunction string

	Series  pk.Series
	Summary pk.Summary

	Plot            []byte
	PlotContentType string
}
