package paramsource

import (
	"context"
	"errors"
)

var (
	// ErrNotFound: la fuente no conoce la droga. No es un error del motor;
	// el caller debe cortar antes de calcular.
	ErrNotFound = errors.New("drug not found")
	// ErrParse: la fuente respondió pero no se pudo extraer un parámetro usable.
	ErrParse = errors.New("drug parameters could not be parsed")
	// ErrUpstream: fallo de transporte o de la fuente remota.
	ErrUpstream = errors.New("parameter source upstream error")
)

// Params son los tres campos que el cálculo necesita de una droga.
type Params struct {
	Name     string
	MIC      *float64 // nil = desconocido
	Vd       float64
	HalfLife float64 // horas

	// Origen del dato (catalog, pubchem, ...). Informativo.
	Origin string
	// Stub indica que algún valor es un placeholder y no un dato clínico.
	Stub bool
}

// Source resuelve parámetros farmacocinéticos por nombre de droga.
type Source interface {
	Lookup(ctx context.Context, name string) (Params, error)
}
