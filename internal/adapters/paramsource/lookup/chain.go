package lookup

import (
	"context"
	"errors"

	"pkpd-profile/internal/ports/paramsource"
)

// Chain prueba las fuentes en orden. Solo ErrNotFound pasa a la siguiente;
// cualquier otro error corta la cadena.
type Chain []paramsource.Source

func (c Chain) Lookup(ctx context.Context, name string) (paramsource.Params, error) {
	for _, src := range c {
		if src == nil {
			continue
		}
		p, err := src.Lookup(ctx, name)
		if err == nil {
			return p, nil
		}
		if !errors.Is(err, paramsource.ErrNotFound) {
			return paramsource.Params{}, err
		}
	}
	return paramsource.Params{}, paramsource.ErrNotFound
}

var _ paramsource.Source = Chain(nil)
