package drugs

import (
	"context"
	"errors"

	"pkpd-profile/internal/ports/paramsource"
)

const OriginCatalog = "catalog"

// Lookup expone el catálogo como paramsource.Source.
func (s *Service) Lookup(ctx context.Context, name string) (paramsource.Params, error) {
	d, err := s.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrInvalidInput) {
			return paramsource.Params{}, paramsource.ErrNotFound
		}
		return paramsource.Params{}, err
	}

	return paramsource.Params{
		Name:     d.Name,
		MIC:      d.MIC,
		Vd:       d.Vd,
		HalfLife: d.HalfLife,
		Origin:   OriginCatalog,
	}, nil
}
