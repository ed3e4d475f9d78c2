package pubchem

import (
	"context"
	"fmt"

	"pkpd-profile/internal/ports/paramsource"
)

const Origin = "pubchem"

// PlaceholderVd es un volumen de distribución fijo (L/kg) que PubChem no provee.
// Es un stub: los Params resultantes salen con Stub=true.
const PlaceholderVd = 0.7

// Source implementa paramsource.Source contra PubChem. Solo obtiene la vida media;
// el MIC queda ausente.
type Source struct {
	client *Client
}

func NewSource(client *Client) *Source {
	return &Source{client: client}
}

func (s *Source) Lookup(ctx context.Context, name string) (paramsource.Params, error) {
	cid, err := s.client.LookupCID(ctx, name)
	if err != nil {
		return paramsource.Params{}, err
	}

	texts, err := s.client.HalfLifeTexts(ctx, cid)
	if err != nil {
		return paramsource.Params{}, err
	}

	hl, ok := ParseHalfLifeHours(texts)
	if !ok {
		return paramsource.Params{}, fmt.Errorf("%w: no half-life value in pubchem cid %d", paramsource.ErrParse, cid)
	}

	return paramsource.Params{
		Name:     name,
		Vd:       PlaceholderVd,
		HalfLife: hl,
		Origin:   Origin,
		Stub:     true,
	}, nil
}

var _ paramsource.Source = (*Source)(nil)
