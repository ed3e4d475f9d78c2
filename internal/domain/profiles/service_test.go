package profiles

import (
	"context"
	"math"
	"testing"

	"pkpd-profile/internal/domain/pk"
	"pkpd-profile/internal/ports/paramsource"
	"pkpd-profile/internal/ports/render"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func fptr(v float64) *float64 { return &v }

func newTestService(t *testing.T) (*Service, *MockSource, *MockSource, *MockRenderer) {
	t.Helper()
	ctrl := gomock.NewController(t)

	catalog := NewMockSource(ctrl)
	remote := NewMockSource(ctrl)
	renderer := NewMockRenderer(ctrl)

	svc := NewService(Options{
		Sources:       map[string]paramsource.Source{"catalog": catalog, "pubchem": remote},
		DefaultSource: "catalog",
		Renderer:      renderer,
	})
	svc.newID = func() string { return "profile-1" }
	return svc, catalog, remote, renderer
}

func TestCalculate_ComputesSeriesAndSummary(t *testing.T) {
	svc, catalog, _, _ := newTestService(t)

	catalog.EXPECT().Lookup(gomock.Any(), "Vancomycin").Return(paramsource.Params{
		Name: "Vancomycin", MIC: fptr(2), Vd: 0.5, HalfLife: 1, Origin: "catalog",
	}, nil)

	p, err := svc.Calculate(context.Background(), Request{
		Drug: " Vancomycin ", Dose: 500, Frequency: 4, Organism: "S. aureus",
	})
	require.NoError(t, err)

	assert.Equal(t, "profile-1", p.ID)
	assert.Equal(t, "S. aureus", p.Organism)
	assert.InDelta(t, math.Ln2, p.Ke, 1e-12)
	require.Len(t, p.Series.TimePoints, pk.DefaultGridPoints)
	assert.Equal(t, 0.0, p.Series.Concentrations[0])
	assert.Equal(t, 24.0, p.Series.TimePoints[pk.DefaultGridPoints-1])
	require.NotNil(t, p.Summary.TimeAboveMIC)
	assert.Greater(t, *p.Summary.TimeAboveMIC, 0.0)
	assert.Nil(t, p.Plot)
}

func TestCalculate_RendersWithMICLine(t *testing.T) {
	svc, catalog, _, renderer := newTestService(t)

	catalog.EXPECT().Lookup(gomock.Any(), "Cefazolin").Return(paramsource.Params{
		Name: "Cefazolin", MIC: fptr(2), Vd: 10, HalfLife: 2,
	}, nil)
	renderer.EXPECT().
		Render(gomock.Any(), gomock.Any(), render.FormatPNG).
		DoAndReturn(func(_ context.Context, pl render.Plot, _ render.Format) ([]byte, string, error) {
			assert.Equal(t, "PK/PD Profile for Cefazolin (1000 mg every 8h)", pl.Title)
			assert.Equal(t, "Cefazolin Concentration", pl.SeriesLabel)
			assert.Equal(t, "MIC (2 μg/mL)", pl.MICLabel)
			require.NotNil(t, pl.MIC)
			assert.Len(t, pl.TimePoints, 50)
			return []byte("png"), "image/png", nil
		})

	p, err := svc.Calculate(context.Background(), Request{
		Drug: "Cefazolin", Dose: 1000, Frequency: 3, Points: 50, Render: render.FormatPNG,
	})
	require.NoError(t, err)
	assert.Equal(t, []byte("png"), p.Plot)
	assert.Equal(t, "image/png", p.PlotContentType)
}

func TestCalculate_UnknownDrugNeverComputes(t *testing.T) {
	svc, catalog, _, _ := newTestService(t)
	catalog.EXPECT().Lookup(gomock.Any(), "nope").Return(paramsource.Params{}, paramsource.ErrNotFound)

	_, err := svc.Calculate(context.Background(), Request{Drug: "nope", Dose: 1, Frequency: 1, Render: render.FormatPNG})
	assert.ErrorIs(t, err, ErrDrugNotFound)
}

func TestCalculate_InvalidRegimenSkipsLookup(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	_, err := svc.Calculate(context.Background(), Request{Drug: "x", Dose: 500, Frequency: 0})
	assert.ErrorIs(t, err, pk.ErrInvalidRegimen)

	_, err = svc.Calculate(context.Background(), Request{Drug: "x", Dose: -1, Frequency: 2})
	assert.ErrorIs(t, err, pk.ErrInvalidRegimen)

	_, err = svc.Calculate(context.Background(), Request{Drug: "", Dose: 1, Frequency: 2})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Calculate(context.Background(), Request{Drug: "x", Dose: 1, Frequency: 2, Points: 1})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Calculate(context.Background(), Request{Drug: "x", Dose: 1, Frequency: MaxFrequency + 1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCalculate_InvalidPharmacokineticsFromSource(t *testing.T) {
	svc, catalog, _, _ := newTestService(t)
	catalog.EXPECT().Lookup(gomock.Any(), "broken").Return(paramsource.Params{Vd: 1, HalfLife: 0}, nil)

	_, err := svc.Calculate(context.Background(), Request{Drug: "broken", Dose: 1, Frequency: 2})
	assert.ErrorIs(t, err, pk.ErrInvalidPharmacokinetics)
}

func TestCalculate_SelectsRemoteSourceAndPropagatesParseErrors(t *testing.T) {
	svc, _, remote, _ := newTestService(t)

	remote.EXPECT().Lookup(gomock.Any(), "linezolid").Return(paramsource.Params{
		Vd: 0.7, HalfLife: 5, Origin: "pubchem", Stub: true,
	}, nil)
	p, err := svc.Calculate(context.Background(), Request{Drug: "linezolid", Dose: 600, Frequency: 2, Source: "PubChem"})
	require.NoError(t, err)
	assert.True(t, p.Params.Stub)
	assert.Equal(t, "linezolid", p.Drug)
	assert.Nil(t, p.Summary.TimeAboveMIC)

	remote.EXPECT().Lookup(gomock.Any(), "weird").Return(paramsource.Params{}, paramsource.ErrParse)
	_, err = svc.Calculate(context.Background(), Request{Drug: "weird", Dose: 1, Frequency: 1, Source: "pubchem"})
	assert.ErrorIs(t, err, paramsource.ErrParse)

	_, err = svc.Calculate(context.Background(), Request{Drug: "x", Dose: 1, Frequency: 1, Source: "chembl"})
	assert.ErrorIs(t, err, ErrUnknownSource)
}

func TestSourceNames_DefaultFirst(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	assert.Equal(t, []string{"catalog", "pubchem"}, svc.SourceNames())
}
