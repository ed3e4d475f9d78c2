package profiles

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"pkpd-profile/internal/domain/pk"
	"pkpd-profile/internal/platform/logger"
	"pkpd-profile/internal/ports/paramsource"
	"pkpd-profile/internal/ports/render"

	"github.com/google/uuid"
)

//go:generate mockgen -destination mock_source_test.go -package profiles pkpd-profile/internal/ports/paramsource Source
//go:generate mockgen -destination mock_renderer_test.go -package profiles pkpd-profile/internal/ports/render Renderer

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrDrugNotFound  = errors.New("drug not found")
	ErrUnknownSource = errors.New("unknown parameter source")
	ErrNoRenderer    = errors.New("no renderer configured")
)

const (
	MaxHours     = 24 * 14
	MaxPoints    = 2000
	MaxFrequency = 24 * 60 // una dosis por minuto
)

type Options struct {
	// Fuentes por nombre ("catalog", "pubchem", ...). DefaultSource debe existir.
	Sources       map[string]paramsource.Source
	DefaultSource string

	Renderer render.Renderer // opcional
	Logger   logger.Logger
}

type Service struct {
	sources       map[string]paramsource.Source
	defaultSource string
	renderer      render.Renderer
	log           logger.Logger
	newID         func() string
}

func NewService(opts Options) *Service {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	sources := make(map[string]paramsource.Source, len(opts.Sources))
	for k, v := range opts.Sources {
		if v != nil {
			sources[strings.ToLower(strings.TrimSpace(k))] = v
		}
	}

	return &Service{
		sources:       sources,
		defaultSource: strings.ToLower(strings.TrimSpace(opts.DefaultSource)),
		renderer:      opts.Renderer,
		log:           log.With(map[string]any{"component": "profiles"}),
		newID:         uuid.NewString,
	}
}

// SourceNames lista las fuentes configuradas, la default primero.
func (s *Service) SourceNames() []string {
	rest := make([]string, 0, len(s.sources))
	for k := range s.sources {
		if k != s.defaultSource {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)

	if _, ok := s.sources[s.defaultSource]; ok {
		return append([]string{s.defaultSource}, rest...)
	}
	return rest
}

// Calculate resuelve parámetros, deriva ke, arma la grilla y corre el motor.
// Errores de regimen se reportan antes de consultar la fuente.
func (s *Service) Calculate(ctx context.Context, req Request) (Profile, error) {
	drug := strings.TrimSpace(req.Drug)
	if drug == "" {
		return Profile{}, fmt.Errorf("%w: drug is required", ErrInvalidInput)
	}

	reg := pk.Regimen{Dose: req.Dose, Frequency: req.Frequency}
	if err := reg.Validate(); err != nil {
		return Profile{}, err
	}
	if reg.Frequency > MaxFrequency {
		return Profile{}, fmt.Errorf("%w: frequency must be <= %d", ErrInvalidInput, MaxFrequency)
	}

	grid, err := buildGrid(req.Hours, req.Points)
	if err != nil {
		return Profile{}, err
	}

	src, srcName, err := s.source(req.Source)
	if err != nil {
		return Profile{}, err
	}

	params, err := src.Lookup(ctx, drug)
	if err != nil {
		if errors.Is(err, paramsource.ErrNotFound) {
			return Profile{}, fmt.Errorf("%w: %s", ErrDrugNotFound, drug)
		}
		s.log.Warn("parameter lookup failed", map[string]any{"drug": drug, "source": srcName, "err": err})
		return Profile{}, err
	}
	if params.Name == "" {
		params.Name = drug
	}

	pkParams := pk.Parameters{MIC: params.MIC, Vd: params.Vd, HalfLife: params.HalfLife}
	if err := pkParams.Validate(); err != nil {
		return Profile{}, err
	}
	ke, err := pkParams.Ke()
	if err != nil {
		return Profile{}, err
	}

	series, err := pk.Simulate(reg, pkParams, grid)
	if err != nil {
		return Profile{}, err
	}

	p := Profile{
		ID:            s.newID(),
		Drug:          params.Name,
		Regimen:       reg,
		Params:        params,
		Ke:            ke,
		Organism:      strings.TrimSpace(req.Organism),
		Weight:        req.Weight,
		RenalFunction: strings.TrimSpace(req.RenalFunction),
		Series:        series,
		Summary:       pk.Summarize(series, params.MIC),
	}

	if req.Render != "" {
		if s.renderer == nil {
			return Profile{}, ErrNoRenderer
		}
		img, ct, err := s.renderer.Render(ctx, PlotFor(p), req.Render)
		if err != nil {
			return Profile{}, fmt.Errorf("render: %w", err)
		}
		p.Plot = img
		p.PlotContentType = ct
	}

	s.log.Info("profile computed", map[string]any{
		"profile_id": p.ID,
		"drug":       p.Drug,
		"source":     srcName,
		"stub":       params.Stub,
		"points":     len(grid),
		"peak":       p.Summary.Peak,
	})

	return p, nil
}

// PlotFor arma lo que recibe el renderer: la serie y, aparte, el MIC.
func PlotFor(p Profile) render.Plot {
	plot := render.Plot{
		Title: fmt.Sprintf("PK/PD Profile for %s (%s mg every %sh)",
			p.Drug, formatNumber(p.Regimen.Dose), formatNumber(p.Regimen.Interval())),
		SeriesLabel:    p.Drug + " Concentration",
		XLabel:         "Time (hours)",
		YLabel:         "Concentration (μg/mL)",
		TimePoints:     p.Series.TimePoints,
		Concentrations: p.Series.Concentrations,
	}
	if p.Params.MIC != nil {
		mic := *p.Params.MIC
		plot.MIC = &mic
		plot.MICLabel = fmt.Sprintf("MIC (%s μg/mL)", formatNumber(mic))
	}
	return plot
}

func (s *Service) source(name string) (paramsource.Source, string, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = s.defaultSource
	}
	src, ok := s.sources[name]
	if !ok {
		return nil, "", fmt.Errorf("%w: %q", ErrUnknownSource, name)
	}
	return src, name, nil
}

func buildGrid(hours float64, points int) ([]float64, error) {
	if hours == 0 {
		hours = pk.DefaultGridHours
	}
	if points == 0 {
		points = pk.DefaultGridPoints
	}
	if !(hours > 0) || hours > MaxHours || math.IsInf(hours, 0) {
		return nil, fmt.Errorf("%w: hours must be in (0, %d]", ErrInvalidInput, MaxHours)
	}
	if points < 2 || points > MaxPoints {
		return nil, fmt.Errorf("%w: points must be in [2, %d]", ErrInvalidInput, MaxPoints)
	}
	return pk.Linspace(0, hours, points)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}
