package drugs

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type UpsertInput struct {
	Name     string
	MIC      *float64
	Vd       float64
	HalfLife float64
	Notes    string
}

// Validate aplica las mismas reglas que Create y Upsert.
func (in UpsertInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if !(in.Vd > 0) || math.IsInf(in.Vd, 0) {
		return fmt.Errorf("%w: vd must be positive", ErrInvalidInput)
	}
	if !(in.HalfLife > 0) || math.IsInf(in.HalfLife, 0) {
		return fmt.Errorf("%w: half_life must be positive", ErrInvalidInput)
	}
	if in.MIC != nil && (!(*in.MIC >= 0) || math.IsInf(*in.MIC, 0)) {
		return fmt.Errorf("%w: mic must be >= 0", ErrInvalidInput)
	}
	return nil
}

func (s *Service) Create(ctx context.Context, in UpsertInput) (Drug, error) {
	if err := in.Validate(); err != nil {
		return Drug{}, err
	}

	now := s.now()
	d := Drug{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(in.Name),
		MIC:       in.MIC,
		Vd:        in.Vd,
		HalfLife:  in.HalfLife,
		Notes:     strings.TrimSpace(in.Notes),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, d); err != nil {
		return Drug{}, err
	}
	return d, nil
}

// Upsert crea o reemplaza los parámetros de una droga. created=true si no existía.
func (s *Service) Upsert(ctx context.Context, in UpsertInput) (Drug, bool, error) {
	if err := in.Validate(); err != nil {
		return Drug{}, false, err
	}

	current, err := s.repo.GetByName(ctx, in.Name)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			return Drug{}, false, err
		}
		d, err := s.Create(ctx, in)
		return d, err == nil, err
	}

	current.Name = strings.TrimSpace(in.Name)
	current.MIC = in.MIC
	current.Vd = in.Vd
	current.HalfLife = in.HalfLife
	current.Notes = strings.TrimSpace(in.Notes)
	current.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, current); err != nil {
		return Drug{}, false, err
	}
	return current, false, nil
}

func (s *Service) GetByName(ctx context.Context, name string) (Drug, error) {
	if strings.TrimSpace(name) == "" {
		return Drug{}, ErrInvalidInput
	}
	return s.repo.GetByName(ctx, name)
}

func (s *Service) List(ctx context.Context) ([]Drug, error) {
	return s.repo.List(ctx)
}

func (s *Service) Delete(ctx context.Context, name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrInvalidInput
	}
	return s.repo.Delete(ctx, name)
}

// Names devuelve los nombres del catálogo (en el orden del repo), para autocompletar.
func (s *Service) Names(ctx context.Context) ([]string, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(list))
	for _, d := range list {
		out = append(out, d.Name)
	}
	return out, nil
}
