package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"pkpd-profile/internal/domain/drugs"
)

type drugRepo struct {
	mu    sync.RWMutex
	byKey map[string]drugs.Drug
}

func NewDrugRepo() drugs.Repository {
	return &drugRepo{
		byKey: make(map[string]drugs.Drug),
	}
}

func (r *drugRepo) Create(ctx context.Context, d drugs.Drug) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(d.ID) == "" {
		return errors.New("drug id required")
	}
	k := drugs.NormalizeName(d.Name)
	if k == "" {
		return errors.New("drug name required")
	}
	if _, exists := r.byKey[k]; exists {
		return drugs.ErrAlreadyExists
	}
	r.byKey[k] = d
	return nil
}

func (r *drugRepo) Update(ctx context.Context, d drugs.Drug) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := drugs.NormalizeName(d.Name)
	if _, exists := r.byKey[k]; !exists {
		return drugs.ErrNotFound
	}
	r.byKey[k] = d
	return nil
}

func (r *drugRepo) GetByName(ctx context.Context, name string) (drugs.Drug, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.byKey[drugs.NormalizeName(name)]
	if !ok {
		return drugs.Drug{}, drugs.ErrNotFound
	}
	return d, nil
}

func (r *drugRepo) List(ctx context.Context) ([]drugs.Drug, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]drugs.Drug, 0, len(r.byKey))
	for _, d := range r.byKey {
		out = append(out, d)
	}

	// Orden alfabético estable (mismo orden que devuelven los repos SQL)
	sort.Slice(out, func(i, j int) bool {
		return drugs.NormalizeName(out[i].Name) < drugs.NormalizeName(out[j].Name)
	})

	return out, nil
}

func (r *drugRepo) Delete(ctx context.Context, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := drugs.NormalizeName(name)
	if _, ok := r.byKey[k]; !ok {
		return drugs.ErrNotFound
	}
	delete(r.byKey, k)
	return nil
}
