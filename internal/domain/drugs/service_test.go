package drugs

import (
	"context"
	"errors"
	"testing"
	"time"

	"pkpd-profile/internal/ports/paramsource"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	byName map[string]Drug
}

func newTestRepo() *testRepo {
	return &testRepo{byName: map[string]Drug{}}
}

func (r *testRepo) Create(ctx context.Context, d Drug) error {
	k := NormalizeName(d.Name)
	if _, ok := r.byName[k]; ok {
		return ErrAlreadyExists
	}
	r.byName[k] = d
	return nil
}

func (r *testRepo) Update(ctx context.Context, d Drug) error {
	k := NormalizeName(d.Name)
	if _, ok := r.byName[k]; !ok {
		return ErrNotFound
	}
	r.byName[k] = d
	return nil
}

func (r *testRepo) GetByName(ctx context.Context, name string) (Drug, error) {
	d, ok := r.byName[NormalizeName(name)]
	if !ok {
		return Drug{}, ErrNotFound
	}
	return d, nil
}

func (r *testRepo) List(ctx context.Context) ([]Drug, error) {
	out := make([]Drug, 0, len(r.byName))
	for _, d := range r.byName {
		out = append(out, d)
	}
	return out, nil
}

func (r *testRepo) Delete(ctx context.Context, name string) error {
	k := NormalizeName(name)
	if _, ok := r.byName[k]; !ok {
		return ErrNotFound
	}
	delete(r.byName, k)
	return nil
}

// -------------------------
// Tests
// -------------------------

func ptr(v float64) *float64 { return &v }

func TestService_Create_TrimsAndStamps(t *testing.T) {
	svc := NewService(newTestRepo())
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	d, err := svc.Create(context.Background(), UpsertInput{
		Name:     "  Vancomycin ",
		MIC:      ptr(2),
		Vd:       0.7,
		HalfLife: 6,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if d.ID == "" {
		t.Fatalf("expected generated id")
	}
	if d.Name != "Vancomycin" {
		t.Fatalf("expected trimmed name, got %q", d.Name)
	}
	if d.CreatedAt != now || d.UpdatedAt != now {
		t.Fatalf("expected CreatedAt/UpdatedAt to be now")
	}
}

func TestService_Create_RejectsInvalidParameters(t *testing.T) {
	svc := NewService(newTestRepo())

	cases := []UpsertInput{
		{Name: "", Vd: 1, HalfLife: 1},
		{Name: "x", Vd: 0, HalfLife: 1},
		{Name: "x", Vd: 1, HalfLife: 0},
		{Name: "x", Vd: 1, HalfLife: -3},
		{Name: "x", Vd: 1, HalfLife: 1, MIC: ptr(-1)},
	}
	for i, in := range cases {
		if _, err := svc.Create(context.Background(), in); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("case %d: expected ErrInvalidInput, got %v", i, err)
		}
	}
}

func TestService_Upsert_CreatesThenUpdates(t *testing.T) {
	svc := NewService(newTestRepo())
	ctx := context.Background()

	d, created, err := svc.Upsert(ctx, UpsertInput{Name: "Cefazolin", Vd: 0.2, HalfLife: 1.8})
	if err != nil || !created {
		t.Fatalf("expected created, got created=%v err=%v", created, err)
	}

	later := d.CreatedAt.Add(time.Hour)
	svc.now = func() time.Time { return later }

	u, created, err := svc.Upsert(ctx, UpsertInput{Name: "CEFAZOLIN", MIC: ptr(1), Vd: 0.25, HalfLife: 2})
	if err != nil || created {
		t.Fatalf("expected update, got created=%v err=%v", created, err)
	}
	if u.ID != d.ID {
		t.Fatalf("expected same id after update")
	}
	if u.Name != "CEFAZOLIN" {
		t.Fatalf("expected display name rewritten, got %q", u.Name)
	}
	if u.Vd != 0.25 || u.HalfLife != 2 || u.MIC == nil || *u.MIC != 1 {
		t.Fatalf("unexpected updated drug %+v", u)
	}
	if !u.UpdatedAt.Equal(later) {
		t.Fatalf("expected UpdatedAt bumped")
	}
}

func TestService_Lookup_MapsNotFound(t *testing.T) {
	svc := NewService(newTestRepo())
	ctx := context.Background()

	if _, err := svc.Lookup(ctx, "unknown"); !errors.Is(err, paramsource.ErrNotFound) {
		t.Fatalf("expected paramsource.ErrNotFound, got %v", err)
	}

	if _, err := svc.Create(ctx, UpsertInput{Name: "Amoxicillin", MIC: ptr(0.5), Vd: 0.3, HalfLife: 1}); err != nil {
		t.Fatalf("create: %v", err)
	}
	p, err := svc.Lookup(ctx, "amoxicillin")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if p.Origin != OriginCatalog || p.Stub {
		t.Fatalf("unexpected origin %+v", p)
	}
	if p.MIC == nil || *p.MIC != 0.5 || p.Vd != 0.3 || p.HalfLife != 1 {
		t.Fatalf("unexpected params %+v", p)
	}
}

func TestService_Names(t *testing.T) {
	svc := NewService(newTestRepo())
	ctx := context.Background()

	if _, err := svc.Create(ctx, UpsertInput{Name: " Gentamicin ", Vd: 0.25, HalfLife: 2}); err != nil {
		t.Fatalf("create: %v", err)
	}

	names, err := svc.Names(ctx)
	if err != nil {
		t.Fatalf("names: %v", err)
	}
	if len(names) != 1 || names[0] != "Gentamicin" {
		t.Fatalf("unexpected names %v", names)
	}
}
