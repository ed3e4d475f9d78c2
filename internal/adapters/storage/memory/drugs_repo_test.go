package memory

import (
	"context"
	"errors"
	"testing"

	"pkpd-profile/internal/domain/drugs"
)

func TestDrugRepo_CaseInsensitiveKeys(t *testing.T) {
	repo := NewDrugRepo()
	ctx := context.Background()

	if err := repo.Create(ctx, drugs.Drug{ID: "1", Name: "Gentamicin", Vd: 0.25, HalfLife: 2}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.Create(ctx, drugs.Drug{ID: "2", Name: "GENTAMICIN", Vd: 0.25, HalfLife: 2}); !errors.Is(err, drugs.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}

	d, err := repo.GetByName(ctx, " gentamicin ")
	if err != nil || d.ID != "1" {
		t.Fatalf("expected drug 1, got %+v err=%v", d, err)
	}

	if err := repo.Delete(ctx, "Gentamicin"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.GetByName(ctx, "gentamicin"); !errors.Is(err, drugs.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestDrugRepo_ListSortedByName(t *testing.T) {
	repo := NewDrugRepo()
	ctx := context.Background()

	for i, n := range []string{"vancomycin", "Amikacin", "cefazolin"} {
		_ = repo.Create(ctx, drugs.Drug{ID: string(rune('a' + i)), Name: n, Vd: 1, HalfLife: 1})
	}

	items, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 3 || items[0].Name != "Amikacin" || items[2].Name != "vancomycin" {
		t.Fatalf("unexpected order %+v", items)
	}
}
