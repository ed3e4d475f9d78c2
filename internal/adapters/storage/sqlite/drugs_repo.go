package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"pkpd-profile/internal/domain/drugs"
)

// Los timestamps se guardan como texto RFC3339Nano para no depender
// de la conversión de tipos del driver.
const timeLayout = time.RFC3339Nano

type DrugsRepo struct {
	db *sql.DB
}

func NewDrugsRepo(db *sql.DB) *DrugsRepo {
	return &DrugsRepo{db: db}
}

func (r *DrugsRepo) Create(ctx context.Context, d drugs.Drug) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO drugs (
			id, name, name_key,
			mic, vd, half_life,
			notes, created_at, updated_at
		) VALUES (?,?,?,?,?,?,?,?,?)
	`,
		d.ID,
		d.Name,
		drugs.NormalizeName(d.Name),
		toNullFloat(d.MIC),
		d.Vd,
		d.HalfLife,
		d.Notes,
		d.CreatedAt.UTC().Format(timeLayout),
		d.UpdatedAt.UTC().Format(timeLayout),
	)
	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return drugs.ErrAlreadyExists
	}
	return err
}

func (r *DrugsRepo) Update(ctx context.Context, d drugs.Drug) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE drugs
		SET name = ?, mic = ?, vd = ?, half_life = ?, notes = ?, updated_at = ?
		WHERE name_key = ?
	`,
		d.Name,
		toNullFloat(d.MIC),
		d.Vd,
		d.HalfLife,
		d.Notes,
		d.UpdatedAt.UTC().Format(timeLayout),
		drugs.NormalizeName(d.Name),
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return drugs.ErrNotFound
	}
	return nil
}

func (r *DrugsRepo) GetByName(ctx context.Context, name string) (drugs.Drug, error) {
	key := drugs.NormalizeName(name)
	if key == "" {
		return drugs.Drug{}, drugs.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, mic, vd, half_life, notes, created_at, updated_at
		FROM drugs
		WHERE name_key = ?
	`, key)

	d, err := scanDrug(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return drugs.Drug{}, drugs.ErrNotFound
		}
		return drugs.Drug{}, err
	}
	return d, nil
}

func (r *DrugsRepo) List(ctx context.Context) ([]drugs.Drug, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, mic, vd, half_life, notes, created_at, updated_at
		FROM drugs
		ORDER BY name_key ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]drugs.Drug, 0)
	for rows.Next() {
		d, err := scanDrug(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *DrugsRepo) Delete(ctx context.Context, name string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM drugs WHERE name_key = ?`, drugs.NormalizeName(name))
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return drugs.ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDrug(s scanner) (drugs.Drug, error) {
	var (
		d                drugs.Drug
		mic              sql.NullFloat64
		created, updated string
	)
	if err := s.Scan(&d.ID, &d.Name, &mic, &d.Vd, &d.HalfLife, &d.Notes, &created, &updated); err != nil {
		return drugs.Drug{}, err
	}
	if mic.Valid {
		v := mic.Float64
		d.MIC = &v
	}

	var err error
	if d.CreatedAt, err = time.Parse(timeLayout, created); err != nil {
		return drugs.Drug{}, err
	}
	if d.UpdatedAt, err = time.Parse(timeLayout, updated); err != nil {
		return drugs.Drug{}, err
	}
	return d, nil
}

func toNullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{Valid: false}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

var _ drugs.Repository = (*DrugsRepo)(nil)
