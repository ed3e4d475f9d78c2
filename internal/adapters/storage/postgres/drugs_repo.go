package postgres

import (
	"context"
	"database/sql"
	"errors"

	"pkpd-profile/internal/domain/drugs"

	"github.com/jackc/pgx/v5/pgconn"
)

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
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		d.ID,
		d.Name,
		drugs.NormalizeName(d.Name),
		toNullFloat(d.MIC),
		d.Vd,
		d.HalfLife,
		d.Notes,
		d.CreatedAt,
		d.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return drugs.ErrAlreadyExists
	}
	return err
}

func (r *DrugsRepo) Update(ctx context.Context, d drugs.Drug) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE drugs
		SET
			mic = $2,
			vd = $3,
			half_life = $4,
			notes = $5,
			updated_at = $6,
			name = $7
		WHERE name_key = $1
	`,
		drugs.NormalizeName(d.Name),
		toNullFloat(d.MIC),
		d.Vd,
		d.HalfLife,
		d.Notes,
		d.UpdatedAt,
		d.Name,
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
		SELECT
			id, name,
			mic, vd, half_life,
			notes, created_at, updated_at
		FROM drugs
		WHERE name_key = $1
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
		SELECT
			id, name,
			mic, vd, half_life,
			notes, created_at, updated_at
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
	res, err := r.db.ExecContext(ctx, `DELETE FROM drugs WHERE name_key = $1`, drugs.NormalizeName(name))
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
	var d drugs.Drug
	var mic sql.NullFloat64
	if err := s.Scan(
		&d.ID,
		&d.Name,
		&mic,
		&d.Vd,
		&d.HalfLife,
		&d.Notes,
		&d.CreatedAt,
		&d.UpdatedAt,
	); err != nil {
		return drugs.Drug{}, err
	}
	if mic.Valid {
		v := mic.Float64
		d.MIC = &v
	}
	return d, nil
}

// mic es NULL cuando no hay breakpoint
func toNullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{Valid: false}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

var _ drugs.Repository = (*DrugsRepo)(nil)
