package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	// Driver SQLite puro Go (registra "sqlite").
	_ "github.com/glebarez/go-sqlite"
)

// Open abre (o crea) el archivo de breakpoints y asegura el schema.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// SQLite serializa escrituras; una sola conexión evita SQLITE_BUSY y
	// mantiene viva la base cuando path es ":memory:".
	db.SetMaxOpenConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite migrate: %w", err)
	}

	return db, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS drugs (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	name_key   TEXT NOT NULL UNIQUE,
	mic        REAL NULL,
	vd         REAL NOT NULL,
	half_life  REAL NOT NULL,
	notes      TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
)`

func Migrate(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schema)
	return err
}
