package app

import (
	"context"
	"database/sql"
	"fmt"

	"pkpd-profile/internal/adapters/paramsource/lookup"
	"pkpd-profile/internal/adapters/paramsource/pubchem"
	"pkpd-profile/internal/adapters/render/plot"
	mem "pkpd-profile/internal/adapters/storage/memory"
	pg "pkpd-profile/internal/adapters/storage/postgres"
	sqlitestore "pkpd-profile/internal/adapters/storage/sqlite"
	"pkpd-profile/internal/domain/drugs"
	"pkpd-profile/internal/domain/profiles"
	"pkpd-profile/internal/platform/config"
	"pkpd-profile/internal/platform/httpclient"
	"pkpd-profile/internal/platform/logger"
	"pkpd-profile/internal/ports/paramsource"
)

// SourceAuto prueba el catálogo y cae a PubChem si la droga no está.
const SourceAuto = "auto"

// App agrupa las dependencias compartidas por cmd/api y cmd/pkpdctl.
type App struct {
	DB       *sql.DB // nil con DB_DRIVER=memory
	Drugs    *drugs.Service
	Profiles *profiles.Service
	Log      logger.Logger
}

func New(ctx context.Context, cfg *config.Config, log logger.Logger) (*App, error) {
	if log == nil {
		log = logger.Nop()
	}

	db, repo, err := openCatalog(ctx, cfg)
	if err != nil {
		return nil, err
	}
	log.Info("catalog ready", map[string]any{"driver": string(cfg.DBDriver)})

	drugsSvc := drugs.NewService(repo)

	sources := map[string]paramsource.Source{
		drugs.OriginCatalog: drugsSvc,
	}
	if cfg.EnablePubChem {
		remote, err := newPubChem(cfg)
		if err != nil {
			if db != nil {
				_ = db.Close()
			}
			return nil, err
		}
		sources[pubchem.Origin] = remote
		sources[SourceAuto] = lookup.Chain{drugsSvc, remote}
		log.Info("pubchem source enabled", map[string]any{
			"base_url":  cfg.PubChemBaseURL,
			"cache_ttl": cfg.LookupCacheTTL.String(),
		})
	}

	profilesSvc := profiles.NewService(profiles.Options{
		Sources:       sources,
		DefaultSource: drugs.OriginCatalog,
		Renderer:      plot.New(plot.Options{}),
		Logger:        log,
	})

	return &App{
		DB:       db,
		Drugs:    drugsSvc,
		Profiles: profilesSvc,
		Log:      log,
	}, nil
}

// Ping verifica la base si hay una configurada.
func (a *App) Ping(ctx context.Context) error {
	if a.DB == nil {
		return nil
	}
	return a.DB.PingContext(ctx)
}

func (a *App) Close() error {
	if a.DB == nil {
		return nil
	}
	return a.DB.Close()
}

func openCatalog(ctx context.Context, cfg *config.Config) (*sql.DB, drugs.Repository, error) {
	switch cfg.DBDriver {
	case config.DriverPostgres:
		db, err := pg.Open(cfg.DBDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("open postgres: %w", err)
		}
		if err := pg.Migrate(ctx, db); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("postgres migrate: %w", err)
		}
		return db, pg.NewDrugsRepo(db), nil

	case config.DriverSQLite:
		db, err := sqlitestore.Open(cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite: %w", err)
		}
		return db, sqlitestore.NewDrugsRepo(db), nil

	default:
		return nil, mem.NewDrugRepo(), nil
	}
}

func newPubChem(cfg *config.Config) (paramsource.Source, error) {
	hc, err := httpclient.New(httpclient.Options{
		BaseURL: cfg.PubChemBaseURL,
		Timeout: cfg.PubChemTimeout,
		Retries: 2,
	})
	if err != nil {
		return nil, fmt.Errorf("pubchem client: %w", err)
	}
	src := pubchem.NewSource(pubchem.NewClient(hc))
	return lookup.NewCache(src, cfg.LookupCacheTTL), nil
}
