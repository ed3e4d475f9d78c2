package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type DBDriver string

const (
	DriverMemory   DBDriver = "memory"
	DriverPostgres DBDriver = "postgres"
	DriverSQLite   DBDriver = "sqlite"
)

type Config struct {
	Port string

	DBDriver   DBDriver
	DBDSN      string // postgres
	SQLitePath string // sqlite, p.ej. ./CLSI_breakpoints.db

	EnablePubChem  bool
	PubChemBaseURL string
	PubChemTimeout time.Duration
	LookupCacheTTL time.Duration
}

const DefaultPubChemBaseURL = "https://pubchem.ncbi.nlm.nih.gov"

// Load lee .env (si existe) y luego el entorno. Sin DB_DRIVER explícito se infiere:
// DB_DSN => postgres, SQLITE_PATH => sqlite, si no memory.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		DBDSN:          strings.TrimSpace(os.Getenv("DB_DSN")),
		SQLitePath:     strings.TrimSpace(os.Getenv("SQLITE_PATH")),
		EnablePubChem:  strings.EqualFold(getEnv("ENABLE_PUBCHEM", "true"), "true"),
		PubChemBaseURL: getEnv("PUBCHEM_BASE_URL", DefaultPubChemBaseURL),
	}

	var err error
	if cfg.PubChemTimeout, err = getDuration("PUBCHEM_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.LookupCacheTTL, err = getDuration("LOOKUP_CACHE_TTL", 30*time.Minute); err != nil {
		return nil, err
	}

	switch d := DBDriver(strings.ToLower(strings.TrimSpace(os.Getenv("DB_DRIVER")))); d {
	case "":
		switch {
		case cfg.DBDSN != "":
			cfg.DBDriver = DriverPostgres
		case cfg.SQLitePath != "":
			cfg.DBDriver = DriverSQLite
		default:
			cfg.DBDriver = DriverMemory
		}
	case DriverMemory, DriverPostgres, DriverSQLite:
		cfg.DBDriver = d
	default:
		return nil, fmt.Errorf("DB_DRIVER must be memory|postgres|sqlite, got %q", d)
	}

	if cfg.DBDriver == DriverPostgres && cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required when DB_DRIVER=postgres")
	}
	if cfg.DBDriver == DriverSQLite && cfg.SQLitePath == "" {
		return nil, fmt.Errorf("SQLITE_PATH is required when DB_DRIVER=sqlite")
	}

	if _, err := strconv.Atoi(cfg.Port); err != nil {
		return nil, fmt.Errorf("PORT must be numeric, got %q", cfg.Port)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
