package router

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	_ "pkpd-profile/docs"

	"pkpd-profile/internal/adapters/render/plot"
	mem "pkpd-profile/internal/adapters/storage/memory"
	"pkpd-profile/internal/domain/drugs"
	"pkpd-profile/internal/domain/profiles"
	"pkpd-profile/internal/middleware"
	"pkpd-profile/internal/platform/logger"
	"pkpd-profile/internal/ports/paramsource"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

const maxBodyBytes = 1 << 20

type Options struct {
	Logger logger.Logger // puede ser nil

	// Opcionales: si no vienen, catálogo in-memory y solo fuente "catalog"
	// (modo dev / tests).
	Drugs    *drugs.Service
	Profiles *profiles.Service

	// Ready se usa en /readyz (p.ej. ping a la DB). nil = siempre listo.
	Ready func(ctx context.Context) error
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLog(log))
	r.Use(chimw.Recoverer)
	r.Use(middleware.BodyLimit(maxBodyBytes))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, req *http.Request) {
		if opts.Ready != nil {
			ctx, cancel := context.WithTimeout(req.Context(), 2*time.Second)
			defer cancel()
			if err := opts.Ready(ctx); err != nil {
				log.Warn("readiness check failed", map[string]any{"err": err})
				writeStatus(w, http.StatusServiceUnavailable, "unavailable")
				return
			}
		}
		writeStatus(w, http.StatusOK, "ready")
	})

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	drugsSvc := opts.Drugs
	if drugsSvc == nil {
		drugsSvc = drugs.NewService(mem.NewDrugRepo())
	}

	profilesSvc := opts.Profiles
	if profilesSvc == nil {
		profilesSvc = profiles.NewService(profiles.Options{
			Sources:       map[string]paramsource.Source{drugs.OriginCatalog: drugsSvc},
			DefaultSource: drugs.OriginCatalog,
			Renderer:      plot.New(plot.Options{}),
			Logger:        log,
		})
	}

	// Rutas por módulo
	drugs.RegisterRoutes(r, drugsSvc)
	profiles.RegisterRoutes(r, profilesSvc, profiles.RouteOptions{
		DrugNames: func(req *http.Request) ([]string, error) {
			return drugsSvc.Names(req.Context())
		},
	})

	return r
}

func writeStatus(w http.ResponseWriter, code int, status string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": status})
}
