package drugs

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/drugs", func(dr chi.Router) {
		dr.Get("/", listDrugsHandler(svc))
		dr.Post("/", createDrugHandler(svc))

		dr.Get("/{name}", getDrugHandler(svc))
		dr.Put("/{name}", putDrugHandler(svc))
		dr.Delete("/{name}", deleteDrugHandler(svc))
	})
}

// drugRequest es el cuerpo para registrar parámetros de una droga.
type drugRequest struct {
	Name     string   `json:"name"`
	MIC      *float64 `json:"mic"` // opcional
	Vd       float64  `json:"vd"`
	HalfLife float64  `json:"half_life"` // horas
	Notes    string   `json:"notes"`
}

// drugResponse representa una droga del catálogo.
type drugResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	MIC       *float64  `json:"mic"`
	Vd        float64   `json:"vd"`
	HalfLife  float64   `json:"half_life"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// listDrugsHandler godoc
// @Summary Listar catálogo de drogas
// @Tags drugs
// @Produce json
// @Success 200 {array} drugResponse
// @Router /drugs [get]
func listDrugsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]drugResponse, 0, len(items))
		for _, d := range items {
			out = append(out, toDrugResponse(d))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// createDrugHandler godoc
// @Summary Registrar droga
// @Description Agrega MIC, volumen de distribución y vida media de una droga al catálogo local.
// @Tags drugs
// @Accept json
// @Produce json
// @Param payload body drugRequest true "Parámetros de la droga"
// @Success 201 {object} drugResponse
// @Failure 400 {string} string "invalid json / parámetros inválidos"
// @Failure 409 {string} string "drug already exists"
// @Router /drugs [post]
func createDrugHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req drugRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		d, err := svc.Create(r.Context(), toInput(req))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toDrugResponse(d))
	}
}

// getDrugHandler godoc
// @Summary Obtener droga por nombre
// @Tags drugs
// @Produce json
// @Param name path string true "Nombre de la droga (sin distinguir mayúsculas)"
// @Success 200 {object} drugResponse
// @Failure 404 {string} string "drug not found"
// @Router /drugs/{name} [get]
func getDrugHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, err := svc.GetByName(r.Context(), chi.URLParam(r, "name"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toDrugResponse(d))
	}
}

// putDrugHandler godoc
// @Summary Crear o reemplazar droga
// @Tags drugs
// @Accept json
// @Produce json
// @Param name path string true "Nombre de la droga"
// @Param payload body drugRequest true "Parámetros; name del body se ignora"
// @Success 200 {object} drugResponse
// @Success 201 {object} drugResponse
// @Failure 400 {string} string "invalid json / parámetros inválidos"
// @Router /drugs/{name} [put]
func putDrugHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req drugRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		req.Name = chi.URLParam(r, "name")

		d, created, err := svc.Upsert(r.Context(), toInput(req))
		if err != nil {
			writeServiceError(w, err)
			return
		}

		status := http.StatusOK
		if created {
			status = http.StatusCreated
		}
		writeJSON(w, status, toDrugResponse(d))
	}
}

// deleteDrugHandler godoc
// @Summary Borrar droga
// @Tags drugs
// @Param name path string true "Nombre de la droga"
// @Success 204
// @Failure 404 {string} string "drug not found"
// @Router /drugs/{name} [delete]
func deleteDrugHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "name")); err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "drug not found", http.StatusNotFound)
	case errors.Is(err, ErrAlreadyExists):
		http.Error(w, "drug already exists", http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toInput(req drugRequest) UpsertInput {
	return UpsertInput{
		Name:     req.Name,
		MIC:      req.MIC,
		Vd:       req.Vd,
		HalfLife: req.HalfLife,
		Notes:    req.Notes,
	}
}

func toDrugResponse(d Drug) drugResponse {
	return drugResponse{
		ID:        d.ID,
		Name:      d.Name,
		MIC:       d.MIC,
		Vd:        d.Vd,
		HalfLife:  d.HalfLife,
		Notes:     d.Notes,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
