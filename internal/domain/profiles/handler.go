package profiles

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"pkpd-profile/internal/domain/pk"
	"pkpd-profile/internal/ports/paramsource"
	"pkpd-profile/internal/ports/render"

	"github.com/go-chi/chi/v5"
)

type RouteOptions struct {
	// DrugNames devuelve los nombres del catálogo para el formulario (opcional).
	DrugNames func(r *http.Request) ([]string, error)
}

func RegisterRoutes(r chi.Router, svc *Service, opts RouteOptions) {
	r.Post("/calculate", calculateHandler(svc))
	r.Get("/profiles/{drug}/plot.{format}", plotHandler(svc))

	// Formulario interactivo
	r.Get("/", formHandler(svc, opts))
	r.Post("/form", formSubmitHandler(svc, opts))
}

// calculateRequest es el cuerpo del cálculo. organism, weight y renal_function se devuelven tal cual.
type calculateRequest struct {
	Drug          string  `json:"drug"`
	Dose          float64 `json:"dose"`
	Frequency     int     `json:"frequency"`
	Organism      string  `json:"organism"`
	Weight        float64 `json:"weight"`
	RenalFunction string  `json:"renal_function"`

	Source string  `json:"source"` // catalog | pubchem | auto; opcional
	Hours  float64 `json:"hours"`  // opcional, default 24
	Points int     `json:"points"` // opcional, default 100

	IncludePlot *bool `json:"include_plot"` // default true
}

type summaryResponse struct {
	Peak             float64  `json:"peak"`
	TimeOfPeak       float64  `json:"time_of_peak"`
	Trough           float64  `json:"trough"`
	AUC              float64  `json:"auc"`
	TimeAboveMIC     *float64 `json:"time_above_mic,omitempty"`
	FractionAboveMIC *float64 `json:"fraction_above_mic,omitempty"`
}

// profileResponse es el resultado de un cálculo.
type profileResponse struct {
	ID     string `json:"id"`
	Drug   string `json:"drug"`
	Source string `json:"source"`
	Stub   bool   `json:"stub"` // true si algún parámetro es placeholder

	Dose           float64 `json:"dose"`
	Frequency      int     `json:"frequency"`
	DosingInterval float64 `json:"dosing_interval"`

	MIC      *float64 `json:"mic"`
	Vd       float64  `json:"vd"`
	HalfLife float64  `json:"half_life"`
	Ke       float64  `json:"ke"`

	Organism      string  `json:"organism,omitempty"`
	Weight        float64 `json:"weight,omitempty"`
	RenalFunction string  `json:"renal_function,omitempty"`

	TimePoints     []float64       `json:"time_points"`
	Concentrations []float64       `json:"concentrations"`
	Summary        summaryResponse `json:"summary"`

	Plot            string `json:"plot,omitempty"` // base64
	PlotContentType string `json:"plot_content_type,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// calculateHandler godoc
// @Summary Calcular perfil PK/PD
// @Description Calcula la concentración plasmática en 0..24h (modelo de un compartimento, dosis repetidas) y la compara contra el MIC de la droga. Devuelve la serie, un resumen y el gráfico PNG en base64.
// @Tags profiles
// @Accept json
// @Produce json
// @Param payload body calculateRequest true "Droga y pauta de dosificación"
// @Success 200 {object} profileResponse
// @Failure 400 {object} errorResponse "invalid json / parámetros inválidos"
// @Failure 404 {object} errorResponse "Drug not found"
// @Failure 422 {object} errorResponse "la fuente no devolvió parámetros utilizables"
// @Failure 502 {object} errorResponse "fuente remota no disponible"
// @Router /calculate [post]
func calculateHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req calculateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}

		format := render.FormatPNG
		if req.IncludePlot != nil && !*req.IncludePlot {
			format = ""
		}

		p, err := svc.Calculate(r.Context(), Request{
			Drug:          req.Drug,
			Dose:          req.Dose,
			Frequency:     req.Frequency,
			Organism:      req.Organism,
			Weight:        req.Weight,
			RenalFunction: req.RenalFunction,
			Source:        req.Source,
			Hours:         req.Hours,
			Points:        req.Points,
			Render:        format,
		})
		if err != nil {
			status, msg := statusFor(err)
			writeError(w, status, msg)
			return
		}

		writeJSON(w, http.StatusOK, toProfileResponse(p))
	}
}

// plotHandler godoc
// @Summary Gráfico del perfil PK/PD
// @Tags profiles
// @Produce png
// @Produce image/svg+xml
// @Param drug path string true "Nombre de la droga"
// @Param format path string true "png | svg"
// @Param dose query number true "Dosis en mg"
// @Param frequency query int true "Dosis cada 24h"
// @Param source query string false "catalog | pubchem | auto"
// @Param hours query number false "Ventana en horas (default 24)"
// @Param points query int false "Puntos de la grilla (default 100)"
// @Success 200 {file} binary
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse "Drug not found"
// @Router /profiles/{drug}/plot.{format} [get]
func plotHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		dose, err := strconv.ParseFloat(q.Get("dose"), 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "dose must be a number")
			return
		}
		freq, err := strconv.Atoi(q.Get("frequency"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "frequency must be an integer")
			return
		}
		hours, points, err := parseGridQuery(q.Get("hours"), q.Get("points"))
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		format := render.Format(strings.ToLower(chi.URLParam(r, "format")))
		if format != render.FormatPNG && format != render.FormatSVG {
			writeError(w, http.StatusBadRequest, "format must be png or svg")
			return
		}

		p, err := svc.Calculate(r.Context(), Request{
			Drug:      chi.URLParam(r, "drug"),
			Dose:      dose,
			Frequency: freq,
			Source:    q.Get("source"),
			Hours:     hours,
			Points:    points,
			Render:    format,
		})
		if err != nil {
			status, msg := statusFor(err)
			writeError(w, status, msg)
			return
		}

		w.Header().Set("Content-Type", p.PlotContentType)
		w.Header().Set("X-Profile-ID", p.ID)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(p.Plot)
	}
}

func parseGridQuery(hoursRaw, pointsRaw string) (float64, int, error) {
	var (
		hours  float64
		points int
		err    error
	)
	if strings.TrimSpace(hoursRaw) != "" {
		if hours, err = strconv.ParseFloat(hoursRaw, 64); err != nil {
			return 0, 0, errors.New("hours must be a number")
		}
	}
	if strings.TrimSpace(pointsRaw) != "" {
		if points, err = strconv.Atoi(pointsRaw); err != nil {
			return 0, 0, errors.New("points must be an integer")
		}
	}
	return hours, points, nil
}

// statusFor traduce errores de dominio a HTTP. Errores del motor son 400.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, ErrDrugNotFound):
		return http.StatusNotFound, "Drug not found"
	case errors.Is(err, ErrInvalidInput),
		errors.Is(err, ErrUnknownSource),
		errors.Is(err, pk.ErrInvalidRegimen),
		errors.Is(err, pk.ErrInvalidPharmacokinetics),
		errors.Is(err, pk.ErrInvalidTimeGrid):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, paramsource.ErrParse):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, paramsource.ErrUpstream):
		return http.StatusBadGateway, "parameter source unavailable"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

func toProfileResponse(p Profile) profileResponse {
	out := profileResponse{
		ID:             p.ID,
		Drug:           p.Drug,
		Source:         p.Params.Origin,
		Stub:           p.Params.Stub,
		Dose:           p.Regimen.Dose,
		Frequency:      p.Regimen.Frequency,
		DosingInterval: p.Regimen.Interval(),
		MIC:            p.Params.MIC,
		Vd:             p.Params.Vd,
		HalfLife:       p.Params.HalfLife,
		Ke:             p.Ke,
		Organism:       p.Organism,
		Weight:         p.Weight,
		RenalFunction:  p.RenalFunction,
		TimePoints:     p.Series.TimePoints,
		Concentrations: p.Series.Concentrations,
		Summary: summaryResponse{
			Peak:             p.Summary.Peak,
			TimeOfPeak:       p.Summary.TimeOfPeak,
			Trough:           p.Summary.Trough,
			AUC:              p.Summary.AUC,
			TimeAboveMIC:     p.Summary.TimeAboveMIC,
			FractionAboveMIC: p.Summary.FractionAboveMIC,
		},
	}
	if len(p.Plot) > 0 {
		out.Plot = base64.StdEncoding.EncodeToString(p.Plot)
		out.PlotContentType = p.PlotContentType
	}
	return out
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
