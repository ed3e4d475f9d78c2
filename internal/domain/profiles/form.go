package profiles

import (
	"embed"
	"encoding/base64"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"pkpd-profile/internal/ports/render"
)

//go:embed templates/form.html
var templatesFS embed.FS

var formTmpl = template.Must(template.ParseFS(templatesFS, "templates/form.html"))

type formValues struct {
	Drug          string
	Dose          string
	Frequency     string
	Organism      string
	Weight        string
	RenalFunction string
	Source        string
}

type formResult struct {
	Title    string
	Source   string
	Stub     bool
	ImageSrc template.URL // data:<content-type>;base64,...

	HalfLife   float64
	Ke         float64
	Peak       float64
	TimeOfPeak float64
	Trough     float64
	AUC        float64

	HasMIC          bool
	MIC             float64
	TimeAboveMIC    float64
	PercentAboveMIC float64
}

type formPage struct {
	Form      formValues
	Sources   []string
	DrugNames []string
	Error     string
	Result    *formResult
}

func formHandler(svc *Service, opts RouteOptions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := newFormPage(svc, opts, r)
		page.Form.Frequency = "1"
		renderForm(w, http.StatusOK, page)
	}
}

// formSubmitHandler es el mismo cálculo que /calculate, presentado como HTML.
// El select "source" permite usar la fuente remota en vez del catálogo.
func formSubmitHandler(svc *Service, opts RouteOptions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := newFormPage(svc, opts, r)

		if err := r.ParseForm(); err != nil {
			page.Error = "invalid form"
			renderForm(w, http.StatusBadRequest, page)
			return
		}

		page.Form = formValues{
			Drug:          strings.TrimSpace(r.PostForm.Get("drug")),
			Dose:          strings.TrimSpace(r.PostForm.Get("dose")),
			Frequency:     strings.TrimSpace(r.PostForm.Get("frequency")),
			Organism:      strings.TrimSpace(r.PostForm.Get("organism")),
			Weight:        strings.TrimSpace(r.PostForm.Get("weight")),
			RenalFunction: strings.TrimSpace(r.PostForm.Get("renal_function")),
			Source:        strings.TrimSpace(r.PostForm.Get("source")),
		}

		dose, err := strconv.ParseFloat(page.Form.Dose, 64)
		if err != nil {
			page.Error = "dose must be a number"
			renderForm(w, http.StatusBadRequest, page)
			return
		}
		freq, err := strconv.Atoi(page.Form.Frequency)
		if err != nil {
			page.Error = "frequency must be an integer"
			renderForm(w, http.StatusBadRequest, page)
			return
		}
		var weight float64
		if page.Form.Weight != "" {
			if weight, err = strconv.ParseFloat(page.Form.Weight, 64); err != nil {
				page.Error = "weight must be a number"
				renderForm(w, http.StatusBadRequest, page)
				return
			}
		}

		p, err := svc.Calculate(r.Context(), Request{
			Drug:          page.Form.Drug,
			Dose:          dose,
			Frequency:     freq,
			Organism:      page.Form.Organism,
			Weight:        weight,
			RenalFunction: page.Form.RenalFunction,
			Source:        page.Form.Source,
			Render:        render.FormatPNG,
		})
		if err != nil {
			status, msg := statusFor(err)
			page.Error = msg
			renderForm(w, status, page)
			return
		}

		page.Result = toFormResult(p)
		renderForm(w, http.StatusOK, page)
	}
}

func newFormPage(svc *Service, opts RouteOptions, r *http.Request) formPage {
	page := formPage{Sources: svc.SourceNames()}
	if len(page.Sources) > 0 {
		page.Form.Source = page.Sources[0]
	}
	if opts.DrugNames != nil {
		// el datalist es cosmético; si falla el catálogo se muestra vacío
		if names, err := opts.DrugNames(r); err == nil {
			page.DrugNames = names
		}
	}
	return page
}

func toFormResult(p Profile) *formResult {
	plot := PlotFor(p)
	res := &formResult{
		Title:      plot.Title,
		Source:     p.Params.Origin,
		Stub:       p.Params.Stub,
		ImageSrc:   template.URL("data:" + p.PlotContentType + ";base64," + base64.StdEncoding.EncodeToString(p.Plot)),
		HalfLife:   p.Params.HalfLife,
		Ke:         p.Ke,
		Peak:       p.Summary.Peak,
		TimeOfPeak: p.Summary.TimeOfPeak,
		Trough:     p.Summary.Trough,
		AUC:        p.Summary.AUC,
	}
	if p.Params.MIC != nil && p.Summary.TimeAboveMIC != nil && p.Summary.FractionAboveMIC != nil {
		res.HasMIC = true
		res.MIC = *p.Params.MIC
		res.TimeAboveMIC = *p.Summary.TimeAboveMIC
		res.PercentAboveMIC = *p.Summary.FractionAboveMIC * 100
	}
	return res
}

func renderForm(w http.ResponseWriter, status int, page formPage) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_ = formTmpl.Execute(w, page)
}
