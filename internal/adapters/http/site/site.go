// Package site serves the participant form and renders predictions.
package site

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"

	"github.com/gorilla/schema"

	"github.com/okian/gaji/internal/domain/encoding"
	"github.com/okian/gaji/internal/domain/model"
	"github.com/okian/gaji/internal/domain/types"
	"github.com/okian/gaji/pkg/logger"
)

// Error constants
var (
	ErrRender = errors.New("form render failed")
	ErrDecode = errors.New("form decode failed")
)

//go:embed templates/index.html
var templateFS embed.FS

var indexTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

// Predictor is what the form needs from the prediction service.
type Predictor interface {
	Predict(ctx context.Context, p model.Participant) (types.Prediction, error)
	Options() types.FormOptions
}

// participantForm is the decoded shape of the submitted form.
type participantForm struct {
	Age              int     `schema:"age,required"`
	TrainingHours    int     `schema:"training_hours,required"`
	ExamScore        float64 `schema:"exam_score,required"`
	EducationLevel   string  `schema:"education_level,required"`
	Major            string  `schema:"major,required"`
	Gender           string  `schema:"gender,required"`
	EmploymentStatus string  `schema:"employment_status,required"`
}

func (f participantForm) participant() model.Participant {
	return model.Participant(f)
}

type page struct {
	Options types.FormOptions
	Form    participantForm
	Result  *types.Prediction
	Error   string
}

// Handler renders the form on GET and the prediction on POST.
type Handler struct {
	predictor Predictor
	decoder   *schema.Decoder
}

// NewHandler creates a new form handler.
func NewHandler(predictor Predictor) *Handler {
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)
	return &Handler{predictor: predictor, decoder: decoder}
}

// Register attaches the form routes to mux.
func Register(_ context.Context, mux *http.ServeMux, predictor Predictor) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.Handle("/", NewHandler(predictor))
}

// ServeHTTP handles GET and POST on the root path.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	opts := h.predictor.Options()
	p := page{Options: opts, Form: defaults(opts)}

	switch r.Method {
	case http.MethodGet, http.MethodHead:
		h.render(w, r, http.StatusOK, p)
	case http.MethodPost:
		status := http.StatusOK
		form, err := h.decode(r)
		if err != nil {
			p.Error = err.Error()
			h.render(w, r, http.StatusBadRequest, p)
			return
		}
		p.Form = form

		pred, err := h.predictor.Predict(r.Context(), form.participant())
		switch {
		case err == nil:
			p.Result = &pred
		case errors.Is(err, encoding.ErrUnknownCategory), errors.Is(err, model.ErrOutOfRange):
			status = http.StatusBadRequest
			p.Error = "Input tidak valid: " + err.Error()
		default:
			status = http.StatusInternalServerError
			p.Error = "Prediksi gagal: " + err.Error()
			logger.Get().Error(r.Context(), "form prediction failed", logger.Error(err))
		}
		h.render(w, r, status, p)
	default:
		http.NotFound(w, r)
	}
}

func (h *Handler) decode(r *http.Request) (participantForm, error) {
	var form participantForm
	if err := r.ParseForm(); err != nil {
		return form, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if err := h.decoder.Decode(&form, r.PostForm); err != nil {
		return form, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return form, nil
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, p page) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := indexTemplate.Execute(w, p); err != nil {
		logger.Get().Error(r.Context(), "render form", logger.Error(fmt.Errorf("%w: %w", ErrRender, err)))
	}
}

func defaults(opts types.FormOptions) participantForm {
	form := participantForm{
		Age:           int(opts.Age.Default),
		TrainingHours: int(opts.TrainingHours.Default),
		ExamScore:     opts.ExamScore.Default,
	}
	if len(opts.EducationLevels) > 0 {
		form.EducationLevel = opts.EducationLevels[0]
	}
	if len(opts.Majors) > 0 {
		form.Major = opts.Majors[0]
	}
	if len(opts.Genders) > 0 {
		form.Gender = opts.Genders[0]
	}
	if len(opts.EmploymentStatuses) > 0 {
		form.EmploymentStatus = opts.EmploymentStatuses[0]
	}
	return form
}
