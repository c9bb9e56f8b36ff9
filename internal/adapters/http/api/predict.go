package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/okian/gaji/internal/domain/model"
	"github.com/okian/gaji/pkg/logger"
)

const maxRequestBytes = 64 << 10

// predictRequest mirrors the OpenAPI schema for POST /api/v1/predict.
// Numeric fields are pointers so that an omitted field is distinguishable
// from a zero value.
type predictRequest struct {
	Age              *int     `json:"age"`
	TrainingHours    *int     `json:"training_hours"`
	ExamScore        *float64 `json:"exam_score"`
	EducationLevel   string   `json:"education_level"`
	Major            string   `json:"major"`
	Gender           string   `json:"gender"`
	EmploymentStatus string   `json:"employment_status"`
}

func (r predictRequest) participant() (model.Participant, error) {
	switch {
	case r.Age == nil:
		return model.Participant{}, fmt.Errorf("%w: missing age", ErrBadRequest)
	case r.TrainingHours == nil:
		return model.Participant{}, fmt.Errorf("%w: missing training_hours", ErrBadRequest)
	case r.ExamScore == nil:
		return model.Participant{}, fmt.Errorf("%w: missing exam_score", ErrBadRequest)
	case strings.TrimSpace(r.EducationLevel) == "":
		return model.Participant{}, fmt.Errorf("%w: missing education_level", ErrBadRequest)
	case strings.TrimSpace(r.Major) == "":
		return model.Participant{}, fmt.Errorf("%w: missing major", ErrBadRequest)
	case strings.TrimSpace(r.Gender) == "":
		return model.Participant{}, fmt.Errorf("%w: missing gender", ErrBadRequest)
	case strings.TrimSpace(r.EmploymentStatus) == "":
		return model.Participant{}, fmt.Errorf("%w: missing employment_status", ErrBadRequest)
	}
	return model.Participant{
		Age:              *r.Age,
		TrainingHours:    *r.TrainingHours,
		ExamScore:        *r.ExamScore,
		EducationLevel:   r.EducationLevel,
		Major:            r.Major,
		Gender:           r.Gender,
		EmploymentStatus: r.EmploymentStatus,
	}, nil
}

// decodePredictRequest reads exactly one JSON object from a size-capped body.
func decodePredictRequest(w http.ResponseWriter, r *http.Request) (predictRequest, error) {
	var req predictRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	if err := dec.Decode(&req); err != nil {
		return req, fmt.Errorf("%w: %w", ErrBadRequest, err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		if err == nil {
			return req, fmt.Errorf("%w: unexpected data after JSON object", ErrBadRequest)
		}
		return req, fmt.Errorf("%w: unexpected data after JSON object: %w", ErrBadRequest, err)
	}
	return req, nil
}

// PredictHandler handles prediction requests.
type PredictHandler struct {
	predictor Predictor
}

// NewPredictHandler creates a new predict handler.
func NewPredictHandler(predictor Predictor) *PredictHandler {
	return &PredictHandler{predictor: predictor}
}

// HandlePredict handles POST /api/v1/predict requests.
func (h *PredictHandler) HandlePredict(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	req, err := decodePredictRequest(w, r)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, CodeTooLarge, err)
			return
		}
		writeError(w, http.StatusBadRequest, CodeBadRequest, err)
		return
	}
	p, err := req.participant()
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, err)
		return
	}

	pred, err := h.predictor.Predict(r.Context(), p)
	if err != nil {
		status, code := classify(err)
		if status >= http.StatusInternalServerError {
			logger.Get().Error(r.Context(), "prediction failed", logger.Error(err))
		}
		writeError(w, status, code, err)
		return
	}
	writeJSON(w, http.StatusOK, pred)
}
