package api

import "net/http"

// OptionsHandler exposes the accepted vocabularies and numeric bounds.
type OptionsHandler struct {
	predictor Predictor
}

// NewOptionsHandler creates a new options handler.
func NewOptionsHandler(predictor Predictor) *OptionsHandler {
	return &OptionsHandler{predictor: predictor}
}

// HandleOptions handles GET /api/v1/options requests.
func (h *OptionsHandler) HandleOptions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.predictor.Options())
}
