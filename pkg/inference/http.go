package inference

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/chronicare-ai/platform/pkg/common/logger"
	"github.com/chronicare-ai/platform/pkg/common/models"
	"github.com/chronicare-ai/platform/pkg/patients"
	"github.com/gorilla/mux"
)

type HTTPHandler struct {
	service      *Service
	maxBody      int64
	modelName    string
	modelBackend string
}

func NewHTTPHandler(service *Service, maxBody int64, modelName, modelBackend string) *HTTPHandler {
	return &HTTPHandler{
		service:      service,
		maxBody:      maxBody,
		modelName:    modelName,
		modelBackend: modelBackend,
	}
}

func (h *HTTPHandler) Register(router *mux.Router) {
	router.HandleFunc("/health", h.handleHealth).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/predict", h.handlePredict).Methods(http.MethodPost)
	router.HandleFunc("/api/v1/assist", h.handleSuggest).Methods(http.MethodPost)
	router.HandleFunc("/api/v1/model", h.handleModelInfo).Methods(http.MethodGet)
}

// handlePredict accepts the raw intake form as the request body. A
// patient_id field, when present, is carried through to the response and the
// published event; everything else is encounter data.
func (h *HTTPHandler) handlePredict(w http.ResponseWriter, r *http.Request) {
	if h.maxBody > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBody)
	}

	var raw map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		writeError(w, http.StatusBadRequest, "no patient data provided")
		return
	}

	patientID, _ := raw["patient_id"].(string)
	delete(raw, "patient_id")

	resp, err := h.service.Predict(r.Context(), patientID, raw)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *HTTPHandler) handleSuggest(w http.ResponseWriter, r *http.Request) {
	if h.maxBody > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBody)
	}

	var req models.SuggestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.service.Suggest(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *HTTPHandler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.Health(r.Context()))
}

func (h *HTTPHandler) handleModelInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.ModelInfo(h.modelName, h.modelBackend))
}

func (h *HTTPHandler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case IsInputError(err):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, patients.ErrNotFound):
		writeError(w, http.StatusNotFound, "Patient not found")
	case IsCollaboratorError(err):
		logger.Log.WithError(err).Error("collaborator failure")
		writeError(w, http.StatusServiceUnavailable, err.Error())
	default:
		logger.Log.WithError(err).Error("inference request failed")
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, models.ErrorResponse{Success: false, Error: message})
}
