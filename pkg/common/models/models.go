package models

import "time"

// ProbabilityScores is the ordered class probability pair from the classifier.
type ProbabilityScores struct {
	NoRisk      float64 `json:"no_risk"`
	ChronicRisk float64 `json:"chronic_risk"`
}

// PredictResponse is the assembled inference result. Field names are part of
// the wire contract consumed by the intake frontend.
type PredictResponse struct {
	Success             bool              `json:"success"`
	PatientID           string            `json:"patient_id,omitempty"`
	Prediction          int               `json:"prediction"`
	Confidence          float64           `json:"confidence"`
	RiskLevel           string            `json:"risk_level"`
	ResultRisk          string            `json:"result_risk"`
	ChronicDiseaseTypes []string          `json:"chronic_disease_types"`
	ProbabilityScores   ProbabilityScores `json:"probability_scores"`
	Timestamp           string            `json:"timestamp"`
	Recommendations     []string          `json:"recommendations"`
}

// SuggestRequest asks for plausible intake-form values. It carries either a
// stored-record identifier (PatientID or UserID) or, for patients without a
// record yet, an inline demographic profile.
type SuggestRequest struct {
	PatientID string `json:"patient_id,omitempty"`
	UserID    string `json:"user_id,omitempty"`

	Age    *int   `json:"age,omitempty"`
	Gender string `json:"gender,omitempty"`
	Race   string `json:"race,omitempty"`
}

type SuggestData struct {
	PatientID       string                 `json:"patient_id,omitempty"`
	UserID          string                 `json:"user_id,omitempty"`
	SuggestedFields map[string]interface{} `json:"suggestedFields"`
}

type SuggestResponse struct {
	Success bool        `json:"success"`
	Data    SuggestData `json:"data"`
}

// ErrorResponse is the uniform failure payload.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// PredictionEvent is published to the event bus after a completed inference
// for downstream analytics. The prediction itself is not persisted here.
type PredictionEvent struct {
	ID                  string    `json:"id"`
	PatientID           string    `json:"patient_id,omitempty"`
	Prediction          int       `json:"prediction"`
	Confidence          float64   `json:"confidence"`
	RiskLevel           string    `json:"risk_level"`
	ResultRisk          string    `json:"result_risk"`
	ChronicDiseaseTypes []string  `json:"chronic_disease_types"`
	Timestamp           time.Time `json:"timestamp"`
}

type ModelInfo struct {
	Name      string   `json:"name"`
	Backend   string   `json:"backend"`
	Loaded    bool     `json:"loaded"`
	Features  []string `json:"features,omitempty"`
	CheckedAt string   `json:"checked_at"`
}

type HealthResponse struct {
	Status      string `json:"status"`
	ModelLoaded bool   `json:"model_loaded"`
	StoreReady  bool   `json:"store_ready"`
	Timestamp   string `json:"timestamp"`
}
