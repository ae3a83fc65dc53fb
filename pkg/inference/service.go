package inference

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/chronicare-ai/platform/pkg/classifier"
	"github.com/chronicare-ai/platform/pkg/common/logger"
	"github.com/chronicare-ai/platform/pkg/common/models"
	"github.com/chronicare-ai/platform/pkg/encounter"
	"github.com/chronicare-ai/platform/pkg/patients"
	"github.com/chronicare-ai/platform/pkg/risk"
	"github.com/chronicare-ai/platform/pkg/suggest"
	"github.com/chronicare-ai/platform/pkg/terminology"
	"github.com/google/uuid"
)

const probabilityTolerance = 1e-6

// EventPublisher receives completed-prediction events. Publishing is
// best-effort and never blocks the response.
type EventPublisher interface {
	PublishPrediction(ctx context.Context, event models.PredictionEvent) error
}

// Service orchestrates one inference or suggestion request end to end. It
// holds only read-only handles; every request is independent.
type Service struct {
	classifier classifier.Classifier
	store      patients.Store
	catalog    terminology.Catalog
	stratifier *risk.Stratifier
	publisher  EventPublisher
	timeout    time.Duration
}

func NewService(
	clf classifier.Classifier,
	store patients.Store,
	catalog terminology.Catalog,
	stratifier *risk.Stratifier,
	publisher EventPublisher,
	timeout time.Duration,
) *Service {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Service{
		classifier: clf,
		store:      store,
		catalog:    catalog,
		stratifier: stratifier,
		publisher:  publisher,
		timeout:    timeout,
	}
}

// Predict runs the full inference pipeline over a raw encounter payload:
// normalize, classify, derive categories, stratify, recommend, assemble.
// Category extraction and stratification both read the normalized encounter,
// not the model-aligned feature vector.
func (s *Service) Predict(ctx context.Context, patientID string, raw map[string]interface{}) (*models.PredictResponse, error) {
	if len(raw) == 0 {
		return nil, inputErr(errors.New("no patient data provided"))
	}

	enc, err := encounter.Normalize(raw)
	if err != nil {
		return nil, inputErr(err)
	}

	features, err := encounter.AlignFeatures(enc, s.classifier.ExpectedColumns())
	if err != nil {
		return nil, inputErr(err)
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	label, err := s.classifier.Predict(callCtx, features)
	if err != nil {
		return nil, collaboratorErr(fmt.Errorf("prediction failed: %w", err))
	}
	probs, err := s.classifier.PredictProbability(callCtx, features)
	if err != nil {
		return nil, collaboratorErr(fmt.Errorf("prediction failed: %w", err))
	}
	if math.Abs(probs[0]+probs[1]-1.0) > probabilityTolerance {
		return nil, collaboratorErr(fmt.Errorf("classifier returned inconsistent probabilities (%f, %f)", probs[0], probs[1]))
	}

	confidence := math.Max(probs[0], probs[1])
	categories := s.catalog.Categories(enc.Diag1, enc.Diag2, enc.Diag3)
	uiTier, persistTier := s.stratifier.Stratify(label, confidence)
	recommendations := risk.Recommend(label, categories)

	resp := &models.PredictResponse{
		Success:             true,
		PatientID:           patientID,
		Prediction:          label,
		Confidence:          confidence,
		RiskLevel:           uiTier,
		ResultRisk:          persistTier,
		ChronicDiseaseTypes: categories,
		ProbabilityScores: models.ProbabilityScores{
			NoRisk:      probs[0],
			ChronicRisk: probs[1],
		},
		Timestamp:       time.Now().UTC().Format(time.RFC3339),
		Recommendations: recommendations,
	}

	s.publish(resp)

	return resp, nil
}

func (s *Service) publish(resp *models.PredictResponse) {
	if s.publisher == nil {
		return
	}

	event := models.PredictionEvent{
		ID:                  uuid.New().String(),
		PatientID:           resp.PatientID,
		Prediction:          resp.Prediction,
		Confidence:          resp.Confidence,
		RiskLevel:           resp.RiskLevel,
		ResultRisk:          resp.ResultRisk,
		ChronicDiseaseTypes: resp.ChronicDiseaseTypes,
		Timestamp:           time.Now().UTC(),
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.publisher.PublishPrediction(ctx, event); err != nil {
			logger.Log.WithError(err).WithField("event_id", event.ID).Warn("prediction event dropped")
		}
	}()
}

// Suggest proposes intake-form values. An identifier triggers a store lookup
// and a pass-through copy of the located record; an inline demographic
// profile triggers the deterministic rule table. The classifier is never
// involved on this path.
func (s *Service) Suggest(ctx context.Context, req models.SuggestRequest) (*models.SuggestResponse, error) {
	id, byUser := req.PatientID, false
	if id == "" {
		id, byUser = req.UserID, true
	}

	if id == "" {
		if req.Age == nil {
			return nil, inputErr(errors.New("patient_id, user_id or a demographic profile is required"))
		}
		fields := suggest.FromProfile(*req.Age, req.Gender, req.Race)
		return &models.SuggestResponse{
			Success: true,
			Data:    models.SuggestData{SuggestedFields: fields},
		}, nil
	}

	if _, err := uuid.Parse(id); err != nil {
		return nil, inputErr(fmt.Errorf("invalid identifier %q", id))
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var (
		record *patients.Record
		err    error
	)
	if byUser {
		record, err = s.store.FindByUserID(callCtx, id)
	} else {
		record, err = s.store.FindByID(callCtx, id)
	}
	if err != nil {
		if errors.Is(err, patients.ErrNotFound) {
			return nil, err
		}
		return nil, collaboratorErr(fmt.Errorf("patient lookup failed: %w", err))
	}

	data := models.SuggestData{SuggestedFields: suggest.FromRecord(record)}
	if byUser {
		data.UserID = id
	} else {
		data.PatientID = id
	}

	return &models.SuggestResponse{Success: true, Data: data}, nil
}

// Health reports collaborator readiness for the health endpoint.
func (s *Service) Health(ctx context.Context) models.HealthResponse {
	modelLoaded := s.classifier.Ready()
	storeReady := s.store != nil && s.store.Ready(ctx)

	status := "healthy"
	if !modelLoaded || !storeReady {
		status = "degraded"
	}

	return models.HealthResponse{
		Status:      status,
		ModelLoaded: modelLoaded,
		StoreReady:  storeReady,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	}
}

// ModelInfo describes the active model for the metadata endpoint.
func (s *Service) ModelInfo(name, backend string) models.ModelInfo {
	return models.ModelInfo{
		Name:      name,
		Backend:   backend,
		Loaded:    s.classifier.Ready(),
		Features:  s.classifier.ExpectedColumns(),
		CheckedAt: time.Now().UTC().Format(time.RFC3339),
	}
}
