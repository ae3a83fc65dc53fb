package inference

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/chronicare-ai/platform/pkg/common/models"
	"github.com/gorilla/mux"
)

func newTestRouter(svc *Service) *mux.Router {
	router := mux.NewRouter()
	NewHTTPHandler(svc, 1024*1024, "chronic_disease", "artifact").Register(router)
	return router
}

func TestHandlePredictSuccess(t *testing.T) {
	clf := &fakeClassifier{label: 1, probs: [2]float64{0.1, 0.9}}
	router := newTestRouter(newTestService(clf, &fakeStore{}))

	body := `{"patient_id":"p-1","diag_1":"E11.9","diag_2":"I10","diabetesMed":"Yes","age":"70"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/predict", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp models.PredictResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if !resp.Success || resp.PatientID != "p-1" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.RiskLevel != "High" || resp.ResultRisk != "high" {
		t.Fatalf("expected High/high, got %s/%s", resp.RiskLevel, resp.ResultRisk)
	}
}

func TestHandlePredictEmptyBody(t *testing.T) {
	clf := &fakeClassifier{}
	router := newTestRouter(newTestService(clf, &fakeStore{}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/predict", strings.NewReader(""))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var resp models.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid error body: %v", err)
	}
	if resp.Success {
		t.Fatal("error payload must carry success=false")
	}
	if clf.calls != 0 {
		t.Fatal("classifier must not be called for an empty body")
	}
}

func TestHandleSuggestNotFound(t *testing.T) {
	router := newTestRouter(newTestService(&fakeClassifier{}, &fakeStore{}))

	body := `{"user_id":"5f2d9c7e-52d8-4b8a-9d3f-0a1b2c3d4e5f"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/assist", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	var resp models.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid error body: %v", err)
	}
	if resp.Success || resp.Error != "Patient not found" {
		t.Fatalf("unexpected error payload: %+v", resp)
	}
}

func TestHandleSuggestMissingID(t *testing.T) {
	router := newTestRouter(newTestService(&fakeClassifier{}, &fakeStore{}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/assist", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestHandlePredictClassifierDown(t *testing.T) {
	clf := &fakeClassifier{err: errTest}
	router := newTestRouter(newTestService(clf, &fakeStore{}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/predict", strings.NewReader(`{"age":40}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}

func TestHandleHealth(t *testing.T) {
	router := newTestRouter(newTestService(&fakeClassifier{}, &fakeStore{}))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp models.HealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid health body: %v", err)
	}
	if resp.Status != "healthy" || !resp.ModelLoaded {
		t.Fatalf("unexpected health payload: %+v", resp)
	}
}
