package classifier

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/chronicare-ai/platform/pkg/encounter"
)

func writeArtifact(t *testing.T, dir, model, content string) {
	t.Helper()
	path := filepath.Join(dir, model+"_latest.json")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write artifact: %v", err)
	}
}

func TestArtifactClassifierScores(t *testing.T) {
	dir := t.TempDir()
	writeArtifact(t, dir, "chronic_disease", `{
		"model": {
			"type": "classification",
			"algorithm": "logistic_regression",
			"feature_names": ["age", "num_medications"],
			"weights": {"bias": -2.0, "coefficients": [0.05, 0.1]}
		}
	}`)

	clf := NewArtifactClassifier(dir, "chronic_disease")
	if !clf.Ready() {
		t.Fatal("expected classifier to be ready")
	}

	columns := clf.ExpectedColumns()
	if len(columns) != 2 || columns[0] != "age" {
		t.Fatalf("unexpected schema: %v", columns)
	}

	features := encounter.FeatureVector{Columns: columns, Values: []float64{70, 12}}
	probs, err := clf.PredictProbability(context.Background(), features)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(probs[0]+probs[1]-1.0) > 1e-9 {
		t.Fatalf("probabilities must sum to 1, got %v", probs)
	}
	// 0.05*70 + 0.1*12 - 2.0 = 2.7 > 0, positive class
	if probs[1] <= 0.5 {
		t.Fatalf("expected positive-class probability above 0.5, got %f", probs[1])
	}

	label, err := clf.Predict(context.Background(), features)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if label != 1 {
		t.Fatalf("expected label 1, got %d", label)
	}
}

func TestArtifactClassifierVectorWidthMismatch(t *testing.T) {
	dir := t.TempDir()
	writeArtifact(t, dir, "chronic_disease", `{
		"model": {
			"feature_names": ["age", "num_medications"],
			"weights": {"bias": 0, "coefficients": [0.1, 0.1]}
		}
	}`)

	clf := NewArtifactClassifier(dir, "chronic_disease")
	features := encounter.FeatureVector{Columns: []string{"age"}, Values: []float64{70}}
	if _, err := clf.PredictProbability(context.Background(), features); err == nil {
		t.Fatal("expected error for mismatched vector width")
	}
}

func TestArtifactClassifierMissingArtifact(t *testing.T) {
	clf := NewArtifactClassifier(t.TempDir(), "chronic_disease")
	if clf.Ready() {
		t.Fatal("expected classifier to be not ready without an artifact")
	}
	if clf.ExpectedColumns() != nil {
		t.Fatal("expected nil schema without an artifact")
	}
	features := encounter.FeatureVector{Columns: []string{"age"}, Values: []float64{70}}
	if _, err := clf.Predict(context.Background(), features); err == nil {
		t.Fatal("expected error without an artifact")
	}
}

func TestArtifactClassifierRejectsInconsistentArtifact(t *testing.T) {
	dir := t.TempDir()
	writeArtifact(t, dir, "chronic_disease", `{
		"model": {
			"feature_names": ["age", "num_medications"],
			"weights": {"bias": 0, "coefficients": [0.1]}
		}
	}`)

	clf := NewArtifactClassifier(dir, "chronic_disease")
	if clf.Ready() {
		t.Fatal("expected coefficient/feature mismatch to fail loading")
	}
}
