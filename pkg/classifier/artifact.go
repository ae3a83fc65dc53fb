package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/chronicare-ai/platform/pkg/encounter"
	"github.com/chronicare-ai/platform/pkg/ml/linear"
)

// Artifact is the JSON model file exported by the training pipeline.
type Artifact struct {
	Model struct {
		Type         string         `json:"type"`
		Algorithm    string         `json:"algorithm"`
		FeatureNames []string       `json:"feature_names"`
		Weights      linear.Weights `json:"weights"`
	} `json:"model"`
}

// ArtifactClassifier scores with a logistic artifact loaded from disk. The
// artifact is re-read when its mtime changes, so a model promotion does not
// require a restart.
type ArtifactClassifier struct {
	dir   string
	model string

	mu     sync.RWMutex
	cached Artifact
	loaded bool
	mtime  int64
}

func NewArtifactClassifier(dir, model string) *ArtifactClassifier {
	return &ArtifactClassifier{dir: dir, model: model}
}

func (c *ArtifactClassifier) Predict(ctx context.Context, features encounter.FeatureVector) (int, error) {
	probs, err := c.PredictProbability(ctx, features)
	if err != nil {
		return 0, err
	}
	if probs[1] >= 0.5 {
		return 1, nil
	}
	return 0, nil
}

func (c *ArtifactClassifier) PredictProbability(ctx context.Context, features encounter.FeatureVector) ([2]float64, error) {
	if err := ctx.Err(); err != nil {
		return [2]float64{}, err
	}

	artifact, err := c.loadArtifact()
	if err != nil {
		return [2]float64{}, err
	}
	if len(artifact.Model.FeatureNames) != len(features.Values) {
		return [2]float64{}, fmt.Errorf("feature vector has %d columns, model expects %d",
			len(features.Values), len(artifact.Model.FeatureNames))
	}

	pRisk := linear.Predict(artifact.Model.Weights, features.Values)
	return [2]float64{1 - pRisk, pRisk}, nil
}

func (c *ArtifactClassifier) ExpectedColumns() []string {
	artifact, err := c.loadArtifact()
	if err != nil {
		return nil
	}
	return artifact.Model.FeatureNames
}

func (c *ArtifactClassifier) Ready() bool {
	_, err := c.loadArtifact()
	return err == nil
}

func (c *ArtifactClassifier) loadArtifact() (Artifact, error) {
	latest := filepath.Join(c.dir, fmt.Sprintf("%s_latest.json", c.model))
	info, err := os.Stat(latest)
	if err != nil {
		return Artifact{}, fmt.Errorf("model artifact unavailable: %w", err)
	}
	mod := info.ModTime().UnixNano()

	c.mu.RLock()
	if c.loaded && c.mtime == mod {
		cached := c.cached
		c.mu.RUnlock()
		return cached, nil
	}
	c.mu.RUnlock()

	content, err := os.ReadFile(latest)
	if err != nil {
		return Artifact{}, fmt.Errorf("model artifact unavailable: %w", err)
	}
	var artifact Artifact
	if err := json.Unmarshal(content, &artifact); err != nil {
		return Artifact{}, fmt.Errorf("model artifact corrupt: %w", err)
	}
	if len(artifact.Model.FeatureNames) == 0 {
		return Artifact{}, fmt.Errorf("model artifact missing feature names")
	}
	if len(artifact.Model.Weights.Coefficients) != len(artifact.Model.FeatureNames) {
		return Artifact{}, fmt.Errorf("model artifact has %d coefficients for %d features",
			len(artifact.Model.Weights.Coefficients), len(artifact.Model.FeatureNames))
	}

	c.mu.Lock()
	c.cached = artifact
	c.loaded = true
	c.mtime = mod
	c.mu.Unlock()
	return artifact, nil
}
