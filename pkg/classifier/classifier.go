package classifier

import (
	"context"

	"github.com/chronicare-ai/platform/pkg/encounter"
)

// Classifier is the externally-trained chronic-disease model consumed by the
// inference service. Implementations must treat every call as independent;
// the service invokes each method at most once per request, under a timeout.
type Classifier interface {
	// Predict returns the binary class label for the feature vector.
	Predict(ctx context.Context, features encounter.FeatureVector) (int, error)

	// PredictProbability returns the ordered (p_no_risk, p_risk) pair.
	// The pair sums to 1 within floating tolerance.
	PredictProbability(ctx context.Context, features encounter.FeatureVector) ([2]float64, error)

	// ExpectedColumns is the model's declared feature schema, in order.
	// Nil means the model exposes no schema and the encounter's declared
	// column order is used as-is.
	ExpectedColumns() []string

	// Ready reports whether the model is loaded and able to score.
	Ready() bool
}
