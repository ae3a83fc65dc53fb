package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/chronicare-ai/platform/pkg/encounter"
)

// RemoteClassifier scores against an external model-serving endpoint over
// HTTP. The client transport is tuned for service-to-service calls and every
// request carries the caller's context, so the collaborator timeout at the
// service boundary applies here too.
type RemoteClassifier struct {
	baseURL string
	client  *http.Client

	mu      sync.RWMutex
	columns []string
}

func NewRemoteClassifier(baseURL string, timeout time.Duration) *RemoteClassifier {
	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           (&net.Dialer{Timeout: 5 * time.Second, KeepAlive: 30 * time.Second}).DialContext,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}

	return &RemoteClassifier{
		baseURL: baseURL,
		client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}
}

type remoteScoreRequest struct {
	Columns []string  `json:"columns"`
	Values  []float64 `json:"values"`
}

type remoteScoreResponse struct {
	Prediction    int        `json:"prediction"`
	Probabilities [2]float64 `json:"probabilities"`
}

func (c *RemoteClassifier) Predict(ctx context.Context, features encounter.FeatureVector) (int, error) {
	resp, err := c.score(ctx, features)
	if err != nil {
		return 0, err
	}
	return resp.Prediction, nil
}

func (c *RemoteClassifier) PredictProbability(ctx context.Context, features encounter.FeatureVector) ([2]float64, error) {
	resp, err := c.score(ctx, features)
	if err != nil {
		return [2]float64{}, err
	}
	return resp.Probabilities, nil
}

func (c *RemoteClassifier) score(ctx context.Context, features encounter.FeatureVector) (remoteScoreResponse, error) {
	payload, err := json.Marshal(remoteScoreRequest{Columns: features.Columns, Values: features.Values})
	if err != nil {
		return remoteScoreResponse{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict", bytes.NewReader(payload))
	if err != nil {
		return remoteScoreResponse{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.client.Do(req)
	if err != nil {
		return remoteScoreResponse{}, fmt.Errorf("scoring endpoint unreachable: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return remoteScoreResponse{}, fmt.Errorf("scoring endpoint returned status %d", res.StatusCode)
	}

	var scored remoteScoreResponse
	if err := json.NewDecoder(res.Body).Decode(&scored); err != nil {
		return remoteScoreResponse{}, fmt.Errorf("scoring endpoint response invalid: %w", err)
	}
	return scored, nil
}

// ExpectedColumns fetches the remote schema once and caches it. A schema-less
// endpoint (404) yields nil, which keeps the encounter order unreordered.
func (c *RemoteClassifier) ExpectedColumns() []string {
	c.mu.RLock()
	if c.columns != nil {
		columns := c.columns
		c.mu.RUnlock()
		return columns
	}
	c.mu.RUnlock()

	ctx, cancel := context.WithTimeout(context.Background(), c.client.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/schema", nil)
	if err != nil {
		return nil
	}
	res, err := c.client.Do(req)
	if err != nil {
		return nil
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return nil
	}

	var schema struct {
		FeatureNames []string `json:"feature_names"`
	}
	if err := json.NewDecoder(res.Body).Decode(&schema); err != nil {
		return nil
	}

	c.mu.Lock()
	c.columns = schema.FeatureNames
	c.mu.Unlock()
	return schema.FeatureNames
}

func (c *RemoteClassifier) Ready() bool {
	ctx, cancel := context.WithTimeout(context.Background(), c.client.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return false
	}
	res, err := c.client.Do(req)
	if err != nil {
		return false
	}
	defer res.Body.Close()
	return res.StatusCode == http.StatusOK
}
