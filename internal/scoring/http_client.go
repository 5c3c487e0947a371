package scoring

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mansoor/social-support-agent/internal/types"
)

// HTTPScorer scores against an external model server that exposes the
// classifier behind a POST /score endpoint. The request body is the
// column-schema-plus-row payload; the response is a Prediction.
type HTTPScorer struct {
	baseURL string
	client  *http.Client
}

// NewHTTPScorer builds a scorer client for the given base URL.
func NewHTTPScorer(baseURL string) *HTTPScorer {
	return &HTTPScorer{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// Score posts the feature payload to the model server.
func (s *HTTPScorer) Score(ctx context.Context, features types.FeatureVector) (Prediction, error) {
	body, err := json.Marshal(features.Payload())
	if err != nil {
		return Prediction{}, fmt.Errorf("failed to marshal feature payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/score", bytes.NewReader(body))
	if err != nil {
		return Prediction{}, fmt.Errorf("failed to build score request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return Prediction{}, fmt.Errorf("model server request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Prediction{}, fmt.Errorf("model server returned %d: %s", resp.StatusCode, string(payload))
	}

	var prediction Prediction
	if err := json.NewDecoder(resp.Body).Decode(&prediction); err != nil {
		return Prediction{}, fmt.Errorf("failed to decode model server response: %w", err)
	}
	if prediction.Probability < 0 || prediction.Probability > 1 {
		return Prediction{}, fmt.Errorf("model server returned probability %v outside [0,1]", prediction.Probability)
	}

	return prediction, nil
}
