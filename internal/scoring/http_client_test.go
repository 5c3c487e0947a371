package scoring

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mansoor/social-support-agent/internal/types"
)

func TestHTTPScorerSuccess(t *testing.T) {
	var received types.FeaturePayload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/score", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		_ = json.NewEncoder(w).Encode(Prediction{Probability: 0.82, Label: 1})
	}))
	defer server.Close()

	scorer := NewHTTPScorer(server.URL)
	prediction, err := scorer.Score(context.Background(), testVector())
	require.NoError(t, err)

	assert.Equal(t, Prediction{Probability: 0.82, Label: 1}, prediction)
	assert.Equal(t, types.FeatureColumns, received.Columns)
	require.Len(t, received.Data, 1)
	assert.Equal(t, testVector(), received.Data[0])
}

func TestHTTPScorerNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "model not loaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	scorer := NewHTTPScorer(server.URL)
	_, err := scorer.Score(context.Background(), testVector())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model server returned 503")
	assert.Contains(t, err.Error(), "model not loaded")
}

func TestHTTPScorerRejectsBadProbability(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(Prediction{Probability: 1.7, Label: 1})
	}))
	defer server.Close()

	scorer := NewHTTPScorer(server.URL)
	_, err := scorer.Score(context.Background(), testVector())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "outside [0,1]")
}

func TestHTTPScorerMalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer server.Close()

	scorer := NewHTTPScorer(server.URL)
	_, err := scorer.Score(context.Background(), testVector())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode")
}

func TestHTTPScorerUnreachableServer(t *testing.T) {
	scorer := NewHTTPScorer("http://127.0.0.1:1")
	_, err := scorer.Score(context.Background(), testVector())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model server request failed")
}
