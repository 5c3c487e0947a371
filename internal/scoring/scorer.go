// Package scoring provides the eligibility scorer collaborators: a local
// model loaded from a JSON model file and a client for an external model
// server. The pipeline treats either as a stateless pure function from a
// feature vector to (probability, label).
package scoring

import (
	"context"

	"github.com/mansoor/social-support-agent/internal/types"
)

// Prediction is one scoring result: the probability the applicant is
// eligible and the thresholded 0/1 label.
type Prediction struct {
	Probability float64 `json:"probability"`
	Label       int     `json:"label"`
}

// Scorer scores one applicant's feature vector. Implementations must be safe
// for concurrent use: multiple applicant runs share one scorer.
type Scorer interface {
	Score(ctx context.Context, features types.FeatureVector) (Prediction, error)
}
