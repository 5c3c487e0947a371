package pipeline

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/mansoor/social-support-agent/internal/db"
	"github.com/mansoor/social-support-agent/internal/scoring"
	"github.com/mansoor/social-support-agent/internal/types"
)

// State is the per-run accumulator. Stages only add fields, never clear ones
// an earlier stage set, so every intermediate result stays observable after
// the run. One State belongs to exactly one run; concurrent runs each own
// their own instance.
type State struct {
	RunID uuid.UUID `json:"run_id,omitempty"`

	Bundle      types.RawExtractionBundle `json:"bundle,omitempty"`
	UsedSources []types.SourceKind        `json:"used_sources,omitempty"`

	Record          types.CanonicalRecord `json:"record"`
	Inconsistencies []types.Inconsistency `json:"inconsistencies,omitempty"`

	Assessment types.Assessment    `json:"assessment"`
	Features   types.FeatureVector `json:"features"`

	Prediction scoring.Prediction `json:"prediction"`
	Decision   types.Decision     `json:"decision"`

	Plan         types.EnablementPlan `json:"enablement_plan"`
	FinalSummary string               `json:"final_summary,omitempty"`

	Embedding []float64             `json:"-"`
	PointID   uuid.UUID             `json:"point_id,omitempty"`
	Similar   []db.SimilarApplicant `json:"similar_applicants,omitempty"`

	ReportPath string `json:"report_path,omitempty"`

	// Errors collects per-stage failure notes. A non-empty list means the
	// run degraded somewhere but still produced a decision.
	Errors []string `json:"errors,omitempty"`
}

// AddError appends a formatted stage-failure note.
func (s *State) AddError(format string, args ...any) {
	s.Errors = append(s.Errors, fmt.Sprintf(format, args...))
}

// Degraded reports whether any stage recorded a failure.
func (s *State) Degraded() bool {
	return len(s.Errors) > 0
}
