package types

// Recommendation is a single economic-enablement suggestion for an applicant.
type Recommendation struct {
	Type             string   `json:"type"`
	Rationale        string   `json:"rationale"`
	SuggestedActions []string `json:"suggested_actions"`
	Priority         string   `json:"priority"`
}

// EnablementPlan is the synthesized set of enablement recommendations plus a
// short overall summary, produced after the eligibility decision.
type EnablementPlan struct {
	OverallSummary  string           `json:"overall_summary"`
	Recommendations []Recommendation `json:"enablement_recommendations"`
}
