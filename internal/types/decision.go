package types

// Status is the outcome class of an eligibility decision.
type Status string

// Decision statuses. REVIEW is the safe default whenever data quality or the
// model score leaves room for doubt.
const (
	StatusApprove     Status = "APPROVE"
	StatusSoftDecline Status = "SOFT_DECLINE"
	StatusReview      Status = "REVIEW"
)

// Reason is a single human-readable justification attached to a decision.
type Reason struct {
	Text string `json:"text"`
}

// Decision is the auditable outcome of one applicant run: the status, the
// ordered reasons behind it, and the score/confidence pair it was based on.
type Decision struct {
	Status     Status   `json:"status"`
	Reasons    []Reason `json:"reasons"`
	Score      float64  `json:"score"`
	Confidence float64  `json:"confidence"`
}
