package types

// IssueKind classifies what a validation check found wrong with a field.
type IssueKind string

// Validation issue kinds.
const (
	IssueMissing          IssueKind = "missing"
	IssueOutOfRange       IssueKind = "out_of_range"
	IssueUnknownValue     IssueKind = "unknown_value"
	IssueMissingOrUnknown IssueKind = "missing_or_unknown"
)

// Severity grades how much a validation issue undermines trust in the record.
type Severity string

// Issue severities. Any high-severity issue routes the decision to REVIEW.
const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// ValidationIssue is a single data-quality finding on the canonical record.
type ValidationIssue struct {
	Field    string    `json:"field"`
	Kind     IssueKind `json:"issue"`
	Severity Severity  `json:"severity"`
}

// ValidationReport is the ordered list of issues found by validation. The
// order matches the fixed check sequence, for reproducibility.
type ValidationReport struct {
	Issues []ValidationIssue `json:"issues"`
}

// HasHighSeverity reports whether any issue in the report is high severity.
func (r ValidationReport) HasHighSeverity() bool {
	for _, issue := range r.Issues {
		if issue.Severity == SeverityHigh {
			return true
		}
	}
	return false
}

// Assessment bundles the validator's outputs: the issue report, a confidence
// score in [0,1] that only decreases as issues accumulate, and the
// force-review flag that unconditionally routes the decision to REVIEW.
type Assessment struct {
	Report      ValidationReport `json:"report"`
	Confidence  float64          `json:"confidence"`
	ForceReview bool             `json:"force_review"`
}
