// Package decision maps a model score and the data-quality assessment into
// an auditable eligibility decision.
//
// The rules form a veto structure: data-quality gates dominate model output,
// decline is asymmetric (a weak score or a negative label suffices), and
// approval requires score, confidence and label to all agree.
package decision

import (
	"fmt"

	"github.com/mansoor/social-support-agent/internal/types"
)

// Decision thresholds.
const (
	// TauApprove is the minimum score for approval.
	TauApprove = 0.70
	// TauDecline is the score at or below which an applicant is declined.
	TauDecline = 0.35
	// MinConfidence is the minimum validation confidence for approval.
	MinConfidence = 0.70
)

// Decide applies the priority-ordered decision rules, first match wins:
//
//  1. force-review or any high-severity issue → REVIEW
//  2. score ≥ TauApprove, confidence ≥ MinConfidence, label 1 → APPROVE
//  3. score ≤ TauDecline or label 0 → SOFT_DECLINE
//  4. otherwise → REVIEW
func Decide(score float64, label int, assessment types.Assessment) types.Decision {
	d := types.Decision{
		Status:     types.StatusReview,
		Score:      score,
		Confidence: assessment.Confidence,
	}

	switch {
	case assessment.ForceReview || assessment.Report.HasHighSeverity():
		d.Status = types.StatusReview
		d.Reasons = append(d.Reasons, types.Reason{
			Text: "High-severity validation issues detected",
		})
	case score >= TauApprove && assessment.Confidence >= MinConfidence && label == 1:
		d.Status = types.StatusApprove
		d.Reasons = append(d.Reasons, types.Reason{
			Text: fmt.Sprintf("High eligibility score (%.2f) with sufficient validation confidence (%.2f)", score, assessment.Confidence),
		})
	case score <= TauDecline || label == 0:
		d.Status = types.StatusSoftDecline
		d.Reasons = append(d.Reasons, types.Reason{
			Text: fmt.Sprintf("Low eligibility score (%.2f) or model predicted ineligible", score),
		})
	default:
		d.Status = types.StatusReview
		d.Reasons = append(d.Reasons, types.Reason{
			Text: fmt.Sprintf("Borderline score (%.2f) or insufficient confidence (%.2f)", score, assessment.Confidence),
		})
	}

	return d
}
