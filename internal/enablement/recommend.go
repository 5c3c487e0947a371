// Package enablement turns a decided case into economic-enablement
// recommendations: training, job matching, counseling, or direct support.
package enablement

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mansoor/social-support-agent/internal/llm"
	"github.com/mansoor/social-support-agent/internal/schemas"
	"github.com/mansoor/social-support-agent/internal/types"
)

const planPromptTemplate = `You are an economic-enablement advisor for a social support program.
Given this applicant profile and decision, produce an enablement plan as JSON with:
- overall_summary: two or three sentences on the applicant's situation
- enablement_recommendations: an array of objects with fields type (one of
  job_match, upskilling, financial_counseling, rental_support, income_support, other),
  rationale, suggested_actions (array of strings), priority (high, medium, low)

Applicant profile:
%s

Decision:
%s

Return only the JSON object.`

// Recommender produces an enablement plan for a decided case, preferring LLM
// synthesis and falling back to rule-based recommendations when the client is
// missing or the synthesis fails.
type Recommender struct {
	LLM llm.Client
}

// Recommend returns the plan plus a degradation note. A non-empty note means
// the LLM path failed and the rule-based plan was used instead.
func (r *Recommender) Recommend(ctx context.Context, record types.CanonicalRecord, decision types.Decision) (types.EnablementPlan, string) {
	if r.LLM == nil {
		return FallbackPlan(record, decision), ""
	}

	plan, err := r.synthesize(ctx, record, decision)
	if err != nil {
		return FallbackPlan(record, decision), fmt.Sprintf("enablement synthesis failed: %v", err)
	}
	return plan, ""
}

func (r *Recommender) synthesize(ctx context.Context, record types.CanonicalRecord, decision types.Decision) (types.EnablementPlan, error) {
	profile, err := json.Marshal(record)
	if err != nil {
		return types.EnablementPlan{}, fmt.Errorf("failed to encode applicant profile: %w", err)
	}
	decided, err := json.Marshal(decision)
	if err != nil {
		return types.EnablementPlan{}, fmt.Errorf("failed to encode decision: %w", err)
	}

	out, err := r.LLM.GenerateJSON(ctx, fmt.Sprintf(planPromptTemplate, profile, decided), llm.TierSynthesis)
	if err != nil {
		return types.EnablementPlan{}, err
	}
	if err := schemas.Validate(schemas.EnablementPlan, out); err != nil {
		return types.EnablementPlan{}, err
	}

	var plan types.EnablementPlan
	if err := json.Unmarshal([]byte(out), &plan); err != nil {
		return types.EnablementPlan{}, fmt.Errorf("failed to decode enablement plan: %w", err)
	}
	if len(plan.Recommendations) == 0 {
		return types.EnablementPlan{}, fmt.Errorf("enablement plan has no recommendations")
	}
	return plan, nil
}

// FallbackPlan derives recommendations from the profile alone. The rules fire
// independently, so one applicant can collect several recommendations.
func FallbackPlan(record types.CanonicalRecord, decision types.Decision) types.EnablementPlan {
	var recs []types.Recommendation

	if record.EmploymentStatus != "Employed" {
		recs = append(recs, types.Recommendation{
			Type:      "job_match",
			Rationale: fmt.Sprintf("Employment status is %s; placement support can restore earned income.", record.EmploymentStatus),
			SuggestedActions: []string{
				"Register with the national job-matching portal",
				"Schedule a career counseling session",
			},
			Priority: "high",
		})
	}
	if record.CreditScore > 0 && record.CreditScore < 600 {
		recs = append(recs, types.Recommendation{
			Type:      "financial_counseling",
			Rationale: fmt.Sprintf("Credit score of %d indicates debt stress.", record.CreditScore),
			SuggestedActions: []string{
				"Enroll in a debt restructuring consultation",
				"Attend a household budgeting workshop",
			},
			Priority: "medium",
		})
	}
	if record.HousingType == "Shared" && record.FamilySize >= 4 {
		recs = append(recs, types.Recommendation{
			Type:      "rental_support",
			Rationale: fmt.Sprintf("A family of %d in shared housing qualifies for rental assistance review.", record.FamilySize),
			SuggestedActions: []string{
				"Submit a housing assistance application",
			},
			Priority: "high",
		})
	}
	if record.MonthlyIncome < 8000 {
		recs = append(recs, types.Recommendation{
			Type:      "income_support",
			Rationale: fmt.Sprintf("Monthly income of %.0f AED is below the support threshold.", record.MonthlyIncome),
			SuggestedActions: []string{
				"Review eligibility for monthly income supplements",
			},
			Priority: "high",
		})
	}
	if len(recs) == 0 {
		recs = append(recs, types.Recommendation{
			Type:      "other",
			Rationale: "Profile shows no acute need; offer general upskilling options.",
			SuggestedActions: []string{
				"Share the current catalog of free training programs",
			},
			Priority: "low",
		})
	}

	return types.EnablementPlan{
		OverallSummary:  fmt.Sprintf("Applicant %s received status %s; %d enablement measures suggested.", record.Name, decision.Status, len(recs)),
		Recommendations: recs,
	}
}
