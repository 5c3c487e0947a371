// Package report produces the applicant-facing case summary and the on-disk
// case report file.
package report

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mansoor/social-support-agent/internal/llm"
	"github.com/mansoor/social-support-agent/internal/schemas"
	"github.com/mansoor/social-support-agent/internal/types"
)

const summaryPromptTemplate = `You are drafting the final summary shown to a social support case officer.
Summarize the case below in plain language: who the applicant is, the decision
and why, and the recommended next steps. Keep it under 150 words.

Case:
%s

Return a JSON object with a single field "final_summary" containing the text.`

// Summarizer produces the final case summary, preferring LLM synthesis with a
// deterministic plain-text fallback.
type Summarizer struct {
	LLM llm.Client
}

// Summarize returns the summary text plus a degradation note; a non-empty
// note means the fallback composed the summary.
func (s *Summarizer) Summarize(ctx context.Context, record types.CanonicalRecord, decision types.Decision, plan types.EnablementPlan) (string, string) {
	if s.LLM == nil {
		return fallbackSummary(record, decision, plan), ""
	}

	text, err := s.synthesize(ctx, record, decision, plan)
	if err != nil {
		return fallbackSummary(record, decision, plan), fmt.Sprintf("summary synthesis failed: %v", err)
	}
	return text, ""
}

func (s *Summarizer) synthesize(ctx context.Context, record types.CanonicalRecord, decision types.Decision, plan types.EnablementPlan) (string, error) {
	caseDoc, err := json.Marshal(map[string]any{
		"applicant":  record,
		"decision":   decision,
		"enablement": plan,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode case: %w", err)
	}

	out, err := s.LLM.GenerateJSON(ctx, fmt.Sprintf(summaryPromptTemplate, caseDoc), llm.TierSynthesis)
	if err != nil {
		return "", err
	}
	if err := schemas.Validate(schemas.FinalSummary, out); err != nil {
		return "", err
	}

	var parsed struct {
		FinalSummary string `json:"final_summary"`
	}
	if err := json.Unmarshal([]byte(out), &parsed); err != nil {
		return "", fmt.Errorf("failed to decode summary: %w", err)
	}
	if strings.TrimSpace(parsed.FinalSummary) == "" {
		return "", fmt.Errorf("summary is empty")
	}
	return parsed.FinalSummary, nil
}

func fallbackSummary(record types.CanonicalRecord, decision types.Decision, plan types.EnablementPlan) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Applicant %s (%s): decision %s with eligibility score %.2f and validation confidence %.2f.",
		record.Name, record.EmiratesID, decision.Status, decision.Score, decision.Confidence)
	for _, reason := range decision.Reasons {
		fmt.Fprintf(&sb, " %s.", strings.TrimSuffix(reason.Text, "."))
	}
	if len(plan.Recommendations) > 0 {
		names := make([]string, len(plan.Recommendations))
		for i, rec := range plan.Recommendations {
			names[i] = rec.Type
		}
		fmt.Fprintf(&sb, " Recommended enablement: %s.", strings.Join(names, ", "))
	}
	return sb.String()
}
