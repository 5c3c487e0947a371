package report

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mansoor/social-support-agent/internal/llm"
	"github.com/mansoor/social-support-agent/internal/types"
)

type fakeLLM struct {
	response string
	err      error
}

func (f *fakeLLM) GenerateJSON(context.Context, string, llm.ModelTier) (string, error) {
	return f.response, f.err
}

func (f *fakeLLM) GenerateJSONFromImage(context.Context, string, string, []byte) (string, error) {
	return "", errors.New("not used")
}

func (f *fakeLLM) GenerateJSONFromPDF(context.Context, string, []byte) (string, error) {
	return "", errors.New("not used")
}

func (f *fakeLLM) EmbedText(context.Context, string) ([]float64, error) {
	return nil, errors.New("not used")
}

func (f *fakeLLM) Close() error { return nil }

func sampleRecord() types.CanonicalRecord {
	return types.CanonicalRecord{
		MonthlyIncome:    12000,
		FamilySize:       4,
		EmploymentStatus: "Employed",
		HousingType:      "Rented",
		MaritalStatus:    "Married",
		Nationality:      "UAE",
		CreditScore:      700,
		NetWorth:         50000,
		Name:             "Fatima Al Mansoori",
		EmiratesID:       "784-1990-1234567-1",
	}
}

func sampleDecision() types.Decision {
	return types.Decision{
		Status:     types.StatusApprove,
		Score:      0.85,
		Confidence: 0.95,
		Reasons: []types.Reason{
			{Text: "High eligibility score (0.85) with sufficient validation confidence (0.95)"},
		},
	}
}

func TestSummarizeWithoutLLM(t *testing.T) {
	s := &Summarizer{}
	plan := types.EnablementPlan{Recommendations: []types.Recommendation{
		{Type: "income_support"}, {Type: "job_match"},
	}}

	text, note := s.Summarize(context.Background(), sampleRecord(), sampleDecision(), plan)

	assert.Empty(t, note)
	assert.Contains(t, text, "Fatima Al Mansoori")
	assert.Contains(t, text, "784-1990-1234567-1")
	assert.Contains(t, text, "APPROVE")
	assert.Contains(t, text, "score 0.85")
	assert.Contains(t, text, "income_support, job_match")
}

func TestSummarizeSynthesisSuccess(t *testing.T) {
	s := &Summarizer{LLM: &fakeLLM{response: `{"final_summary": "Approved with enablement follow-up."}`}}

	text, note := s.Summarize(context.Background(), sampleRecord(), sampleDecision(), types.EnablementPlan{})

	assert.Empty(t, note)
	assert.Equal(t, "Approved with enablement follow-up.", text)
}

func TestSummarizeFallsBackOnFailure(t *testing.T) {
	tests := []struct {
		name   string
		client *fakeLLM
	}{
		{"client error", &fakeLLM{err: errors.New("quota exhausted")}},
		{"schema violation", &fakeLLM{response: `{"wrong_field": "x"}`}},
		{"blank summary", &fakeLLM{response: `{"final_summary": "   "}`}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Summarizer{LLM: tt.client}
			text, note := s.Summarize(context.Background(), sampleRecord(), sampleDecision(), types.EnablementPlan{})

			assert.Contains(t, note, "summary synthesis failed")
			assert.Contains(t, text, "Fatima Al Mansoori")
		})
	}
}

func TestCaseReportRender(t *testing.T) {
	r := CaseReport{
		RunID:  "0b6f9f3e-0000-0000-0000-000000000001",
		Record: sampleRecord(),
		Inconsistencies: []types.Inconsistency{{
			Field: "name",
			ValueBySource: map[types.SourceKind]string{
				types.SourceIdentity:      "Fatima Al Mansoori",
				types.SourceBankStatement: "F. Almansoori",
			},
			ResolvedValue: "Fatima Al Mansoori",
		}},
		Assessment: types.Assessment{
			Report: types.ValidationReport{Issues: []types.ValidationIssue{
				{Field: "nationality", Kind: types.IssueUnknownValue, Severity: types.SeverityLow},
			}},
			Confidence: 0.95,
		},
		Decision: sampleDecision(),
		Plan: types.EnablementPlan{
			OverallSummary: "Minor debt stress.",
			Recommendations: []types.Recommendation{{
				Type:             "financial_counseling",
				Rationale:        "Debt ratio is elevated.",
				SuggestedActions: []string{"Budget review"},
				Priority:         "medium",
			}},
		},
		FinalSummary: "Approved with follow-up.",
		Errors:       []string{"identity card unreadable"},
		GeneratedAt:  time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC),
	}

	body := r.Render()

	assert.Contains(t, body, "# Case Report: Fatima Al Mansoori")
	assert.Contains(t, body, "- Run: 0b6f9f3e-0000-0000-0000-000000000001")
	assert.Contains(t, body, "**APPROVE** (score 0.85, confidence 0.95)")
	assert.Contains(t, body, "| Monthly income | 12000.00 |")
	assert.Contains(t, body, "## Cross-document inconsistencies")
	assert.Contains(t, body, `name resolved to "Fatima Al Mansoori"`)
	assert.Contains(t, body, `identity="Fatima Al Mansoori", bank_statement="F. Almansoori"`)
	assert.Contains(t, body, "- nationality: unknown_value (low severity)")
	assert.Contains(t, body, "### financial_counseling (medium priority)")
	assert.Contains(t, body, "## Summary\n\nApproved with follow-up.")
	assert.Contains(t, body, "## Processing notes")
	assert.Contains(t, body, "- identity card unreadable")
}

func TestCaseReportRenderOmitsEmptySections(t *testing.T) {
	r := CaseReport{RunID: "x", Record: sampleRecord(), Decision: sampleDecision()}
	body := r.Render()

	assert.NotContains(t, body, "## Cross-document inconsistencies")
	assert.NotContains(t, body, "## Validation issues")
	assert.NotContains(t, body, "## Enablement plan")
	assert.NotContains(t, body, "## Processing notes")
}

func TestCaseReportRenderUnknownApplicant(t *testing.T) {
	record := sampleRecord()
	record.Name = types.UnknownValue
	r := CaseReport{Record: record, Decision: sampleDecision()}

	assert.Contains(t, r.Render(), "# Case Report: Unknown Applicant")
}

func TestCaseReportWrite(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")
	r := CaseReport{
		RunID:    "run-42",
		Record:   sampleRecord(),
		Decision: sampleDecision(),
	}

	path, err := r.Write(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "case_fatima_al_mansoori_run-42.md"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, r.Render(), string(data))
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Fatima Al Mansoori", "fatima_al_mansoori"},
		{"", "unknown"},
		{types.UnknownValue, "unknown"},
		{"A/B\\C:D", "a_b_c_d"},
		{"__edge__", "edge"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sanitizeFilename(tt.in))
	}
}
