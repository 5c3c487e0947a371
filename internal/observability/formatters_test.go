package observability

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mansoor/social-support-agent/internal/types"
)

func TestPrintCanonicalRecord(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf)

	record := types.CanonicalRecord{
		Name:             "Fatima Al Mansoori",
		EmiratesID:       "784-1990-1234567-1",
		MonthlyIncome:    12000,
		FamilySize:       4,
		EmploymentStatus: "Employed",
		HousingType:      "Rented",
		CreditScore:      700,
		NetWorth:         50000,
	}
	printer.PrintCanonicalRecord(&record, []types.Inconsistency{
		{Field: "name", ResolvedValue: "Fatima Al Mansoori"},
	})

	out := buf.String()
	assert.Contains(t, out, "CONSOLIDATED PROFILE")
	assert.Contains(t, out, "Fatima Al Mansoori")
	assert.Contains(t, out, "Income:      12000.00/month")
	assert.Contains(t, out, "Inconsistencies:")
	assert.Contains(t, out, `name → "Fatima Al Mansoori"`)
}

func TestPrintCanonicalRecordNil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintCanonicalRecord(nil, nil)
	assert.Empty(t, buf.String())
}

func TestPrintAssessment(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf)

	printer.PrintAssessment(types.Assessment{Confidence: 1.0})
	assert.Contains(t, buf.String(), "No validation issues")

	buf.Reset()
	issues := make([]types.ValidationIssue, 7)
	for i := range issues {
		issues[i] = types.ValidationIssue{
			Field:    fmt.Sprintf("field_%d", i),
			Kind:     types.IssueMissing,
			Severity: types.SeverityHigh,
		}
	}
	printer.PrintAssessment(types.Assessment{
		Report:      types.ValidationReport{Issues: issues},
		ForceReview: true,
	})

	out := buf.String()
	assert.Contains(t, out, "Force review: true")
	assert.Contains(t, out, "field_0: missing (high)")
	assert.Contains(t, out, "... and 2 more")
	assert.NotContains(t, out, "field_6", "list is capped")
}

func TestPrintDecision(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintDecision(types.Decision{
		Status:     types.StatusApprove,
		Score:      0.85,
		Confidence: 0.95,
		Reasons:    []types.Reason{{Text: "High eligibility score"}},
	})

	out := buf.String()
	assert.Contains(t, out, "ELIGIBILITY DECISION")
	assert.Contains(t, out, "Status:     APPROVE")
	assert.Contains(t, out, "High eligibility score")
}

func TestPrintEnablementPlan(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf)

	printer.PrintEnablementPlan(types.EnablementPlan{})
	assert.Empty(t, buf.String(), "empty plan prints nothing")

	printer.PrintEnablementPlan(types.EnablementPlan{Recommendations: []types.Recommendation{
		{Type: "job_match", Priority: "high", Rationale: "Unemployed"},
	}})
	out := buf.String()
	assert.Contains(t, out, "ENABLEMENT PLAN")
	assert.Contains(t, out, "job_match (high)")
}
