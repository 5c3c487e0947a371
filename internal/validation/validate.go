// Package validation scores the plausibility and completeness of a canonical
// applicant record. It never mutates the record: it only emits an ordered
// issue report, a confidence value in [0,1], and a force-review flag.
package validation

import (
	"strings"

	"github.com/mansoor/social-support-agent/internal/types"
)

// Confidence deductions per issue. Deductions are cumulative and
// independent; the final confidence is clamped to [0,1].
const (
	deductMissingField   = 0.20
	deductIncomeRange    = 0.25
	deductCreditRange    = 0.25
	deductUnknownValue   = 0.05
	deductNetWorthRange  = 0.10
	deductIdentityAbsent = 0.20
)

// Plausibility bounds.
const (
	minMonthlyIncome = 0.0
	maxMonthlyIncome = 100000.0
	minCreditScore   = 300
	maxCreditScore   = 900
	minNetWorth      = -1000000.0
	maxNetWorth      = 2000000.0
)

// requiredFields are the nine business fields every record needs, in the
// fixed order the missing-field check walks them.
var requiredFields = []string{
	"monthly_income",
	"family_size",
	"employment_status",
	"housing_type",
	"marital_status",
	"has_disability",
	"nationality",
	"credit_score",
	"net_worth",
}

// categoricalFields are checked for the Unknown placeholder, in order.
var categoricalFields = []string{
	"employment_status",
	"housing_type",
	"marital_status",
	"nationality",
}

// Validate runs the fixed check sequence against a canonical record and
// returns the assessment. A nil record means extraction produced nothing at
// all; every required field is then reported missing and the remaining
// checks run against the documented defaults.
func Validate(record *types.CanonicalRecord) types.Assessment {
	var issues []types.ValidationIssue
	confidence := 1.0
	forceReview := false

	if record == nil {
		for _, field := range requiredFields {
			issues = append(issues, types.ValidationIssue{
				Field:    field,
				Kind:     types.IssueMissing,
				Severity: types.SeverityHigh,
			})
			confidence -= deductMissingField
		}
		forceReview = true
		defaulted := types.DefaultRecord()
		// The empty record carries no identity at all.
		defaulted.Name = ""
		defaulted.EmiratesID = ""
		record = &defaulted
	}

	if record.MonthlyIncome < minMonthlyIncome || record.MonthlyIncome > maxMonthlyIncome {
		issues = append(issues, types.ValidationIssue{
			Field:    "monthly_income",
			Kind:     types.IssueOutOfRange,
			Severity: types.SeverityHigh,
		})
		confidence -= deductIncomeRange
		forceReview = true
	}

	if record.CreditScore < minCreditScore || record.CreditScore > maxCreditScore {
		issues = append(issues, types.ValidationIssue{
			Field:    "credit_score",
			Kind:     types.IssueOutOfRange,
			Severity: types.SeverityHigh,
		})
		confidence -= deductCreditRange
		forceReview = true
	}

	for _, field := range categoricalFields {
		if isUnknown(categoricalValue(record, field)) {
			issues = append(issues, types.ValidationIssue{
				Field:    field,
				Kind:     types.IssueUnknownValue,
				Severity: types.SeverityLow,
			})
			confidence -= deductUnknownValue
		}
	}

	// Net worth may legitimately be negative; only a sanity cap applies.
	if record.NetWorth < minNetWorth || record.NetWorth > maxNetWorth {
		issues = append(issues, types.ValidationIssue{
			Field:    "net_worth",
			Kind:     types.IssueOutOfRange,
			Severity: types.SeverityMedium,
		})
		confidence -= deductNetWorthRange
	}

	if missingIdentity(record.EmiratesID) {
		issues = append(issues, types.ValidationIssue{
			Field:    "emirates_id",
			Kind:     types.IssueMissingOrUnknown,
			Severity: types.SeverityHigh,
		})
		confidence -= deductIdentityAbsent
		forceReview = true
	}

	if missingIdentity(record.Name) {
		issues = append(issues, types.ValidationIssue{
			Field:    "name",
			Kind:     types.IssueMissingOrUnknown,
			Severity: types.SeverityHigh,
		})
		confidence -= deductIdentityAbsent
		forceReview = true
	}

	return types.Assessment{
		Report:      types.ValidationReport{Issues: issues},
		Confidence:  clamp(confidence, 0.0, 1.0),
		ForceReview: forceReview,
	}
}

// categoricalValue reads one of the four categorical fields by name.
func categoricalValue(record *types.CanonicalRecord, field string) string {
	switch field {
	case "employment_status":
		return record.EmploymentStatus
	case "housing_type":
		return record.HousingType
	case "marital_status":
		return record.MaritalStatus
	case "nationality":
		return record.Nationality
	}
	return ""
}

// isUnknown reports whether a categorical value is the Unknown placeholder.
func isUnknown(value string) bool {
	return strings.EqualFold(strings.TrimSpace(value), types.UnknownValue)
}

// missingIdentity reports whether an identity field is empty or Unknown.
func missingIdentity(value string) bool {
	trimmed := strings.TrimSpace(value)
	return trimmed == "" || strings.EqualFold(trimmed, types.UnknownValue)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
