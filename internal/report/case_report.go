package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mansoor/social-support-agent/internal/types"
)

// CaseReport is everything a case officer needs from one run, rendered to
// markdown for archival.
type CaseReport struct {
	RunID           string
	Record          types.CanonicalRecord
	Inconsistencies []types.Inconsistency
	Assessment      types.Assessment
	Decision        types.Decision
	Plan            types.EnablementPlan
	FinalSummary    string
	Errors          []string
	GeneratedAt     time.Time
}

// Render produces the markdown body of the case report.
func (r CaseReport) Render() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# Case Report: %s\n\n", displayName(r.Record.Name))
	fmt.Fprintf(&sb, "- Run: %s\n", r.RunID)
	fmt.Fprintf(&sb, "- Generated: %s\n", r.GeneratedAt.Format(time.RFC3339))
	fmt.Fprintf(&sb, "- Emirates ID: %s\n\n", r.Record.EmiratesID)

	fmt.Fprintf(&sb, "## Decision\n\n")
	fmt.Fprintf(&sb, "**%s** (score %.2f, confidence %.2f)\n\n", r.Decision.Status, r.Decision.Score, r.Decision.Confidence)
	for _, reason := range r.Decision.Reasons {
		fmt.Fprintf(&sb, "- %s\n", reason.Text)
	}

	fmt.Fprintf(&sb, "\n## Profile\n\n")
	fmt.Fprintf(&sb, "| Field | Value |\n|---|---|\n")
	fmt.Fprintf(&sb, "| Monthly income | %.2f |\n", r.Record.MonthlyIncome)
	fmt.Fprintf(&sb, "| Family size | %d |\n", r.Record.FamilySize)
	fmt.Fprintf(&sb, "| Employment | %s |\n", r.Record.EmploymentStatus)
	fmt.Fprintf(&sb, "| Housing | %s |\n", r.Record.HousingType)
	fmt.Fprintf(&sb, "| Marital status | %s |\n", r.Record.MaritalStatus)
	fmt.Fprintf(&sb, "| Disability | %t |\n", r.Record.HasDisability)
	fmt.Fprintf(&sb, "| Nationality | %s |\n", r.Record.Nationality)
	fmt.Fprintf(&sb, "| Credit score | %d |\n", r.Record.CreditScore)
	fmt.Fprintf(&sb, "| Net worth | %.2f |\n", r.Record.NetWorth)

	if len(r.Inconsistencies) > 0 {
		fmt.Fprintf(&sb, "\n## Cross-document inconsistencies\n\n")
		for _, inc := range r.Inconsistencies {
			fmt.Fprintf(&sb, "- %s resolved to %q", inc.Field, inc.ResolvedValue)
			var parts []string
			for _, kind := range types.AllSourceKinds {
				if v, ok := inc.ValueBySource[kind]; ok {
					parts = append(parts, fmt.Sprintf("%s=%q", kind, v))
				}
			}
			fmt.Fprintf(&sb, " (%s)\n", strings.Join(parts, ", "))
		}
	}

	if len(r.Assessment.Report.Issues) > 0 {
		fmt.Fprintf(&sb, "\n## Validation issues\n\n")
		for _, issue := range r.Assessment.Report.Issues {
			fmt.Fprintf(&sb, "- %s: %s (%s severity)\n", issue.Field, issue.Kind, issue.Severity)
		}
	}

	if len(r.Plan.Recommendations) > 0 {
		fmt.Fprintf(&sb, "\n## Enablement plan\n\n")
		if r.Plan.OverallSummary != "" {
			fmt.Fprintf(&sb, "%s\n\n", r.Plan.OverallSummary)
		}
		for _, rec := range r.Plan.Recommendations {
			fmt.Fprintf(&sb, "### %s (%s priority)\n\n%s\n\n", rec.Type, rec.Priority, rec.Rationale)
			for _, action := range rec.SuggestedActions {
				fmt.Fprintf(&sb, "- %s\n", action)
			}
			sb.WriteString("\n")
		}
	}

	if r.FinalSummary != "" {
		fmt.Fprintf(&sb, "\n## Summary\n\n%s\n", r.FinalSummary)
	}

	if len(r.Errors) > 0 {
		fmt.Fprintf(&sb, "\n## Processing notes\n\n")
		for _, e := range r.Errors {
			fmt.Fprintf(&sb, "- %s\n", e)
		}
	}

	return sb.String()
}

// Write renders the report into dir, creating it if needed, and returns the
// written path.
func (r CaseReport) Write(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}

	name := fmt.Sprintf("case_%s_%s.md", sanitizeFilename(r.Record.Name), r.RunID)
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(r.Render()), 0o644); err != nil {
		return "", fmt.Errorf("failed to write case report: %w", err)
	}
	return path, nil
}

func displayName(name string) string {
	if name == "" || name == types.UnknownValue {
		return "Unknown Applicant"
	}
	return name
}

// sanitizeFilename keeps letters, digits, dashes and underscores, mapping
// everything else to underscores.
func sanitizeFilename(name string) string {
	if name == "" || name == types.UnknownValue {
		return "unknown"
	}
	mapped := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
	return strings.ToLower(strings.Trim(mapped, "_"))
}
