// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/mansoor/social-support-agent/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintCanonicalRecord outputs the merged applicant profile plus any
// cross-document inconsistencies.
func (p *Printer) PrintCanonicalRecord(record *types.CanonicalRecord, inconsistencies []types.Inconsistency) {
	if record == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:        %s\n", record.Name))
	sb.WriteString(fmt.Sprintf("Emirates ID: %s\n", record.EmiratesID))
	sb.WriteString(fmt.Sprintf("Income:      %.2f/month\n", record.MonthlyIncome))
	sb.WriteString(fmt.Sprintf("Family:      %d\n", record.FamilySize))
	sb.WriteString(fmt.Sprintf("Employment:  %s\n", record.EmploymentStatus))
	sb.WriteString(fmt.Sprintf("Housing:     %s\n", record.HousingType))
	sb.WriteString(fmt.Sprintf("Credit:      %d\n", record.CreditScore))
	sb.WriteString(fmt.Sprintf("Net worth:   %.2f\n", record.NetWorth))

	if len(inconsistencies) > 0 {
		sb.WriteString("\nInconsistencies:\n")
		count := min(len(inconsistencies), maxItemsToShow)
		for i := 0; i < count; i++ {
			inc := inconsistencies[i]
			sb.WriteString(fmt.Sprintf("  • %s → %q\n", inc.Field, inc.ResolvedValue))
		}
		if len(inconsistencies) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(inconsistencies)-maxItemsToShow))
		}
	}

	p.printBox("CONSOLIDATED PROFILE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintAssessment outputs the validation report and confidence.
func (p *Printer) PrintAssessment(assessment types.Assessment) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Confidence:   %.2f\n", assessment.Confidence))
	sb.WriteString(fmt.Sprintf("Force review: %t\n", assessment.ForceReview))

	if len(assessment.Report.Issues) > 0 {
		sb.WriteString("\nIssues:\n")
		count := min(len(assessment.Report.Issues), maxItemsToShow)
		for i := 0; i < count; i++ {
			issue := assessment.Report.Issues[i]
			sb.WriteString(fmt.Sprintf("  • %s: %s (%s)\n", issue.Field, issue.Kind, issue.Severity))
		}
		if len(assessment.Report.Issues) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(assessment.Report.Issues)-maxItemsToShow))
		}
	} else {
		sb.WriteString("\nNo validation issues\n")
	}

	p.printBox("VALIDATION ASSESSMENT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintDecision outputs the decision with its reasons.
func (p *Printer) PrintDecision(d types.Decision) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Status:     %s\n", d.Status))
	sb.WriteString(fmt.Sprintf("Score:      %.2f\n", d.Score))
	sb.WriteString(fmt.Sprintf("Confidence: %.2f\n", d.Confidence))
	for _, reason := range d.Reasons {
		sb.WriteString(fmt.Sprintf("  • %s\n", reason.Text))
	}

	p.printBox("ELIGIBILITY DECISION", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintEnablementPlan outputs the recommended enablement measures.
func (p *Printer) PrintEnablementPlan(plan types.EnablementPlan) {
	if len(plan.Recommendations) == 0 {
		return
	}

	var sb strings.Builder
	count := min(len(plan.Recommendations), maxItemsToShow)
	for i := 0; i < count; i++ {
		rec := plan.Recommendations[i]
		sb.WriteString(fmt.Sprintf("%s (%s)\n", rec.Type, rec.Priority))
		sb.WriteString(fmt.Sprintf("  %s\n", rec.Rationale))
	}
	if len(plan.Recommendations) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("... and %d more\n", len(plan.Recommendations)-maxItemsToShow))
	}

	p.printBox("ENABLEMENT PLAN", strings.TrimSuffix(sb.String(), "\n"))
}
