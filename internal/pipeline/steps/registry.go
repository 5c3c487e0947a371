// Package steps provides step definitions and dependency validation for the
// eligibility processing pipeline.
package steps

import (
	"fmt"

	dbpkg "github.com/mansoor/social-support-agent/internal/db"
)

// Step names, in the order the runner executes them.
const (
	StepExtractDocuments    = "extract_documents"
	StepConsolidateProfile  = "consolidate_profile"
	StepValidateProfile     = "validate_profile"
	StepProjectFeatures     = "project_features"
	StepScoreEligibility    = "score_eligibility"
	StepDecide              = "decide"
	StepRecommendEnablement = "recommend_enablement"
	StepSummarizeCase       = "summarize_case"
	StepStoreApplicant      = "store_applicant"
)

// StepDefinition defines metadata for a pipeline step
type StepDefinition struct {
	Name         string
	Category     string
	Dependencies []string
}

// Order lists every step in execution order. The chain is linear: each step
// consumes the previous step's state.
var Order = []string{
	StepExtractDocuments,
	StepConsolidateProfile,
	StepValidateProfile,
	StepProjectFeatures,
	StepScoreEligibility,
	StepDecide,
	StepRecommendEnablement,
	StepSummarizeCase,
	StepStoreApplicant,
}

// Registry holds all step definitions
var Registry = map[string]StepDefinition{
	StepExtractDocuments: {
		Name:         StepExtractDocuments,
		Category:     dbpkg.CategoryExtraction,
		Dependencies: []string{},
	},
	StepConsolidateProfile: {
		Name:         StepConsolidateProfile,
		Category:     dbpkg.CategoryExtraction,
		Dependencies: []string{StepExtractDocuments},
	},
	StepValidateProfile: {
		Name:         StepValidateProfile,
		Category:     dbpkg.CategoryAssessment,
		Dependencies: []string{StepConsolidateProfile},
	},
	StepProjectFeatures: {
		Name:         StepProjectFeatures,
		Category:     dbpkg.CategoryAssessment,
		Dependencies: []string{StepValidateProfile},
	},
	StepScoreEligibility: {
		Name:         StepScoreEligibility,
		Category:     dbpkg.CategoryDecision,
		Dependencies: []string{StepProjectFeatures},
	},
	StepDecide: {
		Name:         StepDecide,
		Category:     dbpkg.CategoryDecision,
		Dependencies: []string{StepScoreEligibility, StepValidateProfile},
	},
	StepRecommendEnablement: {
		Name:         StepRecommendEnablement,
		Category:     dbpkg.CategorySynthesis,
		Dependencies: []string{StepDecide},
	},
	StepSummarizeCase: {
		Name:         StepSummarizeCase,
		Category:     dbpkg.CategorySynthesis,
		Dependencies: []string{StepRecommendEnablement},
	},
	StepStoreApplicant: {
		Name:         StepStoreApplicant,
		Category:     dbpkg.CategorySynthesis,
		Dependencies: []string{StepDecide},
	},
}

// Category returns the artifact category for a step, empty for unknown steps.
func Category(stepName string) string {
	return Registry[stepName].Category
}

// DependencyError represents a dependency validation error
type DependencyError struct {
	Step                string
	MissingDependencies []string
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("step %s missing dependencies: %v", e.Step, e.MissingDependencies)
}

// ValidateDependencies checks that every dependency of stepName is in the
// completed set.
func ValidateDependencies(stepName string, completed map[string]bool) error {
	def, ok := Registry[stepName]
	if !ok {
		return fmt.Errorf("unknown step: %s", stepName)
	}

	var missing []string
	for _, dep := range def.Dependencies {
		if !completed[dep] {
			missing = append(missing, dep)
		}
	}
	if len(missing) > 0 {
		return &DependencyError{Step: stepName, MissingDependencies: missing}
	}
	return nil
}
