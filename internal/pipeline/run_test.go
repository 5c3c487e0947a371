package pipeline

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mansoor/social-support-agent/internal/scoring"
	"github.com/mansoor/social-support-agent/internal/types"
)

type stubScorer struct {
	prediction scoring.Prediction
	err        error
}

func (s stubScorer) Score(context.Context, types.FeatureVector) (scoring.Prediction, error) {
	return s.prediction, s.err
}

func cleanBundle() types.RawExtractionBundle {
	return types.RawExtractionBundle{
		types.SourceIdentity: {Fields: map[string]any{
			"name":              "Fatima Al Mansoori",
			"emirates_id":       "784-1990-1234567-1",
			"nationality":       "UAE",
			"employment_status": "Employed",
			"marital_status":    "Married",
			"family_size":       float64(4),
			"has_disability":    false,
		}},
		types.SourceBankStatement: {Fields: map[string]any{
			"account_holder":           "Fatima Al Mansoori",
			"emirates_id":              "784-1990-1234567-1",
			"estimated_monthly_income": 12000.0,
		}},
		types.SourceCreditReport: {Fields: map[string]any{
			"emirates_id":  "784-1990-1234567-1",
			"credit_score": float64(700),
			"housing_type": "Rented",
		}},
		types.SourceAssetsLiabilities: {Fields: map[string]any{
			"net_worth": 50000.0,
		}},
	}
}

func TestRunNilBundle(t *testing.T) {
	runner := &Runner{}
	_, err := runner.Run(context.Background(), nil)
	require.Error(t, err)
}

func TestRunCleanApproval(t *testing.T) {
	runner := &Runner{Scorer: stubScorer{prediction: scoring.Prediction{Probability: 0.85, Label: 1}}}

	state, err := runner.Run(context.Background(), cleanBundle())
	require.NoError(t, err)

	assert.Equal(t, types.StatusApprove, state.Decision.Status)
	assert.Equal(t, 0.85, state.Decision.Score)
	assert.Equal(t, 1.0, state.Decision.Confidence)
	assert.Empty(t, state.Errors)
	assert.False(t, state.Degraded())
	assert.Len(t, state.UsedSources, 4)

	// Downstream synthesis stages still produce output without an LLM.
	assert.NotEmpty(t, state.Plan.Recommendations)
	assert.NotEmpty(t, state.FinalSummary)
}

func TestRunImplausibleDataForcesReview(t *testing.T) {
	bundle := cleanBundle()
	credit := bundle[types.SourceCreditReport]
	credit.Fields["credit_score"] = float64(950)
	bundle[types.SourceCreditReport] = credit

	runner := &Runner{Scorer: stubScorer{prediction: scoring.Prediction{Probability: 0.95, Label: 1}}}

	state, err := runner.Run(context.Background(), bundle)
	require.NoError(t, err)

	assert.True(t, state.Assessment.ForceReview)
	assert.Equal(t, types.StatusReview, state.Decision.Status)
}

func TestRunLowScoreDeclines(t *testing.T) {
	runner := &Runner{Scorer: stubScorer{prediction: scoring.Prediction{Probability: 0.20, Label: 0}}}

	state, err := runner.Run(context.Background(), cleanBundle())
	require.NoError(t, err)

	assert.Equal(t, types.StatusSoftDecline, state.Decision.Status)
}

func TestRunEmptyBundleStillDecides(t *testing.T) {
	runner := &Runner{Scorer: stubScorer{prediction: scoring.Prediction{Probability: 0.95, Label: 1}}}

	state, err := runner.Run(context.Background(), types.RawExtractionBundle{})
	require.NoError(t, err)

	assert.Equal(t, types.DefaultRecord(), state.Record)
	assert.Empty(t, state.UsedSources)
	assert.Contains(t, state.Errors, "no usable document sources; proceeding with defaulted profile")
	assert.True(t, state.Degraded())

	// Nothing extracted means every required field is missing, which vetoes
	// even a confident model.
	assert.True(t, state.Assessment.ForceReview)
	assert.Equal(t, types.StatusReview, state.Decision.Status)
	assert.NotEmpty(t, state.Plan.Recommendations)
	assert.NotEmpty(t, state.FinalSummary)
}

func TestRunRecordsFailedExtractions(t *testing.T) {
	bundle := cleanBundle()
	bundle[types.SourceIdentity] = types.RawExtraction{Error: "unreadable image"}

	runner := &Runner{Scorer: stubScorer{prediction: scoring.Prediction{Probability: 0.85, Label: 1}}}

	state, err := runner.Run(context.Background(), bundle)
	require.NoError(t, err)

	assert.Contains(t, state.Errors, "extraction failed for identity: unreadable image")
	assert.Len(t, state.UsedSources, 3)
	// The run still reaches a decision.
	assert.NotEmpty(t, state.Decision.Status)
}

func TestRunScorerFailureFailsOpen(t *testing.T) {
	runner := &Runner{Scorer: stubScorer{err: errors.New("model server down")}}

	state, err := runner.Run(context.Background(), cleanBundle())
	require.NoError(t, err)

	assert.Contains(t, state.Errors[0], "eligibility scoring failed")
	assert.Equal(t, scoring.Prediction{}, state.Prediction)
	// Score 0 with label 0 on a clean record resolves to decline.
	assert.Equal(t, types.StatusSoftDecline, state.Decision.Status)
}

func TestRunWithoutScorerFailsOpen(t *testing.T) {
	runner := &Runner{}

	state, err := runner.Run(context.Background(), cleanBundle())
	require.NoError(t, err)

	assert.Contains(t, state.Errors, "no scorer configured; defaulting score to 0")
	assert.Equal(t, types.StatusSoftDecline, state.Decision.Status)
}

func TestRunWritesCaseReport(t *testing.T) {
	dir := t.TempDir()
	runner := &Runner{
		Scorer:    stubScorer{prediction: scoring.Prediction{Probability: 0.85, Label: 1}},
		ReportDir: dir,
	}

	state, err := runner.Run(context.Background(), cleanBundle())
	require.NoError(t, err)

	require.NotEmpty(t, state.ReportPath)
	data, err := os.ReadFile(state.ReportPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# Case Report: Fatima Al Mansoori")
	assert.Contains(t, string(data), "**APPROVE**")
}

func TestRunDeterministic(t *testing.T) {
	runner := &Runner{Scorer: stubScorer{prediction: scoring.Prediction{Probability: 0.85, Label: 1}}}

	first, err := runner.Run(context.Background(), cleanBundle())
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		state, err := runner.Run(context.Background(), cleanBundle())
		require.NoError(t, err)
		assert.Equal(t, first.Record, state.Record)
		assert.Equal(t, first.Assessment, state.Assessment)
		assert.Equal(t, first.Decision, state.Decision)
		assert.Equal(t, first.Plan, state.Plan)
		assert.Equal(t, first.FinalSummary, state.FinalSummary)
		assert.Equal(t, first.Errors, state.Errors)
	}
}

func TestApplicantIdentityFallsBackToBankStatement(t *testing.T) {
	bundle := cleanBundle()
	bundle[types.SourceIdentity] = types.RawExtraction{Error: "unreadable"}

	name, emiratesID := applicantIdentity(bundle)
	assert.Equal(t, "Fatima Al Mansoori", name)
	assert.Equal(t, "784-1990-1234567-1", emiratesID)

	name, emiratesID = applicantIdentity(types.RawExtractionBundle{})
	assert.Equal(t, types.UnknownValue, name)
	assert.Equal(t, types.UnknownValue, emiratesID)
}
