// Package pipeline provides the high-level orchestration for one applicant
// eligibility run: consolidation, validation, scoring, decision, and the
// downstream synthesis stages.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mansoor/social-support-agent/internal/consolidate"
	"github.com/mansoor/social-support-agent/internal/db"
	"github.com/mansoor/social-support-agent/internal/decision"
	"github.com/mansoor/social-support-agent/internal/enablement"
	"github.com/mansoor/social-support-agent/internal/features"
	"github.com/mansoor/social-support-agent/internal/observability"
	"github.com/mansoor/social-support-agent/internal/pipeline/steps"
	"github.com/mansoor/social-support-agent/internal/report"
	"github.com/mansoor/social-support-agent/internal/scoring"
	"github.com/mansoor/social-support-agent/internal/types"
	"github.com/mansoor/social-support-agent/internal/validation"
)

// Embedder is the slice of the LLM client the runner needs for the applicant
// similarity store.
type Embedder interface {
	EmbedText(ctx context.Context, text string) ([]float64, error)
}

// Runner drives the stages of one applicant run. Collaborators are read-only
// from the runner's perspective and safe to share across concurrent runs;
// any of them may be nil, which disables the stage it serves.
type Runner struct {
	Scorer      scoring.Scorer
	Recommender *enablement.Recommender
	Summarizer  *report.Summarizer
	Embedder    Embedder
	DB          *db.DB

	Printer   *observability.Printer
	Verbose   bool
	ReportDir string
}

// Run executes the full pipeline over one extraction bundle. Every stage is
// fail-open: a stage that cannot complete appends to State.Errors, writes its
// documented default, and the chain continues, so a decision is always
// produced. The returned error covers only a malformed invocation.
func (r *Runner) Run(ctx context.Context, bundle types.RawExtractionBundle) (*State, error) {
	if bundle == nil {
		return nil, fmt.Errorf("extraction bundle is nil")
	}

	state := &State{Bundle: bundle}

	for kind, raw := range bundle {
		if raw.Failed() {
			state.AddError("extraction failed for %s: %s", kind, raw.Error)
		}
	}

	r.startRun(ctx, state)
	r.saveArtifact(ctx, state, steps.StepExtractDocuments, bundle)

	// Consolidation and validation are pure; they cannot fail, only degrade
	// through missing sources.
	record, inconsistencies, used := consolidate.Consolidate(bundle)
	state.Record = record
	state.Inconsistencies = inconsistencies
	state.UsedSources = used
	if len(used) == 0 {
		state.AddError("no usable document sources; proceeding with defaulted profile")
	}
	r.saveArtifact(ctx, state, steps.StepConsolidateProfile, map[string]any{
		"record":          record,
		"inconsistencies": inconsistencies,
		"used_sources":    used,
	})
	if r.Verbose && r.Printer != nil {
		r.Printer.PrintCanonicalRecord(&state.Record, state.Inconsistencies)
	}

	validated := &state.Record
	if len(used) == 0 {
		validated = nil
	}
	state.Assessment = validation.Validate(validated)
	r.saveArtifact(ctx, state, steps.StepValidateProfile, state.Assessment)
	if r.Verbose && r.Printer != nil {
		r.Printer.PrintAssessment(state.Assessment)
	}

	state.Features = features.Project(&state.Record)
	r.saveArtifact(ctx, state, steps.StepProjectFeatures, state.Features)

	state.Prediction = r.score(ctx, state)
	r.saveArtifact(ctx, state, steps.StepScoreEligibility, state.Prediction)

	state.Decision = decision.Decide(state.Prediction.Probability, state.Prediction.Label, state.Assessment)
	r.saveArtifact(ctx, state, steps.StepDecide, state.Decision)
	if r.Verbose && r.Printer != nil {
		r.Printer.PrintDecision(state.Decision)
	}

	r.recommend(ctx, state)
	r.summarize(ctx, state)
	r.store(ctx, state)
	r.writeReport(ctx, state)
	r.finishRun(ctx, state)

	return state, nil
}

// score invokes the classifier collaborator. An unavailable scorer defaults
// to probability 0.0 and label 0, which the decision engine resolves to
// SOFT_DECLINE or REVIEW.
func (r *Runner) score(ctx context.Context, state *State) scoring.Prediction {
	if r.Scorer == nil {
		state.AddError("no scorer configured; defaulting score to 0")
		return scoring.Prediction{}
	}
	prediction, err := r.Scorer.Score(ctx, state.Features)
	if err != nil {
		state.AddError("eligibility scoring failed: %v; defaulting score to 0", err)
		return scoring.Prediction{}
	}
	return prediction
}

func (r *Runner) recommend(ctx context.Context, state *State) {
	recommender := r.Recommender
	if recommender == nil {
		recommender = &enablement.Recommender{}
	}
	plan, note := recommender.Recommend(ctx, state.Record, state.Decision)
	if note != "" {
		state.AddError("%s", note)
	}
	state.Plan = plan
	r.saveArtifact(ctx, state, steps.StepRecommendEnablement, plan)
	if r.Verbose && r.Printer != nil {
		r.Printer.PrintEnablementPlan(plan)
	}
}

func (r *Runner) summarize(ctx context.Context, state *State) {
	summarizer := r.Summarizer
	if summarizer == nil {
		summarizer = &report.Summarizer{}
	}
	text, note := summarizer.Summarize(ctx, state.Record, state.Decision, state.Plan)
	if note != "" {
		state.AddError("%s", note)
	}
	state.FinalSummary = text
	r.saveTextArtifact(ctx, state, steps.StepSummarizeCase, text)
}

// store embeds the applicant profile, saves it, and looks up similar cases.
// Requires both the embedder and the database; skipped silently when either
// is absent because similarity lookup is an enrichment, not a stage output.
func (r *Runner) store(ctx context.Context, state *State) {
	if r.Embedder == nil || r.DB == nil {
		return
	}

	embedding, err := r.Embedder.EmbedText(ctx, profileText(state.Record, state.Decision))
	if err != nil {
		state.AddError("failed to embed applicant profile: %v", err)
		return
	}
	state.Embedding = embedding

	pointID, err := r.DB.SaveApplicant(ctx, state.RunID, state.Record, string(state.Decision.Status), embedding)
	if err != nil {
		state.AddError("failed to store applicant: %v", err)
		return
	}
	state.PointID = pointID

	similar, err := r.DB.SearchSimilar(ctx, embedding, pointID, 5)
	if err != nil {
		state.AddError("similar-applicant search failed: %v", err)
		return
	}
	state.Similar = similar
	r.saveArtifact(ctx, state, steps.StepStoreApplicant, map[string]any{
		"point_id": pointID,
		"similar":  similar,
	})
}

func (r *Runner) writeReport(ctx context.Context, state *State) {
	caseReport := report.CaseReport{
		RunID:           runLabel(state.RunID),
		Record:          state.Record,
		Inconsistencies: state.Inconsistencies,
		Assessment:      state.Assessment,
		Decision:        state.Decision,
		Plan:            state.Plan,
		FinalSummary:    state.FinalSummary,
		Errors:          state.Errors,
		GeneratedAt:     time.Now(),
	}
	r.saveTextArtifact(ctx, state, steps.StepSummarizeCase+"_report", caseReport.Render())

	if r.ReportDir == "" {
		return
	}
	path, err := caseReport.Write(r.ReportDir)
	if err != nil {
		state.AddError("failed to write case report: %v", err)
		return
	}
	state.ReportPath = path
}

func (r *Runner) startRun(ctx context.Context, state *State) {
	if r.DB == nil {
		return
	}
	name, emiratesID := applicantIdentity(state.Bundle)
	runID, err := r.DB.CreateRun(ctx, name, emiratesID)
	if err != nil {
		state.AddError("failed to create run record: %v", err)
		return
	}
	state.RunID = runID
}

func (r *Runner) finishRun(ctx context.Context, state *State) {
	if r.DB == nil || state.RunID == uuid.Nil {
		return
	}
	status := db.RunStatusCompleted
	if state.Degraded() {
		status = db.RunStatusDegraded
	}
	if err := r.DB.CompleteRun(ctx, state.RunID, status); err != nil {
		state.AddError("failed to complete run record: %v", err)
	}
}

func (r *Runner) saveArtifact(ctx context.Context, state *State, step string, content any) {
	if r.DB == nil || state.RunID == uuid.Nil {
		return
	}
	if err := r.DB.SaveArtifact(ctx, state.RunID, step, steps.Category(step), content); err != nil {
		state.AddError("failed to save %s artifact: %v", step, err)
	}
}

func (r *Runner) saveTextArtifact(ctx context.Context, state *State, step, text string) {
	if r.DB == nil || state.RunID == uuid.Nil {
		return
	}
	category := steps.Category(step)
	if category == "" {
		category = db.CategorySynthesis
	}
	if err := r.DB.SaveTextArtifact(ctx, state.RunID, step, category, text); err != nil {
		state.AddError("failed to save %s artifact: %v", step, err)
	}
}

// applicantIdentity pulls a best-effort name and ID out of the raw bundle so
// the run record is searchable before consolidation happens.
func applicantIdentity(bundle types.RawExtractionBundle) (string, string) {
	name, emiratesID := types.UnknownValue, types.UnknownValue
	if raw, ok := bundle.Usable(types.SourceIdentity); ok {
		if v, ok := raw.StringField("name"); ok && v != "" {
			name = v
		}
		if v, ok := raw.StringField("emirates_id"); ok && v != "" {
			emiratesID = v
		}
	}
	if raw, ok := bundle.Usable(types.SourceBankStatement); ok {
		if name == types.UnknownValue {
			if v, ok := raw.StringField("account_holder"); ok && v != "" {
				name = v
			}
		}
		if emiratesID == types.UnknownValue {
			if v, ok := raw.StringField("emirates_id"); ok && v != "" {
				emiratesID = v
			}
		}
	}
	return name, emiratesID
}

// profileText is the canonical text rendering fed to the embedding model.
func profileText(record types.CanonicalRecord, d types.Decision) string {
	return fmt.Sprintf(
		"Applicant %s, monthly income %.0f, family size %d, employment %s, housing %s, marital status %s, disability %t, nationality %s, credit score %d, net worth %.0f, decision %s",
		record.Name, record.MonthlyIncome, record.FamilySize, record.EmploymentStatus,
		record.HousingType, record.MaritalStatus, record.HasDisability, record.Nationality,
		record.CreditScore, record.NetWorth, d.Status,
	)
}

func runLabel(id uuid.UUID) string {
	if id == uuid.Nil {
		return "local"
	}
	return id.String()
}
