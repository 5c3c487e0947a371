package server

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"

	"github.com/mansoor/social-support-agent/internal/db"
	"github.com/mansoor/social-support-agent/internal/extraction"
	"github.com/mansoor/social-support-agent/internal/types"
)

// maxUploadBytes bounds the multipart form size for POST /process.
const maxUploadBytes = 32 << 20

// documentFields maps multipart form field names to document kinds. Routing
// is by field name, not file extension.
var documentFields = []string{
	"identity_card",
	"bank_statement",
	"credit_report",
	"assets_liabilities",
}

// ProcessResponse is the body returned by POST /process.
type ProcessResponse struct {
	RunID           string                `json:"run_id,omitempty"`
	Decision        types.Decision        `json:"decision"`
	Record          types.CanonicalRecord `json:"record"`
	Inconsistencies []types.Inconsistency `json:"inconsistencies,omitempty"`
	Assessment      types.Assessment      `json:"assessment"`
	EnablementPlan  types.EnablementPlan  `json:"enablement_plan"`
	FinalSummary    string                `json:"final_summary,omitempty"`
	Similar         []db.SimilarApplicant `json:"similar_applicants,omitempty"`
	Errors          []string              `json:"errors,omitempty"`
}

// handleProcess accepts the applicant's documents as a multipart form and
// runs the full eligibility pipeline. Any subset of documents may be
// submitted; missing or broken documents degrade the run instead of failing
// it.
func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, &ErrValidation{Field: "body", Message: "invalid multipart form"})
		return
	}

	tmpDir, err := os.MkdirTemp("", "support-docs-*")
	if err != nil {
		writeError(w, fmt.Errorf("failed to stage uploads: %w", err))
		return
	}
	defer os.RemoveAll(tmpDir)

	var docs extraction.DocumentSet
	uploaded := 0
	for _, field := range documentFields {
		file, header, err := r.FormFile(field)
		if err == http.ErrMissingFile || err == http.ErrNotMultipart {
			continue
		}
		if err != nil {
			continue
		}
		path, err := stageUpload(tmpDir, field, header, file)
		file.Close()
		if err != nil {
			writeError(w, fmt.Errorf("failed to stage %s: %w", field, err))
			return
		}
		uploaded++
		switch field {
		case "identity_card":
			docs.Identity = path
		case "bank_statement":
			docs.BankStatement = path
		case "credit_report":
			docs.CreditReport = path
		case "assets_liabilities":
			docs.AssetsLiabilities = path
		}
	}
	if uploaded == 0 {
		writeError(w, &ErrValidation{Field: "documents", Message: "at least one document is required"})
		return
	}

	bundle := s.processor.ExtractBundle(r.Context(), docs)
	state, err := s.runner.Run(r.Context(), bundle)
	if err != nil {
		writeError(w, fmt.Errorf("processing failed: %w", err))
		return
	}

	resp := ProcessResponse{
		Decision:        state.Decision,
		Record:          state.Record,
		Inconsistencies: state.Inconsistencies,
		Assessment:      state.Assessment,
		EnablementPlan:  state.Plan,
		FinalSummary:    state.FinalSummary,
		Similar:         state.Similar,
		Errors:          state.Errors,
	}
	if state.RunID != uuid.Nil {
		resp.RunID = state.RunID.String()
	}
	writeJSON(w, http.StatusOK, resp)
}

// stageUpload copies one uploaded file into the staging directory, keeping
// the original extension so the extractors can detect image formats.
func stageUpload(dir, field string, header *multipart.FileHeader, file multipart.File) (string, error) {
	ext := filepath.Ext(header.Filename)
	path := filepath.Join(dir, field+ext)
	out, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer out.Close()
	if _, err := io.Copy(out, file); err != nil {
		return "", err
	}
	return path, nil
}

// handleListRuns returns recent processing runs, filterable by status and
// emirates_id query parameters.
func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	filters := db.RunFilters{
		Status:     r.URL.Query().Get("status"),
		EmiratesID: r.URL.Query().Get("emirates_id"),
	}
	if limit := r.URL.Query().Get("limit"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n < 1 {
			writeError(w, &ErrValidation{Field: "limit", Message: "must be a positive integer"})
			return
		}
		filters.Limit = n
	}

	runs, err := s.db.ListRuns(r.Context(), filters)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"runs": runs})
}

// handleGetRun returns one run by ID.
func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	run, err := s.db.GetRun(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if run == nil {
		writeError(w, &ErrNotFound{Resource: "run", ID: id.String()})
		return
	}
	writeJSON(w, http.StatusOK, run)
}

// handleDeleteRun deletes a run and its artifacts.
func (s *Server) handleDeleteRun(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	if err := s.db.DeleteRun(r.Context(), id); err != nil {
		writeError(w, &ErrNotFound{Resource: "run", ID: id.String()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// handleRunArtifacts lists the artifacts of one run.
func (s *Server) handleRunArtifacts(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	artifacts, err := s.db.ListArtifacts(r.Context(), db.ArtifactFilters{
		RunID:    id,
		Step:     r.URL.Query().Get("step"),
		Category: r.URL.Query().Get("category"),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"artifacts": artifacts})
}

// handleGetArtifact returns one artifact by ID.
func (s *Server) handleGetArtifact(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	artifact, err := s.db.GetArtifactByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if artifact == nil {
		writeError(w, &ErrNotFound{Resource: "artifact", ID: id.String()})
		return
	}
	writeJSON(w, http.StatusOK, artifact)
}

// handleSimilarApplicants returns stored applicants whose profiles are
// closest to the given applicant's embedding.
func (s *Server) handleSimilarApplicants(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	applicant, err := s.db.GetApplicant(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if applicant == nil {
		writeError(w, &ErrNotFound{Resource: "applicant", ID: id.String()})
		return
	}
	if len(applicant.Embedding) == 0 {
		writeJSON(w, http.StatusOK, map[string]any{"similar": []db.SimilarApplicant{}})
		return
	}

	limit := 5
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, &ErrValidation{Field: "limit", Message: "must be a positive integer"})
			return
		}
		limit = n
	}

	similar, err := s.db.SearchSimilar(r.Context(), applicant.Embedding, applicant.ID, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"similar": similar})
}

// pathUUID parses the {name} path segment as a UUID, writing a validation
// error when it is malformed.
func pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		writeError(w, &ErrValidation{Field: name, Message: "must be a valid UUID"})
		return uuid.Nil, false
	}
	return id, true
}
