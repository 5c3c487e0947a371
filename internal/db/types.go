package db

import (
	"time"

	"github.com/google/uuid"
)

// Run represents a processing run record
type Run struct {
	ID            uuid.UUID  `json:"id"`
	ApplicantName string     `json:"applicant_name"`
	EmiratesID    string     `json:"emirates_id"`
	Status        string     `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
}

// Run status values
const (
	RunStatusRunning   = "running"
	RunStatusCompleted = "completed"
	RunStatusDegraded  = "degraded"
	RunStatusFailed    = "failed"
)

// Artifact categories group pipeline steps for listing
const (
	CategoryExtraction = "extraction"
	CategoryAssessment = "assessment"
	CategoryDecision   = "decision"
	CategorySynthesis  = "synthesis"
)
