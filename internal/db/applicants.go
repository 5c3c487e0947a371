package db

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/mansoor/social-support-agent/internal/types"
)

// Applicant is one stored applicant profile with its embedding vector, used
// for similar-case lookup.
type Applicant struct {
	ID         uuid.UUID             `json:"id"`
	RunID      uuid.UUID             `json:"run_id"`
	Name       string                `json:"name"`
	EmiratesID string                `json:"emirates_id"`
	Profile    types.CanonicalRecord `json:"profile"`
	Status     string                `json:"status"`
	Embedding  []float64             `json:"-"`
	CreatedAt  time.Time             `json:"created_at"`
}

// SaveApplicant stores an applicant profile with its embedding and returns
// the point ID. Embeddings are stored as jsonb; similarity search scans them.
func (db *DB) SaveApplicant(ctx context.Context, runID uuid.UUID, record types.CanonicalRecord, status string, embedding []float64) (uuid.UUID, error) {
	profileJSON, err := json.Marshal(record)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal profile: %w", err)
	}
	var embeddingJSON []byte
	if len(embedding) > 0 {
		embeddingJSON, err = json.Marshal(embedding)
		if err != nil {
			return uuid.Nil, fmt.Errorf("failed to marshal embedding: %w", err)
		}
	}

	var id uuid.UUID
	err = db.pool.QueryRow(ctx,
		`INSERT INTO applicants (run_id, name, emirates_id, profile, status, embedding)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		runID, record.Name, record.EmiratesID, profileJSON, status, embeddingJSON,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save applicant: %w", err)
	}
	return id, nil
}

// GetApplicant retrieves a stored applicant by ID
func (db *DB) GetApplicant(ctx context.Context, id uuid.UUID) (*Applicant, error) {
	var a Applicant
	var profileJSON, embeddingJSON []byte

	err := db.pool.QueryRow(ctx,
		`SELECT id, run_id, name, emirates_id, profile, status, embedding, created_at
		 FROM applicants WHERE id = $1`,
		id,
	).Scan(&a.ID, &a.RunID, &a.Name, &a.EmiratesID, &profileJSON, &a.Status, &embeddingJSON, &a.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get applicant: %w", err)
	}

	if err := json.Unmarshal(profileJSON, &a.Profile); err != nil {
		return nil, fmt.Errorf("failed to decode profile: %w", err)
	}
	if embeddingJSON != nil {
		_ = json.Unmarshal(embeddingJSON, &a.Embedding)
	}
	return &a, nil
}

// SimilarApplicant pairs a stored applicant with its cosine similarity to the
// query embedding.
type SimilarApplicant struct {
	Applicant  Applicant `json:"applicant"`
	Similarity float64   `json:"similarity"`
}

// SearchSimilar finds the stored applicants whose embeddings are closest to
// the query by cosine similarity, excluding the applicant identified by
// excludeID. Embeddings live in jsonb, so ranking happens in process.
func (db *DB) SearchSimilar(ctx context.Context, query []float64, excludeID uuid.UUID, limit int) ([]SimilarApplicant, error) {
	if len(query) == 0 {
		return nil, fmt.Errorf("query embedding is empty")
	}
	if limit <= 0 {
		limit = 5
	}

	rows, err := db.pool.Query(ctx,
		`SELECT id, run_id, name, emirates_id, profile, status, embedding, created_at
		 FROM applicants WHERE embedding IS NOT NULL AND id <> $1`,
		excludeID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query applicants: %w", err)
	}
	defer rows.Close()

	var matches []SimilarApplicant
	for rows.Next() {
		var a Applicant
		var profileJSON, embeddingJSON []byte
		if err := rows.Scan(&a.ID, &a.RunID, &a.Name, &a.EmiratesID, &profileJSON, &a.Status, &embeddingJSON, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan applicant: %w", err)
		}
		if err := json.Unmarshal(profileJSON, &a.Profile); err != nil {
			continue
		}
		if err := json.Unmarshal(embeddingJSON, &a.Embedding); err != nil {
			continue
		}
		sim, ok := cosineSimilarity(query, a.Embedding)
		if !ok {
			continue
		}
		matches = append(matches, SimilarApplicant{Applicant: a, Similarity: sim})
	}

	// Selection sort of the top matches keeps ordering deterministic for
	// equal similarities (earlier insert wins).
	for i := 0; i < len(matches) && i < limit; i++ {
		best := i
		for j := i + 1; j < len(matches); j++ {
			if matches[j].Similarity > matches[best].Similarity {
				best = j
			}
		}
		matches[i], matches[best] = matches[best], matches[i]
	}
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

func cosineSimilarity(a, b []float64) (float64, bool) {
	if len(a) != len(b) || len(a) == 0 {
		return 0, false
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0, false
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), true
}
