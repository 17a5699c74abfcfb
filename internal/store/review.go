package store

import (
	"context"
	"fmt"

	"github.com/devsync/ai-engine/core/db"
	"github.com/devsync/ai-engine/internal/model"
)

const (
	defaultListLimit = 10
	maxListLimit     = 100
)

// Risks and improvements are stored as native text arrays rather than the
// delimiter-joined text a naive encoding would use, so entries containing
// commas survive a round trip.
const schema = `
CREATE TABLE IF NOT EXISTS code_reviews (
    id BIGSERIAL PRIMARY KEY,
    summary TEXT NOT NULL,
    risks TEXT[] NOT NULL DEFAULT '{}',
    improvements TEXT[] NOT NULL DEFAULT '{}',
    model TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// ReviewStore appends review records and reads them back newest first.
// With a nil database every operation degrades to a no-op so the review
// pipeline keeps working in environments without persistence.
type ReviewStore struct {
	db *db.DB
}

func NewReviewStore(database *db.DB) *ReviewStore {
	return &ReviewStore{db: database}
}

func (s *ReviewStore) Configured() bool {
	return s.db != nil
}

// Ping reports whether a trivial round-trip query succeeds. Any failure,
// including an unconfigured store, collapses to false.
func (s *ReviewStore) Ping(ctx context.Context) bool {
	if s.db == nil {
		return false
	}
	return s.db.Ping(ctx) == nil
}

// Init ensures the schema exists. Safe to call on every start.
func (s *ReviewStore) Init(ctx context.Context) error {
	if s.db == nil {
		return nil
	}
	if _, err := s.db.Pool().Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensuring code_reviews table: %w", err)
	}
	return nil
}

// Save appends one review. The database assigns id and created_at; rows are
// never updated or deleted afterwards.
func (s *ReviewStore) Save(ctx context.Context, result model.ReviewResult) error {
	if s.db == nil {
		return nil
	}

	_, err := s.db.Pool().Exec(ctx,
		`INSERT INTO code_reviews (summary, risks, improvements, model) VALUES ($1, $2, $3, $4)`,
		result.Summary, result.Risks, result.Improvements, result.Model)
	if err != nil {
		return fmt.Errorf("inserting review: %w", err)
	}
	return nil
}

// List returns up to limit reviews, newest first by descending id.
func (s *ReviewStore) List(ctx context.Context, limit int) ([]model.StoredReview, error) {
	if s.db == nil {
		return []model.StoredReview{}, nil
	}

	rows, err := s.db.Pool().Query(ctx,
		`SELECT id, summary, risks, improvements, model, created_at
		 FROM code_reviews
		 ORDER BY id DESC
		 LIMIT $1`,
		clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("listing reviews: %w", err)
	}
	defer rows.Close()

	items := []model.StoredReview{}
	for rows.Next() {
		var item model.StoredReview
		if err := rows.Scan(&item.ID, &item.Summary, &item.Risks, &item.Improvements, &item.Model, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning review row: %w", err)
		}
		if item.Risks == nil {
			item.Risks = []string{}
		}
		if item.Improvements == nil {
			item.Improvements = []string{}
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading review rows: %w", err)
	}

	return items, nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultListLimit
	}
	if limit > maxListLimit {
		return maxListLimit
	}
	return limit
}
