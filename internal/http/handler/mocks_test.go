package handler_test

import (
	"context"

	"github.com/devsync/ai-engine/internal/model"
	"github.com/devsync/ai-engine/internal/review"
)

type mockPipeline struct {
	reviewFn func(ctx context.Context, diff string) review.Result
}

func (m *mockPipeline) Review(ctx context.Context, diff string) review.Result {
	if m.reviewFn != nil {
		return m.reviewFn(ctx, diff)
	}
	return review.Result{}
}

type mockStore struct {
	listFn func(ctx context.Context, limit int) ([]model.StoredReview, error)
	pingFn func(ctx context.Context) bool
}

func (m *mockStore) List(ctx context.Context, limit int) ([]model.StoredReview, error) {
	if m.listFn != nil {
		return m.listFn(ctx, limit)
	}
	return []model.StoredReview{}, nil
}

func (m *mockStore) Ping(ctx context.Context) bool {
	if m.pingFn != nil {
		return m.pingFn(ctx)
	}
	return false
}
