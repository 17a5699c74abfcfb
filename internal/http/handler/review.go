package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/devsync/ai-engine/internal/http/dto"
	"github.com/devsync/ai-engine/internal/model"
	"github.com/devsync/ai-engine/internal/review"
)

// Pipeline is the review pipeline as seen from the boundary. It never fails;
// degraded results are still complete.
type Pipeline interface {
	Review(ctx context.Context, diff string) review.Result
}

// ReviewReader is the read side of the store used by the boundary.
type ReviewReader interface {
	List(ctx context.Context, limit int) ([]model.StoredReview, error)
	Ping(ctx context.Context) bool
}

type ReviewHandler struct {
	pipeline  Pipeline
	store     ReviewReader
	modelName string
	mockMode  bool
}

func NewReviewHandler(pipeline Pipeline, store ReviewReader, modelName string, mockMode bool) *ReviewHandler {
	if modelName == "" {
		modelName = "not-set"
	}
	return &ReviewHandler{
		pipeline:  pipeline,
		store:     store,
		modelName: modelName,
		mockMode:  mockMode,
	}
}

// Health never fails; db_connected reflects a live store ping.
func (h *ReviewHandler) Health(c *gin.Context) {
	ctx := c.Request.Context()

	c.JSON(http.StatusOK, dto.HealthResponse{
		Status:      "ok",
		Service:     "ai-engine",
		DBConnected: h.store.Ping(ctx),
		Model:       h.modelName,
		MockMode:    h.mockMode,
	})
}

func (h *ReviewHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	limit := 10
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = n
		}
	}

	items, err := h.store.List(ctx, limit)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list reviews", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list reviews"})
		return
	}

	c.JSON(http.StatusOK, dto.ListReviewsResponse{Items: items})
}

// Create runs the review pipeline. Pipeline-level failures are not HTTP
// failures: a fallback review is still a 200 with the error field set.
func (h *ReviewHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := h.pipeline.Review(ctx, req.Diff)
	c.JSON(http.StatusOK, dto.ToReviewResponse(result))
}
