package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/devsync/ai-engine/internal/http/handler"
	"github.com/devsync/ai-engine/internal/http/router"
	"github.com/devsync/ai-engine/internal/model"
	"github.com/devsync/ai-engine/internal/review"
)

var _ = Describe("ReviewHandler", func() {
	var (
		engine   *gin.Engine
		pipeline *mockPipeline
		store    *mockStore
	)

	setup := func(modelName string, mockMode bool) {
		gin.SetMode(gin.TestMode)
		engine = gin.New()
		h := handler.NewReviewHandler(pipeline, store, modelName, mockMode)
		router.SetupRoutes(engine, h)
	}

	BeforeEach(func() {
		pipeline = &mockPipeline{}
		store = &mockStore{}
		setup("gpt-4o-mini", false)
	})

	Describe("GET /health", func() {
		It("reports db_connected from the store ping", func() {
			store.pingFn = func(_ context.Context) bool { return true }

			w := httptest.NewRecorder()
			engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

			Expect(w.Code).To(Equal(http.StatusOK))
			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["status"]).To(Equal("ok"))
			Expect(resp["service"]).To(Equal("ai-engine"))
			Expect(resp["db_connected"]).To(BeTrue())
			Expect(resp["model"]).To(Equal("gpt-4o-mini"))
			Expect(resp["mock_mode"]).To(BeFalse())
		})

		It("never fails when the store is down", func() {
			store.pingFn = func(_ context.Context) bool { return false }

			w := httptest.NewRecorder()
			engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

			Expect(w.Code).To(Equal(http.StatusOK))
			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["db_connected"]).To(BeFalse())
		})

		It("reports not-set when no model is configured", func() {
			setup("", true)

			w := httptest.NewRecorder()
			engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["model"]).To(Equal("not-set"))
			Expect(resp["mock_mode"]).To(BeTrue())
		})
	})

	Describe("GET /reviews", func() {
		It("returns items newest first with the default limit", func() {
			var gotLimit int
			store.listFn = func(_ context.Context, limit int) ([]model.StoredReview, error) {
				gotLimit = limit
				return []model.StoredReview{
					{ID: 2, Summary: "second", Risks: []string{}, Improvements: []string{}, Model: "mock", CreatedAt: time.Now()},
					{ID: 1, Summary: "first", Risks: []string{}, Improvements: []string{}, Model: "mock", CreatedAt: time.Now()},
				}, nil
			}

			w := httptest.NewRecorder()
			engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/reviews", nil))

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(gotLimit).To(Equal(10))

			var resp struct {
				Items []model.StoredReview `json:"items"`
			}
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp.Items).To(HaveLen(2))
			Expect(resp.Items[0].ID).To(BeNumerically(">", resp.Items[1].ID))
		})

		It("passes the limit query param through", func() {
			var gotLimit int
			store.listFn = func(_ context.Context, limit int) ([]model.StoredReview, error) {
				gotLimit = limit
				return []model.StoredReview{}, nil
			}

			w := httptest.NewRecorder()
			engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/reviews?limit=3", nil))

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(gotLimit).To(Equal(3))
		})

		It("falls back to the default limit on a garbage param", func() {
			var gotLimit int
			store.listFn = func(_ context.Context, limit int) ([]model.StoredReview, error) {
				gotLimit = limit
				return []model.StoredReview{}, nil
			}

			w := httptest.NewRecorder()
			engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/reviews?limit=abc", nil))

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(gotLimit).To(Equal(10))
		})

		It("returns 500 when the store fails", func() {
			store.listFn = func(_ context.Context, _ int) ([]model.StoredReview, error) {
				return nil, errors.New("connection refused")
			}

			w := httptest.NewRecorder()
			engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/reviews", nil))

			Expect(w.Code).To(Equal(http.StatusInternalServerError))
		})
	})

	Describe("POST /ai/review", func() {
		It("returns the pipeline result with type code-review", func() {
			pipeline.reviewFn = func(_ context.Context, diff string) review.Result {
				Expect(diff).To(Equal("diff --git a/x b/x"))
				return review.Result{ReviewResult: model.ReviewResult{
					Summary:      "looks fine",
					Risks:        []string{"none"},
					Improvements: []string{},
					Model:        "gpt-4o-mini",
					Raw:          `{"summary":"looks fine"}`,
				}}
			}

			body, _ := json.Marshal(map[string]string{"diff": "diff --git a/x b/x"})
			req := httptest.NewRequest(http.MethodPost, "/ai/review", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			engine.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["summary"]).To(Equal("looks fine"))
			Expect(resp["type"]).To(Equal("code-review"))
			Expect(resp["model"]).To(Equal("gpt-4o-mini"))
			Expect(resp).NotTo(HaveKey("error"))
			Expect(resp["raw"]).NotTo(BeEmpty())
		})

		It("returns 200 for a degraded result, with the diagnostic in error", func() {
			pipeline.reviewFn = func(_ context.Context, _ string) review.Result {
				return review.Result{
					ReviewResult: model.ReviewResult{
						Summary:      "Fallback review generated.",
						Risks:        []string{"Model response could not be parsed."},
						Improvements: []string{"Check prompt formatting and model output."},
						Model:        "fallback:NetworkError",
					},
					Diagnostic: "NetworkError: openai chat: timeout",
				}
			}

			body, _ := json.Marshal(map[string]string{"diff": "anything"})
			req := httptest.NewRequest(http.MethodPost, "/ai/review", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			engine.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["model"]).To(Equal("fallback:NetworkError"))
			Expect(resp["error"]).To(ContainSubstring("NetworkError"))
		})

		It("accepts an empty diff", func() {
			called := false
			pipeline.reviewFn = func(_ context.Context, diff string) review.Result {
				called = true
				Expect(diff).To(BeEmpty())
				return review.Result{ReviewResult: model.ReviewResult{
					Risks: []string{}, Improvements: []string{}, Model: "mock",
				}}
			}

			req := httptest.NewRequest(http.MethodPost, "/ai/review", bytes.NewBufferString(`{"diff":""}`))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			engine.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(called).To(BeTrue())
		})

		It("returns 400 on a malformed request body", func() {
			req := httptest.NewRequest(http.MethodPost, "/ai/review", bytes.NewBufferString(`{`))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			engine.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})
})
