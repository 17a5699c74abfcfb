package review

import (
	"context"
	"log/slog"
	"strings"

	"github.com/devsync/ai-engine/common/logger"
	"github.com/devsync/ai-engine/internal/llm"
	"github.com/devsync/ai-engine/internal/model"
)

// Saver is the narrow slice of the store the pipeline needs. Persistence is
// best-effort; the pipeline's contract is to answer the caller.
type Saver interface {
	Save(ctx context.Context, result model.ReviewResult) error
}

// Result is the pipeline's terminal value. Diagnostic is non-empty only when
// a fallback was substituted and carries the originating failure for the
// caller; the embedded ReviewResult is complete either way.
type Result struct {
	model.ReviewResult
	Diagnostic string
}

// Pipeline turns a raw diff into a persisted, schema-shaped review.
type Pipeline struct {
	gen      llm.Client
	store    Saver
	mockMode bool
}

func New(gen llm.Client, store Saver, mockMode bool) *Pipeline {
	return &Pipeline{gen: gen, store: store, mockMode: mockMode}
}

// Review runs the full pipeline: prompt → generate → parse → persist.
// It never fails; generation or parse errors select the fallback result.
// Exactly one save is attempted per call regardless of which path produced
// the result.
func (p *Pipeline) Review(ctx context.Context, diff string) Result {
	diff = strings.TrimSpace(diff)

	if p.mockMode {
		result := mockResult()
		p.persist(ctx, result)
		return Result{ReviewResult: result}
	}

	sc := logger.StartSpan(ctx, "review.generate")
	gen, err := p.gen.Generate(sc.Context(), buildPrompt(diff))
	sc.RecordError(err)
	sc.End()
	if err != nil {
		return p.fallback(ctx, err)
	}

	payload, err := parseReview(gen.Text)
	if err != nil {
		return p.fallback(ctx, err)
	}

	result := model.ReviewResult{
		Summary:      payload.Summary,
		Risks:        orEmpty(payload.Risks),
		Improvements: orEmpty(payload.Improvements),
		Model:        gen.Model,
		Raw:          gen.Text,
	}
	p.persist(ctx, result)
	return Result{ReviewResult: result}
}

// fallback substitutes the canned review and tags the model field with the
// failure kind so operators can tell credential, network, and parse issues
// apart without reading logs.
func (p *Pipeline) fallback(ctx context.Context, cause error) Result {
	kind := llm.KindOf(cause)
	slog.WarnContext(ctx, "review generation failed, substituting fallback",
		"kind", string(kind),
		"error", cause)

	result := model.ReviewResult{
		Summary:      "Fallback review generated.",
		Risks:        []string{"Model response could not be parsed."},
		Improvements: []string{"Check prompt formatting and model output."},
		Model:        model.ModelFallbackPrefix + string(kind),
	}
	p.persist(ctx, result)
	return Result{ReviewResult: result, Diagnostic: cause.Error()}
}

func (p *Pipeline) persist(ctx context.Context, result model.ReviewResult) {
	if err := p.store.Save(ctx, result); err != nil {
		slog.WarnContext(ctx, "failed to persist review", "error", err)
	}
}

// mockResult is the deterministic demo review returned when mock mode is on.
func mockResult() model.ReviewResult {
	return model.ReviewResult{
		Summary: "This change adds a print statement.",
		Risks: []string{
			"Leaving debug prints in production code can clutter logs and leak information.",
		},
		Improvements: []string{
			"Use structured logging instead of print().",
			"Add a small test to verify expected behavior.",
			"Remove debug output before merging.",
		},
		Model: model.ModelMock,
	}
}

func orEmpty(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
