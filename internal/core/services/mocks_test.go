package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/syntha-cli/internal/core/domain"
	"github.com/custodia-labs/syntha-cli/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockEmbeddingService implements driven.EmbeddingService for testing.
// Vectors are looked up by text; unknown texts get a fixed fallback vector.
type mockEmbeddingService struct {
	vectors  map[string][]float32
	fallback []float32
	embedErr error
	calls    int
	batches  [][]string
}

func (m *mockEmbeddingService) Embed(_ context.Context, text string) ([]float32, error) {
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	m.calls++
	return m.vectorFor(text), nil
}

func (m *mockEmbeddingService) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	m.calls++
	m.batches = append(m.batches, texts)
	result := make([][]float32, len(texts))
	for i, text := range texts {
		result[i] = m.vectorFor(text)
	}
	return result, nil
}

func (m *mockEmbeddingService) vectorFor(text string) []float32 {
	if v, ok := m.vectors[text]; ok {
		return v
	}
	if m.fallback != nil {
		return m.fallback
	}
	return []float32{1, 0, 0}
}

func (m *mockEmbeddingService) Dimensions() int              { return 3 }
func (m *mockEmbeddingService) ModelName() string            { return "mock-embed" }
func (m *mockEmbeddingService) Ping(_ context.Context) error { return nil }
func (m *mockEmbeddingService) Close() error                 { return nil }

// mockGenerator implements driven.SynthesisGenerator for testing.
type mockGenerator struct {
	content     string
	tags        []string
	generateErr error
	requests    []domain.SynthesisRequest
	contents    [][]driven.SourceContent
}

func (m *mockGenerator) Generate(
	_ context.Context, req domain.SynthesisRequest, contents []driven.SourceContent,
) (*domain.SynthesisResult, error) {
	if m.generateErr != nil {
		return nil, m.generateErr
	}
	m.requests = append(m.requests, req)
	m.contents = append(m.contents, contents)

	result := &domain.SynthesisResult{
		Title:   req.TargetTitle,
		Content: m.content,
	}
	if result.Content == "" {
		result.Content = fmt.Sprintf("Synthesis of %d sources.", len(contents))
	}
	if req.Options.AutoSuggestTags {
		result.SuggestedTags = m.tags
	}
	return result, nil
}

func (m *mockGenerator) SuggestTitle(_ context.Context, _ []driven.SourceContent) (string, error) {
	return "Suggested title", nil
}

func (m *mockGenerator) SuggestType(_ context.Context, _ []driven.SourceContent) (domain.SynthesisType, error) {
	return domain.SynthesisTypeSummary, nil
}

func (m *mockGenerator) ModelName() string            { return "mock-generator" }
func (m *mockGenerator) Ping(_ context.Context) error { return nil }
func (m *mockGenerator) Close() error                 { return nil }
