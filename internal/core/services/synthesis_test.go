package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/syntha-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/syntha-cli/internal/core/domain"
)

func acceptedCluster(ids ...string) domain.Cluster {
	return domain.Cluster{
		ID:      "cluster-1",
		Name:    "Go concurrency",
		Members: members(ids...),
		Source:  domain.ClusterSourceTag,
	}
}

func TestSynthesisOrchestrator_EndToEnd(t *testing.T) {
	docs := memory.NewDocumentStore()
	seedDoc(docs, "notes/a.md", "A")
	seedDoc(docs, "notes/b.md", "B")

	generator := &mockGenerator{content: "The synthesis body."}
	orchestrator := NewSynthesisOrchestrator(docs, generator, "syntheses")

	outcome, err := orchestrator.Synthesise(
		context.Background(),
		acceptedCluster("notes/a.md", "notes/b.md"),
		domain.SynthesisTypeSummary,
		domain.SynthesisOptions{},
	)
	require.NoError(t, err)

	assert.Equal(t, "syntheses/Go concurrency.md", outcome.Path)
	assert.Equal(t, domain.SynthesisTypeSummary, outcome.Result.Type)
	assert.NotEmpty(t, outcome.Result.ID)
	assert.NotEmpty(t, outcome.Result.RequestID)
	assert.Equal(t, []string{"[[notes/a]]", "[[notes/b]]"}, outcome.Result.SourceLinks)

	// The persisted file is a parseable envelope around the generated body.
	persisted, err := docs.GetByPath(context.Background(), outcome.Path)
	require.NoError(t, err)
	envelope, body, err := domain.ParseEnvelope(persisted.Content)
	require.NoError(t, err)
	assert.Equal(t, "Go concurrency", envelope.Title)
	assert.Equal(t, domain.SynthesisTypeSummary, envelope.Type)
	assert.Equal(t, []string{"[[notes/a]]", "[[notes/b]]"}, envelope.SourceLinks)
	assert.Equal(t, "The synthesis body.", body)
}

func TestSynthesisOrchestrator_BacklinksAppended(t *testing.T) {
	docs := memory.NewDocumentStore()
	seedDoc(docs, "a.md", "A")

	generator := &mockGenerator{content: "Body."}
	orchestrator := NewSynthesisOrchestrator(docs, generator, "")

	outcome, err := orchestrator.Synthesise(
		context.Background(),
		acceptedCluster("a.md"),
		domain.SynthesisTypeSummary,
		domain.SynthesisOptions{IncludeBacklinks: true},
	)
	require.NoError(t, err)

	persisted, err := docs.GetByPath(context.Background(), outcome.Path)
	require.NoError(t, err)
	_, body, err := domain.ParseEnvelope(persisted.Content)
	require.NoError(t, err)
	assert.Contains(t, body, "## Sources")
	assert.Contains(t, body, "- [[a]]")
}

func TestSynthesisOrchestrator_TagsRequestedOnlyWhenEnabled(t *testing.T) {
	docs := memory.NewDocumentStore()
	seedDoc(docs, "a.md", "A")

	generator := &mockGenerator{tags: []string{"golang", "concurrency"}}
	orchestrator := NewSynthesisOrchestrator(docs, generator, "")

	outcome, err := orchestrator.Synthesise(
		context.Background(),
		acceptedCluster("a.md"),
		domain.SynthesisTypeSummary,
		domain.SynthesisOptions{AutoSuggestTags: true},
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"golang", "concurrency"}, outcome.Result.SuggestedTags)

	outcome, err = orchestrator.Synthesise(
		context.Background(),
		acceptedCluster("a.md"),
		domain.SynthesisTypeSummary,
		domain.SynthesisOptions{},
	)
	require.NoError(t, err)
	assert.Empty(t, outcome.Result.SuggestedTags)
}

func TestSynthesisOrchestrator_EmptyClusterFails(t *testing.T) {
	orchestrator := NewSynthesisOrchestrator(memory.NewDocumentStore(), &mockGenerator{}, "")

	_, err := orchestrator.Synthesise(
		context.Background(),
		domain.Cluster{Name: "empty"},
		domain.SynthesisTypeSummary,
		domain.SynthesisOptions{},
	)
	assert.ErrorIs(t, err, domain.ErrEmptyInput)
}

func TestSynthesisOrchestrator_UnresolvedSourcesDropped(t *testing.T) {
	docs := memory.NewDocumentStore()
	seedDoc(docs, "a.md", "A")

	generator := &mockGenerator{}
	orchestrator := NewSynthesisOrchestrator(docs, generator, "")

	outcome, err := orchestrator.Synthesise(
		context.Background(),
		acceptedCluster("a.md", "ghost.md"),
		domain.SynthesisTypeSummary,
		domain.SynthesisOptions{},
	)
	require.NoError(t, err)

	require.Len(t, generator.contents, 1)
	require.Len(t, generator.contents[0], 1)
	assert.Equal(t, "a.md", generator.contents[0][0].ID)
	assert.Equal(t, []string{"[[a]]"}, outcome.Result.SourceLinks)
}

func TestSynthesisOrchestrator_AllSourcesUnresolvedFails(t *testing.T) {
	orchestrator := NewSynthesisOrchestrator(memory.NewDocumentStore(), &mockGenerator{}, "")

	_, err := orchestrator.Synthesise(
		context.Background(),
		acceptedCluster("ghost1.md", "ghost2.md"),
		domain.SynthesisTypeSummary,
		domain.SynthesisOptions{},
	)
	assert.ErrorIs(t, err, domain.ErrEmptyInput)
}

func TestSynthesisOrchestrator_FailedGenerationWritesNothing(t *testing.T) {
	docs := memory.NewDocumentStore()
	seedDoc(docs, "a.md", "A")

	generator := &mockGenerator{generateErr: errors.New("model overloaded")}
	orchestrator := NewSynthesisOrchestrator(docs, generator, "syntheses")

	_, err := orchestrator.Synthesise(
		context.Background(),
		acceptedCluster("a.md"),
		domain.SynthesisTypeSummary,
		domain.SynthesisOptions{},
	)
	require.Error(t, err)

	all, err := docs.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "a.md", all[0].ID)
}

func TestSynthesisOrchestrator_ExistingFileOverwritten(t *testing.T) {
	docs := memory.NewDocumentStore()
	seedDoc(docs, "a.md", "A")
	require.NoError(t, docs.Create(context.Background(), "syntheses/Go concurrency.md", "stale"))

	generator := &mockGenerator{content: "Fresh body."}
	orchestrator := NewSynthesisOrchestrator(docs, generator, "syntheses")

	outcome, err := orchestrator.Synthesise(
		context.Background(),
		acceptedCluster("a.md"),
		domain.SynthesisTypeSummary,
		domain.SynthesisOptions{},
	)
	require.NoError(t, err)

	persisted, err := docs.GetByPath(context.Background(), outcome.Path)
	require.NoError(t, err)
	assert.Contains(t, persisted.Content, "Fresh body.")
	assert.NotContains(t, persisted.Content, "stale")
}

func TestSynthesisOrchestrator_NoGenerator(t *testing.T) {
	orchestrator := NewSynthesisOrchestrator(memory.NewDocumentStore(), nil, "")

	_, err := orchestrator.Synthesise(
		context.Background(),
		acceptedCluster("a.md"),
		domain.SynthesisTypeSummary,
		domain.SynthesisOptions{},
	)
	assert.ErrorIs(t, err, domain.ErrGeneratorUnavailable)
}

func TestSynthesisOrchestrator_InvalidType(t *testing.T) {
	orchestrator := NewSynthesisOrchestrator(memory.NewDocumentStore(), &mockGenerator{}, "")

	_, err := orchestrator.Synthesise(
		context.Background(),
		acceptedCluster("a.md"),
		domain.SynthesisType("haiku"),
		domain.SynthesisOptions{},
	)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSanitiseFileName(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"plain", "Go concurrency", "Go concurrency"},
		{"forbidden characters stripped", `What? A "test": <yes>|no/maybe\`, "What A test yesnomaybe"},
		{"whitespace collapsed", "  too   many\tspaces  ", "too many spaces"},
		{"empty falls back", `???`, "Untitled synthesis"},
		{"long titles capped", strings.Repeat("a", 150), strings.Repeat("a", 100)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitiseFileName(tt.title))
		})
	}
}
