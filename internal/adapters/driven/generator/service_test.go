package generator

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/syntha-cli/internal/core/domain"
	"github.com/custodia-labs/syntha-cli/internal/core/ports/driven"
)

// fakeCompleter records prompts and returns canned answers in order.
type fakeCompleter struct {
	answers []string
	err     error
	systems []string
	prompts []string
}

func (f *fakeCompleter) Complete(_ context.Context, system, prompt string, _ CompleteOptions) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.systems = append(f.systems, system)
	f.prompts = append(f.prompts, prompt)
	answer := "default answer"
	if len(f.answers) > 0 {
		answer = f.answers[0]
		f.answers = f.answers[1:]
	}
	return answer, nil
}

func (f *fakeCompleter) ModelName() string            { return "fake-model" }
func (f *fakeCompleter) Ping(_ context.Context) error { return nil }
func (f *fakeCompleter) Close() error                 { return nil }

func testRequest(opts domain.SynthesisOptions) domain.SynthesisRequest {
	return domain.SynthesisRequest{
		ID:                "req-1",
		SourceDocumentIDs: []string{"a.md", "b.md"},
		TargetTitle:       "Go concurrency",
		Type:              domain.SynthesisTypeSummary,
		Options:           opts,
		CreatedAt:         time.Now(),
	}
}

func testContents() []driven.SourceContent {
	return []driven.SourceContent{
		{ID: "a.md", Path: "a.md", Title: "Goroutines", Content: "Goroutines are cheap."},
		{ID: "b.md", Path: "b.md", Title: "Channels", Content: "Channels synchronise."},
	}
}

func TestService_Generate(t *testing.T) {
	completer := &fakeCompleter{answers: []string{"  The combined note.  "}}
	service := NewService(completer)

	result, err := service.Generate(context.Background(), testRequest(domain.SynthesisOptions{}), testContents())
	require.NoError(t, err)

	assert.Equal(t, "The combined note.", result.Content)
	assert.Equal(t, "req-1", result.RequestID)
	assert.Equal(t, "Go concurrency", result.Title)
	assert.Equal(t, domain.SynthesisTypeSummary, result.Type)
	assert.NotEmpty(t, result.ID)
	assert.Empty(t, result.SuggestedTags)

	// The prompt carries both sources and the shape instruction.
	require.Len(t, completer.prompts, 1)
	assert.Contains(t, completer.prompts[0], "Goroutines are cheap.")
	assert.Contains(t, completer.prompts[0], "Channels synchronise.")
	assert.Contains(t, completer.prompts[0], "condense")
}

func TestService_Generate_TagsOnlyWhenRequested(t *testing.T) {
	completer := &fakeCompleter{answers: []string{"Body.", "golang, concurrency, #Channels"}}
	service := NewService(completer)

	result, err := service.Generate(
		context.Background(),
		testRequest(domain.SynthesisOptions{AutoSuggestTags: true}),
		testContents(),
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"golang", "concurrency", "channels"}, result.SuggestedTags)
	assert.Len(t, completer.prompts, 2)
}

func TestService_Generate_LanguageHintInPrompt(t *testing.T) {
	completer := &fakeCompleter{}
	service := NewService(completer)

	_, err := service.Generate(
		context.Background(),
		testRequest(domain.SynthesisOptions{Language: "German"}),
		testContents(),
	)
	require.NoError(t, err)
	assert.Contains(t, completer.prompts[0], "Write the note in German.")
}

func TestService_Generate_EmptyContents(t *testing.T) {
	service := NewService(&fakeCompleter{})

	_, err := service.Generate(context.Background(), testRequest(domain.SynthesisOptions{}), nil)
	assert.ErrorIs(t, err, domain.ErrEmptyInput)
}

func TestService_Generate_BackendFailure(t *testing.T) {
	completer := &fakeCompleter{err: errors.New("connection reset")}
	service := NewService(completer)

	_, err := service.Generate(context.Background(), testRequest(domain.SynthesisOptions{}), testContents())
	assert.ErrorIs(t, err, domain.ErrExternalService)
}

func TestService_SuggestTitle(t *testing.T) {
	completer := &fakeCompleter{answers: []string{`"Concurrency Patterns in Go"`}}
	service := NewService(completer)

	title, err := service.SuggestTitle(context.Background(), testContents())
	require.NoError(t, err)
	assert.Equal(t, "Concurrency Patterns in Go", title)
}

func TestService_SuggestType(t *testing.T) {
	tests := []struct {
		answer string
		want   domain.SynthesisType
	}{
		{"framework", domain.SynthesisTypeFramework},
		{" Comparison.", domain.SynthesisTypeComparison},
		{"I think a timeline fits best", domain.SynthesisTypeTimeline},
		{"gibberish", domain.SynthesisTypeSummary},
	}
	for _, tt := range tests {
		t.Run(tt.answer, func(t *testing.T) {
			completer := &fakeCompleter{answers: []string{tt.answer}}
			service := NewService(completer)

			got, err := service.SuggestType(context.Background(), testContents())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseTags_CapsAtFive(t *testing.T) {
	tags := parseTags("a, b, c, d, e, f, g")
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, tags)
}

func TestParseTags_NormalisesSpacesAndHashes(t *testing.T) {
	tags := parseTags("#Machine Learning, , deep learning ")
	assert.Equal(t, []string{"machine-learning", "deep-learning"}, tags)
}

// promptMap implements driven.PromptStore over a map.
type promptMap map[string]string

func (p promptMap) Load(name string) (string, error) {
	if v, ok := p[name]; ok {
		return v, nil
	}
	return "", errors.New("not found")
}

func (p promptMap) Reload() {}

func TestService_CustomPromptStore(t *testing.T) {
	completer := &fakeCompleter{}
	service := NewService(completer)
	service.SetPromptStore(promptMap{
		driven.PromptSynthesis: "CUSTOM %s %s %s",
	})

	_, err := service.Generate(context.Background(), testRequest(domain.SynthesisOptions{}), testContents())
	require.NoError(t, err)
	assert.Contains(t, completer.prompts[0], "CUSTOM")
}
