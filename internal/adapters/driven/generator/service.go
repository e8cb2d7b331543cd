package generator

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/syntha-cli/internal/core/domain"
	"github.com/custodia-labs/syntha-cli/internal/core/ports/driven"
	"github.com/custodia-labs/syntha-cli/internal/logger"
)

// Ensure Service implements the interfaces.
var (
	_ driven.SynthesisGenerator = (*Service)(nil)
	_ driven.PromptStoreAware   = (*Service)(nil)
)

// Generation limits.
const (
	synthesisMaxTokens = 4096
	titleMaxTokens     = 60
	typeMaxTokens      = 10
	tagsMaxTokens      = 60

	synthesisTemperature = 0.7
	classifyTemperature  = 0.2

	maxSuggestedTags = 5
)

// Service implements the synthesis generator over any chat-completion
// backend.
type Service struct {
	completer   Completer
	promptStore driven.PromptStore
}

// NewService creates a synthesis generator over the given backend.
func NewService(completer Completer) *Service {
	return &Service{completer: completer}
}

// Generate produces a synthesis result for the request.
func (s *Service) Generate(
	ctx context.Context, req domain.SynthesisRequest, contents []driven.SourceContent,
) (*domain.SynthesisResult, error) {
	if len(contents) == 0 {
		return nil, fmt.Errorf("%w: no source contents", domain.ErrEmptyInput)
	}

	template := s.loadPrompt(driven.PromptSynthesis)
	prompt := buildSynthesisPrompt(template, req, contents)

	content, err := s.completer.Complete(ctx, systemPrompt, prompt, CompleteOptions{
		MaxTokens:   synthesisMaxTokens,
		Temperature: synthesisTemperature,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: generate synthesis: %w", domain.ErrExternalService, err)
	}

	result := &domain.SynthesisResult{
		ID:        uuid.NewString(),
		RequestID: req.ID,
		Title:     req.TargetTitle,
		Content:   strings.TrimSpace(content),
		Type:      req.Type,
		CreatedAt: time.Now(),
	}

	if req.Options.AutoSuggestTags {
		tags, err := s.suggestTags(ctx, result.Content)
		if err != nil {
			// Tags are an enhancement; the synthesis itself succeeded.
			logger.Debug("Tag suggestion failed: %v", err)
		} else {
			result.SuggestedTags = tags
		}
	}
	return result, nil
}

// SuggestTitle proposes a title for the given contents.
func (s *Service) SuggestTitle(ctx context.Context, contents []driven.SourceContent) (string, error) {
	prompt := fmt.Sprintf(s.loadPrompt(driven.PromptSuggestTitle), formatSources(contents))
	answer, err := s.completer.Complete(ctx, systemPrompt, prompt, CompleteOptions{
		MaxTokens:   titleMaxTokens,
		Temperature: classifyTemperature,
	})
	if err != nil {
		return "", fmt.Errorf("%w: suggest title: %w", domain.ErrExternalService, err)
	}
	return strings.Trim(strings.TrimSpace(answer), `"`), nil
}

// SuggestType proposes the synthesis type best fitting the contents.
func (s *Service) SuggestType(ctx context.Context, contents []driven.SourceContent) (domain.SynthesisType, error) {
	prompt := fmt.Sprintf(s.loadPrompt(driven.PromptSuggestType), formatSources(contents))
	answer, err := s.completer.Complete(ctx, systemPrompt, prompt, CompleteOptions{
		MaxTokens:   typeMaxTokens,
		Temperature: classifyTemperature,
	})
	if err != nil {
		return "", fmt.Errorf("%w: suggest type: %w", domain.ErrExternalService, err)
	}
	return parseSynthesisType(answer), nil
}

// suggestTags asks the backend for tags describing the synthesis content.
func (s *Service) suggestTags(ctx context.Context, content string) ([]string, error) {
	prompt := fmt.Sprintf(s.loadPrompt(driven.PromptSuggestTags), content)
	answer, err := s.completer.Complete(ctx, systemPrompt, prompt, CompleteOptions{
		MaxTokens:   tagsMaxTokens,
		Temperature: classifyTemperature,
	})
	if err != nil {
		return nil, err
	}
	return parseTags(answer), nil
}

// loadPrompt loads a prompt from the store, falling back to the embedded
// default if unavailable.
func (s *Service) loadPrompt(name string) string {
	if s.promptStore != nil {
		if prompt, err := s.promptStore.Load(name); err == nil {
			return prompt
		}
	}
	return defaultPrompts[name]
}

// ModelName returns the name of the generation model being used.
func (s *Service) ModelName() string {
	return s.completer.ModelName()
}

// SetPromptStore sets the prompt store for loading customisable prompts.
// If not set, the service uses hardcoded default prompts.
func (s *Service) SetPromptStore(store driven.PromptStore) {
	s.promptStore = store
}

// Ping validates the backend is reachable.
func (s *Service) Ping(ctx context.Context) error {
	return s.completer.Ping(ctx)
}

// Close releases resources.
func (s *Service) Close() error {
	return s.completer.Close()
}
