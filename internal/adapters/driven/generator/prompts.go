package generator

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/syntha-cli/internal/core/domain"
	"github.com/custodia-labs/syntha-cli/internal/core/ports/driven"
)

// systemPrompt frames every generation call.
const systemPrompt = `You are a knowledge-synthesis assistant. You combine several ` +
	`notes from a personal knowledge base into one coherent composite note. ` +
	`Write in Markdown. Never invent facts that are not in the source notes.`

// defaultPrompts contains embedded default prompts.
// These are used when user files don't exist and as the initial content for new files.
//
//nolint:lll // Prompt content is intentionally long and should not be wrapped.
var defaultPrompts = map[string]string{
	driven.PromptSynthesis: `Synthesise the following source notes into a single composite note.

%s
%s
Source notes:

%s

Return ONLY the Markdown body of the composite note, without a leading title heading.`,

	driven.PromptSuggestTitle: `Propose a short, descriptive title for a note that synthesises the following sources.
Return ONLY the title, nothing else.

%s`,

	driven.PromptSuggestType: `Decide which synthesis shape fits the following sources best.
Answer with exactly one word: framework, summary, comparison or timeline.

%s`,

	driven.PromptSuggestTags: `Propose up to 5 short lowercase tags for the following synthesis note.
Return ONLY the tags as a comma-separated list, nothing else.

%s`,
}

// typeInstructions maps each synthesis shape to its generation instruction.
var typeInstructions = map[domain.SynthesisType]string{
	domain.SynthesisTypeFramework:  "Shape: organise the ideas into a structured framework with clear sections and the relationships between concepts.",
	domain.SynthesisTypeSummary:    "Shape: condense the sources into one concise overview that captures the key points.",
	domain.SynthesisTypeComparison: "Shape: contrast the sources, highlighting where they agree, disagree and complement each other.",
	domain.SynthesisTypeTimeline:   "Shape: order the material chronologically and describe how the ideas evolved.",
}

// buildSynthesisPrompt fills the synthesis template for one request.
func buildSynthesisPrompt(template string, req domain.SynthesisRequest, contents []driven.SourceContent) string {
	language := ""
	if req.Options.Language != "" {
		language = fmt.Sprintf("Write the note in %s.\n", req.Options.Language)
	}
	return fmt.Sprintf(template, typeInstructions[req.Type], language, formatSources(contents))
}

// formatSources renders the source documents for inclusion in a prompt.
func formatSources(contents []driven.SourceContent) string {
	var b strings.Builder
	for i, c := range contents {
		fmt.Fprintf(&b, "--- Source %d: %s ---\n%s\n\n", i+1, c.Title, c.Content)
	}
	return strings.TrimRight(b.String(), "\n")
}

// parseSynthesisType maps a model answer onto a known type.
// Unrecognised answers fall back to summary.
func parseSynthesisType(answer string) domain.SynthesisType {
	cleaned := strings.ToLower(strings.TrimSpace(answer))
	cleaned = strings.Trim(cleaned, `."'`)
	if t := domain.SynthesisType(cleaned); t.IsValid() {
		return t
	}
	for _, t := range []domain.SynthesisType{
		domain.SynthesisTypeFramework,
		domain.SynthesisTypeSummary,
		domain.SynthesisTypeComparison,
		domain.SynthesisTypeTimeline,
	} {
		if strings.Contains(cleaned, t.String()) {
			return t
		}
	}
	return domain.SynthesisTypeSummary
}

// parseTags splits a comma-separated model answer into clean tags.
func parseTags(answer string) []string {
	parts := strings.Split(answer, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		tag := strings.ToLower(strings.TrimSpace(p))
		tag = strings.TrimPrefix(tag, "#")
		tag = strings.ReplaceAll(tag, " ", "-")
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	if len(tags) > maxSuggestedTags {
		tags = tags[:maxSuggestedTags]
	}
	return tags
}
