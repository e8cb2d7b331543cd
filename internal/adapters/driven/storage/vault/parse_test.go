package vault

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/syntha-cli/internal/core/domain"
)

func parse(t *testing.T, path, content string) domain.Document {
	t.Helper()
	return parseDocument(path, content, time.Now())
}

func TestParseDocument_TitleFromHeading(t *testing.T) {
	doc := parse(t, "notes/go.md", "# Go Concurrency\n\nGoroutines are cheap.")

	assert.Equal(t, "notes/go.md", doc.ID)
	assert.Equal(t, "notes/go.md", doc.Path)
	assert.Equal(t, "Go Concurrency", doc.Title)
}

func TestParseDocument_TitleFromFilename(t *testing.T) {
	doc := parse(t, "notes/channel-patterns.md", "No heading here.")

	assert.Equal(t, "channel-patterns", doc.Title)
}

func TestParseDocument_FrontMatterTitleWins(t *testing.T) {
	content := "---\ntitle: \"Front Matter Title\"\n---\n# Heading Title\n\nBody."
	doc := parse(t, "a.md", content)

	assert.Equal(t, "Front Matter Title", doc.Title)
}

func TestParseDocument_InlineTags(t *testing.T) {
	doc := parse(t, "a.md", "Learning #golang and #distributed-systems today.\n#golang again.")

	assert.Equal(t, []string{"golang", "distributed-systems"}, doc.Tags)
}

func TestParseDocument_InlineTags_IgnoresMidWordHash(t *testing.T) {
	doc := parse(t, "a.md", "Issue C#4 is not a tag, but #csharp is.")

	assert.Equal(t, []string{"csharp"}, doc.Tags)
}

func TestParseDocument_FrontMatterTags_InlineList(t *testing.T) {
	content := "---\ntags: [golang, testing]\n---\nBody."
	doc := parse(t, "a.md", content)

	assert.Equal(t, []string{"golang", "testing"}, doc.Tags)
}

func TestParseDocument_FrontMatterTags_CommaList(t *testing.T) {
	content := "---\ntags: golang, testing\n---\nBody."
	doc := parse(t, "a.md", content)

	assert.Equal(t, []string{"golang", "testing"}, doc.Tags)
}

func TestParseDocument_FrontMatterTags_BlockList(t *testing.T) {
	content := "---\ntags:\n  - golang\n  - \"testing\"\n---\nBody."
	doc := parse(t, "a.md", content)

	assert.Equal(t, []string{"golang", "testing"}, doc.Tags)
}

func TestParseDocument_MergesFrontMatterAndInlineTags(t *testing.T) {
	content := "---\ntags: [golang]\n---\nAlso about #Testing and #GOLANG."
	doc := parse(t, "a.md", content)

	// Case-insensitive dedupe keeps the first spelling
	assert.Equal(t, []string{"golang", "Testing"}, doc.Tags)
}

func TestParseDocument_UnterminatedFrontMatter(t *testing.T) {
	content := "---\ntags: [golang]\nno closing delimiter"
	doc := parse(t, "a.md", content)

	// The block is treated as body, not front matter
	assert.Empty(t, doc.Tags)
	assert.Equal(t, "a", doc.Title)
}

func TestParseDocument_SynthesisEnvelope(t *testing.T) {
	env := domain.Envelope{
		Title:       "Go Concurrency",
		Type:        domain.SynthesisTypeSummary,
		CreatedAt:   time.Now(),
		SourceLinks: []string{"[[notes/a]]", "[[notes/b]]"},
		Tags:        []string{"golang"},
	}
	content := env.Render("The combined note about #concurrency.")

	doc := parse(t, "syntheses/Go Concurrency.md", content)

	assert.Equal(t, "Go Concurrency", doc.Title)
	assert.Equal(t, []string{"golang", "concurrency"}, doc.Tags)
}

func TestSplitFrontMatter_Empty(t *testing.T) {
	_, body, ok := splitFrontMatter("just a note")

	assert.False(t, ok)
	assert.Equal(t, "just a note", body)
}

func TestTitleFromPath(t *testing.T) {
	assert.Equal(t, "note", titleFromPath("note.md"))
	assert.Equal(t, "deep note", titleFromPath("a/b/deep note.md"))
}
