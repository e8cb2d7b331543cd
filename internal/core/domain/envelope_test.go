package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvelope_Render(t *testing.T) {
	e := Envelope{
		Title:       "Go Concurrency Patterns",
		Type:        SynthesisTypeFramework,
		CreatedAt:   time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC),
		SourceLinks: []string{"[[go/channels]]", "[[go/select]]"},
		Tags:        []string{"go", "concurrency"},
	}

	got := e.Render("The body.\n")

	want := "title: Go Concurrency Patterns\n" +
		"artifact: synthesis\n" +
		"synthesis-type: framework\n" +
		"created: 2026-03-14T09:26:53Z\n" +
		"sources: [[go/channels]], [[go/select]]\n" +
		"tags: go, concurrency\n" +
		"\n" +
		"The body.\n"
	assert.Equal(t, want, got)
}

func TestEnvelope_Render_OmitsEmptyTags(t *testing.T) {
	e := Envelope{
		Title:     "Untitled",
		Type:      SynthesisTypeSummary,
		CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	got := e.Render("body")
	assert.NotContains(t, got, "tags:")
}

func TestParseEnvelope_RoundTrip(t *testing.T) {
	e := Envelope{
		Title:       "Reading List Comparison",
		Type:        SynthesisTypeComparison,
		CreatedAt:   time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC),
		SourceLinks: []string{"[[books/a]]", "[[books/b]]"},
		Tags:        []string{"reading"},
	}
	content := e.Render("Line one.\n\nLine two.\n")

	parsed, body, err := ParseEnvelope(content)
	require.NoError(t, err)
	assert.Equal(t, e, parsed)
	assert.Equal(t, "Line one.\n\nLine two.\n", body)
}

func TestParseEnvelope_MissingMarker(t *testing.T) {
	_, _, err := ParseEnvelope("title: Plain Note\n\nNot a synthesis.\n")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
