package domain

import (
	"fmt"
	"strings"
	"time"
)

// Envelope header keys. The rendered header is the one bit-exact contract
// for persisted synthesis notes: a key-value block, a blank line, the body.
const (
	envelopeKeyTitle    = "title"
	envelopeKeyArtifact = "artifact"
	envelopeKeyType     = "synthesis-type"
	envelopeKeyCreated  = "created"
	envelopeKeySources  = "sources"
	envelopeKeyTags     = "tags"

	// envelopeArtifactMarker marks a vault file as a synthesis artifact.
	envelopeArtifactMarker = "synthesis"
)

// Envelope is the metadata header prepended to a persisted synthesis note.
type Envelope struct {
	// Title is the artifact title.
	Title string

	// Type is the synthesis shape.
	Type SynthesisType

	// CreatedAt is the generation timestamp. Rendered as RFC 3339 UTC.
	CreatedAt time.Time

	// SourceLinks are wiki links to the source documents.
	SourceLinks []string

	// Tags are optional suggested tags. Omitted from the header when empty.
	Tags []string
}

// Render produces the persisted file content: header, blank line, body.
func (e Envelope) Render(body string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s\n", envelopeKeyTitle, e.Title)
	fmt.Fprintf(&b, "%s: %s\n", envelopeKeyArtifact, envelopeArtifactMarker)
	fmt.Fprintf(&b, "%s: %s\n", envelopeKeyType, e.Type)
	fmt.Fprintf(&b, "%s: %s\n", envelopeKeyCreated, e.CreatedAt.UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, "%s: %s\n", envelopeKeySources, strings.Join(e.SourceLinks, ", "))
	if len(e.Tags) > 0 {
		fmt.Fprintf(&b, "%s: %s\n", envelopeKeyTags, strings.Join(e.Tags, ", "))
	}
	b.WriteString("\n")
	b.WriteString(body)
	return b.String()
}

// ParseEnvelope splits persisted file content back into envelope and body.
// Returns ErrInvalidInput if the leading block is not a syntha envelope.
func ParseEnvelope(content string) (Envelope, string, error) {
	var e Envelope
	rest := content
	sawArtifact := false

	for {
		line, remainder, found := strings.Cut(rest, "\n")
		if line == "" {
			rest = remainder
			break
		}
		key, value, ok := strings.Cut(line, ": ")
		if !ok {
			// Tolerate a valueless key like "sources:".
			key = strings.TrimSuffix(line, ":")
			value = ""
			if key == line {
				return Envelope{}, "", fmt.Errorf("%w: malformed envelope line %q", ErrInvalidInput, line)
			}
		}
		switch key {
		case envelopeKeyTitle:
			e.Title = value
		case envelopeKeyArtifact:
			sawArtifact = value == envelopeArtifactMarker
		case envelopeKeyType:
			e.Type = SynthesisType(value)
		case envelopeKeyCreated:
			ts, err := time.Parse(time.RFC3339, value)
			if err != nil {
				return Envelope{}, "", fmt.Errorf("%w: bad created timestamp %q", ErrInvalidInput, value)
			}
			e.CreatedAt = ts
		case envelopeKeySources:
			e.SourceLinks = splitCommaList(value)
		case envelopeKeyTags:
			e.Tags = splitCommaList(value)
		}
		if !found {
			rest = ""
			break
		}
		rest = remainder
	}

	if !sawArtifact {
		return Envelope{}, "", fmt.Errorf("%w: missing synthesis artifact marker", ErrInvalidInput)
	}
	return e, rest, nil
}

// splitCommaList splits "a, b, c" into trimmed non-empty parts.
func splitCommaList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
