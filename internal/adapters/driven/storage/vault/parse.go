package vault

import (
	"regexp"
	"strings"
	"time"

	"github.com/custodia-labs/syntha-cli/internal/core/domain"
)

// inlineTagPattern matches #tag tokens in note bodies. Tags start with a
// letter or digit and may contain word characters, '/' and '-'.
var inlineTagPattern = regexp.MustCompile(`(?:^|\s)#([A-Za-z0-9][\w/-]*)`)

// parseDocument builds a Document from raw markdown file content.
// Titles come from the synthesis envelope, front matter, the first H1
// heading or the filename, in that order. Tags merge front matter tags
// with inline #tag tokens.
func parseDocument(relPath, content string, modTime time.Time) domain.Document {
	doc := domain.Document{
		ID:        relPath,
		Path:      relPath,
		Content:   content,
		CreatedAt: modTime,
		UpdatedAt: modTime,
	}

	// Generated synthesis notes carry an envelope header instead of front matter.
	if env, body, err := domain.ParseEnvelope(content); err == nil {
		doc.Title = env.Title
		doc.Tags = dedupeTags(append(env.Tags, inlineTags(body)...))
		return doc
	}

	body := content
	var fmTitle string
	var fmTags []string
	if fm, rest, ok := splitFrontMatter(content); ok {
		fmTitle, fmTags = parseFrontMatter(fm)
		body = rest
	}

	doc.Title = firstNonEmpty(fmTitle, firstHeading(body), titleFromPath(relPath))
	doc.Tags = dedupeTags(append(fmTags, inlineTags(body)...))
	return doc
}

// splitFrontMatter separates a leading "---" delimited block from the body.
func splitFrontMatter(content string) (frontMatter, body string, ok bool) {
	if !strings.HasPrefix(content, "---\n") && content != "---" {
		return "", content, false
	}
	rest := strings.TrimPrefix(content, "---\n")
	end := strings.Index(rest, "\n---")
	if end < 0 {
		return "", content, false
	}
	frontMatter = rest[:end]
	body = rest[end+len("\n---"):]
	body = strings.TrimPrefix(body, "\n")
	return frontMatter, body, true
}

// parseFrontMatter extracts the title and tags from a front matter block.
// Supported tag forms: "tags: [a, b]", "tags: a, b" and a "- a" block list.
func parseFrontMatter(fm string) (title string, tags []string) {
	lines := strings.Split(fm, "\n")
	inTagList := false
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		if inTagList {
			if item, ok := strings.CutPrefix(trimmed, "- "); ok {
				tags = appendTag(tags, item)
				continue
			}
			inTagList = false
		}

		key, value, ok := strings.Cut(trimmed, ":")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)

		switch strings.ToLower(strings.TrimSpace(key)) {
		case "title":
			title = strings.Trim(value, `"'`)
		case "tags":
			if value == "" {
				inTagList = true
				continue
			}
			value = strings.Trim(value, "[]")
			for _, part := range strings.Split(value, ",") {
				tags = appendTag(tags, part)
			}
		}
	}
	return title, tags
}

// appendTag cleans one tag token and appends it if non-empty.
func appendTag(tags []string, raw string) []string {
	tag := strings.Trim(strings.TrimSpace(raw), `"'`)
	tag = strings.TrimPrefix(tag, "#")
	if tag == "" {
		return tags
	}
	return append(tags, tag)
}

// inlineTags extracts #tag tokens from a note body.
func inlineTags(body string) []string {
	matches := inlineTagPattern.FindAllStringSubmatch(body, -1)
	tags := make([]string, 0, len(matches))
	for _, m := range matches {
		tags = append(tags, m[1])
	}
	return tags
}

// dedupeTags removes case-insensitive duplicates, keeping first spelling.
func dedupeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		key := strings.ToLower(tag)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, tag)
	}
	return out
}

// firstHeading returns the first H1 heading text, if any.
func firstHeading(body string) string {
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if after, ok := strings.CutPrefix(line, "# "); ok {
			return strings.TrimSpace(after)
		}
	}
	return ""
}

// titleFromPath derives a display title from a vault path.
func titleFromPath(path string) string {
	base := path
	if i := strings.LastIndexByte(base, '/'); i >= 0 {
		base = base[i+1:]
	}
	return strings.TrimSuffix(base, ".md")
}

// firstNonEmpty returns the first non-empty string.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
