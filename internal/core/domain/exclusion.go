package domain

import "strings"

// ExcludedPaths lists vault path prefixes excluded from clustering and
// suggestions (e.g. "templates/", "archive/"). Matching is prefix-based
// on slash-separated vault paths.
type ExcludedPaths []string

// Contains reports whether the given vault path falls under an excluded prefix.
func (e ExcludedPaths) Contains(p string) bool {
	p = normaliseVaultPath(p)
	for _, prefix := range e {
		prefix = normaliseVaultPath(prefix)
		if prefix == "" {
			continue
		}
		if p == prefix || strings.HasPrefix(p, prefix+"/") {
			return true
		}
	}
	return false
}

// normaliseVaultPath strips leading and trailing slashes so that
// "archive/", "/archive" and "archive" all match the same subtree.
func normaliseVaultPath(p string) string {
	return strings.Trim(p, "/")
}
