// Package route holds path helpers shared by HTTP route modules.
package route

import (
	"net/http"
	"strings"
)

// RedirectTrailingSlash canonicalizes request paths by stripping trailing "/"
// characters, keeping the query string.
//
// It returns true when a redirect was written. Route handlers should stop
// further processing when true.
func RedirectTrailingSlash(w http.ResponseWriter, r *http.Request) bool {
	if w == nil || r == nil || r.URL == nil {
		return false
	}

	originalPath := r.URL.Path
	canonical := strings.TrimRight(originalPath, "/")
	if canonical == "" {
		canonical = "/"
	}
	if canonical == originalPath {
		return false
	}
	if r.URL.RawQuery != "" {
		canonical += "?" + r.URL.RawQuery
	}

	http.Redirect(w, r, canonical, http.StatusMovedPermanently)
	return true
}

// SplitPathParts normalizes a slash-delimited route suffix into non-empty
// path segments.
func SplitPathParts(path string) []string {
	rawParts := strings.Split(path, "/")
	parts := make([]string, 0, len(rawParts))
	for _, part := range rawParts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		parts = append(parts, part)
	}
	return parts
}
