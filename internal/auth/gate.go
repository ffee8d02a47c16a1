package auth

import "strings"

// RequireAuth reports whether path needs credentials given a list of
// exclusion patterns. Patterns are checked in order and the first match
// exempts the path:
//
//	/api/v1/status/   exact match against the path with a trailing slash added
//	/api/v1/stat*     prefix match against the slash-normalized path
//	/api/v1/status    exact match ignoring trailing slashes on both sides
//
// An empty path or an empty pattern list always requires authentication.
func RequireAuth(path string, excludedPaths []string) bool {
	if path == "" || len(excludedPaths) == 0 {
		return true
	}

	if !strings.HasSuffix(path, "/") {
		path += "/"
	}

	for _, pattern := range excludedPaths {
		switch {
		case strings.HasSuffix(pattern, "*"):
			if strings.HasPrefix(path, strings.TrimSuffix(pattern, "*")) {
				return false
			}
		case strings.HasSuffix(pattern, "/"):
			if path == pattern {
				return false
			}
		default:
			if strings.TrimRight(path, "/") == strings.TrimRight(pattern, "/") {
				return false
			}
		}
	}

	return true
}
