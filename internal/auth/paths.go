package auth

import "strings"

// PublicPaths classifies request paths that bypass authentication.
// The prefix list is fixed per deployment; prefixes are checked in order
// with first match winning.
type PublicPaths struct {
	prefixes []string
}

// NewPublicPaths constructs a classifier over the given path prefixes.
// The slice is copied, so later mutation of the argument has no effect.
func NewPublicPaths(prefixes []string) *PublicPaths {
	copied := make([]string, len(prefixes))
	copy(copied, prefixes)
	return &PublicPaths{prefixes: copied}
}

// IsPublic reports whether path is exempt from authentication. A path is
// public when it equals a configured prefix or continues it past a "/",
// so the prefix "/static" covers "/static/app.css" but not "/staticfile".
func (p *PublicPaths) IsPublic(path string) bool {
	for _, prefix := range p.prefixes {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return true
		}
	}
	return false
}
