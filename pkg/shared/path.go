package shared

import (
	"regexp"
	"strings"
)

const (
	Slash = "/"
	Root  = Slash
)

var reMultiSlash = regexp.MustCompile(`/+`)

var canonicalPath = Pipeline{
	collapseSlashes,
	trimTrailingSlash,
	AddLeadingSlash,
}

func collapseSlashes(s string) string {
	return reMultiSlash.ReplaceAllString(s, Slash)
}

func trimTrailingSlash(s string) string {
	if len(s) > 1 {
		return StripEndSlash(s)
	}
	return s
}

// ValidatePath returns the canonical form of a route path.
//
// Runs of slashes are collapsed before the trailing slash is stripped and
// before the leading slash is added, so "///" reduces to "/".
func ValidatePath(path string) string {
	if path == "" {
		return Root
	}
	return canonicalPath.Apply(path)
}

// ValidatePathPtr is ValidatePath for optional input; nil yields "/".
func ValidatePathPtr(path *string) string {
	if path == nil {
		return Root
	}
	return ValidatePath(*path)
}

// AddLeadingSlash prefixes a non-empty path with "/" when it lacks one.
func AddLeadingSlash(path string) string {
	if path == "" || strings.HasPrefix(path, Slash) {
		return path
	}
	return Slash + path
}

// StripEndSlash removes a single trailing "/", including the root one.
func StripEndSlash(path string) string {
	return strings.TrimSuffix(path, Slash)
}

// JoinPaths concatenates route segments and canonicalizes the result.
// Empty segments are skipped.
func JoinPaths(segments ...string) string {
	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		if s == "" {
			continue
		}
		parts = append(parts, s)
	}
	return ValidatePath(strings.Join(parts, Slash))
}
