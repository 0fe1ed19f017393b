// Package pathsafe validates untrusted slug and version path segments before
// they are used to address files under the content root.
package pathsafe

import (
	"errors"
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"strings"
)

// ErrPathTraversal indicates caller-supplied path input attempted to escape
// the content root.
var ErrPathTraversal = errors.New("path traversal attempt")

// Sanitize normalizes a caller-supplied path segment to a clean, relative,
// forward-slash path. It rejects absolute paths and any traversal sequence,
// including single- and double-URL-encoded forms.
//
// Sanitize must run before any filesystem access derived from caller input.
func Sanitize(raw string) (string, error) {
	decoded := raw
	// Two decode passes catch %2e%2e and %252e%252e alike. A failed decode
	// keeps the prior form; the raw bytes are still checked below.
	for range 2 {
		next, err := url.PathUnescape(decoded)
		if err != nil {
			break
		}
		decoded = next
	}

	normalized := strings.ReplaceAll(decoded, "\\", "/")

	if strings.HasPrefix(normalized, "/") || filepath.IsAbs(decoded) || isWindowsAbs(normalized) {
		return "", fmt.Errorf("%w: absolute path %q", ErrPathTraversal, raw)
	}

	for _, segment := range strings.Split(normalized, "/") {
		if segment == ".." {
			return "", fmt.Errorf("%w: %q", ErrPathTraversal, raw)
		}
	}

	cleaned := path.Clean(normalized)
	if cleaned == "." {
		cleaned = ""
	}
	// path.Clean can only surface a leading ".." from input that contained
	// one, which the loop above already rejected. Re-check anyway.
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", fmt.Errorf("%w: %q", ErrPathTraversal, raw)
	}

	return cleaned, nil
}

// IsWithin reports whether resolved is root or a descendant of root once both
// are made absolute. Used as defense-in-depth after Sanitize.
func IsWithin(resolved, root string) bool {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return false
	}
	absResolved, err := filepath.Abs(resolved)
	if err != nil {
		return false
	}

	rel, err := filepath.Rel(absRoot, absResolved)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// isWindowsAbs catches drive-letter paths regardless of host platform, since
// slugs arrive from URLs and must never address a drive root.
func isWindowsAbs(p string) bool {
	return len(p) >= 2 && p[1] == ':' &&
		(('a' <= p[0] && p[0] <= 'z') || ('A' <= p[0] && p[0] <= 'Z'))
}
