package nav

import (
	"net/url"
	"strings"
)

// NormalizePath strips all trailing slashes, so "/docs/x/" and "/docs/x"
// compare equal. The site root normalizes to the empty string.
func NormalizePath(p string) string {
	return strings.TrimRight(p, "/")
}

// CanonicalPath decodes the percent-escapes of p and normalizes it, so the
// escaped and decoded spellings of a path compare equal. A path with
// malformed escapes is only normalized.
func CanonicalPath(p string) string {
	return NormalizePath(unescapePath(p))
}

// EscapePath percent-encodes a decoded URL path for use in an href.
func EscapePath(p string) string {
	return (&url.URL{Path: p}).EscapedPath()
}

func unescapePath(p string) string {
	if decoded, err := url.PathUnescape(p); err == nil {
		return decoded
	}
	return p
}

// ResolvePath returns the canonical absolute path a link points at, as a
// browser would resolve it from the page at base. base is a URL path, escaped
// or not. Scheme, host, query and fragment are ignored. It returns false for
// hrefs that do not navigate to a page path: empty, fragment-only,
// unparsable or non-HTTP links.
func ResolvePath(href, base string) (string, bool) {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") {
		return "", false
	}

	ref, err := url.Parse(href)
	if err != nil {
		return "", false
	}

	switch strings.ToLower(ref.Scheme) {
	case "", "http", "https":
	default:
		return "", false
	}

	if !ref.IsAbs() && !strings.HasPrefix(ref.Path, "/") && ref.Host == "" {
		b := &url.URL{Path: unescapePath(base)}
		if b.Path == "" {
			b.Path = "/"
		}
		ref = b.ResolveReference(ref)
	}

	p := ref.Path
	if p == "" {
		p = "/"
	}

	return NormalizePath(p), true
}
