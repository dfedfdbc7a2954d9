// Package urls provides helpers to resolve, filter and build the URLs the
// site parsers follow.
package urls

import (
	"net/url"
	"strings"
)

// skipSchemes are href prefixes that never point at a fetchable page.
var skipSchemes = []string{"mailto:", "javascript:", "tel:", "#"}

// Resolve resolves href against base and strips the fragment.
// It returns "" for hrefs that cannot be followed.
func Resolve(base, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	for _, p := range skipSchemes {
		if strings.HasPrefix(strings.ToLower(href), p) {
			return ""
		}
	}

	b, err := url.Parse(base)
	if err != nil {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	resolved := b.ResolveReference(ref)
	resolved.Fragment = ""
	return resolved.String()
}

// Origin returns scheme://host of rawURL, or "" if it has neither.
func Origin(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return ""
	}
	return parsed.Scheme + "://" + parsed.Host
}

// Join appends a path to a base URL, leaving exactly one slash between them.
func Join(base, path string) string {
	return strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(path, "/")
}

// WithQuery joins base and path and appends the encoded query parameters.
// Keys are written in the order given.
func WithQuery(base, path string, kv ...string) string {
	var b strings.Builder
	b.WriteString(Join(base, path))
	for i := 0; i+1 < len(kv); i += 2 {
		if i == 0 {
			b.WriteByte('?')
		} else {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(kv[i]))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(kv[i+1]))
	}
	return b.String()
}
