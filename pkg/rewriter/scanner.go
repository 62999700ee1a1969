package rewriter

import (
	"regexp"
	"strings"

	"github.com/arthur-debert/cssuseref/pkg/types"
)

var (
	// urlPattern stops at the first ')'; parentheses inside a url() are
	// not supported.
	urlPattern = regexp.MustCompile(`url\((.*?)\)`)

	schemePattern = regexp.MustCompile(`^[a-z]+://`)
)

// Scan returns every url(...) occurrence in text, in order
func Scan(text string) []types.URLReference {
	matches := urlPattern.FindAllStringSubmatchIndex(text, -1)
	refs := make([]types.URLReference, 0, len(matches))
	for _, m := range matches {
		raw := text[m[2]:m[3]]
		refs = append(refs, types.URLReference{
			RawMatch: text[m[0]:m[1]],
			RawValue: raw,
			Value:    TrimValue(raw),
			Start:    m[0],
			End:      m[1],
		})
	}
	return refs
}

// TrimValue strips surrounding whitespace and one pair of matching quotes
func TrimValue(raw string) string {
	v := strings.TrimSpace(raw)
	if len(v) >= 2 {
		first, last := v[0], v[len(v)-1]
		if first == last && (first == '"' || first == '\'') {
			v = strings.TrimSpace(v[1 : len(v)-1])
		}
	}
	return v
}

// IsPassThrough reports whether a reference is never resolved against the
// filesystem: root-absolute paths, data URIs, fragments, URLs with a
// scheme and empty references.
func IsPassThrough(value string) bool {
	return value == "" ||
		strings.HasPrefix(value, "/") ||
		strings.HasPrefix(value, "data:") ||
		strings.HasPrefix(value, "#") ||
		schemePattern.MatchString(value)
}

// Rebuild substitutes every occurrence's replacement into text. The
// occurrences must be in scan order.
func Rebuild(text string, occurrences []types.Occurrence) string {
	var b strings.Builder
	b.Grow(len(text))
	prev := 0
	for _, o := range occurrences {
		b.WriteString(text[prev:o.Reference.Start])
		if o.Replacement != "" {
			b.WriteString(o.Replacement)
		} else {
			b.WriteString(o.Reference.RawMatch)
		}
		prev = o.Reference.End
	}
	b.WriteString(text[prev:])
	return b.String()
}
