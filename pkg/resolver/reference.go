package resolver

import (
	"net/url"
	"strings"

	"github.com/arthur-debert/cssuseref/pkg/errors"
	"github.com/arthur-debert/cssuseref/pkg/types"
)

// ParseReference splits a trimmed url() value into its path, query and
// fragment. The path keeps its original escaping.
func ParseReference(value string) (types.URLReference, error) {
	ref := types.URLReference{Value: value}

	rest := value
	if i := strings.IndexByte(rest, '#'); i >= 0 {
		ref.Fragment = rest[i:]
		rest = rest[:i]
	}
	if i := strings.IndexByte(rest, '?'); i >= 0 {
		ref.Query = rest[i:]
		rest = rest[:i]
	}
	ref.PathPart = rest

	if ref.PathPart == "" {
		return ref, errors.Newf(errors.ErrInvalidURLReference, "reference %q has no path", value).
			WithDetail("reference", value)
	}

	u, err := url.Parse(escapeStrayPercents(value))
	if err != nil {
		return ref, errors.Wrapf(err, errors.ErrInvalidURLReference, "cannot parse reference %q", value).
			WithDetail("reference", value)
	}
	if u.Scheme != "" || u.Host != "" {
		return ref, errors.Newf(errors.ErrInvalidURLReference, "reference %q is not a relative path", value).
			WithDetail("reference", value)
	}

	return ref, nil
}

// escapeStrayPercents escapes every '%' that does not start a %XX escape,
// so file names like "100%.png" parse. Valid escapes are left for url.Parse
// to check.
func escapeStrayPercents(value string) string {
	if !strings.Contains(value, "%") {
		return value
	}
	var b strings.Builder
	for i := 0; i < len(value); i++ {
		if value[i] == '%' && !(i+2 < len(value) && isHex(value[i+1]) && isHex(value[i+2])) {
			b.WriteString("%25")
			continue
		}
		b.WriteByte(value[i])
	}
	return b.String()
}

func isHex(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}
