package pathstyle

import (
	"fmt"
	"path"
	"strings"

	"github.com/arthur-debert/cssuseref/pkg/errors"
)

// Style names accepted by ByName
const (
	NamePosix   = "posix"
	NameWindows = "windows"
	NameNative  = "native"
)

// PathStyle is the set of path operations the resolver needs
type PathStyle interface {
	// Name identifies the style ("posix", "windows" or "native")
	Name() string

	// Separator is the path separator character
	Separator() byte

	IsAbs(p string) bool
	Clean(p string) string
	Join(elem ...string) string
	Dir(p string) string
	Base(p string) string

	// Rel returns a path that is lexically equivalent to targpath when
	// joined to basepath.
	Rel(basepath, targpath string) (string, error)

	FromSlash(p string) string
	ToSlash(p string) string

	// Split returns the segments of the cleaned path. For absolute paths
	// the first segment is the root: "" for "/a/b", "C:" for `C:\a\b`.
	Split(p string) []string
}

// ByName returns the style registered under name. An empty name selects
// the native style.
func ByName(name string) (PathStyle, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", NameNative:
		return Native(), nil
	case NamePosix:
		return Posix(), nil
	case NameWindows:
		return Windows(), nil
	}
	return nil, errors.Newf(errors.ErrInvalidInput, "unknown path style %q", name).
		WithDetail("valid", []string{NameNative, NamePosix, NameWindows})
}

// Names lists the accepted style names
func Names() []string {
	return []string{NameNative, NamePosix, NameWindows}
}

// slashRel computes a relative path between two volume-less, slash
// separated paths. fold selects case-insensitive segment comparison.
func slashRel(basepath, targpath string, fold bool) (string, error) {
	base := path.Clean(basepath)
	targ := path.Clean(targpath)
	if sameSegment(base, targ, fold) {
		return ".", nil
	}

	baseRooted := strings.HasPrefix(base, "/")
	targRooted := strings.HasPrefix(targ, "/")
	if baseRooted != targRooted {
		return "", relError(basepath, targpath)
	}

	bs := segments(base)
	ts := segments(targ)
	i := 0
	for i < len(bs) && i < len(ts) && sameSegment(bs[i], ts[i], fold) {
		i++
	}

	parts := make([]string, 0, len(bs)-i+len(ts)-i)
	for _, s := range bs[i:] {
		// Climbing out of an unknown parent needs the working directory.
		if s == ".." {
			return "", relError(basepath, targpath)
		}
		parts = append(parts, "..")
	}
	parts = append(parts, ts[i:]...)
	if len(parts) == 0 {
		return ".", nil
	}
	return strings.Join(parts, "/"), nil
}

func segments(p string) []string {
	var out []string
	for _, s := range strings.Split(p, "/") {
		if s == "" || s == "." {
			continue
		}
		out = append(out, s)
	}
	return out
}

func sameSegment(a, b string, fold bool) bool {
	if fold {
		return strings.EqualFold(a, b)
	}
	return a == b
}

func relError(basepath, targpath string) error {
	return errors.New(errors.ErrInvalidInput,
		fmt.Sprintf("Rel: can't make %s relative to %s", targpath, basepath))
}
