package pathstyle

import (
	"path"
	"strings"
)

type posixStyle struct{}

// Posix returns the POSIX path style, independent of the host
func Posix() PathStyle {
	return posixStyle{}
}

func (posixStyle) Name() string               { return NamePosix }
func (posixStyle) Separator() byte            { return '/' }
func (posixStyle) IsAbs(p string) bool        { return path.IsAbs(p) }
func (posixStyle) Clean(p string) string      { return path.Clean(p) }
func (posixStyle) Join(elem ...string) string { return path.Join(elem...) }
func (posixStyle) Dir(p string) string        { return path.Dir(p) }
func (posixStyle) Base(p string) string       { return path.Base(p) }
func (posixStyle) FromSlash(p string) string  { return p }
func (posixStyle) ToSlash(p string) string    { return p }

func (posixStyle) Rel(basepath, targpath string) (string, error) {
	return slashRel(basepath, targpath, false)
}

func (posixStyle) Split(p string) []string {
	return strings.Split(path.Clean(p), "/")
}
