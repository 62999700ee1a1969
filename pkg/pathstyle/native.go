package pathstyle

import (
	"path/filepath"
	"strings"
)

type nativeStyle struct{}

// Native returns the host platform's path style
func Native() PathStyle {
	return nativeStyle{}
}

func (nativeStyle) Name() string               { return NameNative }
func (nativeStyle) Separator() byte            { return filepath.Separator }
func (nativeStyle) IsAbs(p string) bool        { return filepath.IsAbs(p) }
func (nativeStyle) Clean(p string) string      { return filepath.Clean(p) }
func (nativeStyle) Join(elem ...string) string { return filepath.Join(elem...) }
func (nativeStyle) Dir(p string) string        { return filepath.Dir(p) }
func (nativeStyle) Base(p string) string       { return filepath.Base(p) }
func (nativeStyle) FromSlash(p string) string  { return filepath.FromSlash(p) }
func (nativeStyle) ToSlash(p string) string    { return filepath.ToSlash(p) }

func (nativeStyle) Rel(basepath, targpath string) (string, error) {
	return filepath.Rel(basepath, targpath)
}

func (nativeStyle) Split(p string) []string {
	return strings.Split(filepath.Clean(p), string(filepath.Separator))
}
