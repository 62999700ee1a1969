package pathstyle

import (
	"path"
	"strings"
)

// windowsStyle implements Windows path rules on top of the slash based
// path package. UNC paths are not supported; only drive letter volumes.
type windowsStyle struct{}

// Windows returns the Windows path style, independent of the host
func Windows() PathStyle {
	return windowsStyle{}
}

func (windowsStyle) Name() string    { return NameWindows }
func (windowsStyle) Separator() byte { return '\\' }

// split separates the drive letter volume and returns the remainder in
// slash form.
func (windowsStyle) split(p string) (vol, rest string) {
	p = strings.ReplaceAll(p, `\`, "/")
	if len(p) >= 2 && p[1] == ':' && isLetter(p[0]) {
		return p[:2], p[2:]
	}
	return "", p
}

func (windowsStyle) join(vol, rest string) string {
	return vol + strings.ReplaceAll(rest, "/", `\`)
}

func (w windowsStyle) IsAbs(p string) bool {
	vol, rest := w.split(p)
	return vol != "" && strings.HasPrefix(rest, "/")
}

func (w windowsStyle) Clean(p string) string {
	vol, rest := w.split(p)
	if rest == "" && vol != "" {
		return vol + "."
	}
	return w.join(vol, path.Clean(rest))
}

func (w windowsStyle) Join(elem ...string) string {
	parts := make([]string, 0, len(elem))
	for _, e := range elem {
		if e != "" {
			parts = append(parts, e)
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return w.Clean(strings.Join(parts, `\`))
}

func (w windowsStyle) Dir(p string) string {
	vol, rest := w.split(p)
	return w.join(vol, path.Dir(rest))
}

func (w windowsStyle) Base(p string) string {
	_, rest := w.split(p)
	if rest == "" {
		return "."
	}
	return w.join("", path.Base(rest))
}

func (w windowsStyle) Rel(basepath, targpath string) (string, error) {
	bv, br := w.split(basepath)
	tv, tr := w.split(targpath)
	if !strings.EqualFold(bv, tv) {
		return "", relError(basepath, targpath)
	}
	rel, err := slashRel(br, tr, true)
	if err != nil {
		return "", err
	}
	return w.join("", rel), nil
}

func (windowsStyle) FromSlash(p string) string {
	return strings.ReplaceAll(p, "/", `\`)
}

func (windowsStyle) ToSlash(p string) string {
	return strings.ReplaceAll(p, `\`, "/")
}

func (w windowsStyle) Split(p string) []string {
	vol, rest := w.split(w.Clean(p))
	segs := strings.Split(rest, "/")
	segs[0] = vol + segs[0]
	return segs
}

func isLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}
