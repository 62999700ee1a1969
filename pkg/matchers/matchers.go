// Package matchers selects paths and url() references with glob patterns.
//
// Patterns use doublestar syntax ("**" crosses directories). A pattern
// starting with '!' excludes whatever it matches. A set of only negated
// patterns matches everything they do not exclude.
package matchers

import (
	"path"
	"strings"

	"github.com/bmatcuk/doublestar"

	"github.com/arthur-debert/cssuseref/pkg/errors"
)

// Matcher holds a compiled set of glob patterns
type Matcher struct {
	include []string
	exclude []string
	// matchEmpty is the answer when no include pattern is configured
	matchEmpty bool
}

// New creates a matcher from patterns. With no patterns at all the
// matcher matches everything.
func New(patterns []string) (*Matcher, error) {
	return build(patterns, true)
}

// NewExclude creates a matcher that, with no patterns, matches nothing.
// It is meant for exclusion lists.
func NewExclude(patterns []string) (*Matcher, error) {
	return build(patterns, false)
}

func build(patterns []string, matchEmpty bool) (*Matcher, error) {
	m := &Matcher{matchEmpty: matchEmpty}
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		negated := strings.HasPrefix(p, "!")
		if negated {
			p = p[1:]
		}
		if err := validate(p); err != nil {
			return nil, errors.Wrapf(err, errors.ErrInvalidInput, "invalid glob pattern %q", p).
				WithDetail("pattern", p)
		}
		if negated {
			m.exclude = append(m.exclude, p)
		} else {
			m.include = append(m.include, p)
		}
	}
	// Only negations: everything not excluded is in.
	if len(m.include) == 0 && len(m.exclude) > 0 {
		m.matchEmpty = true
	}
	return m, nil
}

// Empty reports whether no pattern was configured
func (m *Matcher) Empty() bool {
	return len(m.include) == 0 && len(m.exclude) == 0
}

// Patterns returns the configured patterns, negations prefixed with '!'
func (m *Matcher) Patterns() []string {
	out := append([]string{}, m.include...)
	for _, p := range m.exclude {
		out = append(out, "!"+p)
	}
	return out
}

// Match reports whether name is selected
func (m *Matcher) Match(name string) bool {
	return m.MatchAny(name)
}

// MatchAny treats names as spellings of the same thing: it is rejected
// when any spelling is excluded and selected when any spelling is included.
func (m *Matcher) MatchAny(names ...string) bool {
	for _, n := range names {
		if m.excluded(n) {
			return false
		}
	}
	if len(m.include) == 0 {
		return m.matchEmpty
	}
	for _, n := range names {
		if m.included(n) {
			return true
		}
	}
	return false
}

func (m *Matcher) excluded(name string) bool {
	for _, p := range m.exclude {
		if ok, _ := doublestar.Match(p, name); ok {
			return true
		}
	}
	return false
}

func (m *Matcher) included(name string) bool {
	for _, p := range m.include {
		if ok, _ := doublestar.Match(p, name); ok {
			return true
		}
	}
	return false
}

// validate rejects malformed patterns up front; doublestar only notices a
// bad pattern when matching reaches it.
func validate(pattern string) error {
	if _, err := doublestar.Match(pattern, pattern); err != nil {
		return err
	}
	for _, part := range strings.Split(pattern, "/") {
		if _, err := path.Match(strings.ReplaceAll(part, "**", "*"), ""); err != nil {
			return err
		}
	}
	return nil
}
