package kits

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gobwas/glob"
)

const (
	tagLatest = "latest"
	tagNone   = "<none>"
)

// candidate is one listing row with the keys used by the status rules.
type candidate struct {
	name  string // full image name
	tag   string
	ref   string // name:tag
	short string // name without repository prefix
}

func newCandidate(t Tag) candidate {
	return candidate{
		name:  t.Name,
		tag:   t.Tag,
		ref:   t.Ref(),
		short: stripRepo(t.Name),
	}
}

// rule assigns status when match holds. Rules are applied in order and a
// later match overrides an earlier one.
type rule struct {
	status Status
	match  func(c candidate) bool
}

// statusRules builds the fixed-priority chain:
// exclude < include < forced < unwanted latest.
func statusRules(p Policy) []rule {
	exclude, _ := newMatcher(p.Exclude)
	include, _ := newMatcher(p.Include)

	listed := func(m matcher) func(c candidate) bool {
		return func(c candidate) bool {
			return m.match(c.name) || m.match(c.ref) || (p.IgnoreRepo && m.match(c.short))
		}
	}

	return []rule{
		{StatusExclude, listed(exclude)},
		{StatusInclude, listed(include)},
		{StatusForced, func(c candidate) bool { return c.tag == tagNone || c.name == tagNone }},
		{StatusExclude, func(c candidate) bool { return c.tag == tagLatest && !p.IncludeLatest }},
	}
}

// assignStatus runs c through the chain and returns the last matching status.
func assignStatus(rules []rule, c candidate) Status {
	st := StatusNone
	for _, r := range rules {
		if r.match(c) {
			st = r.status
		}
	}

	return st
}

// matcher tests image references against exact entries and glob patterns.
type matcher struct {
	exact map[string]struct{}
	globs []glob.Glob
}

// newMatcher builds a matcher from list. Patterns that cannot be compiled
// are kept as exact entries and reported in the returned error.
func newMatcher(list []string) (matcher, error) {
	m := matcher{exact: make(map[string]struct{}, len(list))}

	var errs []error
	for _, s := range list {
		if isPattern(s) {
			g, err := glob.Compile(s, '/', ':')
			if err == nil {
				m.globs = append(m.globs, g)
				continue
			}
			errs = append(errs, fmt.Errorf("pattern %q: %w", s, err))
		}
		m.exact[s] = struct{}{}
	}

	return m, errors.Join(errs...)
}

func (m matcher) match(s string) bool {
	if _, ok := m.exact[s]; ok {
		return true
	}

	for _, g := range m.globs {
		if g.Match(s) {
			return true
		}
	}

	return false
}

func isPattern(s string) bool {
	return strings.ContainsAny(s, "*?[{")
}
