package kits

import (
	"strconv"
	"strings"
)

// Version is an ordering key parsed from an image tag.
//
// A tag is characterized as exactly one of: "latest", numeric (a dotted
// integer core with optional hyphen-separated variants) or a plain word.
// Version is an immutable value; use Compare to order two keys.
type Version struct {
	Raw  string // original tag
	Core []int  // numeric components, set iff IsNumeric
	Pre  string // variant before the numeric core ("pre" in "pre-0.6")
	Post string // variant after the numeric core ("rc" in "0.6-rc")

	IsLatest  bool
	IsNumeric bool
	HasPre    bool
	HasPost   bool
}

// part is one loose component of a dotted string: a digit run or a non-digit run.
type part struct {
	str   string
	num   int
	isInt bool
}

// ParseVersion parses tag into a Version. It never fails: any string that
// carries no numeric core is kept as a word.
func ParseVersion(tag string) Version {
	v := Version{Raw: tag}

	first, _, _ := strings.Cut(tag, ".")
	v.IsLatest = first == "latest"

	if prefix, remainder, ok := strings.Cut(tag, "-"); ok {
		middle, post, hasPost := strings.Cut(remainder, "-")

		if core, ok := numericCore(prefix, true); ok {
			v.Core, v.IsNumeric = core, true
			v.Post, v.HasPost = remainder, true
		} else if core, ok := numericCore(middle, true); ok {
			v.Core, v.IsNumeric = core, true
			v.Pre, v.HasPre = prefix, true
			v.Post, v.HasPost = post, hasPost
		} else if core, ok := numericCore(prefix, false); ok {
			// "3.7rc1-slim": leading integers of the prefix
			v.Core, v.IsNumeric = core, true
			v.Post, v.HasPost = remainder, true
		}

		return v
	}

	if core, ok := numericCore(tag, false); ok {
		v.Core, v.IsNumeric = core, true
	}

	return v
}

// Compare reports whether a is older (-1), as recent as (0) or newer (+1) than b.
func Compare(a, b Version) int {
	switch {
	case a.IsLatest && b.IsLatest:
		return 0
	case a.IsLatest:
		return 1
	case b.IsLatest:
		return -1
	}

	switch {
	case a.IsNumeric && b.IsNumeric:
		if c := compareInts(a.Core, b.Core); c != 0 {
			return c
		}

		if c := compareVariant(a.Pre, a.HasPre, b.Pre, b.HasPre); c != 0 {
			return c
		}

		return compareVariant(a.Post, a.HasPost, b.Post, b.HasPost)

	case a.IsNumeric:
		return 1
	case b.IsNumeric:
		return -1
	}

	return strings.Compare(a.Raw, b.Raw)
}

// Less reports whether v is older than o.
func (v Version) Less(o Version) bool {
	return Compare(v, o) < 0
}

// Kind returns "latest", "numeric" or "word".
func (v Version) Kind() string {
	switch {
	case v.IsLatest:
		return "latest"
	case v.IsNumeric:
		return "numeric"
	default:
		return "word"
	}
}

// String returns the original tag.
func (v Version) String() string {
	return v.Raw
}

// compareVariant orders variants of an otherwise equal core:
// a variant is older than no variant, two variants compare lexicographically.
func compareVariant(a string, hasA bool, b string, hasB bool) int {
	switch {
	case hasA && hasB:
		return strings.Compare(a, b)
	case hasA:
		return -1
	case hasB:
		return 1
	default:
		return 0
	}
}

// compareInts compares element-wise; a strict prefix is the smaller one.
func compareInts(a, b []int) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		switch {
		case a[i] < b[i]:
			return -1
		case a[i] > b[i]:
			return 1
		}
	}

	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}

// numericCore extracts the dotted integer components of s.
// A leading "v" followed by an integer is dropped.
// In strict mode every component must be an integer, otherwise the greedy
// leading run of integers is returned.
func numericCore(s string, strict bool) ([]int, bool) {
	parts := splitLoose(s)
	if len(parts) > 1 && parts[0].str == "v" && parts[1].isInt {
		parts = parts[1:]
	}

	core := make([]int, 0, len(parts))
	for _, p := range parts {
		if !p.isInt {
			if strict {
				return nil, false
			}
			break
		}
		core = append(core, p.num)
	}

	if len(core) == 0 {
		return nil, false
	}

	return core, true
}

// splitLoose splits s on dots and then each component into digit and
// non-digit runs, so "v0.4rc1" yields v, 0, 4, rc, 1.
func splitLoose(s string) []part {
	out := make([]part, 0, 4)

	for _, comp := range strings.Split(s, ".") {
		start := 0
		for i := 1; i <= len(comp); i++ {
			if i < len(comp) && isDigit(comp[i]) == isDigit(comp[start]) {
				continue
			}

			out = append(out, newPart(comp[start:i]))
			start = i
		}
	}

	return out
}

func newPart(s string) part {
	p := part{str: s}
	if isDigit(s[0]) {
		if n, err := strconv.Atoi(s); err == nil {
			p.num, p.isInt = n, true
		}
	}

	return p
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
