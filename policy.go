package kits

import "fmt"

// Policy configures a single retention run.
type Policy struct {
	// Include lists images (bare name or name:tag) to remove regardless of quota.
	// Entries with glob meta characters are matched as patterns.
	Include []string

	// Exclude lists images (bare name or name:tag) to leave untouched.
	// Entries with glob meta characters are matched as patterns.
	Exclude []string

	// KeepCount is the number of most recent tags preserved per image group.
	KeepCount int

	// Sort defines how tags of a group are ranked.
	Sort SortMethod

	// IncludeLatest counts "latest" as one of the preserved tags,
	// otherwise "latest" is ignored completely.
	IncludeLatest bool

	// IgnoreRepo groups images by their last path segment, merging
	// "registry.example/org/app" with "app".
	IgnoreRepo bool

	// DryRun keeps excluded records in the plan for display.
	DryRun bool
}

// DefaultPolicy keeps the single most recent tag by version order.
func DefaultPolicy() Policy {
	return Policy{
		KeepCount: 1,
		Sort:      SortVersion,
	}
}

// Validate reports include/exclude patterns that cannot be compiled.
func (p Policy) Validate() error {
	if _, err := newMatcher(p.Include); err != nil {
		return fmt.Errorf("include: %w", err)
	}

	if _, err := newMatcher(p.Exclude); err != nil {
		return fmt.Errorf("exclude: %w", err)
	}

	return nil
}

// normalized returns a copy with implicit defaults applied.
func (p Policy) normalized() Policy {
	out := p
	if out.KeepCount < 0 {
		out.KeepCount = 0
	}

	return out
}

// SortMethod controls the ranking of tags inside a group.
type SortMethod uint8

const (
	// SortVersion ranks tags with the custom version order (see Compare).
	SortVersion SortMethod = iota
	// SortDate keeps the listing order, newest first.
	SortDate
	// SortAlpha ranks like SortVersion and visits groups by name.
	SortAlpha
	// SortSemver ranks valid SemVer tags by SemVer precedence above all others.
	SortSemver
)

// String returns a stable textual representation for SortMethod.
func (m SortMethod) String() string {
	switch m {
	case SortDate:
		return "date"
	case SortAlpha:
		return "alpha"
	case SortSemver:
		return "semver"
	default:
		return "version"
	}
}

// ParseSortMethod maps free-form tokens to SortMethod.
// Supported aliases (case-insensitive):
//
//	date:    "date","time","created","d"
//	version: "version","ver","v"
//	alpha:   "alpha","name","lex","a"
//	semver:  "semver","sv","s"
func ParseSortMethod(s string) SortMethod {
	switch toTok(s) {
	case "date", "time", "created", "d":
		return SortDate

	case "version", "ver", "v":
		return SortVersion

	case "alpha", "name", "lex", "a":
		return SortAlpha

	case "semver", "sv", "s":
		return SortSemver

	default:
		return SortVersion
	}
}

// Status is the resolved decision for a record.
type Status uint8

const (
	// StatusNone is the undecided state before quota enforcement.
	StatusNone Status = iota
	// StatusKeep preserves the record within the group quota.
	StatusKeep
	// StatusRemove drops the record beyond the group quota.
	StatusRemove
	// StatusInclude removes the record regardless of quota.
	StatusInclude
	// StatusExclude leaves the record out of the operation.
	StatusExclude
	// StatusForced removes untagged or dangling records.
	StatusForced
)

// Symbol returns the one-character marker used in dry-run listings.
func (s Status) Symbol() byte {
	switch s {
	case StatusRemove:
		return '-'
	case StatusInclude:
		return 'i'
	case StatusExclude:
		return 'e'
	case StatusForced:
		return 'f'
	default:
		return ' '
	}
}

// String returns a stable textual representation for Status.
func (s Status) String() string {
	switch s {
	case StatusKeep:
		return "keep"
	case StatusRemove:
		return "remove"
	case StatusInclude:
		return "include"
	case StatusExclude:
		return "exclude"
	case StatusForced:
		return "forced"
	default:
		return "none"
	}
}

// Removes reports whether the status puts the record into the removal set.
func (s Status) Removes() bool {
	return s == StatusRemove || s == StatusInclude || s == StatusForced
}

// special reports statuses that never consume or yield quota slots.
func (s Status) special() bool {
	return s == StatusExclude || s == StatusInclude || s == StatusForced
}
