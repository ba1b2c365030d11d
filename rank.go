package kits

import (
	"sort"

	"github.com/woozymasta/semver"
)

// rank returns the records of a group ordered for quota enforcement, together
// with whether the newest record comes last (ascending order).
func rank(recs []Record, method SortMethod) ([]Record, bool) {
	out := append([]Record(nil), recs...)

	switch method {
	case SortDate:
		return out, false

	case SortSemver:
		sortSemver(out)

	default: // SortVersion, SortAlpha
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Version.Less(out[j].Version)
		})
	}

	return out, true
}

// sortSemver orders ascending: other tags by Compare, then valid SemVer tags
// by SemVer precedence, then "latest".
func sortSemver(recs []Record) {
	type item struct {
		rec  Record
		ver  semver.Semver
		tier int
	}

	arr := make([]item, len(recs))
	for i, r := range recs {
		it := item{rec: r}
		switch v, ok := semver.Parse(r.Tag); {
		case r.Version.IsLatest:
			it.tier = 2
		case ok && v.IsValid():
			it.ver, it.tier = v, 1
		}
		arr[i] = it
	}

	sort.SliceStable(arr, func(i, j int) bool {
		a, b := arr[i], arr[j]
		if a.tier != b.tier {
			return a.tier < b.tier
		}

		if a.tier == 1 {
			return a.ver.Compare(b.ver) < 0
		}

		return a.rec.Version.Less(b.rec.Version)
	})

	for i, it := range arr {
		recs[i] = it.rec
	}
}

// applyQuota marks the first keep undecided records, scanned from the newest,
// as kept and the rest as removed. Special statuses are left untouched.
func applyQuota(recs []Record, keep int, ascending bool) {
	k := 0
	mark := func(i int) {
		if recs[i].Status.special() {
			return
		}

		if k < keep {
			recs[i].Status = StatusKeep
		} else {
			recs[i].Status = StatusRemove
		}
		k++
	}

	if ascending {
		for i := len(recs) - 1; i >= 0; i-- {
			mark(i)
		}
		return
	}

	for i := range recs {
		mark(i)
	}
}
