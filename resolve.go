package kits

import (
	"fmt"
	"sort"
)

// Record is a listing row with its resolved status.
type Record struct {
	Name    string
	Tag     string
	Version Version
	Status  Status
}

// Ref renders the record as "name:tag".
func (r Record) Ref() string {
	return r.Name + ":" + r.Tag
}

// String renders a dry-run line: "<symbol> name:tag".
func (r Record) String() string {
	return fmt.Sprintf("%c %s", r.Status.Symbol(), r.Ref())
}

// Group is a set of records sharing one retention quota.
type Group struct {
	Key     string
	Records []Record
}

// Plan is the outcome of Resolve.
type Plan struct {
	// Groups in display order, records in ranking order.
	Groups []Group

	// Remove is the set of "name:tag" references to remove,
	// without duplicates, in display order.
	Remove []string
}

// Count returns the number of records per final status.
func (p Plan) Count() map[Status]int {
	out := make(map[Status]int, 5)
	for _, g := range p.Groups {
		for _, r := range g.Records {
			out[r.Status]++
		}
	}

	return out
}

// Resolve decides which images to keep and which to remove.
// rows must be ordered from the newest to the oldest image.
// Pipeline:
//  1. status assignment through the rule chain
//  2. grouping by image name (or last path segment with IgnoreRepo)
//  3. per-group ranking by p.Sort
//  4. quota enforcement (KeepCount newest undecided records are kept)
//  5. removal set union (Include, Forced, Remove)
func Resolve(rows []Tag, p Policy) Plan {
	p = p.normalized()

	// 1-2) statuses and groups
	groups := groupRecords(rows, p)

	// alpha only changes the visiting order
	if p.Sort == SortAlpha {
		sort.SliceStable(groups, func(i, j int) bool { return groups[i].Key < groups[j].Key })
	}

	plan := Plan{Groups: make([]Group, 0, len(groups))}
	for _, g := range groups {
		// 3) ranking
		recs, ascending := rank(g.Records, p.Sort)

		// 4) quota
		applyQuota(recs, p.KeepCount, ascending)

		// 5) removal set
		for _, r := range recs {
			if r.Status.Removes() {
				plan.Remove = append(plan.Remove, r.Ref())
			}
		}

		plan.Groups = append(plan.Groups, Group{Key: g.Key, Records: recs})
	}

	plan.Remove = uniqStrings(plan.Remove)

	return plan
}

// groupRecords assigns statuses and buckets records by group key, keeping
// the listing order inside a group and the first-appearance order of groups.
func groupRecords(rows []Tag, p Policy) []Group {
	rules := statusRules(p)

	var groups []Group
	index := make(map[string]int)

	for _, t := range rows {
		st := assignStatus(rules, newCandidate(t))
		if st == StatusExclude && !p.DryRun {
			continue
		}

		key := t.Name
		if p.IgnoreRepo {
			key = stripRepo(t.Name)
		}

		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, Group{Key: key})
		}

		groups[i].Records = append(groups[i].Records, Record{
			Name:    t.Name,
			Tag:     t.Tag,
			Version: ParseVersion(t.Tag),
			Status:  st,
		})
	}

	return groups
}
