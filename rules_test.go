package kits

import (
	"strings"
	"testing"
)

func TestAssignStatus(t *testing.T) {
	t.Parallel()

	p := Policy{
		Include:    []string{"inc", "both", "app:2", "pavics/*"},
		Exclude:    []string{"exc", "both", "app:3", "short"},
		IgnoreRepo: true,
	}

	cases := []struct {
		row  Tag
		want Status
	}{
		{Tag{"app", "1"}, StatusNone},
		{Tag{"app", "2"}, StatusInclude},
		{Tag{"app", "3"}, StatusExclude},
		{Tag{"exc", "1"}, StatusExclude},
		{Tag{"inc", "1"}, StatusInclude},
		{Tag{"both", "1"}, StatusInclude},
		{Tag{"inc", "<none>"}, StatusForced},
		{Tag{"exc", "<none>"}, StatusForced},
		{Tag{"<none>", "<none>"}, StatusForced},
		{Tag{"app", "latest"}, StatusExclude},
		{Tag{"inc", "latest"}, StatusExclude},
		{Tag{"registry.example/org/short", "1"}, StatusExclude},
		{Tag{"pavics/magpie", "1"}, StatusInclude},
		{Tag{"pavics/org/magpie", "1"}, StatusNone},
	}

	rules := statusRules(p)
	for _, tc := range cases {
		if got := assignStatus(rules, newCandidate(tc.row)); got != tc.want {
			t.Fatalf("assignStatus(%s) = %v; want %v", tc.row.Ref(), got, tc.want)
		}
	}

	p.IncludeLatest = true
	rules = statusRules(p)
	if got := assignStatus(rules, newCandidate(Tag{"app", "latest"})); got != StatusNone {
		t.Fatalf("assignStatus(app:latest) with IncludeLatest = %v; want none", got)
	}
	if got := assignStatus(rules, newCandidate(Tag{"inc", "latest"})); got != StatusInclude {
		t.Fatalf("assignStatus(inc:latest) with IncludeLatest = %v; want include", got)
	}
}

func TestMatcher(t *testing.T) {
	t.Parallel()

	m, err := newMatcher([]string{"alpine", "app:1", "pavics/*", "ogc/**", "app[", "python:3.?-slim"})
	if err == nil || !strings.Contains(err.Error(), `"app["`) {
		t.Fatalf("newMatcher error = %v; want report of \"app[\"", err)
	}

	cases := map[string]bool{
		"alpine":             true,
		"alpine:3":           false,
		"app:1":              true,
		"app:2":              false,
		"pavics/magpie":      true,
		"pavics/magpie:1.0":  false,
		"pavics/a/b":         false,
		"ogc/a/b:1":          true,
		"app[":               true, // invalid pattern kept as exact entry
		"python:3.8-slim":    true,
		"python:3.10-slim":   false,
		"python:3.8-slim-xx": false,
	}

	for in, want := range cases {
		if got := m.match(in); got != want {
			t.Fatalf("match(%q) = %v; want %v", in, got, want)
		}
	}
}
