package kits

import (
	"reflect"
	"testing"
)

func TestParseRow(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want Tag
		ok   bool
	}{
		{"pavics/magpie 2.0.0", Tag{"pavics/magpie", "2.0.0"}, true},
		{"pavics/magpie\t2.0.0", Tag{"pavics/magpie", "2.0.0"}, true},
		{"  pavics/magpie   2.0.0  ", Tag{"pavics/magpie", "2.0.0"}, true},
		{"pavics/magpie:2.0.0", Tag{"pavics/magpie", "2.0.0"}, true},
		{"<none> <none>", Tag{"<none>", "<none>"}, true},
		{"<none>:<none>", Tag{"<none>", "<none>"}, true},
		{"localhost:5000/app:1.0", Tag{"localhost:5000/app", "1.0"}, true},
		{"localhost:5000/app 1.0", Tag{"localhost:5000/app", "1.0"}, true},
		{"localhost:5000/app", Tag{}, false},
		{"alpine", Tag{}, false},
		{"alpine:", Tag{}, false},
		{":1.0", Tag{}, false},
		{"", Tag{}, false},
		{"   ", Tag{}, false},
	}

	for _, tc := range cases {
		got, ok := ParseRow(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("ParseRow(%q) = %+v, %v; want %+v, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestParseRows(t *testing.T) {
	t.Parallel()

	in := []string{"app 1", "", "alpine", "app:2", "  "}

	rows, bad := ParseRows(in)

	wantRows := []Tag{{"app", "1"}, {"app", "2"}}
	if !reflect.DeepEqual(rows, wantRows) {
		t.Fatalf("rows got %v; want %v", rows, wantRows)
	}

	if !reflect.DeepEqual(bad, []string{"alpine"}) {
		t.Fatalf("bad got %v; want [alpine]", bad)
	}
}
