package kits

import "strings"

// toTok normalizes a free-form string into a lowercased token.
func toTok(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// stripRepo drops the registry/organization prefix of an image name.
func stripRepo(name string) string {
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		return name[i+1:]
	}

	return name
}

// uniqStrings drops repeated values, preserving the order of first appearance.
func uniqStrings(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := in[:0]

	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}

		seen[s] = struct{}{}
		out = append(out, s)
	}

	return out
}
