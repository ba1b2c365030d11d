package kits

import "strings"

// Tag is one row of an image listing.
type Tag struct {
	Name string // image name, may carry a registry/organization prefix
	Tag  string
}

// Ref renders the tag as "name:tag".
func (t Tag) Ref() string {
	return t.Name + ":" + t.Tag
}

// ParseRow parses one listing line, either "name tag" (as printed by
// `docker images --format '{{.Repository}} {{.Tag}}'`) or "name:tag".
// It reports false for empty lines and lines without a tag.
func ParseRow(line string) (Tag, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return Tag{}, false
	}

	if i := strings.IndexAny(line, " \t"); i >= 0 {
		name := line[:i]
		tag := strings.TrimSpace(line[i+1:])
		if tag == "" {
			return Tag{}, false
		}

		return Tag{Name: name, Tag: tag}, true
	}

	// the last colon separates the tag unless it belongs to a registry port
	i := strings.LastIndexByte(line, ':')
	if i <= 0 || i == len(line)-1 || strings.ContainsRune(line[i+1:], '/') {
		return Tag{}, false
	}

	return Tag{Name: line[:i], Tag: line[i+1:]}, true
}

// ParseRows parses every non-empty line and returns the rows together with
// the lines that could not be parsed.
func ParseRows(lines []string) ([]Tag, []string) {
	rows := make([]Tag, 0, len(lines))
	var bad []string

	for _, l := range lines {
		if strings.TrimSpace(l) == "" {
			continue
		}

		t, ok := ParseRow(l)
		if !ok {
			bad = append(bad, l)
			continue
		}
		rows = append(rows, t)
	}

	return rows, bad
}
