// Package config loads retention policies from YAML files.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/woozymasta/kits"
)

// File is the on-disk policy. Unset fields leave the base policy untouched.
//
//	keep-count: 2
//	include-latest: true
//	sort: version
//	ignore-repo: false
//	include: [pavics/magpie:<none>]
//	exclude: [mongo, "registry.example/**"]
type File struct {
	KeepCount     *int     `yaml:"keep-count"`
	IncludeLatest *bool    `yaml:"include-latest"`
	Sort          *string  `yaml:"sort"`
	IgnoreRepo    *bool    `yaml:"ignore-repo"`
	Include       []string `yaml:"include"`
	Exclude       []string `yaml:"exclude"`
}

// Load reads and decodes the policy file at path.
func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("read config: %w", err)
	}

	f, err := Decode(bytes.NewReader(data))
	if err != nil {
		return File{}, fmt.Errorf("config %s: %w", path, err)
	}

	return f, nil
}

// Decode decodes a policy document. Unknown keys are rejected.
func Decode(r io.Reader) (File, error) {
	var f File

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return File{}, fmt.Errorf("decode: %w", err)
	}

	if f.KeepCount != nil && *f.KeepCount < 0 {
		return File{}, fmt.Errorf("keep-count must be >= 0, got %d", *f.KeepCount)
	}

	return f, nil
}

// Apply overlays the values set in f onto p.
func (f File) Apply(p kits.Policy) kits.Policy {
	if f.KeepCount != nil {
		p.KeepCount = *f.KeepCount
	}

	if f.IncludeLatest != nil {
		p.IncludeLatest = *f.IncludeLatest
	}

	if f.Sort != nil {
		p.Sort = kits.ParseSortMethod(*f.Sort)
	}

	if f.IgnoreRepo != nil {
		p.IgnoreRepo = *f.IgnoreRepo
	}

	if f.Include != nil {
		p.Include = append([]string(nil), f.Include...)
	}

	if f.Exclude != nil {
		p.Exclude = append([]string(nil), f.Exclude...)
	}

	return p
}
