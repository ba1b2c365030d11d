/*
Package kits (Keep Image Tag Selector) decides which local container images
to keep and which to remove, per image group, from a flat name/tag listing.

The package is I/O-agnostic: it operates purely on a slice of rows.
Typical flow:

 1. List images elsewhere, newest first (e.g., `docker images`).
 2. Call Resolve with the desired Policy.
 3. Remove Plan.Remove elsewhere, or print Plan.Groups for a dry run.

Version order (newest to oldest):

	latest
	0.6
	pre-0.6
	post-0.6
	0.5
	v0.4.1
	0.4
	0.4-rc
	v0.3
	unknown
	random

A leading "v" is ignored. Text separated by '-' before or after the numeric
core is a variant: variants sort below the bare version and between
themselves alphabetically, whatever they mean.

Statuses are assigned by a fixed rule chain, each rule overriding the
previous one: exclude, include, forced ("<none>" images), then exclude again
for "latest" unless IncludeLatest is set.

Usage example:

	rows := []kits.Tag{
		{Name: "pavics/magpie", Tag: "<none>"},
		{Name: "pavics/magpie", Tag: "2.0.0"},
		{Name: "pavics/magpie", Tag: "3.0.0"},
		{Name: "pavics/magpie", Tag: "latest"},
	}

	p := kits.DefaultPolicy()
	p.IncludeLatest = true

	plan := kits.Resolve(rows, p)
	fmt.Println(plan.Remove) // [pavics/magpie:<none> pavics/magpie:2.0.0 pavics/magpie:3.0.0]
*/
package kits
