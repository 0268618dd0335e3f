package domain

import "strings"

// Pairing captures the naming convention that ties a source file to its
// spec file, e.g. "foo.component.ts" <-> "foo.component.spec.ts".
type Pairing struct {
	// TestSuffix is the full spec-file suffix, e.g. ".spec.ts".
	TestSuffix string
	// SourceSuffix is the plain source suffix, e.g. ".ts".
	SourceSuffix string
}

// DefaultPairing is the Angular-style spec naming convention.
func DefaultPairing() Pairing {
	return Pairing{TestSuffix: ".spec.ts", SourceSuffix: ".ts"}
}

// IsSpec reports whether path names a spec file.
func (p Pairing) IsSpec(path string) bool {
	return strings.HasSuffix(path, p.TestSuffix)
}

// IsSource reports whether path names a plain source file (not a spec).
func (p Pairing) IsSource(path string) bool {
	return strings.HasSuffix(path, p.SourceSuffix) && !p.IsSpec(path)
}

// SpecFor returns the spec-file counterpart for a source file.
// The result is meaningful only when IsSource(path) holds.
func (p Pairing) SpecFor(path string) string {
	return strings.TrimSuffix(path, p.SourceSuffix) + p.TestSuffix
}

// SourceFor returns the companion source for a spec file.
//
// This intentionally replaces the first occurrence of the test suffix as
// a substring rather than trimming it, so a path with an embedded
// ".spec.ts" substring pairs exactly the way the selection convention
// has always treated it.
func (p Pairing) SourceFor(spec string) string {
	return strings.Replace(spec, p.TestSuffix, p.SourceSuffix, 1)
}
