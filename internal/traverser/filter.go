package traverser

import "strings"

// Filter decides which paths qualify for counting
type Filter struct {
	Extensions []string // Allowed extensions, without leading dot
	Exclusions []string // A path containing any of these substrings is excluded
}

// NewFilter builds a Filter from user-supplied lists.
// A leading dot on an extension is stripped. Blank entries are dropped from
// both lists: an empty exclusion would otherwise match every path.
func NewFilter(extensions, exclusions []string) Filter {
	f := Filter{
		Extensions: make([]string, 0, len(extensions)),
		Exclusions: make([]string, 0, len(exclusions)),
	}
	for _, ext := range extensions {
		ext = strings.TrimPrefix(strings.TrimSpace(ext), ".")
		if ext != "" {
			f.Extensions = append(f.Extensions, ext)
		}
	}
	for _, ex := range exclusions {
		if strings.TrimSpace(ex) != "" {
			f.Exclusions = append(f.Exclusions, ex)
		}
	}
	return f
}

// Excluded reports whether path contains any exclusion substring.
// Matching is plain substring containment on the whole path, so "build"
// also excludes "src/rebuild.ts".
func (f Filter) Excluded(path string) bool {
	for _, ex := range f.Exclusions {
		if strings.Contains(path, ex) {
			return true
		}
	}
	return false
}

// HasExtension reports whether path ends in "." followed by a configured extension
func (f Filter) HasExtension(path string) bool {
	for _, ext := range f.Extensions {
		if strings.HasSuffix(path, "."+ext) {
			return true
		}
	}
	return false
}

// Matches reports whether a regular file at path qualifies for counting
func (f Filter) Matches(path string) bool {
	return !f.Excluded(path) && f.HasExtension(path)
}
