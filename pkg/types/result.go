package types

import "fmt"

// Diagnostic is one skipped path together with the reason it was skipped
type Diagnostic struct {
	Kind DiagnosticKind
	Path string
	Err  error
}

// NewDiagnostic classifies err and pairs it with path
func NewDiagnostic(path string, err error) Diagnostic {
	return Diagnostic{
		Kind: KindOf(err),
		Path: path,
		Err:  err,
	}
}

// String renders the diagnostic as a single line
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s: %v", d.Kind, d.Path, d.Err)
}

// RootResult is the finalized counter for one root directory
type RootResult struct {
	Root string

	// Counts
	Lines       int // Lines across every counted file
	Files       int // Qualifying files counted successfully
	FailedFiles int // Qualifying files that could not be read

	Diagnostics []Diagnostic
}

// Report holds the per-root results of a run, in configured root order
type Report struct {
	Roots []RootResult
}

// Total returns the grand total: the sum of all per-root line counts
func (r *Report) Total() int {
	total := 0
	for _, root := range r.Roots {
		total += root.Lines
	}
	return total
}

// Diagnostics returns every diagnostic of every root, in root order
func (r *Report) Diagnostics() []Diagnostic {
	var all []Diagnostic
	for _, root := range r.Roots {
		all = append(all, root.Diagnostics...)
	}
	return all
}
