// Package types provides shared type definitions for linecount.
//
// RootResult is the per-root counter produced by a single traversal. It is
// returned by value and owned by whoever produced it, so results for
// different roots never share mutable state:
//
//	result := types.RootResult{Root: "../client/", Lines: 1200, Files: 37}
//
// Report collects the results of a run in configured root order. The grand
// total is derived on demand:
//
//	report := &types.Report{Roots: results}
//	fmt.Println(report.Total())
//
// # Diagnostics
//
// Access failures are never fatal. Each is wrapped around one of the
// sentinel errors and recorded as a Diagnostic:
//
//	ErrRootUnavailable  // root missing or not a directory
//	ErrDirUnreadable    // subdirectory could not be listed
//	ErrFileUnreadable   // qualifying file could not be opened or read
//
// Use errors.Is to classify them, or KindOf for the DiagnosticKind.
package types
