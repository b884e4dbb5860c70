// Package report renders count results as plain text.
package report

import (
	"fmt"
	"io"

	"github.com/dshills/linecount/pkg/types"
)

// Write prints one line per root followed by the grand total
func Write(w io.Writer, r *types.Report) error {
	for _, root := range r.Roots {
		if _, err := fmt.Fprintf(w, "Total lines in specified directory (%s): %d\n", root.Root, root.Lines); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "Total Lines in Project: %d\n", r.Total())
	return err
}

// WriteDiagnostics prints one line per skipped path
func WriteDiagnostics(w io.Writer, r *types.Report) error {
	diags := r.Diagnostics()
	if len(diags) == 0 {
		return nil
	}
	if _, err := fmt.Fprintf(w, "Skipped %d path(s):\n", len(diags)); err != nil {
		return err
	}
	for _, d := range diags {
		if _, err := fmt.Fprintf(w, "  %s\n", d); err != nil {
			return err
		}
	}
	return nil
}
