package types

import "errors"

// Access errors reported while traversing and counting. They are never fatal
// to a run: each one is recorded as a Diagnostic and processing continues.
var (
	// ErrRootUnavailable means a configured root does not exist or is not a directory
	ErrRootUnavailable = errors.New("root directory unavailable")
	// ErrDirUnreadable means a directory below a root could not be listed
	ErrDirUnreadable = errors.New("directory unreadable")
	// ErrFileUnreadable means a qualifying file could not be opened or read to completion
	ErrFileUnreadable = errors.New("file unreadable")
)

// DiagnosticKind classifies an access failure
type DiagnosticKind string

const (
	KindRootUnavailable DiagnosticKind = "root_unavailable"
	KindDirUnreadable   DiagnosticKind = "dir_unreadable"
	KindFileUnreadable  DiagnosticKind = "file_unreadable"
)

// KindOf maps an error onto its DiagnosticKind. Unclassified errors are
// treated as file failures.
func KindOf(err error) DiagnosticKind {
	switch {
	case errors.Is(err, ErrRootUnavailable):
		return KindRootUnavailable
	case errors.Is(err, ErrDirUnreadable):
		return KindDirUnreadable
	default:
		return KindFileUnreadable
	}
}
