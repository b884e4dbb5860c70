package traverser

import (
	"errors"
	"fmt"
	"iter"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"

	"github.com/dshills/linecount/pkg/types"
)

// maxLinkDepth bounds how many links are followed when resolving a root
const maxLinkDepth = 40

// errStop ends a walk early when the consumer stops ranging
var errStop = errors.New("traversal stopped")

// File is an entry produced by a walk
type File struct {
	Path string // location on the filesystem, used to open the file
	Name string // Path rebased onto the root as configured, used for matching and reporting
}

// Walk returns a lazy sequence over the qualifying files below root.
// It is WalkFrom with the root used as-is on fsys.
func Walk(fsys billy.Filesystem, root string, filter Filter) iter.Seq2[File, error] {
	return WalkFrom(fsys, root, root, filter)
}

// WalkFrom walks dir on fsys on behalf of root, the directory as the user
// configured it. dir is usually the absolute form of root.
//
// Each element is either (file, nil) for a regular file that passes the
// filter, or (file, err) for an entry that could not be accessed. Access
// failures never end the sequence. Exclusions and extensions are matched
// against File.Name, so they see the same path the user configured even
// when dir differs or is reached through links.
//
// Directory links below root are not followed. Links to regular files are
// counted like the files they point to. A root that is itself a link, or a
// chain of links, is resolved before walking.
func WalkFrom(fsys billy.Filesystem, dir, root string, filter Filter) iter.Seq2[File, error] {
	return func(yield func(File, error) bool) {
		start, err := resolveRoot(fsys, dir, root)
		if err != nil {
			yield(File{Path: dir, Name: root}, err)
			return
		}

		// walkFn only ever returns nil, SkipDir or errStop, so the result carries nothing to report
		_ = util.Walk(fsys, start, func(path string, info os.FileInfo, err error) error {
			f := File{Path: path, Name: rebase(path, start, root)}

			if err != nil {
				if path != start && filter.Excluded(f.Name) {
					return nil
				}
				err = classify(f, start, info, err)
				if types.KindOf(err) == types.KindFileUnreadable && !filter.Matches(f.Name) {
					return nil
				}
				if !yield(f, err) {
					return errStop
				}
				// Listing failed: util.Walk will not descend, keep the siblings going
				return nil
			}

			if info.IsDir() {
				if path != start && filter.Excluded(f.Name) {
					return filepath.SkipDir
				}
				return nil
			}

			if !filter.Matches(f.Name) || !isRegular(fsys, path, info) {
				return nil
			}

			if !yield(f, nil) {
				return errStop
			}
			return nil
		})
	}
}

// isRegular reports whether the entry is a regular file, following a link to its target.
// Dangling links and links to directories are not regular.
func isRegular(fsys billy.Filesystem, path string, info os.FileInfo) bool {
	if info.Mode()&os.ModeSymlink == 0 {
		return info.Mode().IsRegular()
	}
	target, err := fsys.Stat(path)
	if err != nil {
		return false
	}
	return target.Mode().IsRegular()
}

// resolveRoot checks that dir is a usable directory and returns the path to
// walk, following a chain of links. Errors name root.
func resolveRoot(fsys billy.Filesystem, dir, root string) (string, error) {
	start := dir
	for range maxLinkDepth {
		info, err := fsys.Lstat(start)
		if err != nil {
			return "", fmt.Errorf("%w: %s: %v", types.ErrRootUnavailable, root, err)
		}

		if info.Mode()&os.ModeSymlink == 0 {
			if !info.IsDir() {
				return "", fmt.Errorf("%w: %s: not a directory", types.ErrRootUnavailable, root)
			}
			return start, nil
		}

		target, err := fsys.Readlink(start)
		if err != nil {
			return "", fmt.Errorf("%w: %s: %v", types.ErrRootUnavailable, root, err)
		}
		if !filepath.IsAbs(target) {
			target = filepath.Join(filepath.Dir(filepath.Clean(start)), target)
		}
		start = target
	}
	return "", fmt.Errorf("%w: %s: too many levels of symbolic links", types.ErrRootUnavailable, root)
}

// rebase maps a path below start onto root
func rebase(path, start, root string) string {
	if start == root {
		return path
	}
	rel := strings.TrimPrefix(strings.TrimPrefix(path, start), string(filepath.Separator))
	if rel == "" {
		return root
	}
	return filepath.Join(root, rel)
}

// classify wraps a walk failure with the matching sentinel.
// info is nil when the entry itself could not be stat'ed.
func classify(f File, start string, info os.FileInfo, err error) error {
	switch {
	case f.Path == start:
		return fmt.Errorf("%w: %s: %v", types.ErrRootUnavailable, f.Name, err)
	case info != nil && info.IsDir():
		return fmt.Errorf("%w: %s: %v", types.ErrDirUnreadable, f.Name, err)
	default:
		return fmt.Errorf("%w: %s: %v", types.ErrFileUnreadable, f.Name, err)
	}
}
