// Package traverser discovers the files that qualify for line counting.
//
// A file qualifies when it is a regular file, its path contains none of the
// exclusion substrings, and its name ends in "." plus one of the configured
// extensions:
//
//	filter := traverser.NewFilter([]string{"ts", "js"}, []string{"node_modules"})
//
//	dir, _ := filepath.Abs("../client/")
//	for f, err := range traverser.WalkFrom(osfs.New("/"), dir, "../client/", filter) {
//	    if err != nil {
//	        log.Printf("skipping %s: %v", f.Name, err)
//	        continue
//	    }
//	    count(f.Path)
//	}
//
// File.Path is where the file lives on the filesystem; File.Name is the same
// file spelled from the configured root ("../client/x.ts") and is what the
// filter and the diagnostics see.
//
// # Exclusions
//
// Exclusion is substring containment on the full path string, not path
// segment matching. "node_modules" excludes "a/node_modules/b.ts" at any
// depth, and "test" also excludes "src/latest.ts". Directories whose path
// contains an exclusion are not descended into at all.
//
// # Symbolic links
//
// The walk is built on go-billy's util.Walk, which uses Lstat and does not
// descend into linked directories, so link cycles cannot cause unbounded
// recursion. A link whose target is a regular file is counted like that
// file; dangling links are skipped silently. A root given as a link, or a
// chain of links, is resolved before walking, and the files below it are
// still named from the configured root.
//
// # Failures
//
// A missing root or a root that is not a directory yields a single error
// wrapping types.ErrRootUnavailable and no files. A subdirectory that cannot
// be listed yields an error wrapping types.ErrDirUnreadable and the walk
// continues with its siblings. An entry that cannot be stat'ed is reported as
// types.ErrFileUnreadable only if it would otherwise qualify.
package traverser
