package traverser

import (
	"errors"
	"os"
	"sort"
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/linecount/pkg/types"
)

// createTestFile writes content to path on fsys, creating parents as needed
func createTestFile(t testing.TB, fsys billy.Filesystem, path, content string) {
	t.Helper()

	err := util.WriteFile(fsys, path, []byte(content), 0644)
	require.NoError(t, err)
}

// collect drains a walk into sorted paths and the errors it yielded
func collect(fsys billy.Filesystem, root string, filter Filter) ([]string, []error) {
	var (
		paths []string
		errs  []error
	)
	for f, err := range Walk(fsys, root, filter) {
		if err != nil {
			errs = append(errs, err)
			continue
		}
		paths = append(paths, f.Name)
	}
	sort.Strings(paths)
	return paths, errs
}

// unreadableDirFS fails ReadDir for one directory
type unreadableDirFS struct {
	billy.Filesystem
	dir string
}

func (fs *unreadableDirFS) ReadDir(path string) ([]os.FileInfo, error) {
	if path == fs.dir {
		return nil, &os.PathError{Op: "open", Path: path, Err: os.ErrPermission}
	}
	return fs.Filesystem.ReadDir(path)
}

// unstatableFS fails Lstat for the listed entries
type unstatableFS struct {
	billy.Filesystem
	paths map[string]bool
}

func (fs *unstatableFS) Lstat(path string) (os.FileInfo, error) {
	if fs.paths[path] {
		return nil, &os.PathError{Op: "lstat", Path: path, Err: os.ErrPermission}
	}
	return fs.Filesystem.Lstat(path)
}

func TestWalk(t *testing.T) {
	fsys := memfs.New()
	createTestFile(t, fsys, "/A/x.ts", "1\n2\n3\n")
	createTestFile(t, fsys, "/A/sub/y.js", "1\n2\n")
	createTestFile(t, fsys, "/A/sub/deeper/z.tsx", "1\n")
	createTestFile(t, fsys, "/A/node_modules/z.ts", "ignored\n")
	createTestFile(t, fsys, "/A/sub/node_modules/pkg/w.js", "ignored\n")
	createTestFile(t, fsys, "/A/script.py", "ignored\n")
	createTestFile(t, fsys, "/A/README", "ignored\n")

	filter := NewFilter([]string{"ts", "js"}, []string{"node_modules"})

	t.Run("yields qualifying files only", func(t *testing.T) {
		paths, errs := collect(fsys, "/A", filter)
		assert.Empty(t, errs)
		assert.Equal(t, []string{"/A/sub/y.js", "/A/x.ts"}, paths)
	})

	t.Run("exclusion applies at any depth", func(t *testing.T) {
		paths, _ := collect(fsys, "/A/sub", filter)
		assert.Equal(t, []string{"/A/sub/y.js"}, paths)
	})

	t.Run("no extensions matches nothing", func(t *testing.T) {
		paths, errs := collect(fsys, "/A", NewFilter(nil, nil))
		assert.Empty(t, errs)
		assert.Empty(t, paths)
	})

	t.Run("root containing an exclusion yields nothing", func(t *testing.T) {
		paths, errs := collect(fsys, "/A/node_modules", filter)
		assert.Empty(t, errs)
		assert.Empty(t, paths)
	})

	t.Run("trailing slash on root", func(t *testing.T) {
		paths, errs := collect(fsys, "/A/sub/", NewFilter([]string{"js", "tsx"}, nil))
		assert.Empty(t, errs)
		assert.Equal(t, []string{"/A/sub/deeper/z.tsx", "/A/sub/node_modules/pkg/w.js", "/A/sub/y.js"}, paths)
	})
}

func TestWalkSubstringExclusion(t *testing.T) {
	fsys := memfs.New()
	createTestFile(t, fsys, "/src/main.ts", "a\n")
	createTestFile(t, fsys, "/src/latest.ts", "a\n")
	createTestFile(t, fsys, "/src/testing/helper.ts", "a\n")

	// Substring, not segment: "test" also removes latest.ts
	paths, errs := collect(fsys, "/src", NewFilter([]string{"ts"}, []string{"test"}))
	assert.Empty(t, errs)
	assert.Equal(t, []string{"/src/main.ts"}, paths)
}

func TestWalkRootUnavailable(t *testing.T) {
	fsys := memfs.New()
	createTestFile(t, fsys, "/file.ts", "a\n")
	filter := NewFilter([]string{"ts"}, nil)

	tests := []struct {
		name string
		root string
	}{
		{"missing root", "/does/not/exist"},
		{"root is a file", "/file.ts"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			paths, errs := collect(fsys, tt.root, filter)
			assert.Empty(t, paths)
			require.Len(t, errs, 1)
			assert.True(t, errors.Is(errs[0], types.ErrRootUnavailable), "got %v", errs[0])
			assert.Contains(t, errs[0].Error(), tt.root)
		})
	}
}

func TestWalkUnreadableDirectory(t *testing.T) {
	base := memfs.New()
	createTestFile(t, base, "/root/ok.ts", "a\n")
	createTestFile(t, base, "/root/locked/hidden.ts", "a\n")
	createTestFile(t, base, "/root/zz/after.ts", "a\n")

	fsys := &unreadableDirFS{Filesystem: base, dir: "/root/locked"}

	var (
		paths   []string
		errPath string
		walkErr error
	)
	for f, err := range Walk(fsys, "/root", NewFilter([]string{"ts"}, nil)) {
		if err != nil {
			errPath, walkErr = f.Name, err
			continue
		}
		paths = append(paths, f.Name)
	}

	sort.Strings(paths)
	assert.Equal(t, []string{"/root/ok.ts", "/root/zz/after.ts"}, paths)
	assert.Equal(t, "/root/locked", errPath)
	assert.True(t, errors.Is(walkErr, types.ErrDirUnreadable), "got %v", walkErr)
}

func TestWalkUnstatableEntries(t *testing.T) {
	base := memfs.New()
	createTestFile(t, base, "/root/ok.ts", "a\n")
	createTestFile(t, base, "/root/bad.ts", "a\n")
	createTestFile(t, base, "/root/tool.py", "a\n")
	createTestFile(t, base, "/root/node_modules/dep.ts", "a\n")

	fsys := &unstatableFS{Filesystem: base, paths: map[string]bool{
		"/root/bad.ts":       true,
		"/root/tool.py":      true,
		"/root/node_modules": true,
	}}

	paths, errs := collect(fsys, "/root", NewFilter([]string{"ts"}, []string{"node_modules"}))
	assert.Equal(t, []string{"/root/ok.ts"}, paths)

	// Only the entry that would have qualified is reported
	require.Len(t, errs, 1)
	assert.True(t, errors.Is(errs[0], types.ErrFileUnreadable), "got %v", errs[0])
	assert.Contains(t, errs[0].Error(), "/root/bad.ts")
}

func TestWalkSymlinks(t *testing.T) {
	fsys := memfs.New()
	createTestFile(t, fsys, "/real/a.ts", "a\n")
	createTestFile(t, fsys, "/real/sub/b.ts", "b\n")
	createTestFile(t, fsys, "/shared/lib.ts", "lib\n")
	require.NoError(t, fsys.Symlink("/real", "/real/sub/loop.ts"))
	require.NoError(t, fsys.Symlink("/real", "/real/sub/loop"))
	require.NoError(t, fsys.Symlink("/real/a.ts", "/real/alias.ts"))
	require.NoError(t, fsys.Symlink("/shared/lib.ts", "/real/lib.ts"))
	require.NoError(t, fsys.Symlink("/gone.ts", "/real/dangling.ts"))
	require.NoError(t, fsys.Symlink("/real", "/link"))
	require.NoError(t, fsys.Symlink("/link", "/link2"))
	require.NoError(t, fsys.Symlink("link2", "/link3"))

	filter := NewFilter([]string{"ts"}, nil)
	want := []string{"/real/a.ts", "/real/alias.ts", "/real/lib.ts", "/real/sub/b.ts"}

	t.Run("links to files are counted, links to directories are not followed", func(t *testing.T) {
		paths, errs := collect(fsys, "/real", filter)
		assert.Empty(t, errs)
		assert.Equal(t, want, paths)
	})

	t.Run("linked root is named from the link", func(t *testing.T) {
		paths, errs := collect(fsys, "/link", filter)
		assert.Empty(t, errs)
		assert.Equal(t, []string{"/link/a.ts", "/link/alias.ts", "/link/lib.ts", "/link/sub/b.ts"}, paths)
	})

	t.Run("chain of root links is resolved", func(t *testing.T) {
		for _, root := range []string{"/link2", "/link3"} {
			paths, errs := collect(fsys, root, filter)
			assert.Empty(t, errs, root)
			assert.Len(t, paths, len(want), root)
		}
	})

	t.Run("linked root opens through the target", func(t *testing.T) {
		for f, err := range Walk(fsys, "/link2", filter) {
			require.NoError(t, err)
			_, err := fsys.Stat(f.Path)
			assert.NoError(t, err, f.Path)
		}
	})
}

func TestWalkRootLinkLoop(t *testing.T) {
	fsys := memfs.New()
	require.NoError(t, fsys.Symlink("/b", "/a"))
	require.NoError(t, fsys.Symlink("/a", "/b"))

	paths, errs := collect(fsys, "/a", NewFilter([]string{"ts"}, nil))
	assert.Empty(t, paths)
	require.Len(t, errs, 1)
	assert.True(t, errors.Is(errs[0], types.ErrRootUnavailable), "got %v", errs[0])
}

func TestWalkExclusionsMatchConfiguredRoot(t *testing.T) {
	fsys := memfs.New()
	createTestFile(t, fsys, "/build-cache/a.ts", "a\n")
	createTestFile(t, fsys, "/build-cache/tmp/b.ts", "b\n")
	require.NoError(t, fsys.Symlink("/build-cache", "/src"))

	filter := NewFilter([]string{"ts"}, []string{"build", "tmp"})

	paths, errs := collect(fsys, "/src", filter)
	assert.Empty(t, errs)
	assert.Equal(t, []string{"/src/a.ts"}, paths)
}

func TestWalkFrom(t *testing.T) {
	fsys := memfs.New()
	createTestFile(t, fsys, "/home/me/project/client/x.ts", "1\n")
	createTestFile(t, fsys, "/home/me/project/client/sub/y.ts", "1\n")
	createTestFile(t, fsys, "/home/me/project/client/node_modules/z.ts", "1\n")

	filter := NewFilter([]string{"ts"}, []string{"node_modules", "me"})

	var files []File
	for f, err := range WalkFrom(fsys, "/home/me/project/client", "../client/", filter) {
		require.NoError(t, err)
		files = append(files, f)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })

	// "me" only appears in the directory the root resolves to, so nothing is excluded by it
	assert.Equal(t, []File{
		{Path: "/home/me/project/client/sub/y.ts", Name: "../client/sub/y.ts"},
		{Path: "/home/me/project/client/x.ts", Name: "../client/x.ts"},
	}, files)

	t.Run("missing root is named as configured", func(t *testing.T) {
		for f, err := range WalkFrom(fsys, "/home/me/project/server", "../server/", filter) {
			assert.Equal(t, "../server/", f.Name)
			assert.True(t, errors.Is(err, types.ErrRootUnavailable), "got %v", err)
			assert.Contains(t, err.Error(), "../server/")
		}
	})
}

func TestWalkStopsEarly(t *testing.T) {
	fsys := memfs.New()
	for _, name := range []string{"/d/a.ts", "/d/b.ts", "/d/c.ts"} {
		createTestFile(t, fsys, name, "x\n")
	}

	seen := 0
	for range Walk(fsys, "/d", NewFilter([]string{"ts"}, nil)) {
		seen++
		if seen == 2 {
			break
		}
	}
	assert.Equal(t, 2, seen)
}
