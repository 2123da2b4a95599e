// Where: internal/infra/fileops/file_ops_test.go
// What: Tests for destination filesystem helpers.
// Why: Clearing must never touch version control metadata.
package fileops

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/afero"
)

func writeFixtureFile(t *testing.T, fsys afero.Fs, path, content string) {
	t.Helper()
	if err := WriteFile(fsys, path, []byte(content)); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestClearDirPreservesGitDirectory(t *testing.T) {
	root := t.TempDir()
	fsys := afero.NewOsFs()
	writeFixtureFile(t, fsys, filepath.Join(root, ".git", "config"), "[core]")
	writeFixtureFile(t, fsys, filepath.Join(root, ".git", "objects", "ab", "cdef"), "blob")
	writeFixtureFile(t, fsys, filepath.Join(root, "app.txt"), "app")
	writeFixtureFile(t, fsys, filepath.Join(root, ".gitignore"), "bin/")
	writeFixtureFile(t, fsys, filepath.Join(root, "src", "nested", "file.cs"), "class A {}")

	removed, err := ClearDir(fsys, root, ".git")
	if err != nil {
		t.Fatalf("ClearDir: %v", err)
	}
	sort.Strings(removed)
	if strings.Join(removed, ",") != ".gitignore,app.txt,src" {
		t.Fatalf("unexpected removed entries: %v", removed)
	}
	if !FileExists(fsys, filepath.Join(root, ".git", "config")) {
		t.Fatalf(".git/config was removed")
	}
	if !FileExists(fsys, filepath.Join(root, ".git", "objects", "ab", "cdef")) {
		t.Fatalf(".git contents were removed")
	}
	for _, gone := range []string{"app.txt", ".gitignore", "src"} {
		if _, err := os.Stat(filepath.Join(root, gone)); !os.IsNotExist(err) {
			t.Fatalf("%s still exists (err=%v)", gone, err)
		}
	}
	if !DirExists(fsys, root) {
		t.Fatalf("root itself was removed")
	}
}

func TestClearDirMissingRoot(t *testing.T) {
	fsys := afero.NewMemMapFs()
	removed, err := ClearDir(fsys, "/does/not/exist", ".git")
	if err != nil {
		t.Fatalf("ClearDir on missing root: %v", err)
	}
	if len(removed) != 0 {
		t.Fatalf("unexpected removals: %v", removed)
	}
}

func TestEnsureDirConcurrent(t *testing.T) {
	root := t.TempDir()
	fsys := afero.NewOsFs()
	target := filepath.Join(root, "a", "b", "c")

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- EnsureDir(fsys, target)
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("EnsureDir: %v", err)
		}
	}
	if !DirExists(fsys, target) {
		t.Fatalf("target not created")
	}
}

func TestIsWithin(t *testing.T) {
	sep := string(filepath.Separator)
	root := sep + filepath.Join("work", "out")
	tests := []struct {
		path string
		want bool
	}{
		{path: root, want: true},
		{path: filepath.Join(root, "templates"), want: true},
		{path: sep + filepath.Join("work", "templates"), want: false},
		{path: sep + filepath.Join("work", "outside"), want: false},
		{path: filepath.Join(root, "..", "out2"), want: false},
		{path: filepath.Join(root, "..data"), want: true},
	}
	for _, tc := range tests {
		if got := IsWithin(root, tc.path); got != tc.want {
			t.Fatalf("IsWithin(%s, %s) = %v, want %v", root, tc.path, got, tc.want)
		}
	}
}
