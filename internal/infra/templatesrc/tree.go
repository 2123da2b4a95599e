// Where: internal/infra/templatesrc/tree.go
// What: Read-only view over a template tree on any afero filesystem.
// Why: Let embedded, local and remote templates feed the same materializer.
package templatesrc

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/spf13/afero"
)

// Tree is a template directory rooted at Root inside Fs.
type Tree struct {
	Fs   afero.Fs
	Root string
	// Origin describes where the tree came from, for display.
	Origin string
	// LocalDir is set when the tree is a directory on the local disk.
	LocalDir string
}

// Files lists regular files below Root as sorted slash-separated relative paths.
func (t Tree) Files() ([]string, error) {
	var files []string
	err := afero.Walk(t.Fs, t.Root, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !info.Mode().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(t.Root, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk template tree %s: %w", t.Origin, err)
	}
	sort.Strings(files)
	return files, nil
}

// ReadFile reads a file by its slash-separated relative path.
func (t Tree) ReadFile(rel string) ([]byte, error) {
	return afero.ReadFile(t.Fs, filepath.Join(t.Root, filepath.FromSlash(rel)))
}
