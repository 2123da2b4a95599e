// Where: internal/infra/fileops/file_ops.go
// What: Shared filesystem operations for destination preparation and materialization.
// Why: Keep behavior consistent across real and in-memory filesystems.
package fileops

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

const (
	dirPerm  fs.FileMode = 0o755
	filePerm fs.FileMode = 0o644
)

// EnsureDir creates path and any missing parents. Concurrent calls for the
// same path are safe.
func EnsureDir(fsys afero.Fs, path string) error {
	if err := fsys.MkdirAll(path, dirPerm); err != nil {
		if info, statErr := fsys.Stat(path); statErr == nil && info.IsDir() {
			return nil
		}
		return err
	}
	return nil
}

// WriteFile writes data to path, creating parent directories first.
func WriteFile(fsys afero.Fs, path string, data []byte) error {
	if err := EnsureDir(fsys, filepath.Dir(path)); err != nil {
		return err
	}
	return afero.WriteFile(fsys, path, data, filePerm)
}

// ClearDir removes every entry directly under root except the names in keep.
// A missing root is not an error. It returns the names it removed.
func ClearDir(fsys afero.Fs, root string, keep ...string) ([]string, error) {
	entries, err := afero.ReadDir(fsys, root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", root, err)
	}

	preserved := make(map[string]struct{}, len(keep))
	for _, name := range keep {
		preserved[name] = struct{}{}
	}

	var removed []string
	for _, entry := range entries {
		name := entry.Name()
		if _, ok := preserved[name]; ok {
			continue
		}
		if err := fsys.RemoveAll(filepath.Join(root, name)); err != nil {
			return removed, fmt.Errorf("remove %s: %w", filepath.Join(root, name), err)
		}
		removed = append(removed, name)
	}
	return removed, nil
}

func FileExists(fsys afero.Fs, path string) bool {
	info, err := fsys.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

func DirExists(fsys afero.Fs, path string) bool {
	info, err := fsys.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// IsWithin reports whether path equals root or lies below it.
func IsWithin(root, path string) bool {
	rel, err := filepath.Rel(filepath.Clean(root), filepath.Clean(path))
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !filepath.IsAbs(rel) && !startsWithParent(rel))
}

func startsWithParent(rel string) bool {
	return len(rel) >= 3 && rel[:3] == ".."+string(filepath.Separator)
}
