// Where: internal/usecase/generate/prepare.go
// What: Destination preparation before materialization.
// Why: Give every run a clean root while keeping version control metadata.
package generate

import (
	"fmt"

	"github.com/poruru/apigen/internal/infra/fileops"
	"github.com/poruru/apigen/internal/meta"
	"github.com/spf13/afero"
)

// Prepare clears root except .git when clear is set. It returns the removed
// top-level names.
func Prepare(fsys afero.Fs, root string, clear bool) ([]string, error) {
	if !clear {
		return nil, nil
	}
	removed, err := fileops.ClearDir(fsys, root, meta.PreservedDir)
	if err != nil {
		return removed, fmt.Errorf("clear %s: %w", root, err)
	}
	return removed, nil
}
